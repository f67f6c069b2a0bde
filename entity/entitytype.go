package entity

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
)

// CarStatus 车辆状态
type CarStatus int32

const (
	CarStatusWaiting CarStatus = iota // 等待发车（路径尚未就绪）
	CarStatusDriving                  // 按路径行驶中
	CarStatusArrived                  // 已到达终点并停住
)

func (s CarStatus) String() string {
	switch s {
	case CarStatusWaiting:
		return "waiting"
	case CarStatusDriving:
		return "driving"
	case CarStatusArrived:
		return "arrived"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Trip 一次行程的起终点（路网节点ID）
type Trip struct {
	Origin      int64
	Destination int64
}

func (t Trip) String() string {
	return fmt.Sprintf("Trip{%d->%d}", t.Origin, t.Destination)
}

// entity/car/car.go的依赖倒置
type ICar interface {
	// 自身属性

	ID() int32          // 获取车辆ID
	Trip() Trip         // 获取当前行程的起终点
	Destination() int64 // 获取终点节点ID

	// 快照读取（当前tick内保持一致）

	XY() geometry.Point // 获取车辆位置坐标
	V() float64         // 获取车辆速度
	Status() CarStatus  // 获取车辆状态
	EndOfRoute() bool   // 路径是否已消费完毕（到达信号，不是错误）

	// 外部控制

	SetHold(hold bool) // 设置强制刹停（下一tick生效）

	// print

	String() string
}

// entity/light/light.go的依赖倒置
type ILight interface {
	ID() int64                  // 获取信号灯所在节点ID
	Position() geometry.Point   // 获取信号灯位置
	Degree() int                // 获取进近方向数
	Pedigree() []geometry.Point // 获取各进近方向的出射方向向量
	Go(i int) bool              // 获取第i个进近方向的通行信号（快照）

	String() string
}
