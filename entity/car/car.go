package car

import (
	"fmt"
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"

	"github.com/TimurZav/digital-city-cars/entity"
	"github.com/TimurZav/digital-city-cars/entity/route"
	"github.com/TimurZav/digital-city-cars/utils/container"
	"github.com/TimurZav/digital-city-cars/utils/geoutil"
)

// carRuntime 车辆运行时数据
// 说明：prepare做浅拷贝生成快照，字段必须保持值语义
type carRuntime struct {
	position geometry.Point   // 当前位置
	v        float64          // 当前速度(m/s)
	status   entity.CarStatus // 行驶状态
}

// Car 车辆实体
// 功能：沿规划路径行驶的车辆，每tick感知前方障碍并调整运动
type Car struct {
	container.IncrementalItemBase

	ctx entity.ITaskContext

	id   int32
	trip entity.Trip
	maxV float64 // 最高车速(m/s)

	path *route.Path // 剩余行驶路径，只进不退

	hold bool // 外部控制器的刹停指令

	snapshot carRuntime // snapshot，本tick内供感知读取
	runtime  carRuntime // 运行时数据

	controller *controller
	scan       scanner
}

// newCar 创建车辆
// 说明：创建后处于等待状态，startTrip派发行程后才参与行驶
func newCar(ctx entity.ITaskContext, id int32, scan scanner) *Car {
	c := &Car{
		ctx:  ctx,
		id:   id,
		maxV: ctx.RuntimeConfig().All.Fleet.MaxV,
		scan: scan,
	}
	c.controller = newController(c)
	return c
}

// startTrip 派发行程
// 功能：设置起终点与解编好的路径，将车辆放置到起点并进入行驶状态
// 参数：trip-行程起终点，path-解编后的行驶路径
// 说明：只写运行时数据，快照由下一次prepare统一提交
func (c *Car) startTrip(trip entity.Trip, path *route.Path) {
	c.trip = trip
	c.path = path
	c.runtime = carRuntime{
		position: c.ctx.Graph().Position(trip.Origin),
		v:        0,
		status:   entity.CarStatusDriving,
	}
}

// prepare 准备阶段，将运行时数据写入快照
func (c *Car) prepare() {
	c.snapshot = c.runtime
}

// update 更新阶段，行驶一个时间步
// 功能：感知、路径消费、控制决策与运动积分
// 参数：dt-时间步长
// 算法说明：
// 1. 从快照构建前视感知
// 2. 视野为空表示路径已耗尽，进入到达状态
// 3. 已跨过视野首个路径点时消费该点，消费后路径耗尽同样到达
// 4. 控制器合并各策略给出加速度，积分得到新速度
// 5. 沿指向下一目标点的单位向量移动，单步移动不越过目标点
func (c *Car) update(dt float64) {
	if c.runtime.status != entity.CarStatusDriving {
		return
	}
	view := NewFrontView(c.ctx, c)
	if view.EndOfRoute() {
		c.arrive()
		return
	}
	if view.CrossedNode() {
		c.path.Advance()
		if c.path.Exhausted() {
			c.arrive()
			return
		}
	}
	ac := c.controller.update(view, dt)
	v := lo.Clamp(c.runtime.v+ac.A*dt, 0, c.maxV)
	target := view.UpcomingNodePosition()
	to := geometry.Point{X: target.X - c.runtime.position.X, Y: target.Y - c.runtime.position.Y}
	if gap := geoutil.Magnitude(to); gap > 0 {
		move := math.Min(v*dt, gap)
		c.runtime.position.X += to.X / gap * move
		c.runtime.position.Y += to.Y / gap * move
	}
	c.runtime.v = v
}

// arrive 到达终点
// 说明：速度清零并吸附到路径终点，车辆留在原地成为静止障碍
func (c *Car) arrive() {
	c.runtime.status = entity.CarStatusArrived
	c.runtime.v = 0
	c.runtime.position = c.path.End()
	log.Debugf("car %d arrived at node %d", c.id, c.trip.Destination)
}

// 获取车辆ID
func (c *Car) ID() int32 {
	if c == nil {
		return -1
	}
	return c.id
}

// 获取当前行程的起终点
func (c *Car) Trip() entity.Trip {
	return c.trip
}

// 获取终点节点ID
func (c *Car) Destination() int64 {
	return c.trip.Destination
}

// 获取车辆位置坐标（快照）
func (c *Car) XY() geometry.Point {
	return c.snapshot.position
}

// 获取车辆速度（快照）
func (c *Car) V() float64 {
	return c.snapshot.v
}

// 获取车辆状态（快照）
func (c *Car) Status() entity.CarStatus {
	return c.snapshot.status
}

// 剩余路径是否已消费完毕（到达信号，不是错误）
func (c *Car) EndOfRoute() bool {
	return c.path == nil || c.path.Exhausted()
}

// 设置强制刹停指令，下一次控制决策生效
func (c *Car) SetHold(hold bool) {
	c.hold = hold
}

func (c *Car) String() string {
	return fmt.Sprintf(
		"Car{ID=%d, Trip=%v, Status=%v}",
		c.id, c.trip, c.runtime.status,
	)
}
