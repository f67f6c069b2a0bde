package car

import (
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/samber/lo"

	"github.com/TimurZav/digital-city-cars/utils/geoutil"
)

const (
	idmTheta = 4 // IDM模型参数（智能驾驶模型参数）

	minGap       = 5   // 最小车距（米）
	headway      = 1.5 // 安全车头时距（秒）
	stopExtraGap = 2   // 停车点额外预留空间（米）
	minBendV     = 2   // 弯道目标速度下限（米/秒）
)

// controller 车辆控制器
// 功能：根据前视感知结果计算车辆的纵向加速度
type controller struct {
	// 控制器保持的参数

	self        *Car    // 模块所在车辆
	maxBrakingA float64 // 最大制动加速度（负值）
	maxA        float64 // 最大加速度
	maxV        float64 // 最大速度

	// 每次update时更新

	v  float64 // 当前速度
	dt float64 // 时间步长
}

// newController 创建新的车辆控制器
// 参数：self-车辆实体
func newController(self *Car) *controller {
	fleet := self.ctx.RuntimeConfig().All.Fleet
	return &controller{
		self:        self,
		maxBrakingA: -fleet.MaxBrake,
		maxA:        fleet.MaxA,
		maxV:        self.maxV,
	}
}

// update 计算本tick的控制动作
// 功能：依次执行巡航弯道、跟车、红灯与外部刹停策略，合并为最终加速度
// 参数：view-本tick的前视感知，dt-时间步长
// 返回：合并后的控制动作
// 算法说明：
// 1. 巡航弯道策略给出无障碍时的基准加速度
// 2. 视野网格命中前车时执行跟车策略
// 3. 视野网格命中红灯时执行停车策略
// 4. 外部刹停指令直接给出最大制动
// 5. 各策略取最小加速度后夹紧到制动与加速范围内
func (l *controller) update(view *FrontView, dt float64) (ac Action) {
	ac.A = mathutil.INF
	l.v = l.self.runtime.v
	l.dt = dt

	ac.Update(l.policyCruise(view))
	if distance, ok := view.DistanceToCar(); ok {
		ac.Update(l.policyCarFollow(distance))
	}
	if distance, ok := view.DistanceToLight(); ok {
		ac.Update(l.policyRedLight(distance))
	}
	if l.self.hold {
		// 外部控制指令，强制刹停
		ac.Update(Action{A: l.maxBrakingA})
	}

	ac.A = lo.Clamp(ac.A, l.maxBrakingA, l.maxA)
	return
}

// policyCruise 策略1：巡航与弯道策略
// 功能：无障碍时向最大速度巡航，前方转弯越急目标速度越低
// 参数：view-前视感知
// 算法说明：
// 1. 由视野内各段航向角计算最大转弯角
// 2. 目标速度随转弯角线性收缩，不低于弯道速度下限
// 3. 按IDM自由路段项计算加速度
func (l *controller) policyCruise(view *FrontView) (ac Action) {
	targetV := l.maxV
	if bend := geoutil.MaxBend(view.Angles()); bend > 0 {
		targetV = math.Max(minBendV, targetV*(1-bend/math.Pi))
	}
	ac.A = l.free(targetV)
	return
}

// policyCarFollow 策略2：前车跟车策略
// 功能：对命中视野网格的前车计算跟车加速度
// 参数：distance-与前车距离
// 说明：前车可能停在网格外的横向位置上，网格匹配不读取其速度，按静止障碍处理
func (l *controller) policyCarFollow(distance float64) (ac Action) {
	ac.A = l.follow(0, distance)
	return
}

// policyRedLight 策略3：红灯停车策略
// 功能：在红灯路口前减速停车
// 参数：distance-到信号灯的距离
// 说明：在灯前预留最小车距再加2米空间
func (l *controller) policyRedLight(distance float64) (ac Action) {
	ac.A = l.stop(distance, minGap+stopExtraGap)
	return
}
