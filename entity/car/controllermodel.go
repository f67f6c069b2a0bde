package car

import (
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/samber/lo"
)

// followImpl 跟车模型核心实现
// 功能：实现智能驾驶模型(IDM)的跟车逻辑
// 参数：selfV-本车速度，targetV-目标速度，aheadV-前车速度，distance-车距，gap-最小车距，headwayT-安全车头时距
// 返回：计算得到的加速度（米/秒²）
// 算法说明：
// 1. 检查是否发生碰撞（距离小于等于0）
// 2. 计算期望车距：s_star = gap + max(0, v*headwayT + v*(v-v_ahead)/(2*sqrt(a*b)))
// 3. 计算加速度：a = maxA * (1 - (v/targetV)^4 - (s_star/distance)^2)
// 4. 限制加速度在制动和加速范围内
func (l *controller) followImpl(
	selfV, targetV, aheadV, distance, gap, headwayT float64,
) float64 {
	var acc float64
	if distance <= 0 {
		// 与障碍重叠，紧急制动
		acc = -mathutil.INF
	} else {
		// https://en.wikipedia.org/wiki/Intelligent_driver_model
		sStar := gap + math.Max(
			0,
			selfV*headwayT+selfV*(selfV-aheadV)/2/math.Sqrt(-l.maxBrakingA*l.maxA),
		)
		acc = l.maxA * (1 - math.Pow(selfV/targetV, idmTheta) - math.Pow(sStar/distance, 2))
	}
	return lo.Clamp(acc, l.maxBrakingA, l.maxA)
}

// follow 跟车模型
// 功能：使用控制器默认的车距与车头时距参数调用跟车模型
// 参数：aheadV-前车速度，distance-车距
func (l *controller) follow(aheadV, distance float64) float64 {
	return l.followImpl(l.v, l.maxV, aheadV, distance, minGap, headway)
}

// free 自由路段模型
// 功能：无障碍时向目标速度趋近的IDM自由路段项
// 参数：targetV-目标速度（必须>0）
func (l *controller) free(targetV float64) float64 {
	return lo.Clamp(l.maxA*(1-math.Pow(l.v/targetV, idmTheta)), l.maxBrakingA, l.maxA)
}

// stop 在指定距离内刹停
// 功能：计算在指定距离内停车所需的加速度
// 参数：distance-停车距离，gap-停车点前预留的间隙
// 说明：停车预判dt时间而不按跟车headway计算，目标速度按0处理
func (l *controller) stop(distance, gap float64) float64 {
	return l.followImpl(l.v, l.maxV, 0, distance, gap, l.dt)
}
