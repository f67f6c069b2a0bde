package car

import (
	"git.fiblab.net/general/common/v2/geometry"

	"github.com/TimurZav/digital-city-cars/entity"
	"github.com/TimurZav/digital-city-cars/utils/geoutil"
)

// FrontView 前视感知
// 功能：以车辆快照为基准的单tick视野，提供路径点跨越判定与前方障碍探测
// 说明：每tick每车重新构建，不跨tick保留；所有读取都来自本tick的快照，
// 因此同一tick内任意顺序构建各车的FrontView结果一致
type FrontView struct {
	ctx entity.ITaskContext

	selfID   int32
	position geometry.Point   // 车辆位置（快照）
	view     []geometry.Point // 剩余路径的前K个路径点
	rtol     float64          // 坐标匹配的相对容差
	samples  int              // 网格插值每段采样点数
	scan     scanner

	destination geometry.Point // 终点节点的原始位置

	gridXs, gridYs []float64 // 惰性生成的匹配网格
	gridReady      bool
}

// NewFrontView 构建车辆的前视感知
// 功能：截取剩余路径的前K个路径点作为视野，K为感知配置的look_ahead
// 参数：ctx-任务上下文，car-已派发行程的车辆
// 说明：路径不足K个点时视野取全部剩余点，路径耗尽时视野为空（到达信号）
func NewFrontView(ctx entity.ITaskContext, car *Car) *FrontView {
	if car.path == nil {
		log.Panicf("front view requires a dispatched car, got %v", car)
	}
	perception := ctx.RuntimeConfig().All.Perception
	return &FrontView{
		ctx:         ctx,
		selfID:      car.id,
		position:    car.snapshot.position,
		view:        car.path.View(perception.LookAhead),
		rtol:        perception.RelTol,
		samples:     perception.GridResolution,
		scan:        car.scan,
		destination: ctx.Graph().Position(car.trip.Destination),
	}
}

// 路径是否已消费完毕，这是到达信号而不是错误
func (f *FrontView) EndOfRoute() bool {
	return len(f.view) == 0
}

// CrossedNode 车辆是否已跨过视野首个路径点
// 功能：车辆位置与view[0]在两轴上同时IsClose时成立，
// 成立表示该路径点应当被消费掉
func (f *FrontView) CrossedNode() bool {
	if f.EndOfRoute() {
		return false
	}
	return geoutil.PointsClose(f.position, f.view[0], f.rtol)
}

// UpcomingNodePosition 下一个行驶目标点
// 功能：已跨过view[0]且视野中还有后继点时返回view[1]，否则返回view[0]；
// 路径耗尽时退化为终点节点的原始位置
func (f *FrontView) UpcomingNodePosition() geometry.Point {
	if f.EndOfRoute() {
		return f.destination
	}
	if f.CrossedNode() && len(f.view) > 1 {
		return f.view[1]
	}
	return f.view[0]
}

// 到下一个行驶目标点的欧氏距离
func (f *FrontView) DistanceToNode() float64 {
	target := f.UpcomingNodePosition()
	return geoutil.Magnitude(geometry.Point{X: target.X - f.position.X, Y: target.Y - f.position.Y})
}

// Horizon 感知视野的弧长
// 功能：返回从车辆位置沿视野路径点链累计的总距离，
// 视野内障碍到车的直线距离不会超过该值
func (f *FrontView) Horizon() float64 {
	total := 0.0
	from := f.position
	for _, p := range f.view {
		total += geoutil.Magnitude(geometry.Point{X: p.X - from.X, Y: p.Y - from.Y})
		from = p
	}
	return total
}

// 视野内各段折线的航向角
func (f *FrontView) Angles() []float64 {
	return geoutil.Angles(f.view)
}

// 障碍物匹配网格，首次使用时生成
func (f *FrontView) grid() (xs, ys []float64) {
	if !f.gridReady {
		f.gridXs, f.gridYs = geoutil.Linspace(f.view, f.samples)
		f.gridReady = true
	}
	return f.gridXs, f.gridYs
}

// DistanceToCar 探测前方车辆障碍
// 功能：在视野网格上查找命中的其他车辆，返回到命中车的欧氏距离
// 返回：距离与是否命中，无命中时ok=false（不是错误）
// 说明：按车队顺序先命中者胜出而不是最近者优先，该策略与扫描实现无关
func (f *FrontView) DistanceToCar() (float64, bool) {
	if f.EndOfRoute() {
		return 0, false
	}
	xs, ys := f.grid()
	other, ok := f.scan.scanCars(f, xs, ys)
	if !ok {
		return 0, false
	}
	p := other.XY()
	return geoutil.Magnitude(geometry.Point{X: p.X - f.position.X, Y: p.Y - f.position.Y}), true
}

// DistanceToLight 探测前方红灯障碍
// 功能：按信号灯表顺序查找位置命中视野网格的信号灯；
// 首个位置命中的信号灯独立决定结果，不再考虑后续信号灯
// 返回：距离与是否构成障碍，绿灯或无平行进近方向时ok=false
// 算法说明：
// 1. 信号灯位置命中判定与车辆相同（同一采样点两轴同时IsClose）
// 2. 按序扫描命中灯的进近方向，首个与车到灯向量平行且信号为红的方向构成障碍
// 3. 存在平行方向但信号为绿时正常放行
// 4. 没有任何平行方向只在路网拓扑有缺陷时出现，记录Debug日志后放行
func (f *FrontView) DistanceToLight() (float64, bool) {
	if f.EndOfRoute() {
		return 0, false
	}
	xs, ys := f.grid()
	for _, l := range f.ctx.LightManager().Lights() {
		p := l.Position()
		if !matchOnGrid(p, xs, ys, f.rtol) {
			continue
		}
		to := geometry.Point{X: p.X - f.position.X, Y: p.Y - f.position.Y}
		parallelFound := false
		for i, vec := range l.Pedigree() {
			if !geoutil.Parallel(vec, to, f.rtol) {
				continue
			}
			parallelFound = true
			if !l.Go(i) {
				return geoutil.Magnitude(to), true
			}
		}
		if !parallelFound {
			// 位置命中却没有任何进近方向与来车方向平行，拓扑缺陷兜底
			log.Debugf("light %d hit on view grid of car %d but no parallel approach", l.ID(), f.selfID)
		}
		return 0, false
	}
	return 0, false
}
