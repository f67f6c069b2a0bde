package env

import (
	"errors"
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/TimurZav/digital-city-cars/entity"
	"github.com/TimurZav/digital-city-cars/entity/car"
	"github.com/TimurZav/digital-city-cars/entity/roadgraph"
	"github.com/TimurZav/digital-city-cars/entity/route"
	"github.com/TimurZav/digital-city-cars/task"
	"github.com/TimurZav/digital-city-cars/utils/config"
	"github.com/TimurZav/digital-city-cars/utils/geoutil"
	"github.com/TimurZav/digital-city-cars/utils/input"
	"github.com/samber/lo"
)

// Action 环境动作
type Action int

const (
	ActionHold    Action = iota // 强制制动
	ActionProceed               // 正常行驶，控制器自主决策
)

// State 离散观测状态，取值[0, StateBuckets)
type State int

// StateBuckets 观测状态的离散桶数
// 说明：前StateBuckets-1桶按障碍距离对视野弧长的比例划分，
// 最后一桶表示视野内没有任何障碍
const StateBuckets = 10

const (
	redLightPenalty = 1.0  // 红灯前仍选择行驶的扣分
	arrivalReward   = 10.0 // 到达终点的加分
)

// Env 红绿灯决策的离散环境
// 功能：以车队首车为学习主体，将模拟器包装为reset/step接口
// 说明：观测为障碍距离的离散分桶，动作为保持制动或正常行驶；
// 每次Reset以相同配置重建世界，相同种子产生相同回合
type Env struct {
	job     string         // 任务名
	config  config.Config  // 构建世界的完整配置副本
	seeds   *input.Seeds   // 路网种子数据
	planner *route.Planner // 行程预校验用的规划器

	ctx      *task.Context // 当前回合的世界
	agent    *car.Car      // 学习主体（车队首车）
	prevDist float64       // 上一步到终点的直线距离
	done     bool          // 当前回合是否结束
}

// New 创建环境
// 功能：保存重建世界所需的配置与种子，并预构建行程校验用的路网
// 参数：job-任务名，c-配置对象，seeds-路网种子数据
// 返回：环境指针
// 说明：到达检测依赖车辆保持Arrived状态，因此强制关闭重新派发
func New(job string, c config.Config, seeds *input.Seeds) *Env {
	c.Fleet.Respawn = false
	graph := roadgraph.New(seeds.Nodes, seeds.Edges)
	return &Env{
		job:     job,
		config:  c,
		seeds:   seeds,
		planner: route.NewPlanner(graph),
	}
}

// Reset 开始新回合
// 功能：重建世界并推进到首个可观测状态
// 返回：初始观测与错误
// 算法说明：
// 1. 预校验显式行程的可达性，不可达作为错误返回而不是中断进程
// 2. 关闭上一回合的世界并以相同配置重建，相同种子产生相同回合
// 3. 执行一次Prepare使快照就绪，车队首车成为学习主体
func (e *Env) Reset() (State, error) {
	for _, t := range e.config.Fleet.Trips {
		if _, err := e.planner.ComputeRoute(t.Origin, t.Destination); err != nil {
			return 0, fmt.Errorf("trip %d->%d: %w", t.Origin, t.Destination, err)
		}
	}
	if e.ctx != nil {
		e.ctx.Close()
	}
	e.ctx = task.NewContext(e.job, e.config, e.seeds)
	e.ctx.Init()
	e.ctx.PrepareStep()
	cars := e.ctx.CarManager().Cars()
	if len(cars) == 0 {
		return 0, errors.New("no cars to act as the agent")
	}
	e.agent = cars[0].(*car.Car)
	e.prevDist = e.distanceToDestination()
	e.done = false
	log.Infof("episode start: agent %s", e.agent)
	return e.observe(), nil
}

// Step 推进一个tick
// 功能：应用动作并推进世界一步，返回新观测、奖励与回合结束标志
// 参数：action-ActionHold保持制动，ActionProceed正常行驶
// 返回：新观测、奖励、回合是否结束、错误
// 算法说明：
// 1. 以动作设置车辆的强制制动开关，推进一步后刷新快照
// 2. 奖励为本步向终点推进的距离；动作前视野内有红灯仍选择行驶时扣1分；
// 到达终点加10分
// 3. 到达终点或步数预算耗尽时回合结束
func (e *Env) Step(action Action) (State, float64, bool, error) {
	if e.ctx == nil {
		return 0, 0, false, errors.New("environment is not reset")
	}
	if e.done {
		return 0, 0, true, errors.New("episode is over, reset the environment")
	}
	view := car.NewFrontView(e.ctx, e.agent)
	_, redAhead := view.DistanceToLight()

	e.agent.SetHold(action == ActionHold)
	e.ctx.UpdateStep()
	e.ctx.PrepareStep()

	distance := e.distanceToDestination()
	reward := e.prevDist - distance
	e.prevDist = distance
	if action == ActionProceed && redAhead {
		reward -= redLightPenalty
	}
	arrived := e.agent.Status() == entity.CarStatusArrived
	if arrived {
		reward += arrivalReward
	}
	clock := e.ctx.Clock()
	e.done = arrived || clock.InternalStep+1 >= clock.END_STEP
	return e.observe(), reward, e.done, nil
}

// Close 关闭环境并释放当前回合的资源
func (e *Env) Close() {
	if e.ctx != nil {
		e.ctx.Close()
		e.ctx = nil
	}
}

// observe 生成当前观测
// 功能：取车辆障碍与红灯障碍中较近者，按其与视野弧长的比例分桶
// 说明：无障碍或路径耗尽时返回最后一桶（视野畅通）
func (e *Env) observe() State {
	view := car.NewFrontView(e.ctx, e.agent)
	if view.EndOfRoute() {
		return StateBuckets - 1
	}
	distance := mathutil.INF
	found := false
	if d, ok := view.DistanceToCar(); ok && d < distance {
		distance, found = d, true
	}
	if d, ok := view.DistanceToLight(); ok && d < distance {
		distance, found = d, true
	}
	horizon := view.Horizon()
	if !found || horizon <= 0 {
		return StateBuckets - 1
	}
	bucket := int(distance / horizon * (StateBuckets - 1))
	return State(lo.Clamp(bucket, 0, StateBuckets-2))
}

// 到终点节点的直线距离
func (e *Env) distanceToDestination() float64 {
	pos := e.agent.XY()
	dest := e.ctx.Graph().Position(e.agent.Destination())
	return geoutil.Magnitude(geometry.Point{X: dest.X - pos.X, Y: dest.Y - pos.Y})
}
