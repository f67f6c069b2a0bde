package task

import (
	"github.com/samber/lo"

	"github.com/TimurZav/digital-city-cars/clock"
	"github.com/TimurZav/digital-city-cars/entity"
	"github.com/TimurZav/digital-city-cars/entity/car"
	"github.com/TimurZav/digital-city-cars/entity/light"
	"github.com/TimurZav/digital-city-cars/entity/roadgraph"
	"github.com/TimurZav/digital-city-cars/entity/route"
	"github.com/TimurZav/digital-city-cars/output"
	"github.com/TimurZav/digital-city-cars/utils/config"
	"github.com/TimurZav/digital-city-cars/utils/input"
)

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态，替代全局变量
// 说明：管理仿真系统的所有组件，包括时钟、路网、管理器、配置与输出
type Context struct {

	// 任务名
	job string

	// 时钟
	clock *clock.Clock

	// 只读路网
	graph *roadgraph.Graph
	// 路径规划器
	planner *route.Planner

	// Light管理器
	lightManager entity.ILightManager
	// Car管理器
	carManager entity.ICarManager

	// 快照输出，未启用时为nil
	recorder *output.Recorder

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig

	// 用于初始化的输入
	seeds *input.Seeds
}

// NewContext 创建新的仿真任务上下文
// 功能：初始化仿真系统的所有组件和配置
// 参数：job-任务名称，c-配置对象，seeds-路网种子数据
// 返回：初始化完成的Context实例
// 说明：只创建组件骨架，路网构建与实体初始化在Init中完成
func NewContext(job string, c config.Config, seeds *input.Seeds) *Context {
	ctx := &Context{
		job:   job,
		seeds: seeds,
	}
	ctx.clock = clock.New(c.Control.Step)
	ctx.runtimeConfig = config.NewRuntimeConfig(c)

	// 新建各类模拟对象
	ctx.lightManager = light.NewManager(ctx)
	ctx.carManager = car.NewManager(ctx)

	return ctx
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) Graph() *roadgraph.Graph {
	return ctx.graph
}

func (ctx *Context) Planner() *route.Planner {
	return ctx.planner
}

func (ctx *Context) LightManager() entity.ILightManager {
	return ctx.lightManager
}

func (ctx *Context) CarManager() entity.ICarManager {
	return ctx.carManager
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

// Init 初始化仿真世界
// 功能：构建路网与规划器，按依赖顺序初始化各管理器，按需创建快照输出
// 算法说明：
// 1. 重置时钟
// 2. 由种子数据构建只读路网，创建路径规划器
// 3. 信号灯管理器先初始化（车队行程采样依赖断头路集合）
// 4. 车队管理器初始化，显式行程来自配置
// 5. 配置了输出URI时创建快照输出
func (ctx *Context) Init() {
	ctx.clock.Init()

	log.Infof("Node: %v", len(ctx.seeds.Nodes))
	log.Infof("Edge: %v", len(ctx.seeds.Edges))

	ctx.graph = roadgraph.New(ctx.seeds.Nodes, ctx.seeds.Edges)
	ctx.planner = route.NewPlanner(ctx.graph)

	ctx.lightManager.Init()
	trips := lo.Map(ctx.runtimeConfig.All.Fleet.Trips, func(t config.TripSeed, _ int) entity.Trip {
		return entity.Trip{Origin: t.Origin, Destination: t.Destination}
	})
	ctx.carManager.Init(trips)

	if ctx.runtimeConfig.All.Output.URI != "" {
		ctx.recorder = output.NewRecorder(ctx.job, ctx.runtimeConfig.All.Output)
	}
}

// Close 结束任务
// 说明：冲刷并关闭快照输出，可重复调用
func (ctx *Context) Close() {
	if ctx.recorder != nil {
		ctx.recorder.Close()
		ctx.recorder = nil
	}
}
