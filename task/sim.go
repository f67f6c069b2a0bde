package task

import (
	"flag"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// PrepareStep 准备阶段，每步执行一次
// 功能：推进时钟并提交所有实体的快照
// 算法说明：
// 1. 更新时钟：步数加一并计算当前时间
// 2. 心跳日志：定期输出系统状态信息
// 3. 依次执行信号灯与车辆管理器的准备操作
// 说明：快照提交后到下一次PrepareStep之前，所有实体读取到的都是
// 同一份世界状态，感知结果与实体更新顺序无关
func (ctx *Context) PrepareStep() {
	ctx.clock.InternalStep++
	ctx.clock.T = float64(ctx.clock.InternalStep) * ctx.clock.DT

	if ctx.clock.InternalStep%int32(*heartBeatInterval) == 0 {
		hour, minute, second := ctx.clock.GetHourMinuteSecond()
		log.Infof(
			"STEP: %d(%d:%d:%.2f)",
			ctx.clock.InternalStep,
			hour, minute, second,
		)
	}

	ctx.lightManager.Prepare()
	ctx.carManager.Prepare()
}

// UpdateStep 更新阶段，每步执行一次
// 功能：执行一步仿真逻辑并写出本步快照
// 算法说明：
// 1. 信号灯管理器推进相位计时
// 2. 车辆管理器推进所有行驶中的车辆
// 3. 快照输出记录本步已提交的车辆快照
// 说明：车辆感知读取的是信号灯快照，两个管理器的先后顺序不影响本步感知结果
func (ctx *Context) UpdateStep() {
	dt := ctx.clock.DT
	ctx.lightManager.Update(dt)
	ctx.carManager.Update(dt)

	if ctx.recorder != nil {
		ctx.recorder.Record(ctx.clock.InternalStep, ctx.carManager.Cars())
	}
}

// Run 运行
// 功能：初始化仿真世界后循环执行准备与更新阶段，直到到达结束步
// 说明：给定相同的配置与种子，运行结果完全可复现
func (ctx *Context) Run() {
	ctx.Init()
	for {
		ctx.PrepareStep()
		ctx.UpdateStep()
		if ctx.clock.InternalStep+1 >= ctx.clock.END_STEP {
			break
		}
	}
	log.Infof("engine complete")
	ctx.Close()
}
