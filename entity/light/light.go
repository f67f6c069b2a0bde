package light

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"

	"github.com/TimurZav/digital-city-cars/entity"
	"github.com/TimurZav/digital-city-cars/entity/roadgraph"
	"github.com/TimurZav/digital-city-cars/utils/randengine"
)

// lightRuntime 信号灯运行时数据
// 说明：goSignals在相位切换时整体替换而不就地修改，
// 因此Prepare做浅拷贝即可保证快照在整个tick内稳定
type lightRuntime struct {
	goSignals  []bool  // 各进近方向的通行信号，true为放行
	remainingT float64 // 距下一次相位切换的剩余时间(s)
}

// Light 路口信号灯实体
// 功能：持有路口位置与各进近方向的出射向量，按固定周期交替放行信号
type Light struct {
	ctx entity.ITaskContext

	id       int64            // 所在路网节点ID
	position geometry.Point   // 路口坐标
	pedigree []geometry.Point // 各进近方向的出射方向向量，顺序与goSignals对应

	switchPeriod float64 // 相位切换周期(s)

	snapshot lightRuntime // snapshot，本tick内供感知读取
	runtime  lightRuntime // 运行时数据

	generator *randengine.Engine
}

// newLight 创建并初始化一个信号灯
// 功能：根据路口节点与进近方向向量创建信号灯，生成初始相位
// 参数：ctx-任务上下文，node-路口节点，pedigree-进近方向向量
// 返回：初始化完成的信号灯实例
// 说明：初始相位按方向序号奇偶交替放行；首次切换时刻由节点ID种子的
// 随机量错开，避免全城信号灯同步翻转
func newLight(ctx entity.ITaskContext, node *roadgraph.Node, pedigree []geometry.Point) *Light {
	switchPeriod := ctx.RuntimeConfig().All.Lights.SwitchPeriod
	if switchPeriod <= 0 {
		switchPeriod = DefaultSwitchPeriod
	}
	l := &Light{
		ctx:          ctx,
		id:           node.ID(),
		position:     node.Position(),
		pedigree:     pedigree,
		switchPeriod: switchPeriod,
		generator:    randengine.New(uint64(node.ID())),
	}
	goSignals := make([]bool, len(pedigree))
	for i := range goSignals {
		goSignals[i] = i%2 == 0
	}
	l.runtime = lightRuntime{
		goSignals:  goSignals,
		remainingT: l.generator.Float64() * l.switchPeriod,
	}
	l.snapshot = l.runtime
	return l
}

// prepare 准备阶段，将运行时数据写入快照
func (l *Light) prepare() {
	l.snapshot = l.runtime
}

// update 更新阶段，推进相位计时
// 功能：扣减剩余时间，到期时将所有方向的通行信号取反
// 参数：dt-时间步长
func (l *Light) update(dt float64) {
	l.runtime.remainingT -= dt
	if l.runtime.remainingT > 0 {
		return
	}
	flipped := make([]bool, len(l.runtime.goSignals))
	for i, g := range l.runtime.goSignals {
		flipped[i] = !g
	}
	l.runtime.goSignals = flipped
	for l.runtime.remainingT <= 0 {
		l.runtime.remainingT += l.switchPeriod
	}
}

// 获取信号灯所在节点ID
func (l *Light) ID() int64 {
	if l == nil {
		return -1
	}
	return l.id
}

// 获取信号灯位置
func (l *Light) Position() geometry.Point {
	return l.position
}

// 进近方向数，进近几何不可解析时会小于节点的度
func (l *Light) Degree() int {
	return len(l.pedigree)
}

// 各进近方向的出射方向向量
func (l *Light) Pedigree() []geometry.Point {
	return l.pedigree
}

// 第i个进近方向的通行信号（快照）
func (l *Light) Go(i int) bool {
	return l.snapshot.goSignals[i]
}

func (l *Light) String() string {
	return fmt.Sprintf("Light{Node=%d, Degree=%d}", l.id, len(l.pedigree))
}
