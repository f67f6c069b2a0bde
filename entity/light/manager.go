package light

import (
	"fmt"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"

	"github.com/TimurZav/digital-city-cars/entity"
)

// LightManager 信号灯管理器
// 功能：对路网节点分类（信号灯路口、断头路），创建并管理所有信号灯实体
type LightManager struct {
	ctx entity.ITaskContext

	data      map[int64]*Light
	lights    []*Light
	ilights   []entity.ILight // lights的接口视图，感知扫描每tick复用
	culdesacs []int64
}

// NewManager 创建信号灯管理器实例
// 功能：初始化信号灯管理器，创建内部数据结构
// 参数：ctx-任务上下文
// 返回：新创建的信号灯管理器实例
func NewManager(ctx entity.ITaskContext) *LightManager {
	return &LightManager{
		ctx:       ctx,
		data:      make(map[int64]*Light),
		lights:    make([]*Light, 0),
		culdesacs: make([]int64, 0),
	}
}

// Init 初始化所有信号灯
// 功能：按预分频规则选出信号灯节点，为每个节点计算进近方向向量并创建信号灯，
// 同时记录断头路节点集合
// 说明：选点顺序即信号灯的遍历顺序；方向向量计算相互独立，使用并行处理
func (m *LightManager) Init() {
	g := m.ctx.Graph()
	planner := m.ctx.Planner()
	prescale := m.ctx.RuntimeConfig().All.Lights.Prescale
	if prescale <= 0 {
		prescale = DefaultPrescale
	}

	m.culdesacs = FindCuldesacs(g)
	ids := FindTrafficLights(g, prescale)
	m.lights = parallel.GoMap(ids, func(id int64) *Light {
		pedigree := DeterminePedigree(g, planner, id)
		return newLight(m.ctx, g.Get(id), pedigree)
	})
	m.data = lo.SliceToMap(m.lights, func(l *Light) (int64, *Light) {
		return l.id, l
	})
	m.ilights = lo.Map(m.lights, func(l *Light, _ int) entity.ILight { return l })
	log.Infof("light manager: %d traffic lights, %d culdesacs", len(m.lights), len(m.culdesacs))
}

// Get 根据节点ID获取信号灯实例
// 功能：通过节点ID查找对应的信号灯对象，如果不存在则panic
// 参数：id-信号灯所在节点ID
// 返回：对应的信号灯实例，如果不存在则panic
func (m *LightManager) Get(id int64) entity.ILight {
	if l, ok := m.data[id]; !ok {
		log.Panicf("no id %d in light data", id)
		return nil
	} else {
		return l
	}
}

// GetOrError 根据节点ID获取信号灯实例（带错误处理）
// 功能：通过节点ID查找对应的信号灯对象，如果不存在则返回错误
// 参数：id-信号灯所在节点ID
// 返回：信号灯实例和错误信息，如果不存在则返回nil和错误
func (m *LightManager) GetOrError(id int64) (entity.ILight, error) {
	if l, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in light data", id)
	} else {
		return l, nil
	}
}

// 全部信号灯，按节点选取顺序
func (m *LightManager) Lights() []entity.ILight {
	return m.ilights
}

// 断头路节点ID集合
func (m *LightManager) Culdesacs() []int64 {
	return m.culdesacs
}

// Prepare 准备阶段，将所有信号灯的运行时数据写入快照
func (m *LightManager) Prepare() {
	for _, l := range m.lights {
		l.prepare()
	}
}

// Update 更新阶段，推进所有信号灯的相位计时
// 参数：dt-时间步长
func (m *LightManager) Update(dt float64) {
	for _, l := range m.lights {
		l.update(dt)
	}
}
