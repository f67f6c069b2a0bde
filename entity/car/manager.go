package car

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/TimurZav/digital-city-cars/entity"
	"github.com/TimurZav/digital-city-cars/entity/route"
	"github.com/TimurZav/digital-city-cars/utils/container"
	"github.com/TimurZav/digital-city-cars/utils/randengine"
)

// 一次行程采样的最大重试次数
const maxSampleAttempts = 1000

// CarManager 车辆管理器
// 功能：创建并管理车队，派发行程，推进所有车辆的仿真
type CarManager struct {
	ctx entity.ITaskContext

	data    map[int32]*Car
	cars    []*Car                            // 车队顺序，感知扫描与快照输出都按该顺序
	icars   []entity.ICar                     // cars的接口视图
	driving *container.IncrementalArray[*Car] // 行驶中的车辆

	scan      scanner
	generator *randengine.Engine

	// 随机行程的采样数据，Init时构建

	candidates []int64   // 候选起终点节点（排除断头路）
	weights    []float64 // 终点采样权重（street count）
}

// NewManager 创建车辆管理器实例
// 功能：初始化车辆管理器，创建内部数据结构
// 参数：ctx-任务上下文
// 返回：新创建的车辆管理器实例
func NewManager(ctx entity.ITaskContext) *CarManager {
	return &CarManager{
		ctx:     ctx,
		data:    make(map[int32]*Car),
		cars:    make([]*Car, 0),
		driving: container.NewIncrementalArray[*Car](),
	}
}

// Init 初始化车队
// 功能：按配置创建车辆并派发行程，显式行程优先，数量不足时随机采样补齐
// 参数：explicit-配置显式指定的行程
// 算法说明：
// 1. 构建随机行程的候选节点与终点权重（street count加权，排除断头路）
// 2. 车辆总数取配置数量与显式行程数的较大值
// 3. 显式行程不可达视为配置错误，随机行程不可达时重新采样
// 说明：行程采样共享一个随机数引擎，创建过程保持顺序执行以确保可复现；
// 依赖信号灯管理器先完成初始化（需要断头路集合）
func (m *CarManager) Init(explicit []entity.Trip) {
	cfg := m.ctx.RuntimeConfig().All
	m.scan = newScanner(cfg.Perception.Strategy, cfg.Perception.RelTol)
	m.generator = randengine.New(cfg.Fleet.Seed)

	culdesacs := lo.SliceToMap(m.ctx.LightManager().Culdesacs(), func(id int64) (int64, struct{}) {
		return id, struct{}{}
	})
	for _, n := range m.ctx.Graph().Nodes() {
		if _, ok := culdesacs[n.ID()]; ok {
			continue
		}
		m.candidates = append(m.candidates, n.ID())
		m.weights = append(m.weights, float64(n.StreetCount()))
	}
	if len(m.candidates) < 2 {
		log.Panicf("not enough nodes to dispatch trips: %d candidates", len(m.candidates))
	}

	count := cfg.Fleet.Count
	if len(explicit) > count {
		count = len(explicit)
	}
	for i := 0; i < count; i++ {
		c := newCar(m.ctx, int32(i), m.scan)
		var trip entity.Trip
		var path *route.Path
		if i < len(explicit) {
			trip = explicit[i]
			var err error
			if path, err = m.ctx.Planner().DecompileRoute(trip.Origin, trip.Destination); err != nil {
				log.Panicf("explicit trip %v is not routable: %v", trip, err)
			}
		} else {
			trip, path = m.sampleTrip()
		}
		c.startTrip(trip, path)
		m.cars = append(m.cars, c)
		m.data[c.id] = c
		m.driving.Add(c)
	}
	m.icars = lo.Map(m.cars, func(c *Car, _ int) entity.ICar { return c })
	log.Infof("car manager: %d cars dispatched (%d explicit)", len(m.cars), len(explicit))
}

// sampleTrip 随机采样一个可行行程
// 功能：起点在候选节点中均匀采样，终点按street count加权采样
// 返回：行程起终点与解编好的行驶路径
// 说明：起终点重合或不可达时重试；重试超限说明路网连通性不足，视为输入错误
func (m *CarManager) sampleTrip() (entity.Trip, *route.Path) {
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		origin := m.candidates[m.generator.Intn(len(m.candidates))]
		destination := m.candidates[m.generator.DiscreteDistribution(m.weights)]
		if origin == destination {
			continue
		}
		path, err := m.ctx.Planner().DecompileRoute(origin, destination)
		if err != nil {
			log.Warnf("trip %d->%d is not routable, resampling", origin, destination)
			continue
		}
		return entity.Trip{Origin: origin, Destination: destination}, path
	}
	log.Panicf("failed to sample a routable trip in %d attempts", maxSampleAttempts)
	return entity.Trip{}, nil
}

// Get 根据车辆ID获取车辆实例
// 功能：通过车辆ID查找对应的车辆对象，如果不存在则panic
// 参数：id-车辆ID
// 返回：对应的车辆实例，如果不存在则panic
func (m *CarManager) Get(id int32) entity.ICar {
	if c, ok := m.data[id]; !ok {
		log.Panicf("no id %d in car data", id)
		return nil
	} else {
		return c
	}
}

// GetOrError 根据车辆ID获取车辆实例（带错误处理）
// 功能：通过车辆ID查找对应的车辆对象，如果不存在则返回错误
// 参数：id-车辆ID
// 返回：车辆实例和错误信息，如果不存在则返回nil和错误
func (m *CarManager) GetOrError(id int32) (entity.ICar, error) {
	if c, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in car data", id)
	} else {
		return c, nil
	}
}

// 全部车辆，按车队顺序
func (m *CarManager) Cars() []entity.ICar {
	return m.icars
}

// Prepare 准备阶段
// 功能：应用上一tick的车队增减，提交所有车辆快照并重建扫描索引
func (m *CarManager) Prepare() {
	m.driving.Prepare()
	for _, c := range m.cars {
		c.prepare()
	}
	m.scan.rebuild(m.icars)
}

// Update 更新阶段
// 功能：推进所有行驶中的车辆，处理到达与重新派发
// 参数：dt-时间步长
// 说明：车辆只写自身运行时数据、只读他车快照，更新顺序不影响结果，
// 但为保证与随机重派发的可复现性仍保持顺序执行
func (m *CarManager) Update(dt float64) {
	for _, c := range m.driving.Data() {
		c.update(dt)
	}
	for _, c := range m.driving.Data() {
		if c.runtime.status != entity.CarStatusArrived {
			continue
		}
		m.driving.Remove(c)
		if m.ctx.RuntimeConfig().All.Fleet.Respawn {
			trip, path := m.sampleTrip()
			c.startTrip(trip, path)
			m.driving.Add(c)
			log.Debugf("car %d respawned: %v", c.id, trip)
		}
	}
}
