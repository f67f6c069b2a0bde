package entity

// Manager依赖倒置

// entity/car/manager.go的依赖倒置
type ICarManager interface {
	// 初始化车队：explicit为配置指定的行程，数量不足时由管理器随机补齐
	Init(explicit []Trip)

	// 输入车辆ID，查找车辆，如果不存在则panic
	Get(id int32) ICar
	// 输入车辆ID，查找车辆，如果不存在则返回error
	GetOrError(id int32) (ICar, error)
	// 全部车辆，按车队顺序（感知扫描与快照输出都依赖该顺序）
	Cars() []ICar

	Prepare()          // 准备阶段
	Update(dt float64) // 更新阶段
}

// entity/light/manager.go的依赖倒置
type ILightManager interface {
	// 初始化：对路网节点分类并创建信号灯
	Init()

	// 输入信号灯所在节点ID，查找信号灯，如果不存在则panic
	Get(id int64) ILight
	// 输入信号灯所在节点ID，查找信号灯，如果不存在则返回error
	GetOrError(id int64) (ILight, error)
	// 全部信号灯，按节点选取顺序
	Lights() []ILight
	// 断头路节点ID集合（street count为1）
	Culdesacs() []int64

	Prepare()          // 准备阶段
	Update(dt float64) // 更新阶段
}
