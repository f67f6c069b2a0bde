package config

// InputPath 指定输入数据来源的配置（MongoDB、文件系统）
// 功能：定义数据输入路径的配置结构，支持多种数据源
// 说明：支持MongoDB数据库和文件系统两种数据源，支持缓存机制
type InputPath struct {
	DB        string `yaml:"db"`                   // 数据库名
	Col       string `yaml:"col"`                  // 集合名前缀，实际集合为{col}.nodes与{col}.edges
	Cache     string `yaml:"cache,omitempty"`      // 缓存文件名，为空则采用默认路径{db}.{col}.json
	OnlyCache bool   `yaml:"only_cache,omitempty"` // 只从缓存中获取
	File      string `yaml:"file,omitempty"`       // 文件路径（优先级高于MongoDB）
}

// GetDb 获取数据库名
// 功能：返回配置的数据库名称
// 返回：数据库名称字符串
func (p InputPath) GetDb() string {
	return p.DB
}

// GetColl 获取集合名前缀
// 功能：返回配置的集合名前缀
// 返回：集合名前缀字符串
func (p InputPath) GetColl() string {
	return p.Col
}

// GetCachePath 获取缓存文件路径
// 功能：返回缓存文件的完整路径
// 返回：缓存文件路径字符串
// 算法说明：
// 1. 如果指定了缓存路径，直接返回
// 2. 否则使用默认命名规则：{数据库名}.{集合名前缀}.json
// 说明：提供统一的缓存路径获取接口
func (p InputPath) GetCachePath() string {
	if p.Cache != "" {
		return p.Cache
	}
	return p.DB + "." + p.Col + ".json"
}

// Input 指定模拟器所有输入数据的配置项
// 功能：定义仿真系统的所有输入数据配置
// 说明：目前仅包含路网一种输入
type Input struct {
	URI string    `yaml:"uri"` // MongoDB连接字符串
	Map InputPath `yaml:"map"` // 路网
}

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
// 功能：定义仿真时间控制参数
// 说明：控制仿真的时间范围、步长和精度
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔(s)
}

// TripSeed 显式指定的行程配置
type TripSeed struct {
	Origin      int64 `yaml:"origin"`      // 起点节点ID
	Destination int64 `yaml:"destination"` // 终点节点ID
}

// Fleet 车队配置
// 功能：定义车队规模、动力学参数与行程来源
// 说明：显式行程优先派发，数量不足Count时由管理器随机采样补齐
type Fleet struct {
	Count    int        `yaml:"count"`               // 车辆数
	MaxV     float64    `yaml:"max_v,omitempty"`     // 最高车速(m/s)
	MaxA     float64    `yaml:"max_a,omitempty"`     // 最大加速度(m/s^2)
	MaxBrake float64    `yaml:"max_brake,omitempty"` // 最大制动减速度(m/s^2，取正值)
	Seed     uint64     `yaml:"seed,omitempty"`      // 行程采样的随机种子
	Respawn  bool       `yaml:"respawn,omitempty"`   // 到达终点后是否重新派发行程
	Trips    []TripSeed `yaml:"trips,omitempty"`     // 显式指定的行程
}

// Perception 感知配置
// 功能：定义前视感知的参数与障碍扫描策略
type Perception struct {
	LookAhead      int     `yaml:"look_ahead,omitempty"`      // 前视路径点数K
	RelTol         float64 `yaml:"rel_tol,omitempty"`         // 坐标匹配的相对容差
	GridResolution int     `yaml:"grid_resolution,omitempty"` // 视野网格每段采样点数
	Strategy       string  `yaml:"strategy,omitempty"`        // 障碍扫描策略：linear|grid
}

// Lights 信号灯配置
// 功能：定义信号灯选点与相位切换参数
type Lights struct {
	Prescale     int     `yaml:"prescale,omitempty"`      // 选点预分频系数，0取默认值
	SwitchPeriod float64 `yaml:"switch_period,omitempty"` // 相位切换周期(s)，0取默认值
}

// Output 快照输出配置
// 功能：定义运行快照的MongoDB写入参数
// 说明：URI为空时输出完全禁用
type Output struct {
	URI       string  `yaml:"uri,omitempty"`        // MongoDB连接字符串
	DB        string  `yaml:"db,omitempty"`         // 数据库名
	Col       string  `yaml:"col,omitempty"`        // 集合名
	CarIDs    []int32 `yaml:"car_ids,omitempty"`    // 只记录这些车辆，为空则记录全部
	BatchSize int     `yaml:"batch_size,omitempty"` // 单次批量写入的文档数
}

// Control 模拟器控制配置
// 功能：定义仿真系统的核心控制参数
type Control struct {
	Step ControlStep `yaml:"step"`
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
// 说明：包含输入、控制、车队、感知、信号灯、输出所有配置项
type Config struct {
	Input      Input      `yaml:"input"`                // 输入
	Control    Control    `yaml:"control"`              // 模拟过程控制
	Fleet      Fleet      `yaml:"fleet"`                // 车队
	Perception Perception `yaml:"perception,omitempty"` // 感知
	Lights     Lights     `yaml:"lights,omitempty"`     // 信号灯
	Output     Output     `yaml:"output,omitempty"`     // 快照输出
}
