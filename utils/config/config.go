package config

import (
	"github.com/TimurZav/digital-city-cars/utils/geoutil"
)

// 障碍物扫描策略
const (
	StrategyLinear = "linear" // 参考实现：车队顺序线性扫描
	StrategyGrid   = "grid"   // 空间哈希网格加速，观测行为与linear一致
)

// 配置省略时的默认值
const (
	defaultStepInterval  = 1.0 / 60 // 每步时间间隔(s)
	defaultStepTotal     = 3600     // 总步数
	defaultFleetCount    = 10       // 车辆数
	defaultFleetMaxV     = 16.7     // 最高车速(m/s)
	defaultFleetMaxA     = 3.0      // 最大加速度(m/s^2)
	defaultFleetMaxBrake = 6.0      // 最大制动减速度(m/s^2)
	defaultLookAhead     = 3        // 前视路径点数
	defaultOutputBatch   = 256      // 快照批量写入条数
)

// RuntimeConfig 运行时配置
// 功能：存储仿真运行时的配置信息
// 说明：将YAML配置转换为运行时可用的配置对象，省略项填充默认值
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置
}

// NewRuntimeConfig 根据配置初始化全局变量
// 功能：创建运行时配置对象，进行配置验证与默认值填充
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针
// 算法说明：
// 1. 为省略的配置项填充默认值
// 2. 复制全局控制配置到快捷字段
// 说明：确保配置的正确性和一致性，为仿真运行提供有效配置
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{}

	applyDefaults(&config)
	rc.All = config
	rc.C = config.Control

	return rc
}

// applyDefaults 为省略的配置项填充默认值
// 说明：信号灯相关的默认值（预分频系数、切换周期）由light包持有，
// 零值在使用处转换，避免常数在两处重复定义
func applyDefaults(c *Config) {
	if c.Control.Step.Interval <= 0 {
		c.Control.Step.Interval = defaultStepInterval
	}
	if c.Control.Step.Total <= 0 {
		c.Control.Step.Total = defaultStepTotal
	}
	if c.Fleet.Count <= 0 && len(c.Fleet.Trips) == 0 {
		c.Fleet.Count = defaultFleetCount
	}
	if c.Fleet.MaxV <= 0 {
		c.Fleet.MaxV = defaultFleetMaxV
	}
	if c.Fleet.MaxA <= 0 {
		c.Fleet.MaxA = defaultFleetMaxA
	}
	if c.Fleet.MaxBrake <= 0 {
		c.Fleet.MaxBrake = defaultFleetMaxBrake
	}
	if c.Perception.LookAhead <= 0 {
		c.Perception.LookAhead = defaultLookAhead
	}
	if c.Perception.RelTol <= 0 {
		c.Perception.RelTol = geoutil.DefaultRelTol
	}
	if c.Perception.GridResolution <= 0 {
		c.Perception.GridResolution = geoutil.DefaultGridResolution
	}
	if c.Perception.Strategy == "" {
		c.Perception.Strategy = StrategyLinear
	}
	if c.Output.BatchSize <= 0 {
		c.Output.BatchSize = defaultOutputBatch
	}
}
