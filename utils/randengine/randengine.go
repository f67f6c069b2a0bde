// 随机数引擎，包装golang.org/x/exp/rand
// 说明：模拟主循环为单线程，引擎不加锁；相同种子产生相同序列
package randengine

import (
	"flag"
	"log"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，整体平移全部随机序列
)

// Engine 随机数引擎
// 说明：嵌入rand.Rand，直接暴露Intn、Float64等基础方法
type Engine struct {
	*rand.Rand
}

// New 创建随机数引擎
// 功能：以给定种子创建随机数引擎
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：实际种子为seed加上命令行的种子偏移量，
// 偏移量允许在不修改配置的情况下整体更换随机序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// DiscreteDistribution 按给定权重生成随机下标
// 功能：根据权重数组抽取离散分布的随机下标
// 参数：weight-权重数组，无需归一化
// 返回：[0, len(weight))内的随机下标
// 算法说明：
// 1. 生成[0, 总权重)内的随机数
// 2. 顺序累加权重，返回累计值首次超过随机数的下标
func (e *Engine) DiscreteDistribution(weight []float64) int32 {
	random := .0
	for _, w := range weight {
		random += w
	}
	random *= e.Float64()
	sum := 0.
	for i, w := range weight {
		sum += w
		if sum > random {
			return int32(i)
		}
	}
	log.Panicf("randengine: DiscreteDistribution: sum: %f random: %f", sum, random)
	return -1
}
