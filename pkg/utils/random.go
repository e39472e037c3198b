package utils

import "math/rand/v2"

// RandomSource 均匀分布随机数源，返回 [0, 1) 区间的值
// *rand.Rand 满足此接口；测试中可注入确定性实现
type RandomSource interface {
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64 {
	return rand.Float64()
}

// DefaultRandom 返回基于 math/rand/v2 全局生成器的随机数源（不可复现）
func DefaultRandom() RandomSource {
	return globalRandom{}
}

// NewSeededRandom 返回可复现的随机数源，用于快照渲染和测试
func NewSeededRandom(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
