package systems

import (
	"math"

	"github.com/decker502/pointswarm/pkg/motion"
	"github.com/decker502/pointswarm/pkg/particle"
	"github.com/decker502/pointswarm/pkg/types"
	"github.com/decker502/pointswarm/pkg/utils"
)

// DisplacementSystem 每帧根据运动参数重新计算所有粒子集合的实时位置
//
// 每个点绕半径为 CircleRadius 的圆运动，角度偏移与索引成正比（N 个点均匀分布在圆上），
// 角速度为 CircleSpeed，并与全局经过时间同步；三个轴上叠加幅度为 MaxDisplacement 的均匀抖动。
// 每帧都从静止位置重新计算，运动无状态、不会发散。
type DisplacementSystem struct {
	params   *motion.Parameters
	registry *particle.Registry
	rng      utils.RandomSource
}

// NewDisplacementSystem 创建位移系统；rng 为 nil 时使用默认随机源
func NewDisplacementSystem(params *motion.Parameters, registry *particle.Registry, rng utils.RandomSource) *DisplacementSystem {
	if rng == nil {
		rng = utils.DefaultRandom()
	}
	return &DisplacementSystem{
		params:   params,
		registry: registry,
		rng:      rng,
	}
}

// Update 对每个已注册集合执行一次位移
// elapsed 为全局经过时间（秒）
func (ds *DisplacementSystem) Update(elapsed float64) {
	params := *ds.params
	ds.registry.ForEach(func(set *particle.Set) {
		Displace(set, params, elapsed, ds.rng)
	})
}

// AngleAt 第 i 个点（共 n 个）在 elapsed 时刻的环绕角度
func AngleAt(i, n int, elapsed, speed float64) float64 {
	return float64(i)/float64(n)*2*math.Pi + elapsed*speed
}

// Displace 完整覆盖 set.Live：
//
//	dx, dy, dz = (rand()-0.5) * maxDisplacement
//	angle = (i/N)*2π + elapsed*circleSpeed
//	live[i] = rest[i] + (cos(angle)*R + dx, dy, sin(angle)*R + dz)
//
// 零长度集合不做处理。参数全为 0 时输出严格等于静止位置。
func Displace(set *particle.Set, params motion.Parameters, elapsed float64, rng utils.RandomSource) {
	n := len(set.Rest)
	if n == 0 {
		return
	}

	if params.AtRest() {
		copy(set.Live, set.Rest)
		return
	}

	for i := 0; i < n; i++ {
		dx := (rng.Float64() - 0.5) * params.MaxDisplacement
		dy := (rng.Float64() - 0.5) * params.MaxDisplacement
		dz := (rng.Float64() - 0.5) * params.MaxDisplacement

		angle := AngleAt(i, n, elapsed, params.CircleSpeed)
		x := math.Cos(angle)*params.CircleRadius + dx
		z := math.Sin(angle)*params.CircleRadius + dz

		rest := set.Rest[i]
		set.Live[i] = types.Vec3{
			X: rest.X + x,
			Y: rest.Y + dy,
			Z: rest.Z + z,
		}
	}
}
