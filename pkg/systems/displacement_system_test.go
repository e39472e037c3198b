package systems

import (
	"math"
	"testing"

	"github.com/decker502/pointswarm/pkg/motion"
	"github.com/decker502/pointswarm/pkg/particle"
	"github.com/decker502/pointswarm/pkg/types"
	"github.com/decker502/pointswarm/pkg/utils"
)

// constRandom 总是返回同一个值的随机源
type constRandom float64

func (c constRandom) Float64() float64 { return float64(c) }

// sequenceRandom 按顺序返回预设值的随机源
type sequenceRandom struct {
	values []float64
	next   int
}

func (s *sequenceRandom) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func ringVertices(n int) []types.Vec3 {
	out := make([]types.Vec3, n)
	for i := range out {
		out[i] = types.Vec3{X: float64(i) * 0.37, Y: -float64(i) * 1.1, Z: 0.25 * float64(i%3)}
	}
	return out
}

// TestDisplacementIdentityAtRest 参数全为 0 时实时位置严格等于静止位置
func TestDisplacementIdentityAtRest(t *testing.T) {
	reg := particle.NewRegistry()
	set := reg.Register(ringVertices(17))
	params := &motion.Parameters{}
	ds := NewDisplacementSystem(params, reg, utils.NewSeededRandom(1))

	for _, elapsed := range []float64{0, 0.016, 1.5, 1234.5678} {
		// 先弄脏缓冲区，确认每帧完整覆盖
		for i := range set.Live {
			set.Live[i] = types.Vec3{X: 99, Y: 99, Z: 99}
		}
		ds.Update(elapsed)
		for i := range set.Rest {
			if set.Live[i] != set.Rest[i] {
				t.Fatalf("elapsed=%v: Live[%d]=%v, want Rest %v", elapsed, i, set.Live[i], set.Rest[i])
			}
		}
	}
}

// TestDisplacementAngularSpacing 无抖动时相邻点角度差恰为 2π/N
func TestDisplacementAngularSpacing(t *testing.T) {
	const n = 12
	for i := 0; i < n-1; i++ {
		diff := AngleAt(i+1, n, 3.3, 0.7) - AngleAt(i, n, 3.3, 0.7)
		if math.Abs(diff-2*math.Pi/n) > 1e-12 {
			t.Errorf("angle step between %d and %d = %v, want %v", i, i+1, diff, 2*math.Pi/n)
		}
	}

	// 静止位置全为原点时，点应位于半径为 R 的圆上，且按角度均匀分布
	reg := particle.NewRegistry()
	set := reg.Register(make([]types.Vec3, n))
	params := motion.Parameters{CircleRadius: 2, CircleSpeed: 0.7}
	Displace(set, params, 3.3, constRandom(0.9))

	for i, p := range set.Live {
		if math.Abs(math.Hypot(p.X, p.Z)-2) > 1e-12 || p.Y != 0 {
			t.Errorf("point %d = %v, want on circle radius 2 in the XZ plane", i, p)
		}
		want := AngleAt(i, n, 3.3, 0.7)
		if math.Abs(p.X-2*math.Cos(want)) > 1e-12 || math.Abs(p.Z-2*math.Sin(want)) > 1e-12 {
			t.Errorf("point %d = %v, want angle %v", i, p, want)
		}
	}
}

// TestDisplacementFormula 使用确定随机序列验证完整公式
func TestDisplacementFormula(t *testing.T) {
	reg := particle.NewRegistry()
	rest := []types.Vec3{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 0, Z: 4}}
	set := reg.Register(rest)
	params := motion.Parameters{CircleRadius: 1.5, CircleSpeed: 2, MaxDisplacement: 4}
	rng := &sequenceRandom{values: []float64{0.75, 0.25, 0.5, 1, 0, 0.625}}
	elapsed := 0.4

	Displace(set, params, elapsed, rng)

	draws := [][3]float64{{0.75, 0.25, 0.5}, {1, 0, 0.625}}
	for i := range rest {
		dx := (draws[i][0] - 0.5) * 4
		dy := (draws[i][1] - 0.5) * 4
		dz := (draws[i][2] - 0.5) * 4
		angle := float64(i)/2*2*math.Pi + elapsed*2
		want := types.Vec3{
			X: rest[i].X + math.Cos(angle)*1.5 + dx,
			Y: rest[i].Y + dy,
			Z: rest[i].Z + math.Sin(angle)*1.5 + dz,
		}
		got := set.Live[i]
		if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 || math.Abs(got.Z-want.Z) > 1e-12 {
			t.Errorf("Live[%d] = %v, want %v", i, got, want)
		}
	}
}

// TestDisplacementStateless 每帧从静止位置重新计算，不会累积
func TestDisplacementStateless(t *testing.T) {
	reg := particle.NewRegistry()
	set := reg.Register(ringVertices(5))
	params := &motion.Parameters{CircleRadius: 1, CircleSpeed: 1, MaxDisplacement: 0.5}
	ds := NewDisplacementSystem(params, reg, constRandom(0.8))

	ds.Update(2)
	first := append([]types.Vec3(nil), set.Live...)
	for i := 0; i < 50; i++ {
		ds.Update(2)
	}
	for i := range first {
		if set.Live[i] != first[i] {
			t.Fatalf("Live[%d] drifted: %v -> %v", i, first[i], set.Live[i])
		}
	}
}

// TestDisplacementJitterBounded 抖动每个轴不超过 maxDisplacement/2
func TestDisplacementJitterBounded(t *testing.T) {
	reg := particle.NewRegistry()
	set := reg.Register(ringVertices(200))
	params := motion.Parameters{MaxDisplacement: 3}
	Displace(set, params, 1, utils.NewSeededRandom(7))

	for i := range set.Live {
		d := set.Live[i].Sub(set.Rest[i])
		if math.Abs(d.X) > 1.5 || math.Abs(d.Y) > 1.5 || math.Abs(d.Z) > 1.5 {
			t.Fatalf("point %d jitter %v exceeds 1.5", i, d)
		}
	}
}

// TestDisplacementEmptySet 零长度集合是空操作
func TestDisplacementEmptySet(t *testing.T) {
	reg := particle.NewRegistry()
	reg.Register(nil)
	reg.RegisterFlat([]float32{1, 2})
	params := &motion.Parameters{CircleRadius: 5, CircleSpeed: 1, MaxDisplacement: 1}
	ds := NewDisplacementSystem(params, reg, nil)
	ds.Update(1)

	reg.ForEach(func(s *particle.Set) {
		if len(s.Live) != 0 {
			t.Errorf("set %d should stay empty, got %d points", s.ID, len(s.Live))
		}
	})
}

// TestDisplacementReadsLiveParameters 系统每帧读取共享参数的当前值
func TestDisplacementReadsLiveParameters(t *testing.T) {
	reg := particle.NewRegistry()
	set := reg.Register([]types.Vec3{{}})
	params := &motion.Parameters{}
	ds := NewDisplacementSystem(params, reg, constRandom(0.5))

	ds.Update(0)
	if set.Live[0] != (types.Vec3{}) {
		t.Fatalf("Live[0] = %v, want origin", set.Live[0])
	}

	params.CircleRadius = 3
	ds.Update(0)
	if math.Abs(set.Live[0].X-3) > 1e-12 {
		t.Errorf("Live[0].X = %v, want 3 after radius change", set.Live[0].X)
	}
}
