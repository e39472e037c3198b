package systems

import (
	"math"
	"testing"

	"github.com/decker502/pointswarm/pkg/config"
	"github.com/decker502/pointswarm/pkg/particle"
	"github.com/decker502/pointswarm/pkg/types"
	"github.com/decker502/pointswarm/pkg/utils"
)

func defaultAppearance() config.AppearanceConfig {
	return config.DefaultAnimatorConfig().Appearance
}

// alternatingSign 每次调用翻转一次符号
func alternatingSign() SignFunc {
	s := 1.0
	return func(float64) float64 {
		s = -s
		return s
	}
}

func TestAppearanceSizePulse(t *testing.T) {
	reg := particle.NewRegistry()
	set := reg.Register([]types.Vec3{{}})
	as := NewAppearanceSystem(defaultAppearance(), reg, constRandom(0.5))

	tests := []struct {
		name    string
		elapsed float64
		want    float64
	}{
		{"起点", 0, 0.25},
		{"波峰", math.Pi / 8, 0.5},
		{"波谷", 3 * math.Pi / 8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			as.Update(tt.elapsed)
			if math.Abs(set.Visual.Size-tt.want) > 1e-12 {
				t.Errorf("Size at %v = %v, want %v", tt.elapsed, set.Visual.Size, tt.want)
			}
		})
	}

	for e := 0.0; e < 10; e += 0.01 {
		if s := as.Size(e); s < 0 || s > 0.5 {
			t.Fatalf("Size(%v) = %v outside [0, 0.5]", e, s)
		}
	}
}

// TestAppearanceColorThrottling 符号每帧翻转时，颜色最多每 interval 帧变化一次
func TestAppearanceColorThrottling(t *testing.T) {
	cfg := defaultAppearance()
	cfg.ColorChangeInterval = 10

	reg := particle.NewRegistry()
	set := reg.Register([]types.Vec3{{X: 1}})
	as := NewAppearanceSystem(cfg, reg, utils.NewSeededRandom(3))
	as.SetSignFunc(alternatingSign())

	var changes []int
	last := set.Visual.Color
	for frame := 1; frame <= 100; frame++ {
		as.Update(float64(frame) / 60)
		if set.Visual.Color != last {
			changes = append(changes, frame)
			last = set.Visual.Color
		}
	}

	if len(changes) == 0 {
		t.Fatal("color never changed")
	}
	for i := 1; i < len(changes); i++ {
		if changes[i]-changes[i-1] < cfg.ColorChangeInterval {
			t.Errorf("color changed at frames %d and %d, closer than %d", changes[i-1], changes[i], cfg.ColorChangeInterval)
		}
	}
	if len(changes) > 100/cfg.ColorChangeInterval {
		t.Errorf("%d color changes in 100 frames, want at most %d", len(changes), 100/cfg.ColorChangeInterval)
	}
}

// TestAppearanceNoFlipNoChange 符号不翻转时颜色保持不变
func TestAppearanceNoFlipNoChange(t *testing.T) {
	reg := particle.NewRegistry()
	set := reg.Register([]types.Vec3{{}})
	as := NewAppearanceSystem(defaultAppearance(), reg, utils.NewSeededRandom(3))
	as.SetSignFunc(func(float64) float64 { return 1 })

	for i := 0; i < 100; i++ {
		as.Update(float64(i))
	}
	if set.Visual.Color != (types.RGB{}) {
		t.Errorf("color changed without a sign flip: %v", set.Visual.Color)
	}
	if set.Visual.ColorCounter != 100 {
		t.Errorf("ColorCounter = %d, want 100", set.Visual.ColorCounter)
	}
}

// TestAppearanceColorWeights 通道颜色为 weight 个随机数之积
func TestAppearanceColorWeights(t *testing.T) {
	cfg := defaultAppearance()
	cfg.ColorChangeInterval = 1
	reg := particle.NewRegistry()
	set := reg.Register([]types.Vec3{{}})
	as := NewAppearanceSystem(cfg, reg, constRandom(0.5))
	as.SetSignFunc(alternatingSign())

	as.Update(0)
	want := types.RGB{R: 0.5, G: 0.25, B: 0.5}
	if set.Visual.Color != want {
		t.Errorf("Color = %v, want %v", set.Visual.Color, want)
	}
}

// TestAppearanceScopes perSet 各自取色，global 共用一个颜色
func TestAppearanceScopes(t *testing.T) {
	for _, scope := range []config.ColorScope{config.ColorScopePerSet, config.ColorScopeGlobal} {
		t.Run(string(scope), func(t *testing.T) {
			cfg := defaultAppearance()
			cfg.ColorChangeInterval = 1
			cfg.ColorScope = scope
			reg := particle.NewRegistry()
			a := reg.Register([]types.Vec3{{}})
			b := reg.Register([]types.Vec3{{}})
			as := NewAppearanceSystem(cfg, reg, &sequenceRandom{values: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}})
			as.SetSignFunc(alternatingSign())

			as.Update(0)
			same := a.Visual.Color == b.Visual.Color
			if scope == config.ColorScopeGlobal && !same {
				t.Errorf("global scope: colors differ %v vs %v", a.Visual.Color, b.Visual.Color)
			}
			if scope == config.ColorScopePerSet && same {
				t.Errorf("perSet scope: colors should differ, both %v", a.Visual.Color)
			}
		})
	}
}

// TestAppearanceSkipsEmptySets 零长度集合不被修改
func TestAppearanceSkipsEmptySets(t *testing.T) {
	cfg := defaultAppearance()
	cfg.ColorChangeInterval = 1
	reg := particle.NewRegistry()
	empty := reg.Register(nil)
	as := NewAppearanceSystem(cfg, reg, constRandom(0.5))
	as.SetSignFunc(alternatingSign())

	for i := 0; i < 5; i++ {
		as.Update(float64(i))
	}
	if empty.Visual != (particle.Visual{}) {
		t.Errorf("empty set visual modified: %+v", empty.Visual)
	}
}
