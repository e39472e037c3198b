package systems

import (
	"math"

	"github.com/decker502/pointswarm/pkg/config"
	"github.com/decker502/pointswarm/pkg/particle"
	"github.com/decker502/pointswarm/pkg/types"
	"github.com/decker502/pointswarm/pkg/utils"
)

// SignFunc 返回颜色循环所跟踪的周期信号，只关心其符号
type SignFunc func(elapsed float64) float64

// AppearanceSystem 点大小脉动与颜色循环
//
// 点大小按固定正弦在 MinSize 与 MaxSize 之间"呼吸"，与运动参数无关。
// 颜色循环跟踪 sin(elapsed*speed) 的符号：符号翻转且某集合自上次变色以来
// 已经历至少 ColorChangeInterval 次调用时，为该集合分配新的随机颜色。
type AppearanceSystem struct {
	cfg      config.AppearanceConfig
	registry *particle.Registry
	rng      utils.RandomSource
	signal   SignFunc

	previousSign float64
}

// NewAppearanceSystem 创建外观系统；rng 为 nil 时使用默认随机源
func NewAppearanceSystem(cfg config.AppearanceConfig, registry *particle.Registry, rng utils.RandomSource) *AppearanceSystem {
	if rng == nil {
		rng = utils.DefaultRandom()
	}
	as := &AppearanceSystem{
		cfg:          cfg,
		registry:     registry,
		rng:          rng,
		previousSign: 1,
	}
	as.signal = func(elapsed float64) float64 {
		return math.Sin(elapsed * as.cfg.Speed)
	}
	return as
}

// SetSignFunc 替换周期信号（测试中用于注入确定性翻转）
func (as *AppearanceSystem) SetSignFunc(fn SignFunc) {
	as.signal = fn
}

// Size 在 elapsed 时刻的点大小
// size = min + (max-min) * 0.5*(1+sin(elapsed*speed))
func (as *AppearanceSystem) Size(elapsed float64) float64 {
	return as.cfg.MinSize + (as.cfg.MaxSize-as.cfg.MinSize)*(0.5*(1+math.Sin(elapsed*as.cfg.Speed)))
}

// Update 对每个非空集合写入点大小并按节流规则更新颜色
func (as *AppearanceSystem) Update(elapsed float64) {
	size := as.Size(elapsed)
	current := as.signal(elapsed)
	flipped := sign(current) != sign(as.previousSign)

	var shared *types.RGB
	as.registry.ForEach(func(set *particle.Set) {
		if set.Empty() {
			return
		}
		set.Visual.Size = size

		set.Visual.ColorCounter++
		if !flipped || set.Visual.ColorCounter < as.cfg.ColorChangeInterval {
			return
		}

		if as.cfg.ColorScope == config.ColorScopeGlobal {
			if shared == nil {
				c := as.randomColor()
				shared = &c
			}
			set.Visual.Color = *shared
		} else {
			set.Visual.Color = as.randomColor()
		}
		set.Visual.ColorCounter = 0
	})

	as.previousSign = current
}

// randomColor 每个通道为 ColorWeights[i] 个均匀随机数之积
func (as *AppearanceSystem) randomColor() types.RGB {
	var ch [3]float64
	for i, w := range as.cfg.ColorWeights {
		v := 1.0
		for k := 0; k < w; k++ {
			v *= as.rng.Float64()
		}
		ch[i] = v
	}
	return types.RGB{R: ch[0], G: ch[1], B: ch[2]}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
