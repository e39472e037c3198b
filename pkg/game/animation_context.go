package game

import (
	"log"

	"github.com/decker502/pointswarm/pkg/clock"
	"github.com/decker502/pointswarm/pkg/config"
	"github.com/decker502/pointswarm/pkg/motion"
	"github.com/decker502/pointswarm/pkg/particle"
	"github.com/decker502/pointswarm/pkg/systems"
	"github.com/decker502/pointswarm/pkg/transition"
	"github.com/decker502/pointswarm/pkg/tween"
	"github.com/decker502/pointswarm/pkg/utils"
)

// ContextOptions 动画上下文的可选依赖
type ContextOptions struct {
	// Random 随机源，nil 时使用全局随机源
	Random utils.RandomSource
	// TimeSource 时间源，nil 时使用系统时间
	TimeSource clock.TimeSource
}

// AnimationContext 动画上下文
// 持有一次运行期间的全部动画状态，由帧循环驱动
type AnimationContext struct {
	Config       *config.AnimatorConfig
	Params       *motion.Parameters
	Registry     *particle.Registry
	Tweens       *tween.Engine
	Clock        *clock.Clock
	Displacement *systems.DisplacementSystem
	Appearance   *systems.AppearanceSystem
	Transitions  *transition.Machine
}

// NewAnimationContext 创建动画上下文
//
// 参数：
//   - cfg: 动画配置，nil 时使用默认配置
//   - opts: 可选依赖
//
// 返回：
//   - *AnimationContext: 运动参数初始为零（静止）的上下文
func NewAnimationContext(cfg *config.AnimatorConfig, opts ContextOptions) *AnimationContext {
	if cfg == nil {
		cfg = config.DefaultAnimatorConfig()
	}
	rng := opts.Random
	if rng == nil {
		rng = utils.DefaultRandom()
	}

	params := &motion.Parameters{}
	registry := particle.NewRegistry()
	tweens := tween.NewEngine()

	ctx := &AnimationContext{
		Config:       cfg,
		Params:       params,
		Registry:     registry,
		Tweens:       tweens,
		Clock:        clock.New(opts.TimeSource),
		Displacement: systems.NewDisplacementSystem(params, registry, rng),
		Appearance:   systems.NewAppearanceSystem(cfg.Appearance, registry, rng),
		Transitions:  transition.NewMachine(cfg, params, registry, tweens),
	}
	log.Printf("[AnimationContext] Created (copies=%d, disperse phases=%d)", len(cfg.Copies), len(cfg.Disperse.Phases))
	return ctx
}

// Tick 读取时钟并推进一帧
func (c *AnimationContext) Tick() {
	elapsed, delta := c.Clock.Tick()
	c.TickWith(elapsed, delta)
}

// TickWith 以给定时间推进一帧（无窗口或确定性步进时使用）
// 顺序：补间引擎 → 位移 → 外观，保证位移读取的是本帧补间后的参数
//
// 参数：
//   - elapsed: 自启动以来的秒数
//   - delta: 距上一帧的秒数
func (c *AnimationContext) TickWith(elapsed, delta float64) {
	c.Tweens.Update(delta)
	c.Displacement.Update(elapsed)
	c.Appearance.Update(elapsed)
}

// Close 释放全部粒子缓冲区
func (c *AnimationContext) Close() {
	c.Registry.Close()
	log.Printf("[AnimationContext] Closed")
}
