// Package control 提供运动参数的交互调节面板
//
// 面板直接写入共享运动参数，范围由配置限制。
// 正在运行的过渡补间会在下一帧覆盖手动写入的字段；
// 应用预设则经由过渡状态机，会中止正在运行的过渡。
package control

import (
	"fmt"
	"log"

	"github.com/decker502/pointswarm/pkg/config"
	"github.com/decker502/pointswarm/pkg/game"
	"github.com/decker502/pointswarm/pkg/motion"
	"github.com/decker502/pointswarm/pkg/transition"
)

// Panel 调参面板
type Panel struct {
	ctx     *game.AnimationContext
	presets *game.PresetManager
	cfg     config.ControlsConfig
}

// NewPanel 创建面板
//
// 参数：
//   - ctx: 动画上下文
//   - presets: 预设管理器，nil 时使用仅内存的管理器
func NewPanel(ctx *game.AnimationContext, presets *game.PresetManager) *Panel {
	if presets == nil {
		presets = game.NewPresetManager(nil)
	}
	return &Panel{
		ctx:     ctx,
		presets: presets,
		cfg:     ctx.Config.Controls,
	}
}

// Range 字段的可调范围
func (p *Panel) Range(field string) (config.RangeConfig, bool) {
	r, ok := p.cfg.Ranges[field]
	return r, ok
}

// Set 写入参数，超出范围时限制到边界
//
// 返回：
//   - float64: 实际写入的值
//   - error: 未知字段
func (p *Panel) Set(field string, value float64) (float64, error) {
	ptr := p.ctx.Params.Field(field)
	if ptr == nil {
		return 0, fmt.Errorf("unknown parameter %q", field)
	}
	if r, ok := p.cfg.Ranges[field]; ok {
		value = r.Clamp(value)
	}
	*ptr = value
	return value, nil
}

// Nudge 在当前值上增加 delta（结果同样受范围限制）
func (p *Panel) Nudge(field string, delta float64) (float64, error) {
	ptr := p.ctx.Params.Field(field)
	if ptr == nil {
		return 0, fmt.Errorf("unknown parameter %q", field)
	}
	return p.Set(field, *ptr+delta)
}

// StepSize 键盘调节一步的增量：范围宽度 × 步长比例
func (p *Panel) StepSize(field string) float64 {
	r, ok := p.cfg.Ranges[field]
	if !ok {
		return p.cfg.Step
	}
	return (r.Max - r.Min) * p.cfg.Step
}

// Values 当前参数值
func (p *Panel) Values() map[string]float64 {
	return p.ctx.Params.Values()
}

// Reset 触发"重置"过渡
func (p *Panel) Reset() {
	p.ctx.Transitions.Reset()
}

// SwitchModel 扩散当前点云后切换到 loader 提供的新点云
func (p *Panel) SwitchModel(loader transition.SourceLoader) {
	p.ctx.Transitions.DisperseThenSwap(loader)
}

// SavePreset 以当前参数保存命名预设
func (p *Panel) SavePreset(name string) error {
	if err := p.presets.Put(name, *p.ctx.Params); err != nil {
		return fmt.Errorf("failed to save preset %q: %w", name, err)
	}
	log.Printf("[Panel] Saved preset %q: %+v", name, *p.ctx.Params)
	return nil
}

// ApplyPreset 把参数补间到命名预设（中止正在运行的重置或扩散）
func (p *Panel) ApplyPreset(name string) error {
	preset, ok := p.presets.Get(name)
	if !ok {
		return fmt.Errorf("preset %q not found", name)
	}
	targets := make(map[string]float64, len(motion.FieldNames))
	for field, v := range preset.Values() {
		if r, ok := p.cfg.Ranges[field]; ok {
			v = r.Clamp(v)
		}
		targets[field] = v
	}
	p.ctx.Transitions.ApplyTargets(targets, p.cfg.PresetTime, config.EasingOrLinear(p.cfg.PresetEasing))
	log.Printf("[Panel] Applying preset %q over %.2fs", name, p.cfg.PresetTime)
	return nil
}

// Presets 已保存的预设名
func (p *Panel) Presets() []string {
	return p.presets.Names()
}
