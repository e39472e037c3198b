package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/pointswarm/pkg/motion"
	"github.com/decker502/pointswarm/pkg/utils"
)

// ColorScope 颜色循环的作用范围
type ColorScope string

const (
	// ColorScopePerSet 每个粒子集合独立随机颜色
	ColorScopePerSet ColorScope = "perSet"
	// ColorScopeGlobal 同一帧变色的集合共用一个随机颜色
	ColorScopeGlobal ColorScope = "global"
)

// AnimatorConfig 点云动画配置
// 定义外观脉动、重置与扩散过渡、控制面板范围以及查看器参数
type AnimatorConfig struct {
	Appearance AppearanceConfig `yaml:"appearance"` // 点大小脉动与颜色循环
	Reset      ResetConfig      `yaml:"reset"`      // "重置为合并状态"过渡
	Disperse   DisperseConfig   `yaml:"disperse"`   // "扩散后替换"过渡
	Controls   ControlsConfig   `yaml:"controls"`   // 控制面板参数范围
	Viewer     ViewerConfig     `yaml:"viewer"`     // 查看器与相机
	Copies     []CopyConfig     `yaml:"copies"`     // 每个网格注册的副本及其初始姿态
}

// AppearanceConfig 外观调制配置
type AppearanceConfig struct {
	MinSize             float64    `yaml:"minSize"`             // 最小点大小
	MaxSize             float64    `yaml:"maxSize"`             // 最大点大小
	Speed               float64    `yaml:"speed"`               // 脉动角速度（弧度/秒）
	ColorChangeInterval int        `yaml:"colorChangeInterval"` // 两次变色之间的最少调用次数
	ColorWeights        [3]int     `yaml:"colorWeights"`        // 每个通道相乘的均匀随机数个数（越大越暗）
	ColorScope          ColorScope `yaml:"colorScope"`          // perSet 或 global
}

// ResetConfig 重置过渡配置
type ResetConfig struct {
	Duration     float64 `yaml:"duration"`     // 参数归零时长（秒）
	Easing       string  `yaml:"easing"`       // GSAP 风格缓动名
	SkipPose     bool    `yaml:"skipPose"`     // 完成后不把各集合的姿态补间回标准姿态
	PositionX    float64 `yaml:"positionX"`    // 标准姿态 X 位置
	PositionTime float64 `yaml:"positionTime"` // 位置补间时长
	RotationY    float64 `yaml:"rotationY"`    // 标准姿态 Y 轴旋转
	RotationTime float64 `yaml:"rotationTime"` // 旋转补间时长
}

// DisperseConfig 扩散过渡配置，按顺序执行各阶段
type DisperseConfig struct {
	Phases []PhaseConfig `yaml:"phases"`
}

// PhaseConfig 过渡脚本中的一个阶段
type PhaseConfig struct {
	Targets  map[string]float64 `yaml:"targets"`  // 运动参数字段 → 终值
	Duration float64            `yaml:"duration"` // 时长（秒）
	Easing   string             `yaml:"easing"`   // GSAP 风格缓动名
}

// ControlsConfig 控制面板的参数范围与调节方式
type ControlsConfig struct {
	Ranges       map[string]RangeConfig `yaml:"ranges"`
	Step         float64                `yaml:"step"`         // 键盘调节步长比例（相对范围宽度）
	PresetTime   float64                `yaml:"presetTime"`   // 应用预设的补间时长
	PresetEasing string                 `yaml:"presetEasing"` // 应用预设的缓动名
}

// RangeConfig 数值范围
type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Clamp 将值限制在范围内
func (r RangeConfig) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// ViewerConfig 查看器配置
type ViewerConfig struct {
	Width           int        `yaml:"width"`
	Height          int        `yaml:"height"`
	FOV             float64    `yaml:"fov"`             // 垂直视场角（度）
	CameraPosition  [3]float64 `yaml:"cameraPosition"`  // 相机位置
	SceneOffsetY    float64    `yaml:"sceneOffsetY"`    // 场景整体 Y 偏移
	FixedCamera     bool       `yaml:"fixedCamera"`     // 关闭相机自动环绕
	AutoRotateSpeed float64    `yaml:"autoRotateSpeed"` // 与 OrbitControls 相同的单位：2 表示 30 秒一圈
	PointScale      float64    `yaml:"pointScale"`      // 点大小到像素半径的换算系数
	Background      [3]float64 `yaml:"background"`      // 背景色
}

// CopyConfig 网格副本的初始姿态
type CopyConfig struct {
	PositionX float64    `yaml:"positionX"`
	RotationY float64    `yaml:"rotationY"`
	Color     [3]float64 `yaml:"color"` // 初始颜色，全 0 时为白色
}

// DefaultAnimatorConfig 返回默认配置
func DefaultAnimatorConfig() *AnimatorConfig {
	cfg := newAnimatorConfig()
	applyAnimatorDefaults(cfg)
	return cfg
}

// newAnimatorConfig 预填零值也合法的字段，YAML 中显式写出的值（包括 0）会覆盖它们
func newAnimatorConfig() *AnimatorConfig {
	return &AnimatorConfig{
		Appearance: AppearanceConfig{MaxSize: 0.5},
		Viewer:     ViewerConfig{SceneOffsetY: -1},
	}
}

// LoadAnimatorConfig 从 YAML 文件加载动画配置
// 参数：
//
//	path - 配置文件路径
//
// 返回：
//
//	*AnimatorConfig - 应用默认值并通过校验的配置
//	error - 读取、解析或校验失败时返回错误
func LoadAnimatorConfig(path string) (*AnimatorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read animator config file %s: %w", path, err)
	}

	cfg, err := ParseAnimatorConfig(data)
	if err != nil {
		return nil, fmt.Errorf("animator config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseAnimatorConfig 从 YAML 数据解析动画配置（用于嵌入的默认配置）
func ParseAnimatorConfig(data []byte) (*AnimatorConfig, error) {
	cfg := newAnimatorConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse animator config YAML: %w", err)
	}

	applyAnimatorDefaults(cfg)

	if err := validateAnimatorConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid animator config: %w", err)
	}
	return cfg, nil
}

// applyAnimatorDefaults 为缺失的可选字段设置默认值
func applyAnimatorDefaults(cfg *AnimatorConfig) {
	a := &cfg.Appearance
	// MinSize 默认 0；MaxSize 与 Viewer.SceneOffsetY 的默认值由 newAnimatorConfig 预填
	if a.Speed == 0 {
		a.Speed = 4
	}
	if a.ColorChangeInterval == 0 {
		a.ColorChangeInterval = 10
	}
	if a.ColorWeights == [3]int{} {
		// 颜色 = (rand, rand*rand, rand)，绿色通道偏暗
		a.ColorWeights = [3]int{1, 2, 1}
	}
	if a.ColorScope == "" {
		a.ColorScope = ColorScopePerSet
	}

	r := &cfg.Reset
	if r.Duration == 0 {
		r.Duration = 2
	}
	if r.Easing == "" {
		r.Easing = "power2.inOut"
	}
	if r.PositionTime == 0 {
		r.PositionTime = 0.5
	}
	if r.RotationY == 0 && r.RotationTime == 0 {
		r.RotationY = 1.5
	}
	if r.RotationTime == 0 {
		r.RotationTime = 1
	}

	if len(cfg.Disperse.Phases) == 0 {
		cfg.Disperse.Phases = []PhaseConfig{
			{
				Targets: map[string]float64{
					motion.FieldMaxDisplacement: 2.5,
					motion.FieldCircleRadius:    4,
				},
				Duration: 1.2,
				Easing:   "power2.in",
			},
			{
				Targets: map[string]float64{
					motion.FieldMaxDisplacement: 5,
					motion.FieldCircleRadius:    20,
				},
				Duration: 1.0,
				Easing:   "power3.in",
			},
		}
	}

	c := &cfg.Controls
	if c.Ranges == nil {
		c.Ranges = make(map[string]RangeConfig)
	}
	defaultRanges := map[string]RangeConfig{
		motion.FieldCircleRadius:    {Min: 0, Max: 20},
		motion.FieldCircleSpeed:     {Min: 0, Max: 10},
		motion.FieldMaxDisplacement: {Min: 0, Max: 5},
	}
	for name, rng := range defaultRanges {
		if _, ok := c.Ranges[name]; !ok {
			c.Ranges[name] = rng
		}
	}
	if c.Step == 0 {
		c.Step = 0.02
	}
	if c.PresetTime == 0 {
		c.PresetTime = 1
	}
	if c.PresetEasing == "" {
		c.PresetEasing = "power2.inOut"
	}

	v := &cfg.Viewer
	if v.Width == 0 {
		v.Width = 1280
	}
	if v.Height == 0 {
		v.Height = 720
	}
	if v.FOV == 0 {
		v.FOV = 45
	}
	if v.CameraPosition == [3]float64{} {
		v.CameraPosition = [3]float64{0, -2, 5}
	}
	if v.AutoRotateSpeed == 0 {
		v.AutoRotateSpeed = 2
	}
	if v.PointScale == 0 {
		v.PointScale = 8
	}

	if len(cfg.Copies) == 0 {
		// 每个顶点数组注册两份：x=+1 / 旋转 -1（红）与 x=-1 / 旋转 2（绿）
		cfg.Copies = []CopyConfig{
			{PositionX: 1, RotationY: -1, Color: [3]float64{1, 0, 0}},
			{PositionX: -1, RotationY: 2, Color: [3]float64{0, 1, 0}},
		}
	}
}

// validateAnimatorConfig 校验配置
func validateAnimatorConfig(cfg *AnimatorConfig) error {
	a := cfg.Appearance
	if a.MaxSize < a.MinSize {
		return fmt.Errorf("appearance.maxSize (%v) must be >= minSize (%v)", a.MaxSize, a.MinSize)
	}
	if a.ColorChangeInterval < 0 {
		return fmt.Errorf("appearance.colorChangeInterval must be >= 0, got %d", a.ColorChangeInterval)
	}
	for i, w := range a.ColorWeights {
		if w < 1 {
			return fmt.Errorf("appearance.colorWeights[%d] must be >= 1, got %d", i, w)
		}
	}
	if a.ColorScope != ColorScopePerSet && a.ColorScope != ColorScopeGlobal {
		return fmt.Errorf("appearance.colorScope must be %q or %q, got %q", ColorScopePerSet, ColorScopeGlobal, a.ColorScope)
	}

	if cfg.Reset.Duration < 0 {
		return fmt.Errorf("reset.duration must be >= 0, got %v", cfg.Reset.Duration)
	}
	if _, err := utils.EasingByName(cfg.Reset.Easing); err != nil {
		return fmt.Errorf("reset.easing: %w", err)
	}

	for i, phase := range cfg.Disperse.Phases {
		if len(phase.Targets) == 0 {
			return fmt.Errorf("disperse.phases[%d]: no targets", i)
		}
		var probe motion.Parameters
		for name := range phase.Targets {
			if probe.Field(name) == nil {
				return fmt.Errorf("disperse.phases[%d]: unknown parameter %q", i, name)
			}
		}
		if phase.Duration < 0 {
			return fmt.Errorf("disperse.phases[%d]: duration must be >= 0, got %v", i, phase.Duration)
		}
		if _, err := utils.EasingByName(phase.Easing); err != nil {
			return fmt.Errorf("disperse.phases[%d].easing: %w", i, err)
		}
	}

	for name, rng := range cfg.Controls.Ranges {
		if rng.Max < rng.Min {
			return fmt.Errorf("controls.ranges.%s: max (%v) < min (%v)", name, rng.Max, rng.Min)
		}
	}
	if _, err := utils.EasingByName(cfg.Controls.PresetEasing); err != nil {
		return fmt.Errorf("controls.presetEasing: %w", err)
	}

	if cfg.Viewer.Width <= 0 || cfg.Viewer.Height <= 0 {
		return fmt.Errorf("viewer size must be positive, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if cfg.Viewer.FOV <= 0 || cfg.Viewer.FOV >= 180 {
		return fmt.Errorf("viewer.fov must be in (0, 180), got %v", cfg.Viewer.FOV)
	}
	return nil
}

// EasingOrLinear 解析已通过校验的缓动名，未知名称退化为线性
func EasingOrLinear(name string) utils.EasingFunc {
	fn, err := utils.EasingByName(name)
	if err != nil {
		return utils.EaseLinear
	}
	return fn
}
