// Package transition 编排运动参数的脚本化过渡
//
// 两个过渡：
//   - Reset: Idle → Resetting → Idle，参数补间归零，完成后把各集合姿态补间回标准姿态
//   - DisperseThenSwap: Idle → Dispersing → Swapping → Idle，参数分阶段扩散，
//     完成后清空注册表、加载新点云并执行 Reset
//
// 并发请求采用"中止并重启"：每次请求递增代号，被取代脚本的回调全部失效；
// 新脚本的补间在共享参数上取代旧补间。因此扩散途中调用 Reset 或 ApplyTargets
// 会取消待执行的替换。
package transition

import (
	"fmt"
	"log"

	"github.com/decker502/pointswarm/pkg/config"
	"github.com/decker502/pointswarm/pkg/motion"
	"github.com/decker502/pointswarm/pkg/particle"
	"github.com/decker502/pointswarm/pkg/tween"
	"github.com/decker502/pointswarm/pkg/types"
	"github.com/decker502/pointswarm/pkg/utils"
)

// State 过渡状态
type State int

const (
	StateIdle State = iota
	StateResetting
	StateDispersing
	StateSwapping
)

// String 状态名
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateResetting:
		return "Resetting"
	case StateDispersing:
		return "Dispersing"
	case StateSwapping:
		return "Swapping"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// SourceLoader 加载新的点云源，返回零个或多个顶点数组
type SourceLoader func() ([][]types.Vec3, error)

// Machine 过渡状态机
type Machine struct {
	reset    config.ResetConfig
	disperse config.DisperseConfig
	copies   []config.CopyConfig

	params   *motion.Parameters
	registry *particle.Registry
	tweens   *tween.Engine

	state      State
	generation uint64
	lastErr    error

	// OnStateChange 状态变化时调用（可为 nil）
	OnStateChange func(from, to State)
	// OnPoseReset 参数归零完成、姿态补间开始时调用（相机等外部副作用的挂钩，可为 nil）
	OnPoseReset func()
}

// NewMachine 创建过渡状态机
//
// 参数：
//   - cfg: 动画配置（使用其中的 Reset、Disperse、Copies）
//   - params: 共享运动参数
//   - registry: 粒子集合注册表
//   - tweens: 补间引擎
func NewMachine(cfg *config.AnimatorConfig, params *motion.Parameters, registry *particle.Registry, tweens *tween.Engine) *Machine {
	return &Machine{
		reset:    cfg.Reset,
		disperse: cfg.Disperse,
		copies:   cfg.Copies,
		params:   params,
		registry: registry,
		tweens:   tweens,
		state:    StateIdle,
	}
}

// State 当前状态
func (m *Machine) State() State {
	return m.state
}

// LastError 最近一次加载失败的错误（成功加载后清空）
func (m *Machine) LastError() error {
	return m.lastErr
}

func (m *Machine) setState(s State) {
	if s == m.state {
		return
	}
	from := m.state
	m.state = s
	log.Printf("[Transition] %s -> %s", from, s)
	if m.OnStateChange != nil {
		m.OnStateChange(from, s)
	}
}

// begin 开始新脚本，使所有旧脚本的回调失效
func (m *Machine) begin() uint64 {
	m.generation++
	return m.generation
}

// Reset 把运动参数补间归零（任何状态下均可调用）
func (m *Machine) Reset() {
	gen := m.begin()
	m.setState(StateResetting)

	easing := config.EasingOrLinear(m.reset.Easing)
	m.tweens.To(m.params, motion.Zero(), m.reset.Duration, easing, func() {
		if gen != m.generation {
			return
		}
		if !m.reset.SkipPose {
			m.resetPose()
		}
		if m.OnPoseReset != nil {
			m.OnPoseReset()
		}
		m.setState(StateIdle)
	})
}

// resetPose 把每个集合的姿态补间回标准姿态
func (m *Machine) resetPose() {
	m.registry.ForEach(func(set *particle.Set) {
		m.tweens.To(set, map[string]float64{particle.FieldPositionX: m.reset.PositionX},
			m.reset.PositionTime, config.EasingOrLinear(""), nil)
		m.tweens.To(set, map[string]float64{particle.FieldRotationY: m.reset.RotationY},
			m.reset.RotationTime, config.EasingOrLinear(""), nil)
	})
}

// ApplyTargets 中止正在运行的过渡，把运动参数补间到给定值
// 被中止的扩散不会执行替换，被中止的重置不会补间姿态；状态立即回到 Idle。
func (m *Machine) ApplyTargets(targets map[string]float64, duration float64, easing utils.EasingFunc) {
	m.begin()
	m.tweens.To(m.params, targets, duration, easing, nil)
	m.setState(StateIdle)
}

// DisperseThenSwap 扩散当前点云，完成后替换为 loader 提供的新点云
// 顺序：各扩散阶段依次完成 → 清空注册表 → 调用 loader 并注册 → Reset
func (m *Machine) DisperseThenSwap(loader SourceLoader) {
	gen := m.begin()
	m.setState(StateDispersing)
	m.runPhase(gen, 0, loader)
}

func (m *Machine) runPhase(gen uint64, index int, loader SourceLoader) {
	if index >= len(m.disperse.Phases) {
		m.swap(loader)
		return
	}
	phase := m.disperse.Phases[index]
	m.tweens.To(m.params, phase.Targets, phase.Duration, config.EasingOrLinear(phase.Easing), func() {
		if gen != m.generation {
			return
		}
		m.runPhase(gen, index+1, loader)
	})
}

// swap 清空注册表、加载新点云并重置参数
// 加载失败时注册表保持为空，依然执行 Reset（显示为空，不中断流程）
func (m *Machine) swap(loader SourceLoader) {
	m.setState(StateSwapping)
	if err := m.Replace(loader); err != nil {
		log.Printf("[Transition] Warning: %v", err)
	}
	m.Reset()
}

// Replace 立即替换点云，不经过扩散动画（用于启动时的首次加载）
func (m *Machine) Replace(loader SourceLoader) error {
	m.registry.Clear()
	if loader == nil {
		m.lastErr = fmt.Errorf("no source loader")
		return m.lastErr
	}

	arrays, err := loader()
	if err != nil {
		m.lastErr = fmt.Errorf("failed to load particle source: %w", err)
		return m.lastErr
	}
	m.lastErr = nil

	registered := RegisterCopies(m.registry, arrays, m.copies)
	log.Printf("[Transition] Loaded %d vertex arrays as %d particle sets", len(arrays), registered)
	return nil
}

// RegisterCopies 为每个顶点数组按副本配置注册集合并设置初始姿态与颜色
// copies 为空时每个数组注册一份，姿态为原点，颜色为白色
func RegisterCopies(registry *particle.Registry, arrays [][]types.Vec3, copies []config.CopyConfig) int {
	if len(copies) == 0 {
		copies = []config.CopyConfig{{}}
	}
	count := 0
	for _, vertices := range arrays {
		for _, c := range copies {
			set := registry.Register(vertices)
			set.Transform = particle.Transform{
				Position:  types.Vec3{X: c.PositionX},
				RotationY: c.RotationY,
			}
			set.Visual.Color = types.RGB{R: c.Color[0], G: c.Color[1], B: c.Color[2]}
			if c.Color == [3]float64{} {
				set.Visual.Color = types.RGB{R: 1, G: 1, B: 1}
			}
			count++
		}
	}
	return count
}
