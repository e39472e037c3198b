// Package clock 提供单调的帧时钟
//
// 时钟在启动时初始化一次，之后从不重置。每帧调用一次 Tick，
// 返回自启动以来的经过时间和距上一帧的间隔（秒）。
package clock

import "time"

// DefaultMaxDelta 单帧间隔上限（秒）
// 窗口被拖动或挂起后恢复时，避免补间一次跳过过多进度
const DefaultMaxDelta = 0.25

// TimeSource 时间来源
type TimeSource interface {
	Now() time.Time
}

// SystemTime 真实系统时间（带单调时钟读数）
type SystemTime struct{}

// Now 返回当前时间
func (SystemTime) Now() time.Time {
	return time.Now()
}

// ManualTime 可手动推进的时间来源，用于测试
type ManualTime struct {
	current time.Time
}

// NewManualTime 以给定起点创建手动时间来源
func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{current: start}
}

// Now 返回当前模拟时间
func (m *ManualTime) Now() time.Time {
	return m.current
}

// Advance 推进模拟时间
func (m *ManualTime) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}

// Clock 帧时钟
type Clock struct {
	source   TimeSource
	last     time.Time
	started  bool
	elapsed  float64
	delta    float64
	MaxDelta float64
}

// New 创建时钟；source 为 nil 时使用系统时间
func New(source TimeSource) *Clock {
	if source == nil {
		source = SystemTime{}
	}
	return &Clock{
		source:   source,
		MaxDelta: DefaultMaxDelta,
	}
}

// Tick 采样时间，返回经过时间与本帧间隔（秒）
// 第一次调用的间隔为 0
func (c *Clock) Tick() (elapsed, delta float64) {
	now := c.source.Now()
	if !c.started {
		c.started = true
		c.last = now
		return c.elapsed, 0
	}

	delta = now.Sub(c.last).Seconds()
	c.last = now
	if delta < 0 {
		delta = 0
	}
	if c.MaxDelta > 0 && delta > c.MaxDelta {
		delta = c.MaxDelta
	}
	c.delta = delta
	c.elapsed += delta
	return c.elapsed, c.delta
}

// Elapsed 最近一次 Tick 时的经过时间（秒）
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Delta 最近一次 Tick 的帧间隔（秒）
func (c *Clock) Delta() float64 {
	return c.delta
}
