// Package tween 提供基于时间的数值补间引擎
//
// 引擎按经过的时间（而不是固定的每帧增量）推进每个补间，
// 因此掉帧不会让动画变慢或加速。
// 每个 (目标, 字段) 槽位同一时刻只归属一个补间：新补间启动时接管重叠字段，
// 旧补间失去全部字段后被取消，且不会触发其完成回调。
//
// 引擎是单线程的，必须在帧循环中调用 Update。
package tween

import (
	"log"
	"sort"

	"github.com/decker502/pointswarm/pkg/utils"
)

// completionSlack 完成判定的时间容差（秒）
// 引擎时钟是逐帧 dt 的浮点累加，整数帧数凑满时长时可能略小于时长。
const completionSlack = 1e-9

// Target 可被补间的对象
// Field 返回字段的可写指针，未知字段返回 nil。
// 实现必须是可比较的类型（通常为指针），用作槽位键。
type Target interface {
	Field(name string) *float64
}

type slotKey struct {
	target Target
	field  string
}

type channel struct {
	key   slotKey
	field string
	ptr   *float64
	start float64
	end   float64
	owned bool
}

// Handle 补间句柄，仅用于观察补间状态
type Handle struct {
	channels   []*channel
	startTime  float64
	duration   float64
	easing     utils.EasingFunc
	onComplete func()
	done       bool
	cancelled  bool
}

// Done 补间是否已正常完成
func (h *Handle) Done() bool {
	return h.done
}

// Cancelled 补间是否因被取代而取消
func (h *Handle) Cancelled() bool {
	return h.cancelled
}

// Fields 补间当前仍然拥有的字段（按名称排序）
func (h *Handle) Fields() []string {
	names := make([]string, 0, len(h.channels))
	for _, ch := range h.channels {
		if ch.owned {
			names = append(names, ch.field)
		}
	}
	sort.Strings(names)
	return names
}

func (h *Handle) ownsAny() bool {
	for _, ch := range h.channels {
		if ch.owned {
			return true
		}
	}
	return false
}

// Engine 补间引擎
type Engine struct {
	now    float64
	active []*Handle
	owners map[slotKey]*channel
	byChan map[*channel]*Handle
}

// NewEngine 创建补间引擎
func NewEngine() *Engine {
	return &Engine{
		owners: make(map[slotKey]*channel),
		byChan: make(map[*channel]*Handle),
	}
}

// Now 引擎内部时钟（秒），即所有 Update 的 dt 之和
func (e *Engine) Now() float64 {
	return e.now
}

// Active 正在运行的补间数量
func (e *Engine) Active() int {
	return len(e.active)
}

// To 启动补间：在 duration 秒内把 target 的各字段从当前值插值到目标值
//
// 参数：
//   - target: 补间对象
//   - to: 字段名 → 终值；未知字段被忽略
//   - duration: 时长（秒），<= 0 时在下一次 Update 直接完成
//   - easing: 缓动函数，nil 时使用线性
//   - onComplete: 完成回调（可为 nil），正常完成时恰好调用一次，被取代时不调用
//
// 返回：
//   - *Handle: 补间句柄
func (e *Engine) To(target Target, to map[string]float64, duration float64, easing utils.EasingFunc, onComplete func()) *Handle {
	if easing == nil {
		easing = utils.EaseLinear
	}
	h := &Handle{
		startTime:  e.now,
		duration:   duration,
		easing:     easing,
		onComplete: onComplete,
	}

	// 字段按名称排序，保证取代顺序确定
	names := make([]string, 0, len(to))
	for name := range to {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ptr := target.Field(name)
		if ptr == nil {
			log.Printf("[Tween] Warning: target %T has no field %q, ignored", target, name)
			continue
		}
		key := slotKey{target: target, field: name}
		ch := &channel{key: key, field: name, ptr: ptr, start: *ptr, end: to[name], owned: true}
		if prev, ok := e.owners[key]; ok {
			e.release(prev)
		}
		e.owners[key] = ch
		e.byChan[ch] = h
		h.channels = append(h.channels, ch)
	}

	e.active = append(e.active, h)
	return h
}

// release 解除旧补间对某字段的所有权；旧补间失去全部字段时标记为取消
func (e *Engine) release(ch *channel) {
	ch.owned = false
	owner := e.byChan[ch]
	delete(e.byChan, ch)
	if owner != nil && !owner.done && !owner.ownsAny() {
		owner.cancelled = true
	}
}

// Update 推进引擎时钟 dt 秒，写入所有补间字段的当前值
// 完成回调在本次所有写入之后依次调用
func (e *Engine) Update(dt float64) {
	if dt > 0 {
		e.now += dt
	}

	var finished []*Handle
	remaining := e.active[:0]
	for _, h := range e.active {
		if h.cancelled {
			e.drop(h)
			continue
		}

		elapsed := e.now - h.startTime
		if h.duration <= 0 || elapsed >= h.duration-completionSlack {
			for _, ch := range h.channels {
				if ch.owned {
					*ch.ptr = ch.end
				}
			}
			h.done = true
			e.drop(h)
			finished = append(finished, h)
			continue
		}

		progress := elapsed / h.duration
		if progress < 0 {
			progress = 0
		}
		eased := h.easing(progress)
		for _, ch := range h.channels {
			if ch.owned {
				*ch.ptr = ch.start + (ch.end-ch.start)*eased
			}
		}
		remaining = append(remaining, h)
	}
	// 清空尾部引用，避免持有已完成的补间
	for i := len(remaining); i < len(e.active); i++ {
		e.active[i] = nil
	}
	e.active = remaining

	for _, h := range finished {
		if h.onComplete != nil {
			h.onComplete()
		}
	}
}

// drop 移除补间仍持有的槽位
func (e *Engine) drop(h *Handle) {
	for _, ch := range h.channels {
		delete(e.byChan, ch)
		if e.owners[ch.key] == ch {
			delete(e.owners, ch.key)
		}
	}
}
