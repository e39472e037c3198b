package particle

import (
	"log"

	"github.com/decker502/pointswarm/pkg/types"
)

// Listener 粒子集合变更通知（渲染器据此增删可绘制对象）
type Listener interface {
	OnRegister(set *Set)
	OnClear(removed []*Set)
}

// Registry 粒子集合注册表
// 插入顺序即绘制顺序（顺序不影响正确性）。注册表独占所有集合。
type Registry struct {
	nextID    uint64
	sets      []*Set
	listeners []Listener
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{
		nextID: 1, // ID从1开始,0保留为无效ID
	}
}

// AddListener 注册变更监听器
func (r *Registry) AddListener(l Listener) {
	r.listeners = append(r.listeners, l)
}

// Register 以顶点序列创建粒子集合
// 顶点被快照为 Rest，Live 为其副本。空序列产生零长度集合（不是错误）。
func (r *Registry) Register(vertices []types.Vec3) *Set {
	rest := make([]types.Vec3, len(vertices))
	copy(rest, vertices)
	live := make([]types.Vec3, len(vertices))
	copy(live, vertices)

	set := &Set{
		ID:   SetID(r.nextID),
		Rest: rest,
		Live: live,
	}
	r.nextID++
	r.sets = append(r.sets, set)

	if len(vertices) == 0 {
		log.Printf("[Registry] Warning: set %d registered with no vertices", set.ID)
	}
	for _, l := range r.listeners {
		l.OnRegister(set)
	}
	return set
}

// RegisterFlat 以扁平 xyz 数组创建粒子集合
// 长度为 0 或不是 3 的倍数时退化为零长度集合
func (r *Registry) RegisterFlat(flat []float32) *Set {
	if len(flat)%3 != 0 {
		log.Printf("[Registry] Warning: malformed vertex array (len=%d, not a multiple of 3), registering empty set", len(flat))
		return r.Register(nil)
	}
	vertices := make([]types.Vec3, len(flat)/3)
	for i := range vertices {
		vertices[i] = types.Vec3{
			X: float64(flat[i*3]),
			Y: float64(flat[i*3+1]),
			Z: float64(flat[i*3+2]),
		}
	}
	return r.Register(vertices)
}

// Clear 移除并释放全部集合；空注册表上调用为空操作
func (r *Registry) Clear() {
	if len(r.sets) == 0 {
		return
	}
	removed := r.sets
	r.sets = nil
	for _, s := range removed {
		s.release()
	}
	log.Printf("[Registry] Cleared %d particle sets", len(removed))
	for _, l := range r.listeners {
		l.OnClear(removed)
	}
}

// ForEach 按插入顺序遍历
func (r *Registry) ForEach(fn func(*Set)) {
	for _, s := range r.sets {
		fn(s)
	}
}

// Len 已注册集合数量
func (r *Registry) Len() int {
	return len(r.sets)
}

// Sets 返回集合切片的副本
func (r *Registry) Sets() []*Set {
	out := make([]*Set, len(r.sets))
	copy(out, r.sets)
	return out
}

// Get 按 ID 查找集合
func (r *Registry) Get(id SetID) (*Set, bool) {
	for _, s := range r.sets {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// TotalPoints 全部集合的点数之和
func (r *Registry) TotalPoints() int {
	n := 0
	for _, s := range r.sets {
		n += len(s.Rest)
	}
	return n
}

// Close 关闭时释放全部缓冲区
func (r *Registry) Close() {
	r.Clear()
	r.listeners = nil
}
