// Package particle 管理点云粒子集合
//
// 每个 Set 对应一个由网格顶点生成的点云：Rest 为不可变的静止位置快照，
// Live 为每帧由位移系统完整覆盖的实时位置缓冲区。
// 不变式：len(Live) == len(Rest)，贯穿整个生命周期（释放后两者均为 0）。
package particle

import (
	"github.com/decker502/pointswarm/pkg/types"
)

// SetID 粒子集合唯一标识（从 1 开始，0 保留为无效 ID）
type SetID uint64

// Visual 粒子集合的外观状态（由外观系统写入，渲染器读取）
type Visual struct {
	Size  float64
	Color types.RGB

	// 颜色变化节流计数器（外观系统每次调用加一）
	ColorCounter int
}

// Transform 粒子集合在场景中的姿态（渲染器使用，可被补间）
type Transform struct {
	Position  types.Vec3
	RotationY float64
}

// 可补间的姿态字段名
const (
	FieldPositionX = "position.x"
	FieldPositionY = "position.y"
	FieldPositionZ = "position.z"
	FieldRotationY = "rotation.y"
)

// Set 一个点云粒子集合
type Set struct {
	ID        SetID
	Rest      []types.Vec3
	Live      []types.Vec3
	Visual    Visual
	Transform Transform
}

// Len 点数量
func (s *Set) Len() int {
	return len(s.Rest)
}

// Empty 是否为零长度集合（位移和外观步骤对其不做任何处理）
func (s *Set) Empty() bool {
	return len(s.Rest) == 0
}

// Field 实现 tween.Target，暴露姿态字段用于重置动画
func (s *Set) Field(name string) *float64 {
	switch name {
	case FieldPositionX:
		return &s.Transform.Position.X
	case FieldPositionY:
		return &s.Transform.Position.Y
	case FieldPositionZ:
		return &s.Transform.Position.Z
	case FieldRotationY:
		return &s.Transform.RotationY
	}
	return nil
}

// WorldPosition 返回第 i 个实时点应用姿态后的世界坐标
func (s *Set) WorldPosition(i int) types.Vec3 {
	return s.Live[i].RotateY(s.Transform.RotationY).Add(s.Transform.Position)
}

// release 释放缓冲区
func (s *Set) release() {
	s.Rest = nil
	s.Live = nil
}
