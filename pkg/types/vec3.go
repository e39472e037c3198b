// Package types 定义点云动画中共享的基础值类型
package types

import "math"

// Vec3 三维向量（值类型）
type Vec3 struct {
	X, Y, Z float64
}

// Add 返回 v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 返回 v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 返回 v * s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len 向量长度
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross 叉积
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Normalize 单位化；零向量原样返回
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec3{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
}

// RotateY 绕 Y 轴旋转 angle 弧度（右手坐标系）
func (v Vec3) RotateY(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// FromFloat32 将 [3]float32（glTF 访问器格式）转换为 Vec3
func FromFloat32(p [3]float32) Vec3 {
	return Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}
