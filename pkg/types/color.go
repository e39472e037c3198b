package types

import "image/color"

// RGB 线性颜色，每个通道范围 0.0 ~ 1.0
type RGB struct {
	R, G, B float64
}

// RGBA 转换为 image/color 使用的 8 位颜色
func (c RGB) RGBA(alpha uint8) color.RGBA {
	return color.RGBA{
		R: channel8(c.R),
		G: channel8(c.G),
		B: channel8(c.B),
		A: alpha,
	}
}

func channel8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
