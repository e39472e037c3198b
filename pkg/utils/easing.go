package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing Functions (缓动函数)
//
// 缓动函数把线性进度 t ∈ [0, 1] 映射为缓动后的进度 ∈ [0, 1]，
// 由补间引擎用于驱动运动参数的变化。
// 所有函数满足 f(0) = 0, f(1) = 1。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInOutQuad 二次方缓入缓出
//
//	t < 0.5: f(t) = 2t²
//	t >= 0.5: f(t) = 1 - (-2t + 2)² / 2
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// EaseInCubic 三次方缓入
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 特点：开始慢，中间快，结束慢（重置动画的默认曲线）
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseInQuart 四次方缓入
// 公式：f(t) = t⁴
func EaseInQuart(t float64) float64 {
	return t * t * t * t
}

// EaseOutQuart 四次方缓出
// 公式：f(t) = 1 - (1-t)⁴
func EaseOutQuart(t float64) float64 {
	return 1 - math.Pow(1-t, 4)
}

// EaseInOutQuart 四次方缓入缓出
func EaseInOutQuart(t float64) float64 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 4)/2
}

// EaseInExpo 指数缓入
// 公式：f(t) = 2^(10t - 10)，t=0 时为 0
func EaseInExpo(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}

// EaseOutExpo 指数缓出
// 特点：开始非常快，结束非常慢
// 公式：f(t) = 1 - 2^(-10t)
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseInOutExpo 指数缓入缓出
func EaseInOutExpo(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return math.Pow(2, 20*t-10) / 2
	default:
		return (2 - math.Pow(2, -20*t+10)) / 2
	}
}

// FromGween 把 gween 的 ease.TweenFunc（t, b, c, d 形式，float32）
// 适配为进度形式的 EasingFunc。
// 端点被固定为 f(0)=0、f(1)=1，避免 float32 精度误差破坏吸附语义。
func FromGween(fn ease.TweenFunc) EasingFunc {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// easingsByName GSAP 风格的缓动名称表
// power1 = Quad, power2 = Cubic, power3 = Quart（与 GSAP 一致）
var easingsByName = map[string]EasingFunc{
	"none":          EaseLinear,
	"linear":        EaseLinear,
	"power1.in":     EaseInQuad,
	"power1.out":    EaseOutQuad,
	"power1.inout":  EaseInOutQuad,
	"power2.in":     EaseInCubic,
	"power2.out":    EaseOutCubic,
	"power2.inout":  EaseInOutCubic,
	"power3.in":     EaseInQuart,
	"power3.out":    EaseOutQuart,
	"power3.inout":  EaseInOutQuart,
	"expo.in":       EaseInExpo,
	"expo.out":      EaseOutExpo,
	"expo.inout":    EaseInOutExpo,
	"sine.in":       FromGween(ease.InSine),
	"sine.out":      FromGween(ease.OutSine),
	"sine.inout":    FromGween(ease.InOutSine),
	"back.in":       FromGween(ease.InBack),
	"back.out":      FromGween(ease.OutBack),
	"back.inout":    FromGween(ease.InOutBack),
	"bounce.in":     FromGween(ease.InBounce),
	"bounce.out":    FromGween(ease.OutBounce),
	"bounce.inout":  FromGween(ease.InOutBounce),
	"elastic.in":    FromGween(ease.InElastic),
	"elastic.out":   FromGween(ease.OutElastic),
	"elastic.inout": FromGween(ease.InOutElastic),
}

// DefaultEasingName 未指定缓动时使用的名称（与 GSAP 默认值一致）
const DefaultEasingName = "power1.out"

// EasingByName 根据 GSAP 风格名称查找缓动函数（不区分大小写）
//
// 参数：
//   - name: 如 "power2.inOut"、"expo.out"、"bounce.out"；空字符串使用 DefaultEasingName
//
// 返回：
//   - EasingFunc: 对应的缓动函数
//   - error: 名称未知时返回错误
func EasingByName(name string) (EasingFunc, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultEasingName
	}
	fn, ok := easingsByName[key]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
