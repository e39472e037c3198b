package utils

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

// TestEasingEndpoints 所有命名缓动必须满足 f(0)=0, f(1)=1
func TestEasingEndpoints(t *testing.T) {
	for name, fn := range easingsByName {
		t.Run(name, func(t *testing.T) {
			if got := fn(0); got != 0 {
				t.Errorf("%s(0) = %v, 期望 0", name, got)
			}
			if got := fn(1); got != 1 {
				t.Errorf("%s(1) = %v, 期望 1", name, got)
			}
		})
	}
}

// TestEaseMidpoints 测试中点取值
func TestEaseMidpoints(t *testing.T) {
	tests := []struct {
		name     string
		fn       EasingFunc
		expected float64
	}{
		{"Linear", EaseLinear, 0.5},
		{"InQuad", EaseInQuad, 0.25},
		{"OutQuad", EaseOutQuad, 0.75},
		{"InOutQuad", EaseInOutQuad, 0.5},
		{"InCubic", EaseInCubic, 0.125},
		{"OutCubic", EaseOutCubic, 0.875},
		{"InOutCubic", EaseInOutCubic, 0.5},
		{"InQuart", EaseInQuart, 0.0625},
		{"OutQuart", EaseOutQuart, 0.9375},
		{"InOutExpo", EaseInOutExpo, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.fn(0.5)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("%s(0.5) = %v, 期望 %v", tt.name, result, tt.expected)
			}
		})
	}
}

// TestEaseOutCubicFasterThanLinear 缓出曲线前半段领先于线性
func TestEaseOutCubicFasterThanLinear(t *testing.T) {
	for p := 0.1; p < 0.5; p += 0.1 {
		if EaseOutCubic(p) <= EaseLinear(p) {
			t.Errorf("EaseOutCubic(%v) = %v 应该大于线性值 %v（开始快）", p, EaseOutCubic(p), p)
		}
	}
}

// TestMonotonicCurves 单调曲线在 [0,1] 上不递减
func TestMonotonicCurves(t *testing.T) {
	names := []string{"linear", "power1.inOut", "power2.inOut", "power3.in", "expo.out", "sine.inOut"}
	for _, name := range names {
		fn, err := EasingByName(name)
		if err != nil {
			t.Fatalf("EasingByName(%q) error: %v", name, err)
		}
		prev := fn(0)
		for i := 1; i <= 100; i++ {
			cur := fn(float64(i) / 100)
			if cur < prev-1e-6 {
				t.Errorf("%s 在 t=%v 处递减: %v < %v", name, float64(i)/100, cur, prev)
			}
			prev = cur
		}
	}
}

// TestEasingByName 名称解析（不区分大小写，空名使用默认值）
func TestEasingByName(t *testing.T) {
	fn, err := EasingByName("Power2.InOut")
	if err != nil {
		t.Fatalf("EasingByName error: %v", err)
	}
	if math.Abs(fn(0.25)-EaseInOutCubic(0.25)) > 1e-12 {
		t.Errorf("power2.inOut 应映射到 EaseInOutCubic")
	}

	def, err := EasingByName("")
	if err != nil {
		t.Fatalf("EasingByName(\"\") error: %v", err)
	}
	if math.Abs(def(0.5)-EaseOutQuad(0.5)) > 1e-12 {
		t.Errorf("默认缓动应为 power1.out")
	}

	if _, err := EasingByName("wobble.sideways"); err == nil {
		t.Error("未知缓动名称应返回错误")
	}
}

// TestFromGween gween 曲线桥接
func TestFromGween(t *testing.T) {
	fn := FromGween(ease.Linear)
	if got := fn(0.3); math.Abs(got-0.3) > 1e-6 {
		t.Errorf("FromGween(Linear)(0.3) = %v, 期望 0.3", got)
	}
	if fn(-1) != 0 || fn(2) != 1 {
		t.Error("FromGween 应在区间外固定端点")
	}
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"起点", 0.0, 100.0, 0.0, 0.0},
		{"中点", 0.0, 100.0, 0.5, 50.0},
		{"终点", 0.0, 100.0, 1.0, 100.0},
		{"负数范围", -50.0, 50.0, 0.5, 0.0},
		{"逆向范围", 100.0, 0.0, 0.5, 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

func TestSeededRandomRange(t *testing.T) {
	rng := NewSeededRandom(42)
	for i := 0; i < 1000; i++ {
		v := rng.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v, 超出 [0,1)", v)
		}
	}
	if v := DefaultRandom().Float64(); v < 0 || v >= 1 {
		t.Errorf("DefaultRandom().Float64() = %v, 超出 [0,1)", v)
	}
}
