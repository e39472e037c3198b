package app

import (
	"log"

	"github.com/decker502/pointswarm/pkg/motion"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointScaleStep +/- 键每次调整的点大小倍率
const pointScaleStep = 1.25

// fieldKeys 数字键选择方向键调节的参数
var fieldKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}

// handleInput 处理键盘输入
//
//	R 重置  O 打开模型  N 下一个程序生成形状
//	1/2/3 选择参数  ↑/↓ 调节  S 保存预设  L 应用预设
//	H 叠加层  +/- 点大小  F11 全屏
func (a *App) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		a.panel.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		a.openModelDialog()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		a.nextShape()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := a.panel.SavePreset(quickPreset); err != nil {
			a.flash(err.Error())
		} else {
			a.flash("preset saved")
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		if err := a.panel.ApplyPreset(quickPreset); err != nil {
			a.flash(err.Error())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		a.settings.SetShowOverlay(!a.settings.GetSettings().ShowOverlay)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		a.settings.SetPointScale(a.settings.GetSettings().PointScale * pointScaleStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		a.settings.SetPointScale(a.settings.GetSettings().PointScale / pointScaleStep)
	}

	for i, key := range fieldKeys {
		if inpututil.IsKeyJustPressed(key) {
			a.selected = i
		}
	}

	// 按住方向键连续调节
	field := motion.FieldNames[a.selected]
	step := a.panel.StepSize(field)
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		a.panel.Nudge(field, step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		a.panel.Nudge(field, -step)
	}
}

// updateWindow 处理 F11 全屏切换
func (a *App) updateWindow() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.WindowSize())
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(!a.settings.GetSettings().Fullscreen)
}
