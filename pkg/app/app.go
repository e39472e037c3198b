// Package app 提供点云查看器的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、打开持久化存储、
// 创建动画上下文并加载首个点云。App 实现 ebiten.Game 接口。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/pointswarm/internal/model"
	"github.com/decker502/pointswarm/internal/render"
	"github.com/decker502/pointswarm/pkg/config"
	"github.com/decker502/pointswarm/pkg/control"
	"github.com/decker502/pointswarm/pkg/embedded"
	"github.com/decker502/pointswarm/pkg/game"
	"github.com/decker502/pointswarm/pkg/particle"
	"github.com/decker502/pointswarm/pkg/transition"
	"github.com/decker502/pointswarm/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 动画配置文件，为空则使用内置配置
	ConfigPath string
	// ModelPath 启动时加载的模型，为空则使用上次打开的模型或程序生成的点云
	ModelPath string
	// Shape 程序生成点云的形状
	Shape string
	// Points 程序生成点云的点数
	Points int
}

const (
	appName       = "pointswarm"
	quickPreset   = "quick"
	defaultShape  = "sphere"
	defaultPoints = 4000
	statusSeconds = 3.0
)

// pickResult 文件选择对话框的结果
type pickResult struct {
	path string
	err  error
}

// App 是查看器的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg      *config.AnimatorConfig
	ctx      *game.AnimationContext
	panel    *control.Panel
	camera   *render.Camera
	settings *game.SettingsManager

	shape  string
	points int

	splats     []render.Splat
	background color.RGBA

	picks   chan pickResult
	picking bool

	selected    int // 方向键调节的参数下标
	status      string
	statusUntil float64

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器
//
// 使用内置配置前必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	animCfg, err := loadAnimatorConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("动画配置加载失败: %w", err)
	}

	// 存储打开失败时降级为仅内存模式
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: persistent storage unavailable: %v (settings and presets kept in memory)", err)
		store = nil
	}

	return newApp(cfg, animCfg, store)
}

// newApp 以给定配置和存储组装查看器（store 可为 nil）
func newApp(cfg Config, animCfg *config.AnimatorConfig, store *gdata.Manager) (*App, error) {
	settings, err := game.NewSettingsManager(store)
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}
	presets := game.NewPresetManager(store)

	ctx := game.NewAnimationContext(animCfg, game.ContextOptions{})
	a := &App{
		cfg:      animCfg,
		ctx:      ctx,
		panel:    control.NewPanel(ctx, presets),
		camera:   render.NewCamera(animCfg.Viewer),
		settings: settings,
		shape:    cfg.Shape,
		points:   cfg.Points,
		picks:    make(chan pickResult, 1),
		verbose:  cfg.Verbose,
		background: color.RGBA{
			R: channel8(animCfg.Viewer.Background[0]),
			G: channel8(animCfg.Viewer.Background[1]),
			B: channel8(animCfg.Viewer.Background[2]),
			A: 255,
		},
	}
	if a.shape == "" {
		a.shape = defaultShape
	}
	if a.points <= 0 {
		a.points = defaultPoints
	}

	ctx.Registry.AddListener(a)
	ctx.Transitions.OnPoseReset = a.resetCameraOrbit
	ctx.Transitions.OnStateChange = func(from, to transition.State) {
		if from == transition.StateSwapping && ctx.Transitions.LastError() != nil {
			a.flash(fmt.Sprintf("load failed: %v", ctx.Transitions.LastError()))
		}
	}

	a.loadInitialModel(cfg.ModelPath)
	log.Printf("[App] Ready: %d sets, %d points", ctx.Registry.Len(), ctx.Registry.TotalPoints())
	return a, nil
}

// loadAnimatorConfig 读取指定配置文件，未指定时使用内置配置
func loadAnimatorConfig(path string) (*config.AnimatorConfig, error) {
	if path != "" {
		return config.LoadAnimatorConfig(path)
	}
	data, err := embedded.ReadFile(embedded.DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in config: %w", err)
	}
	return config.ParseAnimatorConfig(data)
}

// loadInitialModel 依次尝试命令行模型、上次打开的模型和程序生成的点云
func (a *App) loadInitialModel(path string) {
	if path == "" {
		path = a.settings.GetSettings().LastModel
	}
	if path != "" {
		err := a.ctx.Transitions.Replace(model.FileLoader(path))
		if err == nil {
			return
		}
		log.Printf("[App] Warning: %v, falling back to procedural %s", err, a.shape)
	}
	if err := a.ctx.Transitions.Replace(model.ProceduralLoader(a.shape, a.points)); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// OnRegister 实现 particle.Listener
func (a *App) OnRegister(set *particle.Set) {
	log.Printf("[App] Set %d registered (%d points)", set.ID, set.Len())
}

// OnClear 实现 particle.Listener：释放绘制缓冲
func (a *App) OnClear(removed []*particle.Set) {
	a.splats = nil
}

// resetCameraOrbit 把相机环绕角度补间回起始视角
func (a *App) resetCameraOrbit() {
	a.ctx.Tweens.To(a.camera, map[string]float64{render.FieldOrbit: a.camera.HomeOrbit()},
		a.cfg.Reset.RotationTime, config.EasingOrLinear(a.cfg.Reset.Easing), nil)
}

// openModelDialog 在后台打开文件选择对话框，结果在 Update 中处理
func (a *App) openModelDialog() {
	if a.picking {
		return
	}
	a.picking = true
	go func() {
		path, err := zenity.SelectFile(
			zenity.Title("Open Point Cloud"),
			zenity.FileFilters{{
				Name:     "glTF",
				Patterns: []string{"*.glb", "*.gltf"},
			}},
		)
		a.picks <- pickResult{path: path, err: err}
	}()
}

// pollPick 处理已完成的文件选择
func (a *App) pollPick() {
	select {
	case res := <-a.picks:
		a.handlePick(res)
	default:
	}
}

func (a *App) handlePick(res pickResult) {
	a.picking = false
	if res.err != nil {
		if !errors.Is(res.err, zenity.ErrCanceled) {
			log.Printf("[App] Warning: file dialog failed: %v", res.err)
			a.flash(fmt.Sprintf("dialog failed: %v", res.err))
		}
		return
	}

	a.settings.SetLastModel(res.path)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	a.flash("loading " + res.path)
	a.panel.SwitchModel(model.FileLoader(res.path))
}

// nextShape 扩散后切换到下一个程序生成的形状
func (a *App) nextShape() {
	names := model.ShapeNames()
	next := names[0]
	for i, name := range names {
		if name == a.shape {
			next = names[(i+1)%len(names)]
			break
		}
	}
	a.shape = next
	a.settings.SetLastModel("")
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	a.flash("shape " + next)
	a.panel.SwitchModel(model.ProceduralLoader(next, a.points))
}

// flash 在叠加层显示一条短暂的状态消息
func (a *App) flash(msg string) {
	a.status = msg
	a.statusUntil = a.ctx.Clock.Elapsed() + statusSeconds
}

// Update 更新动画
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.updateWindow()
	a.pollPick()
	a.handleInput()

	a.ctx.Tick()
	a.camera.Update(a.ctx.Clock.Delta())
	return nil
}

// Draw 绘制点云与叠加层
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.background)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := a.cfg.Viewer.PointScale * a.settings.GetSettings().PointScale
	a.splats = render.Collect(a.ctx.Registry, a.camera, w, h, scale, a.splats)
	drawSplats(screen, a.splats)

	if a.settings.GetSettings().ShowOverlay {
		a.drawOverlay(screen)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Viewer.Width, a.cfg.Viewer.Height
}

// WindowSize 配置的窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.cfg.Viewer.Width, a.cfg.Viewer.Height
}

// Fullscreen 上次退出时是否为全屏
func (a *App) Fullscreen() bool {
	return a.settings.GetSettings().Fullscreen
}

// Close 保存设置并释放粒子缓冲区
func (a *App) Close() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	a.ctx.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

func channel8(v float64) uint8 {
	return types.RGB{R: v}.RGBA(255).R
}
