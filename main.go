package main

import (
	"flag"
	"log"

	"github.com/decker502/pointswarm/pkg/app"
	"github.com/decker502/pointswarm/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	configPath = flag.String("config", "", "动画配置文件路径（默认使用内置配置）")
	modelPath  = flag.String("model", "", "启动时加载的 .glb/.gltf 模型")
	shape      = flag.String("shape", "sphere", "无模型时程序生成的形状: helix, sphere, torus")
	points     = flag.Int("points", 4000, "程序生成点云的点数")
	verbose    = flag.Bool("verbose", false, "详细日志")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	viewer, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		ModelPath:  *modelPath,
		Shape:      *shape,
		Points:     *points,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer viewer.Close()

	ebiten.SetWindowSize(viewer.WindowSize())
	ebiten.SetWindowTitle("Point Swarm")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(viewer.Fullscreen())

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
