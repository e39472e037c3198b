// cmd/snapshot/main.go
// 无窗口渲染：模拟若干帧后把最后一帧保存为 WebP
//
// 用法：
//   go run ./cmd/snapshot --model=bust.glb --frames=120 --radius=2 --out=frame.webp

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/pointswarm/internal/model"
	"github.com/decker502/pointswarm/internal/render"
	"github.com/decker502/pointswarm/pkg/config"
	"github.com/decker502/pointswarm/pkg/game"
	"github.com/decker502/pointswarm/pkg/motion"
	"github.com/decker502/pointswarm/pkg/transition"
	"github.com/decker502/pointswarm/pkg/types"
	"github.com/decker502/pointswarm/pkg/utils"
)

var (
	configPath   = flag.String("config", "data/animator.yaml", "动画配置文件路径")
	modelPath    = flag.String("model", "", ".glb/.gltf 模型（为空使用程序生成的点云）")
	shape        = flag.String("shape", "sphere", "程序生成的形状")
	points       = flag.Int("points", 4000, "程序生成点云的点数")
	frames       = flag.Int("frames", 60, "模拟帧数")
	fps          = flag.Float64("fps", 60, "模拟帧率")
	radius       = flag.Float64("radius", 0, "circleRadius")
	speed        = flag.Float64("speed", 0, "circleSpeed")
	displacement = flag.Float64("displacement", 0, "maxDisplacement")
	seed         = flag.Uint64("seed", 1, "随机种子")
	supersample  = flag.Int("ss", 2, "超采样倍数")
	outPath      = flag.String("out", "snapshot.webp", "输出文件")
	verbose      = flag.Bool("verbose", false, "详细日志")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadAnimatorConfig(*configPath)
	if err != nil {
		return err
	}
	if *fps <= 0 || *frames < 0 {
		return fmt.Errorf("invalid --fps %v / --frames %d", *fps, *frames)
	}

	ctx := game.NewAnimationContext(cfg, game.ContextOptions{Random: utils.NewSeededRandom(*seed)})
	defer ctx.Close()

	var loader transition.SourceLoader = model.ProceduralLoader(*shape, *points)
	if *modelPath != "" {
		loader = model.FileLoader(*modelPath)
	}
	if err := ctx.Transitions.Replace(loader); err != nil {
		return err
	}

	*ctx.Params = motion.Parameters{
		CircleRadius:    *radius,
		CircleSpeed:     *speed,
		MaxDisplacement: *displacement,
	}

	cam := render.NewCamera(cfg.Viewer)
	dt := 1 / *fps
	elapsed := 0.0
	for i := 0; i < *frames; i++ {
		elapsed += dt
		ctx.TickWith(elapsed, dt)
		cam.Update(dt)
	}
	log.Printf("simulated %d frames (%.2fs), %d points", *frames, elapsed, ctx.Registry.TotalPoints())

	bg := types.RGB{R: cfg.Viewer.Background[0], G: cfg.Viewer.Background[1], B: cfg.Viewer.Background[2]}
	img := render.Snapshot(ctx.Registry, cam, render.SnapshotOptions{
		Width:       cfg.Viewer.Width,
		Height:      cfg.Viewer.Height,
		Supersample: *supersample,
		PointScale:  cfg.Viewer.PointScale,
		Background:  bg.RGBA(255),
	})
	if err := render.SaveWebP(*outPath, img); err != nil {
		return err
	}
	log.Printf("wrote %s", *outPath)
	return nil
}
