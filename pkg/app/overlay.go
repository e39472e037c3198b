package app

import (
	"fmt"
	"strings"

	"github.com/decker502/pointswarm/internal/render"
	"github.com/decker502/pointswarm/pkg/motion"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawSplats 由远到近绘制点
func drawSplats(screen *ebiten.Image, splats []render.Splat) {
	for _, s := range splats {
		vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(s.Radius), s.Color, true)
	}
}

func (a *App) drawOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, a.overlayText(ebiten.ActualFPS()), 8, 8)
}

// overlayText 叠加层文本：帧率、过渡状态、参数与状态消息
func (a *App) overlayText(fps float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS %.0f  %s  sets %d  points %d\n",
		fps, a.ctx.Transitions.State(), a.ctx.Registry.Len(), a.ctx.Registry.TotalPoints())

	values := a.panel.Values()
	for i, field := range motion.FieldNames {
		marker := " "
		if i == a.selected {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s%d %-16s %6.2f\n", marker, i+1, field, values[field])
	}

	if a.status != "" && a.ctx.Clock.Elapsed() < a.statusUntil {
		b.WriteString(a.status)
		b.WriteByte('\n')
	}
	b.WriteString("R reset  O open  N shape  S/L preset  H hide")
	return b.String()
}
