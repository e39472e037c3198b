package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"math"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"github.com/decker502/pointswarm/pkg/particle"
	"golang.org/x/image/draw"
)

// SnapshotOptions controls offscreen rendering.
type SnapshotOptions struct {
	Width, Height int
	Supersample   int // render at N times the size and downscale; <= 1 disables
	PointScale    float64
	Background    color.RGBA
}

// Snapshot renders the registry's current live positions on the CPU.
//
// Points are drawn as flat discs, far to near, at Supersample times the
// requested size, then reduced with CatmullRom filtering.
func Snapshot(registry *particle.Registry, cam *Camera, opts SnapshotOptions) *image.RGBA {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	w, h := opts.Width*ss, opts.Height*ss

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	splats := Collect(registry, cam, w, h, opts.PointScale*float64(ss), nil)
	for _, s := range splats {
		fillDisc(canvas, s.X, s.Y, s.Radius, s.Color)
	}
	log.Printf("[Snapshot] Rendered %d points at %dx%d (x%d)", len(splats), opts.Width, opts.Height, ss)

	if ss == 1 {
		return canvas
	}
	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(out, out.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return out
}

// fillDisc paints an opaque disc; discs smaller than a pixel still cover their center pixel.
func fillDisc(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	b := img.Bounds()
	if r < 0.5 {
		x, y := int(math.Floor(cx)), int(math.Floor(cy))
		if image.Pt(x, y).In(b) {
			img.SetRGBA(x, y, c)
		}
		return
	}
	x0 := max(int(math.Floor(cx-r)), b.Min.X)
	x1 := min(int(math.Ceil(cx+r)), b.Max.X-1)
	y0 := max(int(math.Floor(cy-r)), b.Min.Y)
	y1 := min(int(math.Ceil(cy+r)), b.Max.Y-1)
	r2 := r * r
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				i := img.PixOffset(x, y)
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
			}
		}
	}
}

// EncodeWebP writes img as lossless WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return nil
}

// SaveWebP encodes img into a new file at path.
func SaveWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := EncodeWebP(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
