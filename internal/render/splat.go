package render

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/decker502/pointswarm/pkg/particle"
)

// Splat is one projected particle ready to draw.
type Splat struct {
	X, Y   float64
	Radius float64
	Depth  float64
	Color  color.RGBA
}

// Collect projects every live particle of the registry, sorted far to near.
// pointScale converts a set's Visual.Size to a pixel radius at the target distance.
// Particles with a non-positive radius are dropped.
func Collect(registry *particle.Registry, cam *Camera, width, height int, pointScale float64, dst []Splat) []Splat {
	dst = dst[:0]
	registry.ForEach(func(set *particle.Set) {
		if set.Empty() {
			return
		}
		c := set.Visual.Color.RGBA(255)
		for i := range set.Live {
			p, ok := cam.Project(set.WorldPosition(i), width, height)
			if !ok {
				continue
			}
			r := set.Visual.Size * pointScale * p.Scale
			if r <= 0 {
				continue
			}
			dst = append(dst, Splat{X: p.X, Y: p.Y, Radius: r, Depth: p.Depth, Color: c})
		}
	})
	slices.SortFunc(dst, func(a, b Splat) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	return dst
}
