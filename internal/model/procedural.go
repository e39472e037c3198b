package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/decker502/pointswarm/pkg/transition"
	"github.com/decker502/pointswarm/pkg/types"
)

// Shape generates n points of a procedural point cloud.
type Shape func(n int) []types.Vec3

// shapes 内置的程序化点云，无需模型文件即可运行
var shapes = map[string]Shape{
	"sphere": FibonacciSphere,
	"torus":  Torus,
	"helix":  Helix,
}

// ShapeNames lists the built-in procedural shapes, sorted.
func ShapeNames() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Procedural returns the named shape with n points as a single vertex array.
func Procedural(name string, n int) ([][]types.Vec3, error) {
	shape, ok := shapes[name]
	if !ok {
		return nil, fmt.Errorf("unknown procedural shape %q", name)
	}
	if n < 0 {
		n = 0
	}
	return [][]types.Vec3{shape(n)}, nil
}

// ProceduralLoader returns a source loader for a built-in shape.
func ProceduralLoader(name string, n int) transition.SourceLoader {
	return func() ([][]types.Vec3, error) {
		return Procedural(name, n)
	}
}

// FibonacciSphere spreads n points evenly over the unit sphere.
func FibonacciSphere(n int) []types.Vec3 {
	points := make([]types.Vec3, n)
	if n == 0 {
		return points
	}
	golden := math.Pi * (3 - math.Sqrt(5))
	for i := range points {
		y := 1.0
		if n > 1 {
			y = 1 - 2*float64(i)/float64(n-1)
		}
		r := math.Sqrt(math.Max(0, 1-y*y))
		theta := golden * float64(i)
		points[i] = types.Vec3{X: math.Cos(theta) * r, Y: y, Z: math.Sin(theta) * r}
	}
	return points
}

// Torus places n points on a torus lying in the XZ plane (major radius 0.8, minor 0.3).
func Torus(n int) []types.Vec3 {
	const major, minor = 0.8, 0.3
	points := make([]types.Vec3, n)
	golden := math.Pi * (3 - math.Sqrt(5))
	for i := range points {
		u := 2 * math.Pi * float64(i) / float64(n)
		v := golden * float64(i)
		ring := major + minor*math.Cos(v)
		points[i] = types.Vec3{X: ring * math.Cos(u), Y: minor * math.Sin(v), Z: ring * math.Sin(u)}
	}
	return points
}

// Helix winds n points along a vertical double-turn spiral of radius 0.6 and height 2.
func Helix(n int) []types.Vec3 {
	points := make([]types.Vec3, n)
	for i := range points {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		angle := t * 4 * math.Pi
		points[i] = types.Vec3{X: 0.6 * math.Cos(angle), Y: 2*t - 1, Z: 0.6 * math.Sin(angle)}
	}
	return points
}
