package render

import (
	"math"

	"github.com/decker502/pointswarm/pkg/config"
	"github.com/decker502/pointswarm/pkg/types"
)

// FieldOrbit is the tweenable orbit angle of the camera (radians).
const FieldOrbit = "orbit"

const nearPlane = 0.01

// Camera is a perspective camera orbiting its target around the Y axis.
type Camera struct {
	FOV             float64 // vertical field of view, degrees
	Position        types.Vec3
	Target          types.Vec3
	SceneOffsetY    float64 // added to every world point before projection
	AutoRotateSpeed float64 // orbit-controls units: 2 means one turn per 30 s
	Fixed           bool

	Orbit float64
}

// NewCamera builds a camera from the viewer configuration.
func NewCamera(cfg config.ViewerConfig) *Camera {
	return &Camera{
		FOV:             cfg.FOV,
		Position:        types.Vec3{X: cfg.CameraPosition[0], Y: cfg.CameraPosition[1], Z: cfg.CameraPosition[2]},
		SceneOffsetY:    cfg.SceneOffsetY,
		AutoRotateSpeed: cfg.AutoRotateSpeed,
		Fixed:           cfg.FixedCamera,
	}
}

// Field makes the camera a tween target.
func (c *Camera) Field(name string) *float64 {
	if name == FieldOrbit {
		return &c.Orbit
	}
	return nil
}

// Update advances the auto-rotation by dt seconds.
func (c *Camera) Update(dt float64) {
	if c.Fixed || dt <= 0 {
		return
	}
	c.Orbit += 2 * math.Pi / 60 * c.AutoRotateSpeed * dt
}

// HomeOrbit is the orbit angle of the nearest full turn, i.e. the starting view.
func (c *Camera) HomeOrbit() float64 {
	turn := 2 * math.Pi
	return math.Round(c.Orbit/turn) * turn
}

// Eye returns the current camera position after orbiting.
func (c *Camera) Eye() types.Vec3 {
	return c.Position.Sub(c.Target).RotateY(c.Orbit).Add(c.Target)
}

// Projected is a point in screen space.
type Projected struct {
	X, Y  float64
	Depth float64 // distance along the view direction
	Scale float64 // target distance / depth, for perspective point sizing
}

// Project maps a world point onto a width x height viewport.
// ok is false for points behind the near plane.
func (c *Camera) Project(p types.Vec3, width, height int) (Projected, bool) {
	eye := c.Eye()
	forward := c.Target.Sub(eye).Normalize()
	right := forward.Cross(types.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	d := types.Vec3{X: p.X, Y: p.Y + c.SceneOffsetY, Z: p.Z}.Sub(eye)
	z := d.Dot(forward)
	if z <= nearPlane {
		return Projected{}, false
	}

	f := 1 / math.Tan(c.FOV*math.Pi/360)
	half := float64(height) / 2
	return Projected{
		X:     float64(width)/2 + d.Dot(right)/z*f*half,
		Y:     half - d.Dot(up)/z*f*half,
		Depth: z,
		Scale: c.Target.Sub(eye).Len() / z,
	}, true
}
