package render

import (
	"math"
	"testing"

	"github.com/decker502/pointswarm/pkg/config"
	"github.com/decker502/pointswarm/pkg/types"
)

func testCamera() *Camera {
	cam := NewCamera(config.DefaultAnimatorConfig().Viewer)
	cam.SceneOffsetY = 0
	return cam
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProjectTargetAtCenter(t *testing.T) {
	cam := testCamera()
	p, ok := cam.Project(types.Vec3{}, 640, 480)
	if !ok {
		t.Fatal("target should be visible")
	}
	if !near(p.X, 320) || !near(p.Y, 240) || !near(p.Scale, 1) {
		t.Errorf("projected target = %+v, want center with scale 1", p)
	}
}

func TestProjectOrientation(t *testing.T) {
	cam := testCamera()
	center, _ := cam.Project(types.Vec3{}, 640, 480)

	above, _ := cam.Project(types.Vec3{Y: 0.5}, 640, 480)
	if above.Y >= center.Y {
		t.Errorf("point above target drawn at y=%v, want above center %v", above.Y, center.Y)
	}
	right, _ := cam.Project(types.Vec3{X: 0.5}, 640, 480)
	if right.X <= center.X {
		t.Errorf("point at +X drawn at x=%v, want right of center %v", right.X, center.X)
	}
	closer, _ := cam.Project(types.Vec3{Z: 1}, 640, 480)
	if closer.Scale <= 1 {
		t.Errorf("closer point scale = %v, want > 1", closer.Scale)
	}

	if _, ok := cam.Project(cam.Eye().Scale(2), 640, 480); ok {
		t.Error("point behind the camera should be culled")
	}
}

func TestCameraOrbit(t *testing.T) {
	cam := testCamera()
	cam.Update(30)
	if !near(cam.Orbit, 2*math.Pi) {
		t.Errorf("Orbit after 30s at speed 2 = %v, want one full turn", cam.Orbit)
	}
	if !near(cam.HomeOrbit(), 2*math.Pi) {
		t.Errorf("HomeOrbit() = %v, want 2π", cam.HomeOrbit())
	}

	cam.Orbit = math.Pi
	eye := cam.Eye()
	if !near(eye.X, 0) || !near(eye.Y, -2) || !near(eye.Z, -5) {
		t.Errorf("Eye() at half turn = %+v, want (0,-2,-5)", eye)
	}

	fixed := testCamera()
	fixed.Fixed = true
	fixed.Update(10)
	if fixed.Orbit != 0 {
		t.Errorf("fixed camera rotated to %v", fixed.Orbit)
	}
	if fixed.Field(FieldOrbit) != &fixed.Orbit || fixed.Field("zoom") != nil {
		t.Error("Field() should expose orbit only")
	}
}
