package camera

import (
	"math"
	"testing"

	"github.com/kestrel-gfx/kestrel/common"
)

func TestArrowKeysStepPosition(t *testing.T) {
	cam := NewCamera(0, 0, 1, 4.0/3.0)
	cc := NewCameraController(cam)

	cc.HandleKey(common.KeyRight)
	x, y, z := cam.Position()
	if absDiff(x, 0.05) > eps || y != 0 || absDiff(z, 1) > eps {
		t.Fatalf("right arrow: position = (%v, %v, %v), want (0.05, 0, 1)", x, y, z)
	}

	cc.HandleKey(common.KeyLeft)
	cc.HandleKey(common.KeyUp)
	x, y, z = cam.Position()
	if absDiff(x, 0) > eps || y != 0 || absDiff(z, 0.95) > eps {
		t.Fatalf("after left+up: position = (%v, %v, %v), want (0, 0, 0.95)", x, y, z)
	}
}

func TestScrollZoomTweensTowardClampedTarget(t *testing.T) {
	cam := NewCamera(0, 0, 1, 1)
	cc := NewCameraController(cam, WithZoomSpeed(0.2))

	cc.HandleScroll(1)
	cc.Update(1.0) // well past the tween duration
	want := DefaultFov - 0.2
	if got := cam.Fov(); absDiff(got, want) > 1e-4 {
		t.Fatalf("fov after zoom = %v, want %v", got, want)
	}

	// A huge zoom-out request must clamp strictly below pi.
	for i := 0; i < 100; i++ {
		cc.HandleScroll(-1)
	}
	cc.Update(1.0)
	if got := cam.Fov(); got >= float32(math.Pi) || got <= 0 {
		t.Fatalf("fov escaped (0, pi): %v", got)
	}
}

func TestDollyZoomMovesAlongViewAxis(t *testing.T) {
	cam := NewCamera(0, 0, 1, 1)
	cc := NewCameraController(cam, WithZoomMode(ZoomModeDolly))

	cc.HandleScroll(2)
	_, _, z := cam.Position()
	if absDiff(z, 1-2*0.05) > eps {
		t.Fatalf("dolly z = %v, want %v", z, 1-2*0.05)
	}
	if got := cam.Fov(); got != DefaultFov {
		t.Fatalf("dolly zoom changed fov: %v", got)
	}
}

func TestRelativeDragRotates(t *testing.T) {
	cam := NewCamera(0, 0, 1, 1)
	cc := NewCameraController(cam, WithWindowSize(800, 600))
	before := cam.ViewMatrix()

	// Movement without a held button must not rotate.
	cc.HandleMouseMove(400, 300)
	if cam.ViewMatrix() != before {
		t.Fatal("mouse move without drag rotated the camera")
	}

	cc.HandleMouseDown(400, 300)
	cc.HandleMouseMove(440, 300) // 40px right: yaw by 40 * 2pi/800
	cc.HandleMouseUp(440, 300)

	reference := NewCamera(0, 0, 1, 1)
	reference.RotateBy(0, 40*2*float32(math.Pi)/800)
	if got, want := cam.ViewMatrix(), reference.ViewMatrix(); !matricesClose(got, want, eps) {
		t.Fatalf("relative drag mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestAbsoluteDragSetsRotationFromCursor(t *testing.T) {
	cam := NewCamera(0, 0, 1, 1)
	cc := NewCameraController(cam,
		WithRotateMode(RotateModeAbsolute),
		WithWindowSize(800, 600),
	)

	cc.HandleMouseDown(0, 0)
	cc.HandleMouseMove(200, 150)

	reference := NewCamera(0, 0, 1, 1)
	reference.SetRotation(
		150*2*float32(math.Pi)/600,
		200*2*float32(math.Pi)/800,
	)
	if got, want := cam.ViewMatrix(), reference.ViewMatrix(); !matricesClose(got, want, eps) {
		t.Fatalf("absolute drag mismatch:\ngot  %v\nwant %v", got, want)
	}

	// Repeating the same absolute position must be a no-op, not accumulate.
	cc.HandleMouseMove(200, 150)
	if got := cam.ViewMatrix(); !matricesClose(got, reference.ViewMatrix(), eps) {
		t.Fatal("absolute mode accumulated rotation on a repeated position")
	}
}

func TestResizeUpdatesAspect(t *testing.T) {
	cam := NewCamera(0, 0, 1, 4.0/3.0)
	cc := NewCameraController(cam)

	cc.HandleResize(1920, 1080)
	if got := cam.Aspect(); absDiff(got, 1920.0/1080.0) > eps {
		t.Fatalf("aspect = %v, want %v", got, 1920.0/1080.0)
	}

	cc.HandleResize(0, 1080) // degenerate resize ignored
	if got := cam.Aspect(); absDiff(got, 1920.0/1080.0) > eps {
		t.Fatalf("degenerate resize changed aspect to %v", got)
	}
}

func TestResetRestoresCanonicalPose(t *testing.T) {
	cam := NewCamera(0, 0, 1, 4.0/3.0)
	cc := NewCameraController(cam, WithWindowSize(800, 600))

	cc.HandleKey(common.KeyRight)
	cc.HandleMouseDown(0, 0)
	cc.HandleMouseMove(123, 45)
	cc.HandleScroll(3)
	cc.Update(1.0)

	cc.HandleKey(common.KeyR)

	x, y, z := cam.Position()
	if x != 0 || y != 0 || z != 1 {
		t.Fatalf("reset position = (%v, %v, %v), want (0, 0, 1)", x, y, z)
	}
	if got := cam.Fov(); got != DefaultFov {
		t.Fatalf("reset fov = %v, want %v", got, DefaultFov)
	}
	reference := NewCamera(0, 0, 1, 4.0/3.0)
	if got, want := cam.ViewMatrix(), reference.ViewMatrix(); got != want {
		t.Fatalf("reset view mismatch:\ngot  %v\nwant %v", got, want)
	}
}
