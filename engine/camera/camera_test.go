package camera

import (
	"math"
	"testing"
)

const eps = 1e-5

func absDiff(a, b float32) float32 {
	return float32(math.Abs(float64(a - b)))
}

func matricesClose(a, b [16]float32, tol float32) bool {
	for i := range a {
		if absDiff(a[i], b[i]) > tol {
			return false
		}
	}
	return true
}

func TestProjectionReferenceValues(t *testing.T) {
	// fov=pi/2 => y=1; aspect=4/3 => x=0.75; near=0.1, far=1024 =>
	// a ~ -1.0002, b ~ -0.2.
	cam := NewCamera(0, 0, 1, 4.0/3.0)
	p := cam.ProjectionMatrix()

	if absDiff(p[0], 0.75) > eps {
		t.Errorf("x term = %v, want 0.75", p[0])
	}
	if absDiff(p[5], 1.0) > eps {
		t.Errorf("y term = %v, want 1.0", p[5])
	}
	if absDiff(p[10], -1.0002) > 1e-4 {
		t.Errorf("a term = %v, want ~-1.0002", p[10])
	}
	if absDiff(p[14], -0.2) > 1e-4 {
		t.Errorf("b term = %v, want ~-0.2", p[14])
	}
	if p[11] != -1 {
		t.Errorf("perspective-divide term = %v, want -1", p[11])
	}
	if p[15] != 0 {
		t.Errorf("last diagonal element = %v, want 0", p[15])
	}
}

func TestViewPureTranslation(t *testing.T) {
	// Identity rotation with position (0,0,1): view must be the identity
	// except the last column (0,0,-1,1) - the camera at z=1 looking down -Z
	// shifts the scene by -1 in Z.
	cam := NewCamera(0, 0, 1, 4.0/3.0)
	v := cam.ViewMatrix()

	var want [16]float32
	want[0], want[5], want[10], want[15] = 1, 1, 1, 1
	want[14] = -1
	if v != want {
		t.Fatalf("view mismatch:\ngot  %v\nwant %v", v, want)
	}
}

func TestQueriesIdempotentBetweenMutations(t *testing.T) {
	cam := NewCamera(3, -2, 5, 16.0/9.0)
	cam.RotateBy(0.3, -0.8)

	p1 := cam.ProjectionMatrix()
	p2 := cam.ProjectionMatrix()
	if p1 != p2 {
		t.Fatal("projection not bit-identical across repeated queries")
	}

	v1 := cam.ViewMatrix()
	v2 := cam.ViewMatrix()
	if v1 != v2 {
		t.Fatal("view not bit-identical across repeated queries")
	}
}

func TestMutatorsInvalidateOnlyAffectedMatrix(t *testing.T) {
	cam := NewCamera(1, 2, 3, 4.0/3.0)
	cam.RotateBy(0.2, 0.4)

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()

	// Projection-side mutators must leave the cached view untouched.
	cam.SetFov(1.0)
	cam.SetAspect(2.0)
	if got := cam.ViewMatrix(); got != view {
		t.Fatal("projection mutators disturbed the cached view matrix")
	}
	if got := cam.ProjectionMatrix(); got == proj {
		t.Fatal("SetFov/SetAspect did not invalidate the projection matrix")
	}

	// View-side mutators must leave the cached projection untouched.
	proj = cam.ProjectionMatrix()
	cam.SetPosition(9, 9, 9)
	cam.Translate(0.05, 0, 0)
	cam.RotateBy(0.1, 0)
	cam.SetRotation(0, 0.5)
	if got := cam.ProjectionMatrix(); got != proj {
		t.Fatal("view mutators disturbed the cached projection matrix")
	}
	if got := cam.ViewMatrix(); got == view {
		t.Fatal("view mutators did not invalidate the view matrix")
	}
}

func TestSetRotationZeroMatchesPureTranslation(t *testing.T) {
	cam := NewCamera(0, 0, 1, 4.0/3.0)
	cam.RotateBy(0.7, -1.1) // arbitrary starting orientation
	cam.SetRotation(0, 0)

	reference := NewCamera(0, 0, 1, 4.0/3.0)
	if got, want := cam.ViewMatrix(), reference.ViewMatrix(); got != want {
		t.Fatalf("SetRotation(0,0) view mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestTranslateEqualsSetPositionUnderIdentityRotation(t *testing.T) {
	a := NewCamera(1, 2, 3, 1)
	b := NewCamera(1, 2, 3, 1)

	a.Translate(0.05, -0.05, 0.2)
	b.SetPosition(1+0.05, 2-0.05, 3+0.2)

	if got, want := a.ViewMatrix(), b.ViewMatrix(); !matricesClose(got, want, eps) {
		t.Fatalf("translate/setPosition mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestRotationUndoRequiresExactInverse(t *testing.T) {
	// Pitch and yaw do not commute: rotateBy(p, y) followed by the naive
	// rotateBy(-p, -y) is NOT the identity. Undoing requires composing the
	// exact matrix inverse, i.e. the negated rotations in reverse order.
	const pitch, yaw = 0.7, 0.9

	base := NewCamera(0, 0, 1, 1)
	identityView := base.ViewMatrix()

	naive := NewCamera(0, 0, 1, 1)
	naive.RotateBy(pitch, yaw)
	naive.RotateBy(-pitch, -yaw)
	if matricesClose(naive.ViewMatrix(), identityView, 1e-3) {
		t.Fatal("naively negated rotation unexpectedly cancelled; pitch/yaw should not commute")
	}

	// Exact inverse: (Rp * Ry)^-1 = Ry(-yaw) * Rp(-pitch), expressed as two
	// single-axis RotateBy calls in reverse order.
	exact := NewCamera(0, 0, 1, 1)
	exact.RotateBy(pitch, yaw)
	exact.RotateBy(0, -yaw)
	exact.RotateBy(-pitch, 0)
	if !matricesClose(exact.ViewMatrix(), identityView, eps) {
		t.Fatalf("exact inverse rotation did not cancel:\ngot  %v\nwant %v",
			exact.ViewMatrix(), identityView)
	}
}

func TestTranslateAfterYawMovesAlongRotatedAxis(t *testing.T) {
	cam := NewCamera(0, 0, 0, 1)
	cam.RotateBy(0, float32(math.Pi)/2)
	cam.Translate(0, 0, 1)

	// A quarter turn of yaw redirects a local Z step onto the world X axis.
	x, y, z := cam.Position()
	if absDiff(absVal(x), 1) > eps || absDiff(y, 0) > eps || absDiff(z, 0) > eps {
		t.Fatalf("position after yawed translate = (%v, %v, %v), want (+/-1, 0, 0)", x, y, z)
	}
}

func TestResizeChangesOnlyXTerm(t *testing.T) {
	cam := NewCamera(0, 0, 1, 4.0/3.0)
	before := cam.ProjectionMatrix()

	cam.SetAspect(16.0 / 9.0)
	after := cam.ProjectionMatrix()

	if after[0] == before[0] {
		t.Error("x term unchanged by aspect mutation")
	}
	if after[5] != before[5] {
		t.Error("y term changed by aspect mutation; must depend only on fov")
	}
	for _, i := range []int{10, 11, 14, 15} {
		if after[i] != before[i] {
			t.Errorf("element %d changed by aspect mutation", i)
		}
	}
}

func TestFovClampedAtMutatorBoundary(t *testing.T) {
	cam := NewCamera(0, 0, 1, 1)

	cam.SetFov(float32(math.Pi) * 2) // out of range: clamp below pi
	p := cam.ProjectionMatrix()
	for i, v := range p {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("projection element %d non-finite after out-of-range fov: %v", i, v)
		}
	}

	cam.SetAspect(0) // ignored: aspect must stay positive
	if got := cam.Aspect(); got != 1 {
		t.Fatalf("non-positive aspect not ignored, got %v", got)
	}
}

func TestRotationBlockStaysOrthonormal(t *testing.T) {
	cam := NewCamera(0, 0, 0, 1)
	for i := 0; i < 200; i++ {
		cam.RotateBy(0.013, -0.021)
	}
	m := cam.Transform()

	for ci := 0; ci < 3; ci++ {
		c := m[ci*4 : ci*4+3]
		lenSq := c[0]*c[0] + c[1]*c[1] + c[2]*c[2]
		if absDiff(lenSq, 1) > 1e-4 {
			t.Fatalf("rotation column %d drifted off unit length: %v", ci, lenSq)
		}
	}
}

func absVal(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func BenchmarkViewMatrixCached(b *testing.B) {
	b.ReportAllocs()
	cam := NewCamera(0, 0, 1, 4.0/3.0)
	cam.RotateBy(0.3, 0.6)
	cam.ViewMatrix()
	for i := 0; i < b.N; i++ {
		cam.ViewMatrix()
	}
}

func BenchmarkRotateByThenView(b *testing.B) {
	b.ReportAllocs()
	cam := NewCamera(0, 0, 1, 4.0/3.0)
	for i := 0; i < b.N; i++ {
		cam.RotateBy(0.001, -0.001)
		cam.ViewMatrix()
	}
}
