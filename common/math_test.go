package common

import (
	"math"
	"testing"
)

func approxEq(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	Translation(m[:], 1, 2, 3)

	Mul4(out[:], id[:], m[:])
	if out != m {
		t.Fatalf("identity*m mismatch: %v", out)
	}
	Mul4(out[:], m[:], id[:])
	if out != m {
		t.Fatalf("m*identity mismatch: %v", out)
	}
}

func TestMul4Aliasing(t *testing.T) {
	var a, b, want [16]float32
	RotationY(a[:], 0.7)
	Translation(b[:], -1, 4, 2)
	Mul4(want[:], a[:], b[:])

	// out aliasing the left operand must still produce the right answer
	Mul4(a[:], a[:], b[:])
	if a != want {
		t.Fatalf("aliased Mul4 mismatch:\ngot  %v\nwant %v", a, want)
	}
}

func TestRotationOrthonormal(t *testing.T) {
	angles := []float32{0, 0.1, -0.35, float32(math.Pi) / 3, 2.8}
	for _, ang := range angles {
		for _, build := range []func([]float32, float32){RotationX, RotationY} {
			var m [16]float32
			build(m[:], ang)

			// Columns of the 3x3 block must be unit length and pairwise orthogonal.
			for ci := 0; ci < 3; ci++ {
				c := m[ci*4 : ci*4+3]
				lenSq := c[0]*c[0] + c[1]*c[1] + c[2]*c[2]
				if !approxEq(lenSq, 1, 1e-5) {
					t.Fatalf("angle %v: column %d not unit length (%v)", ang, ci, lenSq)
				}
				for cj := ci + 1; cj < 3; cj++ {
					d := m[ci*4]*m[cj*4] + m[ci*4+1]*m[cj*4+1] + m[ci*4+2]*m[cj*4+2]
					if !approxEq(d, 0, 1e-5) {
						t.Fatalf("angle %v: columns %d,%d not orthogonal (%v)", ang, ci, cj, d)
					}
				}
			}
		}
	}
}

func TestRigidInverseRoundTrip(t *testing.T) {
	var rot, trans, m, inv, out, id [16]float32
	RotationX(rot[:], 0.4)
	RotationY(trans[:], -1.2)
	Mul4(m[:], rot[:], trans[:])
	Translation(trans[:], 3, -0.5, 7)
	Mul4(m[:], trans[:], m[:])

	RigidInverse(inv[:], m[:])
	Mul4(out[:], m[:], inv[:])
	Identity(id[:])
	for i := range out {
		if !approxEq(out[i], id[i], 1e-5) {
			t.Fatalf("m * RigidInverse(m) not identity at %d: %v", i, out[i])
		}
	}
}

func TestRigidInversePureTranslation(t *testing.T) {
	var m, inv [16]float32
	Translation(m[:], 0, 0, 1)
	RigidInverse(inv[:], m[:])

	var want [16]float32
	Translation(want[:], 0, 0, -1)
	if inv != want {
		t.Fatalf("pure translation inverse mismatch:\ngot  %v\nwant %v", inv, want)
	}
}

func TestPerspectiveReference(t *testing.T) {
	// fov=pi/2 aspect=4/3 near=0.1 far=1024: y=1, x=0.75, a~-1.0002, b~-0.2
	var p [16]float32
	Perspective(p[:], float32(math.Pi)/2, 4.0/3.0, 0.1, 1024)

	if !approxEq(p[0], 0.75, 1e-5) {
		t.Errorf("x term = %v, want 0.75", p[0])
	}
	if !approxEq(p[5], 1.0, 1e-5) {
		t.Errorf("y term = %v, want 1.0", p[5])
	}
	if !approxEq(p[10], -1.0002, 1e-4) {
		t.Errorf("a term = %v, want ~-1.0002", p[10])
	}
	if !approxEq(p[14], -0.2, 1e-4) {
		t.Errorf("b term = %v, want ~-0.2", p[14])
	}
	if p[11] != -1 {
		t.Errorf("w term = %v, want -1", p[11])
	}
	if p[15] != 0 {
		t.Errorf("element 15 = %v, want 0", p[15])
	}
}

func BenchmarkMul4(b *testing.B) {
	b.ReportAllocs()
	var a, m, out [16]float32
	RotationY(a[:], 0.3)
	Translation(m[:], 1, 2, 3)
	for i := 0; i < b.N; i++ {
		Mul4(out[:], a[:], m[:])
	}
}
