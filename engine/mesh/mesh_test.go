package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/kestrel-gfx/kestrel/engine/glyph"
)

// vertexAt decodes the i-th position-only vertex from raw mesh bytes.
func vertexAt(data []byte, i int) [3]float32 {
	const stride = 12
	var v [3]float32
	for c := 0; c < 3; c++ {
		bits := binary.LittleEndian.Uint32(data[i*stride+c*4:])
		v[c] = math.Float32frombits(bits)
	}
	return v
}

func TestGridDimensions(t *testing.T) {
	g := NewDefaultGrid()

	// 21 lines per axis, 2 axes, 2 vertices per line.
	wantVerts := 21 * 2 * 2
	if got := len(g.VertexData()) / 12; got != wantVerts {
		t.Errorf("vertex count = %d, want %d", got, wantVerts)
	}
	if got := g.IndexCount(); got != wantVerts {
		t.Errorf("IndexCount() = %d, want %d (line list uses every vertex once)", got, wantVerts)
	}
}

func TestGridVerticesLieInPlane(t *testing.T) {
	g := NewGrid(1.0, 10)

	count := len(g.VertexData()) / 12
	for i := 0; i < count; i++ {
		v := vertexAt(g.VertexData(), i)
		if v[2] != 0 {
			t.Fatalf("vertex %d has z = %v, want 0", i, v[2])
		}
		if v[0] < -1 || v[0] > 1 || v[1] < -1 || v[1] > 1 {
			t.Fatalf("vertex %d = %v outside [-1, 1]", i, v)
		}
	}

	// First vertical line starts at the left edge.
	if v := vertexAt(g.VertexData(), 0); v[0] != -1 || v[1] != -1 {
		t.Errorf("first vertex = %v, want (-1, -1, 0)", v)
	}
}

func TestCubeGeometry(t *testing.T) {
	c := NewCube(0.25)

	if got := len(c.VertexData()) / 12; got != 8 {
		t.Errorf("vertex count = %d, want 8", got)
	}
	if got := c.IndexCount(); got != 36 {
		t.Errorf("IndexCount() = %d, want 36", got)
	}

	// Every corner coordinate is exactly ±0.25.
	for i := 0; i < 8; i++ {
		v := vertexAt(c.VertexData(), i)
		for c := 0; c < 3; c++ {
			if v[c] != 0.25 && v[c] != -0.25 {
				t.Fatalf("vertex %d coordinate %d = %v, want ±0.25", i, c, v[c])
			}
		}
	}

	// All 8 corners are distinct.
	seen := make(map[[3]float32]bool)
	for i := 0; i < 8; i++ {
		v := vertexAt(c.VertexData(), i)
		if seen[v] {
			t.Fatalf("duplicate corner %v", v)
		}
		seen[v] = true
	}

	// Index data references valid vertices.
	for i := 0; i < 36; i++ {
		idx := binary.LittleEndian.Uint32(c.IndexData()[i*4:])
		if idx > 7 {
			t.Fatalf("index %d = %d, out of range", i, idx)
		}
	}
}

func TestTextMeshLayout(t *testing.T) {
	a, err := glyph.NewAtlas(basicfont.Face7x13, []rune("AB"))
	if err != nil {
		t.Fatal(err)
	}

	m := NewTextMesh("AB", a, [3]float32{0, 0, 0}, 1.0)

	// Two quads: 4 vertices and 6 indices each. GlyphVertex is 20 bytes.
	if got := len(m.VertexData()) / 20; got != 8 {
		t.Errorf("vertex count = %d, want 8", got)
	}
	if got := m.IndexCount(); got != 12 {
		t.Errorf("IndexCount() = %d, want 12", got)
	}

	// The second quad starts one advance to the right of the first.
	g, _ := a.Glyph('A')
	secondX := math.Float32frombits(binary.LittleEndian.Uint32(m.VertexData()[4*20:]))
	if secondX != g.Advance {
		t.Errorf("second quad origin x = %v, want advance %v", secondX, g.Advance)
	}
}

func TestTextMeshSkipsMissingRunes(t *testing.T) {
	a, err := glyph.NewAtlas(basicfont.Face7x13, []rune("A"))
	if err != nil {
		t.Fatal(err)
	}

	m := NewTextMesh("AzA", a, [3]float32{0, 0, 0}, 1.0)
	if got := m.IndexCount(); got != 12 {
		t.Errorf("IndexCount() = %d, want 12 (missing rune skipped)", got)
	}
}

func TestEmptyTextMesh(t *testing.T) {
	a, err := glyph.NewAtlas(basicfont.Face7x13, []rune("A"))
	if err != nil {
		t.Fatal(err)
	}

	m := NewTextMesh("", a, [3]float32{0, 0, 0}, 1.0)
	if m.IndexCount() != 0 {
		t.Errorf("IndexCount() = %d, want 0", m.IndexCount())
	}
}
