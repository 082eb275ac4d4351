package glyph

import (
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestAtlasContainsCharset(t *testing.T) {
	charset := DefaultCharset()
	a, err := NewAtlas(basicfont.Face7x13, charset)
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range charset {
		if _, ok := a.Glyph(r); !ok {
			t.Errorf("missing glyph for %q", r)
		}
	}
	if _, ok := a.Glyph('£'); ok {
		t.Error("found glyph for rune outside the charset")
	}
}

func TestAtlasUVRectsAreDisjointAndNormalized(t *testing.T) {
	a, err := NewAtlas(basicfont.Face7x13, []rune("ABCDEFGH"))
	if err != nil {
		t.Fatal(err)
	}

	type rect struct{ u0, v0, u1, v1 float32 }
	var rects []rect
	for _, r := range "ABCDEFGH" {
		g, ok := a.Glyph(r)
		if !ok {
			t.Fatalf("missing glyph %q", r)
		}
		if g.U0 < 0 || g.V0 < 0 || g.U1 > 1 || g.V1 > 1 {
			t.Fatalf("glyph %q UV rect (%v,%v)-(%v,%v) outside [0,1]", r, g.U0, g.V0, g.U1, g.V1)
		}
		if g.U0 >= g.U1 || g.V0 >= g.V1 {
			t.Fatalf("glyph %q has degenerate UV rect", r)
		}
		rects = append(rects, rect{g.U0, g.V0, g.U1, g.V1})
	}

	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			overlap := a.u0 < b.u1 && b.u0 < a.u1 && a.v0 < b.v1 && b.v0 < a.v1
			if overlap {
				t.Fatalf("UV rects %d and %d overlap", i, j)
			}
		}
	}
}

func TestAtlasRasterizesCoverage(t *testing.T) {
	a, err := NewAtlas(basicfont.Face7x13, []rune("#"))
	if err != nil {
		t.Fatal(err)
	}

	// '#' has plenty of ink. At least one pixel in the atlas must be opaque white.
	img := a.Image()
	found := false
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			found = true
			// Premultiplied white: all channels equal alpha.
			if img.Pix[i-3] != img.Pix[i] || img.Pix[i-2] != img.Pix[i] || img.Pix[i-1] != img.Pix[i] {
				t.Fatal("atlas pixels are not premultiplied white")
			}
		}
	}
	if !found {
		t.Error("no coverage rasterized for '#'")
	}
}

func TestAtlasStagingDataMatchesImage(t *testing.T) {
	a, err := NewAtlas(basicfont.Face7x13, []rune("AB"))
	if err != nil {
		t.Fatal(err)
	}

	staging := a.StagingData()
	bounds := a.Image().Bounds()
	if int(staging.Width) != bounds.Dx() || int(staging.Height) != bounds.Dy() {
		t.Errorf("staging dimensions %dx%d, want %dx%d", staging.Width, staging.Height, bounds.Dx(), bounds.Dy())
	}
	if len(staging.Pixels) != int(staging.Width)*int(staging.Height)*4 {
		t.Errorf("pixel buffer length = %d, want %d", len(staging.Pixels), staging.Width*staging.Height*4)
	}
}

func TestAtlasRejectsEmptyCharset(t *testing.T) {
	if _, err := NewAtlas(basicfont.Face7x13, nil); err == nil {
		t.Fatal("expected error for empty charset")
	}
}

func TestLineHeightPositive(t *testing.T) {
	a, err := NewAtlas(basicfont.Face7x13, []rune("A"))
	if err != nil {
		t.Fatal(err)
	}
	if a.LineHeight() <= 0 {
		t.Errorf("LineHeight() = %v, want > 0", a.LineHeight())
	}
}
