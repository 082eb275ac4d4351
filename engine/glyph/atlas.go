package glyph

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/kestrel-gfx/kestrel/common"
)

// Glyph describes a single rasterized character in the atlas texture.
type Glyph struct {
	// Rune is the character this glyph renders.
	Rune rune

	// U0, V0, U1, V1 are the normalized texture coordinates of the glyph's cell
	// in the atlas, with (U0, V0) the top-left corner.
	U0, V0, U1, V1 float32

	// Width and Height are the cell dimensions in pixels.
	Width, Height int

	// Advance is the horizontal pen advance in pixels.
	Advance float32
}

// atlas is the implementation of the Atlas interface.
type atlas struct {
	img        *image.RGBA
	glyphs     map[rune]Glyph
	cellWidth  int
	cellHeight int
	lineHeight float32
}

// Atlas is a rasterized glyph sheet: a fixed grid of character cells rendered from a
// font face into one RGBA texture, plus per-rune UV rectangles and advances for
// building text meshes. Build one with NewAtlas and upload StagingData() via
// Renderer.InitTextureView.
type Atlas interface {
	// Glyph returns the atlas entry for a rune.
	//
	// Parameters:
	//   - r: the rune to look up
	//
	// Returns:
	//   - Glyph: the glyph entry
	//   - bool: true if the rune is present in the atlas
	Glyph(r rune) (Glyph, bool)

	// StagingData returns the atlas pixels packaged for GPU texture upload.
	//
	// Returns:
	//   - common.TextureStagingData: the RGBA pixel data and dimensions
	StagingData() common.TextureStagingData

	// LineHeight returns the vertical pen advance between lines of text, in pixels.
	//
	// Returns:
	//   - float32: the line height
	LineHeight() float32

	// Image returns the backing RGBA image, mainly for debugging and tests.
	//
	// Returns:
	//   - *image.RGBA: the atlas image
	Image() *image.RGBA
}

var _ Atlas = &atlas{}

// DefaultCharset returns the printable ASCII range (space through tilde), the
// standard charset for overlay text.
//
// Returns:
//   - []rune: runes ' ' (0x20) through '~' (0x7E)
func DefaultCharset() []rune {
	runes := make([]rune, 0, 95)
	for r := rune(' '); r <= '~'; r++ {
		runes = append(runes, r)
	}
	return runes
}

// NewFaceFromTTF parses TTF font data and creates a font face at the given size.
//
// Parameters:
//   - data: the raw TTF file contents
//   - size: the font size in points
//
// Returns:
//   - font.Face: the created face
//   - error: an error if the font data could not be parsed
func NewFaceFromTTF(data []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to parse TTF data: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		Hinting: font.HintingFull,
	}), nil
}

// NewAtlas rasterizes the given runes from a font face into a grid atlas.
//
// Rasterization happens in two phases: glyph coverage masks are drawn sequentially
// (font faces are not safe for concurrent use), then the masks are expanded to
// premultiplied white RGBA cells in parallel across a worker pool, one task per glyph.
// Each task writes a disjoint cell of the atlas image.
//
// Parameters:
//   - face: the font face to rasterize from
//   - runes: the characters to include (use DefaultCharset for printable ASCII)
//
// Returns:
//   - Atlas: the built atlas
//   - error: an error if no runes were provided or none could be rasterized
func NewAtlas(face font.Face, runes []rune) (Atlas, error) {
	if len(runes) == 0 {
		return nil, fmt.Errorf("glyph: atlas requires at least one rune")
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	cellHeight := metrics.Height.Ceil()
	if cellHeight <= 0 {
		cellHeight = ascent + metrics.Descent.Ceil()
	}

	// Cell width is the widest advance in the charset so every glyph fits its cell.
	cellWidth := 0
	advances := make(map[rune]fixed.Int26_6, len(runes))
	for _, r := range runes {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		advances[r] = adv
		if w := adv.Ceil(); w > cellWidth {
			cellWidth = w
		}
	}
	if cellWidth == 0 {
		return nil, fmt.Errorf("glyph: no rasterizable runes in charset")
	}

	// Square-ish grid.
	columns := 1
	for columns*columns < len(runes) {
		columns++
	}
	rows := (len(runes) + columns - 1) / columns

	atlasWidth := columns * cellWidth
	atlasHeight := rows * cellHeight

	mask := image.NewAlpha(image.Rect(0, 0, atlasWidth, atlasHeight))
	drawer := font.Drawer{
		Dst:  mask,
		Src:  image.NewUniform(image.White),
		Face: face,
	}

	a := &atlas{
		img:        image.NewRGBA(image.Rect(0, 0, atlasWidth, atlasHeight)),
		glyphs:     make(map[rune]Glyph, len(runes)),
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		lineHeight: float32(cellHeight),
	}

	cells := make([]image.Rectangle, 0, len(runes))
	for i, r := range runes {
		adv, ok := advances[r]
		if !ok {
			continue
		}

		col := i % columns
		row := i / columns
		x := col * cellWidth
		y := row * cellHeight

		drawer.Dot = fixed.P(x, y+ascent)
		drawer.DrawString(string(r))

		a.glyphs[r] = Glyph{
			Rune:    r,
			U0:      float32(x) / float32(atlasWidth),
			V0:      float32(y) / float32(atlasHeight),
			U1:      float32(x+cellWidth) / float32(atlasWidth),
			V1:      float32(y+cellHeight) / float32(atlasHeight),
			Width:   cellWidth,
			Height:  cellHeight,
			Advance: float32(adv.Ceil()),
		}
		cells = append(cells, image.Rect(x, y, x+cellWidth, y+cellHeight))
	}

	expandCells(mask, a.img, cells)

	return a, nil
}

// expandCells converts alpha coverage cells into premultiplied white RGBA across a
// worker pool. Cells are disjoint so tasks never write overlapping pixels.
func expandCells(mask *image.Alpha, dst *image.RGBA, cells []image.Rectangle) {
	pool := worker.NewDynamicWorkerPool(4, len(cells), 100*time.Millisecond)

	var wg sync.WaitGroup
	for i, cell := range cells {
		wg.Add(1)
		c := cell
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				for y := c.Min.Y; y < c.Max.Y; y++ {
					for x := c.Min.X; x < c.Max.X; x++ {
						alpha := mask.AlphaAt(x, y).A
						o := dst.PixOffset(x, y)
						dst.Pix[o+0] = alpha
						dst.Pix[o+1] = alpha
						dst.Pix[o+2] = alpha
						dst.Pix[o+3] = alpha
					}
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (a *atlas) Glyph(r rune) (Glyph, bool) {
	g, ok := a.glyphs[r]
	return g, ok
}

func (a *atlas) StagingData() common.TextureStagingData {
	bounds := a.img.Bounds()
	return common.TextureStagingData{
		Pixels: a.img.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
}

func (a *atlas) LineHeight() float32 {
	return a.lineHeight
}

func (a *atlas) Image() *image.RGBA {
	return a.img
}
