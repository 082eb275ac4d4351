package mesh

import (
	"github.com/kestrel-gfx/kestrel/engine/glyph"
)

// NewTextMesh builds a mesh of textured quads for a line of text, one quad per
// character present in the atlas. The text is laid out left to right starting at
// origin, advancing along +X by each glyph's advance. scale converts atlas pixels to
// world units (e.g. 0.01 makes a 24px glyph 0.24 units tall). Quads face +Z; draw
// them with the glyph texture bound and blending enabled.
//
// Characters missing from the atlas are skipped but still consume no advance, so
// restrict input to the charset the atlas was built with.
//
// Parameters:
//   - text: the string to lay out
//   - a: the glyph atlas providing UV rectangles and advances
//   - origin: the world-space position of the first character's top-left corner
//   - scale: world units per atlas pixel
//
// Returns:
//   - Mesh: the text geometry, empty if no characters matched the atlas
func NewTextMesh(text string, a glyph.Atlas, origin [3]float32, scale float32) Mesh {
	vertices := make([]GlyphVertex, 0, len(text)*4)
	indices := make([]uint32, 0, len(text)*6)

	penX := origin[0]
	for _, r := range text {
		g, ok := a.Glyph(r)
		if !ok {
			continue
		}

		w := float32(g.Width) * scale
		h := float32(g.Height) * scale

		x0, y0 := penX, origin[1]
		x1, y1 := penX+w, origin[1]-h
		z := origin[2]

		base := uint32(len(vertices))
		vertices = append(vertices,
			GlyphVertex{Position: [3]float32{x0, y0, z}, UV: [2]float32{g.U0, g.V0}}, // top-left
			GlyphVertex{Position: [3]float32{x1, y0, z}, UV: [2]float32{g.U1, g.V0}}, // top-right
			GlyphVertex{Position: [3]float32{x1, y1, z}, UV: [2]float32{g.U1, g.V1}}, // bottom-right
			GlyphVertex{Position: [3]float32{x0, y1, z}, UV: [2]float32{g.U0, g.V1}}, // bottom-left
		)
		indices = append(indices,
			base, base+2, base+1,
			base, base+3, base+2,
		)

		penX += g.Advance * scale
	}

	return newMesh(vertices, indices)
}
