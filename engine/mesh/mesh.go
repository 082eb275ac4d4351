package mesh

import (
	"github.com/kestrel-gfx/kestrel/common"
)

// Vertex is a position-only vertex used by the grid and cube meshes. Surface color for
// these meshes is derived in the fragment shader from the interpolated position.
type Vertex struct {
	Position [3]float32
}

// GlyphVertex is a textured vertex used by text meshes: a position plus the UV
// coordinates of a glyph in the atlas texture.
type GlyphVertex struct {
	Position [3]float32
	UV       [2]float32
}

// mesh is the implementation of the Mesh interface.
type mesh struct {
	vertexData []byte
	indexData  []byte
	indexCount int
}

// Mesh holds CPU-side geometry ready for upload to the GPU: raw vertex bytes, raw
// 32-bit index bytes, and the index count for draw calls. Meshes are immutable once
// built; pass the byte slices to Renderer.InitMeshBuffers.
type Mesh interface {
	// VertexData returns the raw vertex bytes for GPU upload.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw uint32 index bytes for GPU upload.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int
}

var _ Mesh = &mesh{}

func (m *mesh) VertexData() []byte {
	return m.vertexData
}

func (m *mesh) IndexData() []byte {
	return m.indexData
}

func (m *mesh) IndexCount() int {
	return m.indexCount
}

func newMesh[V any](vertices []V, indices []uint32) Mesh {
	return &mesh{
		vertexData: common.SliceToBytes(vertices),
		indexData:  common.SliceToBytes(indices),
		indexCount: len(indices),
	}
}
