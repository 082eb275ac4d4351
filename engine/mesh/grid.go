package mesh

// NewGrid builds a square reference grid in the XY plane at z = 0, spanning
// [-extent, extent] on both axes with the given number of divisions per axis.
// The mesh is a line list: draw it with a pipeline using
// wgpu.PrimitiveTopologyLineList.
//
// Parameters:
//   - extent: half-width of the grid in world units
//   - divisions: the number of grid cells per axis (must be at least 1)
//
// Returns:
//   - Mesh: the grid geometry
func NewGrid(extent float32, divisions int) Mesh {
	if divisions < 1 {
		divisions = 1
	}

	lineCount := divisions + 1
	vertices := make([]Vertex, 0, lineCount*4)
	indices := make([]uint32, 0, lineCount*4)

	step := (2 * extent) / float32(divisions)
	for i := 0; i < lineCount; i++ {
		offset := -extent + float32(i)*step

		// Vertical line at x = offset.
		vertices = append(vertices,
			Vertex{Position: [3]float32{offset, -extent, 0}},
			Vertex{Position: [3]float32{offset, extent, 0}},
		)
		// Horizontal line at y = offset.
		vertices = append(vertices,
			Vertex{Position: [3]float32{-extent, offset, 0}},
			Vertex{Position: [3]float32{extent, offset, 0}},
		)

		base := uint32(i * 4)
		indices = append(indices, base, base+1, base+2, base+3)
	}

	return newMesh(vertices, indices)
}

// NewDefaultGrid builds the standard unit reference grid: extent 1.0 with lines
// every 0.1 world units.
//
// Returns:
//   - Mesh: the grid geometry
func NewDefaultGrid() Mesh {
	return NewGrid(1.0, 20)
}
