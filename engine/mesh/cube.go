package mesh

// NewCube builds an axis-aligned cube centered on the origin with the given half-extent.
// The cube is indexed: 8 shared corner vertices and 36 indices forming 12 triangles.
// Face color is expected to be derived in the fragment shader from the interpolated
// position, so no per-vertex color is stored.
//
// Parameters:
//   - halfExtent: half the edge length of the cube in world units
//
// Returns:
//   - Mesh: the cube geometry
func NewCube(halfExtent float32) Mesh {
	h := halfExtent
	vertices := []Vertex{
		{Position: [3]float32{h, h, -h}},   // 0
		{Position: [3]float32{-h, h, -h}},  // 1
		{Position: [3]float32{h, -h, -h}},  // 2
		{Position: [3]float32{-h, -h, -h}}, // 3
		{Position: [3]float32{-h, h, h}},   // 4
		{Position: [3]float32{-h, -h, h}},  // 5
		{Position: [3]float32{h, -h, h}},   // 6
		{Position: [3]float32{h, h, h}},    // 7
	}

	indices := []uint32{
		// back face (z = -h)
		0, 1, 2, 2, 1, 3,
		// left face (x = -h)
		1, 4, 3, 3, 4, 5,
		// front face (z = h)
		4, 7, 5, 5, 7, 6,
		// right face (x = h)
		7, 0, 6, 6, 0, 2,
		// top face (y = h)
		7, 4, 0, 0, 4, 1,
		// bottom face (y = -h)
		2, 3, 6, 6, 3, 5,
	}

	return newMesh(vertices, indices)
}

// NewDefaultCube builds the standard demo cube with a half-extent of 0.25.
//
// Returns:
//   - Mesh: the cube geometry
func NewDefaultCube() Mesh {
	return NewCube(0.25)
}
