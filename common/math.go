package common

import (
	"math"
	"unsafe"
)

// All 4x4 matrices in this engine are flat [16]float32 values stored in
// column-major order (element (row r, col c) lives at index c*4+r), which is
// the layout GPU uniform uploads expect. Every function below follows that
// convention.

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// Result: out = a * b. out may alias a or b.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a right-handed perspective projection matrix from a
// vertical field of view. Uses the OpenGL-style clip convention: view-space Z
// lands in clip-space W for the perspective divide.
//
// With fovY = pi/2 the Y scale is exactly 1 and the X scale is 1/aspect.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians, must be in (0, pi)
//   - aspect: viewport aspect ratio (width/height), must be > 0
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	y := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	x := y / aspect
	a := (far + near) / (near - far)
	b := (2.0 * far * near) / (near - far)

	for i := range out[:16] {
		out[i] = 0
	}
	out[0] = x
	out[5] = y
	out[10] = a
	out[11] = -1.0
	out[14] = b
}

// RotationX builds a rotation of angle radians about the X axis.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - angle: rotation angle in radians
func RotationX(out []float32, angle float32) {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	Identity(out)
	out[5] = c
	out[6] = s
	out[9] = -s
	out[10] = c
}

// RotationY builds a rotation of angle radians about the Y axis.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - angle: rotation angle in radians
func RotationY(out []float32, angle float32) {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	Identity(out)
	out[0] = c
	out[2] = -s
	out[8] = s
	out[10] = c
}

// Translation builds a pure translation matrix.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - x, y, z: translation components
func Translation(out []float32, x, y, z float32) {
	Identity(out)
	out[12] = x
	out[13] = y
	out[14] = z
}

// RigidInverse inverts a rigid transform (orthonormal 3x3 rotation block plus
// translation column, bottom row 0,0,0,1) without a general 4x4 inverse. The
// rotation block of an orthonormal matrix inverts by transposition, and the
// inverse translation is the original translation re-expressed in the rotated
// frame, negated. This is the camera-to-world -> world-to-camera (view
// matrix) conversion. out must not alias m.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source rigid transform (16 elements, column-major)
func RigidInverse(out, m []float32) {
	// Transpose the 3x3 rotation block.
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[c*4+r] = m[r*4+c]
		}
	}

	// p_i = -dot(translation, rotation column i)
	tx, ty, tz := m[12], m[13], m[14]
	out[12] = -(tx*m[0] + ty*m[1] + tz*m[2])
	out[13] = -(tx*m[4] + ty*m[5] + tz*m[6])
	out[14] = -(tx*m[8] + ty*m[9] + tz*m[10])

	out[3], out[7], out[11] = 0, 0, 0
	out[15] = 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}
