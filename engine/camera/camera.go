package camera

import (
	"math"
	"sync"

	"github.com/kestrel-gfx/kestrel/common"
)

// Default perspective parameters. Fov is a quarter turn of vertical field of
// view; near and far are fixed clip distances sized for the demo scenes.
const (
	DefaultFov  = float32(math.Pi / 2)
	DefaultNear = float32(0.1)
	DefaultFar  = float32(1024)

	// fovLimitEpsilon keeps a clamped fov strictly inside (0, pi) so the
	// projection's tangent stays finite.
	fovLimitEpsilon = float32(1e-4)
)

type cameraImpl struct {
	mu *sync.Mutex

	fov    float32
	aspect float32
	near   float32
	far    float32

	// transform is the camera-to-world rigid transform: the upper-left 3x3
	// block holds the camera's local X/Y/Z axes expressed in world space
	// (orthonormal columns), the last column holds the world-space position.
	transform [16]float32

	// Cached derived matrices, each valid only while its dirty flag is clear.
	viewMatrix       [16]float32
	projectionMatrix [16]float32
	viewDirty        bool
	projectionDirty  bool
}

// Camera owns a rigid world transform (rotation + translation) plus
// perspective parameters, and derives the view and projection matrices on
// demand. Both derived matrices are memoized: a mutator marks only the matrix
// whose inputs it touched dirty, and the matching query recomputes at most
// once per mutation batch. Between mutations a query returns bit-identical
// results.
//
// Position and rotation mutators affect only the view matrix; fov and aspect
// mutators affect only the projection matrix.
//
// The rotation convention is right-handed with pitch about the camera's local
// X axis and yaw about its local Y axis, composed as Rpitch * Ryaw (yaw
// applies first to incoming vectors). Both rotation entry points - absolute
// (SetRotation) and incremental (RotateBy) - use this same convention.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Position returns the camera's world-space position (the translation
	// column of the transform).
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Transform returns a copy of the camera-to-world rigid transform.
	//
	// Returns:
	//   - [16]float32: the transform (column-major)
	Transform() [16]float32

	// SetFov sets the vertical field of view in radians and marks the
	// projection matrix dirty. The value is clamped strictly inside (0, pi);
	// passing a value at or beyond those bounds is a precondition violation
	// that the clamp papers over rather than reports.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and marks the
	// projection matrix dirty. Non-positive values are ignored (documented
	// precondition: aspect must be > 0).
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetPosition overwrites the translation column of the transform,
	// leaving rotation untouched, and marks the view matrix dirty.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Translate moves the camera by a delta expressed in the camera's local
	// (unrotated) frame, e.g. "0.05 units along the camera's current right
	// vector". The delta is converted to world space against the transform's
	// rotation block and added to the translation column. Marks the view
	// matrix dirty.
	//
	// Parameters:
	//   - dx, dy, dz: delta in the camera's local frame
	Translate(dx, dy, dz float32)

	// SetRotation replaces the rotation block of the transform with
	// Rpitch * Ryaw, preserving the translation column, and marks the view
	// matrix dirty. Orientation is recomputed from scratch each call (no
	// drift), which suits control schemes driven by absolute pointer
	// coordinates.
	//
	// Parameters:
	//   - pitch: rotation about the local X axis in radians
	//   - yaw: rotation about the local Y axis in radians
	SetRotation(pitch, yaw float32)

	// RotateBy post-multiplies the transform by Rpitch * Ryaw, accumulating
	// rotation relative to the camera's current orientation, and marks the
	// view matrix dirty. Natural for drag-style controls; successive small
	// rotations accumulate floating-point drift over very long sessions.
	//
	// Parameters:
	//   - pitch: incremental rotation about the local X axis in radians
	//   - yaw: incremental rotation about the local Y axis in radians
	RotateBy(pitch, yaw float32)

	// ProjectionMatrix returns the perspective projection matrix derived from
	// fov, aspect, near, and far, recomputing it only if a projection input
	// changed since the last call.
	//
	// Returns:
	//   - [16]float32: the projection matrix (column-major)
	ProjectionMatrix() [16]float32

	// ViewMatrix returns the world-to-camera matrix (the rigid inverse of the
	// transform), recomputing it only if position or rotation changed since
	// the last call.
	//
	// Returns:
	//   - [16]float32: the view matrix (column-major)
	ViewMatrix() [16]float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at the given world position with identity
// rotation and the default perspective parameters (fov pi/2, near 0.1,
// far 1024). Both derived-matrix caches start dirty.
//
// Parameters:
//   - x, y, z: initial world-space position
//   - aspect: initial aspect ratio (width / height)
//   - options: functional options to further configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(x, y, z, aspect float32, options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:              &sync.Mutex{},
		fov:             DefaultFov,
		aspect:          aspect,
		near:            DefaultNear,
		far:             DefaultFar,
		viewDirty:       true,
		projectionDirty: true,
	}
	common.Identity(c.transform[:])
	c.transform[12] = x
	c.transform[13] = y
	c.transform[14] = z

	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Position() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform[12], c.transform[13], c.transform[14]
}

func (c *cameraImpl) Transform() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = clampFov(fov)
	c.projectionDirty = true
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.projectionDirty = true
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transform[12] = x
	c.transform[13] = y
	c.transform[14] = z
	c.viewDirty = true
}

func (c *cameraImpl) Translate(dx, dy, dz float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Convert the local-frame delta to world space with the transpose of the
	// rotation block (the transpose of an orthonormal matrix is its inverse):
	// world_i = dot(rotation column i, delta).
	t := &c.transform
	wx := t[0]*dx + t[1]*dy + t[2]*dz
	wy := t[4]*dx + t[5]*dy + t[6]*dz
	wz := t[8]*dx + t[9]*dy + t[10]*dz

	t[12] += wx
	t[13] += wy
	t[14] += wz
	c.viewDirty = true
}

func (c *cameraImpl) SetRotation(pitch, yaw float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, ty, tz := c.transform[12], c.transform[13], c.transform[14]
	pitchYaw(c.transform[:], pitch, yaw)
	c.transform[12], c.transform[13], c.transform[14] = tx, ty, tz
	c.viewDirty = true
}

func (c *cameraImpl) RotateBy(pitch, yaw float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var rot [16]float32
	pitchYaw(rot[:], pitch, yaw)
	common.Mul4(c.transform[:], c.transform[:], rot[:])
	c.viewDirty = true
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.projectionDirty {
		common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
		c.projectionDirty = false
	}
	return c.projectionMatrix
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.viewDirty {
		common.RigidInverse(c.viewMatrix[:], c.transform[:])
		c.viewDirty = false
	}
	return c.viewMatrix
}

// pitchYaw writes Rpitch * Ryaw into out. The product applies yaw first to
// incoming vectors, then pitch.
func pitchYaw(out []float32, pitch, yaw float32) {
	var p, y [16]float32
	common.RotationX(p[:], pitch)
	common.RotationY(y[:], yaw)
	common.Mul4(out, p[:], y[:])
}

// clampFov keeps a field of view strictly inside (0, pi).
func clampFov(fov float32) float32 {
	if fov < fovLimitEpsilon {
		return fovLimitEpsilon
	}
	if fov > math.Pi-fovLimitEpsilon {
		return math.Pi - fovLimitEpsilon
	}
	return fov
}
