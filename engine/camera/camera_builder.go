package camera

// CameraBuilderOption is a functional option applied to a camera during construction via NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithFov sets the camera's vertical field of view in radians, clamped strictly inside (0, pi).
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = clampFov(fov)
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithRotation sets the camera's initial orientation to Rpitch * Ryaw.
//
// Parameters:
//   - pitch: rotation about the local X axis in radians
//   - yaw: rotation about the local Y axis in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the initial rotation
func WithRotation(pitch, yaw float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		tx, ty, tz := c.transform[12], c.transform[13], c.transform[14]
		pitchYaw(c.transform[:], pitch, yaw)
		c.transform[12], c.transform[13], c.transform[14] = tx, ty, tz
	}
}
