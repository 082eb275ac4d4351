package camera

// CameraControllerOption is a functional option applied to a controller during construction via NewCameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithRotateMode sets the pointer-drag rotation mode.
//
// Parameters:
//   - mode: RotateModeRelative or RotateModeAbsolute
//
// Returns:
//   - CameraControllerOption: a function that sets the rotation mode
func WithRotateMode(mode RotateMode) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotateMode = mode
	}
}

// WithZoomMode sets what the scroll wheel drives (fov zoom or dolly).
//
// Parameters:
//   - mode: ZoomModeFov or ZoomModeDolly
//
// Returns:
//   - CameraControllerOption: a function that sets the zoom mode
func WithZoomMode(mode ZoomMode) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomMode = mode
	}
}

// WithMoveStep sets the translation step applied per arrow-key press.
//
// Parameters:
//   - step: distance in world units (default 0.05)
//
// Returns:
//   - CameraControllerOption: a function that sets the move step
func WithMoveStep(step float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.moveStep = step
	}
}

// WithZoomSpeed sets the fov change per scroll-wheel notch in radians.
//
// Parameters:
//   - speed: radians per notch (default 0.1)
//
// Returns:
//   - CameraControllerOption: a function that sets the zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithHome sets the canonical position restored by Reset. Defaults to the
// camera's position at controller construction.
//
// Parameters:
//   - x, y, z: world-space home position
//
// Returns:
//   - CameraControllerOption: a function that sets the home position
func WithHome(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.homeX, cc.homeY, cc.homeZ = x, y, z
	}
}

// WithWindowSize seeds the window dimensions used to scale drag rotation
// before the first resize event arrives.
//
// Parameters:
//   - width, height: window client size in pixels
//
// Returns:
//   - CameraControllerOption: a function that sets the window size
func WithWindowSize(width, height int) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if width > 0 && height > 0 {
			cc.winWidth = width
			cc.winHeight = height
		}
	}
}
