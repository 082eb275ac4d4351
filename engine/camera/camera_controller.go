package camera

// RotateMode selects how pointer drags drive the camera's orientation.
// The mode is fixed once per controller; the camera itself stays
// mode-agnostic and just exposes both rotation primitives.
type RotateMode int

const (
	// RotateModeRelative accumulates pixel deltas onto the current
	// orientation via RotateBy. Natural drag feel; orientation drifts
	// slightly over very long sessions.
	RotateModeRelative RotateMode = iota

	// RotateModeAbsolute recomputes orientation from the absolute cursor
	// position via SetRotation each move. Drift-free, but the scene snaps
	// to the cursor rather than following the drag.
	RotateModeAbsolute
)

// ZoomMode selects what the scroll wheel drives.
type ZoomMode int

const (
	// ZoomModeFov narrows or widens the field of view, smoothed by a tween
	// and clamped strictly inside (0, pi).
	ZoomModeFov ZoomMode = iota

	// ZoomModeDolly moves the camera along its local view axis instead of
	// changing the field of view.
	ZoomModeDolly
)

// CameraController translates raw window events into camera mutator calls:
// arrow keys step the position, the scroll wheel zooms, pointer drags rotate
// (relative or absolute per RotateMode), resizes update the aspect ratio, and
// the reset key restores the canonical pose. Wire its Handle* methods to the
// window callbacks and call Update once per tick to advance the zoom tween.
type CameraController interface {
	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera this controller mutates
	Camera() Camera

	// RotateMode returns the pointer-drag rotation mode.
	//
	// Returns:
	//   - RotateMode: RotateModeRelative or RotateModeAbsolute
	RotateMode() RotateMode

	// HandleKey processes a key press. Arrow keys translate the camera by
	// the configured step along its local axes (left/right along X, up/down
	// along Z); the R key resets position, rotation, and field of view to
	// their canonical values.
	//
	// Parameters:
	//   - keyCode: the virtual key code from the window layer
	HandleKey(keyCode uint32)

	// HandleScroll processes a mouse wheel delta, either retargeting the
	// smoothed field-of-view zoom or dollying along the view axis depending
	// on the ZoomMode.
	//
	// Parameters:
	//   - delta: scroll amount (positive = zoom in)
	HandleScroll(delta float32)

	// HandleMouseDown begins a pointer drag at the given cursor position.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	HandleMouseDown(x, y int32)

	// HandleMouseUp ends the pointer drag.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	HandleMouseUp(x, y int32)

	// HandleMouseMove processes cursor movement. While a drag is active the
	// movement rotates the camera, scaled by 2*pi per window dimension.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	HandleMouseMove(x, y int32)

	// HandleResize updates the camera's aspect ratio and the window
	// dimensions used to scale drag rotation.
	//
	// Parameters:
	//   - width, height: new window client size in pixels
	HandleResize(width, height int)

	// Update advances time-based state (the field-of-view zoom tween).
	// Call once per engine tick.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick
	Update(deltaTime float32)

	// Reset restores the canonical pose: home position, identity rotation,
	// and the default field of view.
	Reset()
}
