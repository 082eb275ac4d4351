package camera

import (
	"math"
	"sync"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/kestrel-gfx/kestrel/common"
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	cam        Camera
	rotateMode RotateMode
	zoomMode   ZoomMode

	// Canonical pose restored by Reset.
	homeX, homeY, homeZ float32

	// Window dimensions used to scale drag rotation (2*pi per dimension).
	winWidth  int
	winHeight int

	moveStep  float32
	zoomSpeed float32

	// Drag state.
	dragging     bool
	lastX, lastY int32

	// Accumulated target for the smoothed fov zoom; the tween chases it.
	fovTarget float32
	fovTween  *gween.Tween

	// Orientation mirrored for absolute mode, so each move rebuilds the
	// rotation from scratch instead of accumulating.
	absPitch, absYaw float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller bound to the given camera with
// sensible defaults: relative drag rotation, fov-based zoom, a 0.05 move
// step, and the camera's current position as the home pose.
//
// Parameters:
//   - cam: the camera to control (must not be nil)
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(cam Camera, options ...CameraControllerOption) CameraController {
	if cam == nil {
		panic("camera: NewCameraController requires a non-nil Camera")
	}

	cc := &cameraControllerImpl{
		mu:         &sync.Mutex{},
		cam:        cam,
		rotateMode: RotateModeRelative,
		zoomMode:   ZoomModeFov,
		winWidth:   1280,
		winHeight:  720,
		moveStep:   0.05,
		zoomSpeed:  0.1,
		fovTarget:  cam.Fov(),
	}
	cc.homeX, cc.homeY, cc.homeZ = cam.Position()

	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Camera() Camera {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cam
}

func (cc *cameraControllerImpl) RotateMode() RotateMode {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotateMode
}

func (cc *cameraControllerImpl) HandleKey(keyCode uint32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	switch keyCode {
	case common.KeyLeft:
		cc.cam.Translate(-cc.moveStep, 0, 0)
	case common.KeyRight:
		cc.cam.Translate(cc.moveStep, 0, 0)
	case common.KeyUp:
		cc.cam.Translate(0, 0, -cc.moveStep)
	case common.KeyDown:
		cc.cam.Translate(0, 0, cc.moveStep)
	case common.KeyR:
		cc.resetLocked()
	}
}

func (cc *cameraControllerImpl) HandleScroll(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.zoomMode == ZoomModeDolly {
		// Positive scroll moves forward along the local view axis (-Z).
		cc.cam.Translate(0, 0, -delta*cc.moveStep)
		return
	}

	// Positive scroll narrows the fov (zoom in). The tween restarts from the
	// camera's current fov so rapid scrolling stays smooth.
	cc.fovTarget = clampFov(cc.fovTarget - delta*cc.zoomSpeed)
	cc.fovTween = gween.New(cc.cam.Fov(), cc.fovTarget, 0.15, ease.OutQuad)
}

func (cc *cameraControllerImpl) HandleMouseDown(x, y int32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dragging = true
	cc.lastX, cc.lastY = x, y
}

func (cc *cameraControllerImpl) HandleMouseUp(x, y int32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dragging = false
}

func (cc *cameraControllerImpl) HandleMouseMove(x, y int32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if !cc.dragging {
		return
	}

	scaleX := 2 * float32(math.Pi) / float32(cc.winWidth)
	scaleY := 2 * float32(math.Pi) / float32(cc.winHeight)

	switch cc.rotateMode {
	case RotateModeAbsolute:
		// Orientation derived from the absolute cursor position each move.
		cc.absPitch = float32(y) * scaleY
		cc.absYaw = float32(x) * scaleX
		cc.cam.SetRotation(cc.absPitch, cc.absYaw)
	default:
		dx := float32(x - cc.lastX)
		dy := float32(y - cc.lastY)
		cc.cam.RotateBy(dy*scaleY, dx*scaleX)
	}

	cc.lastX, cc.lastY = x, y
}

func (cc *cameraControllerImpl) HandleResize(width, height int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	cc.winWidth = width
	cc.winHeight = height
	cc.cam.SetAspect(float32(width) / float32(height))
}

func (cc *cameraControllerImpl) Update(deltaTime float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.fovTween == nil {
		return
	}
	value, finished := cc.fovTween.Update(deltaTime)
	cc.cam.SetFov(value)
	if finished {
		cc.fovTween = nil
	}
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.resetLocked()
}

// resetLocked restores the canonical pose. Caller must hold the mutex.
func (cc *cameraControllerImpl) resetLocked() {
	cc.cam.SetPosition(cc.homeX, cc.homeY, cc.homeZ)
	cc.cam.SetRotation(0, 0)
	cc.cam.SetFov(DefaultFov)
	cc.fovTarget = DefaultFov
	cc.fovTween = nil
	cc.absPitch, cc.absYaw = 0, 0
	cc.dragging = false
}
