package scene

import (
	"github.com/kestrel-gfx/kestrel/common"
)

// SceneBuilderOption is a functional option for configuring a Scene during creation.
type SceneBuilderOption func(*scene)

// WithPrepWorkers sets the number of workers in the frame-preparation pool. Values
// below one are ignored and the default (logical CPUs minus one) is used.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithPrepWorkers(workers int) SceneBuilderOption {
	return func(s *scene) {
		if workers > 0 {
			s.prepWorkers = workers
		}
	}
}

// ObjectOption is a functional option for configuring an Object during creation.
type ObjectOption func(*object)

// WithModelMatrix sets the object's initial model matrix instead of identity.
//
// Parameters:
//   - m: the model matrix (column-major)
//
// Returns:
//   - ObjectOption: the option to apply
func WithModelMatrix(m [16]float32) ObjectOption {
	return func(o *object) {
		o.modelMatrix = m
	}
}

// WithUpdateFunc attaches a per-frame update function to the object. The function runs
// during Scene.PrepareFrame before model matrices are uploaded, so changes made through
// SetModelMatrix take effect the same frame.
//
// Parameters:
//   - fn: the update function, receiving the object and the frame delta time in seconds
//
// Returns:
//   - ObjectOption: the option to apply
func WithUpdateFunc(fn func(obj Object, deltaTime float32)) ObjectOption {
	return func(o *object) {
		o.updateFunc = fn
	}
}

// WithTexture attaches texture and sampler staging data to the object, giving it a
// material bind group. The texture is uploaded to the GPU when the object is added to
// a scene.
//
// Parameters:
//   - texture: the RGBA pixel data and dimensions
//   - sampler: the sampler configuration (zero values use renderer defaults)
//
// Returns:
//   - ObjectOption: the option to apply
func WithTexture(texture common.TextureStagingData, sampler common.SamplerStagingData) ObjectOption {
	return func(o *object) {
		o.texture = &texture
		o.sampler = sampler
	}
}
