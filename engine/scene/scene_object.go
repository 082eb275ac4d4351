package scene

import (
	"sync"

	"github.com/kestrel-gfx/kestrel/common"
	"github.com/kestrel-gfx/kestrel/engine/mesh"
	"github.com/kestrel-gfx/kestrel/engine/renderer/bind_group_provider"
)

// object is the implementation of the Object interface.
type object struct {
	mu sync.Mutex

	name        string
	pipelineKey string
	msh         mesh.Mesh

	// meshProvider holds the GPU vertex/index buffers. modelProvider holds the
	// per-object model matrix uniform (bind group 1). materialProvider, when set,
	// holds a texture and sampler (bind group 2).
	meshProvider     bind_group_provider.BindGroupProvider
	modelProvider    bind_group_provider.BindGroupProvider
	materialProvider bind_group_provider.BindGroupProvider

	texture *common.TextureStagingData
	sampler common.SamplerStagingData

	modelMatrix [16]float32
	enabled     bool

	updateFunc func(obj Object, deltaTime float32)
}

// Object is a renderable entity in a Scene: a mesh, the key of the pipeline that draws
// it, a model matrix, and the GPU resource providers the renderer fills in when the
// object is added to a scene. Objects are safe for concurrent use.
type Object interface {
	// Name returns the object's debug name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// PipelineKey returns the key of the render pipeline that draws this object.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Mesh returns the object's CPU-side geometry.
	//
	// Returns:
	//   - mesh.Mesh: the mesh
	Mesh() mesh.Mesh

	// MeshProvider returns the provider holding the object's GPU vertex and index buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// ModelProvider returns the provider holding the object's model matrix uniform.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the model provider
	ModelProvider() bind_group_provider.BindGroupProvider

	// MaterialProvider returns the provider holding the object's texture and sampler,
	// or nil for untextured objects.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the material provider or nil
	MaterialProvider() bind_group_provider.BindGroupProvider

	// TextureStagingData returns the object's texture pixels for GPU upload, or nil
	// for untextured objects.
	//
	// Returns:
	//   - *common.TextureStagingData: the texture staging data or nil
	TextureStagingData() *common.TextureStagingData

	// SamplerStagingData returns the sampler configuration used with the texture.
	// Zero values fall back to renderer defaults.
	//
	// Returns:
	//   - common.SamplerStagingData: the sampler configuration
	SamplerStagingData() common.SamplerStagingData

	// ModelMatrix returns the object's current model matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the model matrix
	ModelMatrix() [16]float32

	// SetModelMatrix replaces the object's model matrix.
	//
	// Parameters:
	//   - m: the new model matrix (column-major)
	SetModelMatrix(m [16]float32)

	// Enabled reports whether the object is drawn.
	//
	// Returns:
	//   - bool: true if the object is drawn
	Enabled() bool

	// SetEnabled toggles whether the object is drawn.
	//
	// Parameters:
	//   - enabled: true to draw the object
	SetEnabled(enabled bool)

	// Update runs the object's per-frame update function, if one was configured.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous update
	Update(deltaTime float32)
}

var _ Object = &object{}

// NewObject creates a renderable object from a mesh and pipeline key. GPU resources are
// created when the object is added to a Scene.
//
// Parameters:
//   - name: a debug name, also used to label GPU resources
//   - msh: the object's geometry
//   - pipelineKey: the key of the pipeline that draws this object
//   - options: functional options (model matrix, texture, update function)
//
// Returns:
//   - Object: the new object
func NewObject(name string, msh mesh.Mesh, pipelineKey string, options ...ObjectOption) Object {
	o := &object{
		name:          name,
		pipelineKey:   pipelineKey,
		msh:           msh,
		meshProvider:  bind_group_provider.NewBindGroupProvider(name + " mesh"),
		modelProvider: bind_group_provider.NewBindGroupProvider(name + " model"),
		modelMatrix:   identityMatrix(),
		enabled:       true,
	}
	for _, option := range options {
		option(o)
	}
	if o.texture != nil {
		o.materialProvider = bind_group_provider.NewBindGroupProvider(name + " material")
	}
	return o
}

func identityMatrix() [16]float32 {
	var m [16]float32
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

func (o *object) Name() string {
	return o.name
}

func (o *object) PipelineKey() string {
	return o.pipelineKey
}

func (o *object) Mesh() mesh.Mesh {
	return o.msh
}

func (o *object) MeshProvider() bind_group_provider.BindGroupProvider {
	return o.meshProvider
}

func (o *object) ModelProvider() bind_group_provider.BindGroupProvider {
	return o.modelProvider
}

func (o *object) MaterialProvider() bind_group_provider.BindGroupProvider {
	return o.materialProvider
}

func (o *object) TextureStagingData() *common.TextureStagingData {
	return o.texture
}

func (o *object) SamplerStagingData() common.SamplerStagingData {
	return o.sampler
}

func (o *object) ModelMatrix() [16]float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.modelMatrix
}

func (o *object) SetModelMatrix(m [16]float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.modelMatrix = m
}

func (o *object) Enabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.enabled
}

func (o *object) SetEnabled(enabled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.enabled = enabled
}

func (o *object) Update(deltaTime float32) {
	if o.updateFunc != nil {
		o.updateFunc(o, deltaTime)
	}
}
