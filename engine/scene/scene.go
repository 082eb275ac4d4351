package scene

import (
	"encoding/binary"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/kestrel-gfx/kestrel/engine/camera"
	"github.com/kestrel-gfx/kestrel/engine/renderer"
	"github.com/kestrel-gfx/kestrel/engine/renderer/bind_group_provider"
	"github.com/kestrel-gfx/kestrel/engine/renderer/pipeline"
	"github.com/kestrel-gfx/kestrel/engine/renderer/shader"
)

const (
	// Bind group slots follow a fixed convention across all scene shaders:
	// group 0 carries the camera uniform, group 1 the per-object model matrix,
	// group 2 an optional texture and sampler.
	cameraBindGroup   = 0
	modelBindGroup    = 1
	materialBindGroup = 2

	// modelUniformSize is the byte size of the per-object model matrix uniform.
	modelUniformSize = 64
)

// scene is the implementation of the Scene interface.
type scene struct {
	mu sync.Mutex

	name string
	cam  camera.Camera
	rend renderer.Renderer

	// cameraProvider holds the shared camera uniform buffer, bound at group 0 in
	// every pipeline the scene draws with.
	cameraProvider bind_group_provider.BindGroupProvider
	cameraUniform  camera.GPUCameraUniform

	objects []Object

	// modelWrites holds one pre-staged buffer write per object, index-aligned with
	// objects. Workers marshal into disjoint slots so no locking is needed during
	// frame preparation.
	modelWrites []bind_group_provider.BufferWrite

	prepWorkers int
	pool        worker.DynamicWorkerPool
}

// Scene manages a collection of renderable objects that share one camera. It owns the
// camera uniform buffer, creates GPU resources for objects as they are added, stages
// per-frame uniform uploads across a worker pool, and issues the draw calls for a frame.
type Scene interface {
	// Name returns the scene's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Camera returns the scene's camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Renderer returns the renderer the scene draws with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// CameraProvider returns the provider holding the shared camera uniform buffer.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the camera provider
	CameraProvider() bind_group_provider.BindGroupProvider

	// Add registers an object with the scene and creates its GPU resources: the render
	// pipeline (skipped if the key is already registered), vertex and index buffers,
	// the model uniform bind group, and the material bind group for textured objects.
	//
	// Parameters:
	//   - obj: the object to add
	//   - vertexShader: the vertex shader for the object's pipeline
	//   - fragmentShader: the fragment shader for the object's pipeline
	//   - pipelineOptions: additional pipeline configuration (topology, blending, etc.)
	//
	// Returns:
	//   - error: an error if GPU resource creation fails
	Add(obj Object, vertexShader, fragmentShader shader.Shader, pipelineOptions ...pipeline.PipelineBuilderOption) error

	// Count returns the number of objects in the scene.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// PrepareFrame runs object update functions and uploads all uniform data for the
	// next frame: the camera uniform and each enabled object's model matrix. Model
	// matrices are marshaled in parallel across the scene's worker pool.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	PrepareFrame(deltaTime float32)

	// DrawCalls encodes one draw call per enabled object into the current render pass.
	// Must be called between Renderer.BeginFrame and Renderer.EndFrame.
	//
	// Returns:
	//   - error: an error if any object's pipeline is not registered
	DrawCalls() error

	// Resize updates the camera's aspect ratio for a new surface size.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)
}

var _ Scene = &scene{}

// NewScene creates a scene backed by the given camera and renderer. The camera uniform
// bind group is created immediately from the vertex shader's group 0 layout, so the
// vertex shader must declare the camera uniform at group 0.
//
// Panics if cam, r, or vertexShader is nil, or if the vertex shader declares no
// bindings at group 0.
//
// Parameters:
//   - name: the scene's name, used to label GPU resources
//   - cam: the camera providing view and projection matrices
//   - r: the renderer that owns GPU resources and encodes frames
//   - vertexShader: a vertex shader declaring the camera uniform at group 0
//   - options: functional options (worker count)
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, vertexShader shader.Shader, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}
	if vertexShader == nil {
		panic("scene: NewScene requires a non-nil vertex Shader")
	}

	s := &scene{
		name:           name,
		cam:            cam,
		rend:           r,
		cameraProvider: bind_group_provider.NewBindGroupProvider(name + " camera"),
		prepWorkers:    max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	s.pool = worker.NewDynamicWorkerPool(s.prepWorkers, 256, 1*time.Second)

	cameraLayout := vertexShader.BindGroupLayoutDescriptor(cameraBindGroup)
	if len(cameraLayout.Entries) == 0 {
		panic(fmt.Sprintf("scene: vertex shader %q declares no bindings at group %d for the camera uniform", vertexShader.Key(), cameraBindGroup))
	}
	if err := r.InitBindGroup(s.cameraProvider, cameraLayout, nil); err != nil {
		panic(fmt.Sprintf("scene: failed to create camera bind group: %v", err))
	}

	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.rend
}

func (s *scene) CameraProvider() bind_group_provider.BindGroupProvider {
	return s.cameraProvider
}

func (s *scene) Add(obj Object, vertexShader, fragmentShader shader.Shader, pipelineOptions ...pipeline.PipelineBuilderOption) error {
	opts := append([]pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vertexShader),
		pipeline.WithFragmentShader(fragmentShader),
	}, pipelineOptions...)
	if err := s.rend.RegisterPipelines(pipeline.NewPipeline(obj.PipelineKey(), opts...)); err != nil {
		return fmt.Errorf("scene: failed to register pipeline %q: %w", obj.PipelineKey(), err)
	}

	msh := obj.Mesh()
	if err := s.rend.InitMeshBuffers(obj.MeshProvider(), msh.VertexData(), msh.IndexData(), msh.IndexCount()); err != nil {
		return fmt.Errorf("scene: failed to create mesh buffers for %q: %w", obj.Name(), err)
	}

	modelLayout := vertexShader.BindGroupLayoutDescriptor(modelBindGroup)
	if len(modelLayout.Entries) == 0 {
		return fmt.Errorf("scene: vertex shader %q declares no bindings at group %d for the model uniform", vertexShader.Key(), modelBindGroup)
	}
	if err := s.rend.InitBindGroup(obj.ModelProvider(), modelLayout, nil); err != nil {
		return fmt.Errorf("scene: failed to create model bind group for %q: %w", obj.Name(), err)
	}

	if obj.MaterialProvider() != nil {
		if err := s.initMaterial(obj, fragmentShader); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.objects = append(s.objects, obj)
	s.modelWrites = append(s.modelWrites, bind_group_provider.BufferWrite{
		Provider: obj.ModelProvider(),
		Binding:  0,
		Data:     make([]byte, modelUniformSize),
	})
	s.mu.Unlock()

	return nil
}

// initMaterial uploads the object's texture and sampler, then creates the material bind
// group from the fragment shader's group 2 layout.
func (s *scene) initMaterial(obj Object, fragmentShader shader.Shader) error {
	layout := fragmentShader.BindGroupLayoutDescriptor(materialBindGroup)
	if len(layout.Entries) == 0 {
		return fmt.Errorf("scene: fragment shader %q declares no bindings at group %d for object %q's material", fragmentShader.Key(), materialBindGroup, obj.Name())
	}

	for _, entry := range layout.Entries {
		binding := int(entry.Binding)
		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			if err := s.rend.InitTextureView(obj.MaterialProvider(), binding, *obj.TextureStagingData()); err != nil {
				return fmt.Errorf("scene: failed to create texture for %q: %w", obj.Name(), err)
			}
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			if err := s.rend.InitSampler(obj.MaterialProvider(), binding, obj.SamplerStagingData()); err != nil {
				return fmt.Errorf("scene: failed to create sampler for %q: %w", obj.Name(), err)
			}
		}
	}

	if err := s.rend.InitBindGroup(obj.MaterialProvider(), layout, nil); err != nil {
		return fmt.Errorf("scene: failed to create material bind group for %q: %w", obj.Name(), err)
	}
	return nil
}

func (s *scene) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *scene) PrepareFrame(deltaTime float32) {
	s.mu.Lock()
	objects := s.objects
	writes := s.modelWrites
	s.mu.Unlock()

	for _, obj := range objects {
		obj.Update(deltaTime)
	}

	s.cameraUniform.StageFrom(s.cam)
	frameWrites := make([]bind_group_provider.BufferWrite, 0, len(objects)+1)
	frameWrites = append(frameWrites, bind_group_provider.BufferWrite{
		Provider: s.cameraProvider,
		Binding:  0,
		Data:     s.cameraUniform.Marshal(),
	})

	// Fan the model matrix marshaling out across the pool. Each task writes into
	// its own pre-allocated slot, so the only synchronization is the WaitGroup.
	var wg sync.WaitGroup
	taskID := 0
	for i, obj := range objects {
		if !obj.Enabled() {
			continue
		}

		wg.Add(1)
		slot := writes[i].Data
		o := obj
		s.pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				m := o.ModelMatrix()
				for j := range 16 {
					binary.LittleEndian.PutUint32(slot[j*4:], math.Float32bits(m[j]))
				}
				return nil, nil
			},
		})
		taskID++
		frameWrites = append(frameWrites, writes[i])
	}
	wg.Wait()

	s.rend.WriteBuffers(frameWrites)
}

func (s *scene) DrawCalls() error {
	s.mu.Lock()
	objects := s.objects
	s.mu.Unlock()

	for _, obj := range objects {
		if !obj.Enabled() {
			continue
		}

		bindGroups := []bind_group_provider.BindGroupProvider{s.cameraProvider, obj.ModelProvider()}
		if obj.MaterialProvider() != nil {
			bindGroups = append(bindGroups, obj.MaterialProvider())
		}

		if err := s.rend.DrawCall(obj.PipelineKey(), obj.MeshProvider(), 1, bindGroups); err != nil {
			return fmt.Errorf("scene: draw call failed for %q: %w", obj.Name(), err)
		}
	}
	return nil
}

func (s *scene) Resize(width, height int) {
	if height <= 0 {
		return
	}
	s.cam.SetAspect(float32(width) / float32(height))
}
