package scene

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/kestrel-gfx/kestrel/common"
	"github.com/kestrel-gfx/kestrel/engine/camera"
	"github.com/kestrel-gfx/kestrel/engine/mesh"
	"github.com/kestrel-gfx/kestrel/engine/renderer"
	"github.com/kestrel-gfx/kestrel/engine/renderer/bind_group_provider"
	"github.com/kestrel-gfx/kestrel/engine/renderer/pipeline"
	"github.com/kestrel-gfx/kestrel/engine/renderer/shader"
)

const testVertexSource = `
struct CameraUniform {
    view_matrix: mat4x4<f32>,
    proj_matrix: mat4x4<f32>,
    camera_position: vec3<f32>,
};

struct ModelUniform {
    model_matrix: mat4x4<f32>,
};

@group(0) @binding(0) var<uniform> camera: CameraUniform;
@group(1) @binding(0) var<uniform> model: ModelUniform;

struct VertexInput {
    @location(0) position: vec3<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return camera.proj_matrix * camera.view_matrix * model.model_matrix * vec4<f32>(in.position, 1.0);
}
`

const testFragmentSource = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 1.0, 1.0, 1.0);
}
`

// stubRenderer implements renderer.Renderer and records every call so tests can
// assert on the resource creation and frame staging flow without a GPU.
type stubRenderer struct {
	registeredKeys  []string
	meshProviders   []bind_group_provider.BindGroupProvider
	bindGroupInits  map[string]wgpu.BindGroupLayoutDescriptor
	textureInits    map[string]int
	samplerInits    map[string]int
	writes          [][]bind_group_provider.BufferWrite
	drawCalls       []stubDrawCall
	resizedTo       [2]int
	presentModeSets int
}

type stubDrawCall struct {
	pipelineKey   string
	meshProvider  bind_group_provider.BindGroupProvider
	instanceCount uint32
	bindGroups    []bind_group_provider.BindGroupProvider
}

var _ renderer.Renderer = &stubRenderer{}

func newStubRenderer() *stubRenderer {
	return &stubRenderer{
		bindGroupInits: make(map[string]wgpu.BindGroupLayoutDescriptor),
		textureInits:   make(map[string]int),
		samplerInits:   make(map[string]int),
	}
}

func (r *stubRenderer) Pipeline(key string) pipeline.Pipeline { return nil }

func (r *stubRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		r.registeredKeys = append(r.registeredKeys, p.Key())
	}
	return nil
}

func (r *stubRenderer) Resize(width, height int) { r.resizedTo = [2]int{width, height} }

func (r *stubRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	provider.SetIndexCount(indexCount)
	r.meshProviders = append(r.meshProviders, provider)
	return nil
}

func (r *stubRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error {
	r.bindGroupInits[provider.Label()] = descriptor
	return nil
}

func (r *stubRenderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	r.textureInits[provider.Label()] = bindingKey
	return nil
}

func (r *stubRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	r.samplerInits[provider.Label()] = bindingKey
	return nil
}

func (r *stubRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.writes = append(r.writes, writes)
}

func (r *stubRenderer) BeginFrame() error { return nil }

func (r *stubRenderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.drawCalls = append(r.drawCalls, stubDrawCall{pipelineKey, meshProvider, instanceCount, bindGroups})
	return nil
}

func (r *stubRenderer) EndFrame() {}

func (r *stubRenderer) Present() {}

func (r *stubRenderer) SetPresentMode(mode renderer.PresentMode) { r.presentModeSets++ }

func newTestScene(t *testing.T) (Scene, *stubRenderer) {
	t.Helper()
	cam := camera.NewCamera(0, 0, 2, 800.0/600.0)
	r := newStubRenderer()
	vs := shader.NewShader("test vertex", shader.ShaderTypeVertex, testVertexSource)
	return NewScene("test scene", cam, r, vs), r
}

func TestNewSceneCreatesCameraBindGroup(t *testing.T) {
	s, r := newTestScene(t)

	desc, ok := r.bindGroupInits[s.CameraProvider().Label()]
	if !ok {
		t.Fatal("camera bind group was not initialized")
	}
	if len(desc.Entries) != 1 {
		t.Fatalf("camera layout has %d entries, want 1", len(desc.Entries))
	}
	if got := desc.Entries[0].Buffer.MinBindingSize; got != 144 {
		t.Errorf("camera uniform MinBindingSize = %d, want 144", got)
	}
}

func TestNewScenePanicsOnNilCamera(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil camera")
		}
	}()
	vs := shader.NewShader("test vertex", shader.ShaderTypeVertex, testVertexSource)
	NewScene("bad", nil, newStubRenderer(), vs)
}

func TestNewScenePanicsOnNilRenderer(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil renderer")
		}
	}()
	cam := camera.NewCamera(0, 0, 2, 1)
	vs := shader.NewShader("test vertex", shader.ShaderTypeVertex, testVertexSource)
	NewScene("bad", cam, nil, vs)
}

func TestAddCreatesObjectResources(t *testing.T) {
	s, r := newTestScene(t)
	vs := shader.NewShader("cube vertex", shader.ShaderTypeVertex, testVertexSource)
	fs := shader.NewShader("cube fragment", shader.ShaderTypeFragment, testFragmentSource)

	obj := NewObject("cube", mesh.NewDefaultCube(), "cube pipeline")
	if err := s.Add(obj, vs, fs); err != nil {
		t.Fatal(err)
	}

	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1", s.Count())
	}
	if len(r.registeredKeys) != 1 || r.registeredKeys[0] != "cube pipeline" {
		t.Errorf("registered pipelines = %v, want [cube pipeline]", r.registeredKeys)
	}
	if len(r.meshProviders) != 1 {
		t.Fatalf("mesh buffer inits = %d, want 1", len(r.meshProviders))
	}
	if got := obj.MeshProvider().IndexCount(); got != 36 {
		t.Errorf("mesh provider index count = %d, want 36", got)
	}

	desc, ok := r.bindGroupInits[obj.ModelProvider().Label()]
	if !ok {
		t.Fatal("model bind group was not initialized")
	}
	if got := desc.Entries[0].Buffer.MinBindingSize; got != 64 {
		t.Errorf("model uniform MinBindingSize = %d, want 64", got)
	}
}

func TestPrepareFrameStagesCameraAndModelUniforms(t *testing.T) {
	s, r := newTestScene(t)
	vs := shader.NewShader("cube vertex", shader.ShaderTypeVertex, testVertexSource)
	fs := shader.NewShader("cube fragment", shader.ShaderTypeFragment, testFragmentSource)

	var model [16]float32
	model[0], model[5], model[10], model[15] = 2, 2, 2, 1
	obj := NewObject("cube", mesh.NewDefaultCube(), "cube pipeline", WithModelMatrix(model))
	if err := s.Add(obj, vs, fs); err != nil {
		t.Fatal(err)
	}

	s.PrepareFrame(1.0 / 60.0)

	if len(r.writes) != 1 {
		t.Fatalf("WriteBuffers called %d times, want 1", len(r.writes))
	}
	writes := r.writes[0]
	if len(writes) != 2 {
		t.Fatalf("staged %d buffer writes, want 2 (camera + model)", len(writes))
	}

	if writes[0].Provider != s.CameraProvider() {
		t.Error("first write does not target the camera provider")
	}
	if len(writes[0].Data) != 144 {
		t.Errorf("camera write is %d bytes, want 144", len(writes[0].Data))
	}

	if writes[1].Provider != obj.ModelProvider() {
		t.Error("second write does not target the model provider")
	}
	if len(writes[1].Data) != 64 {
		t.Fatalf("model write is %d bytes, want 64", len(writes[1].Data))
	}
	got := math.Float32frombits(binary.LittleEndian.Uint32(writes[1].Data))
	if got != 2 {
		t.Errorf("model matrix [0] uploaded as %v, want 2", got)
	}
}

func TestPrepareFrameRunsUpdateFuncs(t *testing.T) {
	s, _ := newTestScene(t)
	vs := shader.NewShader("cube vertex", shader.ShaderTypeVertex, testVertexSource)
	fs := shader.NewShader("cube fragment", shader.ShaderTypeFragment, testFragmentSource)

	var gotDelta float32
	obj := NewObject("cube", mesh.NewDefaultCube(), "cube pipeline",
		WithUpdateFunc(func(o Object, deltaTime float32) {
			gotDelta = deltaTime
			m := o.ModelMatrix()
			m[12] += deltaTime
			o.SetModelMatrix(m)
		}))
	if err := s.Add(obj, vs, fs); err != nil {
		t.Fatal(err)
	}

	s.PrepareFrame(0.5)

	if gotDelta != 0.5 {
		t.Errorf("update func received deltaTime %v, want 0.5", gotDelta)
	}
	if got := obj.ModelMatrix()[12]; got != 0.5 {
		t.Errorf("model matrix translation = %v, want 0.5", got)
	}
}

func TestDrawCallsSkipDisabledObjects(t *testing.T) {
	s, r := newTestScene(t)
	vs := shader.NewShader("cube vertex", shader.ShaderTypeVertex, testVertexSource)
	fs := shader.NewShader("cube fragment", shader.ShaderTypeFragment, testFragmentSource)

	visible := NewObject("visible", mesh.NewDefaultCube(), "cube pipeline")
	hidden := NewObject("hidden", mesh.NewDefaultCube(), "cube pipeline")
	for _, obj := range []Object{visible, hidden} {
		if err := s.Add(obj, vs, fs); err != nil {
			t.Fatal(err)
		}
	}
	hidden.SetEnabled(false)

	if err := s.DrawCalls(); err != nil {
		t.Fatal(err)
	}

	if len(r.drawCalls) != 1 {
		t.Fatalf("encoded %d draw calls, want 1", len(r.drawCalls))
	}
	call := r.drawCalls[0]
	if call.pipelineKey != "cube pipeline" {
		t.Errorf("draw call pipeline = %q, want %q", call.pipelineKey, "cube pipeline")
	}
	if call.meshProvider != visible.MeshProvider() {
		t.Error("draw call does not use the visible object's mesh provider")
	}
	if len(call.bindGroups) != 2 {
		t.Fatalf("draw call has %d bind groups, want 2 (camera + model)", len(call.bindGroups))
	}
	if call.bindGroups[0] != s.CameraProvider() {
		t.Error("bind group 0 is not the camera provider")
	}
}

func TestResizeUpdatesCameraAspect(t *testing.T) {
	s, _ := newTestScene(t)

	s.Resize(1600, 800)
	if got := s.Camera().Aspect(); got != 2 {
		t.Errorf("aspect after resize = %v, want 2", got)
	}

	// Degenerate sizes are ignored rather than producing a NaN projection.
	s.Resize(100, 0)
	if got := s.Camera().Aspect(); got != 2 {
		t.Errorf("aspect after zero-height resize = %v, want 2", got)
	}
}
