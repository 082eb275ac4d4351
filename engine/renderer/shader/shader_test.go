package shader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

const testSource = `
struct CameraUniform {
    view_matrix: mat4x4<f32>,
    proj_matrix: mat4x4<f32>,
    camera_position: vec3<f32>,
};

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) color: vec3<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) color: vec3<f32>,
};

@group(0) @binding(0) var<uniform> camera: CameraUniform;
@group(1) @binding(0) var<uniform> model: mat4x4<f32>;

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = camera.proj_matrix * camera.view_matrix * model * vec4<f32>(in.position, 1.0);
    out.color = in.color;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(in.color, 1.0);
}
`

const texturedSource = `
@group(0) @binding(0) var glyph_texture: texture_2d<f32>;
@group(0) @binding(1) var glyph_sampler: sampler;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return textureSample(glyph_texture, glyph_sampler, uv);
}
`

func TestParseEntryPoints(t *testing.T) {
	vs := NewShader("test_vs", ShaderTypeVertex, testSource)
	if got := vs.EntryPoint(); got != "vs_main" {
		t.Errorf("vertex entry point = %q, want %q", got, "vs_main")
	}

	fs := NewShader("test_fs", ShaderTypeFragment, testSource)
	if got := fs.EntryPoint(); got != "fs_main" {
		t.Errorf("fragment entry point = %q, want %q", got, "fs_main")
	}
}

func TestMissingEntryPointPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for vertex shader with no @vertex entry point")
		}
	}()
	NewShader("bad", ShaderTypeVertex, texturedSource)
}

func TestParseVertexLayout(t *testing.T) {
	vs := NewShader("test_vs", ShaderTypeVertex, testSource)

	layouts := vs.VertexLayout(0)
	if len(layouts) != 1 {
		t.Fatalf("expected 1 vertex buffer layout, got %d", len(layouts))
	}

	layout := layouts[0]
	if layout.ArrayStride != 24 {
		t.Errorf("ArrayStride = %d, want 24", layout.ArrayStride)
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(layout.Attributes))
	}
	if layout.Attributes[0].Format != wgpu.VertexFormatFloat32x3 || layout.Attributes[0].Offset != 0 {
		t.Errorf("attribute 0 = %+v, want Float32x3 at offset 0", layout.Attributes[0])
	}
	if layout.Attributes[1].Format != wgpu.VertexFormatFloat32x3 || layout.Attributes[1].Offset != 12 {
		t.Errorf("attribute 1 = %+v, want Float32x3 at offset 12", layout.Attributes[1])
	}

	// VertexOutput mixes @location with @builtin(position), so it must not
	// produce a second vertex buffer layout.
	if got := len(vs.VertexLayouts()); got != 1 {
		t.Errorf("expected 1 vertex layout total, got %d", got)
	}
}

func TestParseBindGroupLayouts(t *testing.T) {
	vs := NewShader("test_vs", ShaderTypeVertex, testSource)

	descs := vs.BindGroupLayoutDescriptors()
	if len(descs) != 2 {
		t.Fatalf("expected 2 bind groups, got %d", len(descs))
	}

	camera := descs[0]
	if len(camera.Entries) != 1 {
		t.Fatalf("group 0: expected 1 entry, got %d", len(camera.Entries))
	}
	entry := camera.Entries[0]
	if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
		t.Errorf("group 0 binding 0: buffer type = %v, want uniform", entry.Buffer.Type)
	}
	if entry.Visibility != wgpu.ShaderStageVertex {
		t.Errorf("group 0 binding 0: visibility = %v, want vertex", entry.Visibility)
	}
	// CameraUniform: two mat4x4<f32> (64 each) + vec3<f32> (12), rounded up to
	// 16-byte alignment = 144.
	if entry.Buffer.MinBindingSize != 144 {
		t.Errorf("group 0 binding 0: MinBindingSize = %d, want 144", entry.Buffer.MinBindingSize)
	}

	model := descs[1]
	if len(model.Entries) != 1 {
		t.Fatalf("group 1: expected 1 entry, got %d", len(model.Entries))
	}
	if model.Entries[0].Buffer.MinBindingSize != 64 {
		t.Errorf("group 1 binding 0: MinBindingSize = %d, want 64", model.Entries[0].Buffer.MinBindingSize)
	}

	if got := vs.BindGroupVarName(0, 0); got != "camera" {
		t.Errorf("BindGroupVarName(0, 0) = %q, want %q", got, "camera")
	}
	if got := vs.BindGroupVarName(1, 0); got != "model" {
		t.Errorf("BindGroupVarName(1, 0) = %q, want %q", got, "model")
	}
}

func TestParseTextureAndSamplerBindings(t *testing.T) {
	fs := NewShader("glyph_fs", ShaderTypeFragment, texturedSource)

	desc := fs.BindGroupLayoutDescriptor(0)
	if len(desc.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(desc.Entries))
	}

	tex := desc.Entries[0]
	if tex.Texture.SampleType != wgpu.TextureSampleTypeFloat {
		t.Errorf("texture sample type = %v, want float", tex.Texture.SampleType)
	}
	if tex.Texture.ViewDimension != wgpu.TextureViewDimension2D {
		t.Errorf("texture view dimension = %v, want 2D", tex.Texture.ViewDimension)
	}

	samp := desc.Entries[1]
	if samp.Sampler.Type != wgpu.SamplerBindingTypeFiltering {
		t.Errorf("sampler type = %v, want filtering", samp.Sampler.Type)
	}
}

func TestCommentsDoNotConfuseParser(t *testing.T) {
	commented := `
// struct Fake { @location(9) bogus: vec4<f32>, };
/* @vertex
fn not_the_entry() {} */
struct In {
    @location(0) pos: vec3<f32>, // world space
};
@vertex
fn real_entry(in: In) -> @builtin(position) vec4<f32> {
    return vec4<f32>(in.pos, 1.0);
}
`
	vs := NewShader("commented", ShaderTypeVertex, commented)
	if got := vs.EntryPoint(); got != "real_entry" {
		t.Errorf("entry point = %q, want %q", got, "real_entry")
	}
	if got := len(vs.VertexLayouts()); got != 1 {
		t.Errorf("expected 1 vertex layout, got %d", got)
	}
}

func TestLibraryCachesSourcesAndShaders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.wgsl")
	if err := os.WriteFile(path, []byte(testSource), 0o644); err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary()

	vs, err := lib.Load("test_vs", ShaderTypeVertex, path)
	if err != nil {
		t.Fatalf("Load vertex: %v", err)
	}
	fs, err := lib.Load("test_fs", ShaderTypeFragment, path)
	if err != nil {
		t.Fatalf("Load fragment: %v", err)
	}
	if vs.EntryPoint() != "vs_main" || fs.EntryPoint() != "fs_main" {
		t.Errorf("entry points = %q, %q", vs.EntryPoint(), fs.EntryPoint())
	}

	// Deleting the file must not matter once the source is cached.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	again, err := lib.Load("test_vs", ShaderTypeVertex, path)
	if err != nil {
		t.Fatalf("Load after remove: %v", err)
	}
	if again != vs {
		t.Error("expected cached shader instance on second Load")
	}

	if got, ok := lib.Get("test_fs"); !ok || got != fs {
		t.Error("Get(test_fs) did not return the cached shader")
	}
	if _, ok := lib.Get("missing"); ok {
		t.Error("Get(missing) reported a hit")
	}
	if lib.Len() != 2 {
		t.Errorf("Len() = %d, want 2", lib.Len())
	}
}

func TestLibraryLoadMissingFile(t *testing.T) {
	lib := NewLibrary()
	if _, err := lib.Load("nope", ShaderTypeVertex, filepath.Join(t.TempDir(), "missing.wgsl")); err == nil {
		t.Fatal("expected error for missing source file")
	}
}
