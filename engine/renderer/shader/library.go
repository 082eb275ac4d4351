package shader

import (
	"fmt"
	"os"
	"sync"
)

// library is the implementation of the Library interface.
type library struct {
	mu sync.Mutex
	// sources caches raw WGSL file contents keyed by path, so a file shared by a
	// vertex and a fragment shader is only read from disk once.
	sources map[string]string
	// shaders caches parsed shaders keyed by their unique key.
	shaders map[string]Shader
}

// Library is a cache of parsed shaders and their source files. Vertex and fragment
// shaders frequently share one WGSL file, so the library caches file contents by path
// and parsed shaders by key. All methods are safe for concurrent use.
type Library interface {
	// Load returns the shader for the given key, parsing it from the WGSL file at
	// sourcePath on first use. Subsequent calls with the same key return the cached
	// shader without touching the filesystem.
	//
	// Parameters:
	//   - key: a unique identifier for the shader
	//   - shaderType: the type of shader (vertex or fragment)
	//   - sourcePath: the file path to read WGSL source from
	//
	// Returns:
	//   - Shader: the cached or newly parsed shader
	//   - error: an error if the source file could not be read
	Load(key string, shaderType ShaderType, sourcePath string) (Shader, error)

	// Get returns the cached shader for a key, if present.
	//
	// Parameters:
	//   - key: the shader's unique key
	//
	// Returns:
	//   - Shader: the cached shader, or nil if not loaded
	//   - bool: true if the shader was found
	Get(key string) (Shader, bool)

	// Len returns the number of cached shaders.
	//
	// Returns:
	//   - int: the cached shader count
	Len() int
}

var _ Library = &library{}

// NewLibrary creates an empty shader library.
//
// Returns:
//   - Library: the new library
func NewLibrary() Library {
	return &library{
		sources: make(map[string]string),
		shaders: make(map[string]Shader),
	}
}

func (l *library) Load(key string, shaderType ShaderType, sourcePath string) (Shader, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.shaders[key]; ok {
		return s, nil
	}

	source, ok := l.sources[sourcePath]
	if !ok {
		data, err := os.ReadFile(sourcePath)
		if err != nil {
			return nil, fmt.Errorf("shader: failed to read source file %q: %w", sourcePath, err)
		}
		source = string(data)
		l.sources[sourcePath] = source
	}

	s := NewShader(key, shaderType, source)
	l.shaders[key] = s
	return s, nil
}

func (l *library) Get(key string) (Shader, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.shaders[key]
	return s, ok
}

func (l *library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.shaders)
}
