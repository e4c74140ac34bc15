package shader

import (
	"errors"
	"fmt"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// ShaderType identifies a programmable stage inside a WGSL module.
type ShaderType int

const (
	// ShaderTypeVertex is the @vertex stage.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the @fragment stage.
	ShaderTypeFragment
)

// FrameGroup and FrameBinding locate the per-frame uniform block written through SetMat4/SetInt.
const (
	FrameGroup   = 0
	FrameBinding = 0
)

// ErrMissingEntryPoint is returned when a module lacks a @vertex or @fragment function.
var ErrMissingEntryPoint = errors.New("shader module is missing an entry point")

// Program is the uniform-facing side of a compiled shader: activation plus named uniform writes.
type Program interface {
	// Use makes the program the active one for subsequent draws.
	Use()

	// SetMat4 writes a mat4x4<f32> member of the frame uniform block.
	//
	// Parameters:
	//   - name: the WGSL member name
	//   - m: the column-major matrix
	SetMat4(name string, m mgl32.Mat4)

	// SetInt writes an i32 member of the frame uniform block.
	//
	// Parameters:
	//   - name: the WGSL member name
	//   - v: the value
	SetInt(name string, v int32)
}

type shader struct {
	key    string
	source string

	vertexEntryPoint   string
	fragmentEntryPoint string
	vertexLayouts      []wgpu.VertexBufferLayout

	bindings                   []parsedBinding
	structLayouts              map[string]StructLayout
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor

	frameUniforms *UniformBlock
	onUse         func(Shader)
}

// Shader is a WGSL module holding both the vertex and the fragment stage, reflected at load
// time: entry points, vertex buffer layout, bind group layouts and the memory layout of every
// struct. The uniform block bound at (FrameGroup, FrameBinding) is staged on the CPU and written
// by name.
type Shader interface {
	Program

	// Key returns the unique key of the shader, used for labels and pipeline caching.
	Key() string

	// Source returns the WGSL source code.
	Source() string

	// EntryPoint returns the entry point function name for the given stage.
	//
	// Parameters:
	//   - stage: ShaderTypeVertex or ShaderTypeFragment
	//
	// Returns:
	//   - string: the function name
	EntryPoint(stage ShaderType) string

	// VertexLayouts returns the vertex buffer layouts read by the vertex stage.
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptor returns the layout descriptor of one bind group.
	//
	// Parameters:
	//   - group: the group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, empty if the group is unused
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors returns all bind group layout descriptors keyed by group index.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindingVarName returns the variable name declared at a group/binding, or "".
	BindingVarName(group, binding int) string

	// BindingLayout returns the struct layout of a buffer binding.
	//
	// Parameters:
	//   - group: the group index
	//   - binding: the binding index
	//
	// Returns:
	//   - StructLayout: the reflected layout of the bound struct
	//   - bool: false if the binding is not a buffer of a known struct type
	BindingLayout(group, binding int) (StructLayout, bool)

	// FrameUniforms returns the staged frame uniform block.
	FrameUniforms() *UniformBlock

	// SetActivateHook installs the function Use calls, normally set by the renderer on
	// registration.
	SetActivateHook(hook func(Shader))
}

var _ Shader = &shader{}

// NewShader reads and reflects a WGSL module from disk.
//
// Parameters:
//   - key: the unique key for this shader
//   - sourcePath: path to the .wgsl file
//
// Returns:
//   - Shader: the reflected shader
//   - error: an error if the file cannot be read or the module lacks an entry point
func NewShader(key, sourcePath string) (Shader, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("shader %s: failed to read source file %q: %w", key, sourcePath, err)
	}
	return NewShaderFromSource(key, string(data))
}

// NewShaderFromSource reflects a WGSL module held in memory.
//
// Parameters:
//   - key: the unique key for this shader
//   - source: the WGSL source
//
// Returns:
//   - Shader: the reflected shader
//   - error: an error wrapping ErrMissingEntryPoint if a stage is missing
func NewShaderFromSource(key, source string) (Shader, error) {
	s := &shader{
		key:    key,
		source: source,
	}

	cleaned := stripComments(source)

	s.vertexEntryPoint = parseEntryPoint(cleaned, ShaderTypeVertex)
	s.fragmentEntryPoint = parseEntryPoint(cleaned, ShaderTypeFragment)
	if s.vertexEntryPoint == "" {
		return nil, fmt.Errorf("shader %s: %w: @vertex", key, ErrMissingEntryPoint)
	}
	if s.fragmentEntryPoint == "" {
		return nil, fmt.Errorf("shader %s: %w: @fragment", key, ErrMissingEntryPoint)
	}

	structs := parseStructBlocks(cleaned)
	s.structLayouts = computeStructLayouts(structs)
	if layout, ok := parseVertexLayout(structs); ok {
		s.vertexLayouts = []wgpu.VertexBufferLayout{layout}
	}

	s.bindings = parseBindings(cleaned)
	s.bindGroupLayoutDescriptors = buildBindGroupLayouts(
		s.bindings,
		s.structLayouts,
		wgpu.ShaderStageVertex|wgpu.ShaderStageFragment,
	)

	frameLayout, _ := s.BindingLayout(FrameGroup, FrameBinding)
	s.frameUniforms = NewUniformBlock(frameLayout)

	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint(stage ShaderType) string {
	switch stage {
	case ShaderTypeVertex:
		return s.vertexEntryPoint
	case ShaderTypeFragment:
		return s.fragmentEntryPoint
	default:
		return ""
	}
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindingVarName(group, binding int) string {
	if b, ok := s.binding(group, binding); ok {
		return b.varName
	}
	return ""
}

func (s *shader) BindingLayout(group, binding int) (StructLayout, bool) {
	b, ok := s.binding(group, binding)
	if !ok || b.addressSpace == "" {
		return StructLayout{}, false
	}
	layout, ok := s.structLayouts[b.typeName]
	return layout, ok
}

func (s *shader) Use() {
	if s.onUse != nil {
		s.onUse(s)
	}
}

func (s *shader) SetMat4(name string, m mgl32.Mat4) {
	s.frameUniforms.SetMat4(name, m)
}

func (s *shader) SetInt(name string, v int32) {
	s.frameUniforms.SetInt(name, v)
}

func (s *shader) FrameUniforms() *UniformBlock {
	return s.frameUniforms
}

func (s *shader) SetActivateHook(hook func(Shader)) {
	s.onUse = hook
}

func (s *shader) binding(group, binding int) (parsedBinding, bool) {
	for _, b := range s.bindings {
		if b.group == group && b.binding == binding {
			return b, true
		}
	}
	return parsedBinding{}, false
}
