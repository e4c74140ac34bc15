package shader

import (
	"strconv"
	"strings"
)

// wgslPrimitiveLayoutMap maps WGSL scalar, vector and matrix types to their size and alignment.
//
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
var wgslPrimitiveLayoutMap = map[string]wgslTypeLayout{
	"f32":  {4, 4},
	"i32":  {4, 4},
	"u32":  {4, 4},
	"bool": {4, 4},

	"vec2<f32>": {8, 8},
	"vec2f":     {8, 8},
	"vec3<f32>": {12, 16},
	"vec3f":     {12, 16},
	"vec4<f32>": {16, 16},
	"vec4f":     {16, 16},

	"vec2<i32>": {8, 8},
	"vec2i":     {8, 8},
	"vec4<i32>": {16, 16},
	"vec4i":     {16, 16},

	"vec2<u32>": {8, 8},
	"vec2u":     {8, 8},
	"vec4<u32>": {16, 16},
	"vec4u":     {16, 16},

	"mat3x3<f32>": {48, 16},
	"mat3x3f":     {48, 16},
	"mat4x4<f32>": {64, 16},
	"mat4x4f":     {64, 16},
}

// roundUpAlign rounds value up to the next multiple of alignment (a power of two).
func roundUpAlign(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// resolveTypeLayout resolves a type name against primitives, known structs and fixed-size
// arrays. Runtime-sized arrays resolve to their element stride.
//
// Parameters:
//   - typeName: the WGSL type
//   - structs: already-reflected struct layouts
//
// Returns:
//   - wgslTypeLayout: size and alignment
//   - bool: false if the type cannot be resolved yet
func resolveTypeLayout(typeName string, structs map[string]StructLayout) (wgslTypeLayout, bool) {
	if l, ok := wgslPrimitiveLayoutMap[typeName]; ok {
		return l, true
	}
	if s, ok := structs[typeName]; ok {
		return wgslTypeLayout{s.Size, s.Align}, true
	}

	if strings.HasPrefix(typeName, "array<") && strings.HasSuffix(typeName, ">") {
		inner := typeName[len("array<") : len(typeName)-1]
		parts := splitAtTopLevelCommas(inner)
		elem, ok := resolveTypeLayout(strings.TrimSpace(parts[0]), structs)
		if !ok {
			return wgslTypeLayout{}, false
		}
		stride := roundUpAlign(elem.align, elem.size)
		if len(parts) == 2 {
			count, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
			if err != nil {
				return wgslTypeLayout{}, false
			}
			return wgslTypeLayout{count * stride, elem.align}, true
		}
		return wgslTypeLayout{stride, elem.align}, true
	}

	return wgslTypeLayout{}, false
}

// computeStructLayout places each member at the next offset aligned to the member's alignment.
// The struct size is rounded up to its largest member alignment. @builtin members are not part
// of any buffer and are skipped.
//
// Parameters:
//   - ps: the parsed struct
//   - structs: already-reflected struct layouts for nested members
//
// Returns:
//   - StructLayout: the layout with member offsets
//   - bool: false if a member type is not resolvable yet
func computeStructLayout(ps parsedStruct, structs map[string]StructLayout) (StructLayout, bool) {
	layout := StructLayout{Name: ps.name, Align: 1}
	offset := uint64(0)

	for _, f := range ps.fields {
		if f.isBuiltin {
			continue
		}
		fl, ok := resolveTypeLayout(f.typeName, structs)
		if !ok {
			return StructLayout{}, false
		}

		offset = roundUpAlign(fl.align, offset)
		layout.Fields = append(layout.Fields, FieldLayout{
			Name:   f.name,
			Type:   f.typeName,
			Offset: offset,
			Size:   fl.size,
		})
		offset += fl.size

		if fl.align > layout.Align {
			layout.Align = fl.align
		}
	}

	layout.Size = roundUpAlign(layout.Align, offset)
	return layout, true
}

// computeStructLayouts reflects every struct, resolving nested struct members iteratively
// until no further progress is made.
//
// Parameters:
//   - structs: parsed struct blocks in any order
//
// Returns:
//   - map[string]StructLayout: layouts keyed by struct name
func computeStructLayouts(structs []parsedStruct) map[string]StructLayout {
	resolved := make(map[string]StructLayout, len(structs))
	remaining := append([]parsedStruct(nil), structs...)

	for len(remaining) > 0 {
		next := remaining[:0]
		for _, ps := range remaining {
			if l, ok := computeStructLayout(ps, resolved); ok {
				resolved[ps.name] = l
			} else {
				next = append(next, ps)
			}
		}
		if len(next) == len(remaining) {
			break
		}
		remaining = next
	}

	return resolved
}
