package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// errMalformed is wrapped by every OBJ/MTL syntax error.
var errMalformed = errors.New("malformed statement")

// objVertexKey identifies a face vertex by its 0-based position, texcoord and normal indices.
// Missing components are -1.
type objVertexKey [3]int

// objMeshBuilder accumulates one sub-mesh while the OBJ stream is read.
type objMeshBuilder struct {
	name         string
	materialName string

	vertices []model.Vertex
	indices  []uint32
	lookup   map[objVertexKey]uint32

	// computed marks vertices whose normal is accumulated from face winding.
	computed map[uint32]bool
}

func newObjMeshBuilder(name, materialName string) *objMeshBuilder {
	return &objMeshBuilder{
		name:         name,
		materialName: materialName,
		lookup:       make(map[objVertexKey]uint32),
		computed:     make(map[uint32]bool),
	}
}

// objResult is the geometry of an OBJ file with material references still unresolved.
type objResult struct {
	meshes  []*objMeshBuilder
	mtllibs []string
}

// objParser reads Wavefront OBJ statements. Supported: v, vt, vn, f, o, g, usemtl, mtllib.
// Everything else (s, l, p, vp, curves) is ignored.
type objParser struct {
	positions [][3]float32
	texCoords [][2]float32
	normals   [][3]float32

	current *objMeshBuilder
	result  objResult
}

// parseOBJ parses an OBJ stream into sub-meshes. Faces with more than three vertices are fan
// triangulated. Vertices are deduplicated per sub-mesh, texture v is flipped to a top-left
// origin, and missing normals are computed from the face winding.
//
// Parameters:
//   - r: the OBJ source
//
// Returns:
//   - objResult: the sub-meshes with at least one face, and the referenced material libraries
//   - error: an error naming the line of the first malformed statement
func parseOBJ(r io.Reader) (objResult, error) {
	p := &objParser{current: newObjMeshBuilder("default", "")}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := p.parseLine(scanner.Text()); err != nil {
			return objResult{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return objResult{}, err
	}

	p.flush()
	return p.result, nil
}

func (p *objParser) parseLine(line string) error {
	fields := strings.Fields(stripLineComment(line))
	if len(fields) == 0 {
		return nil
	}

	keyword, args := fields[0], fields[1:]
	switch keyword {
	case "v":
		v, err := parseFloats(args, 3)
		if err != nil {
			return fmt.Errorf("v: %w", err)
		}
		p.positions = append(p.positions, [3]float32{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(args, 1)
		if err != nil {
			return fmt.Errorf("vt: %w", err)
		}
		tc := [2]float32{v[0], 0}
		if len(v) > 1 {
			tc[1] = v[1]
		}
		p.texCoords = append(p.texCoords, tc)
	case "vn":
		v, err := parseFloats(args, 3)
		if err != nil {
			return fmt.Errorf("vn: %w", err)
		}
		p.normals = append(p.normals, [3]float32{v[0], v[1], v[2]})
	case "f":
		return p.parseFace(args)
	case "o", "g":
		name := strings.Join(args, " ")
		if name == "" {
			name = "default"
		}
		if len(p.current.indices) == 0 {
			p.current.name = name
			return nil
		}
		p.flush()
		p.current = newObjMeshBuilder(name, p.current.materialName)
	case "usemtl":
		name := strings.Join(args, " ")
		if len(p.current.indices) > 0 && name != p.current.materialName {
			p.flush()
			p.current = newObjMeshBuilder(p.current.name, name)
			return nil
		}
		p.current.materialName = name
	case "mtllib":
		p.result.mtllibs = append(p.result.mtllibs, args...)
	}
	return nil
}

func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("f: %w: need at least 3 vertices, got %d", errMalformed, len(args))
	}

	corners := make([]uint32, len(args))
	for i, arg := range args {
		key, err := p.resolveFaceVertex(arg)
		if err != nil {
			return fmt.Errorf("f: %w", err)
		}
		corners[i] = p.current.vertex(key, p)
	}

	for i := 1; i+1 < len(corners); i++ {
		a, b, c := corners[0], corners[i], corners[i+1]
		p.current.indices = append(p.current.indices, a, b, c)
		p.current.accumulateNormal(a, b, c)
	}
	return nil
}

// resolveFaceVertex turns "v", "v/vt", "v//vn" or "v/vt/vn" into 0-based indices.
func (p *objParser) resolveFaceVertex(token string) (objVertexKey, error) {
	parts := strings.Split(token, "/")
	if len(parts) > 3 {
		return objVertexKey{}, fmt.Errorf("%w: vertex %q", errMalformed, token)
	}

	key := objVertexKey{-1, -1, -1}
	counts := [3]int{len(p.positions), len(p.texCoords), len(p.normals)}
	for i, part := range parts {
		if part == "" {
			if i == 0 {
				return objVertexKey{}, fmt.Errorf("%w: vertex %q has no position", errMalformed, token)
			}
			continue
		}
		idx, err := resolveIndex(part, counts[i])
		if err != nil {
			return objVertexKey{}, fmt.Errorf("vertex %q: %w", token, err)
		}
		key[i] = idx
	}
	return key, nil
}

// flush appends the current sub-mesh to the result when it has faces.
func (p *objParser) flush() {
	if len(p.current.indices) == 0 {
		return
	}
	p.current.finish()
	p.result.meshes = append(p.result.meshes, p.current)
}

// vertex returns the index of the deduplicated vertex for key, creating it on first use.
func (b *objMeshBuilder) vertex(key objVertexKey, p *objParser) uint32 {
	if idx, ok := b.lookup[key]; ok {
		return idx
	}

	var v model.Vertex
	v.Position = p.positions[key[0]]
	if key[1] >= 0 {
		tc := p.texCoords[key[1]]
		v.TexCoord = [2]float32{tc[0], 1 - tc[1]}
	}
	idx := uint32(len(b.vertices))
	if key[2] >= 0 {
		v.Normal = p.normals[key[2]]
	} else {
		b.computed[idx] = true
	}

	b.vertices = append(b.vertices, v)
	b.lookup[key] = idx
	return idx
}

// accumulateNormal adds the counter-clockwise face normal to every corner lacking a normal.
func (b *objMeshBuilder) accumulateNormal(i0, i1, i2 uint32) {
	if !b.computed[i0] && !b.computed[i1] && !b.computed[i2] {
		return
	}
	p0 := mgl32.Vec3(b.vertices[i0].Position)
	p1 := mgl32.Vec3(b.vertices[i1].Position)
	p2 := mgl32.Vec3(b.vertices[i2].Position)
	n := p1.Sub(p0).Cross(p2.Sub(p0))

	for _, i := range []uint32{i0, i1, i2} {
		if b.computed[i] {
			b.vertices[i].Normal = mgl32.Vec3(b.vertices[i].Normal).Add(n)
		}
	}
}

// finish normalizes computed normals.
func (b *objMeshBuilder) finish() {
	for i := range b.computed {
		n := mgl32.Vec3(b.vertices[i].Normal)
		if n.Len() > 0 {
			b.vertices[i].Normal = n.Normalize()
		}
	}
}

// toImported converts the builder to a loader-agnostic mesh with its bounding box.
func (b *objMeshBuilder) toImported(materialIndex int) model.ImportedMesh {
	mesh := model.ImportedMesh{
		Name:          b.name,
		Vertices:      b.vertices,
		Indices:       b.indices,
		MaterialIndex: materialIndex,
	}
	for i, v := range b.vertices {
		for axis := 0; axis < 3; axis++ {
			if i == 0 || v.Position[axis] < mesh.BoundingMin[axis] {
				mesh.BoundingMin[axis] = v.Position[axis]
			}
			if i == 0 || v.Position[axis] > mesh.BoundingMax[axis] {
				mesh.BoundingMax[axis] = v.Position[axis]
			}
		}
	}
	return mesh
}

// resolveIndex converts a 1-based or negative (relative) OBJ index into a 0-based one.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", errMalformed, s)
	}

	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("%w: index %d out of range (have %d)", errMalformed, n, count)
	}
	return idx, nil
}

// parseFloats parses at least minCount float arguments.
func parseFloats(args []string, minCount int) ([]float32, error) {
	if len(args) < minCount {
		return nil, fmt.Errorf("%w: need %d values, got %d", errMalformed, minCount, len(args))
	}
	out := make([]float32, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: value %q", errMalformed, a)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func stripLineComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}
