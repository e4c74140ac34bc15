package loader

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// parseMTL reads a Wavefront material library. Supported: newmtl, Kd, d, Tr and map_Kd; texture
// paths are resolved against baseDir. A textured material keeps a white diffuse color so the map
// is shown unchanged; Kd colors only untextured materials.
//
// Parameters:
//   - r: the MTL source
//   - baseDir: the directory of the MTL file
//
// Returns:
//   - []common.ImportedMaterial: materials in declaration order
//   - error: an error naming the line of the first malformed statement
func parseMTL(r io.Reader, baseDir string) ([]common.ImportedMaterial, error) {
	var materials []common.ImportedMaterial
	var current *common.ImportedMaterial
	var kd [3]float32

	finish := func() {
		if current == nil {
			return
		}
		if current.DiffuseTexturePath == "" {
			current.DiffuseColor[0], current.DiffuseColor[1], current.DiffuseColor[2] = kd[0], kd[1], kd[2]
		}
		materials = append(materials, *current)
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(stripLineComment(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		keyword, args := fields[0], fields[1:]

		if keyword == "newmtl" {
			finish()
			current = &common.ImportedMaterial{
				Name:         strings.Join(args, " "),
				DiffuseColor: [4]float32{1, 1, 1, 1},
			}
			kd = [3]float32{1, 1, 1}
			continue
		}
		if current == nil {
			continue
		}

		switch keyword {
		case "Kd":
			v, err := parseFloats(args, 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: Kd: %w", lineNo, err)
			}
			kd = [3]float32{v[0], v[1], v[2]}
		case "d":
			v, err := parseFloats(args, 1)
			if err != nil {
				return nil, fmt.Errorf("line %d: d: %w", lineNo, err)
			}
			current.DiffuseColor[3] = v[0]
		case "Tr":
			v, err := parseFloats(args, 1)
			if err != nil {
				return nil, fmt.Errorf("line %d: Tr: %w", lineNo, err)
			}
			current.DiffuseColor[3] = 1 - v[0]
		case "map_Kd":
			if len(args) == 0 {
				return nil, fmt.Errorf("line %d: map_Kd: %w: missing path", lineNo, errMalformed)
			}
			// Options such as -bm or -s precede the file name.
			name := strings.ReplaceAll(args[len(args)-1], `\`, "/")
			path := name
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, filepath.FromSlash(name))
			}
			current.DiffuseTexturePath = path
			current.DiffuseTexture = &common.ImportedTexture{Name: name, Path: path}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	finish()
	return materials, nil
}
