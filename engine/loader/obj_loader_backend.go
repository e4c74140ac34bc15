package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// objLoaderBackend imports Wavefront OBJ files and their MTL libraries.
type objLoaderBackend struct {
	showProgress bool
	logger       zerolog.Logger
}

var _ loaderBackend = &objLoaderBackend{}

func newOBJLoaderBackend(showProgress bool, logger zerolog.Logger) *objLoaderBackend {
	return &objLoaderBackend{
		showProgress: showProgress,
		logger:       logger,
	}
}

func (b *objLoaderBackend) Load(path string) (*model.ImportedModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if b.showProgress {
		size := int64(-1)
		if info, statErr := f.Stat(); statErr == nil {
			size = info.Size()
		}
		bar := progressbar.DefaultBytes(size, "loading "+filepath.Base(path))
		defer bar.Close()
		r = io.TeeReader(f, bar)
	}

	parsed, err := parseOBJ(r)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(path)
	var materials []common.ImportedMaterial
	for _, lib := range parsed.mtllibs {
		libPath := filepath.Join(baseDir, filepath.FromSlash(strings.ReplaceAll(lib, `\`, "/")))
		mats, err := loadMTL(libPath)
		if err != nil {
			// A missing library leaves its materials untextured white.
			b.logger.Warn().Err(err).Str("mtllib", libPath).Msg("skipping material library")
			continue
		}
		materials = append(materials, mats...)
	}

	byName := make(map[string]int, len(materials))
	for i, m := range materials {
		if _, dup := byName[m.Name]; !dup {
			byName[m.Name] = i
		}
	}

	imported := &model.ImportedModel{
		Name:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Materials: materials,
	}
	for _, mb := range parsed.meshes {
		materialIndex := -1
		if idx, ok := byName[mb.materialName]; ok {
			materialIndex = idx
		} else if mb.materialName != "" {
			b.logger.Warn().Str("material", mb.materialName).Str("mesh", mb.name).Msg("unknown material")
		}
		imported.Meshes = append(imported.Meshes, mb.toImported(materialIndex))
	}

	if len(imported.Meshes) == 0 {
		return nil, fmt.Errorf("%s contains no faces", path)
	}
	return imported, nil
}

func loadMTL(path string) ([]common.ImportedMaterial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mats, err := parseMTL(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mats, nil
}
