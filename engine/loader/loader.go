package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/rs/zerolog"
)

// ErrUnsupportedFormat is returned for model files whose extension has no backend.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	gpu    model.GPU
	logger zerolog.Logger

	showProgress   bool
	strictTextures bool

	// decodePool runs texture decodes on a bounded set of reusable goroutines.
	decodePool    worker.DynamicWorkerPool
	decodeWorkers int

	modelCache map[string]model.Model
	backends   map[string]loaderBackend
}

// Loader loads and caches 3D models. It picks a format backend by file extension, decodes the
// referenced textures concurrently and, when a GPU is configured, uploads the model for a shader.
type Loader interface {
	// Load imports a model file and caches the result by path.
	// If the model is already cached, the cached version is returned.
	//
	// Parameters:
	//   - path: the file path to the model file
	//   - s: the shader whose bind group layouts drive GPU upload, nil to skip upload
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: ErrUnsupportedFormat, or an error if reading, decoding or upload fails
	Load(path string, s shader.Shader) (model.Model, error)

	// Get retrieves a cached model by path. Returns nil if not found.
	Get(path string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by path
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the OBJ backend registered.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		logger:        zerolog.Nop(),
		modelCache:    make(map[string]model.Model),
		decodeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(l)
	}

	l.decodePool = worker.NewDynamicWorkerPool(l.decodeWorkers, 256, 1*time.Second)

	l.backends = map[string]loaderBackend{
		".obj": newOBJLoaderBackend(l.showProgress, l.logger),
	}
	return l
}

func (l *loader) Load(path string, s shader.Shader) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	mats, err := l.buildMaterials(imported.Materials)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	m := model.NewModel(model.FromImported(*imported, mats))
	if l.gpu != nil && s != nil {
		if err := m.Upload(l.gpu, s); err != nil {
			return nil, err
		}
	}

	vertices, indices := 0, 0
	for _, mesh := range imported.Meshes {
		vertices += len(mesh.Vertices)
		indices += len(mesh.Indices)
	}
	l.logger.Info().
		Str("path", path).
		Int("meshes", len(imported.Meshes)).
		Int("materials", len(mats)).
		Int("vertices", vertices).
		Int("triangles", indices/3).
		Msg("model loaded")

	l.mu.Lock()
	l.modelCache[path] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) Get(path string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[path]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

// resolveBackend selects a loader backend based on the file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if b, ok := l.backends[ext]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// buildMaterials creates render materials and decodes their diffuse maps concurrently.
// Each distinct texture file is decoded once. Unless strict, an unreadable texture is logged
// and the material falls back to untextured.
func (l *loader) buildMaterials(imported []common.ImportedMaterial) ([]material.Material, error) {
	mats := make([]material.Material, len(imported))
	byPath := make(map[string][]int)
	for i, im := range imported {
		mats[i] = material.NewMaterial(material.FromImported(im))
		if im.DiffuseTexture != nil {
			byPath[im.DiffuseTexturePath] = append(byPath[im.DiffuseTexturePath], i)
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		taskID   int
	)

	for path, users := range byPath {
		tex := imported[users[0]].DiffuseTexture
		wg.Add(1)
		id := taskID
		taskID++
		l.decodePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()

				data, err := tex.Decode()
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if !l.strictTextures {
						l.logger.Warn().Err(err).Str("texture", path).Msg("texture failed to load")
						return nil, nil
					}
					if firstErr == nil {
						firstErr = fmt.Errorf("texture %s: %w", path, err)
					}
					return nil, nil
				}

				for _, i := range users {
					mats[i].SetTexture(data)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return mats, nil
}
