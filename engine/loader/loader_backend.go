package loader

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// loaderBackend defines the interface for importing a model file format.
// Concrete implementations (e.g., objLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load performs a full model import from the given file path, including referenced
	// material libraries. Textures are referenced by path, not decoded.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	Load(path string) (*model.ImportedModel, error)
}
