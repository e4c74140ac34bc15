package loader

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/rs/zerolog"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithGPU is an option builder that sets the renderer models are uploaded to.
//
// Parameters:
//   - gpu: the renderer instance
//
// Returns:
//   - LoaderBuilderOption: a function that applies the GPU option to a loader
func WithGPU(gpu model.GPU) LoaderBuilderOption {
	return func(l *loader) {
		l.gpu = gpu
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - m: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, m model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = m
	}
}

// WithProgress enables a byte progress bar on stderr while model files are read.
func WithProgress(show bool) LoaderBuilderOption {
	return func(l *loader) {
		l.showProgress = show
	}
}

// WithStrictTextures makes an unreadable texture fail the load instead of falling back to white.
func WithStrictTextures(strict bool) LoaderBuilderOption {
	return func(l *loader) {
		l.strictTextures = strict
	}
}

// WithLogger sets the logger used for load reports and texture warnings.
func WithLogger(logger zerolog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.logger = logger
	}
}

// WithDecodeWorkers sets how many goroutines decode textures in parallel. Values below 1 are ignored.
func WithDecodeWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.decodeWorkers = n
		}
	}
}
