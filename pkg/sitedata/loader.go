package sitedata

import (
	"context"
	"io/fs"
	"time"
)

// Loader reads a data document and returns it normalised. Implementations
// live under internal/sitedata but satisfy this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Data, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem backs SourceFromFS lookups. File sources always read from the
	// operating system.
	FileSystem fs.FS

	// Clock supplies the time used for current_year. Defaults to time.Now.
	Clock func() time.Time
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS for SourceFromFS documents.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithClock overrides the time source used to stamp current_year.
func WithClock(clock func() time.Time) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Clock = clock
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return cfg
}

// Construction helpers live in the top-level portfolio package to prevent import cycles.
