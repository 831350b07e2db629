package config

import (
	"context"

	"github.com/spf13/afero"
)

// Loader is the interface for a format-specific project descriptor loader.
type Loader interface {
	// Load reads the descriptor at path within fsys and translates it into
	// the format-agnostic model. A missing file yields the default model.
	Load(ctx context.Context, fsys afero.Fs, path string) (*Model, error)
}
