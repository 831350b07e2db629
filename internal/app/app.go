package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/woodgo/internal/config"
	"github.com/specialistvlad/woodgo/internal/ctxlog"
	"github.com/spf13/afero"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	fs     afero.Fs
	model  *config.Model
}

// NewApp is the constructor for the main application. fsys is the file
// system holding the project; the app only sees the tree below
// cfg.ProjectDir. The project descriptor is loaded here.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, fsys afero.Fs) (*App, error) {
	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	if err != nil {
		return nil, err
	}
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	projectFs := afero.NewBasePathFs(fsys, cfg.ProjectDir)
	if ok, err := afero.DirExists(projectFs, "/"); err != nil || !ok {
		return nil, fmt.Errorf("project directory %s does not exist", cfg.ProjectDir)
	}

	model, err := loader.Load(ctx, projectFs, cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load project descriptor: %w", err)
	}
	logger.Debug("Project descriptor loaded.", "project", model.Name, "locales", model.Locales)

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		fs:     projectFs,
		model:  model,
	}, nil
}

// Model returns the loaded project descriptor. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
