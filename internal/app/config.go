package app

import (
	"errors"
	"fmt"
	"path"

	"github.com/specialistvlad/woodgo/internal/variant"
)

// DefaultConfigFile is the project descriptor looked up in the project root.
const DefaultConfigFile = "project.hcl"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectDir string
	ConfigFile string // relative to ProjectDir
	Locales    []string

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectDir == "" {
		return nil, errors.New("ProjectDir is a required configuration field and cannot be empty")
	}
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = DefaultConfigFile
	}
	if path.IsAbs(cfg.ConfigFile) {
		return nil, fmt.Errorf("config file %q must be relative to the project directory", cfg.ConfigFile)
	}
	for _, l := range cfg.Locales {
		if _, ok := variant.ParseLocale(l); !ok {
			return nil, fmt.Errorf("invalid locale %q", l)
		}
	}
	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("worker count cannot be negative, got %d", cfg.WorkerCount)
	}
	return &cfg, nil
}
