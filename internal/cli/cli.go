package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/woodgo/internal/app"
	"github.com/spf13/pflag"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := pflag.NewFlagSet("wood", pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.SortFlags = false

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Wood - A build-time resolver for component based web projects.

Usage:
  wood [options] [PROJECT_DIR]

Arguments:
  PROJECT_DIR
    Root of the project, holding the res/, lib/, script/ and gen/ trees.

Options:
`)
		flagSet.PrintDefaults()
	}

	projectFlag := flagSet.StringP("project", "p", "", "Path to the project root directory.")
	configFlag := flagSet.StringP("config", "c", app.DefaultConfigFile, "Project descriptor, relative to the project root.")
	localeFlag := flagSet.StringSliceP("locale", "l", nil, "Build only these locales. Repeat or separate with commas.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.IntP("workers", "w", 0, "Number of concurrent build units. 0 uses every available CPU.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := *projectFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Project path determined.", "path", path)

	if path == "" {
		slog.Debug("No project path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 || *projectFlag != "" && flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: "too many arguments: expected a single project directory"}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ProjectDir:  absPath,
		ConfigFile:  *configFlag,
		Locales:     *localeFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		WorkerCount: *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
