package hcl_adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/woodgo/internal/config"
	"github.com/specialistvlad/woodgo/internal/ctxlog"
	"github.com/specialistvlad/woodgo/internal/woodpath"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL project descriptor loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is a struct used to decode the top-level blocks of a descriptor.
type fileRoot struct {
	Project *projectBlock `hcl:"project,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

type projectBlock struct {
	Name          string        `hcl:"name,label"`
	DefaultLocale string        `hcl:"default_locale,optional"`
	Locales       []string      `hcl:"locales,optional"`
	Operators     string        `hcl:"operators,optional"`
	AssetDir      string        `hcl:"asset_dir,optional"`
	ThemeDir      string        `hcl:"theme_dir,optional"`
	Exclude       []string      `hcl:"exclude,optional"`
	Media         []*mediaBlock `hcl:"media,block"`
}

type mediaBlock struct {
	Alias      string `hcl:"alias,label"`
	Expression string `hcl:"expression"`
}

// Load parses the descriptor at path and translates it into the
// format-agnostic model, with defaults applied.
func (l *Loader) Load(ctx context.Context, fsys afero.Fs, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	src, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("No project descriptor found, using defaults.", "path", path)
		return config.Default(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	if root.Project == nil {
		return nil, fmt.Errorf("HCL file %s declares no project block", path)
	}

	model := translateProject(root.Project)
	model.ApplyDefaults()
	logger.Debug("HCL loading complete.", "project", model.Name, "locales", model.Locales, "media", len(model.MediaQueries))
	return model, nil
}

// evalContext exposes the source root names, so a descriptor can write
// `asset_dir = "${root.res}/asset"`.
func evalContext() *hcl.EvalContext {
	roots := make(map[string]cty.Value)
	for _, r := range woodpath.Roots() {
		roots[r.String()] = cty.StringVal(r.String())
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"root": cty.ObjectVal(roots)},
	}
}

func translateProject(p *projectBlock) *config.Model {
	model := &config.Model{
		Name:          p.Name,
		DefaultLocale: p.DefaultLocale,
		Locales:       p.Locales,
		Operators:     p.Operators,
		AssetDir:      p.AssetDir,
		ThemeDir:      p.ThemeDir,
		Excludes:      p.Exclude,
	}
	for _, m := range p.Media {
		model.MediaQueries = append(model.MediaQueries, config.MediaQuery{Alias: m.Alias, Expression: m.Expression})
	}
	return model
}
