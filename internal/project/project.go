package project

import (
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/specialistvlad/woodgo/internal/config"
	"github.com/specialistvlad/woodgo/internal/mediaquery"
	"github.com/specialistvlad/woodgo/internal/operator"
	"github.com/specialistvlad/woodgo/internal/variant"
	"github.com/specialistvlad/woodgo/internal/woodpath"
	"github.com/spf13/afero"
)

// Project is a validated descriptor over a source tree. Paths handed to it
// are relative to the project root.
type Project struct {
	fs            afero.Fs
	name          string
	locales       []variant.Locale
	defaultLocale variant.Locale
	addressing    operator.Addressing
	media         *mediaquery.Table
	assetDir      woodpath.DirPath
	themeDir      woodpath.DirPath
	excludes      []string
}

// New applies the descriptor defaults, validates it and binds it to fsys.
func New(fsys afero.Fs, model *config.Model) (*Project, error) {
	model.ApplyDefaults()
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project descriptor: %w", err)
	}

	p := &Project{fs: fsys, name: model.Name, excludes: model.Excludes}

	for _, raw := range model.Locales {
		l, _ := variant.ParseLocale(raw)
		p.locales = append(p.locales, l)
	}
	p.defaultLocale, _ = variant.ParseLocale(model.DefaultLocale)

	var err error
	if p.addressing, err = operator.Lookup(model.Operators); err != nil {
		return nil, err
	}

	entries := make([]mediaquery.Entry, 0, len(model.MediaQueries))
	for _, mq := range model.MediaQueries {
		entries = append(entries, mediaquery.Entry{Alias: mq.Alias, Expression: mq.Expression})
	}
	if p.media, err = mediaquery.NewTable(entries); err != nil {
		return nil, err
	}

	if p.assetDir, err = woodpath.ParseDir(model.AssetDir); err != nil {
		return nil, err
	}
	if p.themeDir, err = woodpath.ParseDir(model.ThemeDir); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) Name() string                    { return p.name }
func (p *Project) Locales() []variant.Locale       { return p.locales }
func (p *Project) DefaultLocale() variant.Locale   { return p.defaultLocale }
func (p *Project) Addressing() operator.Addressing { return p.addressing }
func (p *Project) MediaTable() *mediaquery.Table   { return p.media }
func (p *Project) AssetDir() woodpath.DirPath      { return p.assetDir }
func (p *Project) ThemeDir() woodpath.DirPath      { return p.themeDir }

// Exists reports whether path names a regular file.
func (p *Project) Exists(path string) bool {
	info, err := p.fs.Stat(clean(path))
	return err == nil && !info.IsDir()
}

// IsDir reports whether path names a directory.
func (p *Project) IsDir(path string) bool {
	ok, err := afero.IsDir(p.fs, clean(path))
	return err == nil && ok
}

// Open opens a source file for reading.
func (p *Project) Open(file woodpath.FilePath) (io.ReadCloser, error) {
	return p.fs.Open(file.String())
}

// Read returns the content of a source file.
func (p *Project) Read(file woodpath.FilePath) (string, error) {
	b, err := afero.ReadFile(p.fs, file.String())
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", file, err)
	}
	return string(b), nil
}

// Excluded reports whether path matches one of the exclude patterns.
func (p *Project) Excluded(path string) bool {
	for _, pattern := range p.excludes {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

func clean(path string) string {
	return strings.TrimSuffix(path, "/")
}
