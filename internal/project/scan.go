package project

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/specialistvlad/woodgo/internal/ctxlog"
	"github.com/specialistvlad/woodgo/internal/fsutil"
	"github.com/specialistvlad/woodgo/internal/layout"
	"github.com/specialistvlad/woodgo/internal/variables"
	"github.com/specialistvlad/woodgo/internal/woodpath"
)

// Scan is the frozen result of walking the source tree. It is read-only
// and safe for concurrent use.
type Scan struct {
	project  *Project
	registry *layout.Registry
	assets   *variables.Store
	theme    *variables.Store
	stores   map[woodpath.DirPath]*variables.Store
	files    map[woodpath.DirPath][]woodpath.FilePath
}

// Scan walks every source root, parses every file path, scans every layout
// and loads every variables file. Any grammar or structural problem aborts
// the scan.
func (p *Project) Scan(ctx context.Context) (*Scan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Project scan started.", "project", p.name)

	s := &Scan{
		project: p,
		stores:  make(map[woodpath.DirPath]*variables.Store),
		files:   make(map[woodpath.DirPath][]woodpath.FilePath),
	}

	layouts := layout.NewRegistryBuilder(p)
	assets := variables.NewBuilder(p.assetDir.String())
	theme := variables.NewBuilder(p.themeDir.String())
	builders := make(map[woodpath.DirPath]*variables.Builder)

	for _, root := range woodpath.Roots() {
		paths, err := fsutil.FindFiles(p.fs, root.String(), isSourceFile)
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", root, err)
		}

		for _, raw := range paths {
			file, err := woodpath.ParseFile(raw)
			if err != nil {
				return nil, err
			}
			s.files[file.Dir()] = append(s.files[file.Dir()], file)

			switch file.Kind() {
			case woodpath.LayoutFile:
				if err := p.scanLayout(layouts, file); err != nil {
					return nil, err
				}
			case woodpath.VariablesFile:
				b := assets
				switch {
				case p.assetDir.Contains(file.Dir()):
				case p.themeDir.Contains(file.Dir()):
					b = theme
				default:
					if b = builders[file.Dir()]; b == nil {
						b = variables.NewBuilder(file.Dir().String())
						builders[file.Dir()] = b
					}
				}
				if err := p.loadVariables(b, file); err != nil {
					return nil, err
				}
			}
		}
	}

	var err error
	if s.registry, err = layouts.Build(); err != nil {
		return nil, err
	}
	s.assets = assets.Build()
	s.theme = theme.Build()
	for dir, b := range builders {
		s.stores[dir] = b.Build()
	}

	logger.Info("Project scanned.",
		"project", p.name,
		"directories", len(s.files),
		"layouts", s.registry.Len(),
		"stores", len(s.stores),
		"assets", s.assets.Len(),
		"theme", s.theme.Len(),
	)
	return s, nil
}

func (p *Project) scanLayout(b *layout.RegistryBuilder, file woodpath.FilePath) error {
	r, err := p.Open(file)
	if err != nil {
		return err
	}
	defer r.Close()

	d, err := layout.Scan(file, r, p.addressing)
	if err != nil {
		return err
	}
	return b.Add(d)
}

func (p *Project) loadVariables(b *variables.Builder, file woodpath.FilePath) error {
	r, err := p.Open(file)
	if err != nil {
		return err
	}
	defer r.Close()
	return b.Load(file, r)
}

// isSourceFile skips hidden files, such as editor swap files.
func isSourceFile(p string) bool {
	return !strings.HasPrefix(path.Base(p), ".")
}

// Project returns the project the scan was taken from.
func (s *Scan) Project() *Project { return s.project }

// Registry returns the frozen layout registry.
func (s *Scan) Registry() *layout.Registry { return s.registry }

// Assets returns the project-wide asset store.
func (s *Scan) Assets() *variables.Store { return s.assets }

// Theme returns the project-wide theme store.
func (s *Scan) Theme() *variables.Store { return s.theme }

// StoreFor returns the local store of dir. Directories inside the asset or
// theme directory share that store. The result is nil when dir defines no
// variables.
func (s *Scan) StoreFor(dir woodpath.DirPath) *variables.Store {
	switch {
	case s.project.assetDir.Contains(dir):
		return s.assets
	case s.project.themeDir.Contains(dir):
		return s.theme
	}
	return s.stores[dir]
}

// Files lists the files directly inside dir, sorted by path.
func (s *Scan) Files(dir woodpath.DirPath) []woodpath.FilePath {
	return s.files[dir]
}

// Dirs lists every directory holding at least one file, sorted.
func (s *Scan) Dirs() []woodpath.DirPath {
	dirs := make([]woodpath.DirPath, 0, len(s.files))
	for dir := range s.files {
		dirs = append(dirs, dir)
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].String() < dirs[j].String() })
	return dirs
}
