package layout

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/woodgo/internal/fault"
	"github.com/specialistvlad/woodgo/internal/woodpath"
)

// RegistryBuilder collects descriptors during the scan phase.
type RegistryBuilder struct {
	checker woodpath.Checker
	layouts map[woodpath.FilePath]*Descriptor
}

// NewRegistryBuilder creates an empty builder. checker disambiguates normal
// and inline components when template references are resolved.
func NewRegistryBuilder(checker woodpath.Checker) *RegistryBuilder {
	return &RegistryBuilder{
		checker: checker,
		layouts: make(map[woodpath.FilePath]*Descriptor),
	}
}

// Add registers a scanned layout.
func (b *RegistryBuilder) Add(d *Descriptor) error {
	if _, exists := b.layouts[d.Path]; exists {
		return fmt.Errorf("layout %s registered twice", d.Path)
	}
	b.layouts[d.Path] = d
	return nil
}

// Build freezes the collected descriptors. Every component reference is
// resolved once here so a missing widget fails the scan phase.
func (b *RegistryBuilder) Build() (*Registry, error) {
	r := &Registry{
		checker: b.checker,
		layouts: make(map[woodpath.FilePath]*Descriptor, len(b.layouts)),
	}
	for path, d := range b.layouts {
		r.layouts[path] = d
		r.ordered = append(r.ordered, d)
	}
	sort.Slice(r.ordered, func(i, j int) bool {
		return r.ordered[i].Path.String() < r.ordered[j].Path.String()
	})

	for _, d := range r.ordered {
		for _, compo := range d.Components {
			if _, err := r.Resolve(compo, d.Path.String()); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// Registry is the frozen, read-only set of layout descriptors.
type Registry struct {
	checker woodpath.Checker
	layouts map[woodpath.FilePath]*Descriptor
	ordered []*Descriptor
}

// Lookup returns the descriptor of a layout file.
func (r *Registry) Lookup(path woodpath.FilePath) (*Descriptor, bool) {
	d, ok := r.layouts[path]
	return d, ok
}

// Resolve returns the descriptor of compo's layout. The same pointer is
// returned for a path on every call.
func (r *Registry) Resolve(compo woodpath.CompoPath, declaring string) (*Descriptor, error) {
	path, err := woodpath.ResolveLayout(compo, r.checker, declaring)
	if err != nil {
		return nil, err
	}
	d, ok := r.layouts[path]
	if !ok {
		return nil, &fault.Error{
			Kind: fault.Resolution, Subject: path.String(), File: declaring,
			Message: "layout file not registered",
		}
	}
	return d, nil
}

// Layouts returns every descriptor ordered by path.
func (r *Registry) Layouts() []*Descriptor {
	return append([]*Descriptor(nil), r.ordered...)
}

// Len is the number of registered layouts.
func (r *Registry) Len() int {
	return len(r.ordered)
}
