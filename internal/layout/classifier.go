package layout

import (
	"context"
	"slices"
	"strings"

	"github.com/specialistvlad/woodgo/internal/ctxlog"
	"github.com/specialistvlad/woodgo/internal/fault"
	"github.com/specialistvlad/woodgo/internal/inmemorystore"
	"github.com/specialistvlad/woodgo/internal/woodpath"
)

// MaxTemplateDepth bounds the number of layouts visited along a template
// chain, the starting layout included. Reaching the layout at this position
// aborts the walk, even when it is the root of the chain.
const MaxTemplateDepth = 8

// Classification is the memoized verdict for one layout.
type Classification struct {
	Page bool
	// Editables and Templates are the names accumulated along the template
	// chain; both are empty when no chain walk was needed.
	Editables []string
	Templates []string
	// Consistent is false when the chain declares editables it never
	// fills, or fills editables it never declares.
	Consistent bool
}

// Classifier decides whether layouts are pages.
type Classifier struct {
	registry *Registry
	memo     inmemorystore.Memo[woodpath.FilePath, Classification]
}

// NewClassifier creates a classifier over a frozen registry.
func NewClassifier(registry *Registry) *Classifier {
	return &Classifier{registry: registry}
}

// IsPage reports whether d is a renderable page.
func (c *Classifier) IsPage(ctx context.Context, d *Descriptor) (bool, error) {
	cl, err := c.Classify(ctx, d)
	return cl.Page, err
}

// Classify computes, once per layout, whether d is a page. A layout that
// declares editables is a template; a layout with a body is a page; a
// layout filling a template is a page when the root of its template chain
// has a body.
func (c *Classifier) Classify(ctx context.Context, d *Descriptor) (Classification, error) {
	return c.memo.Get(d.Path, func() (Classification, error) {
		return c.classify(ctx, d)
	})
}

func (c *Classifier) classify(ctx context.Context, d *Descriptor) (Classification, error) {
	switch {
	case len(d.Editables) > 0:
		return Classification{Consistent: true}, nil
	case d.HasBody:
		return Classification{Page: true, Consistent: true}, nil
	case len(d.Templates) == 0:
		return Classification{Consistent: true}, nil
	}

	ch, err := c.walk(d, 1)
	if err != nil {
		return Classification{}, err
	}

	cl := Classification{
		Page:       ch.hasBody,
		Editables:  ch.editables.sorted(),
		Templates:  ch.templates.sorted(),
		Consistent: ch.editables.equal(ch.templates),
	}
	if !cl.Consistent {
		ctxlog.FromContext(ctx).Warn("Inconsistent templates hierarchy.",
			"layout", d.Path.String(),
			"editables", cl.Editables,
			"templates", cl.Templates,
		)
	}

	var unresolved []string
	for _, name := range d.Templates {
		if !ch.editables.has(name) {
			unresolved = append(unresolved, name)
		}
	}
	if len(unresolved) > 0 {
		return Classification{}, &fault.Error{
			Kind: fault.Resolution, Subject: strings.Join(unresolved, ", "), File: d.Path.String(),
			Message: "unresolved templates",
		}
	}
	return cl, nil
}

// chain is what a template chain contributes from one layout upward.
type chain struct {
	editables nameSet
	templates nameSet
	hasBody   bool
}

// walk returns the accumulated names of d and all its ancestors. visited
// counts the layouts on the chain so far, d included.
func (c *Classifier) walk(d *Descriptor, visited int) (chain, error) {
	if visited >= MaxTemplateDepth {
		return chain{}, &fault.Error{
			Kind: fault.Consistency, Subject: d.Compo().String(), File: d.Path.String(),
			Message: "circular template references suspicion",
		}
	}
	if d.Template == nil {
		return chain{
			editables: newNameSet(d.Editables),
			templates: newNameSet(nil),
			hasBody:   d.HasBody,
		}, nil
	}

	parent, err := c.registry.Resolve(d.Template.Compo(), d.Path.String())
	if err != nil {
		return chain{}, err
	}
	up, err := c.walk(parent, visited+1)
	if err != nil {
		return chain{}, err
	}

	editables := up.editables.clone()
	for _, name := range d.Editables {
		if editables.has(name) {
			return chain{}, &fault.Error{
				Kind: fault.Consistency, Subject: name, File: d.Path.String(),
				Message: "editable overwritten",
			}
		}
		editables[name] = struct{}{}
	}
	templates := up.templates.clone()
	for _, name := range d.Templates {
		templates[name] = struct{}{}
	}
	return chain{editables: editables, templates: templates, hasBody: up.hasBody}, nil
}

type nameSet map[string]struct{}

func newNameSet(names []string) nameSet {
	s := make(nameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s nameSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s nameSet) clone() nameSet {
	c := make(nameSet, len(s))
	for n := range s {
		c[n] = struct{}{}
	}
	return c
}

func (s nameSet) equal(o nameSet) bool {
	if len(s) != len(o) {
		return false
	}
	for n := range s {
		if !o.has(n) {
			return false
		}
	}
	return true
}

func (s nameSet) sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
