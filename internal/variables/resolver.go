package variables

import (
	"slices"

	"github.com/specialistvlad/woodgo/internal/fault"
	"github.com/specialistvlad/woodgo/internal/reference"
	"github.com/specialistvlad/woodgo/internal/variant"
	"github.com/specialistvlad/woodgo/internal/woodpath"
)

// MediaFunc substitutes a media reference met during expansion.
type MediaFunc func(req Request, ref reference.Reference) (string, error)

// Request is the context of one top-level resolution: who asks, for which
// locale, with which local store. It is passed by value; the expansion
// trace it carries is private to the resolution chain.
type Request struct {
	Locale variant.Locale
	Source woodpath.FilePath
	// Scope is the store of the source's directory; nil when it has none.
	Scope *Store

	trace []string
}

// Trace returns the `source:reference` pairs currently being expanded.
func (r Request) Trace() []string {
	return slices.Clone(r.trace)
}

func (r Request) push(entry string) Request {
	r.trace = append(slices.Clip(r.trace), entry)
	return r
}

// Resolver resolves references against the cascading stores. It holds no
// per-resolution state and is safe for concurrent use.
type Resolver struct {
	assets        *Store
	theme         *Store
	defaultLocale variant.Locale
	media         MediaFunc
}

// NewResolver creates a resolver over the global asset and theme stores.
// media may be nil, in which case media references are left in place.
func NewResolver(assets, theme *Store, defaultLocale variant.Locale, media MediaFunc) *Resolver {
	return &Resolver{assets: assets, theme: theme, defaultLocale: defaultLocale, media: media}
}

// Resolve returns the fully expanded value of ref.
func (r *Resolver) Resolve(req Request, ref reference.Reference) (string, error) {
	if !ref.IsVariable() {
		if r.media == nil {
			return ref.String(), nil
		}
		return r.media(req, ref)
	}

	raw, ok := r.lookup(req, ref)
	if !ok {
		return "", &fault.Error{
			Kind: fault.Resolution, Subject: ref.String(), File: req.Source.String(),
			Message: "missing variables",
			Hint:    r.hint(req, ref),
		}
	}

	entry := req.Source.String() + ":" + ref.String()
	if slices.Contains(req.trace, entry) {
		return "", &fault.Error{
			Kind: fault.Consistency, Subject: ref.String(), File: req.Source.String(),
			Message: "circular variable references",
			Trace:   append(req.Trace(), entry),
		}
	}
	return r.Expand(req.push(entry), raw)
}

// Expand replaces every reference token in text.
func (r *Resolver) Expand(req Request, text string) (string, error) {
	out, err := reference.Expand(text, func(ref reference.Reference) (string, error) {
		return r.Resolve(req, ref)
	})
	if err != nil {
		return "", fault.Attribute(err, req.Source.String())
	}
	return out, nil
}

// scopes is the cascade for req: local, then asset, then theme. A source
// living in the asset or theme scope does not consult it twice, and a theme
// source never reaches back into the assets.
func (r *Resolver) scopes(req Request) []*Store {
	if req.Scope != nil && req.Scope == r.theme {
		return []*Store{r.theme}
	}
	stores := []*Store{req.Scope}
	for _, global := range []*Store{r.assets, r.theme} {
		if global != nil && global != req.Scope {
			stores = append(stores, global)
		}
	}
	return stores
}

func (r *Resolver) lookup(req Request, ref reference.Reference) (string, bool) {
	for _, s := range r.scopes(req) {
		if v, ok := s.Lookup(req.Locale, r.defaultLocale, ref); ok {
			return v, true
		}
	}
	return "", false
}

func (r *Resolver) hint(req Request, ref reference.Reference) string {
	var names []string
	for _, s := range r.scopes(req) {
		names = append(names, s.Names(ref.Kind)...)
	}
	return fault.Suggest(ref.Name, names)
}
