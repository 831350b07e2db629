// Package reference parses the `@kind/[path/]name` resource reference tokens
// embedded in layout, style and variable sources.
package reference

import (
	"strings"

	"github.com/specialistvlad/woodgo/internal/fault"
)

// Reference is an immutable, comparable resource reference. Path is only
// ever set for media kinds.
type Reference struct {
	Kind Kind
	Path string
	Name string
}

// Parse parses `@kind/[path/]name`.
func Parse(raw string) (Reference, error) {
	body, ok := strings.CutPrefix(raw, "@")
	if !ok {
		return Reference{}, fault.New(fault.Grammar, raw, "reference without @ prefix")
	}

	kindName, rest, ok := strings.Cut(body, "/")
	if !ok {
		return Reference{}, fault.New(fault.Grammar, raw, "reference without kind separator")
	}
	kind, ok := ParseKind(kindName)
	if !ok {
		return Reference{}, fault.New(fault.Grammar, raw, "unknown reference kind %q", kindName)
	}

	var path, name string
	if i := strings.LastIndex(rest, "/"); i >= 0 {
		path, name = rest[:i], rest[i+1:]
	} else {
		name = rest
	}

	if !validName(name) {
		return Reference{}, fault.New(fault.Grammar, raw, "invalid reference name")
	}
	if path != "" {
		if kind.IsVariable() {
			return Reference{}, fault.New(fault.Grammar, raw, "variable reference with path")
		}
		for _, s := range strings.Split(path, "/") {
			if !validName(s) {
				return Reference{}, fault.New(fault.Grammar, raw, "invalid reference path segment %q", s)
			}
		}
	}
	return Reference{Kind: kind, Path: path, Name: name}, nil
}

// MustParse is Parse for values known to be valid.
func MustParse(raw string) Reference {
	r, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return r
}

// New builds a variable reference.
func New(kind Kind, name string) Reference {
	return Reference{Kind: kind, Name: name}
}

// IsVariable reports whether r resolves through the value stores.
func (r Reference) IsVariable() bool {
	return r.Kind.IsVariable()
}

// String returns the canonical `@kind/[path/]name` form.
func (r Reference) String() string {
	var b strings.Builder
	b.WriteByte('@')
	b.WriteString(r.Kind.String())
	b.WriteByte('/')
	if r.Path != "" {
		b.WriteString(r.Path)
		b.WriteByte('/')
	}
	b.WriteString(r.Name)
	return b.String()
}

// ValidName reports whether name may be used as a reference name.
func ValidName(name string) bool {
	return validName(name)
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isNameChar(name[i]) {
			return false
		}
	}
	return true
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-'
}
