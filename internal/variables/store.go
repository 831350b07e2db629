package variables

import (
	"slices"

	"github.com/specialistvlad/woodgo/internal/reference"
	"github.com/specialistvlad/woodgo/internal/variant"
)

// Store is the read-only value table of one scope.
type Store struct {
	scope  string
	values map[variant.Locale]map[reference.Reference]string
}

// Scope names the directory the store was loaded from.
func (s *Store) Scope() string {
	if s == nil {
		return ""
	}
	return s.scope
}

// Lookup returns the value of ref for locale. It falls back to the value
// loaded from files without locale, then to the fallback locale. An empty
// value counts as absent. A nil store holds nothing.
func (s *Store) Lookup(locale, fallback variant.Locale, ref reference.Reference) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, l := range []variant.Locale{locale, {}, fallback} {
		if v := s.values[l][ref]; v != "" {
			return v, true
		}
	}
	return "", false
}

// Names lists the names defined for kind in any locale, sorted.
func (s *Store) Names(kind reference.Kind) []string {
	if s == nil {
		return nil
	}
	var names []string
	for _, values := range s.values {
		for ref := range values {
			if ref.Kind == kind && !slices.Contains(names, ref.Name) {
				names = append(names, ref.Name)
			}
		}
	}
	slices.Sort(names)
	return names
}

// Len counts the definitions across all locales.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, values := range s.values {
		n += len(values)
	}
	return n
}
