package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/specialistvlad/woodgo/internal/operator"
	"github.com/specialistvlad/woodgo/internal/variant"
	"github.com/specialistvlad/woodgo/internal/woodpath"
	"golang.org/x/text/language"
)

// Defaults applied to fields the descriptor leaves empty.
const (
	DefaultLocale    = "en"
	DefaultOperators = operator.XMLNS
	DefaultAssetDir  = "res/asset/"
	DefaultThemeDir  = "res/theme/"
)

// Model is the unified, format-agnostic representation of a project
// descriptor.
type Model struct {
	Name          string
	DefaultLocale string
	Locales       []string
	// Operators selects the attribute naming of layout operators.
	Operators string
	AssetDir  string
	ThemeDir  string
	// Excludes are doublestar patterns of paths skipped by page discovery.
	Excludes []string
	// MediaQueries in declaration order; empty selects the default breakpoints.
	MediaQueries []MediaQuery
}

// MediaQuery is one declared media query definition.
type MediaQuery struct {
	Alias      string
	Expression string
}

// Default returns the descriptor of a project that declares nothing.
func Default(name string) *Model {
	m := &Model{Name: name}
	m.ApplyDefaults()
	return m
}

// ApplyDefaults fills empty fields.
func (m *Model) ApplyDefaults() {
	if m.DefaultLocale == "" {
		m.DefaultLocale = DefaultLocale
		if len(m.Locales) > 0 {
			m.DefaultLocale = m.Locales[0]
		}
	}
	if len(m.Locales) == 0 {
		m.Locales = []string{m.DefaultLocale}
	}
	if m.Operators == "" {
		m.Operators = DefaultOperators
	}
	if m.AssetDir == "" {
		m.AssetDir = DefaultAssetDir
	}
	if m.ThemeDir == "" {
		m.ThemeDir = DefaultThemeDir
	}
}

// Validate reports every problem found in the model at once.
func (m *Model) Validate() error {
	var errs []error

	for i, l := range m.Locales {
		if err := validateLocale(l); err != nil {
			errs = append(errs, err)
		}
		if slices.Contains(m.Locales[:i], l) {
			errs = append(errs, fmt.Errorf("locale %q declared twice", l))
		}
	}
	if !slices.Contains(m.Locales, m.DefaultLocale) {
		errs = append(errs, fmt.Errorf("default locale %q is not among locales %v", m.DefaultLocale, m.Locales))
	}

	if _, err := operator.Lookup(m.Operators); err != nil {
		errs = append(errs, err)
	}

	for _, dir := range []struct{ name, value string }{{"asset_dir", m.AssetDir}, {"theme_dir", m.ThemeDir}} {
		if _, err := woodpath.ParseDir(dir.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", dir.name, err))
		}
	}

	for _, pattern := range m.Excludes {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("invalid exclude pattern %q", pattern))
		}
	}

	for i, mq := range m.MediaQueries {
		if !variant.IsToken(mq.Alias) {
			errs = append(errs, fmt.Errorf("media %q: alias is not a variant token", mq.Alias))
		}
		for _, prev := range m.MediaQueries[:i] {
			if prev.Alias == mq.Alias {
				errs = append(errs, fmt.Errorf("media %q declared twice", mq.Alias))
			}
		}
	}

	return errors.Join(errs...)
}

// validateLocale checks the file suffix grammar and that the tag is a
// known language.
func validateLocale(raw string) error {
	l, ok := variant.ParseLocale(raw)
	if !ok {
		return fmt.Errorf("locale %q does not match language[-REGION]", raw)
	}
	if _, err := language.ParseBase(l.Language); err != nil {
		return fmt.Errorf("locale %q: %w", raw, err)
	}
	if l.Region != "" {
		if _, err := language.ParseRegion(l.Region); err != nil {
			return fmt.Errorf("locale %q: %w", raw, err)
		}
	}
	return nil
}
