package variant

import "strings"

// Locale is a language with an optional region, e.g. `de` or `en-US`.
type Locale struct {
	Language string
	Region   string
}

// IsZero reports whether no locale is set.
func (l Locale) IsZero() bool {
	return l.Language == ""
}

func (l Locale) String() string {
	if l.Region == "" {
		return l.Language
	}
	return l.Language + "-" + l.Region
}

// ParseLocale parses a single locale token.
func ParseLocale(raw string) (Locale, bool) {
	m := localePattern.FindStringSubmatch(raw)
	if m == nil {
		return Locale{}, false
	}
	return Locale{Language: m[1], Region: m[2]}, true
}

// Orientation is the viewport orientation qualifier.
type Orientation int

const (
	NoOrientation Orientation = iota
	Landscape
	Portrait
)

func (o Orientation) String() string {
	switch o {
	case Landscape:
		return "landscape"
	case Portrait:
		return "portrait"
	default:
		return ""
	}
}

// Screens lists the named screen breakpoint aliases.
var Screens = []string{"xsd", "smd", "mdd", "nod", "lgd"}

// Set is an immutable, comparable bundle of decoded qualifiers. The zero
// value is the empty set.
type Set struct {
	Locale      Locale
	Width       int
	Height      int
	Screen      string
	Orientation Orientation
}

// IsEmpty reports whether no qualifier is present.
func (s Set) IsEmpty() bool {
	return s == Set{}
}

// HasMedia reports whether any viewport related qualifier is present.
func (s Set) HasMedia() bool {
	return s.Width != 0 || s.Height != 0 || s.Screen != "" || s.Orientation != NoOrientation
}

// Tokens returns the qualifiers in canonical order: locale, screen,
// orientation, width, height.
func (s Set) Tokens() []string {
	var tokens []string
	if !s.Locale.IsZero() {
		tokens = append(tokens, s.Locale.String())
	}
	if s.Screen != "" {
		tokens = append(tokens, s.Screen)
	}
	if s.Orientation != NoOrientation {
		tokens = append(tokens, s.Orientation.String())
	}
	if s.Width != 0 {
		tokens = append(tokens, WidthToken(s.Width))
	}
	if s.Height != 0 {
		tokens = append(tokens, HeightToken(s.Height))
	}
	return tokens
}

// String returns the canonical suffix, without the leading underscore.
func (s Set) String() string {
	return strings.Join(s.Tokens(), "_")
}
