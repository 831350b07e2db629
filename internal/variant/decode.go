package variant

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/specialistvlad/woodgo/internal/fault"
)

var (
	localePattern = regexp.MustCompile(`^([a-z]{2})(?:-([A-Z]{2}))?$`)
	widthPattern  = regexp.MustCompile(`^w(\d{3,4})$`)
	heightPattern = regexp.MustCompile(`^h(\d{3,4})$`)
	// fileNamePattern splits `base[_suffix].ext`; the base holds no underscore.
	fileNamePattern = regexp.MustCompile(`^[^_]+?(?:_([^.]+))?\.[A-Za-z0-9]+$`)
)

// WidthToken formats a viewport width qualifier.
func WidthToken(px int) string {
	return "w" + strconv.Itoa(px)
}

// HeightToken formats a viewport height qualifier.
func HeightToken(px int) string {
	return "h" + strconv.Itoa(px)
}

// Decode parses an underscore separated suffix. The empty suffix decodes to
// the empty Set.
func Decode(suffix string) (Set, error) {
	var s Set
	if suffix == "" {
		return s, nil
	}

	for _, token := range strings.Split(suffix, "_") {
		if err := s.apply(token); err != nil {
			return Set{}, err
		}
	}
	return s, nil
}

// FromFileName decodes the suffix of a bare file name like `logo_de.png`.
func FromFileName(name string) (Set, error) {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return Set{}, fault.New(fault.Grammar, name, "invalid file name")
	}
	s, err := Decode(m[1])
	if err != nil {
		return Set{}, fault.Attribute(err, name)
	}
	return s, nil
}

// IsToken reports whether raw is a single, valid qualifier token.
func IsToken(raw string) bool {
	var s Set
	return raw != "" && !strings.Contains(raw, "_") && s.apply(raw) == nil
}

func (s *Set) apply(token string) error {
	if l, ok := ParseLocale(token); ok {
		if !s.Locale.IsZero() {
			return duplicate(token, "locale")
		}
		s.Locale = l
		return nil
	}
	if px, ok := pixels(widthPattern, token); ok {
		if s.Width != 0 {
			return duplicate(token, "width")
		}
		s.Width = px
		return nil
	}
	if px, ok := pixels(heightPattern, token); ok {
		if s.Height != 0 {
			return duplicate(token, "height")
		}
		s.Height = px
		return nil
	}
	if slices.Contains(Screens, token) {
		if s.Screen != "" {
			return duplicate(token, "screen")
		}
		s.Screen = token
		return nil
	}
	if o := orientationOf(token); o != NoOrientation {
		if s.Orientation != NoOrientation {
			return duplicate(token, "orientation")
		}
		s.Orientation = o
		return nil
	}

	err := fault.New(fault.Grammar, token, "not recognized variant")
	err.Hint = fault.Suggest(token, append(slices.Clone(Screens), "landscape", "portrait"))
	return err
}

// pixels extracts the size of a width or height token. Zero stands for an
// absent category, so `w000` is not a size.
func pixels(pattern *regexp.Regexp, token string) (int, bool) {
	m := pattern.FindStringSubmatch(token)
	if m == nil {
		return 0, false
	}
	px, _ := strconv.Atoi(m[1])
	return px, px > 0
}

func orientationOf(token string) Orientation {
	switch token {
	case "landscape":
		return Landscape
	case "portrait":
		return Portrait
	default:
		return NoOrientation
	}
}

func duplicate(token, category string) error {
	return fault.New(fault.Grammar, token, "duplicate %s variant", category)
}
