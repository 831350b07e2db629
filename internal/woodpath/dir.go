package woodpath

import (
	"regexp"
	"strings"

	"github.com/specialistvlad/woodgo/internal/fault"
)

// segmentPattern is the character set of every directory segment and name;
// underscore is reserved for variant suffixes.
var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// IsSegment reports whether name is a valid path segment.
func IsSegment(name string) bool {
	return segmentPattern.MatchString(name)
}

// DirPath is a directory below a source root, always ending with `/`.
type DirPath struct {
	value string
}

// ParseDir parses `root *("/" segment) ["/"]`.
func ParseDir(raw string) (DirPath, error) {
	segments := strings.Split(strings.TrimSuffix(raw, "/"), "/")
	if _, ok := ParseRoot(segments[0]); !ok {
		return DirPath{}, fault.New(fault.Grammar, raw, "directory path outside source roots")
	}
	for _, s := range segments[1:] {
		if !IsSegment(s) {
			return DirPath{}, fault.New(fault.Grammar, raw, "invalid directory path segment %q", s)
		}
	}
	return DirPath{value: strings.Join(segments, "/") + "/"}, nil
}

// MustParseDir is ParseDir for values known to be valid.
func MustParseDir(raw string) DirPath {
	d, err := ParseDir(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func (d DirPath) String() string {
	return d.value
}

// IsZero reports whether d is the zero value.
func (d DirPath) IsZero() bool {
	return d.value == ""
}

// Root returns the source root of d.
func (d DirPath) Root() Root {
	r, _ := ParseRoot(d.segments()[0])
	return r
}

// Segments returns the segments below the source root.
func (d DirPath) Segments() []string {
	return d.segments()[1:]
}

// Name is the last segment, or the root name for a bare root.
func (d DirPath) Name() string {
	s := d.segments()
	return s[len(s)-1]
}

// Parent returns the enclosing directory; a bare root has none.
func (d DirPath) Parent() (DirPath, bool) {
	s := d.segments()
	if len(s) == 1 {
		return DirPath{}, false
	}
	return DirPath{value: strings.Join(s[:len(s)-1], "/") + "/"}, true
}

// Join appends slash separated segments to d.
func (d DirPath) Join(sub string) (DirPath, error) {
	sub = strings.Trim(sub, "/")
	if sub == "" {
		return d, nil
	}
	return ParseDir(d.value + sub)
}

// Contains reports whether other is d or lies below it.
func (d DirPath) Contains(other DirPath) bool {
	return !d.IsZero() && strings.HasPrefix(other.value, d.value)
}

func (d DirPath) segments() []string {
	return strings.Split(strings.TrimSuffix(d.value, "/"), "/")
}
