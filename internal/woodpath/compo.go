package woodpath

import (
	"strings"

	"github.com/specialistvlad/woodgo/internal/fault"
)

// Checker answers the existence checks needed to resolve a component.
type Checker interface {
	Exists(path string) bool
	IsDir(path string) bool
}

// CompoPath addresses a component: a directory holding a layout named after
// it, or an inline layout file sitting next to where that directory would be.
type CompoPath struct {
	dir DirPath
}

// ParseCompo parses `[root "/"] *(segment "/") name ["/"]`. Without a
// source root the path is taken relative to res.
func ParseCompo(raw string) (CompoPath, error) {
	trimmed := strings.TrimSuffix(raw, "/")
	if trimmed == "" {
		return CompoPath{}, fault.New(fault.Grammar, raw, "empty component path")
	}

	segments := strings.Split(trimmed, "/")
	for _, s := range segments {
		if !IsSegment(s) {
			return CompoPath{}, fault.New(fault.Grammar, raw, "invalid component path segment %q", s)
		}
	}
	if _, ok := ParseRoot(segments[0]); !ok || len(segments) == 1 {
		segments = append([]string{Resources.String()}, segments...)
	}
	return CompoPath{dir: DirPath{value: strings.Join(segments, "/") + "/"}}, nil
}

// MustParseCompo is ParseCompo for values known to be valid.
func MustParseCompo(raw string) CompoPath {
	c, err := ParseCompo(raw)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CompoPath) String() string {
	return c.dir.value
}

// IsZero reports whether c is the zero value.
func (c CompoPath) IsZero() bool {
	return c.dir.IsZero()
}

// Dir is the component directory.
func (c CompoPath) Dir() DirPath {
	return c.dir
}

// Name is the component name, the last path segment.
func (c CompoPath) Name() string {
	return c.dir.Name()
}

// LayoutPath is the layout of a normal component, `dir/name.htm`.
func (c CompoPath) LayoutPath() string {
	return c.dir.value + c.Name() + "." + LayoutExt
}

// InlineLayoutPath is the layout of an inline component, `parent/name.htm`.
func (c CompoPath) InlineLayoutPath() string {
	return strings.TrimSuffix(c.dir.value, "/") + "." + LayoutExt
}

// CompoOf returns the component whose layout is file, normal or inline.
func CompoOf(file FilePath) CompoPath {
	if file.dir.Name() == file.base {
		return CompoPath{dir: file.dir}
	}
	return CompoPath{dir: DirPath{value: file.dir.value + file.base + "/"}}
}

// ResolveLayout finds the layout file of c. The normal layout is used when
// the component directory exists, the inline one otherwise. declaring names
// the file holding the reference and may be empty.
func ResolveLayout(c CompoPath, fs Checker, declaring string) (FilePath, error) {
	if fs.IsDir(c.dir.value) {
		layout := c.LayoutPath()
		if !fs.Exists(layout) {
			return FilePath{}, &fault.Error{
				Kind: fault.Resolution, Subject: c.String(), File: declaring,
				Message: "missing layout file " + layout + " for component path",
			}
		}
		return ParseFile(layout)
	}

	inline := c.InlineLayoutPath()
	if !fs.Exists(inline) {
		return FilePath{}, &fault.Error{
			Kind: fault.Resolution, Subject: c.String(), File: declaring,
			Message: "missing component path",
		}
	}
	return ParseFile(inline)
}
