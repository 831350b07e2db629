package woodpath

import (
	"regexp"
	"strings"

	"github.com/specialistvlad/woodgo/internal/fault"
	"github.com/specialistvlad/woodgo/internal/variant"
)

// filePattern splits `dir/ base [_variants] .ext`.
var filePattern = regexp.MustCompile(`^((?:res|lib|script|gen)/(?:[A-Za-z0-9-]+/)*)([A-Za-z0-9.-]+?)(?:_([A-Za-z0-9][A-Za-z0-9_-]*))?\.([A-Za-z0-9]{2,5})$`)

// Well known extensions.
const (
	LayoutExt    = "htm"
	StyleExt     = "css"
	ScriptExt    = "js"
	VariablesExt = "xml"
)

// FileKind is derived from the file extension.
type FileKind int

const (
	MediaFile FileKind = iota
	LayoutFile
	StyleFile
	ScriptFile
	VariablesFile
)

func (k FileKind) String() string {
	switch k {
	case LayoutFile:
		return "layout"
	case StyleFile:
		return "style"
	case ScriptFile:
		return "script"
	case VariablesFile:
		return "variables"
	default:
		return "media"
	}
}

// FilePath is a source file. Its string form is the file's real relative
// path; the decoded variants are exposed separately.
type FilePath struct {
	value    string
	dir      DirPath
	base     string
	variants variant.Set
	ext      string
}

// ParseFile parses `dir base ["_" variants] "." ext`. An unrecognized
// variant token is a grammar error naming the file.
func ParseFile(raw string) (FilePath, error) {
	m := filePattern.FindStringSubmatch(raw)
	if m == nil {
		return FilePath{}, fault.New(fault.Grammar, raw, "invalid file path")
	}

	variants, err := variant.Decode(m[3])
	if err != nil {
		return FilePath{}, fault.Attribute(err, raw)
	}

	return FilePath{
		value:    raw,
		dir:      DirPath{value: m[1]},
		base:     m[2],
		variants: variants,
		ext:      strings.ToLower(m[4]),
	}, nil
}

// MustParseFile is ParseFile for values known to be valid.
func MustParseFile(raw string) FilePath {
	f, err := ParseFile(raw)
	if err != nil {
		panic(err)
	}
	return f
}

func (f FilePath) String() string {
	return f.value
}

// IsZero reports whether f is the zero value.
func (f FilePath) IsZero() bool {
	return f.value == ""
}

// Dir is the directory holding the file.
func (f FilePath) Dir() DirPath {
	return f.dir
}

// Base is the file name without variants and extension.
func (f FilePath) Base() string {
	return f.base
}

// Name is the file name, variants and extension included.
func (f FilePath) Name() string {
	return strings.TrimPrefix(f.value, f.dir.value)
}

// Ext is the lower cased extension without the dot.
func (f FilePath) Ext() string {
	return f.ext
}

// Variants returns the decoded file name qualifiers.
func (f FilePath) Variants() variant.Set {
	return f.variants
}

// Kind classifies the file by extension.
func (f FilePath) Kind() FileKind {
	switch f.ext {
	case LayoutExt:
		return LayoutFile
	case StyleExt:
		return StyleFile
	case ScriptExt:
		return ScriptFile
	case VariablesExt:
		return VariablesFile
	default:
		return MediaFile
	}
}
