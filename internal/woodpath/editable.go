package woodpath

import (
	"strings"

	"github.com/specialistvlad/woodgo/internal/fault"
)

// EditablePath names an editable region of a template: `compo#name`.
type EditablePath struct {
	compo CompoPath
	name  string
}

// ParseEditable splits raw on its last `#`.
func ParseEditable(raw string) (EditablePath, error) {
	i := strings.LastIndex(raw, "#")
	if i < 0 {
		return EditablePath{}, fault.New(fault.Grammar, raw, "missing editable name from editable path")
	}

	name := raw[i+1:]
	if !IsSegment(name) {
		return EditablePath{}, fault.New(fault.Grammar, raw, "invalid editable name %q", name)
	}

	compo, err := ParseCompo(raw[:i])
	if err != nil {
		return EditablePath{}, err
	}
	return EditablePath{compo: compo, name: name}, nil
}

// MustParseEditable is ParseEditable for values known to be valid.
func MustParseEditable(raw string) EditablePath {
	e, err := ParseEditable(raw)
	if err != nil {
		panic(err)
	}
	return e
}

// Compo is the template component.
func (e EditablePath) Compo() CompoPath {
	return e.compo
}

// Name is the editable name.
func (e EditablePath) Name() string {
	return e.name
}

func (e EditablePath) String() string {
	return strings.TrimSuffix(e.compo.String(), "/") + "#" + e.name
}
