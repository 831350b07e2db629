package woodpath

// Root is a source root, the first segment of every path.
type Root int

const (
	Resources Root = iota
	Library
	Script
	Generated
)

var rootNames = [...]string{
	Resources: "res",
	Library:   "lib",
	Script:    "script",
	Generated: "gen",
}

// Roots returns every source root in declaration order.
func Roots() []Root {
	return []Root{Resources, Library, Script, Generated}
}

func (r Root) String() string {
	return rootNames[r]
}

// ParseRoot matches a root directory name.
func ParseRoot(name string) (Root, bool) {
	for i, n := range rootNames {
		if n == name {
			return Root(i), true
		}
	}
	return 0, false
}
