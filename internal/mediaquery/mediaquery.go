// Package mediaquery maps variant qualifiers onto a project's ordered media
// query definitions and derives a CSS expression and an ordering weight.
package mediaquery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/woodgo/internal/fault"
	"github.com/specialistvlad/woodgo/internal/variant"
)

// Implicit category aliases, appended after the declared definitions.
const (
	widthAlias  = "w"
	heightAlias = "h"
)

// Entry is a declared media query, before it is given a position.
type Entry struct {
	Alias      string
	Expression string
}

// DefaultEntries are the four named breakpoints used when a project
// declares none.
var DefaultEntries = []Entry{
	{Alias: "xsd", Expression: "min-width: 560px"},
	{Alias: "smd", Expression: "min-width: 768px"},
	{Alias: "mdd", Expression: "min-width: 992px"},
	{Alias: "lgd", Expression: "min-width: 1200px"},
}

// Definition is a media query with its declaration index.
type Definition struct {
	Alias      string
	Expression string
	Index      int
}

// Weight is the 1-based declaration position.
func (d Definition) Weight() uint64 {
	return uint64(d.Index) + 1
}

// Table is the ordered, immutable list of definitions for a project.
type Table struct {
	defs    []Definition
	byAlias map[string]int
}

// Default returns the table built from DefaultEntries.
func Default() *Table {
	t, err := NewTable(nil)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable builds a table from declared entries. An empty list selects
// DefaultEntries. Orientation keywords not declared explicitly, and the
// width and height categories, are appended in that order.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		entries = DefaultEntries
	}

	t := &Table{byAlias: make(map[string]int)}
	for _, e := range entries {
		if !variant.IsToken(e.Alias) {
			return nil, fault.New(fault.Grammar, e.Alias, "media query alias is not a variant token")
		}
		if strings.TrimSpace(e.Expression) == "" {
			return nil, fault.New(fault.Grammar, e.Alias, "empty media query expression")
		}
		if err := t.add(e); err != nil {
			return nil, err
		}
	}

	for _, o := range []variant.Orientation{variant.Landscape, variant.Portrait} {
		if _, ok := t.byAlias[o.String()]; !ok {
			_ = t.add(Entry{Alias: o.String(), Expression: "orientation: " + o.String()})
		}
	}
	_ = t.add(Entry{Alias: widthAlias, Expression: "max-width: %dpx"})
	_ = t.add(Entry{Alias: heightAlias, Expression: "max-height: %dpx"})
	return t, nil
}

func (t *Table) add(e Entry) error {
	if _, exists := t.byAlias[e.Alias]; exists {
		return fault.New(fault.Consistency, e.Alias, "media query definition override")
	}
	t.byAlias[e.Alias] = len(t.defs)
	t.defs = append(t.defs, Definition{Alias: e.Alias, Expression: e.Expression, Index: len(t.defs)})
	return nil
}

// Definitions returns every definition in declaration order.
func (t *Table) Definitions() []Definition {
	return append([]Definition(nil), t.defs...)
}

// Lookup returns the definition declared for alias.
func (t *Table) Lookup(alias string) (Definition, bool) {
	i, ok := t.byAlias[alias]
	if !ok {
		return Definition{}, false
	}
	return t.defs[i], true
}

// Match is the outcome of mapping a variant set onto a table.
type Match struct {
	Definitions []Definition
	Expression  string
	Weight      uint64
}

// Match looks up every present, matchable category of set. Definitions are
// reported in declaration order; the expression text of the width and
// height categories carries the set's pixel value.
func (t *Table) Match(set variant.Set) Match {
	var matched []Definition

	if set.Screen != "" {
		if d, ok := t.Lookup(set.Screen); ok {
			matched = append(matched, d)
		}
	}
	if set.Orientation != variant.NoOrientation {
		if d, ok := t.Lookup(set.Orientation.String()); ok {
			matched = append(matched, d)
		}
	}
	if set.Width != 0 {
		matched = append(matched, t.sized(variant.WidthToken(set.Width), widthAlias, set.Width))
	}
	if set.Height != 0 {
		matched = append(matched, t.sized(variant.HeightToken(set.Height), heightAlias, set.Height))
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Index < matched[j].Index })

	m := Match{Definitions: matched, Weight: 1}
	parts := make([]string, 0, len(matched))
	for _, d := range matched {
		m.Weight *= d.Weight()
		parts = append(parts, "( "+d.Expression+" )")
	}
	m.Expression = strings.Join(parts, " and ")
	return m
}

// sized prefers an explicit declaration such as `w800` over the implicit
// category definition.
func (t *Table) sized(token, category string, px int) Definition {
	if d, ok := t.Lookup(token); ok {
		return d
	}
	d, _ := t.Lookup(category)
	d.Expression = fmt.Sprintf(d.Expression, px)
	return d
}

// Compute returns the media expression and ordering weight of set.
func Compute(set variant.Set, t *Table) (string, uint64) {
	m := t.Match(set)
	return m.Expression, m.Weight
}
