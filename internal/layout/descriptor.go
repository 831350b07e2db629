package layout

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/specialistvlad/woodgo/internal/fault"
	"github.com/specialistvlad/woodgo/internal/operator"
	"github.com/specialistvlad/woodgo/internal/woodpath"
	"golang.org/x/net/html"
)

// Descriptor is the structural summary of one layout file.
type Descriptor struct {
	Path woodpath.FilePath
	// HasBody is set when the first element of the layout is `body`.
	HasBody bool
	// Editables are the editable regions this layout declares, sorted.
	Editables []string
	// Template is the template this layout fills, if any.
	Template *woodpath.EditablePath
	// Templates are the editable names of Template this layout fills, sorted.
	Templates []string
	// Components are the widgets this layout includes, in document order.
	Components []woodpath.CompoPath
}

// Compo is the component this layout belongs to.
func (d *Descriptor) Compo() woodpath.CompoPath {
	return woodpath.CompoOf(d.Path)
}

type scanState int

const (
	awaitFirstElement scanState = iota
	content
)

// Scan reads a layout from r and records its markers, using addressing to
// find operator attributes.
func Scan(file woodpath.FilePath, r io.Reader, addressing operator.Addressing) (*Descriptor, error) {
	d := &Descriptor{Path: file}
	state := awaitFirstElement

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				slices.Sort(d.Editables)
				slices.Sort(d.Templates)
				return d, nil
			}
			return nil, fmt.Errorf("reading layout %s: %w", file, z.Err())

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if state == awaitFirstElement {
				d.HasBody = strings.EqualFold(tok.Data, "body")
				state = content
			}
			if err := d.mark(tok.Attr, addressing); err != nil {
				return nil, fault.Attribute(err, file.String())
			}
		}
	}
}

func (d *Descriptor) mark(attrs []html.Attribute, addressing operator.Addressing) error {
	if name, ok := addressing.Value(attrs, operator.Editable); ok {
		if !woodpath.IsSegment(name) {
			return fault.New(fault.Grammar, name, "invalid editable name")
		}
		if !slices.Contains(d.Editables, name) {
			d.Editables = append(d.Editables, name)
		}
	}

	if raw, ok := addressing.Value(attrs, operator.Template); ok {
		ref, err := woodpath.ParseEditable(raw)
		if err != nil {
			return err
		}
		if d.Template != nil && d.Template.Compo() != ref.Compo() {
			return fault.New(fault.Structural, raw, "template reference to a second template %s", d.Template.Compo())
		}
		d.Template = &ref
		if !slices.Contains(d.Templates, ref.Name()) {
			d.Templates = append(d.Templates, ref.Name())
		}
	}

	if raw, ok := addressing.Value(attrs, operator.Compo); ok {
		compo, err := woodpath.ParseCompo(raw)
		if err != nil {
			return err
		}
		if !slices.Contains(d.Components, compo) {
			d.Components = append(d.Components, compo)
		}
	}
	return nil
}
