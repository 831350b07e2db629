package variables

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/woodgo/internal/fault"
	"github.com/specialistvlad/woodgo/internal/reference"
	"github.com/specialistvlad/woodgo/internal/variant"
	"github.com/specialistvlad/woodgo/internal/woodpath"
)

// Builder accumulates definitions for one scope during the load phase.
type Builder struct {
	scope   string
	values  map[variant.Locale]map[reference.Reference]string
	origins map[variant.Locale]map[reference.Reference]string
}

// NewBuilder creates an empty builder. Files without a locale variant are
// loaded into the locale neutral bucket, keyed by the zero Locale.
func NewBuilder(scope string) *Builder {
	return &Builder{
		scope:   scope,
		values:  make(map[variant.Locale]map[reference.Reference]string),
		origins: make(map[variant.Locale]map[reference.Reference]string),
	}
}

// Build hands the definitions over to a read-only Store. The builder must
// not be used afterwards.
func (b *Builder) Build() *Store {
	s := &Store{scope: b.scope, values: b.values}
	b.values, b.origins = nil, nil
	return s
}

// Load reads one definition file.
func (b *Builder) Load(file woodpath.FilePath, r io.Reader) error {
	if b.values == nil {
		return errors.New("variables builder already built")
	}
	locale := file.Variants().Locale

	dec := xml.NewDecoder(r)
	dec.Entity = xml.HTMLEntity

	var (
		kind  reference.Kind
		depth int
		value valueBuilder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parsing variables file %s: %w", file, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case depth == 1:
				k, ok := reference.ParseKind(t.Name.Local)
				if !ok || !k.IsVariable() {
					return &fault.Error{Kind: fault.Structural, Subject: t.Name.Local, File: file.String(), Message: "bad resource type"}
				}
				kind = k
			case depth == 2:
				if !reference.ValidName(t.Name.Local) {
					return &fault.Error{Kind: fault.Grammar, Subject: t.Name.Local, File: file.String(), Message: "invalid variable name"}
				}
				value = newValueBuilder(kind, t)
			default:
				if err := value.start(t, depth); err != nil {
					return fault.Attribute(err, file.String())
				}
			}

		case xml.EndElement:
			if depth == 2 {
				ref := reference.New(kind, value.name())
				if err := b.put(locale, ref, value.String(), file); err != nil {
					return err
				}
				value = nil
			} else if depth > 2 {
				value.end(t, depth)
			}
			depth--

		case xml.CharData:
			if value != nil {
				value.text(string(t), depth)
			}
		}
	}
}

func (b *Builder) put(locale variant.Locale, ref reference.Reference, value string, file woodpath.FilePath) error {
	if b.values[locale] == nil {
		b.values[locale] = make(map[reference.Reference]string)
		b.origins[locale] = make(map[reference.Reference]string)
	}
	if origin, exists := b.origins[locale][ref]; exists {
		bucket := "locale " + locale.String()
		if locale.IsZero() {
			bucket = "files without locale"
		}
		return &fault.Error{
			Kind: fault.Structural, Subject: ref.String(), File: file.String(),
			Message: fmt.Sprintf("variable already defined by %s for %s", origin, bucket),
		}
	}
	b.values[locale][ref] = value
	b.origins[locale][ref] = file.String()
	return nil
}

// valueBuilder turns the content of one key element into a raw value.
// depth is the element depth within the document; the key sits at 2.
type valueBuilder interface {
	name() string
	start(el xml.StartElement, depth int) error
	end(el xml.EndElement, depth int)
	text(s string, depth int)
	String() string
}

func newValueBuilder(kind reference.Kind, key xml.StartElement) valueBuilder {
	switch kind {
	case reference.Text:
		return &textValue{key: key.Name.Local}
	case reference.Style:
		s := &styleValue{key: key.Name.Local}
		for _, a := range key.Attr {
			if a.Name.Local == "parent" {
				s.b.WriteString(reference.New(reference.Style, strings.TrimSpace(a.Value)).String())
			}
		}
		return s
	case reference.String, reference.Color, reference.Dimen, reference.Link, reference.Tip:
		return &plainValue{key: key.Name.Local}
	default:
		panic(fmt.Sprintf("variables: no value builder for %s", kind))
	}
}

type plainValue struct {
	key string
	b   strings.Builder
}

func (p *plainValue) name() string { return p.key }

func (p *plainValue) start(el xml.StartElement, _ int) error {
	return fault.New(fault.Structural, el.Name.Local, "not allowed nested element")
}

func (p *plainValue) end(xml.EndElement, int) {}

func (p *plainValue) text(s string, _ int) { p.b.WriteString(s) }

func (p *plainValue) String() string { return strings.TrimSpace(p.b.String()) }

// textValue keeps nested markup as literal tags around the text.
type textValue struct {
	key string
	b   strings.Builder
}

func (t *textValue) name() string { return t.key }

func (t *textValue) start(el xml.StartElement, _ int) error {
	t.b.WriteByte('<')
	t.b.WriteString(el.Name.Local)
	for _, a := range el.Attr {
		fmt.Fprintf(&t.b, ` %s="%s"`, a.Name.Local, a.Value)
	}
	t.b.WriteByte('>')
	return nil
}

func (t *textValue) end(el xml.EndElement, _ int) {
	t.b.WriteString("</" + el.Name.Local + ">")
}

func (t *textValue) text(s string, _ int) { t.b.WriteString(s) }

func (t *textValue) String() string { return strings.TrimSpace(t.b.String()) }

// styleValue renders each child element as a `name: value;` declaration.
type styleValue struct {
	key      string
	b        strings.Builder
	property string
	value    strings.Builder
}

func (s *styleValue) name() string { return s.key }

func (s *styleValue) start(el xml.StartElement, depth int) error {
	if depth > 3 {
		return fault.New(fault.Structural, el.Name.Local, "not allowed nested element")
	}
	s.property = el.Name.Local
	s.value.Reset()
	return nil
}

func (s *styleValue) end(_ xml.EndElement, _ int) {
	if s.b.Len() > 0 {
		s.b.WriteString("\n\t")
	}
	fmt.Fprintf(&s.b, "%s: %s;", s.property, strings.TrimSpace(s.value.String()))
	s.property = ""
}

func (s *styleValue) text(text string, depth int) {
	if depth == 3 {
		s.value.WriteString(text)
	}
}

func (s *styleValue) String() string { return s.b.String() }
