// Package operator maps the logical layout operators onto the physical
// attribute names a project uses to mark them.
package operator

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Operator is a logical element marker.
type Operator int

const (
	Editable Operator = iota
	Template
	Compo
)

func (o Operator) String() string {
	switch o {
	case Editable:
		return "editable"
	case Template:
		return "template"
	case Compo:
		return "compo"
	default:
		return fmt.Sprintf("operator(%d)", int(o))
	}
}

// Addressing reads operator values off an element's attributes.
type Addressing interface {
	// Name identifies the naming scheme in project configuration.
	Name() string
	// Attr is the physical attribute name of op.
	Attr(op Operator) string
	// Value returns op's value among attrs.
	Value(attrs []html.Attribute, op Operator) (string, bool)
}

// Namespace is the XML namespace bound to the wood prefix.
const Namespace = "js-lib.com/wood"

// Scheme names accepted by Lookup.
const (
	XMLNS    = "xmlns"
	DataAttr = "data-attr"
	Attr     = "attr"
)

// Lookup returns the addressing scheme configured by name.
func Lookup(name string) (Addressing, error) {
	switch strings.ToLower(name) {
	case XMLNS, "":
		return NewNamespaced("wood"), nil
	case DataAttr:
		return dataAttr{}, nil
	case Attr:
		return plainAttr{}, nil
	default:
		return nil, fmt.Errorf("unknown operators naming %q, expected one of %s, %s, %s", name, XMLNS, DataAttr, Attr)
	}
}

// NewNamespaced addresses operators as `prefix:name` attributes.
func NewNamespaced(prefix string) Addressing {
	return namespaced{prefix: prefix}
}

type namespaced struct {
	prefix string
}

func (n namespaced) Name() string { return XMLNS }

func (n namespaced) Attr(op Operator) string { return n.prefix + ":" + op.String() }

func (n namespaced) Value(attrs []html.Attribute, op Operator) (string, bool) {
	return valueOf(attrs, n.Attr(op))
}

type dataAttr struct{}

func (dataAttr) Name() string { return DataAttr }

func (dataAttr) Attr(op Operator) string { return "data-" + op.String() }

func (d dataAttr) Value(attrs []html.Attribute, op Operator) (string, bool) {
	return valueOf(attrs, d.Attr(op))
}

type plainAttr struct{}

func (plainAttr) Name() string { return Attr }

func (plainAttr) Attr(op Operator) string { return op.String() }

func (p plainAttr) Value(attrs []html.Attribute, op Operator) (string, bool) {
	return valueOf(attrs, p.Attr(op))
}

// valueOf finds name among attrs. The tokenizer keeps `wood:x` as a single
// key while the tree parser splits foreign attributes into namespace and key;
// both shapes match.
func valueOf(attrs []html.Attribute, name string) (string, bool) {
	for _, a := range attrs {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		if strings.EqualFold(key, name) {
			return strings.TrimSpace(a.Val), true
		}
	}
	return "", false
}
