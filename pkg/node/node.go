// Package node defines the content tree produced by page renderers.
//
// A Node is a tagged union: Kind selects which fields are meaningful. The
// tree contains no maps so that every encoding of it is byte-for-byte stable,
// and no functions so that any rendering layer (HTML, Markdown, a client-side
// renderer fed over the wire) can consume it.
package node

import (
	"github.com/anotherclibrary/acsite/pkg/style"
)

// Kind identifies the variant of a Node.
type Kind string

const (
	// KindContainer is an element with children, e.g. div, h2, button.
	KindContainer Kind = "container"
	// KindText is a run of literal text.
	KindText Kind = "text"
	// KindList is an ordered or unordered list; each child is one item.
	KindList Kind = "list"
	// KindLink is a navigable element wrapping its children.
	KindLink Kind = "link"
	// KindGlyph is a vector icon.
	KindGlyph Kind = "glyph"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindContainer, KindText, KindList, KindLink, KindGlyph:
		return true
	default:
		return false
	}
}

// Attr is an element attribute. Attributes keep their insertion order.
type Attr struct {
	Name  string `json:"name" msgpack:"name" yaml:"name"`
	Value string `json:"value" msgpack:"value" yaml:"value"`
}

// Glyph is the vector data of an icon.
type Glyph struct {
	Name    string   `json:"name" msgpack:"name" yaml:"name"`
	ViewBox string   `json:"viewBox" msgpack:"viewBox" yaml:"viewBox"`
	Paths   []string `json:"paths" msgpack:"paths" yaml:"paths"`
}

// Node is one element of the content tree.
type Node struct {
	Kind     Kind         `json:"kind" msgpack:"kind" yaml:"kind"`
	Tag      string       `json:"tag,omitempty" msgpack:"tag,omitempty" yaml:"tag,omitempty"`
	Text     string       `json:"text,omitempty" msgpack:"text,omitempty" yaml:"text,omitempty"`
	Href     string       `json:"href,omitempty" msgpack:"href,omitempty" yaml:"href,omitempty"`
	Ordered  bool         `json:"ordered,omitempty" msgpack:"ordered,omitempty" yaml:"ordered,omitempty"`
	Class    string       `json:"class,omitempty" msgpack:"class,omitempty" yaml:"class,omitempty"`
	Style    []style.Decl `json:"style,omitempty" msgpack:"style,omitempty" yaml:"style,omitempty"`
	Attrs    []Attr       `json:"attrs,omitempty" msgpack:"attrs,omitempty" yaml:"attrs,omitempty"`
	Glyph    *Glyph       `json:"glyph,omitempty" msgpack:"glyph,omitempty" yaml:"glyph,omitempty"`
	Children []Node       `json:"children,omitempty" msgpack:"children,omitempty" yaml:"children,omitempty"`
}

// Option configures a node under construction.
type Option func(*Node)

// Children appends child nodes.
func Children(children ...Node) Option {
	return func(n *Node) {
		n.Children = append(n.Children, children...)
	}
}

// Styled sets the node's inline style from a rule. Later calls merge on top.
func Styled(r style.Rule) Option {
	return func(n *Node) {
		if len(n.Style) == 0 {
			n.Style = r.Decls()
			return
		}
		n.Style = style.NewRule(n.Style...).Merge(r).Decls()
	}
}

// Class sets the node's class name.
func Class(name string) Option {
	return func(n *Node) {
		n.Class = name
	}
}

// WithAttr sets an attribute, replacing an existing value with the same name.
func WithAttr(name, value string) Option {
	return func(n *Node) {
		for i := range n.Attrs {
			if n.Attrs[i].Name == name {
				n.Attrs[i].Value = value
				return
			}
		}
		n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	}
}

func build(n Node, opts []Option) Node {
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// Container creates an element node.
func Container(tag string, opts ...Option) Node {
	return build(Node{Kind: KindContainer, Tag: tag}, opts)
}

// Text creates a text node.
func Text(s string) Node {
	return Node{Kind: KindText, Text: s}
}

// List creates a list node. Each child becomes one list item.
func List(ordered bool, opts ...Option) Node {
	tag := "ul"
	if ordered {
		tag = "ol"
	}
	return build(Node{Kind: KindList, Tag: tag, Ordered: ordered}, opts)
}

// Link creates a navigable node pointing at href.
func Link(href string, opts ...Option) Node {
	return build(Node{Kind: KindLink, Tag: "a", Href: href}, opts)
}

// Icon creates a glyph node.
func Icon(g Glyph, opts ...Option) Node {
	paths := make([]string, len(g.Paths))
	copy(paths, g.Paths)
	g.Paths = paths
	return build(Node{Kind: KindGlyph, Tag: "svg", Glyph: &g}, opts)
}

// Attr returns the value of the named attribute.
func (n Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// StyleValue returns the value of an inline style property.
func (n Node) StyleValue(property string) (string, bool) {
	for _, d := range n.Style {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}
