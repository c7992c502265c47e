// Package render turns content trees into HTML and Markdown.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html"

	"github.com/anotherclibrary/acsite/pkg/node"
	"github.com/anotherclibrary/acsite/pkg/pool"
	"github.com/anotherclibrary/acsite/pkg/style"
)

// Common render errors.
var (
	ErrInvalidTag  = errors.New("invalid tag name")
	ErrUnknownKind = errors.New("unknown node kind")
)

// voidElements never have children or a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "wbr": true,
}

// HTMLString renders n to a string.
func HTMLString(n node.Node) (string, error) {
	out, err := pool.Bytes(func(buf *bytes.Buffer) error {
		return writeNode(buf, n)
	})
	return string(out), err
}

func writeNode(buf *bytes.Buffer, n node.Node) error {
	switch n.Kind {
	case node.KindText:
		buf.WriteString(html.EscapeString(n.Text))
		return nil
	case node.KindContainer:
		return writeElement(buf, n.Tag, n, nil, n.Children)
	case node.KindLink:
		tag := n.Tag
		if tag == "" {
			tag = "a"
		}
		return writeElement(buf, tag, n, []node.Attr{{Name: "href", Value: n.Href}}, n.Children)
	case node.KindList:
		return writeList(buf, n)
	case node.KindGlyph:
		return writeGlyph(buf, n)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, n.Kind)
	}
}

func writeList(buf *bytes.Buffer, n node.Node) error {
	tag := n.Tag
	if tag == "" {
		tag = "ul"
		if n.Ordered {
			tag = "ol"
		}
	}
	if err := openTag(buf, tag, n, nil); err != nil {
		return err
	}
	for _, item := range n.Children {
		if item.Kind == node.KindContainer && item.Tag == "li" {
			if err := writeNode(buf, item); err != nil {
				return err
			}
			continue
		}
		buf.WriteString("<li>")
		if err := writeNode(buf, item); err != nil {
			return err
		}
		buf.WriteString("</li>")
	}
	buf.WriteString("</" + tag + ">")
	return nil
}

func writeGlyph(buf *bytes.Buffer, n node.Node) error {
	g := n.Glyph
	if g == nil {
		return nil
	}
	extra := []node.Attr{
		{Name: "stroke", Value: "currentColor"},
		{Name: "fill", Value: "currentColor"},
		{Name: "stroke-width", Value: "0"},
		{Name: "viewBox", Value: g.ViewBox},
		{Name: "height", Value: "1em"},
		{Name: "width", Value: "1em"},
		{Name: "aria-hidden", Value: "true"},
	}
	if err := openTag(buf, "svg", n, extra); err != nil {
		return err
	}
	for _, d := range g.Paths {
		buf.WriteString(`<path d="`)
		buf.WriteString(html.EscapeString(d))
		buf.WriteString(`"></path>`)
	}
	buf.WriteString("</svg>")
	return nil
}

func writeElement(buf *bytes.Buffer, tag string, n node.Node, extra []node.Attr, children []node.Node) error {
	if err := openTag(buf, tag, n, extra); err != nil {
		return err
	}
	if voidElements[tag] {
		return nil
	}
	for _, c := range children {
		if err := writeNode(buf, c); err != nil {
			return err
		}
	}
	buf.WriteString("</" + tag + ">")
	return nil
}

func openTag(buf *bytes.Buffer, tag string, n node.Node, extra []node.Attr) error {
	if !validTag(tag) {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	buf.WriteByte('<')
	buf.WriteString(tag)
	for _, a := range extra {
		writeAttr(buf, a.Name, a.Value)
	}
	if n.Class != "" {
		writeAttr(buf, "class", n.Class)
	}
	if len(n.Style) > 0 {
		writeAttr(buf, "style", style.CSS(n.Style))
	}
	for _, a := range n.Attrs {
		if !validTag(a.Name) {
			return fmt.Errorf("%w: attribute %q", ErrInvalidTag, a.Name)
		}
		writeAttr(buf, a.Name, a.Value)
	}
	buf.WriteByte('>')
	return nil
}

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteByte(' ')
	buf.WriteString(name)
	buf.WriteString(`="`)
	buf.WriteString(html.EscapeString(value))
	buf.WriteByte('"')
}

// validTag accepts lowercase and uppercase ASCII letters, digits and hyphens.
// Attribute names share the rule.
func validTag(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9', c == '-':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
