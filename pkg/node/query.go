package node

import (
	"reflect"
	"strings"
)

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the node's children.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// FindAll returns every node matching pred in document order.
func FindAll(n Node, pred func(Node) bool) []Node {
	var out []Node
	Walk(n, func(c Node, _ int) bool {
		if pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Find returns the first node matching pred.
func Find(n Node, pred func(Node) bool) (Node, bool) {
	var (
		found Node
		ok    bool
	)
	Walk(n, func(c Node, _ int) bool {
		if ok {
			return false
		}
		if pred(c) {
			found, ok = c, true
			return false
		}
		return true
	})
	return found, ok
}

// ByTag matches nodes with the given tag.
func ByTag(tag string) func(Node) bool {
	return func(n Node) bool { return n.Tag == tag }
}

// ByKind matches nodes of the given kind.
func ByKind(k Kind) func(Node) bool {
	return func(n Node) bool { return n.Kind == k }
}

// ByAttr matches nodes carrying attribute name=value.
func ByAttr(name, value string) func(Node) bool {
	return func(n Node) bool {
		v, ok := n.Attr(name)
		return ok && v == value
	}
}

// TextContent concatenates all text beneath n.
func TextContent(n Node) string {
	var sb strings.Builder
	Walk(n, func(c Node, _ int) bool {
		if c.Kind == KindText {
			sb.WriteString(c.Text)
		}
		return true
	})
	return sb.String()
}

// Equal reports whether two trees are structurally identical.
func Equal(a, b Node) bool {
	return reflect.DeepEqual(normalize(a), normalize(b))
}

// normalize maps empty slices to nil so that a tree and its decoded copy
// compare equal.
func normalize(n Node) Node {
	if len(n.Style) == 0 {
		n.Style = nil
	}
	if len(n.Attrs) == 0 {
		n.Attrs = nil
	}
	if n.Glyph != nil && len(n.Glyph.Paths) == 0 {
		g := *n.Glyph
		g.Paths = nil
		n.Glyph = &g
	}
	if len(n.Children) == 0 {
		n.Children = nil
		return n
	}
	children := make([]Node, len(n.Children))
	for i, c := range n.Children {
		children[i] = normalize(c)
	}
	n.Children = children
	return n
}
