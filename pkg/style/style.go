// Package style holds the literal style rules of the landing page.
//
// Styles are ordered lists of CSS declarations grouped by semantic role.
// A Rule never changes after construction; every method that looks like a
// mutation returns a new Rule.
package style

import (
	"fmt"
	"strconv"
	"strings"
)

// Decl is a single CSS declaration.
type Decl struct {
	Property string `json:"property" msgpack:"property" yaml:"property"`
	Value    string `json:"value" msgpack:"value" yaml:"value"`
}

// String returns the declaration in "property:value" form.
func (d Decl) String() string {
	return d.Property + ":" + d.Value
}

// Rule is an immutable, ordered set of declarations.
type Rule struct {
	decls []Decl
}

// NewRule creates a rule from declarations. Later declarations of the same
// property replace earlier ones in place.
func NewRule(decls ...Decl) Rule {
	return Rule{}.With(decls...)
}

// D is a shorthand for building a declaration.
func D(property, value string) Decl {
	return Decl{Property: property, Value: value}
}

// Decls returns a copy of the declarations in declaration order.
func (r Rule) Decls() []Decl {
	if len(r.decls) == 0 {
		return nil
	}
	out := make([]Decl, len(r.decls))
	copy(out, r.decls)
	return out
}

// Len returns the number of declarations.
func (r Rule) Len() int {
	return len(r.decls)
}

// Get returns the value of a property.
func (r Rule) Get(property string) (string, bool) {
	for _, d := range r.decls {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// With returns a new rule with the given declarations applied on top.
func (r Rule) With(decls ...Decl) Rule {
	out := make([]Decl, len(r.decls), len(r.decls)+len(decls))
	copy(out, r.decls)

	for _, d := range decls {
		replaced := false
		for i := range out {
			if out[i].Property == d.Property {
				out[i].Value = d.Value
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, d)
		}
	}

	return Rule{decls: out}
}

// Merge returns a new rule with other's declarations applied on top of r.
func (r Rule) Merge(other Rule) Rule {
	return r.With(other.decls...)
}

// CSS renders the rule as an inline style attribute value.
func (r Rule) CSS() string {
	return CSS(r.decls)
}

// CSS renders declarations as an inline style attribute value.
func CSS(decls []Decl) string {
	if len(decls) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, d := range decls {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}

// Px formats a pixel length.
func Px(n int) string {
	return strconv.Itoa(n) + "px"
}

// Fluid returns a viewport-relative size: a fixed pixel baseline plus a
// viewport-width increment. Text sized this way scales with the window
// without breakpoints.
func Fluid(px int, vw float64) string {
	return fmt.Sprintf("calc(%dpx + %svw)", px, strconv.FormatFloat(vw, 'f', -1, 64))
}
