package node

import "reflect"

// Meta is a <meta> tag. Exactly one of Name or Property is set.
type Meta struct {
	Name     string `json:"name,omitempty" msgpack:"name,omitempty" yaml:"name,omitempty"`
	Property string `json:"property,omitempty" msgpack:"property,omitempty" yaml:"property,omitempty"`
	Content  string `json:"content" msgpack:"content" yaml:"content"`
}

// HeadLink is a <link> tag.
type HeadLink struct {
	Rel  string `json:"rel" msgpack:"rel" yaml:"rel"`
	Href string `json:"href" msgpack:"href" yaml:"href"`
}

// Head is the document metadata.
type Head struct {
	Title  string     `json:"title" msgpack:"title" yaml:"title"`
	Meta   []Meta     `json:"meta,omitempty" msgpack:"meta,omitempty" yaml:"meta,omitempty"`
	Links  []HeadLink `json:"links,omitempty" msgpack:"links,omitempty" yaml:"links,omitempty"`
	JSONLD string     `json:"jsonLd,omitempty" msgpack:"jsonLd,omitempty" yaml:"jsonLd,omitempty"`
}

// MetaContent returns the content of the meta tag with the given name or
// property.
func (h Head) MetaContent(key string) (string, bool) {
	for _, m := range h.Meta {
		if m.Name == key || m.Property == key {
			return m.Content, true
		}
	}
	return "", false
}

// Document is a complete page: metadata plus body tree.
type Document struct {
	Lang string `json:"lang" msgpack:"lang" yaml:"lang"`
	Head Head   `json:"head" msgpack:"head" yaml:"head"`
	Body Node   `json:"body" msgpack:"body" yaml:"body"`
}

// EqualDocuments reports whether two documents are structurally identical.
func EqualDocuments(a, b Document) bool {
	if a.Lang != b.Lang || !Equal(a.Body, b.Body) {
		return false
	}
	return reflect.DeepEqual(normalizeHead(a.Head), normalizeHead(b.Head))
}

func normalizeHead(h Head) Head {
	if len(h.Meta) == 0 {
		h.Meta = nil
	}
	if len(h.Links) == 0 {
		h.Links = nil
	}
	return h
}
