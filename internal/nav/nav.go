// Package nav resolves navigation destinations into link nodes.
package nav

import (
	"strings"

	"github.com/anotherclibrary/acsite/pkg/node"
)

// Link describes a navigation entry shown in the site chrome.
type Link struct {
	Label string
	To    string
}

// Resolver maps destination identifiers to link nodes.
type Resolver struct {
	// PathPrefix is prepended to internal destinations, e.g. "/acl".
	PathPrefix string
}

// IsExternal reports whether to leaves the site.
func IsExternal(to string) bool {
	return strings.HasPrefix(to, "http://") || strings.HasPrefix(to, "https://")
}

// Href returns the final URL for to.
func (r Resolver) Href(to string) string {
	if IsExternal(to) {
		return to
	}
	if to == "" {
		to = "/"
	}
	if !strings.HasPrefix(to, "/") {
		to = "/" + to
	}
	prefix := strings.TrimSuffix(r.PathPrefix, "/")
	return prefix + to
}

// Link wraps child in a navigable link to to. Internal links are marked
// for client-side navigation; external ones open in a new tab.
func (r Resolver) Link(to string, child node.Node) node.Node {
	opts := []node.Option{node.Children(child)}
	if IsExternal(to) {
		opts = append(opts,
			node.WithAttr("target", "_blank"),
			node.WithAttr("rel", "noopener noreferrer"),
		)
	} else {
		opts = append(opts, node.WithAttr("data-nav", "internal"))
	}
	return node.Link(r.Href(to), opts...)
}
