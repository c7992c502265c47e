// Package layout provides the page chrome shared by every page: a header with
// the site title and navigation, the main element, and a footer.
package layout

import (
	"github.com/anotherclibrary/acsite/internal/nav"
	"github.com/anotherclibrary/acsite/pkg/node"
)

// Linker resolves a destination into a navigable node.
type Linker interface {
	Link(to string, child node.Node) node.Node
}

// Options configures the shell.
type Options struct {
	// SiteTitle is shown in the header and links home
	SiteTitle string
	// Links are the header navigation links
	Links []nav.Link
	// Copyright is the footer line
	Copyright string
}

// DefaultLinks are the header navigation links.
var DefaultLinks = []nav.Link{
	{Label: "Docs", To: "/docs/"},
	{Label: "eBook", To: "/ebook/"},
}

// Shell wraps page content in the site chrome.
type Shell struct {
	opts   Options
	linker Linker
}

// New creates a shell. A nil linker uses a resolver without path prefix.
func New(opts Options, linker Linker) *Shell {
	if linker == nil {
		linker = nav.Resolver{}
	}
	if opts.Links == nil {
		opts.Links = DefaultLinks
	}
	return &Shell{opts: opts, linker: linker}
}

// Wrap returns the page body holding children inside the chrome.
func (s *Shell) Wrap(children ...node.Node) node.Node {
	return node.Container("div",
		node.Class("site"),
		node.Children(
			s.header(),
			node.Container("main",
				node.WithAttr("id", "main-content"),
				node.Children(children...),
			),
			s.footer(),
		),
	)
}

func (s *Shell) header() node.Node {
	links := make([]node.Node, 0, len(s.opts.Links))
	for _, l := range s.opts.Links {
		links = append(links, s.linker.Link(l.To, node.Text(l.Label)))
	}

	return node.Container("header",
		node.Class("site-header"),
		node.Children(
			s.linker.Link("/", node.Container("h1",
				node.Class("site-title"),
				node.Children(node.Text(s.opts.SiteTitle)),
			)),
			node.Container("nav",
				node.WithAttr("aria-label", "Main navigation"),
				node.Children(links...),
			),
		),
	)
}

func (s *Shell) footer() node.Node {
	return node.Container("footer",
		node.Class("site-footer"),
		node.Children(node.Text(s.opts.Copyright)),
	)
}
