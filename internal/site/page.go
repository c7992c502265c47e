// Package site renders the Another C Library landing page as a content tree.
package site

import (
	"github.com/anotherclibrary/acsite/internal/icons"
	"github.com/anotherclibrary/acsite/internal/layout"
	"github.com/anotherclibrary/acsite/internal/nav"
	"github.com/anotherclibrary/acsite/internal/seo"
	"github.com/anotherclibrary/acsite/pkg/node"
	"github.com/anotherclibrary/acsite/pkg/style"
)

// Linker maps a destination to a navigable node wrapping child.
type Linker interface {
	Link(to string, child node.Node) node.Node
}

// Icons produces the glyphs used by the hero buttons.
type Icons interface {
	ArrowRight(r style.Rule) node.Node
	Book(r style.Rule) node.Node
}

// Shell wraps page content in the site chrome.
type Shell interface {
	Wrap(children ...node.Node) node.Node
}

// Metadata produces the document head for a page title.
type Metadata interface {
	Head(title string) node.Head
}

// Region names carried in the data-region attribute.
const (
	RegionHero    = "hero"
	RegionContent = "content"
)

// Collaborators are the capabilities the page is composed from.
type Collaborators struct {
	Linker   Linker
	Icons    Icons
	Shell    Shell
	Metadata Metadata
	// Lang is the document language (default: "en")
	Lang string
}

// DefaultCollaborators returns the site's stock collaborators.
func DefaultCollaborators() Collaborators {
	linker := nav.Resolver{}
	return Collaborators{
		Linker: linker,
		Icons:  icons.FontAwesome{},
		Shell: layout.New(layout.Options{
			SiteTitle: Title,
			Copyright: "© " + Title,
		}, linker),
		Metadata: seo.New(seo.Site{
			Title:       Title,
			Description: "ac_ library for building scalable, complex applications.",
		}),
		Lang: "en",
	}
}

// IndexPage is the landing page.
type IndexPage struct {
	c     Collaborators
	sheet style.Sheet
}

// NewIndexPage creates the landing page. Nil collaborators fall back to the
// defaults.
func NewIndexPage(c Collaborators) *IndexPage {
	d := DefaultCollaborators()
	if c.Linker == nil {
		c.Linker = d.Linker
	}
	if c.Icons == nil {
		c.Icons = d.Icons
	}
	if c.Shell == nil {
		c.Shell = d.Shell
	}
	if c.Metadata == nil {
		c.Metadata = d.Metadata
	}
	if c.Lang == "" {
		c.Lang = d.Lang
	}
	return &IndexPage{c: c, sheet: style.Index()}
}

// Index renders the landing page with the default collaborators.
func Index() node.Document {
	return NewIndexPage(Collaborators{}).Render()
}

// Render returns the full document.
func (p *IndexPage) Render() node.Document {
	return node.Document{
		Lang: p.c.Lang,
		Head: p.c.Metadata.Head(PageTitle),
		Body: p.c.Shell.Wrap(p.Content()...),
	}
}

// Content returns the page body without chrome: the hero region followed by
// the content region.
func (p *IndexPage) Content() []node.Node {
	return []node.Node{p.hero(), p.content()}
}

func (p *IndexPage) hero() node.Node {
	s := p.sheet

	title := node.Container("h2",
		node.Styled(s.H2),
		node.Children(node.Text(Title)),
	)
	tagline := node.Container("h3",
		node.Styled(s.H3),
		node.Children(
			node.Container("code", node.Styled(s.Code), node.Children(node.Text(Token))),
			node.Text(Tagline),
		),
	)

	children := []node.Node{title, tagline}
	for _, a := range Actions() {
		children = append(children, p.action(a))
	}

	return node.Container("div",
		node.WithAttr("data-region", RegionHero),
		node.Styled(s.Hero),
		node.Children(node.Container("div",
			node.Styled(s.HeroText),
			node.Children(children...),
		)),
	)
}

func (p *IndexPage) action(a Action) node.Node {
	var glyph node.Node
	switch a.Glyph {
	case icons.NameBook:
		glyph = p.c.Icons.Book(style.IconOffset())
	default:
		glyph = p.c.Icons.ArrowRight(style.IconOffset())
	}

	button := node.Container("button",
		node.Styled(p.sheet.Button),
		node.Children(node.Text(a.Label+" "), glyph),
	)
	return p.c.Linker.Link(a.To, button)
}

func (p *IndexPage) content() node.Node {
	s := p.sheet

	items := make([]node.Node, 0, len(goals))
	for _, g := range goals {
		items = append(items, node.Text(g))
	}

	left := node.Container("div", node.Children(
		node.Container("h2", node.Children(node.Text(GoalsHeading))),
		node.List(true, node.Children(items...)),
	))
	right := node.Container("div", node.Children(
		node.Container("h3", node.Children(node.Text(AboutHeading))),
		node.Container("p", node.Styled(s.Paragraph), node.Children(node.Text(About))),
	))

	return node.Container("div",
		node.WithAttr("data-region", RegionContent),
		node.Class("Flex"),
		node.Styled(s.Main),
		node.Children(left, right),
	)
}
