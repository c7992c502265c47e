package site

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/anotherclibrary/acsite/internal/nav"
	"github.com/anotherclibrary/acsite/pkg/node"
	"github.com/anotherclibrary/acsite/pkg/render"
	"github.com/anotherclibrary/acsite/pkg/style"
)

func regions(t *testing.T) (hero, content node.Node) {
	t.Helper()
	c := NewIndexPage(Collaborators{}).Content()
	require.Len(t, c, 2)
	return c[0], c[1]
}

func TestContent_HeroThenContent(t *testing.T) {
	hero, content := regions(t)

	v, _ := hero.Attr("data-region")
	require.Equal(t, RegionHero, v)
	v, _ = content.Attr("data-region")
	require.Equal(t, RegionContent, v)
	require.Equal(t, "Flex", content.Class)
}

func TestIndex_ExactlyOneOfEachRegion(t *testing.T) {
	doc := Index()

	require.Len(t, node.FindAll(doc.Body, node.ByAttr("data-region", RegionHero)), 1)
	require.Len(t, node.FindAll(doc.Body, node.ByAttr("data-region", RegionContent)), 1)

	var order []string
	node.Walk(doc.Body, func(n node.Node, _ int) bool {
		if v, ok := n.Attr("data-region"); ok {
			order = append(order, v)
		}
		return true
	})
	require.Equal(t, []string{RegionHero, RegionContent}, order)
}

func TestHero_TitleAndToken(t *testing.T) {
	hero, _ := regions(t)

	h2, ok := node.Find(hero, node.ByTag("h2"))
	require.True(t, ok)
	require.Equal(t, "Another C Library", node.TextContent(h2))

	code, ok := node.Find(hero, node.ByTag("code"))
	require.True(t, ok)
	require.Equal(t, "ac_", node.TextContent(code))

	h3, ok := node.Find(hero, node.ByTag("h3"))
	require.True(t, ok)
	require.Equal(t, "ac_ library for building scalable, complex applications.", node.TextContent(h3))
}

func TestHero_Actions(t *testing.T) {
	hero, _ := regions(t)

	links := node.FindAll(hero, node.ByKind(node.KindLink))
	require.Len(t, links, 2)

	want := []struct{ label, href, glyph string }{
		{"Get Started", "/docs/", "arrow-right"},
		{"A C eBook", "/ebook/", "book"},
	}
	for i, w := range want {
		l := links[i]
		require.Equal(t, w.href, l.Href)
		require.Equal(t, w.label, strings.TrimSpace(node.TextContent(l)))

		button, ok := node.Find(l, node.ByTag("button"))
		require.True(t, ok)
		require.Equal(t, style.Blue600.String(), mustStyle(t, button, "background"))

		glyphs := node.FindAll(button, node.ByKind(node.KindGlyph))
		require.Len(t, glyphs, 1)
		require.Equal(t, w.glyph, glyphs[0].Glyph.Name)
		require.Equal(t, "5px", mustStyle(t, glyphs[0], "padding-top"))

		// The glyph trails the label.
		last := button.Children[len(button.Children)-1]
		require.Equal(t, node.KindGlyph, last.Kind)
	}
}

func TestHero_Styling(t *testing.T) {
	hero, _ := regions(t)

	require.Equal(t, "50vh", mustStyle(t, hero, "height"))
	require.Equal(t, "#2D3748", mustStyle(t, hero, "background-color"))

	h2, _ := node.Find(hero, node.ByTag("h2"))
	require.Equal(t, "calc(16px + 2vw)", mustStyle(t, h2, "font-size"))
	h3, _ := node.Find(hero, node.ByTag("h3"))
	require.Equal(t, "calc(16px + 1vw)", mustStyle(t, h3, "font-size"))
	code, _ := node.Find(hero, node.ByTag("code"))
	require.Equal(t, "calc(16px + 1.5vw)", mustStyle(t, code, "font-size"))
	require.Equal(t, "#4A5568", mustStyle(t, code, "background-color"))
}

func TestContent_Goals(t *testing.T) {
	_, content := regions(t)
	require.Len(t, content.Children, 2)
	left, right := content.Children[0], content.Children[1]

	h2, ok := node.Find(left, node.ByTag("h2"))
	require.True(t, ok)
	require.Equal(t, GoalsHeading, node.TextContent(h2))

	lists := node.FindAll(left, node.ByKind(node.KindList))
	require.Len(t, lists, 1)
	require.True(t, lists[0].Ordered)
	require.Len(t, lists[0].Children, 5)

	prefixes := []string{
		"To provide an open source collection of algorithms",
		"To help engineers understand algorithms and C better",
		"To show that it is possible to overcome many of the known challenges with C",
		"To help people to learn what it takes to create something new",
		"Build scalable applications using technology like Kubernetes, nginx, and docker",
	}
	for i, p := range prefixes {
		require.True(t, strings.HasPrefix(node.TextContent(lists[0].Children[i]), p), "goal %d", i+1)
	}
	require.Equal(t, Goals(), func() []string {
		var out []string
		for _, c := range lists[0].Children {
			out = append(out, node.TextContent(c))
		}
		return out
	}())

	h3, ok := node.Find(right, node.ByTag("h3"))
	require.True(t, ok)
	require.Equal(t, AboutHeading, node.TextContent(h3))

	paragraphs := node.FindAll(right, node.ByTag("p"))
	require.Len(t, paragraphs, 1)
	require.NotEmpty(t, strings.TrimSpace(node.TextContent(paragraphs[0])))
	require.Equal(t, "#1A202C", mustStyle(t, paragraphs[0], "color"))
}

func TestGoals_ReturnsCopy(t *testing.T) {
	g := Goals()
	g[0] = "changed"
	require.NotEqual(t, "changed", Goals()[0])
}

func TestIndex_Deterministic(t *testing.T) {
	a, b := Index(), Index()
	require.True(t, node.EqualDocuments(a, b))

	ha, err := render.DocumentBytes(a)
	require.NoError(t, err)
	hb, err := render.DocumentBytes(b)
	require.NoError(t, err)
	require.Equal(t, ha, hb)
}

func TestRender_HeadAndShell(t *testing.T) {
	doc := Index()

	require.Equal(t, "en", doc.Lang)
	require.Equal(t, "Home | Another C Library", doc.Head.Title)

	main, ok := node.Find(doc.Body, node.ByTag("main"))
	require.True(t, ok)
	require.Len(t, main.Children, 2)
}

type recordingLinker struct {
	targets []string
}

func (r *recordingLinker) Link(to string, child node.Node) node.Node {
	r.targets = append(r.targets, to)
	return nav.Resolver{}.Link(to, child)
}

type fixedShell struct{}

func (fixedShell) Wrap(children ...node.Node) node.Node {
	return node.Container("body-root", node.Children(children...))
}

type fixedMeta struct{ titles []string }

func (m *fixedMeta) Head(title string) node.Head {
	m.titles = append(m.titles, title)
	return node.Head{Title: title}
}

func TestNewIndexPage_UsesCollaborators(t *testing.T) {
	linker := &recordingLinker{}
	meta := &fixedMeta{}
	doc := NewIndexPage(Collaborators{
		Linker:   linker,
		Shell:    fixedShell{},
		Metadata: meta,
		Lang:     "en-GB",
	}).Render()

	require.Equal(t, []string{"/docs/", "/ebook/"}, linker.targets)
	require.Equal(t, []string{"Home"}, meta.titles)
	require.Equal(t, "body-root", doc.Body.Tag)
	require.Equal(t, "en-GB", doc.Lang)
}

func TestIndex_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Document(&buf, Index()))

	dom, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	require.Equal(t, 1, dom.Find(`[data-region="hero"]`).Length())
	require.Equal(t, "Another C Library", dom.Find(`[data-region="hero"] h2`).Text())
	require.Equal(t, "ac_", dom.Find(`[data-region="hero"] code`).Text())

	items := dom.Find(`[data-region="content"] ol > li`)
	require.Equal(t, 5, items.Length())
	require.Equal(t, Goals()[4], items.Last().Text())

	hrefs := dom.Find(`[data-region="hero"] a`).Map(func(_ int, s *goquery.Selection) string {
		return s.AttrOr("href", "")
	})
	require.Equal(t, []string{"/docs/", "/ebook/"}, hrefs)
	require.Equal(t, 2, dom.Find(`[data-region="hero"] a button svg`).Length())
}

func TestIndex_Markdown(t *testing.T) {
	_, content := regions(t)
	md := render.MarkdownString(content)

	require.Contains(t, md, "## Goals of this Project:\n\n1. To provide an open source collection")
	require.Contains(t, md, "5. Build scalable applications using technology like Kubernetes, nginx, and docker\n")
	require.Contains(t, md, "### About this Project:\n\nLorem ipsum")
}

func mustStyle(t *testing.T, n node.Node, prop string) string {
	t.Helper()
	v, ok := n.StyleValue(prop)
	require.True(t, ok, "missing %s on <%s>", prop, n.Tag)
	return v
}
