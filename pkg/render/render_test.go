package render

import (
	"bytes"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/anotherclibrary/acsite/pkg/node"
	"github.com/anotherclibrary/acsite/pkg/style"
)

func fixture() node.Node {
	return node.Container("div",
		node.Class("Flex"),
		node.Styled(style.NewRule(style.D("margin", "80px auto"))),
		node.Children(
			node.Container("h2", node.Children(node.Text("Goals & <stuff>"))),
			node.Container("h3", node.Children(
				node.Container("code", node.Children(node.Text("ac_"))),
				node.Text(" library"),
			)),
			node.List(true, node.Children(node.Text("first"), node.Text("second"), node.Text("third"))),
			node.Link("/docs/", node.Children(
				node.Container("button", node.Children(
					node.Text("Get Started "),
					node.Icon(node.Glyph{Name: "arrow", ViewBox: "0 0 448 512", Paths: []string{"M0 0z"}},
						node.Styled(style.NewRule(style.D("padding-top", "5px")))),
				)),
			)),
			node.Link("/ebook/", node.Children(node.Container("button", node.Children(node.Text("eBook"))))),
			node.Container("p", node.Children(node.Text("Some *text* here."))),
		),
	)
}

func parse(t *testing.T, s string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestHTML_Structure(t *testing.T) {
	out, err := HTMLString(fixture())
	require.NoError(t, err)

	doc := parse(t, out)

	root := doc.Find("div.Flex")
	require.Equal(t, 1, root.Length())
	styleAttr, _ := root.Attr("style")
	require.Equal(t, "margin:80px auto", styleAttr)

	require.Equal(t, "Goals & <stuff>", doc.Find("h2").Text())
	require.Equal(t, "ac_", doc.Find("h3 code").Text())

	items := doc.Find("ol > li")
	require.Equal(t, 3, items.Length())
	require.Equal(t, "first", items.Eq(0).Text())
	require.Equal(t, "third", items.Eq(2).Text())

	links := doc.Find("a")
	require.Equal(t, 2, links.Length())
	href, _ := links.Eq(0).Attr("href")
	require.Equal(t, "/docs/", href)

	svg := doc.Find("a button svg")
	require.Equal(t, 1, svg.Length())
	// the HTML parser restores SVG attribute casing
	viewBox, ok := svg.Attr("viewBox")
	if !ok {
		viewBox, _ = svg.Attr("viewbox")
	}
	require.Equal(t, "0 0 448 512", viewBox)
	require.Equal(t, 1, svg.Find("path").Length())
}

func TestHTML_Escapes(t *testing.T) {
	out, err := HTMLString(node.Container("p",
		node.WithAttr("title", `"quoted"`),
		node.Children(node.Text("<script>alert(1)</script>")),
	))
	require.NoError(t, err)
	require.NotContains(t, out, "<script>")
	require.Contains(t, out, "&lt;script&gt;")
	require.Contains(t, out, `title="&#34;quoted&#34;"`)
}

func TestHTML_InvalidTag(t *testing.T) {
	tests := []node.Node{
		node.Container("div onclick"),
		node.Container(""),
		node.Container("p", node.WithAttr("on click", "x")),
	}
	for _, n := range tests {
		_, err := HTMLString(n)
		require.True(t, errors.Is(err, ErrInvalidTag), "tag %q: %v", n.Tag, err)
	}

	_, err := HTMLString(node.Node{Kind: "table"})
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestHTML_VoidElement(t *testing.T) {
	out, err := HTMLString(node.Container("br"))
	require.NoError(t, err)
	require.Equal(t, "<br>", out)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDocument_WriteError(t *testing.T) {
	err := Document(failingWriter{}, node.Document{Body: fixture()})
	require.EqualError(t, err, "disk full")
}

func TestDocument(t *testing.T) {
	doc := node.Document{
		Head: node.Head{
			Title: "Home | Another C Library",
			Meta: []node.Meta{
				{Name: "description", Content: "C algorithms"},
				{Property: "og:type", Content: "website"},
			},
			Links:  []node.HeadLink{{Rel: "stylesheet", Href: "/assets/index.css"}},
			JSONLD: `{"name":"</script>"}`,
		},
		Body: fixture(),
	}

	out, err := DocumentBytes(doc)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("<!DOCTYPE html>\n<html lang=\"en\">")))
	require.NotContains(t, string(out), `"</script>"`)

	d := parse(t, string(out))
	require.Equal(t, "Home | Another C Library", d.Find("title").Text())
	content, _ := d.Find(`meta[name="description"]`).Attr("content")
	require.Equal(t, "C algorithms", content)
	content, _ = d.Find(`meta[property="og:type"]`).Attr("content")
	require.Equal(t, "website", content)
	require.Equal(t, 1, d.Find(`link[rel="stylesheet"]`).Length())
	require.Equal(t, 1, d.Find("body div.Flex").Length())
}

func TestDocument_Deterministic(t *testing.T) {
	doc := node.Document{Lang: "en", Head: node.Head{Title: "x"}, Body: fixture()}
	a, err := DocumentBytes(doc)
	require.NoError(t, err)
	b, err := DocumentBytes(doc)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestMarkdown(t *testing.T) {
	out := MarkdownString(fixture())

	want := "## Goals \\& \\<stuff\\>\n\n" +
		"### `ac_` library\n\n" +
		"1. first\n2. second\n3. third\n\n" +
		"[Get Started](/docs/) [eBook](/ebook/)\n\n" +
		"Some \\*text\\* here.\n"
	require.Equal(t, want, out)
}

func TestMarkdown_ParsesAsOrderedList(t *testing.T) {
	src := []byte(MarkdownString(fixture()))
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	var lists []*ast.List
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if l, ok := n.(*ast.List); ok && entering {
			lists = append(lists, l)
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	require.Len(t, lists, 1)
	require.True(t, lists[0].IsOrdered())
	require.Equal(t, 3, lists[0].ChildCount())

	var html bytes.Buffer
	require.NoError(t, goldmark.Convert(src, &html))
	require.Contains(t, html.String(), `<a href="/docs/">Get Started</a>`)
	require.Contains(t, html.String(), "<code>ac_</code>")
}

// convertMarkdown renders n as Markdown and converts that back to HTML with
// goldmark.
func convertMarkdown(t *testing.T, n node.Node) *goquery.Document {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, goldmark.Convert([]byte(MarkdownString(n)), &out))
	return parse(t, out.String())
}

func TestMarkdown_TextStaysText(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"ordered marker", "1. not a list"},
		{"paren marker", "2) not a list"},
		{"heading marker", "# not a heading"},
		{"bullet dash", "- not a bullet"},
		{"bullet plus", "+ not a bullet"},
		{"quote", "> not a quote"},
		{"raw html", "use <b>bold</b>"},
		{"entity", "AT&amp;T & co"},
		{"setext", "==="},
		{"fence", "~~~"},
		{"newline heading", "first line\n# second line"},
		{"emphasis", "*not* _emphasis_"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := node.Container("div", node.Children(
				node.Container("p", node.Children(node.Text(tt.text))),
			))
			doc := convertMarkdown(t, n)

			for _, sel := range []string{"ol", "ul", "h1", "h2", "blockquote", "b", "em", "pre"} {
				require.Zero(t, doc.Find(sel).Length(), "unexpected <%s> for %q", sel, tt.text)
			}

			htmlOut, err := HTMLString(n)
			require.NoError(t, err)
			want := strings.Join(strings.Fields(parse(t, htmlOut).Find("p").Text()), " ")
			require.Equal(t, want, doc.Find("p").Text())
		})
	}
}

func TestMarkdown_HeadingAndListItemText(t *testing.T) {
	n := node.Container("div", node.Children(
		node.Container("h2", node.Children(node.Text("Issue #"))),
		node.List(true, node.Children(node.Text("- nested?"), node.Text("3. nested?"))),
	))
	doc := convertMarkdown(t, n)

	require.Equal(t, "Issue #", doc.Find("h2").Text())
	items := doc.Find("ol > li")
	require.Equal(t, 2, items.Length())
	require.Equal(t, "- nested?", items.Eq(0).Text())
	require.Equal(t, "3. nested?", items.Eq(1).Text())
	require.Zero(t, doc.Find("li ul, li ol").Length())
}

func TestMarkdown_LinkDestination(t *testing.T) {
	tests := []struct {
		href string
		raw  string
	}{
		{"/docs/", "[x](/docs/)"},
		{"/a b(c)", "[x](</a b(c)>)"},
		{"/x<y>", `[x](</x\<y\>>)`},
	}
	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			n := node.Container("p", node.Children(node.Link(tt.href, node.Children(node.Text("x")))))
			require.Equal(t, tt.raw+"\n", MarkdownString(n))

			a := convertMarkdown(t, n).Find("a")
			require.Equal(t, 1, a.Length())
			require.Equal(t, "x", a.Text())
			href, err := url.PathUnescape(a.AttrOr("href", ""))
			require.NoError(t, err)
			require.Equal(t, tt.href, href)
		})
	}
}

func TestMarkdown_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, node.Container("div")))
	require.Empty(t, buf.String())
}
