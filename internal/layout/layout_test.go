package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anotherclibrary/acsite/internal/nav"
	"github.com/anotherclibrary/acsite/pkg/node"
)

func TestShell_Wrap(t *testing.T) {
	sh := New(Options{SiteTitle: "Another C Library", Copyright: "© Another C Library"}, nil)
	body := sh.Wrap(node.Container("p", node.Children(node.Text("hello"))))

	require.Len(t, body.Children, 3)
	header, main, footer := body.Children[0], body.Children[1], body.Children[2]

	require.Equal(t, "header", header.Tag)
	require.Equal(t, "main", main.Tag)
	require.Equal(t, "footer", footer.Tag)

	home := header.Children[0]
	require.Equal(t, node.KindLink, home.Kind)
	require.Equal(t, "/", home.Href)
	require.Equal(t, "Another C Library", node.TextContent(home))

	links := node.FindAll(header.Children[1], node.ByKind(node.KindLink))
	require.Len(t, links, 2)
	require.Equal(t, "/docs/", links[0].Href)
	require.Equal(t, "/ebook/", links[1].Href)

	require.Len(t, main.Children, 1)
	require.Equal(t, "hello", node.TextContent(main))
	require.Equal(t, "© Another C Library", node.TextContent(footer))
}

func TestShell_UsesLinker(t *testing.T) {
	sh := New(Options{SiteTitle: "ACL"}, nav.Resolver{PathPrefix: "/acl"})
	body := sh.Wrap()

	for _, l := range node.FindAll(body, node.ByKind(node.KindLink)) {
		require.Contains(t, l.Href, "/acl/")
	}
}
