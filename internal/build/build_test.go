package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/anotherclibrary/acsite/internal/seo"
	"github.com/anotherclibrary/acsite/internal/site"
	"github.com/anotherclibrary/acsite/pkg/codec"
	"github.com/anotherclibrary/acsite/pkg/node"
)

func TestExport(t *testing.T) {
	out := t.TempDir()
	res, err := Export(context.Background(), Options{
		OutDir:   out,
		Document: site.Index(),
		Meta:     seo.New(seo.Site{Title: site.Title, BaseURL: "https://acl.example.com"}),
	})
	require.NoError(t, err)

	want := []string{
		filepath.Join("assets", "index.css"),
		FileHTML,
		FileMarkdown,
		FileRobots,
		FileSitemap,
		"tree.json",
		"tree.msgpack",
		"tree.yaml",
	}
	require.ElementsMatch(t, want, res.Files)

	for _, name := range want {
		info, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err, name)
		require.NotZero(t, info.Size(), name)
	}

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	for _, e := range entries {
		require.NotEqual(t, byte('.'), e.Name()[0], "temp file left behind: %s", e.Name())
	}
}

func TestExport_TreesDecode(t *testing.T) {
	out := t.TempDir()
	_, err := Export(context.Background(), Options{OutDir: out, Document: site.Index(), Concurrency: 2})
	require.NoError(t, err)

	for _, name := range codec.DefaultRegistry.Names() {
		data, err := os.ReadFile(filepath.Join(out, TreeFile(name)))
		require.NoError(t, err)

		c, err := codec.DefaultRegistry.Get(name)
		require.NoError(t, err)
		doc, err := c.Decode(data)
		require.NoError(t, err, name)
		require.True(t, node.EqualDocuments(site.Index(), *doc), name)
	}
}

func TestExport_MarkdownHasFiveGoals(t *testing.T) {
	out := t.TempDir()
	_, err := Export(context.Background(), Options{OutDir: out, Document: site.Index()})
	require.NoError(t, err)

	src, err := os.ReadFile(filepath.Join(out, FileMarkdown))
	require.NoError(t, err)

	root := goldmark.New().Parser().Parse(text.NewReader(src))
	var lists []*ast.List
	require.NoError(t, ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if l, ok := n.(*ast.List); ok && entering && l.IsOrdered() {
			lists = append(lists, l)
		}
		return ast.WalkContinue, nil
	}))
	require.Len(t, lists, 1)
	require.Equal(t, 5, lists[0].ChildCount())

	var html bytes.Buffer
	require.NoError(t, goldmark.Convert(src, &html))
	require.Contains(t, html.String(), "<code>ac_</code>")
}

func TestExport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Export(ctx, Options{OutDir: t.TempDir(), Document: site.Index()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExport_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := Export(context.Background(), Options{OutDir: filepath.Join(file, "out"), Document: site.Index()})
	require.Error(t, err)
}
