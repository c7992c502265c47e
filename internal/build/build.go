// Package build exports the site as static files.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anotherclibrary/acsite/assets"
	"github.com/anotherclibrary/acsite/internal/seo"
	"github.com/anotherclibrary/acsite/internal/server"
	"github.com/anotherclibrary/acsite/pkg/codec"
	"github.com/anotherclibrary/acsite/pkg/logging"
	"github.com/anotherclibrary/acsite/pkg/node"
	"github.com/anotherclibrary/acsite/pkg/style"
)

// Exported file names.
const (
	FileHTML     = "index.html"
	FileMarkdown = "index.md"
	FileRobots   = "robots.txt"
	FileSitemap  = "sitemap.xml"
)

// TreeFile returns the file name of the tree encoded with the named codec.
func TreeFile(codecName string) string {
	return "tree." + codecName
}

// Options configures an export.
type Options struct {
	OutDir   string
	Document node.Document
	Meta     *seo.Injector
	Codecs   *codec.Registry
	Logger   logging.Logger
	// Concurrency bounds parallel writes; 0 means one writer per file.
	Concurrency int
}

// Result lists what was written.
type Result struct {
	Files    []string // relative to OutDir, sorted
	Duration time.Duration
}

// Export renders every representation of the document and writes them under
// OutDir. Files are written concurrently; the first error cancels the rest.
func Export(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}
	if opts.Codecs == nil {
		opts.Codecs = codec.DefaultRegistry
	}
	if opts.Meta == nil {
		opts.Meta = seo.New(seo.Site{})
	}

	snaps, err := server.Render(opts.Document, opts.Codecs)
	if err != nil {
		return nil, err
	}
	sitemap, err := opts.Meta.Sitemap(server.PathIndex)
	if err != nil {
		return nil, err
	}

	files := map[string][]byte{
		FileHTML:     snaps.HTML.Body,
		FileMarkdown: snaps.Markdown.Body,
		FileRobots:   opts.Meta.Robots(),
		FileSitemap:  sitemap,
		filepath.Join("assets", assets.StylesheetName): assets.Stylesheet(style.Index()),
	}
	for name, snap := range snaps.Trees {
		files[TreeFile(name)] = snap.Body
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for _, name := range names {
		data := files[name]
		path := filepath.Join(opts.OutDir, name)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := writeFile(path, data); err != nil {
				return err
			}
			opts.Logger.Debug("wrote file", logging.String("path", path), logging.Int("bytes", len(data)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("export %s: %w", opts.OutDir, err)
	}

	res := &Result{Files: names, Duration: time.Since(start)}
	opts.Logger.Info("site exported",
		logging.String("out", opts.OutDir),
		logging.Int("files", len(names)),
		logging.Duration("duration", res.Duration),
	)
	return res, nil
}

// writeFile writes data atomically through a temporary file in the same
// directory.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
