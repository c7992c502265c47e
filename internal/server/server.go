// Package server serves the landing page over HTTP: the HTML document, its
// Markdown export, the encoded content tree, a live tree stream and the
// operational endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/anotherclibrary/acsite/assets"
	"github.com/anotherclibrary/acsite/internal/config"
	"github.com/anotherclibrary/acsite/internal/seo"
	"github.com/anotherclibrary/acsite/pkg/codec"
	"github.com/anotherclibrary/acsite/pkg/health"
	"github.com/anotherclibrary/acsite/pkg/logging"
	"github.com/anotherclibrary/acsite/pkg/metrics"
	"github.com/anotherclibrary/acsite/pkg/node"
	"github.com/anotherclibrary/acsite/pkg/style"
)

// Route paths.
const (
	PathIndex    = "/"
	PathMarkdown = "/index.md"
	PathTree     = "/_tree"
	PathLive     = "/_live/websocket"
	PathAssets   = "/assets"
	PathHealth   = "/health"
	PathMetrics  = "/metrics"
	PathRobots   = "/robots.txt"
	PathSitemap  = "/sitemap.xml"
)

// Options configures a Server.
type Options struct {
	Config   config.ServerConfig
	Document node.Document
	Meta     *seo.Injector
	Codecs   *codec.Registry
	Logger   logging.Logger
	Metrics  *metrics.Metrics
	Version  string
}

// Server is the site HTTP server.
type Server struct {
	opts    Options
	snaps   *Snapshots
	css     Snapshot
	robots  Snapshot
	sitemap Snapshot
	live    *Hub
	health  *health.Checker
	router  chi.Router
	http    *http.Server
}

// New renders every representation of the document and builds the router.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewMetrics("acsite")
	}
	if opts.Codecs == nil {
		opts.Codecs = codec.DefaultRegistry
	}
	if opts.Meta == nil {
		opts.Meta = seo.New(seo.Site{})
	}

	timer := opts.Metrics.RenderDuration.Timer()
	snaps, err := Render(opts.Document, opts.Codecs)
	timer.Stop()
	if err != nil {
		return nil, err
	}

	sitemap, err := opts.Meta.Sitemap(PathIndex)
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:    opts,
		snaps:   snaps,
		css:     newSnapshot(assets.Stylesheet(style.Index()), "text/css; charset=utf-8"),
		robots:  newSnapshot(opts.Meta.Robots(), "text/plain; charset=utf-8"),
		sitemap: newSnapshot(sitemap, "application/xml; charset=utf-8"),
	}

	doc := opts.Document
	s.live = NewHub(func() node.Document { return doc }, HubOptions{
		OriginPatterns: opts.Config.AllowedOrigins,
		MaxConnections: opts.Config.MaxLiveConnections,
		Logger:         opts.Logger,
		Metrics:        opts.Metrics,
	})

	s.health = health.NewChecker(opts.Version)
	s.health.AddCriticalCheck("snapshot", func(ctx context.Context) error {
		if len(s.snaps.HTML.Body) == 0 {
			return errors.New("html snapshot is empty")
		}
		return nil
	}, time.Second)
	s.health.AddCheck("live", health.CapacityCheck("live connections", s.live.Count, opts.Config.MaxLiveConnections), time.Second)

	s.router = s.routes()
	s.http = &http.Server{
		Addr:         opts.Config.Addr,
		Handler:      s.router,
		ReadTimeout:  opts.Config.ReadTimeout,
		WriteTimeout: opts.Config.WriteTimeout,
	}
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logging.RequestLogger(s.opts.Logger))
	r.Use(SecureHeaders(DefaultSecureHeadersConfig()))
	r.Use(s.countRequests)

	r.Get(PathIndex, s.snapshotHandler(s.snaps.HTML))
	r.Get(PathMarkdown, s.snapshotHandler(s.snaps.Markdown))
	r.Get(PathTree, s.handleTree)
	r.Get(PathLive, s.live.ServeHTTP)

	r.Get(PathAssets+"/"+assets.StylesheetName, s.snapshotHandler(s.css))
	r.Handle(PathAssets+"/*", http.StripPrefix(PathAssets, assets.Handler()))

	r.Get(PathRobots, s.snapshotHandler(s.robots))
	r.Get(PathSitemap, s.snapshotHandler(s.sitemap))

	r.Method(http.MethodGet, PathHealth, s.health.Handler())
	r.Method(http.MethodGet, PathHealth+"/live", health.LivenessHandler())
	r.Method(http.MethodGet, PathMetrics, s.opts.Metrics.Handler())
	return r
}

// countRequests records one request per matched route pattern.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.opts.Metrics.RequestsTotal.Inc(route)
	})
}

func (s *Server) snapshotHandler(snap Snapshot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !serve(w, r, snap) {
			s.opts.Metrics.NotModifiedTotal.Inc()
		}
	}
}

// handleTree serves the encoded document. The format query parameter wins
// over the Accept header.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	c, err := s.opts.Codecs.Negotiate(r.Header.Get("Accept"), r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotAcceptable)
		return
	}
	snap, ok := s.snaps.Trees[c.Name()]
	if !ok {
		http.Error(w, fmt.Sprintf("no snapshot for %s", c.Name()), http.StatusNotAcceptable)
		return
	}
	s.snapshotHandler(snap)(w, r)
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Live returns the live connection hub.
func (s *Server) Live() *Hub {
	return s.live
}

// Snapshots returns the pre-rendered representations.
func (s *Server) Snapshots() *Snapshots {
	return s.snaps
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.opts.Logger.Info("server listening", logging.String("addr", ln.Addr().String()))
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address and serves.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.http.Addr, err)
	}
	return s.Serve(ln)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
