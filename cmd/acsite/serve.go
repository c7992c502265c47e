package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/anotherclibrary/acsite/internal/server"
	"github.com/anotherclibrary/acsite/pkg/logging"
	"github.com/anotherclibrary/acsite/pkg/metrics"
	"github.com/anotherclibrary/acsite/pkg/shutdown"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	srv, err := server.New(server.Options{
		Config:   a.cfg.Server,
		Document: page(a.cfg.Site),
		Meta:     injector(a.cfg.Site),
		Logger:   a.logger,
		Metrics:  metrics.NewMetrics("acsite"),
		Version:  version,
	})
	if err != nil {
		return err
	}

	hooks := shutdown.NewHandler(a.cfg.Server.ShutdownTimeout, a.logger)
	hooks.Register("live", shutdown.PriorityLive, srv.Live().Close)
	hooks.Register("http", shutdown.PriorityHTTP, srv.Shutdown)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := srv.ListenAndServe()
		if err != nil {
			a.logger.Error("server failed", logging.Err(err))
		}
		return err
	})
	g.Go(func() error {
		if err := hooks.Wait(gctx); err != nil {
			return err
		}
		a.logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
