package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/config"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/metrics"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/server"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/store"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		dir, addr, redisAddr string
		ttl                  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve definitions, renderings and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs, err := config.LoadDir(dir)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := []server.Option{server.WithLogger(a.logger), server.WithMetrics(metrics.New())}
			if redisAddr != "" {
				rs := store.NewRedis(redisAddr, store.WithTTL(ttl))
				defer rs.Close()
				if err := rs.Ping(ctx); err != nil {
					return err
				}
				opts = append(opts, server.WithStore(rs))
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(defs, opts...).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errs := make(chan error, 1)
			go func() {
				a.logger.Info("serving", "addr", addr, "definitions", len(defs), "dir", dir)
				errs <- srv.ListenAndServe()
			}()

			select {
			case err := <-errs:
				return fmt.Errorf("server error: %w", err)
			case <-ctx.Done():
				a.logger.Info("shutting down")
			}

			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil {
				a.logger.Warn("graceful shutdown incomplete", "error", err)
				return srv.Close()
			}
			if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&dir, "dir", "definitions", "Directory of definition files")
	f.StringVar(&addr, "addr", ":8080", "Listen address")
	f.StringVar(&redisAddr, "redis", "", "Redis address for cached summaries (memory when empty)")
	f.DurationVar(&ttl, "ttl", 0, "Expiry of cached summaries in Redis, 0 keeps them")
	return cmd
}
