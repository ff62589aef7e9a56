package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cartovote/vote-map/internal/adapter/httpserver"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve maps over HTTP",
		Long: `Serve starts an HTTP server exposing rendered maps at
GET /maps/{chamber}/{congress}/{session}/{roll}, plus /healthz, /readyz,
and /metrics. Fetched roll calls are cached, so repeated requests for
the same map do not hit the upstream feeds.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp("")
			if err != nil {
				return err
			}

			if addr == "" {
				addr = a.cfg.HTTPAddr
			}
			srv := httpserver.NewServer(addr, a.pipeline, a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			a.logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("http server shutdown error", "error", err)
			}
			a.logger.Info("shutdown complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default HTTP_ADDR or :8080)")

	return cmd
}
