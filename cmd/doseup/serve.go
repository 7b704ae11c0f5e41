package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"doseup-parent/internal/router"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer rt.close()

			a, err := rt.app()
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         rt.cfg.Addr(),
				Handler:      router.NewRouter(router.Options{App: a}),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			ctx, stop := signalContext()
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				rt.log.Info("starting server", map[string]any{
					"addr":     srv.Addr,
					"env":      rt.cfg.Env,
					"notifier": rt.cfg.Notifier,
					"postgres": rt.db != nil,
				})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					rt.log.Error("server error", map[string]any{"error": err})
				}
				return err
			case <-ctx.Done():
			}

			rt.log.Info("shutting down", nil)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
