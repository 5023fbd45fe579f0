package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlayout/internal/server"
)

func newServeCmd() *cobra.Command {
	src := &source{}
	hidden := &hiddenFlags{}
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview a form document over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := loggerFor(cmd)
			store, err := src.store()
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           server.NewHandler(store,
					server.WithLogger(logger),
					server.WithHiddenFields(hidden.fields()...),
				),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			serverErrors := make(chan error, 1)
			go func() {
				logger.Info("serving forms", "addr", srv.Addr, "file", src.file, "forms", store.Names())
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Error("graceful shutdown failed", "error", err)
					return srv.Close()
				}
				return nil
			}
		},
	}
	src.bind(cmd)
	cmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to listen on")
	hidden.bind(cmd)
	return cmd
}
