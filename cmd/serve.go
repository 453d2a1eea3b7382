package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/eccentric-easel/easel/internal/handlers"
	"github.com/eccentric-easel/easel/internal/pipeline"
	"github.com/eccentric-easel/easel/internal/review"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		port     string
		location string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API for adding items",
		Long: `Starts an HTTP server that accepts base64 encoded photos on POST /add_item.

Drafts are accepted without review since there is no operator at the
terminal. Configuration and credentials are read once at startup.`,
		Example: `  # Start server on default port 8000
  easel serve

  # Start server on custom port
  easel serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(root.configPath, location, review.AutoAccept{})
			if err != nil {
				return errors.New(pipeline.Describe(err))
			}
			handler := handlers.New(p)

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Easel API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8000", "Port to listen on")
	cmd.Flags().StringVar(&location, "location", "", "Location id to stock items at (defaults to target_location_id)")

	return cmd
}
