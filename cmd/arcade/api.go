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

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pm-arcade/internal/api"
	"github.com/vovakirdan/pm-arcade/internal/registry"
	"github.com/vovakirdan/pm-arcade/internal/storage"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve score history as JSON over HTTP",
	Long: `Start a read-only HTTP server exposing the score database.

Endpoints:
  GET /health
  GET /api/v1/games
  GET /api/v1/games/{id}
  GET /api/v1/games/{id}/scores?limit=10&order=top|recent
  GET /api/v1/games/{id}/best
  GET /api/v1/runs/{runID}

Examples:
  arcade api
  arcade api --addr :9090 --db ./scores.db`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address")
}

func runAPI(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr).WithPrefix("arcade-api")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	httpServer := newAPIServer(store, flagAPIAddr, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting API server", "address", flagAPIAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}

// newAPIServer builds the HTTP server for the read-only score API.
func newAPIServer(store *storage.Store, addr string, logger *log.Logger) *http.Server {
	srv := api.NewServer(store, api.Config{
		Games:    registry.List(),
		BestKeys: bestKeys,
		Logger:   logger,
	})
	return &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
