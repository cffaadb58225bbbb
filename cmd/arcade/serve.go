package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pm-arcade/internal/platform/tui"
	"github.com/vovakirdan/pm-arcade/internal/storage"
)

var (
	flagServeAddr    string
	flagServeHostKey string
	flagServeIdle    time.Duration
	flagServeAPI     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the PM arcade over SSH",
	Long: `Host the arcade for a team: every SSH login lands in the game menu
with its own session of Sprint Runner, Scope Creep Survivor, The Decipher
or Blackjack.

Everyone shares one score database, so history and best values are common
to all players. Remote sessions are silent.

The host key is read from --host-key, or created under ~/.arcade/host_key
on first start. --api also serves the score history as JSON, the same
endpoints as 'arcade api'.

Examples:
  arcade serve
  arcade serve --addr :2222 --idle 10m
  arcade serve --db /srv/arcade/scores.db --api :8080`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", ":23234", "SSH listen address")
	serveCmd.Flags().StringVar(&flagServeHostKey, "host-key", "", "SSH host key file (created when missing)")
	serveCmd.Flags().DurationVar(&flagServeIdle, "idle", 30*time.Minute, "disconnect sessions idle this long")
	serveCmd.Flags().StringVar(&flagServeAPI, "api", "", "also serve the score API on this address")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr).WithPrefix("arcade-ssh")

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagServeAddr,
		HostKeyPath: flagServeHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: flagServeIdle,
		TickRate:    flagFPS,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating SSH server: %v\n", err)
		os.Exit(1)
	}

	if flagServeAPI != "" {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		apiLogger := logger.WithPrefix("arcade-api")
		httpServer := newAPIServer(store, flagServeAPI, apiLogger)
		go func() {
			apiLogger.Info("serving scores", "address", flagServeAPI)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				apiLogger.Error("score API stopped", "err", err)
			}
		}()
		defer httpServer.Close()
	}

	fmt.Printf("PM arcade is open on %s. Players join with: ssh -p %s <host>\n",
		flagServeAddr, port(flagServeAddr))

	// Blocks until interrupted.
	if err := server.ListenAndServe(); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}

// port extracts the port from a host:port address for the join hint.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
