package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/brennanma/restrack/internal/paths"
	"github.com/brennanma/restrack/internal/rest"
	"github.com/brennanma/restrack/internal/sqlite"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the record API",
		Long:  "Open the record store and serve the hypermedia JSON API over HTTP.",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	configDir := paths.ResolveConfigDir(flags.configDir)
	cfg, err := loadConfig(configDir)
	if err != nil {
		return exitError(cmd, exitUserError, fmt.Sprintf("load config: %s", err))
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store, err := sqlite.Open(cfg, log)
	if err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("open store: %s", err))
	}
	defer store.Close()

	srv := rest.NewServer(cfg, store, log)
	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info("serving", "listen", cfg.Listen, "base_uri", cfg.BaseURI)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return exitError(cmd, exitSysError, fmt.Sprintf("serve: %s", err))
	}
	return nil
}
