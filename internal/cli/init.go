package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/brennanma/restrack/internal/paths"
	"github.com/brennanma/restrack/internal/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize restrack storage",
		Long:  "Create configuration and data directories, write a default config.yaml,\nand initialize the SQLite record store.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir := paths.ResolveConfigDir(flags.configDir)

	if err := ensureConfigDir(configDir); err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("create config directory: %s", err))
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("write config: %s", err))
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return exitError(cmd, exitUserError, fmt.Sprintf("load config: %s", err))
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store, err := sqlite.Open(cfg, log)
	if err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("initialize storage: %s", err))
	}
	if err := store.Close(); err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("finalize storage: %s", err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Restrack initialized successfully")
	return nil
}
