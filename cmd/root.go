// Package cmd implements the newschat command-line interface.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hojin-dev/newschat/internal/config"
	"github.com/hojin-dev/newschat/internal/log"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "newschat",
	Short: "Grounded conversational assistant for news and travel topics",
	Long: `newschat answers questions about a news keyword or a travel
destination, grounding every reply in a fetched article set or a
curated destination fact sheet.

Run "newschat serve" to expose the HTTP API, or "newschat ask" for a
one-shot grounded answer from the terminal.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig loads and validates configuration for a subcommand.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger honoring the --verbose flag.
func newLogger() log.Logger {
	cfg := log.Config{JSON: true}
	if verbose {
		cfg.Level = slog.LevelDebug
	}
	return log.New(cfg)
}
