// Package cli provides the compta command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"compta/internal/config"
	"compta/internal/ledger/sqlite"
)

var debug bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "compta",
	Short: "Single-user bookkeeping ledger",
	Long: `compta keeps a local SQLite ledger of income and expenses for a
small business, with exact decimal amounts.

It supports:
- Recording and listing transactions
- Importing bank CSV exports through mapping profiles
- Period totals, per-category breakdowns and monthly balances
- Reconciling ledger rows against bank statement lines
- CSV exports and zip backups

Example:
  compta add --date 2024-01-05 --label "Prestation" --amount 100.00 --category 1
  compta report --from 2024-01-01 --to 2024-01-31`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := config.Load().LogLevel
		if debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(settingsCmd)
}

// openStore loads and validates the configuration, then opens the ledger
// database. It exits the process on failure.
func openStore() (*config.Config, *sqlite.Repository) {
	cfg := config.Load()
	exitOnError(cfg.Validate(), "invalid configuration")

	store, err := sqlite.New(cfg.DBPath)
	exitOnError(err, "failed to open ledger database")
	return cfg, store
}

// exitOnError logs the error and exits with a non-zero status.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
