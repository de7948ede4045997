// Package main provides the Campus Assistant CLI entrypoint.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/campushq/campus-assistant/internal/config"
	"github.com/campushq/campus-assistant/internal/observability"
	"github.com/campushq/campus-assistant/internal/store"
)

var (
	// Global flags
	cfgFile    string
	outputJSON bool
	verbose    bool

	// Configuration and logger
	cfg    *config.Config
	logger *observability.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "campus-assistant-cli",
	Short: "Campus Assistant CLI for data management and queries",
	Long: `Campus Assistant CLI provides commands for managing campus data.

Use this tool to:
- Seed the store with sample campus data
- Import records from JSON files
- Ask questions against the chat pipeline
- Inspect per-category record counts
- Purge old conversation transcripts

All commands support --json for automation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logFormat := "console"
		if outputJSON {
			logFormat = "json"
		}

		level := cfg.Observability.LogLevel
		if !verbose && !outputJSON {
			// Keep interactive output clean unless asked for detail.
			level = "warn"
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       level,
			Format:      logFormat,
			ServiceName: "campus-assistant-cli",
		})

		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newPurgeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore connects to the configured database.
func openStore(ctx context.Context) (*store.SQLStore, error) {
	return store.Open(ctx, cfg.Database.Driver, cfg.DatabaseDSN(), store.OpenOptions{
		MaxOpenConns:    cfg.Database.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Database.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.Postgres.ConnMaxLifetime,
	})
}

// newVersionCmd creates the version subcommand.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("campus-assistant-cli v1.0.0")
		},
	}
}
