// Package main: conversation retention tooling.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// newPurgeCmd creates the purge subcommand.
func newPurgeCmd() *cobra.Command {
	var (
		retentionDays int
		yes           bool
	)

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete conversation transcripts older than the retention period",
		Long: `Purge removes conversation transcripts older than the retention period
(default 30 days). Campus records are never touched.

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			if retentionDays <= 0 {
				retentionDays = 30
			}
			cutoff := time.Now().AddDate(0, 0, -retentionDays)

			if !yes && !outputJSON {
				fmt.Printf("Delete all conversations older than %s? [y/N] ", cutoff.Format("2006-01-02"))
				var answer string
				fmt.Scanln(&answer)
				if answer != "y" && answer != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			s, err := openStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			purged, err := s.PurgeConversations(ctx, cutoff)
			if err != nil {
				return fmt.Errorf("purge failed: %w", err)
			}

			logger.Info().
				Int64("purged", purged).
				Str("cutoff", cutoff.Format(time.RFC3339)).
				Msg("purged conversations")

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"purged": purged,
					"cutoff": cutoff.Format(time.RFC3339),
				})
			}

			fmt.Printf("✓ Purged %d conversations older than %s\n", purged, cutoff.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().IntVar(&retentionDays, "retention-days", 30, "retention period in days")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")

	return cmd
}
