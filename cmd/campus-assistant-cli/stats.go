// Package main: record count reporting.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/campushq/campus-assistant/internal/store"
)

// newStatsCmd creates the stats subcommand.
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-category record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			s, err := openStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			stats, err := s.Stats(ctx)
			if err != nil {
				return fmt.Errorf("stats failed: %w", err)
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			ui := NewUI(false, false)
			defer ui.Close()

			total := 0
			rows := make([][]string, 0, len(store.AllCategories))
			for _, cat := range store.AllCategories {
				rows = append(rows, []string{string(cat), strconv.Itoa(stats[cat])})
				total += stats[cat]
			}
			rows = append(rows, []string{"total", strconv.Itoa(total)})

			ui.Table([]string{"Category", "Records"}, rows)
			return nil
		},
	}
}
