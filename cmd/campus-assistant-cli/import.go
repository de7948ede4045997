// Package main: bulk record import from JSON files.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/campushq/campus-assistant/internal/store"
)

// newImportCmd creates the import subcommand.
func newImportCmd() *cobra.Command {
	var (
		category string
		file     string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import records into a category from a JSON file",
		Long: `Import reads a JSON array of records and inserts them into the given
category. Each record is validated against the category's field rules before
insertion; the first invalid record aborts the import.

Use --dry-run to validate the file without writing anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			cat, err := store.ParseCategory(category)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			var records []store.Record
			if err := json.Unmarshal(data, &records); err != nil {
				return fmt.Errorf("parse import file: %w", err)
			}
			if len(records) == 0 {
				return fmt.Errorf("import file contains no records")
			}

			for i, rec := range records {
				if err := store.ValidateWrite(cat, rec); err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
			}

			if dryRun {
				if outputJSON {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(map[string]interface{}{
						"category": cat,
						"valid":    len(records),
						"dryRun":   true,
					})
				}
				fmt.Printf("✓ %d records valid for %s (dry run, nothing written)\n", len(records), cat)
				return nil
			}

			s, err := openStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			var bar *progressbar.ProgressBar
			if !outputJSON {
				bar = progressbar.NewOptions(len(records),
					progressbar.OptionSetDescription(fmt.Sprintf("importing %s", cat)),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionOnCompletion(func() {
						fmt.Fprint(os.Stderr, "\n")
					}),
				)
			}

			imported := 0
			for i, rec := range records {
				if _, err := s.Add(ctx, cat, rec); err != nil {
					return fmt.Errorf("import record %d: %w", i, err)
				}
				imported++
				if bar != nil {
					_ = bar.Add(1)
				}
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"category": cat,
					"imported": imported,
				})
			}

			fmt.Printf("✓ Imported %d records into %s\n", imported, cat)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "target category (required)")
	cmd.Flags().StringVar(&file, "file", "", "path to JSON array of records (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate without writing")

	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
