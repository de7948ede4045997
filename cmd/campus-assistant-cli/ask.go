// Package main: one-shot chat queries from the terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/campushq/campus-assistant/internal/ai"
	"github.com/campushq/campus-assistant/internal/assemble"
	"github.com/campushq/campus-assistant/internal/chat"
	"github.com/campushq/campus-assistant/internal/contextual"
)

// newAskCmd creates the ask subcommand.
func newAskCmd() *cobra.Command {
	var (
		user           string
		skipTranscript bool
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the campus assistant a question",
		Long: `Ask runs one question through the full chat pipeline: classification,
matching, response assembly, and answer generation. The structured sections
and the conversational answer are both printed.

AI generation uses the configured key (GEMINI_API_KEY); without one the
rule-based fallback answers.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			question := strings.Join(args, " ")

			s, err := openStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			var generator ai.Generator
			if cfg.AI.Enabled {
				client, err := ai.NewClient(ai.Config{
					APIKey:  cfg.AI.APIKey,
					BaseURL: cfg.AI.BaseURL,
					Models:  cfg.AI.Models,
					Timeout: cfg.AI.Timeout,
				})
				if err == nil {
					generator = client
				}
			}

			retriever := contextual.NewRetriever(s, logger, contextual.Options{
				PerCategoryLimit: cfg.Retrieval.PerCategoryLimit,
				MaxKeywords:      cfg.Retrieval.MaxKeywords,
				MaxConcurrent:    cfg.Retrieval.MaxConcurrent,
				Broad:            cfg.Retrieval.Strategy == "broad",
			})

			orchestrator := chat.NewOrchestrator(s, retriever, generator, logger, chat.Options{
				MaxConcurrentMatchers: cfg.Matching.MaxConcurrentMatchers,
				SkipTranscript:        skipTranscript,
			})

			var spin *spinner.Spinner
			if !outputJSON {
				spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				spin.Suffix = " thinking..."
				spin.Writer = os.Stderr
				spin.Start()
			}

			result, err := orchestrator.Ask(ctx, question, user)
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return fmt.Errorf("ask failed: %w", err)
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printResult(question, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "cli", "requester id recorded in the transcript")
	cmd.Flags().BoolVar(&skipTranscript, "no-transcript", false, "do not persist the conversation")

	return cmd
}

// printResult renders the structured sections and the conversational answer.
func printResult(question string, result *chat.Result) {
	color.New(color.FgWhite, color.Bold).Printf("Q: %s\n\n", question)

	for _, section := range result.Structured.Sections {
		color.New(color.FgCyan, color.Bold).Printf("%s\n", section.Title)
		if section.Message != "" {
			fmt.Printf("  %s\n", section.Message)
		}
		for _, item := range section.Items {
			fmt.Printf("  • %s\n", itemLine(item))
		}
		fmt.Println()
	}

	color.New(color.FgGreen).Printf("%s\n", result.AIAnswer)
	if result.ConversationID != "" {
		color.New(color.Faint).Printf("\nconversation: %s\n", result.ConversationID)
	}
}

// itemLine renders one display item compactly.
func itemLine(item interface{}) string {
	switch v := item.(type) {
	case assemble.EventItem:
		return joinNonEmpty(" | ", v.Title, v.Date, v.Venue)
	case assemble.ClubItem:
		return joinNonEmpty(" | ", v.Name, v.MeetingSchedule, v.ContactEmail)
	case assemble.FacilityItem:
		return joinNonEmpty(" | ", v.Name, v.Location, v.Hours)
	case assemble.FAQItem:
		return fmt.Sprintf("%s: %s", v.Question, v.Answer)
	case assemble.AcademicItem:
		return joinNonEmpty(" | ", v.Title, v.Content)
	case assemble.CanteenDisplayItem:
		price := ""
		if v.Price != nil {
			price = fmt.Sprintf("Rs. %v", v.Price)
		}
		return joinNonEmpty(" | ", v.Name, price, v.Availability)
	default:
		data, _ := json.Marshal(item)
		return string(data)
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
