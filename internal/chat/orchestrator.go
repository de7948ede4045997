// Package chat orchestrates the full query pipeline: classification,
// matching, response assembly, AI generation, and transcript persistence.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/campushq/campus-assistant/internal/ai"
	"github.com/campushq/campus-assistant/internal/assemble"
	"github.com/campushq/campus-assistant/internal/campuserr"
	"github.com/campushq/campus-assistant/internal/contextual"
	"github.com/campushq/campus-assistant/internal/match"
	"github.com/campushq/campus-assistant/internal/observability"
	"github.com/campushq/campus-assistant/internal/store"
)

// MaxMessageLength caps accepted chat messages.
const MaxMessageLength = 1000

// maxContextRecords caps how many matched records per category are serialized
// into the generation context.
const maxContextRecords = 5

// Result is the complete answer to one chat message.
type Result struct {
	Structured     *assemble.StructuredResponse `json:"structured"`
	AIAnswer       string                       `json:"aiAnswer"`
	ConversationID string                       `json:"conversationId,omitempty"`
}

// Options tunes the orchestrator.
type Options struct {
	// MaxConcurrentMatchers bounds parallel category matching, default 3.
	MaxConcurrentMatchers int
	// SkipTranscript disables conversation persistence.
	SkipTranscript bool
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	store     store.Store
	retriever *contextual.Retriever
	generator ai.Generator // nil means rule-based answers only
	log       *observability.Logger
	opts      Options

	classifier *match.Classifier
	matchers   map[store.Category]*match.Matcher
}

// NewOrchestrator creates an orchestrator over the given collaborators. The
// generator may be nil, in which case every answer comes from the rule-based
// fallback.
func NewOrchestrator(s store.Store, retriever *contextual.Retriever, generator ai.Generator, log *observability.Logger, opts Options) *Orchestrator {
	if opts.MaxConcurrentMatchers <= 0 {
		opts.MaxConcurrentMatchers = 3
	}
	if log == nil {
		log = observability.DefaultLogger()
	}

	matchers := make(map[store.Category]*match.Matcher, len(store.AllCategories))
	for _, cat := range store.AllCategories {
		matchers[cat] = match.ForCategory(cat)
	}

	return &Orchestrator{
		store:      s,
		retriever:  retriever,
		generator:  generator,
		log:        log,
		opts:       opts,
		classifier: match.NewClassifier(),
		matchers:   matchers,
	}
}

// Ask answers one chat message. Validation failures return a
// campuserr.ValidationError; a store failure during matching fails the
// request. AI generation and transcript persistence never fail the request:
// generation degrades to the rule-based fallback and a failed transcript
// write is only logged.
func (o *Orchestrator) Ask(ctx context.Context, message, requesterID string) (*Result, error) {
	start := time.Now()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, campuserr.NewValidation("message is required")
	}
	if len(message) > MaxMessageLength {
		return nil, campuserr.NewValidation("message exceeds %d characters", MaxMessageLength)
	}

	log := o.log.WithContext(ctx).WithOperation("chat")

	keywords := match.ExtractKeywords(message)
	categories := o.classifier.Classify(keywords)
	log.Debug().
		Str("message", message).
		Strs("keywords", keywords).
		Int("categories", len(categories)).
		Msg("classified query")

	results, err := o.matchCategories(ctx, message, categories)
	if err != nil {
		return nil, err
	}

	structured := assemble.Assemble(message, results, categories)

	answer := o.generateAnswer(ctx, message, results, log)

	result := &Result{Structured: structured, AIAnswer: answer}

	if !o.opts.SkipTranscript {
		convID, err := o.store.AppendConversation(ctx, &store.Conversation{
			UserMessage: message,
			Response:    structured,
			AIResponse:  answer,
			RequesterID: requesterID,
		})
		if err != nil {
			// Transcript loss must not fail an otherwise good answer.
			log.Warn().Err(err).Msg("failed to persist conversation")
		} else {
			result.ConversationID = convID
		}
	}

	log.Info().
		Int("total_results", structured.TotalResults).
		Dur("duration", time.Since(start)).
		Msg("answered chat message")

	return result, nil
}

// matchCategories runs the classified categories' matchers in parallel, each
// over a fresh snapshot of its category.
func (o *Orchestrator) matchCategories(ctx context.Context, message string, categories []store.Category) (map[store.Category][]match.ScoredRecord, error) {
	results := make(map[store.Category][]match.ScoredRecord, len(categories))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.MaxConcurrentMatchers)

	for _, cat := range categories {
		g.Go(func() error {
			records, err := o.store.ListAll(gctx, cat)
			if err != nil {
				return fmt.Errorf("%w: list %s: %v", campuserr.ErrStoreUnavailable, cat, err)
			}

			matched := o.matchers[cat].Match(message, records)
			o.log.WithContext(gctx).WithCategory(string(cat)).Debug().
				Int("records", len(records)).
				Int("matched", len(matched)).
				Msg("category matched")

			mu.Lock()
			results[cat] = matched
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// generateAnswer produces the conversational answer, grounding it in the
// matched records and degrading to the rule-based fallback when no generator
// is configured or generation fails.
func (o *Orchestrator) generateAnswer(ctx context.Context, message string, results map[store.Category][]match.ScoredRecord, log *observability.Logger) string {
	if o.generator == nil {
		return ai.FallbackAnswer(message)
	}

	contextText := o.groundingContext(ctx, message, results, log)

	answer, err := o.generator.Generate(ctx, message, contextText)
	if err != nil {
		log.Warn().Err(err).Msg("generation failed, using fallback answer")
		return ai.FallbackAnswer(message)
	}
	return answer
}

// groundingContext serializes the matched records, capped per category, for
// the generator. Under the broad strategy the retriever supplies the context
// instead. An empty string means the model answers from general knowledge.
func (o *Orchestrator) groundingContext(ctx context.Context, message string, results map[store.Category][]match.ScoredRecord, log *observability.Logger) string {
	if o.retriever != nil && o.retriever.Broad() {
		retrieved, err := o.retriever.Retrieve(ctx, message)
		if err != nil {
			log.Warn().Err(err).Msg("context retrieval failed, generating ungrounded")
			return ""
		}
		return ai.SerializeContext(retrieved)
	}

	grounding := make(map[store.Category][]store.Record, len(results))
	for cat, matched := range results {
		if len(matched) == 0 {
			continue
		}
		n := len(matched)
		if n > maxContextRecords {
			n = maxContextRecords
		}
		records := make([]store.Record, 0, n)
		for _, m := range matched[:n] {
			records = append(records, m.Record)
		}
		grounding[cat] = records
	}
	return ai.SerializeContext(grounding)
}
