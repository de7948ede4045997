// Package ai provides natural-language answer generation with model fallback.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/campushq/campus-assistant/internal/campuserr"
)

// Generator defines the interface for answer generation.
type Generator interface {
	// Generate produces a conversational answer for the query. A non-empty
	// context string switches the client into grounded mode.
	Generate(ctx context.Context, query, contextText string) (string, error)
}

// Client generates answers using the Gemini generateContent API, trying a
// list of models in order until one succeeds.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	models     []string
	timeout    time.Duration
}

// Config holds AI client configuration.
type Config struct {
	APIKey  string
	Models  []string // Tried in order; defaults to the known-good cascade.
	BaseURL string   // Default: https://generativelanguage.googleapis.com/v1beta
	Timeout time.Duration
}

// DefaultModels is the ordered model cascade tried on each request.
var DefaultModels = []string{
	"gemini-2.0-flash",
	"gemini-1.5-flash",
	"gemini-1.5-flash-latest",
}

// NewClient creates a new generation client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	models := cfg.Models
	if len(models) == 0 {
		models = DefaultModels
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		models:     models,
		timeout:    timeout,
	}, nil
}

// generateRequest is the generateContent request payload.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// generateResponse is the generateContent response payload.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Generate produces an answer, trying each configured model in order. With a
// non-empty context it builds a grounded prompt at low temperature so the
// model sticks to the supplied records; otherwise it answers as a general
// campus assistant. It returns an error wrapping campuserr.ErrAIGeneration
// only after every model has failed.
func (c *Client) Generate(ctx context.Context, query, contextText string) (string, error) {
	prompt := BuildPrompt(query, contextText)

	cfg := &generationConfig{Temperature: 0.7, MaxOutputTokens: 500}
	if contextText != "" {
		cfg.Temperature = 0.3
	}

	var lastErr error
	for _, model := range c.models {
		text, err := c.generateWith(ctx, model, prompt, cfg)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	return "", fmt.Errorf("%w: all models failed: %v", campuserr.ErrAIGeneration, lastErr)
}

// generateWith issues one generateContent call against a single model with a
// per-attempt timeout.
func (c *Client) generateWith(ctx context.Context, model, prompt string, cfg *generationConfig) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqBody := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(attemptCtx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp generateResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil {
			return "", fmt.Errorf("model %s: %s (status: %s)", model, errResp.Error.Message, errResp.Error.Status)
		}
		return "", fmt.Errorf("model %s: status %d, body: %s", model, resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model %s: empty response", model)
	}

	text := strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("model %s: blank answer", model)
	}

	return text, nil
}

// Models returns the configured model cascade.
func (c *Client) Models() []string {
	return c.models
}

// MockGenerator provides a canned generator for testing. When Err is set
// every call fails with it. The last query and context passed to Generate
// are recorded for assertions.
type MockGenerator struct {
	Answer string
	Err    error

	Calls       int
	LastQuery   string
	LastContext string
}

// Generate returns the canned answer or error.
func (m *MockGenerator) Generate(ctx context.Context, query, contextText string) (string, error) {
	m.Calls++
	m.LastQuery = query
	m.LastContext = contextText
	if m.Err != nil {
		return "", m.Err
	}
	if m.Answer != "" {
		return m.Answer, nil
	}
	return "mock answer for: " + query, nil
}

// Ensure implementations satisfy interface.
var (
	_ Generator = (*Client)(nil)
	_ Generator = (*MockGenerator)(nil)
)
