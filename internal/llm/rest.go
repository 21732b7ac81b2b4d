package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/portfolio-drafter/internal/fetch"
)

// maxErrorBody limits how much of an error response is kept in APIError.
const maxErrorBody = 512

// GenerateRequest is the generateContent request envelope.
type GenerateRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

// Content is one conversation turn.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is a text fragment of a turn.
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig carries sampling parameters.
type GenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

// GenerateResponse is the generateContent response envelope.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one generated alternative.
type Candidate struct {
	Content      *Content `json:"content"`
	FinishReason string   `json:"finishReason,omitempty"`
}

// NewGenerateRequest builds a single user turn carrying prompt.
func NewGenerateRequest(prompt string, temperature float64) *GenerateRequest {
	return &GenerateRequest{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: GenerationConfig{Temperature: temperature},
	}
}

// FirstText returns the text of the first part of the first candidate.
func (r *GenerateResponse) FirstText() (string, error) {
	if len(r.Candidates) == 0 {
		return "", ErrNoContent
	}
	content := r.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0].Text == "" {
		return "", ErrNoContent
	}
	return content.Parts[0].Text, nil
}

// RESTClient implements Client by posting the generateContent envelope directly.
type RESTClient struct {
	apiKey string
	config *Config
	opts   *fetch.Options
}

// NewRESTClient creates a REST client. httpClient may be nil.
func NewRESTClient(config *Config, apiKey string, httpClient *http.Client) (*RESTClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	opts := fetch.DefaultOptions()
	opts.Client = httpClient

	return &RESTClient{
		apiKey: apiKey,
		config: config,
		opts:   opts,
	}, nil
}

// GenerateContent sends one generateContent request and returns the first candidate's text.
func (c *RESTClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	result, err := fetch.PostJSON(ctx, c.endpointURL(modelName), NewGenerateRequest(prompt, c.config.Temperature), c.opts)
	if err != nil {
		return "", err
	}

	if !result.OK() {
		return "", &APIError{
			StatusCode: result.StatusCode,
			Body:       truncate(strings.TrimSpace(string(result.Body)), maxErrorBody),
		}
	}

	var envelope GenerateResponse
	if err := json.Unmarshal(result.Body, &envelope); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return envelope.FirstText()
}

// GetModel returns the model name for a tier
func (c *RESTClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *RESTClient) Close() error {
	return nil
}

func (c *RESTClient) endpointURL(model string) string {
	base := strings.TrimRight(c.config.Endpoint, "/")
	if base == "" {
		base = DefaultEndpoint
	}
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		base, url.PathEscape(model), url.QueryEscape(c.apiKey))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
