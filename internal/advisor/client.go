// Package advisor asks the Gemini generateContent endpoint for a
// natural-language spending analysis constrained to a fixed JSON schema.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"viaggio/internal/core"
)

// DefaultEndpoint is the Generative Language API base URL.
const DefaultEndpoint = "https://generativelanguage.googleapis.com"

// DefaultModel matches the model the tracker has always used for analysis.
const DefaultModel = "gemini-2.5-flash"

type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

// schema is the subset of the OpenAPI schema object the endpoint accepts.
type schema struct {
	Type       string             `json:"type"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Items      *schema            `json:"items,omitempty"`
	Enum       []string           `json:"enum,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// analysisSchema constrains the response to the AnalysisResult shape.
var analysisSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"summary": {Type: "STRING"},
		"advice":  {Type: "ARRAY", Items: &schema{Type: "STRING"}},
		"budgetStatus": {
			Type: "STRING",
			Enum: []string{string(core.BudgetGood), string(core.BudgetWarning), string(core.BudgetCritical)},
		},
	},
	Required: []string{"summary", "advice", "budgetStatus"},
}

func NewClient(endpoint, model, apiKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Analyze produces an analysis for the given expenses. It never returns an
// error: an empty list short-circuits to the onboarding result without any
// network call, and every failure path (missing key, transport error, bad
// status, empty or malformed response) degrades to the fixed fallback.
// One request, no retry, no streaming.
func (c *Client) Analyze(ctx context.Context, expenses []core.Expense, baseCurrency string) core.AnalysisResult {
	if len(expenses) == 0 {
		return OnboardingResult()
	}
	if c.apiKey == "" {
		slog.WarnContext(ctx, "Analysis skipped, API key not configured")
		return FallbackResult()
	}

	text, err := c.generate(ctx, BuildPrompt(expenses, baseCurrency))
	if err != nil {
		slog.ErrorContext(ctx, "Expense analysis failed",
			"error", err, "model", c.model, "expenses", len(expenses))
		return FallbackResult()
	}

	var result core.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		slog.ErrorContext(ctx, "Analysis response is not valid JSON",
			"error", err, "model", c.model)
		return FallbackResult()
	}
	if err := validateResult(result); err != nil {
		slog.ErrorContext(ctx, "Analysis response has an invalid shape",
			"error", err, "model", c.model)
		return FallbackResult()
	}

	return result
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   analysisSchema,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("model endpoint status %d: %s", resp.StatusCode, body)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no candidates in response")
	}
	text := genResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", errors.New("empty response text")
	}
	return text, nil
}

func validateResult(r core.AnalysisResult) error {
	if r.Summary == "" {
		return errors.New("empty summary")
	}
	if !r.BudgetStatus.IsValid() {
		return fmt.Errorf("unknown budget status %q", r.BudgetStatus)
	}
	return nil
}
