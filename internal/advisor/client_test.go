package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"viaggio/internal/core"
)

func someExpenses() []core.Expense {
	return []core.Expense{
		{ID: "1", Amount: 1200, Currency: "TWD", Category: "transport", Date: "2023-10-01", Description: "High-speed rail ticket"},
		{ID: "2", Amount: 350, Currency: "TWD", Category: "food", Date: "2023-10-01", Description: "Railway bento"},
	}
}

// geminiStub answers like the generateContent endpoint, with the analysis
// JSON as the candidate text.
func geminiStub(t *testing.T, calls *int64, candidateText string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)

		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") == "" {
			t.Error("missing api key header")
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.GenerationConfig.ResponseMIMEType != "application/json" {
			t.Errorf("response mime type = %q", req.GenerationConfig.ResponseMIMEType)
		}
		if req.GenerationConfig.ResponseSchema == nil {
			t.Error("missing response schema")
		}

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": candidateText}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestAnalyzeEmptyListShortCircuits(t *testing.T) {
	var calls int64
	srv := geminiStub(t, &calls, "{}", http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "test-model", "key")
	got := c.Analyze(context.Background(), nil, "TWD")

	want := OnboardingResult()
	if got.Summary != want.Summary || got.BudgetStatus != core.BudgetGood || len(got.Advice) != 1 {
		t.Fatalf("unexpected onboarding result: %+v", got)
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Fatal("empty input must not contact the service")
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	var calls int64
	answer := `{"summary":"Mostly transport.","advice":["a","b","c"],"budgetStatus":"warning"}`
	srv := geminiStub(t, &calls, answer, http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "test-model", "key")
	got := c.Analyze(context.Background(), someExpenses(), "TWD")

	if got.Summary != "Mostly transport." {
		t.Fatalf("summary = %q", got.Summary)
	}
	if len(got.Advice) != 3 || got.BudgetStatus != core.BudgetWarning {
		t.Fatalf("unexpected result: %+v", got)
	}
	if atomic.LoadInt64(&calls) != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
}

func TestAnalyzeFallbacks(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		status int
	}{
		{"server error", "", http.StatusInternalServerError},
		{"malformed json", "not-json at all", http.StatusOK},
		{"empty text", "", http.StatusOK},
		{"invalid status value", `{"summary":"s","advice":[],"budgetStatus":"fine"}`, http.StatusOK},
		{"missing summary", `{"summary":"","advice":[],"budgetStatus":"good"}`, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int64
			srv := geminiStub(t, &calls, tc.text, tc.status)
			defer srv.Close()

			c := NewClient(srv.URL, "test-model", "key")
			got := c.Analyze(context.Background(), someExpenses(), "TWD")
			want := FallbackResult()
			if got.Summary != want.Summary || got.BudgetStatus != want.BudgetStatus {
				t.Fatalf("expected fallback, got %+v", got)
			}
		})
	}
}

func TestFallbackResultShape(t *testing.T) {
	r := FallbackResult()
	if r.BudgetStatus != core.BudgetWarning {
		t.Fatalf("fallback status = %q", r.BudgetStatus)
	}
	if len(r.Advice) != 2 {
		t.Fatalf("fallback advice = %v", r.Advice)
	}
}

func TestAnalyzeWithoutAPIKey(t *testing.T) {
	var calls int64
	srv := geminiStub(t, &calls, "{}", http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "test-model", "")
	got := c.Analyze(context.Background(), someExpenses(), "TWD")
	if got.BudgetStatus != core.BudgetWarning {
		t.Fatalf("missing key must take the fallback path: %+v", got)
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Fatal("missing key must not produce a request")
	}
}

func TestAnalyzeUnreachableEndpoint(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "test-model", "key")
	got := c.Analyze(context.Background(), someExpenses(), "TWD")
	if got.BudgetStatus != core.BudgetWarning {
		t.Fatalf("network failure must take the fallback path: %+v", got)
	}
}

func TestBuildPromptEmbedsEveryExpense(t *testing.T) {
	prompt := BuildPrompt(someExpenses(), "TWD")
	for _, want := range []string{
		"- 2023-10-01: transport (High-speed rail ticket) - 1200 TWD",
		"- 2023-10-01: food (Railway bento) - 350 TWD",
		`"good", "warning" or "critical"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
