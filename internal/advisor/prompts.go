package advisor

import (
	"fmt"
	"strconv"
	"strings"

	"viaggio/internal/core"
)

// PromptTemplate frames the analysis request. The model is told to answer in
// the constrained JSON shape; the response schema enforces it server-side.
const PromptTemplate = `You are a professional travel expense assistant. Analyze the following
spending records. The user's context is travel, so treat the amounts as
relative travel spending in %s terms (no currency conversion).

Spending records:
%s

Provide:
1. A short summary of spending habits (two sentences at most, friendly tone).
2. Exactly 3 concrete saving tips or spending observations
   (for example: "You are spending more on transport").
3. A budget status: "good", "warning" or "critical".

Respond only with JSON matching the requested schema.`

// BuildPrompt renders the prompt for a non-empty expense list, one line per
// record with date, category, description, amount and original currency.
func BuildPrompt(expenses []core.Expense, baseCurrency string) string {
	lines := make([]string, 0, len(expenses))
	for _, e := range expenses {
		lines = append(lines, fmt.Sprintf("- %s: %s (%s) - %s %s",
			e.Date, e.Category, e.Description,
			strconv.FormatFloat(e.Amount, 'f', -1, 64), e.Currency))
	}
	return fmt.Sprintf(PromptTemplate, baseCurrency, strings.Join(lines, "\n"))
}

// OnboardingResult is the fixed answer for an empty expense list. It is
// returned without contacting the model.
func OnboardingResult() core.AnalysisResult {
	return core.AnalysisResult{
		Summary:      "No expenses recorded yet. Add your first travel expense!",
		Advice:       []string{"Record an expense to get your first analysis."},
		BudgetStatus: core.BudgetGood,
	}
}

// FallbackResult is the fixed answer for any analysis failure: network
// errors, missing credentials, malformed or empty responses.
func FallbackResult() core.AnalysisResult {
	return core.AnalysisResult{
		Summary: "Temporarily unable to analyze your spending.",
		Advice: []string{
			"Check the API key configuration.",
			"Try again later.",
		},
		BudgetStatus: core.BudgetWarning,
	}
}
