package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used everywhere an expense date
// appears: storage, filtering and trend bucketing.
const DateLayout = "2006-01-02"

const (
	BudgetGood     BudgetStatus = "good"
	BudgetWarning  BudgetStatus = "warning"
	BudgetCritical BudgetStatus = "critical"
)

type (
	BudgetStatus string

	// Expense is one recorded spending event. Records are immutable once
	// created: they are appended and deleted, never updated in place.
	Expense struct {
		ID          string  `json:"id"`
		Amount      float64 `json:"amount"`
		Currency    string  `json:"currency"`
		Category    string  `json:"category"`
		Date        string  `json:"date"`
		Description string  `json:"description"`
		Timestamp   int64   `json:"timestamp"` // creation instant, ms epoch; display ordering only
	}

	// AnalysisResult is the advisor's answer for a set of expenses.
	// It is ephemeral: produced fresh per invocation, never persisted.
	AnalysisResult struct {
		Summary      string       `json:"summary"`
		Advice       []string     `json:"advice"`
		BudgetStatus BudgetStatus `json:"budgetStatus"`
	}

	// CategoryData is a derived per-category total for chart display.
	CategoryData struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
		Color string  `json:"color"`
	}

	// DailyData is a derived per-day total for trend display.
	DailyData struct {
		Date   string  `json:"date"`
		Amount float64 `json:"amount"`
	}
)

var (
	ErrEmptyID          = errors.New("empty id")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyCurrency    = errors.New("empty currency")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
)

func (s BudgetStatus) IsValid() bool {
	switch s {
	case BudgetGood, BudgetWarning, BudgetCritical:
		return true
	default:
		return false
	}
}

// ParseDate parses a calendar date in DateLayout, rejecting partial or
// time-bearing values.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyID
	}
	if e.Amount <= 0 || math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Currency) == "" {
		return ErrEmptyCurrency
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if _, err := ParseDate(e.Date); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}
