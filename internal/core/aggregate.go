// Package core holds the expense domain model, the fixed taxonomy and the
// pure aggregation functions derived views are computed from.
//
// Aggregation deliberately sums amounts across currencies as if they were
// numerically equivalent. That mirrors the recorded behavior of the tracker:
// totals are relative travel spending, not converted money. Callers that need
// honest per-currency figures must filter before summing.
package core

import "sort"

// AllDates is the date-filter sentinel meaning "no filter" (full history).
const AllDates = ""

// CategoryTotals groups expenses by category id and sums their amounts.
// Categories with a zero total are dropped. Known categories come first in
// taxonomy order; unrecognized ids follow in first-seen order with the
// neutral fallback presentation.
func CategoryTotals(expenses []Expense) []CategoryData {
	if len(expenses) == 0 {
		return nil
	}

	totals := make(map[string]float64, len(Categories))
	var extras []string
	for _, e := range expenses {
		if _, seen := totals[e.Category]; !seen && !isKnownCategory(e.Category) {
			extras = append(extras, e.Category)
		}
		totals[e.Category] += e.Amount
	}

	out := make([]CategoryData, 0, len(totals))
	for _, c := range Categories {
		if v := totals[c.ID]; v != 0 {
			out = append(out, CategoryData{Name: c.Name, Value: v, Color: c.Color})
		}
	}
	for _, id := range extras {
		if v := totals[id]; v != 0 {
			c := CategoryByID(id)
			out = append(out, CategoryData{Name: c.Name, Value: v, Color: c.Color})
		}
	}
	return out
}

// DailyTotals sums expenses per exact calendar date, ascending. Dates use
// DateLayout, so lexical order is calendar order.
func DailyTotals(expenses []Expense) []DailyData {
	if len(expenses) == 0 {
		return nil
	}

	sorted := make([]Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	var out []DailyData
	for _, e := range sorted {
		if n := len(out); n > 0 && out[n-1].Date == e.Date {
			out[n-1].Amount += e.Amount
			continue
		}
		out = append(out, DailyData{Date: e.Date, Amount: e.Amount})
	}
	return out
}

// FilterByDate returns the subset whose Date equals date exactly.
// The AllDates sentinel returns the input unchanged.
func FilterByDate(expenses []Expense, date string) []Expense {
	if date == AllDates {
		return expenses
	}
	var out []Expense
	for _, e := range expenses {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// Sum totals the amounts of the given expenses (mixed currencies included,
// see the package note).
func Sum(expenses []Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}
