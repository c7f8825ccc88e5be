package http

import (
	"net/http"
	"strings"

	"viaggio/internal/core"
)

// dashboardResponse carries everything the dashboard view renders: the
// filtered total and its category split, plus the per-day trend across the
// full history. The total sums raw amounts across currencies (see the core
// package note).
type dashboardResponse struct {
	Date       string              `json:"date,omitempty"`
	Total      float64             `json:"total"`
	ByCategory []core.CategoryData `json:"byCategory"`
	Daily      []core.DailyData    `json:"daily"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date != core.AllDates {
		if _, err := core.ParseDate(date); err != nil {
			writeError(w, http.StatusBadRequest, "invalid date filter, want YYYY-MM-DD")
			return
		}
	}

	snapshot := s.store.Snapshot()
	filtered := core.FilterByDate(snapshot, date)

	resp := dashboardResponse{
		Date:       date,
		Total:      core.Sum(filtered),
		ByCategory: core.CategoryTotals(filtered),
		Daily:      core.DailyTotals(snapshot),
	}
	if resp.ByCategory == nil {
		resp.ByCategory = []core.CategoryData{}
	}
	if resp.Daily == nil {
		resp.Daily = []core.DailyData{}
	}

	writeJSON(w, http.StatusOK, resp)
}
