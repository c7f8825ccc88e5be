package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"viaggio/internal/core"
	applog "viaggio/internal/log"
	"viaggio/internal/store"
)

// createExpenseRequest is the add-expense boundary shape. Amount and
// description are validated here so no partial record ever reaches the store.
type createExpenseRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type expenseListResponse struct {
	Expenses []core.Expense `json:"expenses"`
	Total    float64        `json:"total"`
	Count    int            `json:"count"`
	Date     string         `json:"date,omitempty"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Currency = strings.TrimSpace(req.Currency)
	if req.Currency == "" {
		req.Currency = s.baseCurrency
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		req.Category = core.OtherCategoryID
	}

	e := store.NewExpense(req.Amount, req.Currency, req.Category,
		strings.TrimSpace(req.Date), strings.TrimSpace(req.Description))
	if err := e.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.Add(r.Context(), e); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to save expense",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpCreate,
			applog.FieldExpenseID, e.ID,
			applog.FieldAmount, e.Amount,
			applog.FieldCategory, e.Category)
		writeError(w, http.StatusInternalServerError, "could not save expense")
		return
	}

	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date != core.AllDates {
		if _, err := core.ParseDate(date); err != nil {
			writeError(w, http.StatusBadRequest, "invalid date filter, want YYYY-MM-DD")
			return
		}
	}

	filtered := core.FilterByDate(s.store.List(), date)
	if filtered == nil {
		filtered = []core.Expense{}
	}

	writeJSON(w, http.StatusOK, expenseListResponse{
		Expenses: filtered,
		Total:    core.Sum(filtered),
		Count:    len(filtered),
		Date:     date,
	})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense id")
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to delete expense",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpDelete,
			applog.FieldExpenseID, id)
		writeError(w, http.StatusInternalServerError, "could not delete expense")
		return
	}

	// Deleting an id that is already gone is a success, not an error.
	w.WriteHeader(http.StatusNoContent)
}
