package http

import (
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/derive"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	records, err := s.store.ListBudgets(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List budgets failed", "user_id", userID, "error", err)
		storeError(w, err)
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusNotFound, "no records found for the user")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var b core.BudgetRecord
	if err := decodeJSON(r, &b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	b.ID = ""

	if err := b.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.store.CreateBudget(r.Context(), &b); err != nil {
		slog.ErrorContext(r.Context(), "Create budget failed", "error", err)
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var b core.BudgetRecord
	if err := decodeJSON(r, &b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	b.ID = r.PathValue("id")

	if err := b.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.store.UpdateBudget(r.Context(), b); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteBudget(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// handleBudgetStatus returns the derived budget table: actual spending and
// status recomputed from the full transaction snapshot on every request.
func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	budgets, err := s.store.ListBudgets(r.Context(), userID)
	if err != nil {
		storeError(w, err)
		return
	}
	transactions, err := s.store.ListTransactions(r.Context(), userID)
	if err != nil {
		storeError(w, err)
		return
	}

	rows := derive.BudgetStatuses(budgets, transactions)
	rows = derive.SortBy(rows, derive.BudgetFields, sortStateFromQuery(r))
	if rows == nil {
		rows = []derive.BudgetStatus{}
	}
	writeJSON(w, http.StatusOK, rows)
}
