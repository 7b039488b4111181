package http

import (
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/derive"
)

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	records, err := s.store.ListGoals(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List goals failed", "user_id", userID, "error", err)
		storeError(w, err)
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusNotFound, "no records found for the user")
		return
	}

	records = derive.SortBy(records, derive.GoalFields, sortStateFromQuery(r))
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var g core.SavingGoal
	if err := decodeJSON(r, &g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	g.ID = ""

	if err := g.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	g = derive.InitGoal(g)
	if err := s.store.CreateGoal(r.Context(), &g); err != nil {
		slog.ErrorContext(r.Context(), "Create goal failed", "error", err)
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var g core.SavingGoal
	if err := decodeJSON(r, &g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	g.ID = r.PathValue("id")

	if err := g.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.store.UpdateGoal(r.Context(), g); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteGoal(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// handleContribute applies a contribution to a goal and persists the result.
// Contributions of zero or less leave the goal unchanged but still succeed.
func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := s.store.GetGoal(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}

	updated := derive.Contribute(g, body.Amount)
	if updated.RemainingAmount != g.RemainingAmount {
		updated.CurrentAmount += body.Amount
		if err := s.store.UpdateGoal(r.Context(), updated); err != nil {
			slog.ErrorContext(r.Context(), "Persist contribution failed", "id", id, "error", err)
			storeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, updated)
}
