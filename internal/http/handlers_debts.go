package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/derive"
)

// debtView is a debt record plus its derived total due.
type debtView struct {
	core.DebtRecord
	TotalDue float64 `json:"totalDue"`
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	records, err := s.store.ListDebts(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List debts failed", "user_id", userID, "error", err)
		storeError(w, err)
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusNotFound, "no records found for the user")
		return
	}

	records = derive.SortBy(records, derive.DebtFields, sortStateFromQuery(r))
	views := make([]debtView, len(records))
	for i, d := range records {
		views[i] = debtView{DebtRecord: d, TotalDue: derive.TotalDue(d)}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var d core.DebtRecord
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d.ID = ""

	if err := d.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.store.CreateDebt(r.Context(), &d); err != nil {
		slog.ErrorContext(r.Context(), "Create debt failed", "error", err)
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, debtView{DebtRecord: d, TotalDue: derive.TotalDue(d)})
}

func (s *Server) handleUpdateDebt(w http.ResponseWriter, r *http.Request) {
	var d core.DebtRecord
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d.ID = r.PathValue("id")

	if err := d.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.store.UpdateDebt(r.Context(), d); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debtView{DebtRecord: d, TotalDue: derive.TotalDue(d)})
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteDebt(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// handlePreviewPayment simulates applying a payment against a debt. Nothing
// is persisted; the response carries the due amount that would remain.
func (s *Server) handlePreviewPayment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := s.store.GetDebt(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}

	remaining, err := derive.PreviewPayment(d, body.Amount)
	if errors.Is(err, derive.ErrOverpayment) {
		writeError(w, http.StatusUnprocessableEntity, "payment exceeds total due")
		return
	}
	if err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{
		"totalDue":  derive.TotalDue(d),
		"remaining": remaining,
	})
}
