package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/csvio"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	records, err := s.store.ListTransactions(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "user_id", userID, "error", err)
		storeError(w, err)
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusNotFound, "no records found for the user")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if err := decodeJSON(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t.ID = ""

	if err := s.transactions.Create(r.Context(), &t); err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Create transaction failed", "error", err)
		storeError(w, err)
		return
	}

	s.invalidateDerived(t.UserID)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if err := decodeJSON(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t.ID = r.PathValue("id")

	if err := s.transactions.Update(r.Context(), t); err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Update transaction failed", "id", t.ID, "error", err)
		storeError(w, err)
		return
	}

	s.invalidateDerived(t.UserID)
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Fetch first so the cache invalidation knows the owner.
	t, err := s.store.GetTransaction(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}

	if err := s.transactions.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete transaction failed", "id", id, "error", err)
		storeError(w, err)
		return
	}

	s.invalidateDerived(t.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	records, err := s.store.ListTransactions(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Export transactions failed", "user_id", userID, "error", err)
		storeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := csvio.Encode(w, records); err != nil {
		slog.ErrorContext(r.Context(), "CSV encode failed", "user_id", userID, "error", err)
	}
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	records, err := csvio.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid CSV: %v", err))
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusBadRequest, "no rows to import")
		return
	}

	// Validate everything before storing anything, so a bad row in the
	// middle of the file doesn't leave a partial import behind.
	for i := range records {
		records[i].UserID = userID
		if err := records[i].Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("row %d: %v", i+1, err))
			return
		}
	}

	for i := range records {
		if err := s.transactions.Create(r.Context(), &records[i]); err != nil {
			slog.ErrorContext(r.Context(), "Import row failed",
				"user_id", userID, "row", i+1, "error", err)
			writeError(w, http.StatusInternalServerError,
				fmt.Sprintf("import stopped at row %d", i+1))
			return
		}
	}

	s.invalidateDerived(userID)
	slog.InfoContext(r.Context(), "CSV import completed", "user_id", userID, "rows", len(records))
	writeJSON(w, http.StatusCreated, map[string]int{"imported": len(records)})
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrEmptyUserID,
		core.ErrEmptyCategory,
		core.ErrEmptyDescription,
		core.ErrEmptyGoalName,
		core.ErrInvalidAmount,
		core.ErrInvalidDate,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
