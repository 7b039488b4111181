package http

import (
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/derive"
)

// chartPayload bundles the four derived chart series.
type chartPayload struct {
	Today    []derive.TimePoint  `json:"today"`
	Month    []derive.DayPoint   `json:"month"`
	Lifetime []derive.DatePoint  `json:"lifetime"`
	Yearly   []derive.MonthPoint `json:"yearly"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	if totals, found := s.dashboardCache.Get(userID); found {
		slog.DebugContext(r.Context(), "Dashboard cache hit", "user_id", userID)
		writeJSON(w, http.StatusOK, totals)
		return
	}

	transactions, err := s.store.ListTransactions(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard load failed", "user_id", userID, "error", err)
		storeError(w, err)
		return
	}

	totals := derive.DashboardTotals(transactions)
	s.dashboardCache.Set(userID, totals)
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	if payload, found := s.chartsCache.Get(userID); found {
		slog.DebugContext(r.Context(), "Charts cache hit", "user_id", userID)
		writeJSON(w, http.StatusOK, payload)
		return
	}

	transactions, err := s.store.ListTransactions(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Charts load failed", "user_id", userID, "error", err)
		storeError(w, err)
		return
	}

	now := s.now()
	payload := chartPayload{
		Today:    derive.TodaySeries(transactions, now),
		Month:    derive.MonthBreakdown(transactions, now),
		Lifetime: derive.LifetimeSeries(transactions),
		Yearly:   derive.YearlySeries(transactions, now),
	}
	s.chartsCache.Set(userID, payload)
	writeJSON(w, http.StatusOK, payload)
}

// handleNotifications derives the due-soon set from the current debt
// snapshot, carrying read flags over from the previous derivation.
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	debts, err := s.store.ListDebts(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Notifications load failed", "user_id", userID, "error", err)
		storeError(w, err)
		return
	}

	s.notifMu.Lock()
	derived := derive.DueSoonNotifications(debts, s.now(), s.notifications[userID])
	s.notifications[userID] = derived
	s.notifMu.Unlock()

	if derived == nil {
		derived = []core.Notification{}
	}
	writeJSON(w, http.StatusOK, derived)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	id := r.PathValue("id")

	s.notifMu.Lock()
	defer s.notifMu.Unlock()

	current := s.notifications[userID]
	found := false
	for _, n := range current {
		if n.ID == id {
			found = true
			break
		}
	}
	if !found {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}

	s.notifications[userID] = derive.MarkNotificationRead(current, id)
	writeJSON(w, http.StatusOK, s.notifications[userID])
}
