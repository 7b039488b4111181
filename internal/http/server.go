// Package http exposes the JSON API: CRUD for the four record collections,
// the derived views (budget status, dashboard, charts, notifications), debt
// payment previews, goal contributions, and CSV import/export.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/derive"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

type Server struct {
	http.Server
	store        storage.Store
	transactions *services.TransactionService
	rateLimiter  *rateLimiter

	// Derived payloads are cached per user and invalidated on writes.
	chartsCache    *lruCache[chartPayload]
	dashboardCache *lruCache[derive.Totals]

	// Notification read-state is process-local; the set itself is derived
	// fresh from the debt snapshot on every request.
	notifMu       sync.Mutex
	notifications map[string][]core.Notification

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once

	// now is swappable so derived views can be pinned in tests.
	now func() time.Time
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, store storage.Store, transactions *services.TransactionService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		store:            store,
		transactions:     transactions,
		rateLimiter:      newRateLimiter(),
		chartsCache:      newLRUCache[chartPayload](100, 5*time.Minute),
		dashboardCache:   newLRUCache[derive.Totals](100, 5*time.Minute),
		notifications:    make(map[string][]core.Notification),
		stopCacheCleanup: make(chan struct{}),
		now:              time.Now,
	}

	go s.startCacheCleanup()

	// Transactions
	mux.HandleFunc("GET /financial-records/getAllByUserID/{userId}", s.withSecurityHeaders(s.handleListTransactions))
	mux.HandleFunc("POST /financial-records", s.withSecurityHeaders(s.handleCreateTransaction))
	mux.HandleFunc("PUT /financial-records/{id}", s.withSecurityHeaders(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /financial-records/{id}", s.withSecurityHeaders(s.handleDeleteTransaction))
	mux.HandleFunc("GET /financial-records/export/{userId}", s.withSecurityHeaders(s.handleExportCSV))
	mux.HandleFunc("POST /financial-records/import/{userId}", s.withSecurityHeaders(s.handleImportCSV))

	// Budgets
	mux.HandleFunc("GET /budget-records/getAllByUserID/{userId}", s.withSecurityHeaders(s.handleListBudgets))
	mux.HandleFunc("POST /budget-records", s.withSecurityHeaders(s.handleCreateBudget))
	mux.HandleFunc("PUT /budget-records/{id}", s.withSecurityHeaders(s.handleUpdateBudget))
	mux.HandleFunc("DELETE /budget-records/{id}", s.withSecurityHeaders(s.handleDeleteBudget))
	mux.HandleFunc("GET /budget-records/status/{userId}", s.withSecurityHeaders(s.handleBudgetStatus))

	// Saving goals
	mux.HandleFunc("GET /saving-records/getAllByUserID/{userId}", s.withSecurityHeaders(s.handleListGoals))
	mux.HandleFunc("POST /saving-records", s.withSecurityHeaders(s.handleCreateGoal))
	mux.HandleFunc("PUT /saving-records/{id}", s.withSecurityHeaders(s.handleUpdateGoal))
	mux.HandleFunc("PATCH /saving-records/{id}", s.withSecurityHeaders(s.handleUpdateGoal))
	mux.HandleFunc("DELETE /saving-records/{id}", s.withSecurityHeaders(s.handleDeleteGoal))
	mux.HandleFunc("POST /saving-records/{id}/contribute", s.withSecurityHeaders(s.handleContribute))

	// Debts
	mux.HandleFunc("GET /debt-records/getAllByUserID/{userId}", s.withSecurityHeaders(s.handleListDebts))
	mux.HandleFunc("POST /debt-records", s.withSecurityHeaders(s.handleCreateDebt))
	mux.HandleFunc("PUT /debt-records/{id}", s.withSecurityHeaders(s.handleUpdateDebt))
	mux.HandleFunc("DELETE /debt-records/{id}", s.withSecurityHeaders(s.handleDeleteDebt))
	mux.HandleFunc("POST /debt-records/{id}/preview-payment", s.withSecurityHeaders(s.handlePreviewPayment))

	// Derived views
	mux.HandleFunc("GET /dashboard/{userId}", s.withSecurityHeaders(s.handleDashboard))
	mux.HandleFunc("GET /charts/{userId}", s.withSecurityHeaders(s.handleCharts))
	mux.HandleFunc("GET /notifications/{userId}", s.withSecurityHeaders(s.handleNotifications))
	mux.HandleFunc("POST /notifications/{userId}/read/{id}", s.withSecurityHeaders(s.handleMarkNotificationRead))

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	return s
}

// startCacheCleanup runs periodic cleanup for the derived-view caches.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			chartsCleaned := s.chartsCache.CleanExpired()
			dashCleaned := s.dashboardCache.CleanExpired()
			if chartsCleaned > 0 || dashCleaned > 0 {
				slog.Debug("Cache cleanup completed",
					"charts_entries_removed", chartsCleaned,
					"dashboard_entries_removed", dashCleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// invalidateDerived drops cached derived payloads for a user after any
// transaction write.
func (s *Server) invalidateDerived(userID string) {
	s.chartsCache.Delete(userID)
	s.dashboardCache.Delete(userID)
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := clientAddr(r)

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Rate limit mutating requests only
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if !s.rateLimiter.allow(clientIP) {
				slog.WarnContext(ctx, "Rate limit exceeded",
					"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
