package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/derive"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	srv := NewServer(":0", store, services.NewTransactionService(store, nil))
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
	})
	return srv, store
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doJSON(t, srv, http.MethodGet, path, nil)
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestListTransactionsEmptyIs404(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := doJSON(t, srv, http.MethodGet, "/financial-records/getAllByUserID/u1", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty list, got %d", rr.Code)
	}
}

func TestTransactionCRUD(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/financial-records", map[string]any{
		"userId":        "u1",
		"date":          "2025-03-10T00:00:00Z",
		"description":   "groceries",
		"amount":        200,
		"category":      "Food",
		"paymentMethod": "card",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", rr.Code, rr.Body.String())
	}
	var created core.Transaction
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	rr = doJSON(t, srv, http.MethodGet, "/financial-records/getAllByUserID/u1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list status=%d", rr.Code)
	}

	created.Amount = 250
	rr = doJSON(t, srv, http.MethodPut, "/financial-records/"+created.ID, created)
	if rr.Code != http.StatusOK {
		t.Fatalf("update status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, srv, http.MethodDelete, "/financial-records/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status=%d", rr.Code)
	}
	rr = doJSON(t, srv, http.MethodGet, "/financial-records/getAllByUserID/u1", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rr.Code)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/financial-records", map[string]any{
		"userId":   "u1",
		"date":     "2025-03-10T00:00:00Z",
		"amount":   10,
		"category": "Food",
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing description, got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/financial-records", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestBudgetStatusEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	b := core.BudgetRecord{UserID: "u1", Category: "Food", Budget: 150}
	if err := store.CreateBudget(ctx, &b); err != nil {
		t.Fatalf("seed budget: %v", err)
	}
	for _, tx := range []core.Transaction{
		{UserID: "u1", Date: time.Now(), Description: "salary", Amount: 1000, Category: "Salary"},
		{UserID: "u1", Date: time.Now(), Description: "shop", Amount: 200, Category: "Food"},
	} {
		tx := tx
		if err := store.CreateTransaction(ctx, &tx); err != nil {
			t.Fatalf("seed tx: %v", err)
		}
	}

	rr := doJSON(t, srv, http.MethodGet, "/budget-records/status/u1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	var rows []derive.BudgetStatus
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ActualSpending != 200 || rows[0].Difference != 50 {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
	if rows[0].Status != "Over budget by 50" {
		t.Fatalf("status = %q", rows[0].Status)
	}
}

func TestPreviewPayment(t *testing.T) {
	srv, store := newTestServer(t)

	d := core.DebtRecord{
		UserID:       "u1",
		Category:     "Loan",
		Amount:       1000,
		InterestRate: 10,
		DueDate:      time.Now().AddDate(0, 6, 0),
	}
	if err := store.CreateDebt(context.Background(), &d); err != nil {
		t.Fatalf("seed debt: %v", err)
	}

	// totalDue = 1100
	rr := doJSON(t, srv, http.MethodPost, "/debt-records/"+d.ID+"/preview-payment",
		map[string]float64{"amount": 300})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var resp map[string]float64
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["totalDue"] != 1100 || resp["remaining"] != 800 {
		t.Fatalf("unexpected response: %v", resp)
	}

	// Overpayment is rejected without changing anything.
	rr = doJSON(t, srv, http.MethodPost, "/debt-records/"+d.ID+"/preview-payment",
		map[string]float64{"amount": 2000})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for overpayment, got %d", rr.Code)
	}

	// Unknown debt is 404.
	rr = doJSON(t, srv, http.MethodPost, "/debt-records/missing/preview-payment",
		map[string]float64{"amount": 10})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestContributePersists(t *testing.T) {
	srv, store := newTestServer(t)

	// Create through the API so InitGoal runs.
	rr := doJSON(t, srv, http.MethodPost, "/saving-records", map[string]any{
		"userId":       "u1",
		"goalName":     "Vacation",
		"targetAmount": 1500,
		"deadline":     "2026-06-01T00:00:00Z",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", rr.Code, rr.Body.String())
	}
	var g core.SavingGoal
	if err := json.Unmarshal(rr.Body.Bytes(), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g.RemainingAmount != 1500 {
		t.Fatalf("remaining should start at target, got %v", g.RemainingAmount)
	}

	rr = doJSON(t, srv, http.MethodPost, "/saving-records/"+g.ID+"/contribute",
		map[string]float64{"amount": 400})
	if rr.Code != http.StatusOK {
		t.Fatalf("contribute status=%d", rr.Code)
	}

	stored, err := store.GetGoal(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("get goal: %v", err)
	}
	if stored.RemainingAmount != 1100 || stored.CurrentAmount != 400 {
		t.Fatalf("unexpected stored goal: %+v", stored)
	}

	// Non-positive contributions are accepted but change nothing.
	rr = doJSON(t, srv, http.MethodPost, "/saving-records/"+g.ID+"/contribute",
		map[string]float64{"amount": -5})
	if rr.Code != http.StatusOK {
		t.Fatalf("contribute status=%d", rr.Code)
	}
	stored, _ = store.GetGoal(context.Background(), g.ID)
	if stored.RemainingAmount != 1100 {
		t.Fatalf("negative contribution should be a no-op, got %+v", stored)
	}
}

func TestNotificationsFlow(t *testing.T) {
	srv, store := newTestServer(t)
	now := time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)
	srv.now = func() time.Time { return now }

	due := core.DebtRecord{
		UserID:       "u1",
		Category:     "Credit card",
		Amount:       500,
		InterestRate: 0,
		DueDate:      time.Date(2025, 7, 11, 23, 0, 0, 0, time.UTC), // tomorrow
	}
	notDue := core.DebtRecord{
		UserID:       "u1",
		Category:     "Mortgage",
		Amount:       90000,
		InterestRate: 2,
		DueDate:      time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range []core.DebtRecord{due, notDue} {
		d := d
		if err := store.CreateDebt(context.Background(), &d); err != nil {
			t.Fatalf("seed debt: %v", err)
		}
		if d.Category == "Credit card" {
			due = d
		}
	}

	rr := doJSON(t, srv, http.MethodGet, "/notifications/u1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	var list []core.Notification
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 notification, got %d: %+v", len(list), list)
	}
	n := list[0]
	if n.ID != "debt-"+due.ID {
		t.Errorf("id = %q, want debt-%s", n.ID, due.ID)
	}
	if n.Message != "Debt payment due for Credit card" {
		t.Errorf("message = %q", n.Message)
	}
	if n.Read {
		t.Error("new notification should be unread")
	}

	// Mark read, then re-derive: the flag must survive.
	rr = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/notifications/u1/read/%s", n.ID), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("mark read status=%d", rr.Code)
	}
	rr = doJSON(t, srv, http.MethodGet, "/notifications/u1", nil)
	list = nil
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 1 || !list[0].Read {
		t.Fatalf("read flag should survive recompute: %+v", list)
	}

	// Unknown notification id is 404.
	rr = doJSON(t, srv, http.MethodPost, "/notifications/u1/read/debt-nope", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	for _, tx := range []core.Transaction{
		{UserID: "u1", Date: time.Now(), Description: "pay", Amount: 3000, Category: "Salary"},
		{UserID: "u1", Date: time.Now(), Description: "rent", Amount: 900, Category: "Rent"},
	} {
		tx := tx
		if err := store.CreateTransaction(ctx, &tx); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	rr := doJSON(t, srv, http.MethodGet, "/dashboard/u1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	var totals derive.Totals
	if err := json.Unmarshal(rr.Body.Bytes(), &totals); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if totals.Income != 3000 || totals.Expenses != 900 || totals.Available != 2100 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestChartsCacheInvalidatedOnWrite(t *testing.T) {
	srv, _ := newTestServer(t)
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	srv.now = func() time.Time { return now }

	create := func(desc string, amount float64) {
		rr := doJSON(t, srv, http.MethodPost, "/financial-records", map[string]any{
			"userId":      "u1",
			"date":        now.Format(time.RFC3339),
			"description": desc,
			"amount":      amount,
			"category":    "Food",
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("create status=%d", rr.Code)
		}
	}

	create("first", 10)
	rr := doJSON(t, srv, http.MethodGet, "/charts/u1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("charts status=%d", rr.Code)
	}
	var payload chartPayload
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload.Today) != 1 {
		t.Fatalf("expected 1 today point, got %d", len(payload.Today))
	}
	if len(payload.Yearly) != 12 {
		t.Fatalf("expected 12 yearly buckets, got %d", len(payload.Yearly))
	}

	// A second write must evict the cached payload.
	create("second", 20)
	rr = doJSON(t, srv, http.MethodGet, "/charts/u1", nil)
	payload = chartPayload{}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload.Today) != 2 {
		t.Fatalf("expected fresh payload with 2 points, got %d", len(payload.Today))
	}
}

func TestCSVExportImportRoundTrip(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	tx := core.Transaction{
		UserID:      "u1",
		Date:        time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		Description: "weekly shop",
		Amount:      -84.2,
		Category:    "Food",
	}
	if err := store.CreateTransaction(ctx, &tx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rr := doJSON(t, srv, http.MethodGet, "/financial-records/export/u1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("export status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}

	// Import the exported file into another account.
	req := httptest.NewRequest(http.MethodPost, "/financial-records/import/u2", bytes.NewReader(rr.Body.Bytes()))
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("import status=%d body=%s", rec.Code, rec.Body.String())
	}

	imported, err := store.ListTransactions(ctx, "u2")
	if err != nil {
		t.Fatalf("list imported: %v", err)
	}
	if len(imported) != 1 || imported[0].Description != "weekly shop" || imported[0].Amount != -84.2 {
		t.Fatalf("unexpected imported records: %+v", imported)
	}
	if imported[0].ID == tx.ID {
		t.Fatal("imported record must get a fresh id")
	}
}

func TestImportRejectsBadCSV(t *testing.T) {
	srv, store := newTestServer(t)

	body := "date,description,amount,category,paymentMethod\n" +
		"2025-01-01,ok,10,Food,card\n" +
		"2025-01-02,,5,Food,card\n" // missing description
	req := httptest.NewRequest(http.MethodPost, "/financial-records/import/u1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	// Nothing from the file may have been stored.
	list, _ := store.ListTransactions(context.Background(), "u1")
	if len(list) != 0 {
		t.Fatalf("partial import detected: %+v", list)
	}
}

func TestDebtListSorting(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	amounts := []float64{300, 100, 200}
	for i, a := range amounts {
		d := core.DebtRecord{
			UserID:       "u1",
			Category:     fmt.Sprintf("debt-%d", i),
			Amount:       a,
			InterestRate: 0,
			DueDate:      time.Now().AddDate(0, 1, 0),
		}
		if err := store.CreateDebt(ctx, &d); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	rr := doJSON(t, srv, http.MethodGet, "/debt-records/getAllByUserID/u1?sortField=amount&sortDir=asc", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	var views []debtView
	if err := json.Unmarshal(rr.Body.Bytes(), &views); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := []float64{views[0].Amount, views[1].Amount, views[2].Amount}
	if got[0] != 100 || got[1] != 200 || got[2] != 300 {
		t.Fatalf("ascending sort broken: %v", got)
	}

	// Without sort parameters the storage order comes back.
	rr = doJSON(t, srv, http.MethodGet, "/debt-records/getAllByUserID/u1", nil)
	views = nil
	if err := json.Unmarshal(rr.Body.Bytes(), &views); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if views[0].Amount != 300 {
		t.Fatalf("storage order broken: %+v", views)
	}
}
