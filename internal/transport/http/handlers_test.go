package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplens/internal/config"
	apierrors "shoplens/internal/errors"
	"shoplens/internal/services"
	"shoplens/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", value)
	require.NoError(t, err)
	return parsed
}

func testDataset(t *testing.T) *domain.Dataset {
	t.Helper()
	score := 5
	return &domain.Dataset{
		Records: []domain.SalesRecord{
			{
				OrderID: "o1", ItemSeq: 1, CustomerID: "c1", CustomerState: "SP",
				Status: domain.OrderStatusDelivered, PurchasedAt: ts(t, "2023-01-05 10:00:00"),
				ProductID: "p1", Category: "toys", Price: 90, FreightValue: 10,
				PaymentMethod: "credit_card", PaymentValue: 100, ReviewScore: &score,
			},
			{
				OrderID: "o2", ItemSeq: 1, CustomerID: "c2", CustomerState: "RJ",
				Status: domain.OrderStatusShipped, PurchasedAt: ts(t, "2023-02-03 08:00:00"),
				ProductID: "p2", Category: "garden", Price: 180, FreightValue: 20,
				PaymentMethod: "boleto", PaymentValue: 200,
			},
		},
		LoadedAt: time.Now(),
		Source:   "test",
	}
}

func testRouter(t *testing.T) chi.Router {
	t.Helper()

	logger := testLogger()
	dataService := services.NewDataService(testDataset(t), config.Default().Dashboard, logger)
	healthService := services.NewHealthService("test", "", testDataset(t), logger)
	errorHandler := apierrors.NewErrorHandler(logger, false)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Mount("/analytics", NewAnalyticsHandler(dataService, logger, errorHandler).Routes())
		r.Mount("/data", NewDataHandler(dataService, logger, errorHandler).Routes())
		r.Get("/health", NewHealthHandler(healthService, logger).HealthCheck)
	})
	r.Handle("/metrics", MetricsHandler())
	return r
}

func doRequest(t *testing.T, router chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAnalyticsHandler_Overview(t *testing.T) {
	rec := doRequest(t, testRouter(t), "/api/analytics/overview")
	require.Equal(t, http.StatusOK, rec.Code)

	var overview struct {
		TotalOrders  int     `json:"total_orders"`
		TotalRevenue float64 `json:"total_revenue"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	assert.Equal(t, 2, overview.TotalOrders)
	assert.InDelta(t, 300.0, overview.TotalRevenue, 1e-9)
}

func TestAnalyticsHandler_MonthlyFiltered(t *testing.T) {
	rec := doRequest(t, testRouter(t), "/api/analytics/monthly?from=2023-02-01&to=2023-02-28")
	require.Equal(t, http.StatusOK, rec.Code)

	var points []struct {
		Period     string `json:"period"`
		OrderCount int    `json:"order_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, 1)
	assert.Equal(t, "2023-02", points[0].Period)
}

func TestAnalyticsHandler_InvalidDate(t *testing.T) {
	rec := doRequest(t, testRouter(t), "/api/analytics/overview?from=not-a-date")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var problem struct {
		Type   string `json:"type"`
		Status int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "/errors/validation", problem.Type)
	assert.Equal(t, http.StatusBadRequest, problem.Status)
}

func TestAnalyticsHandler_InvertedRange(t *testing.T) {
	rec := doRequest(t, testRouter(t), "/api/analytics/overview?from=2023-03-01&to=2023-01-01")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsHandler_AllEndpoints(t *testing.T) {
	router := testRouter(t)
	endpoints := []string{
		"/api/analytics/overview",
		"/api/analytics/monthly",
		"/api/analytics/daily",
		"/api/analytics/categories",
		"/api/analytics/rfm",
		"/api/analytics/delivery",
		"/api/analytics/payments",
		"/api/analytics/reviews",
		"/api/analytics/states",
	}
	for _, endpoint := range endpoints {
		rec := doRequest(t, router, endpoint)
		assert.Equal(t, http.StatusOK, rec.Code, endpoint)
	}
}

func TestDataHandler_Records(t *testing.T) {
	rec := doRequest(t, testRouter(t), "/api/data/records?page=1&per_page=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Records    []json.RawMessage `json:"records"`
		Total      int               `json:"total"`
		TotalPages int               `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Records, 1)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestDataHandler_RecordsBadPage(t *testing.T) {
	rec := doRequest(t, testRouter(t), "/api/data/records?page=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDataHandler_Meta(t *testing.T) {
	rec := doRequest(t, testRouter(t), "/api/data/meta")
	require.Equal(t, http.StatusOK, rec.Code)

	var meta struct {
		Records    int      `json:"records"`
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, 2, meta.Records)
	assert.Equal(t, []string{"garden", "toys"}, meta.Categories)
}

func TestDataHandler_ExportCSV(t *testing.T) {
	rec := doRequest(t, testRouter(t), "/api/data/export/csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "o1")
}

func TestDataHandler_ExportExcel(t *testing.T) {
	rec := doRequest(t, testRouter(t), "/api/data/export/xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, rec.Body.Len())
}

func TestHealthHandler(t *testing.T) {
	rec := doRequest(t, testRouter(t), "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var status struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
}

func TestMetricsHandler(t *testing.T) {
	rec := doRequest(t, testRouter(t), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
