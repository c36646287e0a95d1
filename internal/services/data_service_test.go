package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplens/internal/config"
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
	score5, score4 := 5, 4
	return &domain.Dataset{
		Records: []domain.SalesRecord{
			{
				OrderID: "o1", ItemSeq: 1, CustomerID: "c1", CustomerState: "SP",
				Status: domain.OrderStatusDelivered, PurchasedAt: ts(t, "2023-01-05 10:00:00"),
				ProductID: "p1", Category: "toys", Price: 90, FreightValue: 10,
				PaymentMethod: "credit_card", PaymentValue: 100, ReviewScore: &score5,
			},
			{
				OrderID: "o2", ItemSeq: 1, CustomerID: "c2", CustomerState: "RJ",
				Status: domain.OrderStatusDelivered, PurchasedAt: ts(t, "2023-01-20 15:30:00"),
				ProductID: "p2", Category: "toys", Price: 45, FreightValue: 5,
				PaymentMethod: "boleto", PaymentValue: 50, ReviewScore: &score4,
			},
			{
				OrderID: "o3", ItemSeq: 1, CustomerID: "c1", CustomerState: "SP",
				Status: domain.OrderStatusShipped, PurchasedAt: ts(t, "2023-02-03 08:00:00"),
				ProductID: "p3", Category: "garden", Price: 180, FreightValue: 20,
				PaymentMethod: "credit_card", PaymentValue: 200,
			},
		},
		LoadedAt: time.Now(),
		Source:   "test",
	}
}

func newTestService(t *testing.T) *DataService {
	t.Helper()
	return NewDataService(testDataset(t), config.Default().Dashboard, testLogger())
}

func TestDataService_Overview(t *testing.T) {
	ds := newTestService(t)

	overview := ds.Overview(context.Background(), Query{})
	assert.Equal(t, 3, overview.TotalOrders)
	assert.InDelta(t, 350.0, overview.TotalRevenue, 1e-9)
	assert.Equal(t, 2, overview.TotalCustomers)
}

func TestDataService_FilteredQuery(t *testing.T) {
	ds := newTestService(t)
	from := ts(t, "2023-02-01 00:00:00")

	overview := ds.Overview(context.Background(), Query{From: &from})
	assert.Equal(t, 1, overview.TotalOrders)
	assert.InDelta(t, 200.0, overview.TotalRevenue, 1e-9)

	monthly := ds.Monthly(context.Background(), Query{From: &from})
	require.Len(t, monthly, 1)
	assert.Equal(t, "2023-02", monthly[0].Period)
}

func TestDataService_CategoryFilter(t *testing.T) {
	ds := newTestService(t)

	states := ds.States(context.Background(), Query{Categories: []string{"garden"}})
	require.Len(t, states, 1)
	assert.Equal(t, "SP", states[0].State)
}

func TestDataService_Meta(t *testing.T) {
	ds := newTestService(t)

	meta := ds.Meta(context.Background())
	assert.Equal(t, 3, meta.Records)
	assert.Equal(t, "test", meta.Source)
	assert.Equal(t, ts(t, "2023-01-05 10:00:00"), meta.From)
	assert.Equal(t, ts(t, "2023-02-03 08:00:00"), meta.To)
	assert.Equal(t, []string{"garden", "toys"}, meta.Categories)
}

func TestDataService_Records(t *testing.T) {
	ds := newTestService(t)

	page := ds.Records(context.Background(), Query{}, 1, 2)
	assert.Len(t, page.Records, 2)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)

	last := ds.Records(context.Background(), Query{}, 2, 2)
	assert.Len(t, last.Records, 1)

	beyond := ds.Records(context.Background(), Query{}, 9, 2)
	assert.Empty(t, beyond.Records)
	assert.Equal(t, 3, beyond.Total)
}

func TestDataService_RecordsDefaults(t *testing.T) {
	ds := newTestService(t)

	page := ds.Records(context.Background(), Query{}, 0, 0)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, config.Default().Dashboard.RecordsPerPage, page.PerPage)
}

func TestDataService_ExportRecords(t *testing.T) {
	ds := newTestService(t)

	var buf bytes.Buffer
	require.NoError(t, ds.ExportRecords(context.Background(), &buf, Query{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, buf.String(), "o1")
}

func TestDataService_ExportReport(t *testing.T) {
	ds := newTestService(t)

	var buf bytes.Buffer
	require.NoError(t, ds.ExportReport(context.Background(), &buf, Query{}))
	assert.NotZero(t, buf.Len())
}

func TestDataService_EmptyDataset(t *testing.T) {
	ds := NewDataService(&domain.Dataset{}, config.Default().Dashboard, testLogger())

	overview := ds.Overview(context.Background(), Query{})
	assert.Zero(t, overview.TotalOrders)
	assert.Nil(t, overview.AvgOrderValue)

	assert.Empty(t, ds.Monthly(context.Background(), Query{}))
	assert.Empty(t, ds.Records(context.Background(), Query{}, 1, 10).Records)
}
