package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"shoplens/internal/analytics"
	"shoplens/internal/config"
	"shoplens/internal/exporter"
	"shoplens/pkg/contracts/domain"
)

// Query narrows every analytics call to a purchase date range and category
// set. The zero value selects the whole dataset.
type Query struct {
	From       *time.Time
	To         *time.Time
	Categories []string
}

// IsZero reports whether the query selects the whole dataset.
func (q Query) IsZero() bool {
	return q.From == nil && q.To == nil && len(q.Categories) == 0
}

// RecordPage is one page of raw records for the data table.
type RecordPage struct {
	Records    []domain.SalesRecord `json:"records"`
	Page       int                  `json:"page"`
	PerPage    int                  `json:"per_page"`
	Total      int                  `json:"total"`
	TotalPages int                  `json:"total_pages"`
}

// DatasetMeta describes the loaded snapshot, for the dashboard filter
// controls.
type DatasetMeta struct {
	Records    int       `json:"records"`
	LoadedAt   time.Time `json:"loaded_at"`
	Source     string    `json:"source"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	Categories []string  `json:"categories"`
}

// DataService serves analytics over an immutable dataset snapshot. The
// full-range aggregates are computed once at construction; filtered queries
// recompute over the matching records.
type DataService struct {
	dataset   *domain.Dataset
	dashboard config.DashboardConfig
	logger    *slog.Logger

	full       exporter.Report
	daily      []analytics.RollupPoint
	categories []string
}

// NewDataService builds the service and precomputes the full-range report.
func NewDataService(dataset *domain.Dataset, dashboard config.DashboardConfig, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	ds := &DataService{
		dataset:    dataset,
		dashboard:  dashboard,
		logger:     logger,
		full:       buildReport(dataset.Records, dashboard.TopCategories),
		daily:      analytics.Rollup(dataset.Records, analytics.PeriodDay),
		categories: analytics.Categories(dataset.Records),
	}

	logger.Info("data service initialized",
		slog.Int("records", len(dataset.Records)),
		slog.String("source", dataset.Source),
		slog.Duration("precompute", time.Since(start)))

	return ds
}

func buildReport(records []domain.SalesRecord, topN int) exporter.Report {
	return exporter.Report{
		Overview:   analytics.BuildOverview(records),
		Monthly:    analytics.Rollup(records, analytics.PeriodMonth),
		Categories: analytics.RankCategories(records, topN),
		RFM:        analytics.BuildRFM(records),
		Delivery:   analytics.MeasureDelivery(records),
		Payments:   analytics.SummarizePayments(records),
		Reviews:    analytics.SummarizeReviews(records),
		States:     analytics.CountCustomerStates(records),
	}
}

// select returns the records matching q, reusing the snapshot slice for the
// zero query.
func (ds *DataService) selectRecords(q Query) []domain.SalesRecord {
	if q.IsZero() {
		return ds.dataset.Records
	}
	return analytics.Filter(ds.dataset.Records, q.From, q.To, q.Categories)
}

// Meta describes the loaded dataset.
func (ds *DataService) Meta(ctx context.Context) DatasetMeta {
	meta := DatasetMeta{
		Records:    len(ds.dataset.Records),
		LoadedAt:   ds.dataset.LoadedAt,
		Source:     ds.dataset.Source,
		Categories: ds.categories,
	}
	if from, to, ok := ds.dataset.Span(); ok {
		meta.From = from
		meta.To = to
	}
	return meta
}

// Overview returns the headline metrics for the selection.
func (ds *DataService) Overview(ctx context.Context, q Query) analytics.Overview {
	if q.IsZero() {
		return ds.full.Overview
	}
	return analytics.BuildOverview(ds.selectRecords(q))
}

// Monthly returns the monthly time series for the selection.
func (ds *DataService) Monthly(ctx context.Context, q Query) []analytics.RollupPoint {
	if q.IsZero() {
		return ds.full.Monthly
	}
	return analytics.Rollup(ds.selectRecords(q), analytics.PeriodMonth)
}

// Daily returns the daily time series for the selection.
func (ds *DataService) Daily(ctx context.Context, q Query) []analytics.RollupPoint {
	if q.IsZero() {
		return ds.daily
	}
	return analytics.Rollup(ds.selectRecords(q), analytics.PeriodDay)
}

// Categories returns the category ranking for the selection.
func (ds *DataService) Categories(ctx context.Context, q Query) analytics.CategoryRanking {
	if q.IsZero() {
		return ds.full.Categories
	}
	return analytics.RankCategories(ds.selectRecords(q), ds.dashboard.TopCategories)
}

// RFM returns the customer segmentation table for the selection.
func (ds *DataService) RFM(ctx context.Context, q Query) analytics.RFMTable {
	if q.IsZero() {
		return ds.full.RFM
	}
	return analytics.BuildRFM(ds.selectRecords(q))
}

// Delivery returns delivery performance for the selection.
func (ds *DataService) Delivery(ctx context.Context, q Query) analytics.DeliveryPerformance {
	if q.IsZero() {
		return ds.full.Delivery
	}
	return analytics.MeasureDelivery(ds.selectRecords(q))
}

// Payments returns the payment method breakdown for the selection.
func (ds *DataService) Payments(ctx context.Context, q Query) []analytics.PaymentStat {
	if q.IsZero() {
		return ds.full.Payments
	}
	return analytics.SummarizePayments(ds.selectRecords(q))
}

// Reviews returns review statistics for the selection.
func (ds *DataService) Reviews(ctx context.Context, q Query) analytics.ReviewStats {
	if q.IsZero() {
		return ds.full.Reviews
	}
	return analytics.SummarizeReviews(ds.selectRecords(q))
}

// States returns distinct customers per state for the selection.
func (ds *DataService) States(ctx context.Context, q Query) []analytics.StateCount {
	if q.IsZero() {
		return ds.full.States
	}
	return analytics.CountCustomerStates(ds.selectRecords(q))
}

// Records returns one page of raw records for the selection. Pages are
// 1-based; out-of-range pages yield an empty page with correct totals.
func (ds *DataService) Records(ctx context.Context, q Query, page, perPage int) RecordPage {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = ds.dashboard.RecordsPerPage
	}

	selected := ds.selectRecords(q)
	total := len(selected)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return RecordPage{
		Records:    selected[start:end],
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ExportRecords streams the selection as CSV.
func (ds *DataService) ExportRecords(ctx context.Context, w io.Writer, q Query) error {
	selected := ds.selectRecords(q)
	ds.logger.Info("exporting records csv", slog.Int("records", len(selected)))
	return exporter.NewCSVWriter(exporter.WriteOptions{BOMPrefix: true}).WriteRecords(w, selected)
}

// ExportReport streams the full analytics report of the selection as an xlsx
// workbook.
func (ds *DataService) ExportReport(ctx context.Context, w io.Writer, q Query) error {
	report := ds.full
	if !q.IsZero() {
		report = buildReport(ds.selectRecords(q), ds.dashboard.TopCategories)
	}
	ds.logger.Info("exporting xlsx report")
	return exporter.NewExcelWriter().Write(w, report)
}
