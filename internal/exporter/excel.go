package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"shoplens/internal/analytics"
)

// Report bundles every aggregate the workbook export renders.
type Report struct {
	Overview   analytics.Overview
	Monthly    []analytics.RollupPoint
	Categories analytics.CategoryRanking
	RFM        analytics.RFMTable
	Delivery   analytics.DeliveryPerformance
	Payments   []analytics.PaymentStat
	Reviews    analytics.ReviewStats
	States     []analytics.StateCount
}

// ExcelWriter renders the full analytics report as an xlsx workbook with one
// sheet per aggregate.
type ExcelWriter struct{}

// NewExcelWriter creates an Excel report writer.
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// Write renders the report and streams the workbook to w.
func (e *ExcelWriter) Write(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeOverview(f, report.Overview); err != nil {
		return err
	}
	if err := e.writeMonthly(f, report.Monthly); err != nil {
		return err
	}
	if err := e.writeCategories(f, report.Categories); err != nil {
		return err
	}
	if err := e.writeRFM(f, report.RFM); err != nil {
		return err
	}
	if err := e.writeDelivery(f, report.Delivery); err != nil {
		return err
	}
	if err := e.writePayments(f, report.Payments); err != nil {
		return err
	}
	if err := e.writeReviews(f, report.Reviews); err != nil {
		return err
	}
	if err := e.writeStates(f, report.States); err != nil {
		return err
	}

	// excelize always starts with Sheet1; the overview replaces it
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (e *ExcelWriter) writeOverview(f *excelize.File, overview analytics.Overview) error {
	rows := [][]interface{}{
		{"metric", "value"},
		{"total_orders", overview.TotalOrders},
		{"total_revenue", overview.TotalRevenue},
		{"total_customers", overview.TotalCustomers},
	}
	if overview.AvgOrderValue != nil {
		rows = append(rows, []interface{}{"avg_order_value", *overview.AvgOrderValue})
	}
	if overview.OnTimeRate != nil {
		rows = append(rows, []interface{}{"on_time_rate", *overview.OnTimeRate})
	}
	if overview.AvgReviewScore != nil {
		rows = append(rows, []interface{}{"avg_review_score", *overview.AvgReviewScore})
	}
	return e.writeSheet(f, "Overview", rows)
}

func (e *ExcelWriter) writeMonthly(f *excelize.File, points []analytics.RollupPoint) error {
	rows := [][]interface{}{{"period", "order_count", "revenue", "avg_order_value"}}
	for _, p := range points {
		rows = append(rows, []interface{}{p.Period, p.OrderCount, p.Revenue, p.AvgOrderValue})
	}
	return e.writeSheet(f, "Monthly", rows)
}

func (e *ExcelWriter) writeCategories(f *excelize.File, ranking analytics.CategoryRanking) error {
	rows := [][]interface{}{{"category", "revenue", "order_count", "item_count", "min_price", "avg_price", "max_price"}}
	for _, s := range ranking.All {
		rows = append(rows, []interface{}{s.Category, s.Revenue, s.OrderCount, s.ItemCount, s.MinPrice, s.AvgPrice, s.MaxPrice})
	}
	return e.writeSheet(f, "Categories", rows)
}

func (e *ExcelWriter) writeRFM(f *excelize.File, table analytics.RFMTable) error {
	rows := [][]interface{}{{"customer_id", "recency_days", "frequency", "monetary"}}
	for _, entry := range table.Entries {
		rows = append(rows, []interface{}{entry.CustomerID, entry.RecencyDays, entry.Frequency, entry.Monetary})
	}
	return e.writeSheet(f, "RFM", rows)
}

func (e *ExcelWriter) writeDelivery(f *excelize.File, perf analytics.DeliveryPerformance) error {
	rows := [][]interface{}{{"diff_days", "count"}}
	for _, bucket := range perf.Histogram {
		rows = append(rows, []interface{}{bucket.DiffDays, bucket.Count})
	}
	rows = append(rows, []interface{}{})
	rows = append(rows, []interface{}{"delivered_orders", perf.DeliveredOrders})
	rows = append(rows, []interface{}{"on_time_rate", formatOptionalRate(perf.OnTimeRate)})
	rows = append(rows, []interface{}{"avg_actual_days", perf.AvgActualDays})
	rows = append(rows, []interface{}{"avg_estimated_days", perf.AvgEstimatedDays})
	return e.writeSheet(f, "Delivery", rows)
}

func (e *ExcelWriter) writePayments(f *excelize.File, stats []analytics.PaymentStat) error {
	rows := [][]interface{}{{"method", "order_count", "value", "revenue_share"}}
	for _, s := range stats {
		rows = append(rows, []interface{}{s.Method, s.OrderCount, s.Value, s.RevenueShare})
	}
	return e.writeSheet(f, "Payments", rows)
}

func (e *ExcelWriter) writeReviews(f *excelize.File, stats analytics.ReviewStats) error {
	rows := [][]interface{}{{"score", "count"}}
	for _, bucket := range stats.Distribution {
		rows = append(rows, []interface{}{bucket.Score, bucket.Count})
	}
	rows = append(rows, []interface{}{})
	rows = append(rows, []interface{}{"category", "mean_score"})
	for _, mean := range stats.ByCategory {
		rows = append(rows, []interface{}{mean.Category, mean.Mean})
	}
	return e.writeSheet(f, "Reviews", rows)
}

func (e *ExcelWriter) writeStates(f *excelize.File, counts []analytics.StateCount) error {
	rows := [][]interface{}{{"state", "customers"}}
	for _, c := range counts {
		rows = append(rows, []interface{}{c.State, c.Customers})
	}
	return e.writeSheet(f, "States", rows)
}

func (e *ExcelWriter) writeSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d on %s: %w", i+1, name, err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+1, name, err)
		}
	}
	return nil
}
