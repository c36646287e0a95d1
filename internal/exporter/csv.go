package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"shoplens/internal/analytics"
	"shoplens/internal/dataprocessing"
	"shoplens/pkg/contracts/domain"
)

// WriteOptions configures CSV output.
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// CSVWriter streams records and aggregate tables as CSV, for the download
// endpoints and for report files on disk.
type CSVWriter struct {
	options WriteOptions
}

// NewCSVWriter creates a CSV writer with the given options.
func NewCSVWriter(options WriteOptions) *CSVWriter {
	return &CSVWriter{options: options}
}

// WriteRecords streams sales records in the clean dataset column order.
func (c *CSVWriter) WriteRecords(w io.Writer, records []domain.SalesRecord) error {
	writer, err := c.begin(w)
	if err != nil {
		return err
	}

	if err := writer.Write(dataprocessing.CleanHeader()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range records {
		if err := writer.Write(dataprocessing.RecordRow(r)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteRollup streams the time-series rollup.
func (c *CSVWriter) WriteRollup(w io.Writer, points []analytics.RollupPoint) error {
	writer, err := c.begin(w)
	if err != nil {
		return err
	}

	if err := writer.Write([]string{"period", "order_count", "revenue", "avg_order_value"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range points {
		row := []string{p.Period, formatInt(p.OrderCount), formatFloat(p.Revenue), formatFloat(p.AvgOrderValue)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write rollup row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCategories streams the full category table.
func (c *CSVWriter) WriteCategories(w io.Writer, stats []analytics.CategoryStats) error {
	writer, err := c.begin(w)
	if err != nil {
		return err
	}

	header := []string{"category", "revenue", "order_count", "item_count", "min_price", "avg_price", "max_price"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, s := range stats {
		row := []string{
			s.Category, formatFloat(s.Revenue), formatInt(s.OrderCount), formatInt(s.ItemCount),
			formatFloat(s.MinPrice), formatFloat(s.AvgPrice), formatFloat(s.MaxPrice),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write category row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteRFM streams the customer segmentation table.
func (c *CSVWriter) WriteRFM(w io.Writer, table analytics.RFMTable) error {
	writer, err := c.begin(w)
	if err != nil {
		return err
	}

	if err := writer.Write([]string{"customer_id", "recency_days", "frequency", "monetary"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range table.Entries {
		row := []string{e.CustomerID, formatInt(e.RecencyDays), formatInt(e.Frequency), formatFloat(e.Monetary)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write rfm row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// begin wraps w in a csv.Writer, emitting the BOM first when configured.
func (c *CSVWriter) begin(w io.Writer) (*csv.Writer, error) {
	if c.options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}
	return csv.NewWriter(w), nil
}
