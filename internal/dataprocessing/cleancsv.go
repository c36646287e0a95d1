package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"shoplens/internal/errors"
	"shoplens/pkg/contracts/domain"
)

// cleanHeader is the fixed column order of the cleaned dataset file.
var cleanHeader = []string{
	"order_id", "order_item_id", "customer_id", "customer_state",
	"order_status", "order_purchase_timestamp", "order_delivered_customer_date",
	"order_estimated_delivery_date", "product_id", "product_category",
	"price", "freight_value", "payment_type", "payment_installments",
	"payment_value", "review_score",
}

// CleanHeader returns a copy of the clean dataset column order, for callers
// that export records in the same shape.
func CleanHeader() []string {
	header := make([]string, len(cleanHeader))
	copy(header, cleanHeader)
	return header
}

// RecordRow renders one record in the clean dataset column order. Formatting
// is fixed so identical records always render identically.
func RecordRow(r domain.SalesRecord) []string {
	return []string{
		r.OrderID,
		strconv.Itoa(r.ItemSeq),
		r.CustomerID,
		r.CustomerState,
		string(r.Status),
		r.PurchasedAt.Format(TimestampLayout),
		formatOptionalTime(r.DeliveredAt),
		formatOptionalTime(r.EstimatedDelivery),
		r.ProductID,
		r.Category,
		fmt.Sprintf("%.2f", r.Price),
		fmt.Sprintf("%.2f", r.FreightValue),
		r.PaymentMethod,
		strconv.Itoa(r.PaymentInstallments),
		fmt.Sprintf("%.2f", r.PaymentValue),
		formatOptionalInt(r.ReviewScore),
	}
}

// WriteCleanCSV writes the joined dataset to path. Output is deterministic:
// records are already sorted by the joiner and all formatting is fixed, so
// re-running the pipeline on the same input produces a byte-identical file.
func WriteCleanCSV(path string, records []domain.SalesRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for clean dataset", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create clean dataset file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(cleanHeader); err != nil {
		return errors.NewStorageError("failed to write clean dataset header", err)
	}

	for _, r := range records {
		if err := writer.Write(RecordRow(r)); err != nil {
			return errors.NewStorageError("failed to write clean dataset row", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCleanCSV loads a previously written clean dataset.
func ReadCleanCSV(path string) (*domain.Dataset, error) {
	index, rows, err := readAll(path, cleanHeader)
	if err != nil {
		return nil, err
	}

	records := make([]domain.SalesRecord, 0, len(rows))
	for _, row := range rows {
		purchased, err := time.Parse(TimestampLayout, field(row, index, "order_purchase_timestamp"))
		if err != nil {
			continue
		}

		seq, _ := strconv.Atoi(field(row, index, "order_item_id"))
		price, _ := strconv.ParseFloat(field(row, index, "price"), 64)
		freight, _ := strconv.ParseFloat(field(row, index, "freight_value"), 64)
		installments, _ := strconv.Atoi(field(row, index, "payment_installments"))
		paymentValue, _ := strconv.ParseFloat(field(row, index, "payment_value"), 64)

		record := domain.SalesRecord{
			OrderID:             field(row, index, "order_id"),
			ItemSeq:             seq,
			CustomerID:          field(row, index, "customer_id"),
			CustomerState:       field(row, index, "customer_state"),
			Status:              domain.OrderStatus(field(row, index, "order_status")),
			PurchasedAt:         purchased,
			DeliveredAt:         parseOptionalTime(field(row, index, "order_delivered_customer_date")),
			EstimatedDelivery:   parseOptionalTime(field(row, index, "order_estimated_delivery_date")),
			ProductID:           field(row, index, "product_id"),
			Category:            field(row, index, "product_category"),
			Price:               price,
			FreightValue:        freight,
			PaymentMethod:       field(row, index, "payment_type"),
			PaymentInstallments: installments,
			PaymentValue:        paymentValue,
		}

		if s := field(row, index, "review_score"); s != "" {
			if score, err := strconv.Atoi(s); err == nil {
				record.ReviewScore = &score
			}
		}

		records = append(records, record)
	}

	return &domain.Dataset{
		Records:  records,
		LoadedAt: time.Now(),
		Source:   path,
	}, nil
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(TimestampLayout)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
