package dataprocessing

import (
	"fmt"
	"strings"
)

// Raw entity file names expected under the raw data directory.
const (
	OrdersFile    = "orders.csv"
	ItemsFile     = "order_items.csv"
	ProductsFile  = "products.csv"
	CustomersFile = "customers.csv"
	PaymentsFile  = "order_payments.csv"
	ReviewsFile   = "order_reviews.csv"
)

// TimestampLayout is the timezone-naive layout all raw timestamps use.
const TimestampLayout = "2006-01-02 15:04:05"

// Required columns per entity file. Extra columns are ignored; a missing
// required column fails the load for that file.
var (
	orderColumns = []string{
		"order_id", "customer_id", "order_status", "order_purchase_timestamp",
		"order_delivered_customer_date", "order_estimated_delivery_date",
	}
	itemColumns = []string{
		"order_id", "order_item_id", "product_id", "price", "freight_value",
	}
	productColumns = []string{
		"product_id", "product_category_name",
	}
	customerColumns = []string{
		"customer_id", "customer_state",
	}
	paymentColumns = []string{
		"order_id", "payment_sequential", "payment_type",
		"payment_installments", "payment_value",
	}
	reviewColumns = []string{
		"review_id", "order_id", "review_score",
	}
)

// columnIndex maps required column names to their position in the header row.
// Matching is case-insensitive and whitespace-tolerant.
func columnIndex(header, required []string) (map[string]int, error) {
	index := make(map[string]int, len(required))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	return index, nil
}

// field returns the trimmed cell value for a named column, or "" when the row
// is short or the column is absent.
func field(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
