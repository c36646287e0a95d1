package dataprocessing

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"shoplens/internal/errors"
	"shoplens/pkg/contracts/domain"
)

// Sources holds the paths of the six raw entity files.
type Sources struct {
	Orders    string
	Items     string
	Products  string
	Customers string
	Payments  string
	Reviews   string
}

// DefaultSources returns the conventional file layout under rawDir.
func DefaultSources(rawDir string) Sources {
	return Sources{
		Orders:    filepath.Join(rawDir, OrdersFile),
		Items:     filepath.Join(rawDir, ItemsFile),
		Products:  filepath.Join(rawDir, ProductsFile),
		Customers: filepath.Join(rawDir, CustomersFile),
		Payments:  filepath.Join(rawDir, PaymentsFile),
		Reviews:   filepath.Join(rawDir, ReviewsFile),
	}
}

// RawTables holds the parsed entity records before joining.
type RawTables struct {
	Orders    []domain.Order
	Items     []domain.OrderItem
	Products  []domain.Product
	Customers []domain.Customer
	Payments  []domain.Payment
	Reviews   []domain.Review
}

// LoadStats counts what the loader kept and dropped. Row-level failures are
// non-fatal: the row is dropped, counted, and logged once per file.
type LoadStats struct {
	OrdersRead          int `json:"orders_read"`
	ItemsRead           int `json:"items_read"`
	DroppedBadTimestamp int `json:"dropped_bad_timestamp"`
	DroppedBadNumber    int `json:"dropped_bad_number"`
	DroppedDuplicates   int `json:"dropped_duplicates"`
	DroppedInvalidOrder int `json:"dropped_invalid_order"`
}

// Loader reads and cleans the raw entity files. Parsing failures at file
// level (missing file, unreadable CSV, missing required column) abort with a
// DATA_LOAD error naming the path; bad rows are dropped and counted.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// merge folds the counters of another stats value into s.
func (s *LoadStats) merge(other LoadStats) {
	s.OrdersRead += other.OrdersRead
	s.ItemsRead += other.ItemsRead
	s.DroppedBadTimestamp += other.DroppedBadTimestamp
	s.DroppedBadNumber += other.DroppedBadNumber
	s.DroppedDuplicates += other.DroppedDuplicates
	s.DroppedInvalidOrder += other.DroppedInvalidOrder
}

// Load reads all six entity files concurrently. Each goroutine counts into
// its own stats value; the counters are merged after the wait.
func (l *Loader) Load(ctx context.Context, src Sources) (*RawTables, *LoadStats, error) {
	tables := &RawTables{}
	var orderStats, itemStats, paymentStats, reviewStats LoadStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tables.Orders, err = l.loadOrders(gctx, src.Orders, &orderStats)
		return err
	})
	g.Go(func() error {
		var err error
		tables.Items, err = l.loadItems(gctx, src.Items, &itemStats)
		return err
	})
	g.Go(func() error {
		var err error
		tables.Products, err = l.loadProducts(gctx, src.Products)
		return err
	})
	g.Go(func() error {
		var err error
		tables.Customers, err = l.loadCustomers(gctx, src.Customers)
		return err
	})
	g.Go(func() error {
		var err error
		tables.Payments, err = l.loadPayments(gctx, src.Payments, &paymentStats)
		return err
	})
	g.Go(func() error {
		var err error
		tables.Reviews, err = l.loadReviews(gctx, src.Reviews, &reviewStats)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats := &LoadStats{}
	stats.merge(orderStats)
	stats.merge(itemStats)
	stats.merge(paymentStats)
	stats.merge(reviewStats)

	l.logger.InfoContext(ctx, "raw tables loaded",
		slog.Int("orders", len(tables.Orders)),
		slog.Int("items", len(tables.Items)),
		slog.Int("products", len(tables.Products)),
		slog.Int("customers", len(tables.Customers)),
		slog.Int("payments", len(tables.Payments)),
		slog.Int("reviews", len(tables.Reviews)),
		slog.Int("dropped_bad_timestamp", stats.DroppedBadTimestamp),
		slog.Int("dropped_bad_number", stats.DroppedBadNumber))

	return tables, stats, nil
}

// readAll opens a raw file and returns its header index plus data rows.
func readAll(path string, required []string) (map[string]int, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewDataLoadError(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.NewDataLoadError(path, errors.NewParsingError("file is empty", nil))
	}
	if err != nil {
		return nil, nil, errors.NewDataLoadError(path, err)
	}

	index, err := columnIndex(header, required)
	if err != nil {
		return nil, nil, errors.NewDataLoadError(path, err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.NewDataLoadError(path, err)
	}

	return index, rows, nil
}

func (l *Loader) loadOrders(ctx context.Context, path string, stats *LoadStats) ([]domain.Order, error) {
	index, rows, err := readAll(path, orderColumns)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		id := field(row, index, "order_id")
		if id == "" {
			continue
		}

		purchased, err := time.Parse(TimestampLayout, field(row, index, "order_purchase_timestamp"))
		if err != nil {
			stats.DroppedBadTimestamp++
			continue
		}

		orders = append(orders, domain.Order{
			ID:                id,
			CustomerID:        field(row, index, "customer_id"),
			Status:            domain.OrderStatus(field(row, index, "order_status")),
			PurchasedAt:       purchased,
			ApprovedAt:        parseOptionalTime(field(row, index, "order_approved_at")),
			DeliveredAt:       parseOptionalTime(field(row, index, "order_delivered_customer_date")),
			EstimatedDelivery: parseOptionalTime(field(row, index, "order_estimated_delivery_date")),
		})
	}
	stats.OrdersRead = len(orders)

	if dropped := stats.DroppedBadTimestamp; dropped > 0 {
		l.logger.WarnContext(ctx, "dropped order rows with unparsable timestamps",
			slog.String("path", path), slog.Int("count", dropped))
	}

	return orders, nil
}

func (l *Loader) loadItems(ctx context.Context, path string, stats *LoadStats) ([]domain.OrderItem, error) {
	index, rows, err := readAll(path, itemColumns)
	if err != nil {
		return nil, err
	}

	dropped := 0
	items := make([]domain.OrderItem, 0, len(rows))
	for _, row := range rows {
		orderID := field(row, index, "order_id")
		if orderID == "" {
			continue
		}

		seq, errSeq := strconv.Atoi(field(row, index, "order_item_id"))
		price, errPrice := strconv.ParseFloat(field(row, index, "price"), 64)
		freight, errFreight := strconv.ParseFloat(field(row, index, "freight_value"), 64)
		if errSeq != nil || errPrice != nil || errFreight != nil {
			dropped++
			continue
		}

		items = append(items, domain.OrderItem{
			OrderID:      orderID,
			ItemSeq:      seq,
			ProductID:    field(row, index, "product_id"),
			Price:        price,
			FreightValue: freight,
		})
	}
	stats.ItemsRead = len(items)
	stats.DroppedBadNumber += dropped

	if dropped > 0 {
		l.logger.WarnContext(ctx, "dropped item rows with malformed numeric fields",
			slog.String("path", path), slog.Int("count", dropped))
	}

	return items, nil
}

func (l *Loader) loadProducts(ctx context.Context, path string) ([]domain.Product, error) {
	index, rows, err := readAll(path, productColumns)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		id := field(row, index, "product_id")
		if id == "" {
			continue
		}

		// Missing category keeps the row; the sentinel is applied here so
		// every downstream consumer sees a non-empty label.
		category := field(row, index, "product_category_name")
		if category == "" {
			category = domain.UnknownCategory
		}

		products = append(products, domain.Product{
			ID:       id,
			Category: category,
			WeightG:  parseOptionalFloat(field(row, index, "product_weight_g")),
			LengthCm: parseOptionalFloat(field(row, index, "product_length_cm")),
			HeightCm: parseOptionalFloat(field(row, index, "product_height_cm")),
			WidthCm:  parseOptionalFloat(field(row, index, "product_width_cm")),
		})
	}

	return products, nil
}

func (l *Loader) loadCustomers(ctx context.Context, path string) ([]domain.Customer, error) {
	index, rows, err := readAll(path, customerColumns)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		id := field(row, index, "customer_id")
		if id == "" {
			continue
		}
		customers = append(customers, domain.Customer{
			ID:    id,
			City:  field(row, index, "customer_city"),
			State: field(row, index, "customer_state"),
		})
	}

	return customers, nil
}

func (l *Loader) loadPayments(ctx context.Context, path string, stats *LoadStats) ([]domain.Payment, error) {
	index, rows, err := readAll(path, paymentColumns)
	if err != nil {
		return nil, err
	}

	dropped := 0
	payments := make([]domain.Payment, 0, len(rows))
	for _, row := range rows {
		orderID := field(row, index, "order_id")
		if orderID == "" {
			continue
		}

		seq, errSeq := strconv.Atoi(field(row, index, "payment_sequential"))
		value, errValue := strconv.ParseFloat(field(row, index, "payment_value"), 64)
		if errSeq != nil || errValue != nil {
			dropped++
			continue
		}

		installments, err := strconv.Atoi(field(row, index, "payment_installments"))
		if err != nil {
			installments = 0
		}

		payments = append(payments, domain.Payment{
			OrderID:      orderID,
			Sequential:   seq,
			Method:       field(row, index, "payment_type"),
			Installments: installments,
			Value:        value,
		})
	}
	stats.DroppedBadNumber += dropped

	if dropped > 0 {
		l.logger.WarnContext(ctx, "dropped payment rows with malformed numeric fields",
			slog.String("path", path), slog.Int("count", dropped))
	}

	return payments, nil
}

func (l *Loader) loadReviews(ctx context.Context, path string, stats *LoadStats) ([]domain.Review, error) {
	index, rows, err := readAll(path, reviewColumns)
	if err != nil {
		return nil, err
	}

	dropped := 0
	reviews := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		orderID := field(row, index, "order_id")
		if orderID == "" {
			continue
		}

		score, err := strconv.Atoi(field(row, index, "review_score"))
		if err != nil || score < 1 || score > 5 {
			dropped++
			continue
		}

		var createdAt time.Time
		if t := parseOptionalTime(field(row, index, "review_creation_date")); t != nil {
			createdAt = *t
		}

		reviews = append(reviews, domain.Review{
			ID:        field(row, index, "review_id"),
			OrderID:   orderID,
			Score:     score,
			Title:     field(row, index, "review_comment_title"),
			Message:   field(row, index, "review_comment_message"),
			CreatedAt: createdAt,
		})
	}
	stats.DroppedBadNumber += dropped

	if dropped > 0 {
		l.logger.WarnContext(ctx, "dropped review rows with invalid scores",
			slog.String("path", path), slog.Int("count", dropped))
	}

	return reviews, nil
}

// parseOptionalTime parses a timestamp field that may legitimately be blank.
// An unparsable non-empty value is treated as missing rather than dropping
// the row; only the purchase timestamp is load-bearing.
func parseOptionalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func parseOptionalFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
