package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"shoplens/pkg/contracts/domain"
)

// Join denormalizes the raw tables into one row per order item, left-joined
// so every item survives even when a downstream table has no match. Payments
// collapse to the order's first-sequential method plus the summed value;
// reviews collapse to the latest one. Rows violating the delivery invariant
// (delivered before purchased) are dropped and counted.
func Join(ctx context.Context, logger *slog.Logger, tables *RawTables, stats *LoadStats) []domain.SalesRecord {
	if logger == nil {
		logger = slog.Default()
	}

	orders := make(map[string]domain.Order, len(tables.Orders))
	for _, o := range tables.Orders {
		orders[o.ID] = o
	}

	products := make(map[string]domain.Product, len(tables.Products))
	for _, p := range tables.Products {
		products[p.ID] = p
	}

	customers := make(map[string]domain.Customer, len(tables.Customers))
	for _, c := range tables.Customers {
		customers[c.ID] = c
	}

	payments := collapsePayments(tables.Payments)
	reviews := collapseReviews(tables.Reviews)

	items := deduplicateItems(tables.Items, stats)

	records := make([]domain.SalesRecord, 0, len(items))
	for _, item := range items {
		order, ok := orders[item.OrderID]
		if !ok {
			// An item without its order has no timestamp to group by.
			stats.DroppedInvalidOrder++
			continue
		}

		if order.DeliveredAt != nil && order.DeliveredAt.Before(order.PurchasedAt) {
			stats.DroppedInvalidOrder++
			continue
		}

		record := domain.SalesRecord{
			OrderID:           item.OrderID,
			ItemSeq:           item.ItemSeq,
			CustomerID:        order.CustomerID,
			Status:            order.Status,
			PurchasedAt:       order.PurchasedAt,
			DeliveredAt:       order.DeliveredAt,
			EstimatedDelivery: order.EstimatedDelivery,
			ProductID:         item.ProductID,
			Category:          domain.UnknownCategory,
			Price:             item.Price,
			FreightValue:      item.FreightValue,
		}

		if product, ok := products[item.ProductID]; ok {
			record.Category = product.CategoryOrUnknown()
		}
		if customer, ok := customers[order.CustomerID]; ok {
			record.CustomerState = customer.State
		}
		if payment, ok := payments[item.OrderID]; ok {
			record.PaymentMethod = payment.Method
			record.PaymentInstallments = payment.Installments
			record.PaymentValue = payment.Value
		}
		if review, ok := reviews[item.OrderID]; ok {
			score := review.Score
			record.ReviewScore = &score
		}

		records = append(records, record)
	}

	// Stable output order makes the clean CSV byte-identical across runs.
	sort.Slice(records, func(i, j int) bool {
		if records[i].OrderID != records[j].OrderID {
			return records[i].OrderID < records[j].OrderID
		}
		return records[i].ItemSeq < records[j].ItemSeq
	})

	logger.InfoContext(ctx, "joined sales records",
		slog.Int("records", len(records)),
		slog.Int("dropped_duplicates", stats.DroppedDuplicates),
		slog.Int("dropped_invalid_order", stats.DroppedInvalidOrder))

	return records
}

// deduplicateItems removes exact duplicates on (order, item seq, product),
// keeping the first occurrence.
func deduplicateItems(items []domain.OrderItem, stats *LoadStats) []domain.OrderItem {
	type itemKey struct {
		orderID   string
		itemSeq   int
		productID string
	}

	seen := make(map[itemKey]bool, len(items))
	result := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		key := itemKey{item.OrderID, item.ItemSeq, item.ProductID}
		if seen[key] {
			stats.DroppedDuplicates++
			continue
		}
		seen[key] = true
		result = append(result, item)
	}

	return result
}

// collapsePayments reduces the 1-N payment legs of each order to one value:
// the method of the lowest-sequential leg plus the summed payment value.
func collapsePayments(payments []domain.Payment) map[string]domain.Payment {
	collapsed := make(map[string]domain.Payment)
	for _, p := range payments {
		existing, ok := collapsed[p.OrderID]
		if !ok {
			collapsed[p.OrderID] = p
			continue
		}

		existing.Value += p.Value
		if p.Sequential < existing.Sequential {
			existing.Sequential = p.Sequential
			existing.Method = p.Method
			existing.Installments = p.Installments
		}
		collapsed[p.OrderID] = existing
	}
	return collapsed
}

// collapseReviews keeps one review per order: the latest by creation date,
// ties broken by review id so the result is deterministic.
func collapseReviews(reviews []domain.Review) map[string]domain.Review {
	collapsed := make(map[string]domain.Review)
	for _, r := range reviews {
		existing, ok := collapsed[r.OrderID]
		if !ok {
			collapsed[r.OrderID] = r
			continue
		}

		if r.CreatedAt.After(existing.CreatedAt) ||
			(r.CreatedAt.Equal(existing.CreatedAt) && r.ID > existing.ID) {
			collapsed[r.OrderID] = r
		}
	}
	return collapsed
}
