package analytics

import (
	"sort"

	"shoplens/pkg/contracts/domain"
)

// Rollup groups records into calendar buckets and emits order count and
// revenue per bucket in chronological order. Orders are counted once per
// bucket even when they span several item rows; revenue is the sum of item
// price plus freight. Empty input yields an empty slice.
func Rollup(records []domain.SalesRecord, period Period) []RollupPoint {
	layout := period.layout()

	type bucket struct {
		orders  map[string]bool
		revenue float64
	}

	buckets := make(map[string]*bucket)
	for _, r := range records {
		key := r.PurchasedAt.Format(layout)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{orders: make(map[string]bool)}
			buckets[key] = b
		}
		b.orders[r.OrderID] = true
		b.revenue += r.Revenue()
	}

	points := make([]RollupPoint, 0, len(buckets))
	for key, b := range buckets {
		point := RollupPoint{
			Period:     key,
			OrderCount: len(b.orders),
			Revenue:    b.revenue,
		}
		if point.OrderCount > 0 {
			point.AvgOrderValue = point.Revenue / float64(point.OrderCount)
		}
		points = append(points, point)
	}

	// both layouts sort chronologically as strings
	sort.Slice(points, func(i, j int) bool {
		return points[i].Period < points[j].Period
	})

	return points
}
