package analytics

import (
	"sort"
	"time"

	"shoplens/pkg/contracts/domain"
)

// MeasureDelivery summarizes delivery punctuality over distinct orders that
// carry both an actual and an estimated delivery date. DiffDays is actual
// minus estimated in whole days, so negative buckets mean early delivery and
// an order is on time when it does not arrive after the estimate.
func MeasureDelivery(records []domain.SalesRecord) DeliveryPerformance {
	type orderDelivery struct {
		purchased time.Time
		delivered time.Time
		estimated time.Time
	}

	byOrder := make(map[string]orderDelivery)
	for _, r := range records {
		if r.DeliveredAt == nil || r.EstimatedDelivery == nil {
			continue
		}
		if _, seen := byOrder[r.OrderID]; seen {
			continue
		}
		byOrder[r.OrderID] = orderDelivery{
			purchased: r.PurchasedAt,
			delivered: *r.DeliveredAt,
			estimated: *r.EstimatedDelivery,
		}
	}

	perf := DeliveryPerformance{Histogram: []DeliveryBucket{}}
	if len(byOrder) == 0 {
		return perf
	}

	var (
		onTime        int
		actualDays    float64
		estimatedDays float64
	)
	diffCounts := make(map[int]int)
	for _, d := range byOrder {
		diff := int(d.delivered.Sub(d.estimated).Hours() / 24)
		diffCounts[diff]++
		if !d.delivered.After(d.estimated) {
			onTime++
		}
		actualDays += d.delivered.Sub(d.purchased).Hours() / 24
		estimatedDays += d.estimated.Sub(d.purchased).Hours() / 24
	}

	total := len(byOrder)
	rate := float64(onTime) / float64(total)
	perf.DeliveredOrders = total
	perf.OnTimeRate = &rate
	perf.AvgActualDays = actualDays / float64(total)
	perf.AvgEstimatedDays = estimatedDays / float64(total)

	for diff, count := range diffCounts {
		perf.Histogram = append(perf.Histogram, DeliveryBucket{DiffDays: diff, Count: count})
	}
	sort.Slice(perf.Histogram, func(i, j int) bool {
		return perf.Histogram[i].DiffDays < perf.Histogram[j].DiffDays
	})

	return perf
}
