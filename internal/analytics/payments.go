package analytics

import (
	"sort"

	"shoplens/pkg/contracts/domain"
)

// SummarizePayments groups distinct orders by payment method. Item rows of
// the same order carry the collapsed order-level payment, so each order
// contributes its value once. Methods are sorted by value descending, ties
// by label ascending; RevenueShare is each method's fraction of the summed
// payment value.
func SummarizePayments(records []domain.SalesRecord) []PaymentStat {
	type acc struct {
		orders int
		value  float64
	}

	seen := make(map[string]bool)
	byMethod := make(map[string]*acc)
	var total float64
	for _, r := range records {
		if r.PaymentMethod == "" || seen[r.OrderID] {
			continue
		}
		seen[r.OrderID] = true

		a, ok := byMethod[r.PaymentMethod]
		if !ok {
			a = &acc{}
			byMethod[r.PaymentMethod] = a
		}
		a.orders++
		a.value += r.PaymentValue
		total += r.PaymentValue
	}

	stats := make([]PaymentStat, 0, len(byMethod))
	for method, a := range byMethod {
		stat := PaymentStat{Method: method, OrderCount: a.orders, Value: a.value}
		if total > 0 {
			stat.RevenueShare = a.value / total
		}
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Value != stats[j].Value {
			return stats[i].Value > stats[j].Value
		}
		return stats[i].Method < stats[j].Method
	})

	return stats
}
