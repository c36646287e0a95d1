package analytics

import (
	"sort"

	"shoplens/pkg/contracts/domain"
)

// BuildOverview computes the headline metrics of a selection. Pointer fields
// stay nil when the selection cannot support the metric, for example the
// review mean over a selection without reviews.
func BuildOverview(records []domain.SalesRecord) Overview {
	orders := make(map[string]bool)
	customers := make(map[string]bool)
	var revenue float64
	for _, r := range records {
		orders[r.OrderID] = true
		customers[r.CustomerID] = true
		revenue += r.Revenue()
	}

	overview := Overview{
		TotalOrders:    len(orders),
		TotalRevenue:   revenue,
		TotalCustomers: len(customers),
	}
	if overview.TotalOrders > 0 {
		avg := revenue / float64(overview.TotalOrders)
		overview.AvgOrderValue = &avg
	}

	overview.OnTimeRate = MeasureDelivery(records).OnTimeRate
	overview.AvgReviewScore = SummarizeReviews(records).Mean

	return overview
}

// CountCustomerStates counts distinct customers per state, sorted by count
// descending then state label ascending.
func CountCustomerStates(records []domain.SalesRecord) []StateCount {
	byState := make(map[string]map[string]bool)
	for _, r := range records {
		if r.CustomerState == "" {
			continue
		}
		customers, ok := byState[r.CustomerState]
		if !ok {
			customers = make(map[string]bool)
			byState[r.CustomerState] = customers
		}
		customers[r.CustomerID] = true
	}

	counts := make([]StateCount, 0, len(byState))
	for state, customers := range byState {
		counts = append(counts, StateCount{State: state, Customers: len(customers)})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Customers != counts[j].Customers {
			return counts[i].Customers > counts[j].Customers
		}
		return counts[i].State < counts[j].State
	})

	return counts
}
