package analytics

import (
	"sort"

	"shoplens/pkg/contracts/domain"
)

// RankCategories aggregates revenue and order statistics per product
// category and selects the top and bottom n performers by revenue. Ties
// break by order count descending, then category label ascending, so the
// ranking is deterministic. Records without a category label arrive with the
// "unknown" sentinel already applied and rank like any other category.
func RankCategories(records []domain.SalesRecord, n int) CategoryRanking {
	type acc struct {
		revenue  float64
		orders   map[string]bool
		items    int
		minPrice float64
		maxPrice float64
		priceSum float64
	}

	byCategory := make(map[string]*acc)
	for _, r := range records {
		category := r.Category
		if category == "" {
			category = domain.UnknownCategory
		}

		a, ok := byCategory[category]
		if !ok {
			a = &acc{orders: make(map[string]bool), minPrice: r.Price, maxPrice: r.Price}
			byCategory[category] = a
		}

		a.revenue += r.Revenue()
		a.orders[r.OrderID] = true
		a.items++
		a.priceSum += r.Price
		if r.Price < a.minPrice {
			a.minPrice = r.Price
		}
		if r.Price > a.maxPrice {
			a.maxPrice = r.Price
		}
	}

	all := make([]CategoryStats, 0, len(byCategory))
	for category, a := range byCategory {
		stats := CategoryStats{
			Category:   category,
			Revenue:    a.revenue,
			OrderCount: len(a.orders),
			ItemCount:  a.items,
			MinPrice:   a.minPrice,
			MaxPrice:   a.maxPrice,
		}
		if a.items > 0 {
			stats.AvgPrice = a.priceSum / float64(a.items)
		}
		all = append(all, stats)
	}

	sort.Slice(all, func(i, j int) bool {
		return categoryLess(all[i], all[j])
	})

	ranking := CategoryRanking{All: all}
	ranking.Top = headCopy(all, n)

	bottom := make([]CategoryStats, len(all))
	copy(bottom, all)
	sort.Slice(bottom, func(i, j int) bool {
		if bottom[i].Revenue != bottom[j].Revenue {
			return bottom[i].Revenue < bottom[j].Revenue
		}
		if bottom[i].OrderCount != bottom[j].OrderCount {
			return bottom[i].OrderCount > bottom[j].OrderCount
		}
		return bottom[i].Category < bottom[j].Category
	})
	ranking.Bottom = headCopy(bottom, n)

	return ranking
}

// categoryLess orders by revenue descending, order count descending, label
// ascending.
func categoryLess(a, b CategoryStats) bool {
	if a.Revenue != b.Revenue {
		return a.Revenue > b.Revenue
	}
	if a.OrderCount != b.OrderCount {
		return a.OrderCount > b.OrderCount
	}
	return a.Category < b.Category
}

func headCopy(stats []CategoryStats, n int) []CategoryStats {
	if n > len(stats) {
		n = len(stats)
	}
	head := make([]CategoryStats, n)
	copy(head, stats[:n])
	return head
}
