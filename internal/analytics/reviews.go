package analytics

import (
	"sort"

	"shoplens/pkg/contracts/domain"
)

// SummarizeReviews builds the score distribution and mean over distinct
// reviewed orders, plus the per-category mean over reviewed item rows. The
// distribution always carries all five score buckets so charts stay stable
// when a score is absent.
func SummarizeReviews(records []domain.SalesRecord) ReviewStats {
	counts := make(map[int]int)
	seen := make(map[string]bool)
	var sum, reviewed int
	for _, r := range records {
		if r.ReviewScore == nil || seen[r.OrderID] {
			continue
		}
		seen[r.OrderID] = true
		counts[*r.ReviewScore]++
		sum += *r.ReviewScore
		reviewed++
	}

	stats := ReviewStats{Distribution: make([]ScoreCount, 0, 5), ByCategory: []CategoryMean{}}
	for score := 1; score <= 5; score++ {
		stats.Distribution = append(stats.Distribution, ScoreCount{Score: score, Count: counts[score]})
	}
	if reviewed > 0 {
		mean := float64(sum) / float64(reviewed)
		stats.Mean = &mean
	}

	type acc struct {
		sum   int
		count int
	}
	byCategory := make(map[string]*acc)
	for _, r := range records {
		if r.ReviewScore == nil {
			continue
		}
		category := r.Category
		if category == "" {
			category = domain.UnknownCategory
		}
		a, ok := byCategory[category]
		if !ok {
			a = &acc{}
			byCategory[category] = a
		}
		a.sum += *r.ReviewScore
		a.count++
	}

	for category, a := range byCategory {
		stats.ByCategory = append(stats.ByCategory, CategoryMean{
			Category: category,
			Mean:     float64(a.sum) / float64(a.count),
		})
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		if stats.ByCategory[i].Mean != stats.ByCategory[j].Mean {
			return stats.ByCategory[i].Mean > stats.ByCategory[j].Mean
		}
		return stats.ByCategory[i].Category < stats.ByCategory[j].Category
	})

	return stats
}
