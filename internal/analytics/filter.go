package analytics

import (
	"sort"
	"time"

	"shoplens/pkg/contracts/domain"
)

// Filter narrows records by purchase date range and category membership.
// Both bounds are inclusive; nil bounds and an empty category list mean
// unbounded. The input slice is never mutated.
func Filter(records []domain.SalesRecord, from, to *time.Time, categories []string) []domain.SalesRecord {
	var wanted map[string]bool
	if len(categories) > 0 {
		wanted = make(map[string]bool, len(categories))
		for _, c := range categories {
			wanted[c] = true
		}
	}

	filtered := make([]domain.SalesRecord, 0, len(records))
	for _, r := range records {
		if from != nil && r.PurchasedAt.Before(*from) {
			continue
		}
		if to != nil && r.PurchasedAt.After(*to) {
			continue
		}
		if wanted != nil && !wanted[r.CategoryOrUnknown()] {
			continue
		}
		filtered = append(filtered, r)
	}

	return filtered
}

// Categories lists the distinct category labels of a selection in ascending
// order, for populating filter controls.
func Categories(records []domain.SalesRecord) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		seen[r.CategoryOrUnknown()] = true
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
