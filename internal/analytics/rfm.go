package analytics

import (
	"sort"
	"time"

	"shoplens/pkg/contracts/domain"
)

// BuildRFM computes the raw recency/frequency/monetary table per customer.
// The reference date is the maximum purchase timestamp in the selection plus
// one day, so the most recent buyer has recency 1. Frequency counts distinct
// orders; monetary sums item revenue. Entries are sorted by customer id.
func BuildRFM(records []domain.SalesRecord) RFMTable {
	if len(records) == 0 {
		return RFMTable{Entries: []RFMEntry{}}
	}

	type acc struct {
		lastPurchase time.Time
		orders       map[string]bool
		monetary     float64
	}

	var maxPurchase time.Time
	byCustomer := make(map[string]*acc)
	for _, r := range records {
		if r.PurchasedAt.After(maxPurchase) {
			maxPurchase = r.PurchasedAt
		}

		a, ok := byCustomer[r.CustomerID]
		if !ok {
			a = &acc{orders: make(map[string]bool)}
			byCustomer[r.CustomerID] = a
		}
		if r.PurchasedAt.After(a.lastPurchase) {
			a.lastPurchase = r.PurchasedAt
		}
		a.orders[r.OrderID] = true
		a.monetary += r.Revenue()
	}

	reference := maxPurchase.AddDate(0, 0, 1)

	entries := make([]RFMEntry, 0, len(byCustomer))
	for customerID, a := range byCustomer {
		entries = append(entries, RFMEntry{
			CustomerID:  customerID,
			RecencyDays: int(reference.Sub(a.lastPurchase).Hours() / 24),
			Frequency:   len(a.orders),
			Monetary:    a.monetary,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CustomerID < entries[j].CustomerID
	})

	return RFMTable{ReferenceDate: reference, Entries: entries}
}

// TopByMonetary returns the n highest-spending customers, ties broken by
// customer id ascending.
func (t RFMTable) TopByMonetary(n int) []RFMEntry {
	sorted := make([]RFMEntry, len(t.Entries))
	copy(sorted, t.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Monetary != sorted[j].Monetary {
			return sorted[i].Monetary > sorted[j].Monetary
		}
		return sorted[i].CustomerID < sorted[j].CustomerID
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// TopByFrequency returns the n most frequent customers, ties broken by
// customer id ascending.
func (t RFMTable) TopByFrequency(n int) []RFMEntry {
	sorted := make([]RFMEntry, len(t.Entries))
	copy(sorted, t.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Frequency != sorted[j].Frequency {
			return sorted[i].Frequency > sorted[j].Frequency
		}
		return sorted[i].CustomerID < sorted[j].CustomerID
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
