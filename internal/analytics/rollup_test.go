package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollup_Monthly(t *testing.T) {
	points := Rollup(fixtureRecords(), PeriodMonth)
	require.Len(t, points, 2)

	assert.Equal(t, "2023-01", points[0].Period)
	assert.Equal(t, 2, points[0].OrderCount)
	assert.InDelta(t, 150.0, points[0].Revenue, 1e-9)
	assert.InDelta(t, 75.0, points[0].AvgOrderValue, 1e-9)

	assert.Equal(t, "2023-02", points[1].Period)
	assert.Equal(t, 1, points[1].OrderCount)
	assert.InDelta(t, 200.0, points[1].Revenue, 1e-9)
}

func TestRollup_DailyCountsOrdersOnce(t *testing.T) {
	points := Rollup(fixtureRecords(), PeriodDay)
	require.Len(t, points, 3)

	// o3 spans two item rows on the same day but is one order
	assert.Equal(t, "2023-02-03", points[2].Period)
	assert.Equal(t, 1, points[2].OrderCount)
	assert.InDelta(t, 200.0, points[2].Revenue, 1e-9)
}

func TestRollup_Empty(t *testing.T) {
	assert.Empty(t, Rollup(nil, PeriodMonth))
}

func TestRollup_RevenueReconcilesWithCategories(t *testing.T) {
	records := fixtureRecords()

	var rollupTotal float64
	for _, p := range Rollup(records, PeriodMonth) {
		rollupTotal += p.Revenue
	}

	var categoryTotal float64
	for _, c := range RankCategories(records, 10).All {
		categoryTotal += c.Revenue
	}

	assert.InDelta(t, rollupTotal, categoryTotal, 1e-9,
		"per-category revenue must reconcile with the time series")
}
