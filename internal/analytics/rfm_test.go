package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRFM(t *testing.T) {
	table := BuildRFM(fixtureRecords())
	require.Len(t, table.Entries, 2)

	// reference date is the latest purchase plus one day
	assert.Equal(t, ts("2023-02-04 08:00:00"), table.ReferenceDate)

	c1 := table.Entries[0]
	assert.Equal(t, "c1", c1.CustomerID)
	assert.Equal(t, 1, c1.RecencyDays)
	assert.Equal(t, 2, c1.Frequency, "frequency counts distinct orders, not item rows")
	assert.InDelta(t, 300.0, c1.Monetary, 1e-9)

	c2 := table.Entries[1]
	assert.Equal(t, "c2", c2.CustomerID)
	assert.Equal(t, 14, c2.RecencyDays)
	assert.Equal(t, 1, c2.Frequency)
	assert.InDelta(t, 50.0, c2.Monetary, 1e-9)
}

func TestBuildRFM_Empty(t *testing.T) {
	table := BuildRFM(nil)
	assert.Empty(t, table.Entries)
	assert.True(t, table.ReferenceDate.IsZero())
}

func TestRFMTable_Top(t *testing.T) {
	table := BuildRFM(fixtureRecords())

	byMonetary := table.TopByMonetary(1)
	require.Len(t, byMonetary, 1)
	assert.Equal(t, "c1", byMonetary[0].CustomerID)

	byFrequency := table.TopByFrequency(5)
	require.Len(t, byFrequency, 2)
	assert.Equal(t, "c1", byFrequency[0].CustomerID)
}
