package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOverview(t *testing.T) {
	overview := BuildOverview(fixtureRecords())

	assert.Equal(t, 3, overview.TotalOrders)
	assert.InDelta(t, 350.0, overview.TotalRevenue, 1e-9)
	require.NotNil(t, overview.AvgOrderValue)
	assert.InDelta(t, 350.0/3.0, *overview.AvgOrderValue, 1e-9)
	assert.Equal(t, 2, overview.TotalCustomers)
	require.NotNil(t, overview.OnTimeRate)
	assert.InDelta(t, 0.5, *overview.OnTimeRate, 1e-9)
	require.NotNil(t, overview.AvgReviewScore)
	assert.InDelta(t, 4.5, *overview.AvgReviewScore, 1e-9)
}

func TestBuildOverview_Empty(t *testing.T) {
	overview := BuildOverview(nil)

	assert.Zero(t, overview.TotalOrders)
	assert.Zero(t, overview.TotalRevenue)
	assert.Nil(t, overview.AvgOrderValue)
	assert.Nil(t, overview.OnTimeRate)
	assert.Nil(t, overview.AvgReviewScore)
}

func TestCountCustomerStates(t *testing.T) {
	counts := CountCustomerStates(fixtureRecords())
	require.Len(t, counts, 2)

	assert.Equal(t, "RJ", counts[1].State)
	assert.Equal(t, 1, counts[1].Customers)
	assert.Equal(t, "SP", counts[0].State)
	assert.Equal(t, 1, counts[0].Customers)
}
