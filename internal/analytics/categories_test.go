package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplens/pkg/contracts/domain"
)

func TestRankCategories(t *testing.T) {
	ranking := RankCategories(fixtureRecords(), 2)
	require.Len(t, ranking.All, 3)

	// unknown carries the highest-revenue item row and ranks first
	assert.Equal(t, domain.UnknownCategory, ranking.All[0].Category)
	assert.InDelta(t, 140.0, ranking.All[0].Revenue, 1e-9)

	assert.Equal(t, "toys", ranking.All[1].Category)
	assert.InDelta(t, 100.0, ranking.All[1].Revenue, 1e-9)
	assert.Equal(t, 2, ranking.All[1].OrderCount)
	assert.Equal(t, 2, ranking.All[1].ItemCount)
	assert.InDelta(t, 45.0, ranking.All[1].MinPrice, 1e-9)
	assert.InDelta(t, 67.5, ranking.All[1].AvgPrice, 1e-9)
	assert.InDelta(t, 90.0, ranking.All[1].MaxPrice, 1e-9)

	require.Len(t, ranking.Top, 2)
	assert.Equal(t, domain.UnknownCategory, ranking.Top[0].Category)

	require.Len(t, ranking.Bottom, 2)
	assert.Equal(t, "garden", ranking.Bottom[0].Category)
	assert.InDelta(t, 60.0, ranking.Bottom[0].Revenue, 1e-9)
}

func TestRankCategories_NTooLarge(t *testing.T) {
	ranking := RankCategories(fixtureRecords(), 50)
	assert.Len(t, ranking.Top, 3)
	assert.Len(t, ranking.Bottom, 3)
}

func TestRankCategories_Empty(t *testing.T) {
	ranking := RankCategories(nil, 10)
	assert.Empty(t, ranking.All)
	assert.Empty(t, ranking.Top)
	assert.Empty(t, ranking.Bottom)
}
