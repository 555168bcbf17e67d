package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostsForTierFilter(t *testing.T) {
	all := CostsFor("London", "")
	require.Len(t, all, 3)

	mid := CostsFor(" LONDON ", "mid")
	require.Len(t, mid, 1)
	assert.Equal(t, "mid", mid[0].Tier)
	assert.Equal(t, 210, mid[0].DailyUSD)
}

func TestCostsForUnknownCityFallsBack(t *testing.T) {
	costs := CostsFor("Ulaanbaatar", "budget")
	require.Len(t, costs, 1)
	assert.Equal(t, 50, costs[0].DailyUSD)
}

func TestCostsForUnknownTierReturnsAllRows(t *testing.T) {
	costs := CostsFor("Paris", "imperial")
	assert.Len(t, costs, 3)
}

func TestCuratedSiblings(t *testing.T) {
	assert.NotEmpty(t, TransportFor("new york"))
	assert.NotEmpty(t, GuideFor("Paris"))
	assert.Empty(t, TransportFor("Ulaanbaatar"))
	assert.Empty(t, GuideFor("Ulaanbaatar"))
}
