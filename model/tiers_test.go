package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLevels() []Level {
	return []Level{
		{Start: 0, Progress: 20, RequiredCurrency: 20},
		{Start: 20, Progress: 30, RequiredCurrency: 35},
		{Start: 50, Progress: 50, RequiredCurrency: 75},
	}
}

func TestTierManagerValidity(t *testing.T) {
	_, ok := TryFromSorted(testLevels())
	assert.True(t, ok)

	gap := []Level{
		{Start: 0, Progress: 20},
		{Start: 30, Progress: 30},
	}
	_, ok = TryFromSorted(gap)
	assert.False(t, ok)
}

func TestFromUnsortedOrders(t *testing.T) {
	levels := testLevels()
	shuffled := []Level{levels[2], levels[0], levels[1]}

	m, ok := TryFromUnsorted(shuffled)
	require.True(t, ok)

	first, ok := m.Get(0)
	require.True(t, ok)
	start, _ := first.Bounds()
	assert.Equal(t, uint32(0), start)
}

func TestTierForUnits(t *testing.T) {
	m := FromSorted(testLevels())

	tier, ok := m.TierForUnits(25)
	require.True(t, ok)
	assert.Equal(t, uint32(35), tier.RequiredCurrency)

	_, ok = m.TierForUnits(100)
	assert.False(t, ok)
}

func TestAdvance(t *testing.T) {
	m := FromSorted(testLevels())

	// 20 units clear exactly the first tier.
	tier, ok := m.Advance(20)
	require.True(t, ok)
	assert.Equal(t, uint32(20), tier.RequiredCurrency)

	// 60 units clear the first two; the nearest cleared end wins.
	tier, ok = m.Advance(60)
	require.True(t, ok)
	assert.Equal(t, uint32(35), tier.RequiredCurrency)

	_, ok = m.Advance(10)
	assert.False(t, ok)
}

func TestLevelUpCost(t *testing.T) {
	m := NewLevelManager(FromSorted(testLevels()))

	cost, ok := m.LevelUpCost(1)
	require.True(t, ok)
	assert.Equal(t, uint32(20), cost)

	_, ok = m.LevelUpCost(0)
	assert.False(t, ok)
	_, ok = m.LevelUpCost(9)
	assert.False(t, ok)
}

func TestRankCanAdvance(t *testing.T) {
	rank := Rank{Start: 0, Progress: 10, PrimaryRewardCount: 1}
	assert.True(t, rank.CanAdvance(10))
	assert.False(t, rank.CanAdvance(9))
}

func TestLeagueManager(t *testing.T) {
	leagues := []League{
		{Name: "Wood", Start: 0, Progress: 100},
		{Name: "Bronze", Start: 100, Progress: 200},
	}
	m := NewLeagueManager(FromSorted(leagues))

	league, ok := m.TierForUnits(150)
	require.True(t, ok)
	assert.Equal(t, "Bronze", league.Name)
	assert.Equal(t, 2, m.Len())
}
