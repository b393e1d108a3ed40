package resource

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brawl/model"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func testRoster() []model.Brawler {
	return []model.Brawler{
		{Name: "Shelly", Rarity: model.TrophyRoadRarity(0)},
		{Name: "Nita", Rarity: model.TrophyRoadRarity(10)},
		{Name: "Poco", Rarity: model.Rarity{Kind: model.RarityRare}},
		{Name: "Rosa", Rarity: model.Rarity{Kind: model.RarityRare}},
		{Name: "Rico", Rarity: model.Rarity{Kind: model.RaritySuperRare}},
		{Name: "Piper", Rarity: model.Rarity{Kind: model.RarityEpic}},
		{Name: "Mortis", Rarity: model.Rarity{Kind: model.RarityMythic}},
		{Name: "Crow", Rarity: model.Rarity{Kind: model.RarityLegendary}},
		{Name: "Gale", Rarity: model.ChromaticRarity(model.SeasonFirst)},
	}
}

func TestBoxData(t *testing.T) {
	assert.Equal(t, BoxData{Total: 2, PowerPoints: [3]uint32{7, 25, 14}, Gold: [3]uint32{12, 70, 19}}, NewBrawlBox().Data)
	assert.Equal(t, BoxData{Total: 5, PowerPoints: [3]uint32{27, 75, 46}, Gold: [3]uint32{36, 210, 63}}, NewBigBox().Data)
	assert.Equal(t, BoxData{Total: 9, PowerPoints: [3]uint32{81, 225, 132}, Gold: [3]uint32{6, 210, 63}}, NewMegaBox().Data)
}

func TestRarityOdds(t *testing.T) {
	odds := DefaultOdds()
	assert.Equal(t, odds.Legendary, odds.RarityOdds(model.ChromaticRarity(model.SeasonFirst)))
	assert.Equal(t, odds.Mythic, odds.RarityOdds(model.ChromaticRarity(model.SeasonSecond)))
	assert.Equal(t, odds.Epic, odds.RarityOdds(model.ChromaticRarity(model.SeasonThird)))
	assert.Zero(t, odds.RarityOdds(model.TrophyRoadRarity(100)))
}

func TestOpenRewardsOnlyUnlockable(t *testing.T) {
	stats := NewPlayerStats(testRoster(), []BrawlerData{
		{Name: "Shelly", Level: 5, PowerPoints: 10},
		{Name: "Poco", Level: 9, PowerPoints: 550, Gadgets: Variants{First: true}, StarPowers: Variants{Second: true}},
	})

	r := testRand()
	for i := 0; i < 200; i++ {
		rewards := NewMegaBox().Open(r, stats)

		assert.NotZero(t, rewards.Gold)
		for _, name := range rewards.Brawlers {
			assert.NotContains(t, []string{"Shelly", "Poco"}, name, "owned brawlers never drop")
			assert.NotContains(t, []string{"Nita"}, name, "trophy road brawlers never drop")
		}
		for name := range rewards.PowerPoints {
			assert.Contains(t, []string{"Shelly"}, name, "only Shelly can hold power points")
		}
		for name, v := range rewards.Gadgets {
			require.Equal(t, "Poco", name)
			assert.True(t, v.Second, "only Poco's second gadget is missing")
			assert.False(t, v.First)
		}
		for name, v := range rewards.StarPowers {
			require.Equal(t, "Poco", name)
			assert.True(t, v.First, "only Poco's first star power is missing")
			assert.False(t, v.Second)
		}
	}
}

func TestOpenMaxedCollectionTriplesGold(t *testing.T) {
	// Every brawler owned, maxed, fully equipped: nothing to drop but
	// gold (x3) and the occasional token doublers.
	var owned []BrawlerData
	for _, b := range testRoster() {
		owned = append(owned, BrawlerData{
			Name:        b.Name,
			Level:       9,
			PowerPoints: 550,
			Gadgets:     Variants{First: true, Second: true},
			StarPowers:  Variants{First: true, Second: true},
		})
	}
	stats := NewPlayerStats(testRoster(), owned)

	r := testRand()
	for i := 0; i < 100; i++ {
		rewards := NewBrawlBox().Open(r, stats)

		assert.Empty(t, rewards.Brawlers)
		assert.Empty(t, rewards.PowerPoints)
		assert.Empty(t, rewards.Gadgets)
		assert.Empty(t, rewards.StarPowers)

		// Base roll is 12..70, tripled.
		assert.GreaterOrEqual(t, rewards.Gold, uint32(36))
		assert.LessOrEqual(t, rewards.Gold, uint32(210))
		assert.Zero(t, rewards.Gold%3)

		if rewards.TokenDoublers != 0 {
			assert.Equal(t, TokenDoublerQuantity, rewards.TokenDoublers)
		}
	}
}

func TestOpenSinglePowerPointTargetDoublesGold(t *testing.T) {
	owned := []BrawlerData{{Name: "Shelly", Level: 1, PowerPoints: 0}}
	// Roster of exactly one brawler, already owned.
	roster := []model.Brawler{{Name: "Shelly", Rarity: model.TrophyRoadRarity(0)}}
	stats := NewPlayerStats(roster, owned)

	r := testRand()
	for i := 0; i < 100; i++ {
		rewards := NewBrawlBox().Open(r, stats)
		assert.Zero(t, rewards.Gold%2)
	}
}

func TestOpenIsDeterministicForASeed(t *testing.T) {
	stats := NewPlayerStats(testRoster(), []BrawlerData{{Name: "Shelly", Level: 3, PowerPoints: 5}})

	first := NewBigBox().Open(rand.New(rand.NewPCG(1, 2)), stats)
	second := NewBigBox().Open(rand.New(rand.NewPCG(1, 2)), stats)
	assert.Equal(t, first, second)
}

func TestVariantsCombine(t *testing.T) {
	v := Variants{First: true}
	v.Combine(Variants{Second: true})
	assert.True(t, v.First)
	assert.True(t, v.Second)
}

func TestUnlockableRarityDecay(t *testing.T) {
	u, ok := unlockableFromRarity(model.ChromaticRarity(model.SeasonThird))
	require.True(t, ok)
	assert.Equal(t, unlockEpic, u)

	_, ok = unlockableFromRarity(model.TrophyRoadRarity(0))
	assert.False(t, ok)

	lower, ok := unlockLegendary.lower()
	require.True(t, ok)
	assert.Equal(t, unlockMythic, lower)

	_, ok = unlockRare.lower()
	assert.False(t, ok)
}

func TestValidRarityFallsBack(t *testing.T) {
	pool := map[unlockableRarity][]string{
		unlockRare: {"Poco"},
	}

	got, ok := validRarity(unlockLegendary, pool)
	require.True(t, ok)
	assert.Equal(t, unlockRare, got)

	_, ok = validRarity(unlockLegendary, map[unlockableRarity][]string{})
	assert.False(t, ok)
}
