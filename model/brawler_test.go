package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttackDefaults(t *testing.T) {
	var attack Attack
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Buckshot","damage":300}`), &attack))
	assert.Equal(t, uint8(DefaultAmmo), attack.MaxAmmo)
	assert.Equal(t, DefaultDescriptor, attack.Descriptor)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"Buckshot","max_ammo":4,"descriptor":"Damage per shell"}`), &attack))
	assert.Equal(t, uint8(4), attack.MaxAmmo)
	assert.Equal(t, "Damage per shell", attack.Descriptor)
}

func TestSuperDefaults(t *testing.T) {
	var super Super
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Super Shell","damage":320}`), &super))
	assert.Equal(t, DefaultDescriptor, super.Descriptor)
	assert.Nil(t, super.Spawn)
}

func TestRarityLower(t *testing.T) {
	lower, ok := (Rarity{Kind: RarityLegendary}).Lower()
	require.True(t, ok)
	assert.Equal(t, RarityMythic, lower.Kind)

	steps := 0
	r := Rarity{Kind: RarityLegendary}
	for {
		next, ok := r.Lower()
		if !ok {
			break
		}
		r = next
		steps++
	}
	assert.Equal(t, 4, steps)
	assert.Equal(t, RarityRare, r.Kind)

	_, ok = TrophyRoadRarity(500).Lower()
	assert.False(t, ok)
	_, ok = ChromaticRarity(SeasonSecond).Lower()
	assert.False(t, ok)
}

func TestRarityString(t *testing.T) {
	assert.Equal(t, "Trophy Road: 500 Trophies", TrophyRoadRarity(500).String())
	assert.Equal(t, "Chromatic: Second Season", ChromaticRarity(SeasonSecond).String())
	assert.Equal(t, "Super Rare", Rarity{Kind: RaritySuperRare}.String())
}

func TestSkinType(t *testing.T) {
	assert.True(t, SkinFree.IsFree())
	assert.True(t, SkinGem.IsGem())
	assert.True(t, SkinStarToken.IsStarToken())
	assert.False(t, SkinGem.IsFree())
}
