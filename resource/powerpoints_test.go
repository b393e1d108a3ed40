package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredFor(t *testing.T) {
	assert.Equal(t, LevelTwo, RequiredFor(2))
	assert.Equal(t, LevelNine, RequiredFor(9))
	assert.Equal(t, PowerPoints(0), RequiredFor(0))
	assert.Equal(t, PowerPoints(0), RequiredFor(10))
	assert.Equal(t, PowerPoints(0), RequiredFor(11))
}

func TestMaxPowerPoints(t *testing.T) {
	assert.Equal(t, PowerPoints(1410), PowerPoints(MaxPowerPoints))
}

func TestMaxAtLevel(t *testing.T) {
	assert.Equal(t, PowerPoints(0), MaxAtLevel(0))
	assert.Equal(t, PowerPoints(20), MaxAtLevel(1))
	assert.Equal(t, PowerPoints(100), MaxAtLevel(3))
	assert.Equal(t, PowerPoints(1410), MaxAtLevel(8))
	assert.Equal(t, PowerPoints(1410), MaxAtLevel(9))
}

func TestToNextLevel(t *testing.T) {
	assert.Equal(t, PowerPoints(20), PowerPoints(0).ToNextLevel())
	assert.Equal(t, PowerPoints(10), PowerPoints(10).ToNextLevel())
	assert.Equal(t, PowerPoints(40), PowerPoints(60).ToNextLevel())
	assert.Equal(t, PowerPoints(1), (PowerPoints(MaxPowerPoints) - 1).ToNextLevel())
	assert.Equal(t, PowerPoints(0), PowerPoints(MaxPowerPoints).ToNextLevel())
}

func TestConversions(t *testing.T) {
	assert.Equal(t, PowerPoints(120), TotalFrom(20, 3))
	assert.Equal(t, PowerPoints(20), LevelSpecificFrom(120, 3))
}

func TestCanUpgrade(t *testing.T) {
	// Fresh level 1 brawler with a full bar.
	assert.True(t, PowerPoints(20).CanUpgrade(1))
	// Maxed brawlers cannot go further.
	assert.False(t, PowerPoints(1410).CanUpgrade(9))
	// Overshooting the level's capacity blocks the upgrade.
	assert.False(t, PowerPoints(30).CanUpgrade(1))
}
