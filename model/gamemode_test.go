package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	for input, want := range map[string]Event{
		"gemgrab":   EventGemGrab,
		"Gem Grab":  EventGemGrab,
		"SHOWDOWN":  EventShowdown,
		"brawlball": EventBrawlBall,
		"Hot Zone":  EventHotZone,
		"heist":     EventHeist,
		"Bounty":    EventBounty,
		"siege":     EventSiege,
	} {
		got, err := ParseEvent(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseEvent("takedown")
	assert.Error(t, err)
}

func TestEventType(t *testing.T) {
	assert.Equal(t, EventTypeIndividual, EventShowdown.EventType())
	assert.Equal(t, EventTypeTeam, EventGemGrab.EventType())
	assert.Equal(t, EventTypeTeam, NewGameMode(EventSiege, "").EventType())
}

func TestParseEventType(t *testing.T) {
	got, err := ParseEventType("Individual")
	require.NoError(t, err)
	assert.Equal(t, EventTypeIndividual, got)

	_, err = ParseEventType("duo")
	assert.Error(t, err)
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "Gem Grab", EventGemGrab.String())
	assert.Equal(t, "Showdown", EventShowdown.String())
}
