package model

import (
	"fmt"
	"strings"
)

// Event is one of the seven main game mode events.
type Event uint8

const (
	EventGemGrab Event = iota
	EventShowdown
	EventBrawlBall
	EventHeist
	EventBounty
	EventSiege
	EventHotZone
)

// EventType distinguishes team events from free-for-all ones.
type EventType uint8

const (
	EventTypeTeam EventType = iota
	EventTypeIndividual
)

// GameMode pairs an event with an optional description.
type GameMode struct {
	Event       Event  `json:"event"`
	Description string `json:"description,omitempty"`
}

func NewGameMode(event Event, description string) GameMode {
	return GameMode{Event: event, Description: description}
}

func (m GameMode) EventType() EventType {
	return m.Event.EventType()
}

// EventType returns the type of the event. Showdown is the only
// individual event.
func (e Event) EventType() EventType {
	if e == EventShowdown {
		return EventTypeIndividual
	}
	return EventTypeTeam
}

func (e Event) String() string {
	switch e {
	case EventGemGrab:
		return "Gem Grab"
	case EventShowdown:
		return "Showdown"
	case EventBrawlBall:
		return "Brawl Ball"
	case EventHeist:
		return "Heist"
	case EventBounty:
		return "Bounty"
	case EventSiege:
		return "Siege"
	case EventHotZone:
		return "Hot Zone"
	}
	return fmt.Sprintf("Event(%d)", uint8(e))
}

// ParseEvent parses an event name, accepting both spaced and joined
// forms regardless of case.
func ParseEvent(s string) (Event, error) {
	switch strings.ToLower(s) {
	case "gemgrab", "gem grab":
		return EventGemGrab, nil
	case "showdown":
		return EventShowdown, nil
	case "brawlball", "brawl ball":
		return EventBrawlBall, nil
	case "heist":
		return EventHeist, nil
	case "bounty":
		return EventBounty, nil
	case "siege":
		return EventSiege, nil
	case "hotzone", "hot zone":
		return EventHotZone, nil
	}
	return 0, fmt.Errorf("model: %q is not a valid event", s)
}

// ParseEventType parses "team" or "individual".
func ParseEventType(s string) (EventType, error) {
	switch strings.ToLower(s) {
	case "team":
		return EventTypeTeam, nil
	case "individual":
		return EventTypeIndividual, nil
	}
	return 0, fmt.Errorf("model: %q is not a valid event type", s)
}

func (t EventType) String() string {
	if t == EventTypeIndividual {
		return "Individual"
	}
	return "Team"
}
