package model

import (
	"cmp"
	"math"
	"slices"
)

// Tier is a start-progress band in a tier system: brawler levels,
// leagues and brawler ranks all share the shape.
type Tier interface {
	// Bounds returns the unit at which the tier begins and the unit at
	// which it ends (the start of the next tier).
	Bounds() (start, end uint32)
}

// Level is a brawler level band measured in power points.
type Level struct {
	// Power points at which the level starts.
	Start uint32 `json:"start"`
	// Power points to collect before the next level.
	Progress uint32 `json:"progress"`
	// Currency required to advance to the next level.
	RequiredCurrency uint32 `json:"required_currency"`
}

func (l Level) Bounds() (uint32, uint32) { return l.Start, l.Start + l.Progress }

// CanAdvance checks if a brawler with the given power points can be
// upgraded to the next level.
func (l Level) CanAdvance(powerPoints uint32) bool {
	_, end := l.Bounds()
	return powerPoints >= end
}

// League is a named trophy band of the trophy road.
type League struct {
	Name     string `json:"name"`
	Start    uint32 `json:"start"`
	Progress uint32 `json:"progress"`
}

func (l League) Bounds() (uint32, uint32) { return l.Start, l.Start + l.Progress }

func (l League) CanAdvance(trophies uint32) bool {
	_, end := l.Bounds()
	return trophies >= end
}

// Rank is a brawler trophy rank with its rank-up reward counts.
type Rank struct {
	Start                uint32 `json:"start"`
	Progress             uint32 `json:"progress"`
	PrimaryRewardCount   uint32 `json:"primary_reward_count"`
	SecondaryRewardCount uint32 `json:"secondary_reward_count"`
}

func (r Rank) Bounds() (uint32, uint32) { return r.Start, r.Start + r.Progress }

func (r Rank) CanAdvance(trophies uint32) bool {
	_, end := r.Bounds()
	return trophies >= end
}

// TierManager assists with tier-ups over an ordered list of tiers.
type TierManager[T Tier] struct {
	tiers []T
}

// FromSorted builds a manager from tiers already ordered by start.
// Validity (each end coinciding with the next start) is not checked;
// use TryFromSorted for that.
func FromSorted[T Tier](tiers []T) TierManager[T] {
	return TierManager[T]{tiers: tiers}
}

// FromUnsorted sorts the tiers by start and builds a manager.
func FromUnsorted[T Tier](tiers []T) TierManager[T] {
	slices.SortStableFunc(tiers, func(a, b T) int {
		as, _ := a.Bounds()
		bs, _ := b.Bounds()
		return cmp.Compare(as, bs)
	})
	return TierManager[T]{tiers: tiers}
}

func TryFromSorted[T Tier](tiers []T) (TierManager[T], bool) {
	m := FromSorted(tiers)
	return m, m.IsValid()
}

func TryFromUnsorted[T Tier](tiers []T) (TierManager[T], bool) {
	m := FromUnsorted(tiers)
	return m, m.IsValid()
}

// IsValid checks that the end of every tier coincides with the start of
// the next one.
func (m TierManager[T]) IsValid() bool {
	for i := 1; i < len(m.tiers); i++ {
		_, prevEnd := m.tiers[i-1].Bounds()
		start, _ := m.tiers[i].Bounds()
		if prevEnd != start {
			return false
		}
	}
	return true
}

func (m TierManager[T]) Get(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(m.tiers) {
		return zero, false
	}
	return m.tiers[index], true
}

func (m TierManager[T]) Len() int { return len(m.tiers) }

// Tiers returns the backing slice. Mutating it may invalidate the
// manager; re-check with IsValid afterwards.
func (m TierManager[T]) Tiers() []T { return m.tiers }

// Advance returns the highest tier whose end the given units have
// passed, i.e. the tier being advanced from. The second return value is
// false if the units clear no tier.
func (m TierManager[T]) Advance(units uint32) (T, bool) {
	var (
		zero       T
		previous   T
		found      bool
		difference uint32 = math.MaxUint32
	)
	for _, tier := range m.tiers {
		_, end := tier.Bounds()
		if units >= end {
			current := units - end
			if difference < current {
				return previous, found
			}
			difference = current
			previous = tier
			found = true
		}
	}
	if !found {
		return zero, false
	}
	return previous, true
}

// TierForUnits returns the tier the given units currently sit in.
func (m TierManager[T]) TierForUnits(units uint32) (T, bool) {
	for _, tier := range m.tiers {
		start, end := tier.Bounds()
		if units >= start && units < end {
			return tier, true
		}
	}
	var zero T
	return zero, false
}

// LevelManager assists with brawler level-ups.
type LevelManager struct {
	TierManager[Level]
}

func NewLevelManager(m TierManager[Level]) LevelManager {
	return LevelManager{TierManager: m}
}

// LevelUpCost returns the currency required to level up from level.
// Level 0 has no cost; the second return value is false when the level
// is not covered by the manager.
func (m LevelManager) LevelUpCost(level uint8) (uint32, bool) {
	if level == 0 {
		return 0, false
	}
	tier, ok := m.Get(int(level) - 1)
	if !ok {
		return 0, false
	}
	return tier.RequiredCurrency, true
}

// LeagueManager assists with league-ups.
type LeagueManager struct {
	TierManager[League]
}

func NewLeagueManager(m TierManager[League]) LeagueManager {
	return LeagueManager{TierManager: m}
}

// RankManager assists with rank-ups.
type RankManager struct {
	TierManager[Rank]
}

func NewRankManager(m TierManager[Rank]) RankManager {
	return RankManager{TierManager: m}
}
