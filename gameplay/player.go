package gameplay

import (
	"math"

	"brawl/model"
)

// CharacterStatus is the life state of a player or spawn.
type CharacterStatus uint8

const (
	StatusAlive CharacterStatus = iota
	// StatusRespawning means dead but coming back next round.
	StatusRespawning
	StatusDead
)

func (s CharacterStatus) IsAlive() bool      { return s == StatusAlive }
func (s CharacterStatus) IsRespawning() bool { return s == StatusRespawning }
func (s CharacterStatus) IsDead() bool       { return s == StatusDead }

// Position is a point on the map.
type Position struct {
	X uint32
	Y uint32
}

func NewPosition(x, y uint32) Position { return Position{X: x, Y: y} }

// PlayerSpawn is a spawned character fighting for a player.
type PlayerSpawn struct {
	Info   model.Spawn
	Health uint32
	Status CharacterStatus
}

// BrawlerState is the brawler a player brought into the battle.
type BrawlerState struct {
	Brawler Brawler
	Level   uint32
}

func NewBrawlerState(b Brawler, level uint32) BrawlerState {
	return BrawlerState{Brawler: b, Level: level}
}

// Player is one participant of a running battle.
type Player struct {
	ID PlayerID
	// IsFirst marks the player that was first in the lobby.
	IsFirst bool
	Brawler BrawlerState
	State   PlayerState
}

// NewPlayer builds a player with full ammo and health for its brawler.
func NewPlayer(id PlayerID, brawler BrawlerState, isFirst bool) *Player {
	info := brawler.Brawler.Info()
	return &Player{
		ID:      id,
		IsFirst: isFirst,
		Brawler: brawler,
		State:   NewPlayerState(info.Attack.MaxAmmo, info.Health),
	}
}

// RegenerateAmmo restores one ammo if enough rounds passed since the
// player last fired. Reports whether ammo was restored.
func (p *Player) RegenerateAmmo(round uint8) bool {
	return p.State.RegenerateAmmo(p.Brawler.Brawler, round)
}

func (p *Player) Heal(amount uint32) {
	p.State.Heal(amount)
}

// Respawn marks the player respawning and restores full health.
func (p *Player) Respawn() {
	p.State.Status = StatusRespawning
	p.State.Health = p.State.MaxHealth
}

func (p *Player) CanAttack() bool {
	return p.State.Ammo > 0
}

func (p *Player) CanSuper() bool {
	return p.State.Attacks > SuperHitsRequired(p.Brawler.Brawler)
}

// PlayerState is the mutable battle state of a player.
type PlayerState struct {
	Ammo uint8
	// Round in which the player last fired.
	LastUsedAmmo uint8
	// Successful attacks since the last super.
	Attacks    uint32
	Invincible bool
	Status     CharacterStatus
	Spawn      *PlayerSpawn
	MaxHealth  uint32
	Health     uint32
	// Round in which the player last dealt or took damage.
	LastAttackRound uint8
	Stunned         bool
	Position        Position
	// Extra holds mode-specific counters, e.g. gems in Gem Grab.
	Extra map[string]uint8
}

func NewPlayerState(ammo uint8, health uint32) PlayerState {
	return PlayerState{
		Ammo:      ammo,
		Status:    StatusAlive,
		MaxHealth: health,
		Health:    health,
		Extra:     map[string]uint8{},
	}
}

// DistanceFrom returns the euclidean distance to the other player.
func (s *PlayerState) DistanceFrom(other *PlayerState) float32 {
	dx := float64(s.Position.X) - float64(other.Position.X)
	dy := float64(s.Position.Y) - float64(other.Position.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// RegenerateAmmo restores one ammo if the rounds since the last shot
// cover the brawler's reload and the clip is not full.
func (s *PlayerState) RegenerateAmmo(b Brawler, round uint8) bool {
	attack := b.Info().Attack
	reload := uint8(math.Ceil(float64(attack.Reload)))

	var since uint8
	if round > reload {
		since = round - reload
	}
	if s.LastUsedAmmo <= since && s.Ammo < attack.MaxAmmo {
		s.Ammo++
		return true
	}
	return false
}

// Heal restores health up to the maximum.
func (s *PlayerState) Heal(amount uint32) {
	s.Health = min(s.MaxHealth, s.Health+amount)
}

// Damage applies damage, flooring health at zero and updating the
// status when the player dies.
func (s *PlayerState) Damage(amount uint32) {
	if s.Health <= amount {
		s.Health = 0
		s.Status = StatusDead
		return
	}
	s.Health -= amount
}

// IsAlive considers health in addition to the status.
func (s *PlayerState) IsAlive() bool {
	return s.Status.IsAlive() || s.Health > 0
}

func (s *PlayerState) IsRespawning() bool {
	return s.Status.IsRespawning()
}

// IsDead considers health in addition to the status.
func (s *PlayerState) IsDead() bool {
	return s.Status.IsDead() || s.Health == 0
}
