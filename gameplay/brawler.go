package gameplay

import (
	"math"
	"math/rand/v2"

	"brawl/model"
)

// Brawler is a battle-capable brawler. Implementations only supply the
// static data; the combat math lives in the package functions so every
// brawler shares it.
type Brawler interface {
	Info() *model.Brawler
}

// BuffStat scales a level-1 base stat to the given level. Level 10 has
// the same stats as level 9; only gadgets unlock there.
func BuffStat(base, level uint32) uint32 {
	if level == 10 {
		level = 9
	}
	if level == 0 {
		level = 1
	}
	return base + uint32(float32(base)/20.0*float32(level-1))
}

// Health returns the brawler's health at the given level.
func Health(b Brawler, level uint32) uint32 {
	return BuffStat(b.Info().Health, level)
}

// SuperHitsRequired is the number of landed attacks that charge the
// super.
func SuperHitsRequired(b Brawler) uint32 {
	return b.Info().Super.HitsRequired
}

// HasSpawn reports whether the brawler's super summons a character.
func HasSpawn(b Brawler) bool {
	return b.Info().Super.Spawn != nil
}

// Stats returns the level-1 stats that scale with the level.
func Stats(b Brawler) map[string]uint32 {
	info := b.Info()
	return map[string]uint32{
		"health":       info.Health,
		"attack":       info.Attack.Damage,
		"super_damage": info.Super.Damage,
	}
}

// BuffStats scales every entry of Stats to the given level.
func BuffStats(b Brawler, level uint32) map[string]uint32 {
	stats := Stats(b)
	for stat, value := range stats {
		stats[stat] = BuffStat(value, level)
	}
	return stats
}

// PerformAttack fires the brawler's attack from first at second. Out of
// range shots consume nothing; in range the damage scales with how many
// projectiles connect at the distance, the closer the more.
func PerformAttack(b Brawler, first, second *PlayerState, level uint32) {
	attack := b.Info().Attack
	damage := BuffStat(attack.Damage, level)

	distance := first.DistanceFrom(second)
	if attack.Range < distance {
		return
	}

	second.Damage(damage * projectilesHit(attack.Projectiles, attack.Range, distance))
	first.Ammo--
}

// PerformSuper fires the brawler's super from first at second and
// resets the attack counter that charged it.
func PerformSuper(b Brawler, first, second *PlayerState, level uint32) {
	super := b.Info().Super
	damage := BuffStat(super.Damage, level)

	distance := first.DistanceFrom(second)
	if super.Range < distance {
		return
	}

	second.Damage(damage * projectilesHit(super.Projectiles, super.Range, distance))
	first.Attacks = 0
}

// projectilesHit spreads the projectiles over the distance gap. The gap
// is ceiled so near-zero gaps do not send the hit count through the
// roof; a zero gap lands every projectile.
func projectilesHit(projectiles uint32, rng, distance float32) uint32 {
	gap := math.Ceil(float64(rng - distance))
	if gap < 1 {
		return projectiles
	}
	return uint32(math.Ceil(float64(projectiles) / gap))
}

// ChanceScale randomly scales a raw stat to 100, 70, 50, 30 or 0
// percent of its value.
func ChanceScale(r *rand.Rand, raw uint32) uint32 {
	chance := r.Uint32N(11)
	switch {
	case chance >= 9:
		return raw
	case chance >= 6:
		return uint32(float32(raw) * 0.7)
	case chance >= 4:
		return uint32(float32(raw) * 0.5)
	case chance >= 2:
		return uint32(float32(raw) * 0.3)
	}
	return 0
}
