package gameplay

import (
	"context"
	"math/rand/v2"

	"brawl/internal/rng"
)

const (
	powerupsKey    = "powerups"
	powerupPickups = 25 // percent

	// Round at which the poison closes in on both players.
	poisonRound  = 40
	poisonDamage = 100
)

// Showdown is a last-one-standing duel. From round 40 the poison
// damages both players every turn, forcing a finish.
type Showdown struct {
	round uint8
}

func NewShowdown() *Showdown {
	return &Showdown{}
}

// Run plays Showdown to completion.
func (s *Showdown) Run(ctx context.Context, r *rand.Rand, players *Players, h Handler) (GameResult, error) {
	players.First.State.Extra[powerupsKey] = 0
	players.Second.State.Extra[powerupsKey] = 0

	var result *GameResult

	for ; s.round < roundLimit; s.round++ {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}

		first, second := turnOrder(players, s.round)

		first.RegenerateAmmo(s.round)
		healOverTime(first, s.round)

		if first.State.Stunned {
			if err := handleStun(ctx, first, second.ID, h); err != nil {
				return GameResult{}, err
			}
			continue
		}

		move, err := pickMove(ctx, s.possibleMoves(first, second), first, second, h)
		if err != nil {
			return GameResult{}, err
		}
		s.handleMove(r, move, first, second)
		s.poisonEffect(&first.State, &second.State)

		if res, over := s.checkResult(first, second); over {
			result = &res
			break
		}
	}

	return finishResult(ctx, result, players, h)
}

func (s *Showdown) possibleMoves(first, second *Player) []Move {
	moves := []Move{MoveDodge, MoveCollectPowerUp}

	canAttack := first.CanAttack()
	canSuper := first.CanSuper()

	if canAttack {
		moves = append(moves, MoveAttack)
	}
	if canSuper {
		moves = append(moves, MoveSuper)
	}

	if second.State.Spawn != nil {
		if canAttack {
			moves = append(moves, MoveAttackSpawn)
		}
		if canSuper {
			moves = append(moves, MoveSuperSpawn)
		}
	}

	return moves
}

func (s *Showdown) checkResult(first, second *Player) (GameResult, bool) {
	switch {
	case first.State.IsAlive() && second.State.IsDead():
		return Decisive(first.ID, second.ID), true
	case first.State.IsDead() && second.State.IsAlive():
		return Decisive(second.ID, first.ID), true
	case first.State.IsDead() && second.State.IsDead():
		return Drawn(), true
	}
	return GameResult{}, false
}

func (s *Showdown) handleMove(r *rand.Rand, move Move, first, second *Player) {
	switch move {
	case MoveCollectPowerUp:
		got, _ := rng.SelectOne(r, []uint8{0, 1}, []uint32{100 - powerupPickups, powerupPickups})
		first.State.Extra[powerupsKey] += got
	default:
		applyGeneral(move, first, second)
	}

	second.State.Invincible = false
}

func (s *Showdown) poisonEffect(first, second *PlayerState) {
	if s.round >= poisonRound {
		first.Damage(poisonDamage)
		second.Damage(poisonDamage)
	}
}
