package gameplay

import (
	"context"
	"math/rand/v2"

	"brawl/internal/rng"
)

const (
	gemsKey    = "gems"
	gemsToWin  = 10
	gemPickups = 75 // percent
)

// GemGrab is a first-to-ten-gems duel. The mine offers a gem every
// round; a defeated player drops half their gems (rounded up) into a
// shared pool the opponent can scoop while they respawn.
type GemGrab struct {
	// Gems dropped by defeated players, up for grabs.
	dropped uint8
}

func NewGemGrab() *GemGrab {
	return &GemGrab{}
}

// Run plays Gem Grab to completion.
func (g *GemGrab) Run(ctx context.Context, r *rand.Rand, players *Players, h Handler) (GameResult, error) {
	players.First.State.Extra[gemsKey] = 0
	players.Second.State.Extra[gemsKey] = 0

	var result *GameResult

	for round := uint8(0); round < roundLimit; round++ {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}

		first, second := turnOrder(players, round)

		if first.State.IsRespawning() {
			if err := h.Info(ctx, first.ID, "You are respawning!"); err != nil {
				return GameResult{}, err
			}
			first.State.Status = StatusAlive
		} else {
			first.RegenerateAmmo(round)
			healOverTime(first, round)

			if first.State.Stunned {
				if err := handleStun(ctx, first, second.ID, h); err != nil {
					return GameResult{}, err
				}
				continue
			}

			move, err := pickMove(ctx, g.possibleMoves(first, second), first, second, h)
			if err != nil {
				return GameResult{}, err
			}
			g.handleMove(r, move, first, second)

			if second.State.Health == 0 {
				second.Respawn()
				g.dropGems(second)

				if err := h.Info(ctx, first.ID, "Opponent defeated! Respawning next round."); err != nil {
					return GameResult{}, err
				}
				if err := h.Info(ctx, second.ID, "You are defeated! Respawning next round."); err != nil {
					return GameResult{}, err
				}
				continue
			}
		}

		if res, over := g.checkResult(first, second); over {
			result = &res
			break
		}
	}

	return finishResult(ctx, result, players, h)
}

// dropGems moves half the player's gems (rounded up) into the shared
// pool.
func (g *GemGrab) dropGems(p *Player) {
	gems := p.State.Extra[gemsKey]
	dropped := gems/2 + gems%2
	p.State.Extra[gemsKey] = gems - dropped
	g.dropped += dropped
}

func (g *GemGrab) possibleMoves(first, second *Player) []Move {
	moves := []Move{MoveDodge, MoveCollectGem}

	canAttack := first.CanAttack()
	canSuper := first.CanSuper()

	if !second.State.IsRespawning() {
		if canAttack {
			moves = append(moves, MoveAttack)
		}
		if canSuper {
			moves = append(moves, MoveSuper)
		}
	} else {
		moves = append(moves, MoveCollectDroppedGems)
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

func (g *GemGrab) checkResult(first, second *Player) (GameResult, bool) {
	firstGems := first.State.Extra[gemsKey]
	secondGems := second.State.Extra[gemsKey]

	switch {
	case firstGems >= gemsToWin && secondGems < gemsToWin:
		return Decisive(first.ID, second.ID), true
	case secondGems >= gemsToWin && firstGems < gemsToWin:
		return Decisive(second.ID, first.ID), true
	case firstGems >= gemsToWin && secondGems >= gemsToWin:
		return Drawn(), true
	}
	return GameResult{}, false
}

func (g *GemGrab) handleMove(r *rand.Rand, move Move, first, second *Player) {
	switch move {
	case MoveCollectGem:
		got, _ := rng.SelectOne(r, []uint8{0, 1}, []uint32{100 - gemPickups, gemPickups})
		first.State.Extra[gemsKey] += got
	case MoveCollectDroppedGems:
		if g.dropped > 0 {
			first.State.Extra[gemsKey] += uint8(r.IntN(int(g.dropped)))
			g.dropped = 0
		}
	default:
		applyGeneral(move, first, second)
	}

	second.State.Invincible = false
}
