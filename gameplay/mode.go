package gameplay

import (
	"context"
)

const (
	// roundLimit caps every battle; hitting it is a draw.
	roundLimit = 150
	// Rounds without dealing or taking damage before healing starts.
	healingQuietRounds = 3
	// Health restored per quiet round.
	healingOverTime = 100
)

// healOverTime heals a player that has stayed out of combat long
// enough. Reports whether healing happened.
func healOverTime(p *Player, round uint8) bool {
	if p.State.LastAttackRound+healingQuietRounds < round {
		p.Heal(healingOverTime)
		return true
	}
	return false
}

// handleStun clears a player's stun for the price of their turn and
// tells both players about it.
func handleStun(ctx context.Context, stunned *Player, other PlayerID, h Handler) error {
	if !stunned.State.Stunned {
		return nil
	}

	if err := h.Info(ctx, stunned.ID, "You are stunned!"); err != nil {
		return err
	}
	if err := h.Info(ctx, other, "Opponent is stunned!"); err != nil {
		return err
	}

	stunned.State.Stunned = false
	return nil
}

// timeOut tells both players the battle hit the round limit.
func timeOut(ctx context.Context, first, second PlayerID, h Handler) error {
	const msg = "Time's up. Match ended in a draw."
	if err := h.Info(ctx, first, msg); err != nil {
		return err
	}
	return h.Info(ctx, second, msg)
}

// finishResult turns the loop's optional result into the final one. No
// result means the battle timed out and both players are told so.
func finishResult(ctx context.Context, result *GameResult, players *Players, h Handler) (GameResult, error) {
	if result != nil {
		return *result, nil
	}
	if err := timeOut(ctx, players.First.ID, players.Second.ID, h); err != nil {
		return GameResult{}, err
	}
	return Drawn(), nil
}

// turnOrder alternates the acting player by round parity.
func turnOrder(players *Players, round uint8) (first, second *Player) {
	if round%2 == 0 {
		return players.First, players.Second
	}
	return players.Second, players.First
}

// pickMove offers the moves to the handler and validates the answer.
func pickMove(ctx context.Context, moves []Move, first, second *Player, h Handler) (Move, error) {
	idx, err := h.MoveIndex(ctx, moves, first, second)
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(moves) {
		return 0, ErrInvalidMove
	}
	return moves[idx], nil
}
