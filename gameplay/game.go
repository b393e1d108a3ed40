// Package gameplay is the battle core: players, battle brawlers, the
// game-mode engines and the matchmaking arena. A battle is a turn
// exchange between two players driven by a Handler, which bridges the
// loop to whatever transport the players sit behind.
package gameplay

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"brawl/model"
)

// PlayerID identifies a player for the duration of a battle. Frontend
// battles use the session id.
type PlayerID int64

// ErrInvalidMove is returned when a handler answers a move prompt with
// an index outside the offered moves.
var ErrInvalidMove = errors.New("gameplay: invalid move: index out of bounds")

// Handler bridges a running battle to its players. Info is fire and
// forget; MoveIndex blocks until the player picks one of the offered
// moves. Any error terminates the battle.
type Handler interface {
	Info(ctx context.Context, player PlayerID, msg string) error
	MoveIndex(ctx context.Context, moves []Move, first, second *Player) (int, error)
}

// Game is a single brawl between two players.
type Game struct {
	Mode    Mode
	Players Players
	Handler Handler
}

func NewGame(mode Mode, players Players, handler Handler) *Game {
	return &Game{Mode: mode, Players: players, Handler: handler}
}

// Run plays the game to completion. The generator drives every random
// roll of the battle so callers control seeding.
func (g *Game) Run(ctx context.Context, r *rand.Rand) (GameResult, error) {
	return g.Mode.Run(ctx, r, &g.Players, g.Handler)
}

// Players are the two participants of a game.
type Players struct {
	First  *Player
	Second *Player
}

func NewPlayers(first, second *Player) Players {
	return Players{First: first, Second: second}
}

// GameResult is the outcome of a finished game.
type GameResult struct {
	Winner PlayerID
	Loser  PlayerID
	// Draw is set when neither player won; Winner and Loser are then
	// meaningless.
	Draw bool
}

func Decisive(winner, loser PlayerID) GameResult {
	return GameResult{Winner: winner, Loser: loser}
}

func Drawn() GameResult {
	return GameResult{Draw: true}
}

func (r GameResult) IsDecisive() bool { return !r.Draw }

func (r GameResult) IsDraw() bool { return r.Draw }

// Move is one action a player can take on their turn. Which moves are
// offered depends on the game mode and the battle state.
type Move uint8

const (
	// MoveDodge makes the player invincible for the opponent's next move.
	MoveDodge Move = iota
	MoveAttack
	MoveSuper
	MoveAttackSpawn
	MoveSuperSpawn
	// MoveCollectGem tries to grab a gem from the mine (Gem Grab).
	MoveCollectGem
	// MoveCollectDroppedGems scoops gems a defeated opponent dropped
	// (Gem Grab, offered while the opponent respawns).
	MoveCollectDroppedGems
	// MoveCollectPowerUp tries to grab a power-up (Showdown).
	MoveCollectPowerUp
)

func (m Move) String() string {
	switch m {
	case MoveDodge:
		return "Dodge"
	case MoveAttack:
		return "Attack"
	case MoveSuper:
		return "Super"
	case MoveAttackSpawn:
		return "AttackSpawn"
	case MoveSuperSpawn:
		return "SuperSpawn"
	case MoveCollectGem:
		return "CollectGem"
	case MoveCollectDroppedGems:
		return "CollectDroppedGems"
	case MoveCollectPowerUp:
		return "CollectPowerUp"
	}
	return fmt.Sprintf("Move(%d)", uint8(m))
}

// applyGeneral executes a mode-independent move. Spawn moves are not
// implemented yet; no default brawler has an attackable spawn.
func applyGeneral(m Move, first, second *Player) {
	switch m {
	case MoveAttack:
		PerformAttack(first.Brawler.Brawler, &first.State, &second.State, first.Brawler.Level)
	case MoveSuper:
		PerformSuper(first.Brawler.Brawler, &first.State, &second.State, first.Brawler.Level)
	case MoveDodge:
		first.State.Invincible = true
	}
}

// Mode wraps an event with its battle engine.
type Mode struct {
	Event model.Event
}

func NewMode(event model.Event) Mode {
	return Mode{Event: event}
}

// Run dispatches to the engine for the event. Events without an engine
// return an error.
func (m Mode) Run(ctx context.Context, r *rand.Rand, players *Players, h Handler) (GameResult, error) {
	switch m.Event {
	case model.EventGemGrab:
		return NewGemGrab().Run(ctx, r, players, h)
	case model.EventShowdown:
		return NewShowdown().Run(ctx, r, players, h)
	}
	return GameResult{}, fmt.Errorf("gameplay: no battle engine for %s", m.Event)
}
