package gameplay

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"brawl/metrics"
	"brawl/model"
)

// Trophy deltas for a decisive battle.
const (
	WinnerTrophies int32 = 8
	LoserTrophies  int32 = -4
)

const (
	defaultWorkers       = 32
	defaultBattleTimeout = 2 * time.Minute
)

// Ticket is one player's entry into the matchmaking queue.
type Ticket struct {
	Player   *Player
	Trophies uint32
	// Handler runs the battle once the ticket is paired. The handler of
	// the first queued player serves both sides.
	Handler Handler
	// Done is called with the battle outcome. Optional.
	Done func(GameResult, error)
}

// ArenaOptions configure an Arena. Zero values pick the defaults.
type ArenaOptions struct {
	// Workers bounds the number of concurrently running battles.
	Workers int
	// BattleTimeout bounds a single battle including every handler
	// round trip.
	BattleTimeout time.Duration
}

// Arena pairs queued players per event and runs their battles on a
// bounded worker pool.
type Arena struct {
	log       *zap.Logger
	pool      *ants.Pool
	battleLog *BattleLog
	timeout   time.Duration

	mu      sync.Mutex
	waiting map[model.Event]*Ticket
}

func NewArena(log *zap.Logger, opts ArenaOptions) (*Arena, error) {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.BattleTimeout <= 0 {
		opts.BattleTimeout = defaultBattleTimeout
	}

	pool, err := ants.NewPool(opts.Workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("gameplay: arena pool: %w", err)
	}

	return &Arena{
		log:       log.Named("arena"),
		pool:      pool,
		battleLog: NewBattleLog(),
		timeout:   opts.BattleTimeout,
		waiting:   map[model.Event]*Ticket{},
	}, nil
}

// BattleLog exposes the finished-battle feed.
func (a *Arena) BattleLog() *BattleLog { return a.battleLog }

// Join queues a ticket for the event. The first ticket waits; the
// second one starts the battle. Joining twice with the same player id
// replaces the waiting ticket.
func (a *Arena) Join(event model.Event, t *Ticket) error {
	a.mu.Lock()
	opponent := a.waiting[event]
	if opponent == nil || opponent.Player.ID == t.Player.ID {
		t.Player.IsFirst = true
		a.waiting[event] = t
		a.mu.Unlock()
		return nil
	}
	delete(a.waiting, event)
	a.mu.Unlock()

	err := a.pool.Submit(func() {
		a.runBattle(event, opponent, t)
	})
	if err != nil {
		metrics.MessagesDropped.WithLabelValues("arena").Inc()
		a.mu.Lock()
		a.waiting[event] = opponent
		a.mu.Unlock()
		return fmt.Errorf("gameplay: submit battle: %w", err)
	}
	return nil
}

// Leave removes a waiting ticket. Reports whether the player was still
// queued; players already in a battle cannot leave.
func (a *Arena) Leave(event model.Event, player PlayerID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	t := a.waiting[event]
	if t == nil || t.Player.ID != player {
		return false
	}
	delete(a.waiting, event)
	return true
}

// Close stops accepting battles. Running battles finish on their own.
func (a *Arena) Close() {
	a.pool.Release()
}

func (a *Arena) runBattle(event model.Event, first, second *Ticket) {
	metrics.BattlesStarted.Inc()
	start := time.Now()

	log := a.log.With(
		zap.Stringer("event", event),
		zap.Int64("first", int64(first.Player.ID)),
		zap.Int64("second", int64(second.Player.ID)))
	log.Info("battle started")

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	game := NewGame(NewMode(event), NewPlayers(first.Player, second.Player), first.Handler)
	result, err := game.Run(ctx, r)

	metrics.BattleDuration.Observe(time.Since(start).Seconds())
	metrics.BattlesFinished.WithLabelValues(outcomeLabel(result, err)).Inc()

	if err != nil {
		log.Warn("battle aborted", zap.Error(err))
	} else {
		a.battleLog.Record(a.logEntry(event, result, first, second))
		log.Info("battle finished",
			zap.Bool("draw", result.IsDraw()),
			zap.Int64("winner", int64(result.Winner)),
			zap.Duration("took", time.Since(start)))
	}

	if first.Done != nil {
		first.Done(result, err)
	}
	if second.Done != nil {
		second.Done(result, err)
	}
}

func (a *Arena) logEntry(event model.Event, result GameResult, tickets ...*Ticket) BattleLogEntry {
	players := make([]PlayerLogEntry, 0, len(tickets))
	for _, t := range tickets {
		won := result.IsDecisive() && result.Winner == t.Player.ID

		var reward int32
		if result.IsDecisive() {
			reward = LoserTrophies
			if won {
				reward = WinnerTrophies
			}
		}

		players = append(players, PlayerLogEntry{
			ID: t.Player.ID,
			Brawler: BrawlerLogEntry{
				Name:     t.Player.Brawler.Brawler.Info().Name,
				Level:    t.Player.Brawler.Level,
				Trophies: t.Trophies,
			},
			RewardTrophies: reward,
			Won:            won,
		})
	}
	return NewBattleLogEntry(players, event.String())
}

func outcomeLabel(result GameResult, err error) string {
	switch {
	case err != nil:
		return "error"
	case result.IsDraw():
		return "draw"
	}
	return "decisive"
}
