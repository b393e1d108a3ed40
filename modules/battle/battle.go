// Package battle is the framework component that exposes the arena
// over the wire: clients queue with a brawler pick, answer move
// prompts and get the outcome pushed when their battle ends.
package battle

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"brawl/catalog"
	"brawl/component"
	"brawl/gameplay"
	"brawl/internal/message"
	"brawl/model"
	"brawl/session"
)

// Message ids of the battle routes and pushes.
const (
	MIDJoin  uint64 = 101
	MIDLeave uint64 = 102
	MIDMove  uint64 = 103

	MIDInfo   uint64 = 110
	MIDPrompt uint64 = 111
	MIDOver   uint64 = 112
)

// RouteDict maps the request message ids onto the component routes.
func RouteDict() map[uint64]string {
	return map[uint64]string{
		MIDJoin:  "Battle.Join",
		MIDLeave: "Battle.Leave",
		MIDMove:  "Battle.Move",
	}
}

// JoinRequest queues the session for a battle.
type JoinRequest struct {
	Event    string `codec:"event"`
	Brawler  string `codec:"brawler"`
	Level    uint32 `codec:"level"`
	Trophies uint32 `codec:"trophies"`
}

type JoinResponse struct {
	Queued bool   `codec:"queued"`
	Reason string `codec:"reason,omitempty"`
}

// LeaveRequest withdraws a queued session. Players already in a battle
// cannot leave.
type LeaveRequest struct {
	Event string `codec:"event"`
}

type LeaveResponse struct {
	Left bool `codec:"left"`
}

// MoveRequest answers the pending move prompt with the picked index.
type MoveRequest struct {
	Index int `codec:"index"`
}

// InfoPush carries battle commentary to a player.
type InfoPush struct {
	Message string `codec:"message"`
}

// MovePrompt asks the player to pick one of the offered moves by index.
type MovePrompt struct {
	Moves []string `codec:"moves"`
}

// OverPush reports the battle outcome.
type OverPush struct {
	Won      bool   `codec:"won"`
	Draw     bool   `codec:"draw"`
	Trophies int32  `codec:"trophies"`
	Error    string `codec:"error,omitempty"`
}

// Battle is the arena-facing component. Its handlers run on the
// component mailbox; move prompts arrive from arena workers, so the
// session and prompt state is guarded by a mutex.
type Battle struct {
	component.Base

	log     *zap.Logger
	arena   *gameplay.Arena
	catalog *catalog.Catalog

	mu       sync.Mutex
	defaults map[string]gameplay.Brawler
	sessions map[gameplay.PlayerID]session.Session
	queued   map[gameplay.PlayerID]model.Event
	pending  map[gameplay.PlayerID]chan int
}

// New builds the component. The catalog is optional; when nil only the
// built-in brawlers are pickable.
func New(log *zap.Logger, arena *gameplay.Arena, cat *catalog.Catalog) *Battle {
	return &Battle{
		log:      log.Named("battle"),
		arena:    arena,
		catalog:  cat,
		defaults: gameplay.DefaultBrawlers(),
		sessions: map[gameplay.PlayerID]session.Session{},
		queued:   map[gameplay.PlayerID]model.Event{},
		pending:  map[gameplay.PlayerID]chan int{},
	}
}

func (b *Battle) Init() {
	message.SetRouteDict(RouteDict())
}

func (b *Battle) Shutdown() {
	b.arena.Close()
}

func (b *Battle) OnSessionDisconnect(s session.Session) {
	id := gameplay.PlayerID(s.ID())

	b.mu.Lock()
	event, wasQueued := b.queued[id]
	delete(b.queued, id)
	delete(b.sessions, id)
	b.mu.Unlock()

	if wasQueued {
		b.arena.Leave(event, id)
	}
}

// Join queues the session for a battle with the picked brawler.
func (b *Battle) Join(s session.Session, req *JoinRequest) error {
	event, err := model.ParseEvent(req.Event)
	if err != nil {
		return s.Response(MIDJoin, JoinResponse{Reason: err.Error()})
	}

	brawler, ok := b.pickBrawler(req.Brawler)
	if !ok {
		return s.Response(MIDJoin, JoinResponse{
			Reason: fmt.Sprintf("unknown brawler %q", req.Brawler),
		})
	}

	id := gameplay.PlayerID(s.ID())
	player := gameplay.NewPlayer(id, gameplay.NewBrawlerState(brawler, req.Level), false)

	b.mu.Lock()
	b.sessions[id] = s
	b.queued[id] = event
	b.mu.Unlock()

	ticket := &gameplay.Ticket{
		Player:   player,
		Trophies: req.Trophies,
		Handler:  b,
		Done: func(result gameplay.GameResult, err error) {
			b.battleOver(id, result, err)
		},
	}
	if err := b.arena.Join(event, ticket); err != nil {
		b.mu.Lock()
		delete(b.queued, id)
		b.mu.Unlock()
		return s.Response(MIDJoin, JoinResponse{Reason: err.Error()})
	}
	return s.Response(MIDJoin, JoinResponse{Queued: true})
}

// Leave withdraws the session from the matchmaking queue.
func (b *Battle) Leave(s session.Session, req *LeaveRequest) error {
	event, err := model.ParseEvent(req.Event)
	if err != nil {
		return s.Response(MIDLeave, LeaveResponse{})
	}

	id := gameplay.PlayerID(s.ID())
	left := b.arena.Leave(event, id)
	if left {
		b.mu.Lock()
		delete(b.queued, id)
		b.mu.Unlock()
	}
	return s.Response(MIDLeave, LeaveResponse{Left: left})
}

// Move answers the player's pending move prompt. A move without a
// pending prompt is dropped.
func (b *Battle) Move(s session.Session, req *MoveRequest) error {
	id := gameplay.PlayerID(s.ID())

	b.mu.Lock()
	answer := b.pending[id]
	b.mu.Unlock()

	if answer == nil {
		b.log.Debug("move without pending prompt", zap.Int64("session", s.ID()))
		return nil
	}
	select {
	case answer <- req.Index:
	default:
	}
	return nil
}

// Info implements gameplay.Handler.
func (b *Battle) Info(ctx context.Context, player gameplay.PlayerID, msg string) error {
	s, ok := b.sessionOf(player)
	if !ok {
		return fmt.Errorf("battle: no session for player %d", player)
	}
	return s.Push(MIDInfo, InfoPush{Message: msg})
}

// MoveIndex implements gameplay.Handler: it pushes the prompt to the
// acting player and waits for the Move handler to answer it.
func (b *Battle) MoveIndex(ctx context.Context, moves []gameplay.Move, first, second *gameplay.Player) (int, error) {
	s, ok := b.sessionOf(first.ID)
	if !ok {
		return 0, fmt.Errorf("battle: no session for player %d", first.ID)
	}

	answer := make(chan int, 1)
	b.mu.Lock()
	b.pending[first.ID] = answer
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		delete(b.pending, first.ID)
		b.mu.Unlock()
	}()

	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	if err := s.Push(MIDPrompt, MovePrompt{Moves: names}); err != nil {
		return 0, err
	}

	select {
	case idx := <-answer:
		return idx, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (b *Battle) battleOver(id gameplay.PlayerID, result gameplay.GameResult, err error) {
	b.mu.Lock()
	delete(b.queued, id)
	s := b.sessions[id]
	b.mu.Unlock()

	if s == nil {
		return
	}

	over := OverPush{Draw: result.IsDraw()}
	switch {
	case err != nil:
		over.Error = err.Error()
	case result.IsDecisive() && result.Winner == id:
		over.Won = true
		over.Trophies = gameplay.WinnerTrophies
	case result.IsDecisive():
		over.Trophies = gameplay.LoserTrophies
	}
	if pushErr := s.Push(MIDOver, over); pushErr != nil {
		b.log.Warn("push battle result", zap.Int64("session", int64(id)), zap.Error(pushErr))
	}
}

func (b *Battle) sessionOf(id gameplay.PlayerID) (session.Session, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[id]
	return s, ok
}

// pickBrawler resolves a name against the catalog roster first and the
// built-in brawlers second. Catalog entries battle with their static
// model data.
func (b *Battle) pickBrawler(name string) (gameplay.Brawler, bool) {
	if b.catalog != nil {
		if entry, ok := b.catalog.Brawler(name); ok {
			return &rosterBrawler{data: entry}, true
		}
	}
	brawler, ok := b.defaults[name]
	return brawler, ok
}

// rosterBrawler adapts a catalog roster entry into a battle brawler.
type rosterBrawler struct {
	data model.Brawler
}

func (r *rosterBrawler) Info() *model.Brawler { return &r.data }
