package battle

import (
	"net"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brawl/gameplay"
	"brawl/internal/serializer"
	"brawl/session"
)

// clientEntity fakes the connection agent. Pushes are decoded and, for
// move prompts, answered through the component like a real client
// would.
type clientEntity struct {
	mu       sync.Mutex
	battle   *Battle
	session  session.Session
	strategy func(moves []string) int

	infos     []string
	responses map[uint64][]byte
	over      chan OverPush
}

func newClientEntity(strategy func(moves []string) int) *clientEntity {
	return &clientEntity{
		strategy:  strategy,
		responses: map[uint64][]byte{},
		over:      make(chan OverPush, 1),
	}
}

func (c *clientEntity) Push(sessionID int64, mid uint64, data []byte) error {
	switch mid {
	case MIDInfo:
		var info InfoPush
		if err := serializer.Decode(data, &info); err != nil {
			return err
		}
		c.mu.Lock()
		c.infos = append(c.infos, info.Message)
		c.mu.Unlock()

	case MIDPrompt:
		var prompt MovePrompt
		if err := serializer.Decode(data, &prompt); err != nil {
			return err
		}
		return c.battle.Move(c.session, &MoveRequest{Index: c.strategy(prompt.Moves)})

	case MIDOver:
		var over OverPush
		if err := serializer.Decode(data, &over); err != nil {
			return err
		}
		c.over <- over
	}
	return nil
}

func (c *clientEntity) Response(sessionID int64, mid uint64, data []byte) error {
	c.mu.Lock()
	c.responses[mid] = data
	c.mu.Unlock()
	return nil
}

func (c *clientEntity) Kick(sessionID int64) error { return nil }
func (c *clientEntity) RemoteAddr() net.Addr       { return &net.TCPAddr{} }
func (c *clientEntity) Close() error               { return nil }

func (c *clientEntity) joinResponse(t *testing.T) JoinResponse {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.responses[MIDJoin]
	require.True(t, ok, "no join response recorded")
	var resp JoinResponse
	require.NoError(t, serializer.Decode(raw, &resp))
	return resp
}

func (c *clientEntity) leaveResponse(t *testing.T) LeaveResponse {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.responses[MIDLeave]
	require.True(t, ok, "no leave response recorded")
	var resp LeaveResponse
	require.NoError(t, serializer.Decode(raw, &resp))
	return resp
}

func gemCollector(moves []string) int {
	if i := slices.Index(moves, gameplay.MoveCollectGem.String()); i >= 0 {
		return i
	}
	if i := slices.Index(moves, gameplay.MoveCollectDroppedGems.String()); i >= 0 {
		return i
	}
	return 0
}

func newTestBattle(t *testing.T) *Battle {
	t.Helper()
	arena, err := gameplay.NewArena(zap.NewNop(), gameplay.ArenaOptions{
		Workers:       4,
		BattleTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	b := New(zap.NewNop(), arena, nil)
	t.Cleanup(b.Shutdown)
	return b
}

func connect(b *Battle, pool session.Pool, strategy func([]string) int) (*clientEntity, session.Session) {
	entity := newClientEntity(strategy)
	s := pool.NewSession(entity)
	entity.battle = b
	entity.session = s
	return entity, s
}

func TestJoinRejectsUnknownEvent(t *testing.T) {
	b := newTestBattle(t)
	entity, s := connect(b, session.NewPool(), gemCollector)

	require.NoError(t, b.Join(s, &JoinRequest{Event: "takedown", Brawler: "Shelly"}))
	resp := entity.joinResponse(t)
	assert.False(t, resp.Queued)
	assert.NotEmpty(t, resp.Reason)
}

func TestJoinRejectsUnknownBrawler(t *testing.T) {
	b := newTestBattle(t)
	entity, s := connect(b, session.NewPool(), gemCollector)

	require.NoError(t, b.Join(s, &JoinRequest{Event: "Gem Grab", Brawler: "Mortis"}))
	resp := entity.joinResponse(t)
	assert.False(t, resp.Queued)
	assert.Contains(t, resp.Reason, "Mortis")
}

func TestLeaveDequeues(t *testing.T) {
	b := newTestBattle(t)
	pool := session.NewPool()
	entity, s := connect(b, pool, gemCollector)

	require.NoError(t, b.Leave(s, &LeaveRequest{Event: "gemgrab"}))
	assert.False(t, entity.leaveResponse(t).Left, "nothing queued yet")

	require.NoError(t, b.Join(s, &JoinRequest{Event: "gemgrab", Brawler: "Shelly", Level: 1}))
	require.True(t, entity.joinResponse(t).Queued)

	require.NoError(t, b.Leave(s, &LeaveRequest{Event: "gemgrab"}))
	assert.True(t, entity.leaveResponse(t).Left)
}

func TestDisconnectDequeues(t *testing.T) {
	b := newTestBattle(t)
	pool := session.NewPool()
	entity, s := connect(b, pool, gemCollector)

	require.NoError(t, b.Join(s, &JoinRequest{Event: "gemgrab", Brawler: "Nita", Level: 1}))
	require.True(t, entity.joinResponse(t).Queued)

	b.OnSessionDisconnect(s)

	require.NoError(t, b.Leave(s, &LeaveRequest{Event: "gemgrab"}))
	assert.False(t, entity.leaveResponse(t).Left, "disconnect withdrew the ticket")
}

func TestMoveWithoutPromptIsDropped(t *testing.T) {
	b := newTestBattle(t)
	_, s := connect(b, session.NewPool(), gemCollector)

	assert.NoError(t, b.Move(s, &MoveRequest{Index: 3}))
}

func TestGemGrabBattleOverTheWire(t *testing.T) {
	b := newTestBattle(t)
	pool := session.NewPool()

	first, firstSess := connect(b, pool, gemCollector)
	second, secondSess := connect(b, pool, gemCollector)

	require.NoError(t, b.Join(firstSess, &JoinRequest{
		Event: "Gem Grab", Brawler: "Shelly", Level: 5, Trophies: 300,
	}))
	require.True(t, first.joinResponse(t).Queued)

	require.NoError(t, b.Join(secondSess, &JoinRequest{
		Event: "Gem Grab", Brawler: "Nita", Level: 5, Trophies: 280,
	}))
	require.True(t, second.joinResponse(t).Queued)

	var outcomes []OverPush
	for _, entity := range []*clientEntity{first, second} {
		select {
		case over := <-entity.over:
			outcomes = append(outcomes, over)
		case <-time.After(15 * time.Second):
			t.Fatal("battle did not finish")
		}
	}

	require.Len(t, outcomes, 2)
	for _, over := range outcomes {
		require.Empty(t, over.Error)
		assert.False(t, over.Draw, "gem collectors race to a decisive finish")
	}
	winners := 0
	for _, over := range outcomes {
		if over.Won {
			winners++
			assert.Equal(t, gameplay.WinnerTrophies, over.Trophies)
		} else {
			assert.Equal(t, gameplay.LoserTrophies, over.Trophies)
		}
	}
	assert.Equal(t, 1, winners)

	entries := b.arena.BattleLog().Drain()
	require.Len(t, entries, 1)
	assert.Equal(t, "Gem Grab", entries[0].GameMode)
	assert.Len(t, entries[0].Players, 2)
}
