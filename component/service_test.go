package component

import (
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brawl/internal/message"
	"brawl/internal/serializer"
	"brawl/session"
)

type fakeEntity struct{}

func (fakeEntity) Push(sessionID int64, mid uint64, data []byte) error     { return nil }
func (fakeEntity) Response(sessionID int64, mid uint64, data []byte) error { return nil }
func (fakeEntity) Kick(sessionID int64) error                              { return nil }
func (fakeEntity) RemoteAddr() net.Addr                                    { return &net.TCPAddr{} }
func (fakeEntity) Close() error                                            { return nil }

func testSession() session.Session {
	return session.NewPool().NewSession(fakeEntity{})
}

type echoPayload struct {
	Text string `codec:"text"`
}

// Echo is a test component with one valid handler and a few methods
// that must not be picked up as handlers.
type Echo struct {
	Base

	inits       atomic.Int32
	shutdowns   atomic.Int32
	connects    atomic.Int32
	disconnects atomic.Int32
	lastText    atomic.Value
}

func (e *Echo) Init()     { e.inits.Add(1) }
func (e *Echo) Shutdown() { e.shutdowns.Add(1) }

func (e *Echo) OnSessionConnect(_ session.Session)    { e.connects.Add(1) }
func (e *Echo) OnSessionDisconnect(_ session.Session) { e.disconnects.Add(1) }

func (e *Echo) Say(s session.Session, req *echoPayload) error {
	e.lastText.Store(req.Text)
	return nil
}

func (e *Echo) Fail(s session.Session, req *echoPayload) error {
	panic("exploding handler")
}

// NotAHandler has the wrong argument shape.
func (e *Echo) NotAHandler(n int) error { return nil }

func encodeMessage(t *testing.T, route string, v interface{}) *message.Message {
	t.Helper()
	data, err := serializer.Encode(v)
	require.NoError(t, err)
	return &message.Message{Type: message.Request, Route: route, Data: data}
}

func TestServiceExtractsHandlers(t *testing.T) {
	s, err := NewService(&Echo{}, zap.NewNop())
	require.NoError(t, err)
	defer s.Stop()

	assert.Equal(t, "Echo", s.Name)
	assert.True(t, s.HasHandler("Say"))
	assert.True(t, s.HasHandler("Fail"))
	assert.False(t, s.HasHandler("NotAHandler"))
	assert.False(t, s.HasHandler("Init"))
}

func TestServiceAskDispatches(t *testing.T) {
	e := &Echo{}
	s, err := NewService(e, zap.NewNop())
	require.NoError(t, err)
	defer s.Stop()

	err = s.Ask(testSession(), encodeMessage(t, "Echo.Say", echoPayload{Text: "hi"}))
	require.NoError(t, err)
	assert.Equal(t, "hi", e.lastText.Load())
}

func TestServiceAskUnknownHandler(t *testing.T) {
	s, err := NewService(&Echo{}, zap.NewNop())
	require.NoError(t, err)
	defer s.Stop()

	err = s.Ask(testSession(), encodeMessage(t, "Echo.Nope", echoPayload{}))
	assert.ErrorContains(t, err, "not found")
}

func TestServiceContainsHandlerPanic(t *testing.T) {
	s, err := NewService(&Echo{}, zap.NewNop())
	require.NoError(t, err)
	defer s.Stop()

	err = s.Ask(testSession(), encodeMessage(t, "Echo.Fail", echoPayload{}))
	assert.EqualError(t, err, "exploding handler")
	assert.True(t, s.IsRunning(), "a panicking handler does not kill the loop")
}

func TestComponentsLifecycle(t *testing.T) {
	e := &Echo{}
	cs := NewComponents(zap.NewNop())
	require.NoError(t, cs.Register("Echo", e))
	assert.Error(t, cs.Register("Echo", e), "duplicate name")

	require.NoError(t, cs.Start())
	assert.True(t, cs.IsStarted())
	assert.EqualValues(t, 1, e.inits.Load())

	sess := testSession()
	cs.OnSessionConnect(sess)
	cs.OnSessionDisconnect(sess)
	require.Eventually(t, func() bool {
		return e.connects.Load() == 1 && e.disconnects.Load() == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, cs.Route(sess, encodeMessage(t, "Echo.Say", echoPayload{Text: "routed"})))
	require.Eventually(t, func() bool {
		return e.lastText.Load() == "routed"
	}, time.Second, 5*time.Millisecond)

	assert.Error(t, cs.Route(sess, encodeMessage(t, "Nothing.Say", echoPayload{})))
	assert.Error(t, cs.Route(sess, encodeMessage(t, "bareroute", echoPayload{})))

	cs.Stop()
	assert.False(t, cs.IsStarted())
	assert.EqualValues(t, 1, e.shutdowns.Load())
}

func TestRegisterAfterStart(t *testing.T) {
	cs := NewComponents(zap.NewNop())
	require.NoError(t, cs.Start())
	defer cs.Stop()

	e := &Echo{}
	require.NoError(t, cs.Register("Late", e))
	assert.EqualValues(t, 1, e.inits.Load(), "late components initialize immediately")

	require.NoError(t, cs.Unregister("Late"))
	assert.False(t, cs.HasComponent("Late"))
}
