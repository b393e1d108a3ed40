package main

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"brawl/cluster"
	"brawl/internal/message"
	"brawl/internal/serializer"
	"brawl/server"
	"brawl/session"
)

// relayHandler consumes frames from peer nodes. Notifies route into the
// local components on behalf of a shadow session whose replies travel
// back over the relay; pushes and responses address sessions connected
// to this node.
type relayHandler struct {
	srv   *server.Server
	peers *cluster.ClientManager
	log   *zap.Logger

	mu sync.Mutex
	// Shadow sessions for peer players, keyed by their home-node id.
	remotes map[int64]session.Session
}

func newRelayHandler(srv *server.Server, peers *cluster.ClientManager, log *zap.Logger) *relayHandler {
	return &relayHandler{
		srv:     srv,
		peers:   peers,
		log:     log.Named("relay"),
		remotes: map[int64]session.Session{},
	}
}

func (h *relayHandler) HandleFrame(frame *cluster.Frame) error {
	switch frame.Kind {
	case cluster.KindNotify:
		sess, err := h.notifySession(frame)
		if err != nil {
			return err
		}
		msg := &message.Message{
			Type:  message.Notify,
			ID:    frame.MID,
			Route: frame.Route,
			Data:  frame.Data,
		}
		return h.srv.Components().Route(sess, msg)

	case cluster.KindPush, cluster.KindResponse:
		sess, ok := h.srv.SessionPool().ByID(frame.SessionID)
		if !ok {
			return fmt.Errorf("relay: session %d not found", frame.SessionID)
		}
		var v interface{}
		if err := serializer.Decode(frame.Data, &v); err != nil {
			return fmt.Errorf("relay: decode payload: %w", err)
		}
		if frame.Kind == cluster.KindResponse {
			return sess.Response(frame.MID, v)
		}
		return sess.Push(frame.MID, v)

	case cluster.KindSessionClose:
		return h.closeSession(frame.SessionID)
	}
	return fmt.Errorf("relay: unknown frame kind %d", frame.Kind)
}

// notifySession resolves the session a relayed request acts on: a local
// one when the id is known here, otherwise a shadow session replying
// through the frame's origin node.
func (h *relayHandler) notifySession(frame *cluster.Frame) (session.Session, error) {
	if sess, ok := h.srv.SessionPool().ByID(frame.SessionID); ok {
		return sess, nil
	}
	if frame.Origin == "" {
		return nil, fmt.Errorf("relay: session %d not found and frame has no origin", frame.SessionID)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if sess, ok := h.remotes[frame.SessionID]; ok {
		return sess, nil
	}
	sess := h.srv.SessionPool().NewSession(cluster.NewRemote(h.peers, frame.Origin, frame.SessionID))
	h.remotes[frame.SessionID] = sess
	h.log.Info("shadow session created",
		zap.Int64("origin_session", frame.SessionID),
		zap.String("origin", frame.Origin))
	return sess, nil
}

func (h *relayHandler) closeSession(originID int64) error {
	h.mu.Lock()
	sess, isShadow := h.remotes[originID]
	delete(h.remotes, originID)
	h.mu.Unlock()

	if !isShadow {
		local, ok := h.srv.SessionPool().ByID(originID)
		if !ok {
			return fmt.Errorf("relay: session %d not found", originID)
		}
		return local.Close()
	}

	h.srv.Components().OnSessionDisconnect(sess)
	session.Lifetime.Close(sess)
	h.srv.SessionPool().Remove(sess.ID())
	return nil
}
