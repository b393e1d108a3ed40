// Package agent owns one client connection: the write pump, heartbeat
// supervision and the session bound to the connection.
package agent

import (
	"encoding/json"
	"fmt"
	"net"
	"runtime/debug"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"brawl/internal/codec"
	"brawl/internal/message"
	"brawl/internal/packet"
	"brawl/session"
)

const sendQueueSize = 1 << 8

func heartbeatData(now int64, interval time.Duration) []byte {
	hrdata := map[string]any{"code": 200, "sys": map[string]any{"heartbeat": interval.Seconds(), "servertime": now}}
	data, _ := json.Marshal(hrdata)
	hrd, _ := codec.Encode(packet.Heartbeat, data)
	return hrd
}

type (
	pendingMessage struct {
		typ     message.Type
		id      uint64
		payload []byte
	}

	Agent struct {
		*codec.Decoder
		conn             net.Conn
		session          session.Session
		log              *zap.Logger
		chDie            chan struct{}
		lastAt           atomic.Int64
		heartbeatTimeout time.Duration
		sendch           chan pendingMessage
		closed           atomic.Bool
	}
)

func NewAgent(conn net.Conn, pool session.Pool, log *zap.Logger, heartbeat time.Duration) *Agent {
	a := &Agent{
		Decoder:          codec.NewDecoder(),
		conn:             conn,
		log:              log.Named("agent"),
		chDie:            make(chan struct{}),
		heartbeatTimeout: heartbeat,
		sendch:           make(chan pendingMessage, sendQueueSize),
	}
	a.lastAt.Store(time.Now().Unix())
	a.session = pool.NewSession(a)
	go a.write()
	return a
}

func (a *Agent) Session() session.Session { return a.session }

func (a *Agent) Push(sessionID int64, mid uint64, data []byte) error {
	return a.send(pendingMessage{typ: message.Push, id: mid, payload: data})
}

func (a *Agent) Response(sessionID int64, mid uint64, data []byte) error {
	return a.send(pendingMessage{typ: message.Response, id: mid, payload: data})
}

func (a *Agent) Kick(sessionID int64) error {
	if a.closed.Load() {
		return nil
	}
	data, err := codec.Encode(packet.Kick, nil)
	if err != nil {
		return err
	}
	_, err = a.conn.Write(data)
	return err
}

func (a *Agent) RemoteAddr() net.Addr { return a.conn.RemoteAddr() }

// UpdateHeartbeat marks the connection alive. The server calls it on
// every inbound packet.
func (a *Agent) UpdateHeartbeat() {
	a.lastAt.Store(time.Now().Unix())
}

func (a *Agent) Close() error {
	if !a.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(a.chDie)
	return a.conn.Close()
}

func (a *Agent) send(m pendingMessage) error {
	if a.closed.Load() {
		return fmt.Errorf("agent: session %d closed", a.session.ID())
	}
	select {
	case a.sendch <- m:
		return nil
	default:
		return fmt.Errorf("agent: session %d send queue full", a.session.ID())
	}
}

func (a *Agent) write() {
	ticker := time.NewTicker(a.heartbeatTimeout)
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("write pump panic", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
		}
		ticker.Stop()
		a.Close()
	}()

	for {
		select {
		case now := <-ticker.C:
			if now.Unix()-int64(a.heartbeatTimeout.Seconds()*2) > a.lastAt.Load() {
				a.log.Info("heartbeat timeout, kicking session",
					zap.Int64("session", a.session.ID()),
					zap.Int64("last_seen", a.lastAt.Load()))
				return
			}
			if _, err := a.conn.Write(heartbeatData(now.UTC().Unix(), a.heartbeatTimeout)); err != nil {
				return
			}

		case m := <-a.sendch:
			frame, err := codec.Encode(packet.Data, message.Encode(&message.Message{Type: m.typ, ID: m.id, Data: m.payload}))
			if err != nil {
				a.log.Warn("encode outbound frame", zap.Error(err))
				continue
			}
			if _, err := a.conn.Write(frame); err != nil {
				a.log.Info("network write failed",
					zap.Int64("session", a.session.ID()),
					zap.Error(err))
				return
			}

		case <-a.chDie:
			return
		}
	}
}
