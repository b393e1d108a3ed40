package session

import (
	"net"
	"sync"
	"sync/atomic"

	"brawl/internal/serializer"
)

var sessionID atomic.Int64

// NetworkEntity is the transport behind a session: the connection agent
// for frontend sessions, the cluster relay for remote ones.
type NetworkEntity interface {
	Push(sessionID int64, mid uint64, data []byte) error
	Response(sessionID int64, mid uint64, data []byte) error
	Kick(sessionID int64) error
	RemoteAddr() net.Addr
	Close() error
}

// Session represents one connected player.
type Session interface {
	ID() int64
	UID() int64
	Bind(uid int64)
	// Push serializes v and sends it to the client as a server push.
	Push(mid uint64, v interface{}) error
	// Response serializes v and sends it as a reply to a client request.
	Response(mid uint64, v interface{}) error
	// Set stores a session-scoped value, Value retrieves it.
	Set(key string, v interface{})
	Value(key string) (interface{}, bool)
	RemoteAddr() net.Addr
	Close() error
}

type sessionImpl struct {
	id     int64
	uid    atomic.Int64
	entity NetworkEntity

	mu     sync.RWMutex
	values map[string]interface{}
}

func newSession(entity NetworkEntity, id int64) *sessionImpl {
	return &sessionImpl{id: id, entity: entity, values: map[string]interface{}{}}
}

func (s *sessionImpl) ID() int64 { return s.id }

func (s *sessionImpl) UID() int64 { return s.uid.Load() }

func (s *sessionImpl) Bind(uid int64) { s.uid.Store(uid) }

func (s *sessionImpl) Push(mid uint64, v interface{}) error {
	data, err := serializer.Encode(v)
	if err != nil {
		return err
	}
	return s.entity.Push(s.id, mid, data)
}

func (s *sessionImpl) Response(mid uint64, v interface{}) error {
	data, err := serializer.Encode(v)
	if err != nil {
		return err
	}
	return s.entity.Response(s.id, mid, data)
}

func (s *sessionImpl) Set(key string, v interface{}) {
	s.mu.Lock()
	s.values[key] = v
	s.mu.Unlock()
}

func (s *sessionImpl) Value(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *sessionImpl) RemoteAddr() net.Addr {
	return s.entity.RemoteAddr()
}

func (s *sessionImpl) Close() error {
	return s.entity.Close()
}

// Pool tracks every live session, indexed by session id and, once a
// session is bound, by uid.
type Pool interface {
	NewSession(entity NetworkEntity) Session
	Count() int64
	ByID(id int64) (Session, bool)
	ByUID(uid int64) (Session, bool)
	Bind(id, uid int64) bool
	Remove(id int64)
}

type poolImpl struct {
	mu    sync.RWMutex
	byID  map[int64]*sessionImpl
	byUID map[int64]*sessionImpl
}

func NewPool() Pool {
	return &poolImpl{byID: map[int64]*sessionImpl{}, byUID: map[int64]*sessionImpl{}}
}

func (p *poolImpl) NewSession(entity NetworkEntity) Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := newSession(entity, sessionID.Add(1))
	p.byID[s.id] = s
	return s
}

func (p *poolImpl) Count() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return int64(len(p.byID))
}

func (p *poolImpl) ByID(id int64) (Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.byID[id]
	return s, ok
}

func (p *poolImpl) ByUID(uid int64) (Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.byUID[uid]
	return s, ok
}

// Bind associates a uid with a session and indexes it. Returns false if
// the session is gone.
func (p *poolImpl) Bind(id, uid int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.byID[id]
	if !ok {
		return false
	}
	s.Bind(uid)
	p.byUID[uid] = s
	return true
}

func (p *poolImpl) Remove(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.byID[id]
	if !ok {
		return
	}
	delete(p.byID, id)
	if uid := s.UID(); uid != 0 {
		delete(p.byUID, uid)
	}
}
