package session

import "sync"

type LifetimeHandler func(Session)

type lifetime struct {
	mu       sync.RWMutex
	onClosed []LifetimeHandler
}

// Lifetime dispatches session close hooks registered by components that
// need to release per-player state outside their own mailbox.
var Lifetime = &lifetime{}

func (lt *lifetime) OnClosed(h LifetimeHandler) {
	lt.mu.Lock()
	lt.onClosed = append(lt.onClosed, h)
	lt.mu.Unlock()
}

func (lt *lifetime) Close(s Session) {
	lt.mu.RLock()
	handlers := lt.onClosed
	lt.mu.RUnlock()

	for _, h := range handlers {
		h(s)
	}
}
