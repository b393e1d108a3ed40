// Package component implements the modular half of the framework.
// A component bundles related game logic (battles, boxes, progression)
// behind reflection-extracted message handlers; each registered
// component runs inside its own mailbox goroutine, which is the only
// goroutine that touches its state.
package component

import "brawl/session"

type Component interface {
	Init()
	Shutdown()
	OnSessionConnect(s session.Session)
	OnSessionDisconnect(s session.Session)
}

// Base is a no-op Component implementation for embedding, so concrete
// components only override the hooks they care about.
type Base struct{}

func (Base) Init()                                 {}
func (Base) Shutdown()                             {}
func (Base) OnSessionConnect(_ session.Session)    {}
func (Base) OnSessionDisconnect(_ session.Session) {}
