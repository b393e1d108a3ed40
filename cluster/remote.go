package cluster

import (
	"context"
	"fmt"
	"net"

	"brawl/session"
)

// Remote is the network entity behind a shadow session for a player
// whose connection lives on a peer node. Outbound traffic travels as
// relay frames addressed to the session's home node.
type Remote struct {
	peers  *ClientManager
	origin string
	// Session id on the home node, not the local shadow id.
	originID int64
}

var _ session.NetworkEntity = (*Remote)(nil)

func NewRemote(peers *ClientManager, origin string, originID int64) *Remote {
	return &Remote{peers: peers, origin: origin, originID: originID}
}

func (r *Remote) send(frame *Frame) error {
	c, err := r.peers.Get(context.Background(), r.origin)
	if err != nil {
		return err
	}
	if err := c.Send(frame); err != nil {
		r.peers.Drop(r.origin)
		return fmt.Errorf("cluster: relay to %s: %w", r.origin, err)
	}
	return nil
}

func (r *Remote) Push(_ int64, mid uint64, data []byte) error {
	return r.send(&Frame{SessionID: r.originID, Kind: KindPush, MID: mid, Data: data})
}

func (r *Remote) Response(_ int64, mid uint64, data []byte) error {
	return r.send(&Frame{SessionID: r.originID, Kind: KindResponse, MID: mid, Data: data})
}

func (r *Remote) Kick(_ int64) error {
	return r.send(&Frame{SessionID: r.originID, Kind: KindSessionClose})
}

func (r *Remote) RemoteAddr() net.Addr { return remoteAddr{origin: r.origin} }

func (r *Remote) Close() error {
	return r.Kick(r.originID)
}

type remoteAddr struct{ origin string }

func (a remoteAddr) Network() string { return "relay" }
func (a remoteAddr) String() string  { return a.origin }
