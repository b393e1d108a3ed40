package cluster

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client holds one relay stream to a peer node.
type Client struct {
	conn   *grpc.ClientConn
	stream grpc.BidiStreamingClient[Frame, Frame]

	mu sync.Mutex
}

func dial(ctx context.Context, addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec{})),
	)
	if err != nil {
		return nil, fmt.Errorf("cluster: dial %s: %w", addr, err)
	}

	stream, err := conn.NewStream(ctx, &ServiceDesc.Streams[0], relayFullMethod)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("cluster: open relay stream to %s: %w", addr, err)
	}

	return &Client{
		conn:   conn,
		stream: &grpc.GenericClientStream[Frame, Frame]{ClientStream: stream},
	}, nil
}

// Send relays a frame. Stream writes are serialized; grpc forbids
// concurrent SendMsg on one stream.
func (c *Client) Send(frame *Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream.Send(frame)
}

func (c *Client) Close() error {
	c.stream.CloseSend()
	return c.conn.Close()
}

// ClientManager caches one relay client per peer address.
type ClientManager struct {
	mu      sync.Mutex
	clients map[string]*Client
}

func NewClientManager() *ClientManager {
	return &ClientManager{clients: map[string]*Client{}}
}

// Get returns the cached client for addr, dialing on first use.
func (m *ClientManager) Get(ctx context.Context, addr string) (*Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.clients[addr]; ok {
		return c, nil
	}
	c, err := dial(ctx, addr)
	if err != nil {
		return nil, err
	}
	m.clients[addr] = c
	return c, nil
}

// Drop closes and forgets the client for addr, typically after a send
// failure.
func (m *ClientManager) Drop(addr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.clients[addr]; ok {
		c.Close()
		delete(m.clients, addr)
	}
}

func (m *ClientManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for addr, c := range m.clients {
		c.Close()
		delete(m.clients, addr)
	}
}
