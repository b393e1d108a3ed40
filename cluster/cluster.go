// Package cluster links brawl nodes with a bidirectional frame relay
// over grpc. The service descriptor is written out directly and frames
// travel as msgpack, so no generated stubs are involved.
package cluster

import (
	"google.golang.org/grpc"

	"brawl/internal/serializer"
)

// CodecName is the grpc codec name frames are negotiated under.
const CodecName = "brawl-msgpack"

// FrameKind tells a receiving node what to do with a frame.
type FrameKind byte

const (
	// KindNotify routes the frame into the node's components.
	KindNotify FrameKind = iota
	// KindPush delivers the frame to the target session as a push.
	KindPush
	// KindSessionClose tells the node a remote session is gone.
	KindSessionClose
	// KindResponse answers a relayed request on the session's home node.
	KindResponse
)

// Frame is the unit relayed between nodes. SessionID is always the id
// on the session's home node; Origin carries the home node's relay
// address on notifies so replies can find their way back.
type Frame struct {
	SessionID int64     `codec:"sid"`
	Kind      FrameKind `codec:"kind"`
	MID       uint64    `codec:"mid"`
	Route     string    `codec:"route,omitempty"`
	Origin    string    `codec:"origin,omitempty"`
	Data      []byte    `codec:"data,omitempty"`
}

// Codec satisfies grpc/encoding.Codec with the framework serializer.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return serializer.Encode(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return serializer.Decode(data, v)
}

func (Codec) Name() string { return CodecName }

// RelayServer is the server side of the relay stream.
type RelayServer interface {
	Relay(stream grpc.BidiStreamingServer[Frame, Frame]) error
}

func relayStreamHandler(srv any, stream grpc.ServerStream) error {
	return srv.(RelayServer).Relay(&grpc.GenericServerStream[Frame, Frame]{ServerStream: stream})
}

// ServiceDesc is the relay service descriptor, in the shape protoc
// would have emitted it.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "brawl.cluster.Relay",
	HandlerType: (*RelayServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Relay",
			Handler:       relayStreamHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "brawl/cluster",
}

const relayFullMethod = "/brawl.cluster.Relay/Relay"

func RegisterRelayServer(s grpc.ServiceRegistrar, srv RelayServer) {
	s.RegisterService(&ServiceDesc, srv)
}
