package cluster

import (
	"errors"
	"fmt"
	"io"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// FrameHandler is implemented by whatever consumes inbound frames on a
// node, usually an adapter over the session pool and components.
type FrameHandler interface {
	HandleFrame(frame *Frame) error
}

// Server accepts relay streams from peer nodes.
type Server struct {
	addr    string
	log     *zap.Logger
	handler FrameHandler
	grpc    *grpc.Server
	ls      net.Listener
}

func NewServer(addr string, handler FrameHandler, log *zap.Logger) *Server {
	return &Server{addr: addr, handler: handler, log: log.Named("cluster")}
}

func (s *Server) Start() error {
	ls, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("cluster: listen %s: %w", s.addr, err)
	}
	s.ls = ls
	s.grpc = grpc.NewServer(grpc.ForceServerCodec(Codec{}))
	RegisterRelayServer(s.grpc, s)

	go func() {
		if err := s.grpc.Serve(ls); err != nil {
			s.log.Warn("relay server stopped", zap.Error(err))
		}
	}()
	s.log.Info("relay listening", zap.String("addr", s.addr))
	return nil
}

// Addr is the bound listener address, available after Start.
func (s *Server) Addr() net.Addr {
	if s.ls == nil {
		return nil
	}
	return s.ls.Addr()
}

func (s *Server) Stop() {
	if s.grpc != nil {
		s.grpc.GracefulStop()
	}
}

// Relay consumes frames from one peer until the stream ends.
func (s *Server) Relay(stream grpc.BidiStreamingServer[Frame, Frame]) error {
	for {
		frame, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := s.handler.HandleFrame(frame); err != nil {
			s.log.Warn("frame rejected",
				zap.Int64("session", frame.SessionID),
				zap.String("route", frame.Route),
				zap.Error(err))
		}
	}
}
