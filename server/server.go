// Package server runs the frontend of a brawl node: the TCP accept
// loop, packet decoding, message routing into components and the
// metrics endpoint.
package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"brawl/agent"
	"brawl/component"
	"brawl/internal/message"
	"brawl/internal/packet"
	"brawl/metrics"
	"brawl/session"
)

type Options struct {
	Name             string
	ClientAddr       string
	MetricsAddr      string
	HeartbeatTimeout time.Duration
}

type Server struct {
	Options

	log         *zap.Logger
	sessionPool session.Pool
	components  *component.Components

	mu       sync.Mutex
	listener net.Listener
	metrics  *http.Server
	stopc    chan struct{}
}

func New(opts Options, log *zap.Logger) *Server {
	if opts.HeartbeatTimeout <= 0 {
		opts.HeartbeatTimeout = 5 * time.Second
	}
	return &Server{
		Options:     opts,
		log:         log.Named("server"),
		sessionPool: session.NewPool(),
		components:  component.NewComponents(log),
		stopc:       make(chan struct{}),
	}
}

func (s *Server) SessionPool() session.Pool { return s.sessionPool }

func (s *Server) Components() *component.Components { return s.components }

func (s *Server) Register(name string, c component.Component) error {
	return s.components.Register(name, c)
}

// Startup initializes components and begins accepting clients.
func (s *Server) Startup() error {
	if err := s.components.Start(); err != nil {
		return err
	}
	if err := s.initFrontend(); err != nil {
		return err
	}
	s.initMetrics()
	s.log.Info("server started",
		zap.String("name", s.Name),
		zap.String("client_addr", s.ClientAddr))
	return nil
}

func (s *Server) initFrontend() error {
	if s.ClientAddr == "" {
		return errors.New("server: no client address configured")
	}
	ls, err := net.Listen("tcp", s.ClientAddr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.ClientAddr, err)
	}
	s.mu.Lock()
	s.listener = ls
	s.mu.Unlock()

	go func() {
		for {
			conn, err := ls.Accept()
			if err != nil {
				select {
				case <-s.stopc:
				default:
					s.log.Warn("accept failed", zap.Error(err))
				}
				return
			}
			go s.handleConn(conn)
		}
	}()
	return nil
}

func (s *Server) initMetrics() {
	if s.MetricsAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s.metrics = &http.Server{Addr: s.MetricsAddr, Handler: mux}
	go func() {
		if err := s.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Warn("metrics server stopped", zap.Error(err))
		}
	}()
}

func (s *Server) handleConn(conn net.Conn) {
	a := agent.NewAgent(conn, s.sessionPool, s.log, s.HeartbeatTimeout)
	sess := a.Session()
	metrics.SessionsActive.Inc()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("connection handler panic", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
		}
		a.Close()
		s.components.OnSessionDisconnect(sess)
		session.Lifetime.Close(sess)
		s.sessionPool.Remove(sess.ID())
		metrics.SessionsActive.Dec()
	}()

	s.components.OnSessionConnect(sess)

	buf := make([]byte, 2048)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			s.log.Debug("connection closed",
				zap.Int64("session", sess.ID()),
				zap.Error(err))
			return
		}
		packets, err := a.Decode(buf[:n])
		if err != nil {
			s.log.Warn("packet decode failed", zap.Int64("session", sess.ID()), zap.Error(err))
			return
		}
		a.UpdateHeartbeat()
		for _, pkg := range packets {
			if err := s.processPacket(sess, pkg); err != nil {
				s.log.Warn("process packet failed", zap.Int64("session", sess.ID()), zap.Error(err))
				return
			}
		}
	}
}

func (s *Server) processPacket(sess session.Session, pkg *packet.Packet) error {
	switch pkg.Type {
	case packet.Heartbeat:
		return nil
	case packet.Forward:
		return nil
	case packet.Data:
		msg, err := message.Decode(pkg.Data)
		if err != nil {
			return err
		}
		if msg.Route == "" {
			return fmt.Errorf("server: no route registered for message id %d", msg.ID)
		}
		return s.components.Route(sess, msg)
	default:
		return fmt.Errorf("server: packet type %d not handled", pkg.Type)
	}
}

// Shutdown blocks until SIGINT/SIGTERM, then stops accepting and tears
// components down.
func (s *Server) Shutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c
	s.Stop()
}

func (s *Server) Stop() {
	select {
	case <-s.stopc:
		return
	default:
		close(s.stopc)
	}

	s.mu.Lock()
	if s.listener != nil {
		s.listener.Close()
	}
	if s.metrics != nil {
		s.metrics.Close()
	}
	s.mu.Unlock()

	s.components.Stop()
	s.log.Info("server stopped", zap.String("name", s.Name))
}
