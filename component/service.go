package component

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"

	"go.uber.org/zap"

	"brawl/internal/message"
	"brawl/internal/serializer"
	"brawl/pcall"
	"brawl/session"
)

const mailboxSize = 1 << 14

type envelopeType byte

const (
	envMessage envelopeType = iota
	envSessionConnect
	envSessionDisconnect
)

type (
	Handler struct {
		Receiver reflect.Value
		Method   reflect.Method
		Type     reflect.Type
	}

	envelope struct {
		typ   envelopeType
		sess  session.Session
		msg   *message.Message
		reply chan error
	}

	// Service wraps a component in a mailbox goroutine. All handler
	// dispatch for the component happens on that single goroutine.
	Service struct {
		Name     string
		Type     reflect.Type
		Receiver reflect.Value
		Handlers map[string]*Handler

		comp    Component
		log     *zap.Logger
		mailbox chan envelope
		stopc   chan struct{}
		running atomic.Bool
	}
)

func NewService(comp Component, log *zap.Logger) (*Service, error) {
	s := &Service{
		comp:     comp,
		Type:     reflect.TypeOf(comp),
		Receiver: reflect.ValueOf(comp),
		mailbox:  make(chan envelope, mailboxSize),
		stopc:    make(chan struct{}),
	}
	s.Name = reflect.Indirect(s.Receiver).Type().Name()
	s.log = log.Named(s.Name)

	if err := s.extractHandlers(); err != nil {
		return nil, err
	}

	s.running.Store(true)
	go s.loop()
	return s, nil
}

func (s *Service) extractHandlers() error {
	typeName := reflect.Indirect(s.Receiver).Type().Name()
	if typeName == "" {
		return errors.New("component: no service name for type " + s.Type.String())
	}
	if !isExported(typeName) {
		return errors.New("component: type " + typeName + " is not exported")
	}

	s.Handlers = make(map[string]*Handler)
	for m := 0; m < s.Type.NumMethod(); m++ {
		method := s.Type.Method(m)
		if isHandlerMethod(method) {
			s.Handlers[method.Name] = &Handler{
				Receiver: s.Receiver,
				Method:   method,
				Type:     method.Type.In(2),
			}
		}
	}

	if len(s.Handlers) == 0 {
		return errors.New("component: type " + s.Name + " has no exported methods of suitable type")
	}
	return nil
}

func (s *Service) loop() {
	for {
		select {
		case env := <-s.mailbox:
			s.process(env)
		case <-s.stopc:
			return
		}
	}
}

func (s *Service) process(env envelope) {
	switch env.typ {
	case envSessionConnect:
		s.comp.OnSessionConnect(env.sess)
	case envSessionDisconnect:
		s.comp.OnSessionDisconnect(env.sess)
	case envMessage:
		err := s.dispatch(env.sess, env.msg)
		if env.reply != nil {
			env.reply <- err
		} else if err != nil {
			s.log.Warn("dispatch failed",
				zap.String("route", env.msg.Route),
				zap.Error(err))
		}
	}
}

func (s *Service) dispatch(sess session.Session, msg *message.Message) error {
	_, handlerName := splitRoute(msg.Route)
	handler, ok := s.Handlers[handlerName]
	if !ok {
		return fmt.Errorf("component: handler %s not found in %s", handlerName, s.Name)
	}

	arg := reflect.New(handler.Type.Elem()).Interface()
	if err := serializer.Decode(msg.Data, arg); err != nil {
		return fmt.Errorf("component: decode %s payload: %w", msg.Route, err)
	}

	args := []reflect.Value{s.Receiver, reflect.ValueOf(sess), reflect.ValueOf(arg)}
	return pcall.Pcall1(s.log, handler.Method, args)
}

func (s *Service) HasHandler(name string) bool {
	_, ok := s.Handlers[name]
	return ok
}

func (s *Service) IsRunning() bool {
	return s.running.Load()
}

// Tell queues a message without waiting for the handler to run.
// A full mailbox is an error, never a block.
func (s *Service) Tell(sess session.Session, msg *message.Message) error {
	select {
	case s.mailbox <- envelope{typ: envMessage, sess: sess, msg: msg}:
		return nil
	default:
		return fmt.Errorf("component: service %s mailbox full", s.Name)
	}
}

// Ask queues a message and waits for the handler's error.
func (s *Service) Ask(sess session.Session, msg *message.Message) error {
	reply := make(chan error, 1)
	select {
	case s.mailbox <- envelope{typ: envMessage, sess: sess, msg: msg, reply: reply}:
	default:
		return fmt.Errorf("component: service %s mailbox full", s.Name)
	}
	return <-reply
}

func (s *Service) tellLifecycle(typ envelopeType, sess session.Session) {
	select {
	case s.mailbox <- envelope{typ: typ, sess: sess}:
	default:
		s.log.Warn("lifecycle event dropped, mailbox full", zap.Int64("session", sess.ID()))
	}
}

func (s *Service) Stop() {
	if s.running.CompareAndSwap(true, false) {
		close(s.stopc)
	}
}

func splitRoute(route string) (componentName, handlerName string) {
	for i, char := range route {
		if char == '.' {
			return route[:i], route[i+1:]
		}
	}
	return route, ""
}
