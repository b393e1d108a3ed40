package component

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"brawl/internal/message"
	"brawl/session"
)

// Components is the registry of every component mounted on a server.
type Components struct {
	mu         sync.RWMutex
	services   map[string]*Service
	components map[string]Component
	log        *zap.Logger
	started    bool
	stopOnce   sync.Once
}

func NewComponents(log *zap.Logger) *Components {
	return &Components{
		services:   make(map[string]*Service),
		components: make(map[string]Component),
		log:        log.Named("components"),
	}
}

// Register mounts a component under name. Components registered after
// Start are initialized immediately.
func (cs *Components) Register(name string, c Component) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, ok := cs.components[name]; ok {
		return fmt.Errorf("component: %s already registered", name)
	}
	cs.components[name] = c

	if cs.started {
		if err := cs.initComponent(name, c); err != nil {
			delete(cs.components, name)
			return fmt.Errorf("component: initialize %s: %w", name, err)
		}
	}
	return nil
}

func (cs *Components) Unregister(name string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	c, ok := cs.components[name]
	if !ok {
		return fmt.Errorf("component: %s not found", name)
	}
	if service, ok := cs.services[name]; ok {
		service.Stop()
		delete(cs.services, name)
	}
	c.Shutdown()
	delete(cs.components, name)

	cs.log.Info("unregistered component", zap.String("name", name))
	return nil
}

func (cs *Components) initComponent(name string, c Component) error {
	c.Init()

	service, err := NewService(c, cs.log)
	if err != nil {
		return err
	}
	cs.services[name] = service

	cs.log.Info("initialized component",
		zap.String("name", name),
		zap.Int("handlers", len(service.Handlers)))
	return nil
}

func (cs *Components) Start() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.started {
		return errors.New("component: components already started")
	}
	for name, c := range cs.components {
		if err := cs.initComponent(name, c); err != nil {
			cs.cleanupServices()
			return fmt.Errorf("component: initialize %s: %w", name, err)
		}
	}
	cs.started = true
	return nil
}

func (cs *Components) Stop() {
	cs.stopOnce.Do(func() {
		cs.mu.Lock()
		defer cs.mu.Unlock()

		cs.cleanupServices()
		for _, c := range cs.components {
			c.Shutdown()
		}
		cs.started = false
		cs.log.Info("all components stopped")
	})
}

func (cs *Components) cleanupServices() {
	for _, service := range cs.services {
		service.Stop()
	}
	cs.services = make(map[string]*Service)
}

func (cs *Components) IsStarted() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.started
}

func (cs *Components) HasComponent(name string) bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	_, ok := cs.components[name]
	return ok
}

func (cs *Components) GetComponent(name string) (Component, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	c, ok := cs.components[name]
	return c, ok
}

func (cs *Components) GetService(name string) (*Service, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	service, ok := cs.services[name]
	return service, ok
}

// Route delivers a message to the component named by its route
// ("Component.Handler").
func (cs *Components) Route(sess session.Session, msg *message.Message) error {
	componentName, handlerName := splitRoute(msg.Route)
	if componentName == "" || handlerName == "" {
		return fmt.Errorf("component: invalid route %q", msg.Route)
	}

	cs.mu.RLock()
	service, ok := cs.services[componentName]
	cs.mu.RUnlock()

	if !ok {
		return fmt.Errorf("component: %s not found for route %s", componentName, msg.Route)
	}
	if !service.IsRunning() {
		return fmt.Errorf("component: %s is not running", componentName)
	}
	if !service.HasHandler(handlerName) {
		return fmt.Errorf("component: handler %s not found in %s", handlerName, componentName)
	}
	return service.Tell(sess, msg)
}

func (cs *Components) OnSessionConnect(sess session.Session) {
	for _, service := range cs.snapshot() {
		service.tellLifecycle(envSessionConnect, sess)
	}
}

func (cs *Components) OnSessionDisconnect(sess session.Session) {
	for _, service := range cs.snapshot() {
		service.tellLifecycle(envSessionDisconnect, sess)
	}
}

func (cs *Components) snapshot() []*Service {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	services := make([]*Service, 0, len(cs.services))
	for _, service := range cs.services {
		services = append(services, service)
	}
	return services
}
