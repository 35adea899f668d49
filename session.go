package pipewire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"syscall"

	"github.com/thesyncim/pipewire/internal/handles"
)

var (
	// ErrClosed is returned by Session methods after Close.
	ErrClosed = errors.New("pipewire: session closed")
	// ErrNotFound is returned when a registry lookup has no match.
	ErrNotFound = errors.New("pipewire: object not found")
)

// Direction is a port direction.
type Direction int

const (
	DirectionOutput Direction = iota
	DirectionInput
)

// String returns the port.direction property value.
func (d Direction) String() string {
	switch d {
	case DirectionOutput:
		return "out"
	case DirectionInput:
		return "in"
	default:
		return "unknown"
	}
}

// Global is an object announced by the registry.
type Global struct {
	ID          uint32
	Permissions uint32
	Type        string
	Version     uint32
	Props       *Properties
}

// SessionOption configures Connect.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	name    string
	appName string
}

// WithLoopName sets the name of the thread loop.
func WithLoopName(name string) SessionOption {
	return func(c *sessionConfig) { c.name = name }
}

// WithApplicationName sets application.name on the connection.
func WithApplicationName(name string) SessionOption {
	return func(c *sessionConfig) { c.appName = name }
}

// Session owns a thread loop, a context, a core connection and its
// registry. Core calls made through a Session run with the loop locked.
type Session struct {
	client *Client
	lib    Library
	logger *slog.Logger

	loop     ThreadLoop
	pctx     Context
	core     Core
	registry Registry

	coreHook       Hook
	registryHook   Hook
	coreEvents     CoreEvents
	registryEvents RegistryEvents
	token          uintptr
	started        bool

	// callMu orders core calls against Close so none reaches a torn down
	// core.
	callMu sync.Mutex

	mu      sync.Mutex
	globals map[uint32]Global
	pending map[int]chan error
	closed  bool
}

// Connect starts a thread loop, connects to the daemon and waits for the
// initial registry contents. ctx bounds the initial roundtrip.
func Connect(ctx context.Context, client *Client, opts ...SessionOption) (*Session, error) {
	cfg := sessionConfig{name: "gopw-loop", appName: "gopw"}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Session{
		client:  client,
		lib:     client.lib,
		logger:  client.logger.With("session", cfg.name),
		globals: make(map[uint32]Global),
		pending: make(map[int]chan error),
	}
	if err := s.connect(cfg); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.Roundtrip(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("initial roundtrip: %w", err)
	}
	s.logger.Info("connected", "globals", len(s.Globals()))
	return s, nil
}

func (s *Session) connect(cfg sessionConfig) error {
	s.lib.Init()

	s.loop = s.lib.ThreadLoopNew(cfg.name)
	if s.loop.IsNil() {
		return fmt.Errorf("create thread loop: %w", ErrIO)
	}
	s.pctx = s.lib.ContextNew(s.loop)
	if s.pctx.IsNil() {
		return fmt.Errorf("create context: %w", ErrIO)
	}
	if res := s.lib.ThreadLoopStart(s.loop); res < 0 {
		return fmt.Errorf("start thread loop: %w", Errno(res))
	}
	s.started = true

	s.lib.ThreadLoopLock(s.loop)
	defer s.lib.ThreadLoopUnlock(s.loop)

	props := NewProperties(1)
	props.Set("application.name", cfg.appName)
	s.core = s.lib.ContextConnect(s.pctx, props)
	if s.core.IsNil() {
		return fmt.Errorf("connect: %w", ErrIO)
	}

	reg, err := s.client.GetRegistry(s.core)
	if err != nil {
		return fmt.Errorf("get registry: %w", err)
	}
	s.registry = reg

	s.token = handles.Register(s)
	s.coreHook = s.lib.HookNew()
	s.registryHook = s.lib.HookNew()
	s.coreEvents = s.lib.CoreEventsNew(nativeCoreCallbacks())
	s.registryEvents = s.lib.RegistryEventsNew(nativeRegistryCallbacks())
	if s.coreHook.IsNil() || s.registryHook.IsNil() || s.coreEvents.IsNil() || s.registryEvents.IsNil() {
		return fmt.Errorf("allocate listeners: %w", ErrIO)
	}

	s.client.AddCoreListener(s.core, s.coreHook, s.coreEvents, s.token)
	s.client.AddRegistryListener(s.registry, s.registryHook, s.registryEvents, s.token)
	return nil
}

// Client returns the client the session forwards through.
func (s *Session) Client() *Client { return s.client }

// Core returns the core handle.
func (s *Session) Core() Core { return s.core }

// Loop returns the thread loop handle.
func (s *Session) Loop() ThreadLoop { return s.loop }

// Registry returns the registry handle.
func (s *Session) Registry() Registry { return s.registry }

// Lock locks the thread loop. Hold it around direct Client calls on the
// session's handles.
func (s *Session) Lock() { s.lib.ThreadLoopLock(s.loop) }

// Unlock unlocks the thread loop.
func (s *Session) Unlock() { s.lib.ThreadLoopUnlock(s.loop) }

// Roundtrip issues a core sync and waits for its done event, so every
// request issued before it has been processed by the daemon.
func (s *Session) Roundtrip(ctx context.Context) error {
	ch := make(chan error, 1)

	s.callMu.Lock()
	if s.isClosed() {
		s.callMu.Unlock()
		return ErrClosed
	}
	s.Lock()
	seq, err := s.client.SyncCore(s.core, s.loop, 0)
	if err == nil {
		s.mu.Lock()
		s.pending[seq] = ch
		s.mu.Unlock()
	}
	s.Unlock()
	s.callMu.Unlock()
	if err != nil {
		return err
	}

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		s.mu.Lock()
		delete(s.pending, seq)
		s.mu.Unlock()
		return ctx.Err()
	}
}

// CreateLink creates a lingering link with the loop locked.
func (s *Session) CreateLink(outNode, outPort, inNode, inPort uint32) error {
	s.callMu.Lock()
	defer s.callMu.Unlock()
	if s.isClosed() {
		return ErrClosed
	}
	s.Lock()
	defer s.Unlock()
	return s.client.CreateLink(s.core, outNode, outPort, inNode, inPort)
}

// Globals returns the registry objects seen so far, sorted by id.
func (s *Session) Globals() []Global {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Global, 0, len(s.globals))
	for _, g := range s.globals {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindNode returns the id of the node whose node.name is name.
func (s *Session) FindNode(name string) (uint32, error) {
	for _, g := range s.Globals() {
		if g.Type != TypeInterfaceNode {
			continue
		}
		if v, _ := g.Props.Get(KeyNodeName); v == name {
			return g.ID, nil
		}
	}
	return 0, fmt.Errorf("node %q: %w", name, ErrNotFound)
}

// FindPort resolves a node name and port name in direction dir to their
// ids.
func (s *Session) FindPort(nodeName, portName string, dir Direction) (nodeID, portID uint32, err error) {
	nodeID, err = s.FindNode(nodeName)
	if err != nil {
		return 0, 0, err
	}
	node := strconv.FormatUint(uint64(nodeID), 10)
	for _, g := range s.Globals() {
		if g.Type != TypeInterfacePort {
			continue
		}
		if v, _ := g.Props.Get(KeyNodeID); v != node {
			continue
		}
		if v, _ := g.Props.Get(KeyPortDirection); v != dir.String() {
			continue
		}
		if v, _ := g.Props.Get(KeyPortName); v == portName {
			return nodeID, g.ID, nil
		}
	}
	return 0, 0, fmt.Errorf("port %s:%s (%s): %w", nodeName, portName, dir, ErrNotFound)
}

// Close disconnects and releases everything Connect created. It is safe to
// call more than once.
func (s *Session) Close() error {
	s.callMu.Lock()
	defer s.callMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for seq, ch := range s.pending {
		ch <- ErrClosed
		delete(s.pending, seq)
	}
	s.mu.Unlock()

	var err error
	if !s.loop.IsNil() {
		s.Lock()
		if !s.registryHook.IsNil() {
			s.lib.HookFree(s.registryHook)
		}
		if !s.coreHook.IsNil() {
			s.lib.HookFree(s.coreHook)
		}
		s.client.DestroyRegistry(s.registry)
		if !s.core.IsNil() {
			err = resultError(s.lib.CoreDisconnect(s.core))
		}
		s.Unlock()
		if s.started {
			s.lib.ThreadLoopStop(s.loop)
		}
	}
	if !s.pctx.IsNil() {
		s.lib.ContextDestroy(s.pctx)
	}
	if !s.coreEvents.IsNil() {
		s.lib.EventsFree(uintptr(s.coreEvents))
	}
	if !s.registryEvents.IsNil() {
		s.lib.EventsFree(uintptr(s.registryEvents))
	}
	if !s.loop.IsNil() {
		s.lib.ThreadLoopDestroy(s.loop)
	}
	if s.token != 0 {
		handles.Unregister(s.token)
	}
	s.logger.Debug("session closed")
	return err
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Event handlers, called on the loop thread.

func (s *Session) handleDone(id uint32, seq int) {
	if id != IDCore {
		return
	}
	s.mu.Lock()
	ch, ok := s.pending[seq]
	delete(s.pending, seq)
	s.mu.Unlock()
	if ok {
		ch <- nil
	}
}

func (s *Session) handleError(id uint32, seq int, res int, msg string) {
	s.logger.Warn("core error", "id", id, "seq", seq, "res", res, "message", msg)
	err := fmt.Errorf("%s: %w", msg, Errno(res))

	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.pending[seq]; ok {
		delete(s.pending, seq)
		ch <- err
	}
	// A broken connection fails every outstanding roundtrip.
	if id == IDCore && Errno(res).Code() == -int(syscall.EPIPE) {
		for seq, ch := range s.pending {
			delete(s.pending, seq)
			ch <- err
		}
	}
}

func (s *Session) handleGlobal(g Global) {
	s.mu.Lock()
	s.globals[g.ID] = g
	s.mu.Unlock()
	s.logger.Debug("global added", "id", g.ID, "type", g.Type)
}

func (s *Session) handleGlobalRemove(id uint32) {
	s.mu.Lock()
	delete(s.globals, id)
	s.mu.Unlock()
	s.logger.Debug("global removed", "id", id)
}

// lookupSession resolves callback user data to its Session.
func lookupSession(data uintptr) *Session {
	s, _ := handles.Lookup(data).(*Session)
	return s
}
