// Package net is the simulation-side half of a client connection: the
// per-session command inbox and message outbox the tick loop drains and
// fills every tick (spec.md §4.1 phases 2 and 21, §5 "the simulation
// thread never blocks on socket I/O"). The TCP listener, wire codec, and
// cipher that actually move bytes belong to a separate transport layer
// and are out of this module's scope; this package only carries already
// decoded commands in and already-addressed messages out.
package net

import (
	"sync"
	"sync/atomic"

	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
	"go.uber.org/zap"
)

// State mirrors the connection lifecycle a transport layer drives; the
// simulation only reads it to decide whether a session is still eligible
// for ingress/egress this tick.
type State int32

const (
	StateHandshake State = iota
	StateActive
	StateDisconnecting
)

// Inbound is one decoded client command, queued by the transport layer
// and consumed by PhaseIngress.
type Inbound struct {
	Command component.Command
}

// Session is one connected client's game-loop-facing state. Network I/O
// lives entirely in the transport layer; nothing here touches a
// net.Conn, matching the teacher's split between Session bookkeeping and
// the reader/writer goroutines that actually move bytes.
type Session struct {
	Entity ecs.EntityID
	ZoneID uint32

	state atomic.Int32

	InQueue  chan Inbound // PhaseIngress drains this into NextCommand
	OutQueue chan any     // PhaseEgress fills this from visibility.Pending

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool

	log *zap.Logger
}

// NewSession builds a session bound to a simulation entity, sized the
// way the teacher sizes its session queues: bounded, so a stalled
// consumer applies backpressure instead of growing memory without limit.
func NewSession(entity ecs.EntityID, zoneID uint32, inSize, outSize int, log *zap.Logger) *Session {
	s := &Session{
		Entity:   entity,
		ZoneID:   zoneID,
		InQueue:  make(chan Inbound, inSize),
		OutQueue: make(chan any, outSize),
		closeCh:  make(chan struct{}),
		log:      log.With(zap.Uint64("entity", uint64(entity))),
	}
	s.state.Store(int32(StateHandshake))
	return s
}

func (s *Session) State() State     { return State(s.state.Load()) }
func (s *Session) SetState(st State) { s.state.Store(int32(st)) }

// Push enqueues one outbound message for this tick's egress delivery.
// Non-blocking: a session whose consumer (the transport write loop) has
// fallen behind is disconnected rather than allowed to buffer forever
// (spec.md §5 backpressure policy, mirrored from the teacher's Send).
func (s *Session) Push(msg any) {
	if s.closed.Load() {
		return
	}
	select {
	case s.OutQueue <- msg:
	default:
		s.log.Warn("egress queue full, disconnecting slow session")
		s.Close()
	}
}

// DrainInbound empties whatever commands arrived since the last tick,
// without blocking — PhaseIngress calls this once per session.
func (s *Session) DrainInbound() []Inbound {
	var out []Inbound
	for {
		select {
		case in := <-s.InQueue:
			out = append(out, in)
		default:
			return out
		}
	}
}

// Close marks the session dead; the transport layer's own Close is
// responsible for tearing down the underlying connection.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.SetState(StateDisconnecting)
		close(s.closeCh)
	})
}

func (s *Session) IsClosed() bool { return s.closed.Load() }

// Registry tracks every live session by entity, the lookup PhaseIngress
// and PhaseEgress scan each tick. It is only ever touched from the
// simulation goroutine plus connect/disconnect handlers, guarded by a
// mutex since those can race with a tick in flight.
type Registry struct {
	mu       sync.RWMutex
	sessions map[ecs.EntityID]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[ecs.EntityID]*Session)}
}

func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Entity] = s
}

func (r *Registry) Remove(entity ecs.EntityID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, entity)
}

func (r *Registry) Get(entity ecs.EntityID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[entity]
	return s, ok
}

// Each iterates a snapshot of live sessions, safe to call while a
// connect/disconnect handler concurrently mutates the registry.
func (r *Registry) Each(fn func(*Session)) {
	r.mu.RLock()
	snapshot := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		snapshot = append(snapshot, s)
	}
	r.mu.RUnlock()
	for _, s := range snapshot {
		fn(s)
	}
}
