// Package events defines the outbound external event stream (spec.md §6):
// DTOs an IPC server (out of scope for this module) would serialize and
// forward to subscribers. The core only ever produces these; nothing here
// is read back.
package events

import (
	"github.com/google/uuid"

	"github.com/boxwm/boxwm/internal/geom"
)

// Kind tags which event a Event value carries.
type Kind int

const (
	KindFocusChanged Kind = iota
	KindWindowManaged
	KindWindowUnmanaged
	KindWorkspaceActivated
	KindWorkspaceDeactivated
	KindPauseChanged
	KindBindingModesChanged
	KindApplicationExiting
)

// ContainerDTO is the serialized form of a container carried on outbound
// events. Only the fields relevant to the container's kind are populated.
type ContainerDTO struct {
	ID       uuid.UUID
	Kind     string
	Name     string
	Handle   uintptr
	Rect     geom.Rect
	State    string
	Children []ContainerDTO
}

// Event is the single outbound event envelope, tagged by Kind.
type Event struct {
	Kind Kind

	Container  *ContainerDTO
	Workspace  *ContainerDTO
	Paused     bool
	BindingMode string
}

// Sink receives outbound events. internal/wm calls Emit exactly once per
// outbound event produced during reconciliation or command handling.
type Sink interface {
	Emit(Event)
}

// NopSink discards every event; used as a default/fallback and in tests.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// ChanSink forwards events onto a buffered channel, for consumers (like a
// future IPC server) that want to range over the stream.
type ChanSink struct {
	ch chan Event
}

// NewChanSink creates a ChanSink with the given channel buffer size.
func NewChanSink(buffer int) *ChanSink {
	return &ChanSink{ch: make(chan Event, buffer)}
}

func (s *ChanSink) Emit(e Event) {
	select {
	case s.ch <- e:
	default:
		// Drop rather than block the single-threaded dispatcher; a slow
		// or absent consumer must never stall reconciliation.
	}
}

// Events returns the receive-only channel consumers read from.
func (s *ChanSink) Events() <-chan Event { return s.ch }
