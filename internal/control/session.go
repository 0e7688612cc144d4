package control

import (
	"sync"
	"time"

	"github.com/PixPMusic/gopher-twister/internal/debug"
)

// controlChange is the CC command nibble of the status byte
const controlChange uint8 = 0xB0

// SendFunc pushes one outgoing CC message (0-based channel). Sends are
// fire-and-forget; a nil SendFunc disables feedback entirely.
type SendFunc func(channel, control, value uint8)

// Params configures a session. Channels are 0-based here; the config
// layer exposes them 1-based the way they are printed on devices.
type Params struct {
	Pool           []uint8 // encoder CC numbers in allocation order
	ControlChannel uint8   // channel inbound edits arrive on
	ValueChannel   uint8   // outbound ring-value channel
	ColorChannel   uint8   // outbound state-color channel
	Threshold      int     // repeat rate: messages per committed step
	Increase       uint8   // data value meaning "one step up"
	Decrease       uint8   // data value meaning "one step down"
}

// Session binds the document, the decoder and the transport together.
// Every entry point - inbound messages, document notifications, the
// periodic tick - runs to completion under one mutex, so the allocation
// and the per-encoder state are never seen mid-rebuild.
type Session struct {
	mu      sync.Mutex
	doc     ObservableDocument
	send    SendFunc
	params  Params
	decoder *Decoder
	alloc   *Allocation

	attached bool
	detach   []func()
	stopTick chan struct{}
}

// NewSession creates a session over doc, sending feedback through send
func NewSession(doc ObservableDocument, send SendFunc, params Params) *Session {
	return &Session{
		doc:     doc,
		send:    send,
		params:  params,
		decoder: NewDecoder(params.ControlChannel, params.Threshold, params.Increase, params.Decrease),
	}
}

// Attach subscribes to document changes, starts the refresh tick and
// pushes the initial state. Calling it again while attached is a no-op.
func (s *Session) Attach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached {
		return
	}
	s.attached = true

	s.detach = append(s.detach,
		s.doc.ObserveLayout(s.layoutChanged),
		s.doc.ObserveSelection(s.selectionChanged),
	)

	// Coarse tick catching cursor movement without its own notification.
	s.stopTick = make(chan struct{})
	go s.runTick(s.stopTick)

	s.rebuild()
	s.refreshAll()
	debug.Log("session", "attached, %d encoders in pool", len(s.params.Pool))
}

// Detach undoes Attach. Safe to call when already detached.
func (s *Session) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return
	}
	s.attached = false

	close(s.stopTick)
	s.stopTick = nil
	for _, d := range s.detach {
		d()
	}
	s.detach = nil

	// Darken every ring we were driving.
	for _, control := range s.alloc.Controls() {
		s.push(ResetFeedback(control))
	}
	s.alloc = nil
	debug.Log("session", "detached")
}

func (s *Session) runTick(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.attached {
				s.refreshAll()
			}
			s.mu.Unlock()
		}
	}
}

// HandleMessage is the inbound entry point for raw controller messages
func (s *Session) HandleMessage(status, data1, data2 uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return
	}
	command := status & 0xF0
	channel := status & 0x0F
	if command != controlChange {
		return
	}

	dir, commit := s.decoder.Feed(command, channel, data1, data2)
	if !commit {
		return
	}
	col, ok := s.alloc.Target(data1)
	if !ok {
		return
	}
	v, ok := Apply(s.doc, col, dir)
	if !ok {
		return
	}
	debug.Log("commit", "cc=%d %s[%d] -> %d", data1, col.Kind, col.Index, v)
	s.push(Encode(s.doc, data1, col))
}

// layoutChanged rebuilds the allocation and refreshes every ring
func (s *Session) layoutChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return
	}
	s.rebuild()
	s.refreshAll()
}

// selectionChanged refreshes every ring for the new cursor position
func (s *Session) selectionChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return
	}
	s.refreshAll()
}

// rebuild swaps in a fresh allocation snapshot. Encoders dropped by the
// swap are reset exactly once before the old snapshot is forgotten.
func (s *Session) rebuild() {
	next := BuildAllocation(s.params.Pool, s.doc)
	for _, control := range next.Dropped(s.alloc) {
		s.push(ResetFeedback(control))
	}
	s.decoder.Sync(next)
	s.alloc = next
	debug.Log("rebuild", "%d of %d encoders allocated", len(next.Controls()), len(s.params.Pool))
}

func (s *Session) refreshAll() {
	for _, control := range s.alloc.Controls() {
		col, _ := s.alloc.Target(control)
		s.push(Encode(s.doc, control, col))
	}
}

func (s *Session) push(fb Feedback) {
	if s.send == nil {
		return
	}
	s.send(s.params.ValueChannel, fb.Control, fb.Value)
	s.send(s.params.ColorChannel, fb.Control, fb.Color)
	debug.LogEvery(64, "push", "cc=%d value=%d color=%d", fb.Control, fb.Value, fb.Color)
}
