package control_test

import (
	"sync"
	"testing"

	"github.com/PixPMusic/gopher-twister/internal/control"
)

type sentMsg struct {
	channel uint8
	control uint8
	value   uint8
}

// recorder captures outbound feedback messages
type recorder struct {
	mu   sync.Mutex
	msgs []sentMsg
}

func (r *recorder) send(channel, control, value uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, sentMsg{channel, control, value})
}

func (r *recorder) take() []sentMsg {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.msgs
	r.msgs = nil
	return msgs
}

func testParams(pool ...uint8) control.Params {
	return control.Params{
		Pool:           pool,
		ControlChannel: 0,
		ValueChannel:   0,
		ColorChannel:   1,
		Threshold:      2,
		Increase:       65,
		Decrease:       63,
	}
}

func TestSessionEditFlow(t *testing.T) {
	s := newTestSong(16, 1, 0)
	rec := &recorder{}
	sess := control.NewSession(s, rec.send, testParams(12, 13))
	sess.Attach()
	defer sess.Detach()
	rec.take() // drop the initial refresh

	// One message below threshold: no edit, no feedback.
	sess.HandleMessage(0xB0, 12, 65)
	if got := rec.take(); len(got) != 0 {
		t.Fatalf("expected no feedback before the threshold, got %v", got)
	}

	// The second message commits one increment on the note column.
	sess.HandleMessage(0xB0, 12, 65)
	if got, _ := s.Value(noteCol(control.KindNote, 0), 0); got != 49 {
		t.Errorf("expected note fallback 48 + 1 written, got %d", got)
	}

	got := rec.take()
	expected := []sentMsg{
		{0, 12, 49},
		{1, 12, control.ColorNotePresent},
	}
	if len(got) != len(expected) {
		t.Fatalf("expected %d feedback messages, got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("message %d: expected %+v, got %+v", i, expected[i], got[i])
		}
	}
}

func TestSessionRebuildResetsDropped(t *testing.T) {
	s := newTestSong(16, 1, 0)
	s.SetVolumeVisible(true)
	rec := &recorder{}
	sess := control.NewSession(s, rec.send, testParams(10, 11, 12))
	sess.Attach()
	defer sess.Detach()
	rec.take()

	// Hiding the volume sub-column shrinks the allocation; the freed
	// encoder must be reset exactly once.
	s.SetVolumeVisible(false)

	var resets int
	for _, m := range rec.take() {
		if m.control != 12 {
			continue
		}
		if m.channel == 0 && m.value == 0 {
			resets++
		} else if m.channel == 1 && m.value != control.ColorOff {
			t.Errorf("dropped encoder got a non-reset color: %+v", m)
		}
	}
	if resets != 1 {
		t.Errorf("expected exactly one reset for the dropped encoder, got %d", resets)
	}
}

func TestSessionSelectionRefresh(t *testing.T) {
	s := newTestSong(16, 1, 0)
	rec := &recorder{}
	sess := control.NewSession(s, rec.send, testParams(12, 13))
	sess.Attach()
	defer sess.Detach()
	rec.take()

	s.SelectRow(4)

	// Full refresh: a value and a color message per allocated encoder.
	if got := rec.take(); len(got) != 4 {
		t.Errorf("expected 4 feedback messages after a cursor move, got %d: %v", len(got), got)
	}
}

func TestSessionAttachDetachIdempotent(t *testing.T) {
	s := newTestSong(16, 1, 0)
	rec := &recorder{}
	sess := control.NewSession(s, rec.send, testParams(12, 13))

	sess.Attach()
	sess.Attach()
	rec.take()

	// A second Attach must not double-subscribe: one cursor move, one
	// refresh worth of messages.
	s.SelectRow(3)
	if got := rec.take(); len(got) != 4 {
		t.Errorf("expected a single refresh after double attach, got %d messages", len(got))
	}

	sess.Detach()
	rec.take()
	sess.Detach()

	// Detached: no reaction to input or document changes.
	sess.HandleMessage(0xB0, 12, 65)
	sess.HandleMessage(0xB0, 12, 65)
	s.SelectRow(7)
	if got := rec.take(); len(got) != 0 {
		t.Errorf("detached session must stay silent, got %v", got)
	}
}

func TestSessionIgnoresOtherCommands(t *testing.T) {
	s := newTestSong(16, 1, 0)
	rec := &recorder{}
	sess := control.NewSession(s, rec.send, control.Params{
		Pool: []uint8{12}, Threshold: 1, Increase: 65, Decrease: 63,
	})
	sess.Attach()
	defer sess.Detach()
	rec.take()

	sess.HandleMessage(0x90, 12, 65) // note on, not ours
	if got := rec.take(); len(got) != 0 {
		t.Errorf("non-CC messages must be ignored, got %v", got)
	}
}
