package control_test

import (
	"reflect"
	"testing"

	"github.com/PixPMusic/gopher-twister/internal/control"
)

func fullPool() []uint8 {
	pool := make([]uint8, 16)
	for i := range pool {
		pool[i] = uint8(i)
	}
	return pool
}

func TestAllocationOrder(t *testing.T) {
	s := newTestSong(16, 2, 1)
	s.SetVolumeVisible(true)
	s.SetPanVisible(true)

	alloc := control.BuildAllocation(fullPool(), s)

	expected := []control.Column{
		noteCol(control.KindNote, 0),
		noteCol(control.KindInstrument, 0),
		noteCol(control.KindVolume, 0),
		noteCol(control.KindPan, 0),
		noteCol(control.KindNote, 1),
		noteCol(control.KindInstrument, 1),
		noteCol(control.KindVolume, 1),
		noteCol(control.KindPan, 1),
		effectCol(control.KindFxAmount, 0),
	}
	controls := alloc.Controls()
	if len(controls) != len(expected) {
		t.Fatalf("expected %d allocated controls, got %d", len(expected), len(controls))
	}
	for i, c := range controls {
		got, ok := alloc.Target(c)
		if !ok {
			t.Fatalf("control %d has no target", c)
		}
		if got != expected[i] {
			t.Errorf("control %d: expected %+v, got %+v", c, expected[i], got)
		}
	}
}

func TestAllocationIdempotent(t *testing.T) {
	s := newTestSong(16, 2, 1)
	s.SetDelayVisible(true)

	a := control.BuildAllocation(fullPool(), s)
	b := control.BuildAllocation(fullPool(), s)

	if !reflect.DeepEqual(a.Controls(), b.Controls()) {
		t.Error("rebuild with unchanged input must allocate the same controls")
	}
	for _, c := range a.Controls() {
		at, _ := a.Target(c)
		bt, _ := b.Target(c)
		if at != bt {
			t.Errorf("control %d: targets differ across rebuilds: %+v vs %+v", c, at, bt)
		}
	}
}

func TestAllocationInjective(t *testing.T) {
	s := newTestSong(16, 3, 2)
	s.SetVolumeVisible(true)
	s.SetFxVisible(true)

	alloc := control.BuildAllocation(fullPool(), s)
	seen := make(map[control.Column]uint8)
	for _, c := range alloc.Controls() {
		col, _ := alloc.Target(c)
		if prev, dup := seen[col]; dup {
			t.Errorf("column %+v mapped to both control %d and %d", col, prev, c)
		}
		seen[col] = c
	}
}

func TestAllocationPoolExhaustion(t *testing.T) {
	// Pool of two, one note column, volume visible: the pool runs out
	// before volume - it stays unmapped rather than stealing a control.
	s := newTestSong(16, 1, 0)
	s.SetVolumeVisible(true)

	alloc := control.BuildAllocation([]uint8{12, 13}, s)

	if got := alloc.Controls(); len(got) != 2 {
		t.Fatalf("expected 2 allocated controls, got %d", len(got))
	}
	if col, _ := alloc.Target(12); col != noteCol(control.KindNote, 0) {
		t.Errorf("control 12: expected note column, got %+v", col)
	}
	if col, _ := alloc.Target(13); col != noteCol(control.KindInstrument, 0) {
		t.Errorf("control 13: expected instrument column, got %+v", col)
	}
	for _, c := range alloc.Controls() {
		if col, _ := alloc.Target(c); col.Kind == control.KindVolume {
			t.Error("volume must not be allocated once the pool is exhausted")
		}
	}
}

func TestAllocationDropped(t *testing.T) {
	s := newTestSong(16, 1, 0)
	s.SetVolumeVisible(true)

	pool := []uint8{10, 11, 12}
	before := control.BuildAllocation(pool, s)
	if len(before.Controls()) != 3 {
		t.Fatalf("expected 3 allocated controls, got %d", len(before.Controls()))
	}

	s.SetVolumeVisible(false)
	after := control.BuildAllocation(pool, s)

	dropped := after.Dropped(before)
	if !reflect.DeepEqual(dropped, []uint8{12}) {
		t.Errorf("expected control 12 dropped, got %v", dropped)
	}
	if dropped = before.Dropped(nil); dropped != nil {
		t.Errorf("dropping from a nil previous allocation: expected none, got %v", dropped)
	}
}
