package control

// Allocation is a snapshot mapping physical encoder CC numbers onto
// logical columns. It is built fresh on every layout change and never
// mutated afterwards; consumers always read the latest snapshot.
type Allocation struct {
	controls []uint8
	targets  map[uint8]Column
}

// BuildAllocation consumes the encoder pool in its declared order,
// pairing each control with the next logical column of the document.
// When the pool runs out the remaining columns are simply unmapped;
// when columns run out the remaining controls stay unallocated.
func BuildAllocation(pool []uint8, doc Document) *Allocation {
	cols := enumerateColumns(doc)
	a := &Allocation{targets: make(map[uint8]Column, len(pool))}
	for i, control := range pool {
		if i >= len(cols) {
			break
		}
		a.controls = append(a.controls, control)
		a.targets[control] = cols[i]
	}
	return a
}

// enumerateColumns lists the logical columns of the active track in
// document order: per note column the note and instrument sub-columns
// always, then volume, pan, delay and fx-amount when their visibility
// flag is set, then one fx-amount per effect column.
func enumerateColumns(doc Document) []Column {
	var cols []Column
	for i := 0; i < doc.NoteColumns(); i++ {
		cols = append(cols,
			Column{Kind: KindNote, Index: i},
			Column{Kind: KindInstrument, Index: i},
		)
		for _, k := range [...]Kind{KindVolume, KindPan, KindDelay, KindFxAmount} {
			if doc.KindVisible(k) {
				cols = append(cols, Column{Kind: k, Index: i})
			}
		}
	}
	for i := 0; i < doc.EffectColumns(); i++ {
		cols = append(cols, Column{Kind: KindFxAmount, Index: i, Effect: true})
	}
	return cols
}

// Controls returns the allocated controls in pool order
func (a *Allocation) Controls() []uint8 {
	if a == nil {
		return nil
	}
	return a.controls
}

// Target returns the logical column mapped to control
func (a *Allocation) Target(control uint8) (Column, bool) {
	if a == nil {
		return Column{}, false
	}
	col, ok := a.targets[control]
	return col, ok
}

// Has reports whether control is mapped in this allocation
func (a *Allocation) Has(control uint8) bool {
	if a == nil {
		return false
	}
	_, ok := a.targets[control]
	return ok
}

// Dropped returns the controls present in prev but absent here. These
// are the encoders whose LED rings must be reset once before the old
// snapshot is forgotten.
func (a *Allocation) Dropped(prev *Allocation) []uint8 {
	var dropped []uint8
	for _, control := range prev.Controls() {
		if !a.Has(control) {
			dropped = append(dropped, control)
		}
	}
	return dropped
}
