package control

// Document is the read/write surface the core needs from the host
// tracker document. Row and column indices are 0-based. A column that
// does not exist at a given row reads as absent (ok == false), never as
// an error - older rows may have had fewer columns.
type Document interface {
	// Rows returns the row count of the current pattern
	Rows() int
	// CurrentRow returns the row the edit cursor is on
	CurrentRow() int
	// NoteColumns returns the visible note-column count of the active track
	NoteColumns() int
	// EffectColumns returns the visible effect-column count of the active track
	EffectColumns() int
	// KindVisible reports whether the kind's sub-column is shown on note
	// columns (volume, pan, delay, fx-amount). Always true for the rest.
	KindVisible(k Kind) bool
	// Value reads the raw cell value at (col, row)
	Value(col Column, row int) (value int, ok bool)
	// SetValue writes the raw cell value at (col, row)
	SetValue(col Column, row int, value int) bool
}

// ObservableDocument adds change notification to Document. Observe calls
// return a detach func that is safe to call more than once.
type ObservableDocument interface {
	Document

	// ObserveLayout fires when column visibility or counts change
	ObserveLayout(fn func()) (detach func())
	// ObserveSelection fires when the track, pattern or row selection moves
	ObserveSelection(fn func()) (detach func())
}
