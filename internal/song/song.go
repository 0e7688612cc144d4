// Package song is an in-memory tracker document: tracks holding
// patterns of rows, one cell bundle per column, plus the selection and
// the change notifications the control core subscribes to.
package song

import (
	"github.com/PixPMusic/gopher-twister/internal/control"
)

// Raw sentinel values, one per attribute, matching what the cells store
// when nothing is written.
const (
	EmptyNote       = 121
	EmptyInstrument = 255
	EmptyVolume     = 255
	EmptyPan        = 255
	EmptyDelay      = 0
	EmptyEffect     = 0
)

// NoteCell is one note-column cell of a row
type NoteCell struct {
	Note       int `yaml:"note"`
	Instrument int `yaml:"instrument"`
	Volume     int `yaml:"volume"`
	Pan        int `yaml:"pan"`
	Delay      int `yaml:"delay"`
	FxNumber   int `yaml:"fxNumber"`
	FxAmount   int `yaml:"fxAmount"`
}

// EmptyNoteCell returns a cell with every attribute at its sentinel
func EmptyNoteCell() NoteCell {
	return NoteCell{
		Note:       EmptyNote,
		Instrument: EmptyInstrument,
		Volume:     EmptyVolume,
		Pan:        EmptyPan,
		Delay:      EmptyDelay,
		FxNumber:   EmptyEffect,
		FxAmount:   EmptyEffect,
	}
}

// EffectCell is one effect-column cell of a row
type EffectCell struct {
	Number int `yaml:"number"`
	Amount int `yaml:"amount"`
}

// Row holds one cell per column of the track at one time-step
type Row struct {
	Notes   []NoteCell   `yaml:"notes,flow"`
	Effects []EffectCell `yaml:"effects,flow"`
}

// Pattern is a fixed run of rows
type Pattern struct {
	Rows []Row `yaml:"rows"`
}

// NewPattern creates a pattern of rows sized to the track layout
func NewPattern(rows, noteColumns, effectColumns int) *Pattern {
	p := &Pattern{Rows: make([]Row, rows)}
	for i := range p.Rows {
		p.Rows[i] = newRow(noteColumns, effectColumns)
	}
	return p
}

func newRow(noteColumns, effectColumns int) Row {
	r := Row{
		Notes:   make([]NoteCell, noteColumns),
		Effects: make([]EffectCell, effectColumns),
	}
	for i := range r.Notes {
		r.Notes[i] = EmptyNoteCell()
	}
	return r
}

// Track carries the column layout shared by all of its patterns
type Track struct {
	Name          string     `yaml:"name"`
	NoteColumns   int        `yaml:"noteColumns"`
	EffectColumns int        `yaml:"effectColumns"`
	VolumeVisible bool       `yaml:"volumeVisible"`
	PanVisible    bool       `yaml:"panVisible"`
	DelayVisible  bool       `yaml:"delayVisible"`
	FxVisible     bool       `yaml:"fxVisible"` // sample-fx sub-column on note columns
	Patterns      []*Pattern `yaml:"patterns"`
}

// NewTrack creates a track with one note column and empty patterns
func NewTrack(name string, patterns, rows int) *Track {
	t := &Track{Name: name, NoteColumns: 1}
	for i := 0; i < patterns; i++ {
		t.Patterns = append(t.Patterns, NewPattern(rows, t.NoteColumns, t.EffectColumns))
	}
	return t
}

// Song is the whole document plus the edit selection
type Song struct {
	Tracks []*Track

	track   int
	pattern int
	row     int

	layoutObs    map[int]func()
	selectionObs map[int]func()
	nextObs      int
}

// New creates a song with the given tracks. Selection starts at the
// first row of the first pattern of the first track.
func New(tracks ...*Track) *Song {
	return &Song{
		Tracks:       tracks,
		layoutObs:    make(map[int]func()),
		selectionObs: make(map[int]func()),
	}
}

func (s *Song) activeTrack() *Track {
	if s.track < 0 || s.track >= len(s.Tracks) {
		return nil
	}
	return s.Tracks[s.track]
}

func (s *Song) currentPattern() *Pattern {
	t := s.activeTrack()
	if t == nil || s.pattern < 0 || s.pattern >= len(t.Patterns) {
		return nil
	}
	return t.Patterns[s.pattern]
}

// Selection returns the current (track, pattern, row)
func (s *Song) Selection() (track, pattern, row int) {
	return s.track, s.pattern, s.row
}

// SelectTrack moves the selection to another track
func (s *Song) SelectTrack(track int) {
	if track == s.track || track < 0 || track >= len(s.Tracks) {
		return
	}
	s.track = track
	s.notifySelection()
	s.notifyLayout() // another track may show different columns
}

// SelectPattern moves the selection to another pattern of the track
func (s *Song) SelectPattern(pattern int) {
	t := s.activeTrack()
	if t == nil || pattern == s.pattern || pattern < 0 || pattern >= len(t.Patterns) {
		return
	}
	s.pattern = pattern
	s.notifySelection()
}

// SelectRow moves the edit cursor
func (s *Song) SelectRow(row int) {
	if row == s.row {
		return
	}
	s.row = row
	s.notifySelection()
}

// SetNoteColumns changes the track's visible note-column count,
// growing every row of every pattern as needed
func (s *Song) SetNoteColumns(n int) {
	t := s.activeTrack()
	if t == nil || n == t.NoteColumns || n < 1 {
		return
	}
	t.NoteColumns = n
	for _, p := range t.Patterns {
		for i := range p.Rows {
			for len(p.Rows[i].Notes) < n {
				p.Rows[i].Notes = append(p.Rows[i].Notes, EmptyNoteCell())
			}
		}
	}
	s.notifyLayout()
}

// SetEffectColumns changes the track's visible effect-column count
func (s *Song) SetEffectColumns(n int) {
	t := s.activeTrack()
	if t == nil || n == t.EffectColumns || n < 0 {
		return
	}
	t.EffectColumns = n
	for _, p := range t.Patterns {
		for i := range p.Rows {
			for len(p.Rows[i].Effects) < n {
				p.Rows[i].Effects = append(p.Rows[i].Effects, EffectCell{})
			}
		}
	}
	s.notifyLayout()
}

// SetVolumeVisible toggles the volume sub-column
func (s *Song) SetVolumeVisible(v bool) {
	if t := s.activeTrack(); t != nil {
		s.setFlag(&t.VolumeVisible, v)
	}
}

// SetPanVisible toggles the pan sub-column
func (s *Song) SetPanVisible(v bool) {
	if t := s.activeTrack(); t != nil {
		s.setFlag(&t.PanVisible, v)
	}
}

// SetDelayVisible toggles the delay sub-column
func (s *Song) SetDelayVisible(v bool) {
	if t := s.activeTrack(); t != nil {
		s.setFlag(&t.DelayVisible, v)
	}
}

// SetFxVisible toggles the sample-fx sub-column
func (s *Song) SetFxVisible(v bool) {
	if t := s.activeTrack(); t != nil {
		s.setFlag(&t.FxVisible, v)
	}
}

func (s *Song) setFlag(flag *bool, v bool) {
	if *flag == v {
		return
	}
	*flag = v
	s.notifyLayout()
}

// ObserveLayout registers fn for column visibility and count changes.
// The returned detach func is safe to call more than once.
func (s *Song) ObserveLayout(fn func()) func() {
	return s.observe(s.layoutObs, fn)
}

// ObserveSelection registers fn for track, pattern and row moves
func (s *Song) ObserveSelection(fn func()) func() {
	return s.observe(s.selectionObs, fn)
}

func (s *Song) observe(obs map[int]func(), fn func()) func() {
	id := s.nextObs
	s.nextObs++
	obs[id] = fn
	return func() {
		delete(obs, id)
	}
}

func (s *Song) notifyLayout() {
	for _, fn := range s.layoutObs {
		fn()
	}
}

func (s *Song) notifySelection() {
	for _, fn := range s.selectionObs {
		fn()
	}
}

// --- control.Document ---

// Rows returns the row count of the current pattern
func (s *Song) Rows() int {
	p := s.currentPattern()
	if p == nil {
		return 0
	}
	return len(p.Rows)
}

// CurrentRow returns the row the edit cursor is on
func (s *Song) CurrentRow() int {
	return s.row
}

// NoteColumns returns the active track's visible note-column count
func (s *Song) NoteColumns() int {
	t := s.activeTrack()
	if t == nil {
		return 0
	}
	return t.NoteColumns
}

// EffectColumns returns the active track's visible effect-column count
func (s *Song) EffectColumns() int {
	t := s.activeTrack()
	if t == nil {
		return 0
	}
	return t.EffectColumns
}

// KindVisible reports whether the kind's sub-column is shown on note columns
func (s *Song) KindVisible(k control.Kind) bool {
	t := s.activeTrack()
	if t == nil {
		return false
	}
	switch k {
	case control.KindVolume:
		return t.VolumeVisible
	case control.KindPan:
		return t.PanVisible
	case control.KindDelay:
		return t.DelayVisible
	case control.KindFxAmount:
		return t.FxVisible
	}
	return true
}

// Value reads the raw cell value at (col, row). A column the row does
// not have reads as absent, not as an error.
func (s *Song) Value(col control.Column, row int) (int, bool) {
	p := s.currentPattern()
	if p == nil || row < 0 || row >= len(p.Rows) {
		return 0, false
	}
	r := &p.Rows[row]

	if col.Effect {
		if col.Index < 0 || col.Index >= len(r.Effects) {
			return 0, false
		}
		e := &r.Effects[col.Index]
		switch col.Kind {
		case control.KindFxAmount:
			return e.Amount, true
		case control.KindFxNumber:
			return e.Number, true
		}
		return 0, false
	}

	if col.Index < 0 || col.Index >= len(r.Notes) {
		return 0, false
	}
	n := &r.Notes[col.Index]
	switch col.Kind {
	case control.KindNote:
		return n.Note, true
	case control.KindInstrument:
		return n.Instrument, true
	case control.KindVolume:
		return n.Volume, true
	case control.KindPan:
		return n.Pan, true
	case control.KindDelay:
		return n.Delay, true
	case control.KindFxAmount:
		return n.FxAmount, true
	case control.KindFxNumber:
		return n.FxNumber, true
	}
	return 0, false
}

// SetValue writes the raw cell value at (col, row)
func (s *Song) SetValue(col control.Column, row, value int) bool {
	p := s.currentPattern()
	if p == nil || row < 0 || row >= len(p.Rows) {
		return false
	}
	r := &p.Rows[row]

	if col.Effect {
		if col.Index < 0 || col.Index >= len(r.Effects) {
			return false
		}
		e := &r.Effects[col.Index]
		switch col.Kind {
		case control.KindFxAmount:
			e.Amount = value
		case control.KindFxNumber:
			e.Number = value
		default:
			return false
		}
		return true
	}

	if col.Index < 0 || col.Index >= len(r.Notes) {
		return false
	}
	n := &r.Notes[col.Index]
	switch col.Kind {
	case control.KindNote:
		n.Note = value
	case control.KindInstrument:
		n.Instrument = value
	case control.KindVolume:
		n.Volume = value
	case control.KindPan:
		n.Pan = value
	case control.KindDelay:
		n.Delay = value
	case control.KindFxAmount:
		n.FxAmount = value
	case control.KindFxNumber:
		n.FxNumber = value
	default:
		return false
	}
	return true
}
