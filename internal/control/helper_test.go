package control_test

import (
	"github.com/PixPMusic/gopher-twister/internal/control"
	"github.com/PixPMusic/gopher-twister/internal/song"
)

// newTestSong builds a single-track song with the given layout
func newTestSong(rows, noteCols, effectCols int) *song.Song {
	tr := song.NewTrack("Test", 1, rows)
	s := song.New(tr)
	s.SetNoteColumns(noteCols)
	s.SetEffectColumns(effectCols)
	return s
}

func noteCol(k control.Kind, index int) control.Column {
	return control.Column{Kind: k, Index: index}
}

func effectCol(k control.Kind, index int) control.Column {
	return control.Column{Kind: k, Index: index, Effect: true}
}

func mustSet(s *song.Song, col control.Column, row, value int) {
	if !s.SetValue(col, row, value) {
		panic("test cell write failed")
	}
}
