package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/PixPMusic/gopher-twister/internal/config"
	"github.com/PixPMusic/gopher-twister/internal/control"
	"github.com/PixPMusic/gopher-twister/internal/debug"
	"github.com/PixPMusic/gopher-twister/internal/midi"
	"github.com/PixPMusic/gopher-twister/internal/song"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Save(); err != nil {
		log.Printf("Failed to save config: %v", err)
	}

	if cfg.Debug {
		if err := debug.Enable(); err != nil {
			log.Printf("Failed to enable debug log: %v", err)
		}
		defer debug.Disable()
	}

	profile := cfg.CurrentProfile()
	if profile == nil {
		log.Fatal("No controller profile configured")
	}

	// Initialize MIDI manager
	midiManager := midi.NewManager()
	defer midiManager.Close()

	// Open the controller by its configured port names. An absent device
	// is not an error: the session just never activates.
	send, err := midiManager.OpenOutput(profile.OutPort)
	if err != nil {
		log.Fatalf("Failed to open output: %v", err)
	}
	if send == nil {
		log.Printf("Output port %q not found, feedback disabled", profile.OutPort)
	}

	doc := starterSong()
	session := control.NewSession(doc, control.SendFunc(send), profile.Params())

	stop, err := midiManager.OpenInput(profile.InPort, session.HandleMessage)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}
	if stop == nil {
		log.Printf("Input port %q not found, controller inactive", profile.InPort)
	} else {
		defer stop()
	}

	session.Attach()
	defer session.Detach()

	log.Printf("gopher-twister running, profile %q (in=%q out=%q)",
		profile.Name, profile.InPort, profile.OutPort)

	// Run until interrupted
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

// starterSong builds a small pattern to edit out of the box: one track,
// two note columns with the volume sub-column shown, one effect column.
func starterSong() *song.Song {
	track := song.NewTrack("Track 01", 2, 16)
	track.VolumeVisible = true
	s := song.New(track)
	s.SetNoteColumns(2)
	s.SetEffectColumns(1)

	p := track.Patterns[0]
	p.Rows[0].Notes[0] = song.NoteCell{
		Note:       48, // C-4
		Instrument: 0,
		Volume:     song.EmptyVolume,
		Pan:        song.EmptyPan,
		Delay:      song.EmptyDelay,
	}
	p.Rows[8].Notes[0] = song.NoteCell{
		Note:       55, // G-4
		Instrument: 0,
		Volume:     96,
		Pan:        song.EmptyPan,
		Delay:      song.EmptyDelay,
	}
	p.Rows[0].Effects[0] = song.EffectCell{Number: 0x0A, Amount: 0x40}
	return s
}
