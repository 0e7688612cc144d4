package midi

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
)

// RawCallback receives one inbound 3-byte message
type RawCallback func(status, data1, data2 uint8)

// Manager handles MIDI port discovery and connections
type Manager struct {
	mu sync.RWMutex
}

// NewManager creates a new MIDI manager
func NewManager() *Manager {
	return &Manager{}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	midi.CloseDriver()
}

// ListInPorts returns the names of available MIDI input ports
func (m *Manager) ListInPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ins := midi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	outs := midi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

// OpenInput starts listening on the named port, delivering raw 3-byte
// messages to cb. A missing port is not an error: the returned stop func
// is nil and the caller simply never activates.
func (m *Manager) OpenInput(name string, cb RawCallback) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inPort := m.findInPort(name)
	if inPort == nil {
		return nil, nil
	}

	stop, err := midi.ListenTo(inPort, func(msg midi.Message, timestampms int32) {
		raw := msg.Bytes()
		if len(raw) < 3 {
			return
		}
		cb(raw[0], raw[1], raw[2])
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", name, err)
	}
	return stop, nil
}

// OpenOutput returns a Control Change send func bound to the named port,
// or nil when the port is absent (sends then stay disabled).
func (m *Manager) OpenOutput(name string) (func(channel, controller, value uint8), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	outPort := m.findOutPort(name)
	if outPort == nil {
		return nil, nil
	}

	send, err := midi.SendTo(outPort)
	if err != nil {
		return nil, fmt.Errorf("failed to open output %s: %w", name, err)
	}
	return func(channel, controller, value uint8) {
		// Fire-and-forget: feedback has no acknowledgment or retry.
		send(midi.ControlChange(channel, controller, value))
	}, nil
}

func (m *Manager) findInPort(name string) drivers.In {
	ins := midi.GetInPorts()
	for _, in := range ins {
		if in.String() == name {
			return in
		}
	}
	return nil
}

func (m *Manager) findOutPort(name string) drivers.Out {
	outs := midi.GetOutPorts()
	for _, out := range outs {
		if out.String() == name {
			return out
		}
	}
	return nil
}
