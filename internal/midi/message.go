package midi

// Command nibbles of the status byte
const (
	NoteOff       uint8 = 0x80
	NoteOn        uint8 = 0x90
	ControlChange uint8 = 0xB0
)

// Command extracts the command nibble from a status byte
func Command(status uint8) uint8 {
	return status & 0xF0
}

// Channel extracts the 0-based channel from a status byte
func Channel(status uint8) uint8 {
	return status & 0x0F
}

// Status builds a status byte from a command nibble and 0-based channel
func Status(command, channel uint8) uint8 {
	return command | (channel & 0x0F)
}
