package control

// LED ring state colors, sent as CC values on the color channel. The
// values index the controller's hue wheel.
const (
	ColorOff           uint8 = 0  // reset / unallocated
	ColorNoteEmpty     uint8 = 1  // blue
	ColorColumnEmpty   uint8 = 25 // cyan
	ColorNotePresent   uint8 = 50 // green
	ColorColumnPresent uint8 = 64 // yellow
	ColorFxEmpty       uint8 = 70 // orange
	ColorFxPresent     uint8 = 85 // red
)

// Feedback is one encoder's outgoing state: an absolute ring value and a
// state color, addressed independently so the receiver can separate
// brightness from color.
type Feedback struct {
	Control uint8
	Value   uint8
	Color   uint8
}

// Encode translates a logical column's current state into feedback for
// the encoder mapped to it. The value is the resolved value capped to
// the 7-bit transmissible range (capped, not wrapped - the stored value
// is untouched). The color reflects explicit presence at the current
// row only: an inherited value shows on the ring but colors as empty.
func Encode(doc Document, control uint8, col Column) Feedback {
	row := doc.CurrentRow()
	v := Resolve(doc, col, row)
	if v > 127 {
		v = 127
	}
	if v < 0 {
		v = 0
	}
	return Feedback{
		Control: control,
		Value:   uint8(v),
		Color:   stateColor(col, Present(doc, col, row)),
	}
}

// ResetFeedback is what a control receives when it leaves the allocation
func ResetFeedback(control uint8) Feedback {
	return Feedback{Control: control, Value: 0, Color: ColorOff}
}

func stateColor(col Column, present bool) uint8 {
	switch {
	case col.Effect || col.Kind == KindFxAmount || col.Kind == KindFxNumber:
		if present {
			return ColorFxPresent
		}
		return ColorFxEmpty
	case col.Kind == KindNote || col.Kind == KindInstrument:
		if present {
			return ColorNotePresent
		}
		return ColorNoteEmpty
	default:
		if present {
			return ColorColumnPresent
		}
		return ColorColumnEmpty
	}
}
