package control

// Kind identifies one editable column attribute of the tracker document
type Kind int

const (
	KindNote Kind = iota
	KindInstrument
	KindVolume
	KindPan
	KindDelay
	KindFxAmount
	KindFxNumber
)

func (k Kind) String() string {
	switch k {
	case KindNote:
		return "note"
	case KindInstrument:
		return "instrument"
	case KindVolume:
		return "volume"
	case KindPan:
		return "pan"
	case KindDelay:
		return "delay"
	case KindFxAmount:
		return "fx-amount"
	case KindFxNumber:
		return "fx-number"
	}
	return "unknown"
}

// kindSpec bundles the numeric contract of a kind: the writable range,
// the raw value the document stores for "nothing written here" and the
// value used when backward resolution finds no ancestor.
type kindSpec struct {
	min      int
	max      int
	sentinel int
	fallback int
}

var kindSpecs = [...]kindSpec{
	KindNote:       {min: 0, max: 119, sentinel: 121, fallback: 48}, // fallback C-4
	KindInstrument: {min: 0, max: 254, sentinel: 255, fallback: 0},
	KindVolume:     {min: 0, max: 127, sentinel: 255, fallback: 127},
	KindPan:        {min: 0, max: 127, sentinel: 255, fallback: 64}, // fallback center
	KindDelay:      {min: 0, max: 255, sentinel: 0, fallback: 0},
	KindFxAmount:   {min: 0, max: 255, sentinel: 0, fallback: 0},
	KindFxNumber:   {min: 0, max: 255, sentinel: 0, fallback: 0},
}

// Min returns the lowest writable value for the kind
func (k Kind) Min() int {
	return kindSpecs[k].min
}

// Max returns the highest writable value for the kind
func (k Kind) Max() int {
	return kindSpecs[k].max
}

// Sentinel returns the raw value meaning "no value written"
func (k Kind) Sentinel() int {
	return kindSpecs[k].sentinel
}

// Fallback returns the value used when no row above carries one
func (k Kind) Fallback() int {
	return kindSpecs[k].fallback
}

// Column addresses one logical column of the active track: a kind plus
// the note-column or effect-column index it lives on. FxAmount and
// FxNumber exist in both spaces; Effect picks the effect-column one.
type Column struct {
	Kind   Kind
	Index  int
	Effect bool
}
