package control

// Direction is the sign of one committed edit step
type Direction int

const (
	Decrement Direction = -1
	Increment Direction = 1
)

// Reserved data values framing an encoder press. While held the repeat
// throttle is bypassed so a clicked encoder re-applies on every message.
const (
	dataPress   uint8 = 127
	dataRelease uint8 = 0
)

// encoderState tracks one encoder's burst of identical messages.
// Relative encoders emit several identical CC messages per detent; the
// count spreads a single detent over threshold messages so a light
// touch does not over-trigger.
type encoderState struct {
	command   uint8
	channel   uint8
	control   uint8
	count     int
	threshold int
}

// Decoder turns the raw stream of relative CC messages into discrete,
// rate-limited commit decisions, one state machine per allocated
// encoder.
type Decoder struct {
	channel   uint8 // 0-based control channel
	threshold int   // configured repeat rate
	increase  uint8 // data value meaning "one step up"
	decrease  uint8 // data value meaning "one step down"
	states    map[uint8]*encoderState
}

// NewDecoder creates a decoder listening on the 0-based channel with the
// given repeat threshold and direction marker values.
func NewDecoder(channel uint8, threshold int, increase, decrease uint8) *Decoder {
	if threshold < 1 {
		threshold = 1
	}
	return &Decoder{
		channel:   channel,
		threshold: threshold,
		increase:  increase,
		decrease:  decrease,
		states:    make(map[uint8]*encoderState),
	}
}

// Sync aligns the per-encoder state with an allocation: state is created
// when a control enters the allocation and discarded when it leaves.
func (d *Decoder) Sync(alloc *Allocation) {
	for control := range d.states {
		if !alloc.Has(control) {
			delete(d.states, control)
		}
	}
	for _, control := range alloc.Controls() {
		if _, ok := d.states[control]; !ok {
			d.states[control] = &encoderState{threshold: d.threshold}
		}
	}
}

// Feed consumes one message and reports whether the caller should apply
// an edit now, and in which direction. Messages for controls outside the
// current allocation are ignored.
func (d *Decoder) Feed(command, channel, control, data uint8) (Direction, bool) {
	st, ok := d.states[control]
	if !ok {
		return 0, false
	}

	// Press/release framing: never an edit, only a throttle change.
	switch data {
	case dataPress:
		st.threshold = 1
		return 0, false
	case dataRelease:
		st.threshold = d.threshold
		return 0, false
	}

	if command == st.command && channel == st.channel && control == st.control {
		st.count++
		if st.count > st.threshold {
			// Reset to 1, not 0: the next burst of threshold messages
			// lands the count back on threshold.
			st.count = 1
		}
	} else {
		st.command = command
		st.channel = channel
		st.control = control
		st.count = 1
	}

	if channel != d.channel {
		return 0, false
	}
	if st.count < st.threshold {
		return 0, false
	}

	switch data {
	case d.increase:
		return Increment, true
	case d.decrease:
		return Decrement, true
	}
	return 0, false
}
