package pitch

import "strconv"

// Octave in scientific pitch notation, -1 through 9.
type Octave int8

const (
	MinOctave Octave = -1
	MaxOctave Octave = 9
	// Middle C lives in octave 4.
	MiddleOctave Octave = 4
)

func (o Octave) Valid() bool {
	return o >= MinOctave && o <= MaxOctave
}

// Raise returns the next octave, or false at octave 9.
func (o Octave) Raise() (Octave, bool) {
	if o >= MaxOctave || o < MinOctave {
		return o, false
	}
	return o + 1, true
}

// Lower returns the previous octave, or false at octave -1.
func (o Octave) Lower() (Octave, bool) {
	if o <= MinOctave || o > MaxOctave {
		return o, false
	}
	return o - 1, true
}

// String writes octave -1 as "-".
func (o Octave) String() string {
	if o == -1 {
		return "-"
	}
	return strconv.Itoa(int(o))
}

func ParseOctave(c byte) (Octave, bool) {
	switch {
	case c == '-':
		return -1, true
	case c >= '0' && c <= '9':
		return Octave(c - '0'), true
	}
	return 0, false
}
