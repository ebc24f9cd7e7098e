package note

// Articulation affects how a note is played.
type Articulation uint8

const (
	Staccatissimo Articulation = iota
	Staccato
	Tenuto
	Marcato
	Accent
	Slur
	Glissando
	BendUpInto
	BendDownInto
	BendUpOut
	BendDownOut
	Fermata
	Mute
	Open
	Harmonic
	Turn
	TurnInverted
	Trill
	Tremelo
	StrumDown
	StrumUp
	Pedal
)

// Only these have a marking text form. Combined forms like "_." are written as
// a Tenuto followed by a Staccato.
var articulationMarks = map[Articulation]byte{
	Marcato:       '^',
	Accent:        '>',
	Staccato:      '.',
	Staccatissimo: '\'',
	Tenuto:        '_',
}

func articulationOf(c byte) (Articulation, bool) {
	for a, mark := range articulationMarks {
		if mark == c {
			return a, true
		}
	}
	return 0, false
}

// Mark returns the text form of a, if it has one.
func (a Articulation) Mark() (byte, bool) {
	c, ok := articulationMarks[a]
	return c, ok
}
