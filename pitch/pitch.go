// Package pitch holds pitch names, accidentals and octaves, and the diatonic
// step arithmetic used when moving notes around a staff.
package pitch

import (
	"fmt"
	"strings"
)

type Name uint8

const (
	C Name = iota
	D
	E
	F
	G
	A
	B
)

var names = "CDEFGAB"

func (n Name) String() string {
	if int(n) >= len(names) {
		return fmt.Sprintf("Name(%d)", n)
	}
	return names[n : n+1]
}

// Steps is the number of diatonic steps above C.
func (n Name) Steps() int {
	return int(n)
}

func ParseName(c byte) (Name, bool) {
	i := strings.IndexByte(names, c)
	if i < 0 {
		return 0, false
	}
	return Name(i), true
}

func (n Name) up() (Name, bool) {
	if n == B {
		return C, true
	}
	return n + 1, false
}

func (n Name) down() (Name, bool) {
	if n == C {
		return B, true
	}
	return n - 1, false
}

// Accidental is optional; the zero value means the key signature decides.
type Accidental uint8

const (
	NoAccidental Accidental = iota
	DoubleFlat
	ThreeQuarterFlat
	Flat
	QuarterFlat
	Natural
	QuarterSharp
	Sharp
	ThreeQuarterSharp
	DoubleSharp
)

var accidentalText = map[Accidental]string{
	NoAccidental:      "",
	DoubleFlat:        "bb",
	ThreeQuarterFlat:  "db",
	Flat:              "b",
	QuarterFlat:       "d",
	Natural:           "n",
	QuarterSharp:      "t",
	Sharp:             "#",
	ThreeQuarterSharp: "t#",
	DoubleSharp:       "x",
}

// longest first so "bb" wins over "b"
var accidentalOrder = []Accidental{
	DoubleFlat, ThreeQuarterFlat, ThreeQuarterSharp,
	Flat, QuarterFlat, Natural, QuarterSharp, Sharp, DoubleSharp,
}

func (a Accidental) String() string {
	return accidentalText[a]
}

// QuarterTones is the alteration in quarter tones.
func (a Accidental) QuarterTones() int {
	switch a {
	case DoubleFlat:
		return -4
	case ThreeQuarterFlat:
		return -3
	case Flat:
		return -2
	case QuarterFlat:
		return -1
	case QuarterSharp:
		return 1
	case Sharp:
		return 2
	case ThreeQuarterSharp:
		return 3
	case DoubleSharp:
		return 4
	}
	return 0
}

// ParseAccidental reads an accidental prefix of s and returns how many bytes
// it used. No accidental is not an error.
func ParseAccidental(s string) (Accidental, int) {
	for _, a := range accidentalOrder {
		text := accidentalText[a]
		if strings.HasPrefix(s, text) {
			return a, len(text)
		}
	}
	return NoAccidental, 0
}

// Class is a pitch name with its accidental.
type Class struct {
	Name       Name
	Accidental Accidental
}

func (c Class) String() string {
	return c.Name.String() + c.Accidental.String()
}

// Pitch is a class in a specific octave.
type Pitch struct {
	Class  Class
	Octave Octave
}

func New(name Name, octave Octave) Pitch {
	return Pitch{Class: Class{Name: name}, Octave: octave}
}

func (p Pitch) String() string {
	return p.Class.String() + p.Octave.String()
}

// StepUp moves one letter up, raising the octave from B to C. A pitch that
// would leave the octave range is returned unchanged.
func (p Pitch) StepUp() Pitch {
	name, wrap := p.Class.Name.up()
	return p.step(name, wrap, p.Octave.Raise)
}

// StepDown moves one letter down, lowering the octave from C to B.
func (p Pitch) StepDown() Pitch {
	name, wrap := p.Class.Name.down()
	return p.step(name, wrap, p.Octave.Lower)
}

func (p Pitch) step(name Name, wrap bool, move func() (Octave, bool)) Pitch {
	octave := p.Octave
	if wrap {
		next, ok := move()
		if !ok {
			return p
		}
		octave = next
	}
	return Pitch{
		Class:  Class{Name: name, Accidental: p.Class.Accidental},
		Octave: octave,
	}
}

// Parse reads a pitch such as "C4", "F#5" or "Bb-".
func Parse(s string) (Pitch, error) {
	if s == "" {
		return Pitch{}, fmt.Errorf("empty pitch")
	}
	name, ok := ParseName(s[0])
	if !ok {
		return Pitch{}, fmt.Errorf("unknown pitch letter %q in %q", s[0], s)
	}
	accidental, n := ParseAccidental(s[1:])
	rest := s[1+n:]
	if len(rest) != 1 {
		return Pitch{}, fmt.Errorf("expected one octave character in %q", s)
	}
	octave, ok := ParseOctave(rest[0])
	if !ok {
		return Pitch{}, fmt.Errorf("bad octave %q in %q", rest[0], s)
	}
	return Pitch{Class: Class{Name: name, Accidental: accidental}, Octave: octave}, nil
}
