// Package note converts between Note values and their one-line marking text.
//
// A marking is a duration, a pitch or rest, then optional articulations:
//
//	4C4     quarter note, middle C
//	8R      eighth rest
//	3/8Eb5  three eighths, E flat above middle C
//	2G#3>_  half note G sharp, accented and tenuto
//
// The duration is "den" or "num/den" of a whole note. The octave character is
// '-' for octave -1 or a digit. Accidentals are written bb, db, b, d, n, t, #,
// t# and x; without one the key signature applies. Articulations are ^ > . '
// and _.
package note

import (
	"github.com/jsphweid/scof/fraction"
	"github.com/jsphweid/scof/pitch"
)

type Note struct {
	// nil for a rest
	Pitch        *pitch.Pitch
	Duration     fraction.Fraction
	Articulation []Articulation
}

func Rest(duration fraction.Fraction) Note {
	return Note{Duration: duration}
}

func Pitched(p pitch.Pitch, duration fraction.Fraction) Note {
	return Note{Pitch: &p, Duration: duration}
}

func (n Note) IsRest() bool {
	return n.Pitch == nil
}

// VisualDistance is the number of staff steps from middle C, negated so that
// higher notes sit at smaller y. Rests are at 0.
func (n Note) VisualDistance() int {
	if n.Pitch == nil {
		return 0
	}
	octaves := int(n.Pitch.Octave) - int(pitch.MiddleOctave)
	return -(n.Pitch.Class.Name.Steps() + 7*octaves)
}

func (n *Note) SetPitch(p pitch.Pitch) {
	n.Pitch = &p
}

func (n *Note) SetDuration(d fraction.Fraction) {
	n.Duration = d
}

// StepUp returns the note one step up within the key. A rest becomes create.
func (n Note) StepUp(create pitch.Pitch) Note {
	return n.moveStep(create, pitch.Pitch.StepUp)
}

// StepDown returns the note one step down within the key. A rest becomes
// create.
func (n Note) StepDown(create pitch.Pitch) Note {
	return n.moveStep(create, pitch.Pitch.StepDown)
}

// TODO: chromatic stepping needs a sharp/flat spelling policy; these are
// diatonic until then.
func (n Note) HalfStepUp(create pitch.Pitch) Note {
	return n.StepUp(create)
}

func (n Note) HalfStepDown(create pitch.Pitch) Note {
	return n.StepDown(create)
}

func (n Note) QuarterStepUp(create pitch.Pitch) Note {
	return n.StepUp(create)
}

func (n Note) QuarterStepDown(create pitch.Pitch) Note {
	return n.StepDown(create)
}

func (n Note) moveStep(create pitch.Pitch, run func(pitch.Pitch) pitch.Pitch) Note {
	next := create
	if n.Pitch != nil {
		next = run(*n.Pitch)
	}
	res := Note{
		Pitch:    &next,
		Duration: n.Duration,
	}
	if len(n.Articulation) > 0 {
		res.Articulation = append([]Articulation(nil), n.Articulation...)
	}
	return res
}
