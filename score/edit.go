package score

import (
	"errors"
	"fmt"

	"github.com/jsphweid/scof/duration"
	"github.com/jsphweid/scof/fraction"
	"github.com/jsphweid/scof/model"
	"github.com/jsphweid/scof/note"
	"github.com/jsphweid/scof/pitch"
)

var (
	ErrOutOfRange = errors.New("cursor out of range")
	ErrNoMeasures = errors.New("movement has no measures")
	ErrNotDotted  = errors.New("duration is not a plain or dotted denomination")
)

func outOfRange(c Cursor) error {
	return fmt.Errorf("%w: measure %d, chan %d, marking %d", ErrOutOfRange, c.Measure, c.Chan, c.Marking)
}

// Marking reads the marking at the cursor.
func Marking(s *model.Score, c Cursor) (note.Marking, error) {
	n, err := Note(s, c)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Note decodes the marking at the cursor as a Note.
func Note(s *model.Score, c Cursor) (note.Note, error) {
	text, ok := markingStr(s, 0, c)
	if !ok {
		return note.Note{}, outOfRange(c)
	}
	return note.Parse(*text)
}

// InsertAfter puts n directly after the cursor's marking.
func InsertAfter(s *model.Score, c Cursor, n note.Note) error {
	ch, ok := channel(s, 0, c)
	at := c.Marking + 1
	if !ok || c.Marking < 0 || at > len(ch.Notes) {
		return outOfRange(c)
	}
	ch.Notes = append(ch.Notes, "")
	copy(ch.Notes[at+1:], ch.Notes[at:])
	ch.Notes[at] = n.String()
	return nil
}

// RemoveAfter deletes the marking directly after the cursor and returns it.
func RemoveAfter(s *model.Score, c Cursor) (note.Note, error) {
	ch, ok := channel(s, 0, c)
	at := c.Marking + 1
	if !ok || c.Marking < 0 || at >= len(ch.Notes) {
		return note.Note{}, outOfRange(c)
	}
	removed, err := note.Parse(ch.Notes[at])
	if err != nil {
		return note.Note{}, err
	}
	ch.Notes = append(ch.Notes[:at], ch.Notes[at+1:]...)
	return removed, nil
}

// update decodes the marking at the cursor, applies fn, and stores the result.
func update(s *model.Score, c Cursor, fn func(*note.Note)) error {
	text, ok := markingStr(s, 0, c)
	if !ok {
		return outOfRange(c)
	}
	n, err := note.Parse(*text)
	if err != nil {
		return err
	}
	fn(&n)
	*text = n.String()
	return nil
}

func SetPitch(s *model.Score, c Cursor, p pitch.Pitch) error {
	return update(s, c, func(n *note.Note) {
		n.SetPitch(p)
	})
}

func SetDuration(s *model.Score, c Cursor, d fraction.Fraction) error {
	if !d.Valid() {
		return fraction.ErrZeroDenominator
	}
	if d.IsZero() {
		return fmt.Errorf("%w: zero duration", fraction.ErrDegenerate)
	}
	return update(s, c, func(n *note.Note) {
		n.SetDuration(d)
	})
}

// SetDurationIndexed sets the length to a plain denomination, indexed from
// the 128th note (0) to the quadruple whole note (9).
func SetDurationIndexed(s *model.Score, c Cursor, index int) error {
	dens := duration.Denominations()
	if index < 0 || index >= len(dens) {
		return fmt.Errorf("%w: duration index %d", ErrOutOfRange, index)
	}
	return SetDuration(s, c, dens[index].Base())
}

// Augment adds a dot to the note at the cursor, saturating at the
// denomination's limit. Tuplet lengths can't be dotted.
func Augment(s *model.Score, c Cursor) error {
	return redot(s, c, (*duration.Duration).Augment)
}

// Diminish removes a dot from the note at the cursor.
func Diminish(s *model.Score, c Cursor) error {
	return redot(s, c, (*duration.Duration).Diminish)
}

func redot(s *model.Score, c Cursor, fn func(*duration.Duration)) error {
	n, err := Note(s, c)
	if err != nil {
		return err
	}
	d, ok := duration.Of(n.Duration)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotDotted, n.Duration)
	}
	fn(&d)
	f, err := d.Fraction()
	if err != nil {
		return err
	}
	return SetDuration(s, c, f)
}

// Step moves the note at the cursor with fn, using create for a rest.
func Step(s *model.Score, c Cursor, create pitch.Pitch, fn func(note.Note, pitch.Pitch) note.Note) error {
	return update(s, c, func(n *note.Note) {
		*n = fn(*n, create)
	})
}

// NewMeasure appends a bar to the first movement with as many channels as the
// last bar, each holding a whole rest.
func NewMeasure(s *model.Score) error {
	if s == nil || len(s.Movement) == 0 || len(s.Movement[0].Bar) == 0 {
		return ErrNoMeasures
	}
	mv := &s.Movement[0]
	last := mv.Bar[len(mv.Bar)-1]
	chans := make([]model.Chan, 0, len(last.Chan))
	for range last.Chan {
		chans = append(chans, model.NewChan())
	}
	mv.Bar = append(mv.Bar, model.Bar{Chan: chans})
	return nil
}
