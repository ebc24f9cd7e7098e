// Package score navigates and edits a model.Score through Cursor addresses.
//
// A Cursor is a plain value: it never points into the score, so edits can't
// leave it dangling. They can leave it stale, so check Valid before reusing a
// cursor across edits. Only the first movement is addressed.
package score

import (
	"github.com/jsphweid/scof/model"
	"github.com/jsphweid/scof/note"
)

// Cursor points at a marking.
type Cursor struct {
	Measure int
	Chan    int
	Marking int
}

func NewCursor(measure, ch, marking int) Cursor {
	return Cursor{Measure: measure, Chan: ch, Marking: marking}
}

// Left moves to the previous marking, crossing into the end of the previous
// measure. It does nothing at the very start.
func (c *Cursor) Left(s *model.Score) {
	if c.Marking > 0 {
		c.Marking--
	} else if c.Measure > 0 {
		c.Measure--
		c.Marking = 0
		if n := MarkingLen(s, *c); n > 0 {
			c.Marking = n - 1
		}
	}
}

// Right moves to the next marking, or to the start of the next measure after
// the last one. The next measure is not checked for existence.
func (c *Cursor) Right(s *model.Score) {
	if c.Marking+1 < MarkingLen(s, *c) {
		c.Marking++
	} else {
		c.Measure++
		c.Marking = 0
	}
}

func (c *Cursor) RightUnchecked() {
	c.Marking++
}

// Valid reports whether the cursor addresses a parseable marking.
func (c Cursor) Valid(s *model.Score) bool {
	_, err := Note(s, c)
	return err == nil
}

// MarkingLen counts the markings that parse, starting from the first one in
// the cursor's measure and channel. It is linear in the channel length.
func MarkingLen(s *model.Score, c Cursor) int {
	c.Marking = 0
	for {
		text, ok := markingStr(s, 0, c)
		if !ok {
			return c.Marking
		}
		if _, err := note.Parse(*text); err != nil {
			return c.Marking
		}
		c.Marking++
	}
}

func channel(s *model.Score, movement int, c Cursor) (*model.Chan, bool) {
	if s == nil || movement < 0 || movement >= len(s.Movement) {
		return nil, false
	}
	bars := s.Movement[movement].Bar
	if c.Measure < 0 || c.Measure >= len(bars) {
		return nil, false
	}
	chans := bars[c.Measure].Chan
	if c.Chan < 0 || c.Chan >= len(chans) {
		return nil, false
	}
	return &chans[c.Chan], true
}

func markingStr(s *model.Score, movement int, c Cursor) (*string, bool) {
	ch, ok := channel(s, movement, c)
	if !ok || c.Marking < 0 || c.Marking >= len(ch.Notes) {
		return nil, false
	}
	return &ch.Notes[c.Marking], true
}
