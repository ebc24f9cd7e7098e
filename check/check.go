// Package check lints a movement for markings that don't parse, bars whose
// notes don't fill the time signature and dangling signature references.
package check

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/scof/fraction"
	"github.com/jsphweid/scof/model"
	"github.com/jsphweid/scof/note"
)

type Kind uint8

const (
	Malformed Kind = iota
	BadLength
	BadSig
	BadRepeat
)

var kindNames = []string{"malformed", "length", "sig", "repeat"}

func (k Kind) String() string {
	return kindNames[k]
}

type Problem struct {
	Kind    Kind
	Measure int
	// -1 when the problem is with the whole bar
	Chan    int
	Marking int
	// offset within the marking text, for Malformed
	Offset  int
	Message string
}

func (p Problem) String() string {
	if p.Chan < 0 {
		return fmt.Sprintf("measure %d: %s: %s", p.Measure, p.Kind, p.Message)
	}
	return fmt.Sprintf("measure %d chan %d marking %d: %s: %s", p.Measure, p.Chan, p.Marking, p.Kind, p.Message)
}

// ParseTime reads a time signature such as "6/8" as a fraction of a whole
// note.
func ParseTime(s string) (fraction.Fraction, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return fraction.Fraction{}, fmt.Errorf("time signature %q is not num/den", s)
	}
	n, err := strconv.ParseUint(num, 10, 8)
	if err != nil {
		return fraction.Fraction{}, fmt.Errorf("time signature %q: %w", s, err)
	}
	d, err := strconv.ParseUint(den, 10, 8)
	if err != nil {
		return fraction.Fraction{}, fmt.Errorf("time signature %q: %w", s, err)
	}
	if d == 0 || n == 0 {
		return fraction.Fraction{}, fmt.Errorf("time signature %q: %w", s, fraction.ErrDegenerate)
	}
	return fraction.New(uint8(n), uint8(d)), nil
}

func validRepeat(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	r, ok := model.ParseRepeat(fields[0])
	if !ok {
		return false
	}
	if r == model.Ending {
		if len(fields) != 2 {
			return false
		}
		_, err := strconv.ParseUint(fields[1], 10, 8)
		return err == nil
	}
	return len(fields) == 1
}

// Movement returns every problem found, in score order.
func Movement(m model.Movement) []Problem {
	var res []Problem
	sig := -1
	for i, bar := range m.Bar {
		if bar.Sig != nil {
			if int(*bar.Sig) >= len(m.Sig) {
				res = append(res, Problem{Kind: BadSig, Measure: i, Chan: -1,
					Message: fmt.Sprintf("signature %d does not exist", *bar.Sig)})
			} else {
				sig = int(*bar.Sig)
			}
		}
		for _, r := range bar.Repeat {
			if !validRepeat(r) {
				res = append(res, Problem{Kind: BadRepeat, Measure: i, Chan: -1,
					Message: fmt.Sprintf("unknown repeat %q", r)})
			}
		}

		var want *fraction.Fraction
		if sig >= 0 {
			time, err := ParseTime(m.Sig[sig].Time)
			if err != nil {
				res = append(res, Problem{Kind: BadSig, Measure: i, Chan: -1, Message: err.Error()})
			} else {
				want = &time
			}
		}

		for j, ch := range bar.Chan {
			res = append(res, channel(i, j, ch, want)...)
		}
	}
	return res
}

func channel(measure, ch int, c model.Chan, want *fraction.Fraction) []Problem {
	var res []Problem
	total := fraction.New(0, 1)
	// a lone whole rest fills any measure
	counting := !(len(c.Notes) == 1 && c.Notes[0] == model.WholeRest)
	for k, text := range c.Notes {
		n, err := note.Parse(text)
		var pe *note.ParseError
		if errors.As(err, &pe) {
			res = append(res, Problem{Kind: Malformed, Measure: measure, Chan: ch, Marking: k,
				Offset: pe.Offset, Message: pe.Reason})
			counting = false
			continue
		}
		if !counting {
			continue
		}
		if total, err = total.Add(n.Duration); err != nil {
			res = append(res, Problem{Kind: BadLength, Measure: measure, Chan: ch, Marking: k,
				Message: err.Error()})
			counting = false
		}
	}
	if counting && want != nil && !total.Equal(*want) {
		res = append(res, Problem{Kind: BadLength, Measure: measure, Chan: ch, Marking: len(c.Notes),
			Message: fmt.Sprintf("notes add up to %v, time signature is %v", total, *want)})
	}
	return res
}
