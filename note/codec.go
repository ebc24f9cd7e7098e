package note

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/scof/fraction"
	"github.com/jsphweid/scof/pitch"
)

var ErrMalformed = errors.New("malformed marking")

// ParseError locates the character run that could not be read.
type ParseError struct {
	Input  string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed marking %q at offset %d: %s", e.Input, e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

type parser struct {
	s   string
	pos int
}

func (p *parser) fail(offset int, format string, args ...any) error {
	return &ParseError{Input: p.s, Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) digits() (uint8, error) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, p.fail(start, "expected digits")
	}
	if p.s[start] == '0' && p.pos-start > 1 {
		return 0, p.fail(start, "leading zero in %s", p.s[start:p.pos])
	}
	n, err := strconv.ParseUint(p.s[start:p.pos], 10, 8)
	if err != nil {
		return 0, p.fail(start, "%s is out of range", p.s[start:p.pos])
	}
	return uint8(n), nil
}

func (p *parser) duration() (fraction.Fraction, error) {
	start := p.pos
	num := uint8(1)
	den, err := p.digits()
	if err != nil {
		return fraction.Fraction{}, err
	}
	if p.pos < len(p.s) && p.s[p.pos] == '/' {
		p.pos++
		num = den
		if den, err = p.digits(); err != nil {
			return fraction.Fraction{}, err
		}
	}
	if den == 0 {
		return fraction.Fraction{}, p.fail(start, "zero denominator")
	}
	if num == 0 {
		return fraction.Fraction{}, p.fail(start, "zero duration")
	}
	return fraction.New(num, den), nil
}

func (p *parser) pitchOrRest() (*pitch.Pitch, error) {
	if p.pos >= len(p.s) {
		return nil, p.fail(p.pos, "expected pitch or rest")
	}
	if p.s[p.pos] == 'R' {
		p.pos++
		return nil, nil
	}
	name, ok := pitch.ParseName(p.s[p.pos])
	if !ok {
		return nil, p.fail(p.pos, "unknown pitch letter %q", p.s[p.pos])
	}
	p.pos++
	accidental, n := pitch.ParseAccidental(p.s[p.pos:])
	p.pos += n
	if p.pos >= len(p.s) {
		return nil, p.fail(p.pos, "missing octave")
	}
	octave, ok := pitch.ParseOctave(p.s[p.pos])
	if !ok {
		return nil, p.fail(p.pos, "bad octave %q", p.s[p.pos])
	}
	p.pos++
	return &pitch.Pitch{
		Class:  pitch.Class{Name: name, Accidental: accidental},
		Octave: octave,
	}, nil
}

func (p *parser) articulations() ([]Articulation, error) {
	var res []Articulation
	for ; p.pos < len(p.s); p.pos++ {
		a, ok := articulationOf(p.s[p.pos])
		if !ok {
			return nil, p.fail(p.pos, "unexpected %q", p.s[p.pos])
		}
		res = append(res, a)
	}
	return res, nil
}

// Parse reads one marking. Errors are *ParseError.
func Parse(s string) (Note, error) {
	p := parser{s: s}
	d, err := p.duration()
	if err != nil {
		return Note{}, err
	}
	pi, err := p.pitchOrRest()
	if err != nil {
		return Note{}, err
	}
	arts, err := p.articulations()
	if err != nil {
		return Note{}, err
	}
	return Note{Pitch: pi, Duration: d, Articulation: arts}, nil
}

// String is the marking text. Articulations without a text form are left out.
func (n Note) String() string {
	var sb strings.Builder
	if n.Duration.Num != 1 {
		sb.WriteString(strconv.Itoa(int(n.Duration.Num)))
		sb.WriteByte('/')
	}
	sb.WriteString(strconv.Itoa(int(n.Duration.Den)))
	if n.Pitch == nil {
		sb.WriteByte('R')
	} else {
		sb.WriteString(n.Pitch.String())
	}
	for _, a := range n.Articulation {
		if c, ok := a.Mark(); ok {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
