// Package duration models a note length: a denomination, an optional tuplet
// ratio and a bounded number of augmentation dots.
//
// A tuplet n:d plays n notes in the time normally taken by d, so 3:2 scales
// each note by 2/3. The numerator should exceed the denominator; 5:2 is better
// written 5:4 in common time.
package duration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/scof/fraction"
)

var (
	ErrMalformed    = errors.New("malformed duration")
	ErrTooManyDots  = fmt.Errorf("%w: too many augmentation dots", ErrMalformed)
	ErrDenomination = fmt.Errorf("%w: unknown denomination", ErrMalformed)
	ErrTuplet       = fmt.Errorf("%w: zero tuplet term", ErrMalformed)
)

// Denomination is the base note length, shortest first.
type Denomination uint8

const (
	Den128 Denomination = iota
	Den64
	Den32
	Den16
	Den8
	Den4
	Den2
	Whole
	DoubleWhole
	QuadrupleWhole
	numDenominations
)

var letters = "OXYSTQUWVL"

var maxDots = [numDenominations]uint8{0, 1, 2, 3, 4, 4, 3, 2, 1, 0}

var bases = [numDenominations]fraction.Fraction{
	{Num: 1, Den: 128},
	{Num: 1, Den: 64},
	{Num: 1, Den: 32},
	{Num: 1, Den: 16},
	{Num: 1, Den: 8},
	{Num: 1, Den: 4},
	{Num: 1, Den: 2},
	{Num: 1, Den: 1},
	{Num: 2, Den: 1},
	{Num: 4, Den: 1},
}

// Denominations lists every denomination from 128th to quadruple whole.
func Denominations() []Denomination {
	res := make([]Denomination, 0, numDenominations)
	for d := Den128; d < numDenominations; d++ {
		res = append(res, d)
	}
	return res
}

func (d Denomination) Valid() bool {
	return d < numDenominations
}

// MaxDots is how many augmentation dots the denomination may carry.
func (d Denomination) MaxDots() uint8 {
	if !d.Valid() {
		return 0
	}
	return maxDots[d]
}

// Base is the undotted, untupled length as a fraction of a whole note.
func (d Denomination) Base() fraction.Fraction {
	if !d.Valid() {
		return fraction.Fraction{}
	}
	return bases[d]
}

func (d Denomination) Letter() byte {
	if !d.Valid() {
		return '?'
	}
	return letters[d]
}

func (d Denomination) String() string {
	return string(d.Letter())
}

func DenominationOf(letter byte) (Denomination, bool) {
	i := strings.IndexByte(letters, letter)
	if i < 0 {
		return 0, false
	}
	return Denomination(i), true
}

type Duration struct {
	Denomination Denomination
	TupletNum    uint8
	TupletDen    uint8
	Dots         uint8
}

// New returns an undotted duration with a 1:1 tuplet.
func New(d Denomination) Duration {
	return Duration{Denomination: d, TupletNum: 1, TupletDen: 1}
}

func (d Duration) Validate() error {
	if !d.Denomination.Valid() {
		return ErrDenomination
	}
	if d.TupletNum == 0 || d.TupletDen == 0 {
		return ErrTuplet
	}
	if d.Dots > d.Denomination.MaxDots() {
		return ErrTooManyDots
	}
	return nil
}

// Augment adds a dot, saturating at the denomination's limit.
func (d *Duration) Augment() {
	if d.Dots < d.Denomination.MaxDots() {
		d.Dots++
	}
}

// Diminish removes a dot, saturating at zero.
func (d *Duration) Diminish() {
	if d.Dots > 0 {
		d.Dots--
	}
}

// Fraction is the sounding length as a fraction of a whole note. It is the
// base length times the inverted tuplet ratio, and unlike a bare
// base-times-ratio value it also includes the dots: n dots multiply by
// (2^(n+1) - 1) / 2^n, so a dotted quarter is 3/8.
func (d Duration) Fraction() (fraction.Fraction, error) {
	if err := d.Validate(); err != nil {
		return fraction.Fraction{}, err
	}
	f, err := d.Denomination.Base().Mul(fraction.New(d.TupletDen, d.TupletNum))
	if err != nil {
		return fraction.Fraction{}, err
	}
	if d.Dots == 0 {
		return f, nil
	}
	// n dots lengthen by (2^(n+1) - 1) / 2^n
	pow := uint8(1) << d.Dots
	return f.Mul(fraction.New(pow*2-1, pow))
}

func (d Duration) String() string {
	return string(d.Denomination.Letter()) + strings.Repeat(".", int(d.Dots))
}

// Parse reads a denomination letter followed by augmentation dots. Unlike
// Augment it refuses dots past the limit.
func Parse(s string) (Duration, error) {
	if s == "" {
		return Duration{}, fmt.Errorf("%w: empty", ErrDenomination)
	}
	den, ok := DenominationOf(s[0])
	if !ok {
		return Duration{}, fmt.Errorf("%w %q", ErrDenomination, s[0])
	}
	d := New(den)
	for i := 1; i < len(s); i++ {
		if s[i] != '.' {
			return Duration{}, fmt.Errorf("%w: unexpected %q at offset %d", ErrMalformed, s[i], i)
		}
		if d.Dots == den.MaxDots() {
			return Duration{}, fmt.Errorf("%w: %s allows %d at offset %d", ErrTooManyDots, den, den.MaxDots(), i)
		}
		d.Augment()
	}
	return d, nil
}

// ParseLength parses a letter form such as "Q." straight to its length.
func ParseLength(s string) (fraction.Fraction, error) {
	d, err := Parse(s)
	if err != nil {
		return fraction.Fraction{}, err
	}
	return d.Fraction()
}

// Of finds the untupled, possibly dotted duration that lasts f, preferring
// fewer dots.
func Of(f fraction.Fraction) (Duration, bool) {
	if !f.Valid() || f.IsZero() {
		return Duration{}, false
	}
	for dots := uint8(0); dots <= 4; dots++ {
		for _, den := range Denominations() {
			if dots > den.MaxDots() {
				continue
			}
			d := New(den)
			d.Dots = dots
			got, err := d.Fraction()
			if err == nil && got.Equal(f) {
				return d, true
			}
		}
	}
	return Duration{}, false
}
