// Package fraction is an exact unsigned rational used for note durations.
// Values are not reduced when constructed; every arithmetic result is.
package fraction

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

var (
	ErrDegenerate      = errors.New("degenerate fraction")
	ErrZeroDenominator = fmt.Errorf("%w: zero denominator", ErrDegenerate)
	ErrOverflow        = fmt.Errorf("%w: result does not fit in 8 bits", ErrDegenerate)
	ErrNegative        = fmt.Errorf("%w: negative result", ErrDegenerate)
)

// Fraction of a whole note.
type Fraction struct {
	Num uint8
	Den uint8
}

func New(num, den uint8) Fraction {
	return Fraction{Num: num, Den: den}
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// IsZero is true for 0/n with n != 0.
func (f Fraction) IsZero() bool {
	return f.Num == 0 && f.Den != 0
}

func (f Fraction) Valid() bool {
	return f.Den != 0
}

func (f Fraction) Reciprocal() (Fraction, error) {
	if f.Num == 0 {
		return Fraction{}, ErrZeroDenominator
	}
	return Fraction{Num: f.Den, Den: f.Num}, nil
}

func (f Fraction) Mul(other Fraction) (Fraction, error) {
	if !f.Valid() || !other.Valid() {
		return Fraction{}, ErrZeroDenominator
	}
	num := uint32(f.Num) * uint32(other.Num)
	den := uint32(f.Den) * uint32(other.Den)
	return narrow(num, den)
}

// MulInt scales an integer by the fraction, truncating toward zero.
func (f Fraction) MulInt(n int) (int, error) {
	if !f.Valid() {
		return 0, ErrZeroDenominator
	}
	return n * int(f.Num) / int(f.Den), nil
}

func (f Fraction) Div(other Fraction) (Fraction, error) {
	if !f.Valid() {
		return Fraction{}, ErrZeroDenominator
	}
	recip, err := other.Reciprocal()
	if err != nil {
		return Fraction{}, err
	}
	return f.Mul(recip)
}

func (f Fraction) Add(other Fraction) (Fraction, error) {
	a, b, den, err := commonNumerators(f, other)
	if err != nil {
		return Fraction{}, err
	}
	return narrow(a+b, den)
}

func (f Fraction) Sub(other Fraction) (Fraction, error) {
	a, b, den, err := commonNumerators(f, other)
	if err != nil {
		return Fraction{}, err
	}
	if b > a {
		return Fraction{}, ErrNegative
	}
	return narrow(a-b, den)
}

// Cmp returns -1, 0 or +1. Fractions with a zero denominator order before
// every valid fraction and equal each other.
func (f Fraction) Cmp(other Fraction) int {
	switch fv, ov := f.Valid(), other.Valid(); {
	case !fv && !ov:
		return 0
	case !fv:
		return -1
	case !ov:
		return 1
	}
	g := GCD(uint32(f.Den), uint32(other.Den))
	lcm := uint32(f.Den) / g * uint32(other.Den)
	a := uint32(f.Num) * (lcm / uint32(f.Den))
	b := uint32(other.Num) * (lcm / uint32(other.Den))
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (f Fraction) Less(other Fraction) bool {
	return f.Cmp(other) < 0
}

// Equal compares by value, so 2/4 equals 1/2.
func (f Fraction) Equal(other Fraction) bool {
	return f.Cmp(other) == 0
}

// Reduce returns the fraction in lowest terms.
func (f Fraction) Reduce() (Fraction, error) {
	if !f.Valid() {
		return Fraction{}, ErrZeroDenominator
	}
	return narrow(uint32(f.Num), uint32(f.Den))
}

// GCD is the iterative Euclidean greatest common divisor.
func GCD[T constraints.Unsigned](a, b T) T {
	if a == 0 {
		return b
	} else if b == 0 {
		return a
	}
	for {
		a %= b
		if a == 0 {
			return b
		}
		b %= a
		if b == 0 {
			return a
		}
	}
}

// commonNumerators scales both numerators onto a shared denominator, widened
// so the sum of two 8-bit products cannot wrap.
func commonNumerators(f, other Fraction) (uint32, uint32, uint32, error) {
	if !f.Valid() || !other.Valid() {
		return 0, 0, 0, ErrZeroDenominator
	}
	fn, fd := uint32(f.Num), uint32(f.Den)
	on, od := uint32(other.Num), uint32(other.Den)
	switch {
	case fd%od == 0:
		return fn, on * (fd / od), fd, nil
	case od%fd == 0:
		return fn * (od / fd), on, od, nil
	}
	return fn * od, on * fd, fd * od, nil
}

func narrow(num, den uint32) (Fraction, error) {
	g := GCD(num, den)
	num, den = num/g, den/g
	if num > 0xff || den > 0xff {
		return Fraction{}, ErrOverflow
	}
	return Fraction{Num: uint8(num), Den: uint8(den)}, nil
}
