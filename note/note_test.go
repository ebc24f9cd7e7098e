package note

import (
	"errors"
	"testing"

	"github.com/jsphweid/scof/fraction"
	"github.com/jsphweid/scof/pitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"4C4", "4D4", "8R", "2E4", "1R", "16B-", "32G9", "3/8C4", "2/4A0",
		"4Bb3", "4F#5", "8Cbb4", "8Ddb4", "8Ed4", "8Fn4", "8Gt4", "8At#4", "8Bx4",
		"4C4.", "4C4>_", "2R^", "4E4'",
	}
	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			n, err := Parse(s)
			require.NoError(t, err)
			assert.Equal(t, s, n.String())
		})
	}
}

func TestParseFields(t *testing.T) {
	assert := assert.New(t)

	n, err := Parse("3/8F#5")
	require.NoError(t, err)
	assert.Equal(fraction.New(3, 8), n.Duration)
	require.NotNil(t, n.Pitch)
	assert.Equal(pitch.F, n.Pitch.Class.Name)
	assert.Equal(pitch.Sharp, n.Pitch.Class.Accidental)
	assert.Equal(pitch.Octave(5), n.Pitch.Octave)
	assert.False(n.IsRest())

	n, err = Parse("8R")
	require.NoError(t, err)
	assert.True(n.IsRest())
	assert.Equal(fraction.New(1, 8), n.Duration)

	n, err = Parse("4C-")
	require.NoError(t, err)
	assert.Equal(pitch.Octave(-1), n.Pitch.Octave)

	n, err = Parse("4C4_.")
	require.NoError(t, err)
	assert.Equal([]Articulation{Tenuto, Staccato}, n.Articulation)
}

func TestTupletPrefixSynonym(t *testing.T) {
	a, err := Parse("1/4R")
	require.NoError(t, err)
	b, err := Parse("4R")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "4R", a.String())
}

func TestParseFailures(t *testing.T) {
	cases := []struct {
		in     string
		offset int
	}{
		{"", 0},
		{"R", 0},
		{"C4", 0},
		{"4", 1},
		{"4H4", 1},
		{"4r", 1},
		{"4C", 2},
		{"4CA", 2},
		{"4C4x", 3},
		{"4/", 2},
		{"/4C4", 0},
		{"0C4", 0},
		{"0/4C4", 0},
		{"04C4", 0},
		{"3/08C4", 2},
		{"00/4C4", 0},
		{"256C4", 0},
		{"4R4", 2},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			_, err := Parse(c.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, c.offset, pe.Offset)
			assert.Equal(t, c.in, pe.Input)
		})
	}
}

func TestFormatParseKeepsPitchAndDuration(t *testing.T) {
	p := pitch.Pitch{Class: pitch.Class{Name: pitch.G, Accidental: pitch.Flat}, Octave: 2}
	n := Pitched(p, fraction.New(3, 16))
	n.Articulation = []Articulation{Fermata, Accent}

	got, err := Parse(n.String())
	require.NoError(t, err)
	assert.Equal(t, n.Pitch, got.Pitch)
	assert.Equal(t, n.Duration, got.Duration)
	assert.Equal(t, []Articulation{Accent}, got.Articulation)
}

func TestVisualDistance(t *testing.T) {
	cases := map[string]int{
		"4C4": 0,
		"4D4": -1,
		"4B4": -6,
		"4C5": -7,
		"4B3": 1,
		"4A2": 9,
		"4R":  0,
	}
	for s, want := range cases {
		n, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, want, n.VisualDistance(), s)
	}
}

func TestSteps(t *testing.T) {
	create := pitch.New(pitch.C, 4)

	n, err := Parse("4B4")
	require.NoError(t, err)
	assert.Equal(t, "4C5", n.StepUp(create).String())

	n, err = Parse("4C4")
	require.NoError(t, err)
	assert.Equal(t, "4B3", n.StepDown(create).String())

	n, err = Parse("2R")
	require.NoError(t, err)
	assert.Equal(t, "2C4", n.StepUp(create).String())
	assert.Equal(t, "2C4", n.StepDown(create).String())
	assert.True(t, n.IsRest())
}

func TestChromaticStepsAreDiatonic(t *testing.T) {
	create := pitch.New(pitch.A, 4)
	n, err := Parse("4E4")
	require.NoError(t, err)

	assert.Equal(t, n.StepUp(create), n.HalfStepUp(create))
	assert.Equal(t, n.StepDown(create), n.HalfStepDown(create))
	assert.Equal(t, n.StepUp(create), n.QuarterStepUp(create))
	assert.Equal(t, n.StepDown(create), n.QuarterStepDown(create))
}

func TestStepDoesNotAlias(t *testing.T) {
	n, err := Parse("4E4>")
	require.NoError(t, err)
	up := n.StepUp(pitch.New(pitch.C, 4))
	up.Pitch.Octave = 7
	up.Articulation[0] = Tenuto

	assert.Equal(t, "4E4>", n.String())
}

func TestSetters(t *testing.T) {
	n := Rest(fraction.New(1, 4))
	n.SetPitch(pitch.New(pitch.D, 3))
	n.SetDuration(fraction.New(1, 2))
	assert.Equal(t, "2D3", n.String())
}

func TestParseMarking(t *testing.T) {
	m, err := ParseMarking("4C4")
	require.NoError(t, err)
	_, ok := m.(Note)
	assert.True(t, ok)

	_, err = ParseMarking("nope")
	assert.ErrorIs(t, err, ErrMalformed)
}
