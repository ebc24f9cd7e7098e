package chord

import (
	"testing"

	"github.com/jsphweid/scof/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	keys := []uint8{67, 60, 64}
	assert.Equal(t, "60-64-67", Key(keys))
	assert.Equal(t, []uint8{67, 60, 64}, keys)
	assert.Equal(t, "", Key(nil))
}

func movement(chans ...[]string) model.Movement {
	sig := uint32(0)
	bar := model.Bar{Sig: &sig}
	for _, notes := range chans {
		bar.Chan = append(bar.Chan, model.Chan{Notes: notes})
	}
	return model.Movement{
		Sig: []model.Sig{{Time: "4/4", Tempo: 120}},
		Bar: []model.Bar{bar},
	}
}

func TestMovement(t *testing.T) {
	chords, err := Movement(movement(
		[]string{"2C4", "2D4"},
		[]string{"1E4"},
	))
	require.NoError(t, err)
	assert.Equal(t, []Chord{
		{Tick: 0, Keys: []uint8{60, 64}},
		{Tick: 960, Keys: []uint8{62, 64}},
	}, chords)
}

func TestMovementSkipsRepeatsAndSilence(t *testing.T) {
	chords, err := Movement(movement(
		[]string{"4C4", "4R", "4C4", "4C4"},
	))
	require.NoError(t, err)
	// the last two quarters re-strike the same key at the same tick as the
	// release, so nothing changes there
	assert.Equal(t, []Chord{
		{Tick: 0, Keys: []uint8{60}},
		{Tick: 960, Keys: []uint8{60}},
	}, chords)
	assert.Equal(t, "60", chords[0].String())
}

func TestMovementRejectsMalformed(t *testing.T) {
	_, err := Movement(movement([]string{"4Q4"}))
	assert.Error(t, err)
}
