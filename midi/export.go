// Package midi exports a movement to a Standard MIDI File, one track per
// channel. Accidentals are rounded to the nearest semitone and key signatures
// are not applied.
package midi

import (
	"io"
	"log/slog"

	"github.com/jsphweid/scof/check"
	"github.com/jsphweid/scof/constants"
	"github.com/jsphweid/scof/model"
	"github.com/jsphweid/scof/note"
	"github.com/jsphweid/scof/pitch"
	"github.com/jsphweid/scof/util"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var semitones = [...]uint8{0, 2, 4, 5, 7, 9, 11}

// Key is the MIDI note number for p, with middle C at 60.
func Key(p pitch.Pitch) (uint8, bool) {
	// quarter tones round toward the written letter
	alter := p.Class.Accidental.QuarterTones() / 2
	key := (int(p.Octave)+1)*12 + int(semitones[p.Class.Name]) + alter
	if key < 0 || key > 127 {
		return 0, false
	}
	return uint8(key), true
}

// percussion is the General MIDI drum channel, 10 counting from one.
const percussion = 9

// Channel maps a score channel onto the 15 melodic MIDI channels, skipping
// the drum channel. Score channels past the fifteenth share MIDI channels
// with earlier ones.
func Channel(ch int) uint8 {
	mc := uint8(ch % 15)
	if mc >= percussion {
		mc++
	}
	return mc
}

// Ticks is the length of n in MIDI ticks.
func Ticks(n note.Note) (uint32, error) {
	t, err := n.Duration.MulInt(4 * constants.TicksPerQuarter)
	if err != nil {
		return 0, err
	}
	return uint32(t), nil
}

// sigAt is the signature in force at each measure.
func sigAt(m model.Movement) []int {
	res := make([]int, len(m.Bar))
	sig := -1
	for i, bar := range m.Bar {
		if bar.Sig != nil && int(*bar.Sig) < len(m.Sig) {
			sig = int(*bar.Sig)
		}
		res[i] = sig
	}
	return res
}

func conductor(m model.Movement, sigs []int) (smf.Track, error) {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("conductor"))
	var delta uint32
	prev := -1
	for i, sig := range sigs {
		if sig >= 0 && sig != prev {
			s := m.Sig[sig]
			time, err := check.ParseTime(s.Time)
			if err != nil {
				return nil, err
			}
			tr.Add(delta, smf.MetaMeter(time.Num, time.Den))
			tr.Add(0, smf.MetaTempo(float64(s.Tempo)))
			delta = 0
			prev = sig
		}
		length, err := measureTicks(m, sigs, i)
		if err != nil {
			return nil, err
		}
		delta += length
	}
	tr.Close(delta)
	return tr, nil
}

// measureTicks is the measure's length from its time signature, or 4/4.
func measureTicks(m model.Movement, sigs []int, i int) (uint32, error) {
	if sigs[i] < 0 {
		return 4 * constants.TicksPerQuarter, nil
	}
	time, err := check.ParseTime(m.Sig[sigs[i]].Time)
	if err != nil {
		return 0, err
	}
	t, err := time.MulInt(4 * constants.TicksPerQuarter)
	return uint32(t), err
}

func channelTrack(m model.Movement, sigs []int, ch int) (smf.Track, error) {
	var tr smf.Track
	var delta uint32
	mc := Channel(ch)
	for i, bar := range m.Bar {
		if ch >= len(bar.Chan) {
			length, err := measureTicks(m, sigs, i)
			if err != nil {
				return nil, err
			}
			delta += length
			continue
		}
		notes := bar.Chan[ch].Notes
		if len(notes) == 1 && notes[0] == model.WholeRest {
			length, err := measureTicks(m, sigs, i)
			if err != nil {
				return nil, err
			}
			delta += length
			continue
		}
		for k, text := range notes {
			n, err := note.Parse(text)
			if err != nil {
				return nil, errors.Wrapf(err, "measure %d chan %d marking %d", i, ch, k)
			}
			length, err := Ticks(n)
			if err != nil {
				return nil, err
			}
			if n.IsRest() {
				delta += length
				continue
			}
			key, ok := Key(*n.Pitch)
			if !ok {
				slog.Warn("Skipping note outside MIDI range", "measure", i, "chan", ch, "marking", text)
				delta += length
				continue
			}
			tr.Add(delta, midi.NoteOn(mc, key, constants.Velocity))
			tr.Add(length, midi.NoteOff(mc, key))
			delta = 0
		}
	}
	tr.Close(delta)
	return tr, nil
}

// Export converts a movement to an SMF: a conductor track with meter and
// tempo changes, then one track per channel.
func Export(m model.Movement) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)

	sigs := sigAt(m)
	tr, err := conductor(m, sigs)
	if err != nil {
		return nil, err
	}
	if err := s.Add(tr); err != nil {
		return nil, errors.Wrap(err, "could not add conductor track")
	}

	chans := 0
	for _, bar := range m.Bar {
		chans = util.Max(chans, len(bar.Chan))
	}
	for ch := 0; ch < chans; ch++ {
		tr, err := channelTrack(m, sigs, ch)
		if err != nil {
			return nil, err
		}
		if err := s.Add(tr); err != nil {
			return nil, errors.Wrapf(err, "could not add track for chan %d", ch)
		}
	}
	slog.Debug("Exported movement", "measures", len(m.Bar), "tracks", chans+1)
	return s, nil
}

func WriteMovement(w io.Writer, m model.Movement) error {
	s, err := Export(m)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return errors.Wrap(err, "could not write midi")
}
