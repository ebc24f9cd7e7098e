// Package chord reads the vertical sonorities of a movement back out of its
// MIDI rendering: every tick where the set of sounding keys changes.
package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/scof/midi"
	"github.com/jsphweid/scof/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Chord struct {
	// absolute ticks from the start of the movement
	Tick int64
	Keys []uint8
}

// Key is the sorted keys joined with dashes, e.g. "60-64-67". keys is not
// modified.
func Key(keys []uint8) string {
	sorted := append([]uint8(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	parts := make([]string, len(sorted))
	for i, k := range sorted {
		parts[i] = fmt.Sprintf("%v", k)
	}
	return strings.Join(parts, "-")
}

func (c Chord) String() string {
	return Key(c.Keys)
}

type event struct {
	tick int64
	off  bool
	key  uint8
}

func pressedKeys(pressed map[uint8]int) []uint8 {
	keys := make([]uint8, 0, len(pressed))
	for k := range pressed {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

// FromSMF collects note events across all tracks and returns the sounding
// keys after each tick that changes them. Silence is left out.
func FromSMF(s *smf.SMF) []Chord {
	var events []event
	for _, track := range s.Tracks {
		var abs int64
		for _, ev := range track {
			abs += int64(ev.Delta)
			var channel, key, velocity uint8
			switch {
			case ev.Message.GetNoteOn(&channel, &key, &velocity):
				events = append(events, event{tick: abs, off: velocity == 0, key: key})
			case ev.Message.GetNoteOff(&channel, &key, &velocity):
				events = append(events, event{tick: abs, off: true, key: key})
			}
		}
	}

	// earlier ticks first, then note offs
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var res []Chord
	var last string
	pressed := make(map[uint8]int)
	for i, ev := range events {
		if ev.off {
			if pressed[ev.key]--; pressed[ev.key] <= 0 {
				delete(pressed, ev.key)
			}
		} else {
			pressed[ev.key]++
		}
		if i+1 < len(events) && events[i+1].tick == ev.tick {
			continue
		}
		keys := pressedKeys(pressed)
		key := Key(keys)
		if len(keys) > 0 && key != last {
			res = append(res, Chord{Tick: ev.tick, Keys: keys})
		}
		last = key
	}
	return res
}

// Movement renders m to MIDI and returns its sonorities.
func Movement(m model.Movement) ([]Chord, error) {
	s, err := midi.Export(m)
	if err != nil {
		return nil, err
	}
	return FromSMF(s), nil
}
