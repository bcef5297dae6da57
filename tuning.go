package fretwork

import (
	"encoding/json"
	"strings"

	"gitlab.com/gomidi/midi/v2"
)

type (
	// Pitch is a MIDI note number.
	Pitch uint8

	// Tuning lists the open string pitches of a track, string 0 first.
	// String 0 is the top line of the tab, i.e. usually the highest string.
	Tuning []Pitch
)

var (
	StandardGuitar = Tuning{64, 59, 55, 50, 45, 40}
	StandardBass   = Tuning{43, 38, 33, 28}
)

func (p Pitch) String() string {
	return midi.Note(p).String()
}

func (t Tuning) Strings() int { return len(t) }

func (t Tuning) String() string {
	names := make([]string, len(t))
	for i, p := range t {
		names[i] = p.String()
	}
	return strings.Join(names, " ")
}

// MarshalJSON writes the pitches as numbers; a plain []uint8 would be encoded
// as base64.
func (t Tuning) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(t))
	for i, p := range t {
		ints[i] = int(p)
	}
	return json.Marshal(ints)
}

func (t *Tuning) UnmarshalJSON(b []byte) error {
	var ints []int
	if err := json.Unmarshal(b, &ints); err != nil {
		return err
	}
	*t = make(Tuning, len(ints))
	for i, v := range ints {
		(*t)[i] = Pitch(v)
	}
	return nil
}
