package fretwork

import (
	"math"
	"strconv"

	"github.com/viterin/vek"
)

// Capacity is the length of one full bar in document units:
// (BeatUnit / 4) * BeatsPerMeasure.
func (ts TimeSignature) Capacity() float64 {
	return float64(ts.BeatUnit) / 4 * float64(ts.BeatsPerMeasure)
}

func (ts TimeSignature) Valid() bool {
	return ts.BeatUnit > 0 && ts.BeatsPerMeasure > 0
}

func (ts TimeSignature) String() string {
	return strconv.Itoa(ts.BeatsPerMeasure) + "/" + strconv.Itoa(ts.BeatUnit)
}

// Fraction returns the summed effective length of the durations of m that
// have notes or are rests, as a fraction of a whole note. Placeholders are
// left out.
func (d *Document) Fraction(m Measure) (float64, error) {
	lengths := make([]float64, len(m.Durations))
	weights := make([]float64, len(m.Durations))
	for i, id := range m.Durations {
		du, err := d.Duration(id)
		if err != nil {
			return 0, err
		}
		lengths[i] = float64(du.Length)
		switch {
		case du.Placeholder():
			weights[i] = 0
		case du.Dotted:
			weights[i] = 1.5
		default:
			weights[i] = 1
		}
	}
	if len(lengths) == 0 {
		return 0, nil
	}
	return vek.Dot(lengths, weights), nil
}

// Fill returns how much of the bar m is filled and the capacity of the bar,
// both in document units.
func (d *Document) Fill(m Measure) (filled, capacity float64, err error) {
	f, err := d.Fraction(m)
	if err != nil {
		return 0, 0, err
	}
	capacity = m.TimeSignature.Capacity()
	return f * capacity, capacity, nil
}

// Room returns how much can still be added to the bar m before it is full,
// as a fraction of a whole note.
func (d *Document) Room(m Measure) (float64, error) {
	f, err := d.Fraction(m)
	if err != nil {
		return 0, err
	}
	return math.Max(1-f, 0), nil
}

// FormatAmount formats a bar amount rounded to at most three decimals, with
// trailing zeros removed.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
