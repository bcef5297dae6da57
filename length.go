package fretwork

import (
	"fmt"
	"math"
)

// Length is the length of a duration as a fraction of a whole note. Only the
// values listed in Lengths are allowed.
type Length float64

const (
	Whole        Length = 1
	Half         Length = 1.0 / 2
	Quarter      Length = 1.0 / 4
	Eighth       Length = 1.0 / 8
	Sixteenth    Length = 1.0 / 16
	ThirtySecond Length = 1.0 / 32
	SixtyFourth  Length = 1.0 / 64

	MaxLength = Whole
	MinLength = SixtyFourth
)

// Lengths lists the allowed lengths, longest first.
var Lengths = []Length{Whole, Half, Quarter, Eighth, Sixteenth, ThirtySecond, SixtyFourth}

// Valid reports whether l is one of the allowed lengths.
func (l Length) Valid() bool {
	for _, v := range Lengths {
		if l == v {
			return true
		}
	}
	return false
}

// CanHalve reports whether halving l stays within the allowed lengths.
func (l Length) CanHalve() bool { return l > MinLength }

// CanDouble reports whether doubling l stays within the allowed lengths.
func (l Length) CanDouble() bool { return l < MaxLength }

// Denominator returns the note value, e.g. 4 for a quarter.
func (l Length) Denominator() int {
	if l <= 0 {
		return 0
	}
	return int(math.Round(1 / float64(l)))
}

func (l Length) String() string {
	if l == Whole {
		return "1"
	}
	return fmt.Sprintf("1/%d", l.Denominator())
}

// Fit returns the longest allowed undotted length that does not exceed room
// (a fraction of a whole note). ok is false if even the shortest length does
// not fit.
func Fit(room float64) (l Length, ok bool) {
	for _, v := range Lengths {
		if float64(v) <= room {
			return v, true
		}
	}
	return 0, false
}
