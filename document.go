package fretwork

type (
	// Document is the entire tablature score: metadata, the ordered list of
	// tracks and the tables of measures, durations and notes referenced by
	// them.
	Document struct {
		Title     string              `yaml:",omitempty"`
		Artist    string              `yaml:",omitempty"`
		Tracks    []Track             `yaml:",omitempty"`
		Measures  map[string]Measure  `yaml:",omitempty"`
		Durations map[string]Duration `yaml:",omitempty"`
		Notes     map[string]Note     `yaml:",omitempty"`
	}

	// Track is one instrument's timeline. Tuning lists the pitch of each
	// string; its length is the number of playable strings. Measures lists
	// the measure IDs of the track, index-aligned with every other track.
	Track struct {
		ID       string
		Name     string
		FullName string   `yaml:",omitempty"`
		Tuning   Tuning   `yaml:",flow"`
		Measures []string `yaml:",flow"`
	}

	// Measure is a bar: a time signature and the ordered durations filling
	// it.
	Measure struct {
		ID            string
		TimeSignature TimeSignature `yaml:",flow"`
		Durations     []string      `yaml:",flow"`
	}

	// TimeSignature of a measure. BeatUnit is the note value denominator
	// (4 = quarter) and BeatsPerMeasure the number of such beats.
	TimeSignature struct {
		BeatUnit        int
		BeatsPerMeasure int
	}

	// Duration is a time slot in a measure. It holds notes, is a rest, or
	// is neither, in which case it is a placeholder that does not count
	// toward the filled length of the bar.
	Duration struct {
		ID     string
		Length Length
		Dotted bool     `yaml:",omitempty"`
		Rest   bool     `yaml:",omitempty"`
		Notes  []string `yaml:",flow,omitempty"`
	}

	// Note is a fretted note on a string (0-based index into the tuning of
	// the owning track).
	Note struct {
		ID     string
		String int
		Fret   int
	}
)

// Copy makes a deep copy of the document.
func (d *Document) Copy() Document {
	ret := Document{Title: d.Title, Artist: d.Artist}
	if d.Tracks != nil {
		ret.Tracks = make([]Track, len(d.Tracks))
		for i, t := range d.Tracks {
			ret.Tracks[i] = t.Copy()
		}
	}
	if d.Measures != nil {
		ret.Measures = make(map[string]Measure, len(d.Measures))
		for id, m := range d.Measures {
			ret.Measures[id] = m.Copy()
		}
	}
	if d.Durations != nil {
		ret.Durations = make(map[string]Duration, len(d.Durations))
		for id, du := range d.Durations {
			ret.Durations[id] = du.Copy()
		}
	}
	if d.Notes != nil {
		ret.Notes = make(map[string]Note, len(d.Notes))
		for id, n := range d.Notes {
			ret.Notes[id] = n
		}
	}
	return ret
}

func (t *Track) Copy() Track {
	ret := *t
	ret.Tuning = append(Tuning(nil), t.Tuning...)
	ret.Measures = append([]string(nil), t.Measures...)
	return ret
}

func (m *Measure) Copy() Measure {
	ret := *m
	ret.Durations = append([]string(nil), m.Durations...)
	return ret
}

func (d *Duration) Copy() Duration {
	ret := *d
	if d.Notes != nil {
		ret.Notes = append([]string(nil), d.Notes...)
	}
	return ret
}

// Placeholder reports whether the duration has no notes and is not a rest.
func (d *Duration) Placeholder() bool {
	return len(d.Notes) == 0 && !d.Rest
}

// Counts reports whether the duration counts toward the filled length of
// its measure, i.e. it has notes or is a rest.
func (d *Duration) Counts() bool {
	return !d.Placeholder()
}

// Effective returns the length of the duration as a fraction of a whole
// note, taking the dot into account.
func (d *Duration) Effective() float64 {
	if d.Dotted {
		return float64(d.Length) * 1.5
	}
	return float64(d.Length)
}
