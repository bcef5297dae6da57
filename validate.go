package fretwork

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// Validate checks the structural invariants of the document: equal measure
// counts across tracks, at least one duration per measure, no rest holding
// notes, at most one note per string, notes on existing strings and bars
// that are not overfilled. Every violation found is reported; the returned
// error wraps ErrInvalidDocument.
func (d *Document) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidDocument}, args...)...))
	}
	seen := map[string]string{}
	claim := func(id, owner string) {
		if prev, ok := seen[id]; ok {
			fail("%s is referenced by both %s and %s", id, prev, owner)
			return
		}
		seen[id] = owner
	}
	for i, t := range d.Tracks {
		if len(t.Measures) != len(d.Tracks[0].Measures) {
			fail("track %q has %d measures, track %q has %d", t.ID, len(t.Measures), d.Tracks[0].ID, len(d.Tracks[0].Measures))
		}
		if len(t.Tuning) == 0 {
			fail("track %q has no strings", t.ID)
		}
		if j := d.TrackIndex(t.ID); j != i {
			fail("track ID %q is used twice", t.ID)
		}
		for _, mid := range t.Measures {
			claim(mid, "track "+t.ID)
			m, err := d.Measure(mid)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			errs = append(errs, d.validateMeasure(m, len(t.Tuning), claim)...)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func (d *Document) validateMeasure(m Measure, strings int, claim func(id, owner string)) (errs []error) {
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidDocument}, args...)...))
	}
	if !m.TimeSignature.Valid() {
		fail("measure %q has time signature %v", m.ID, m.TimeSignature)
	}
	if len(m.Durations) == 0 {
		fail("measure %q has no durations", m.ID)
	}
	for _, did := range m.Durations {
		claim(did, "measure "+m.ID)
		du, err := d.Duration(did)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !du.Length.Valid() {
			fail("duration %q has length %v", du.ID, float64(du.Length))
		}
		if du.Rest && len(du.Notes) > 0 {
			fail("duration %q is a rest with %d notes", du.ID, len(du.Notes))
		}
		used := map[int]bool{}
		for _, nid := range du.Notes {
			claim(nid, "duration "+du.ID)
			n, err := d.Note(nid)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if n.String < 0 || n.String >= strings {
				fail("note %q is on string %d of %d", n.ID, n.String, strings)
			}
			if n.Fret < 0 {
				fail("note %q has fret %d", n.ID, n.Fret)
			}
			if used[n.String] {
				fail("duration %q has two notes on string %d", du.ID, n.String)
			}
			used[n.String] = true
		}
	}
	if len(errs) > 0 {
		return errs
	}
	if f, err := d.Fraction(m); err != nil {
		errs = append(errs, err)
	} else if f > 1 {
		fail("measure %q is overfilled (%v of a bar)", m.ID, f)
	}
	return errs
}

// CheckFrets reports the notes whose fret is above maxFret. Validate cannot
// check this, as the maximum fret is an editor setting.
func (d *Document) CheckFrets(maxFret int) error {
	var ids []string
	for id, n := range d.Notes {
		if n.Fret > maxFret {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	errs := make([]error, len(ids))
	for i, id := range ids {
		errs[i] = fmt.Errorf("%w: note %q has fret %d, the maximum is %d", ErrInvalidDocument, id, d.Notes[id].Fret, maxFret)
	}
	return errors.Join(errs...)
}
