package fretwork

import "fmt"

// TrackIndex returns the index of the track with the given ID, or -1.
func (d *Document) TrackIndex(id string) int {
	for i, t := range d.Tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Track returns the track at index i.
func (d *Document) Track(i int) (Track, error) {
	if i < 0 || i >= len(d.Tracks) {
		return Track{}, fmt.Errorf("track #%d: %w", i, ErrNotFound)
	}
	return d.Tracks[i], nil
}

func (d *Document) Measure(id string) (Measure, error) {
	m, ok := d.Measures[id]
	if !ok {
		return Measure{}, fmt.Errorf("measure %q: %w", id, ErrNotFound)
	}
	return m, nil
}

func (d *Document) Duration(id string) (Duration, error) {
	du, ok := d.Durations[id]
	if !ok {
		return Duration{}, fmt.Errorf("duration %q: %w", id, ErrNotFound)
	}
	return du, nil
}

func (d *Document) Note(id string) (Note, error) {
	n, ok := d.Notes[id]
	if !ok {
		return Note{}, fmt.Errorf("note %q: %w", id, ErrNotFound)
	}
	return n, nil
}

// MeasureAt returns the measure at the given bar index of track i.
func (d *Document) MeasureAt(i, index int) (Measure, error) {
	t, err := d.Track(i)
	if err != nil {
		return Measure{}, err
	}
	if index < 0 || index >= len(t.Measures) {
		return Measure{}, fmt.Errorf("measure #%d of track %q: %w", index, t.ID, ErrNotFound)
	}
	return d.Measure(t.Measures[index])
}

// NoteOnString returns the note of duration du that is on the given string.
func (d *Document) NoteOnString(du Duration, str int) (Note, bool, error) {
	for _, id := range du.Notes {
		n, err := d.Note(id)
		if err != nil {
			return Note{}, false, err
		}
		if n.String == str {
			return n, true, nil
		}
	}
	return Note{}, false, nil
}

// NumMeasures returns the number of bars in the document, i.e. the length of
// the measure list of the first track.
func (d *Document) NumMeasures() int {
	if len(d.Tracks) == 0 {
		return 0
	}
	return len(d.Tracks[0].Measures)
}

func (d *Document) SetTrack(i int, t Track) {
	d.Tracks[i] = t
}

func (d *Document) AppendTrack(t Track) {
	d.Tracks = append(d.Tracks, t)
}

func (d *Document) RemoveTrack(i int) {
	d.Tracks = append(d.Tracks[:i:i], d.Tracks[i+1:]...)
}

func (d *Document) SetMeasure(m Measure) {
	if d.Measures == nil {
		d.Measures = map[string]Measure{}
	}
	d.Measures[m.ID] = m
}

func (d *Document) DeleteMeasure(id string) {
	delete(d.Measures, id)
}

func (d *Document) SetDuration(du Duration) {
	if d.Durations == nil {
		d.Durations = map[string]Duration{}
	}
	d.Durations[du.ID] = du
}

func (d *Document) DeleteDuration(id string) {
	delete(d.Durations, id)
}

func (d *Document) SetNote(n Note) {
	if d.Notes == nil {
		d.Notes = map[string]Note{}
	}
	d.Notes[n.ID] = n
}

func (d *Document) DeleteNote(id string) {
	delete(d.Notes, id)
}
