package editor

import (
	"fmt"

	"github.com/fretwork/fretwork"
	"golang.org/x/exp/slices"
)

// addTrack
type addTrack struct {
	Spec TrackSpec
	*Model
}

// AddTrack returns an Action that appends a track described by spec, with as
// many measures as the other tracks, and selects it at the current bar.
func (m *Model) AddTrack(spec TrackSpec) Action {
	return MakeAction(addTrack{Spec: spec, Model: m})
}

func (a addTrack) Do() {
	defer a.change("AddTrack", true)()
	_, durationID, err := a.addTrack(a.Spec)
	if err != nil {
		a.fault("AddTrack", err)
		return
	}
	a.d.Selection.Track = len(a.d.Document.Tracks) - 1
	a.d.Selection.Duration = durationID
	a.clampString()
}

// addTrack appends a new track and returns its ID and the ID of its duration
// aligned with the selected bar.
func (m *Model) addTrack(spec TrackSpec) (trackID, durationID string, err error) {
	doc := &m.d.Document
	spec = m.config.completeTrackSpec(spec, len(doc.Tracks))
	length := m.config.DefaultLength
	if m.hasDocument() {
		c, err := m.cursor()
		if err != nil {
			return "", "", err
		}
		length = c.duration.Length
	}
	n := max(doc.NumMeasures(), 1)
	t := fretwork.Track{
		ID:       m.newID(),
		Name:     spec.Name,
		FullName: spec.FullName,
		Tuning:   append(fretwork.Tuning(nil), spec.Tuning...),
		Measures: make([]string, n),
	}
	durations := make([]string, n)
	for i := range n {
		ts := m.config.DefaultTimeSignature
		if len(doc.Tracks) > 0 {
			aligned, err := doc.MeasureAt(0, i)
			if err != nil {
				return "", "", err
			}
			ts = aligned.TimeSignature
		}
		du := fretwork.Duration{ID: m.newID(), Length: length}
		ms := fretwork.Measure{ID: m.newID(), TimeSignature: ts, Durations: []string{du.ID}}
		doc.SetDuration(du)
		doc.SetMeasure(ms)
		t.Measures[i] = ms.ID
		durations[i] = du.ID
	}
	doc.AppendTrack(t)
	return t.ID, durations[m.d.Selection.Measure], nil
}

// deleteTrack
type deleteTrack Model

// DeleteTrack returns an Action that deletes the selected track, selecting the
// next track (or the previous one, when deleting the last track) at the
// current bar. The only remaining track cannot be deleted.
func (m *Model) DeleteTrack() Action { return MakeAction((*deleteTrack)(m)) }

func (m *deleteTrack) Enabled() bool { return len(m.d.Document.Tracks) > 1 }
func (m *deleteTrack) Do() {
	mm := (*Model)(m)
	defer mm.change("DeleteTrack", true)()
	if err := mm.deleteTrack(); err != nil {
		mm.fault("DeleteTrack", err)
	}
}

func (m *Model) deleteTrack() error {
	c, err := m.cursor()
	if err != nil {
		return err
	}
	s := &m.d.Selection
	deleted := s.Track
	last := deleted == len(m.d.Document.Tracks)-1
	target, next := deleted+1, deleted
	if last {
		target, next = deleted-1, deleted-1
	}
	first, err := m.firstDuration(target, s.Measure)
	if err != nil {
		return err
	}
	// only falling back to the previous track carries the length over
	if last {
		if err := m.inherit(first, c.duration); err != nil {
			return err
		}
	}
	s.Track = next
	s.Duration = first
	for _, id := range c.track.Measures {
		if err := m.removeMeasure(id); err != nil {
			return err
		}
	}
	m.d.Document.RemoveTrack(deleted)
	m.clampString()
	return nil
}

// addMeasure
type addMeasure Model

// AddMeasure returns an Action that appends a measure to every track, with
// the time signature of the selected measure, and selects it.
func (m *Model) AddMeasure() Action { return MakeAction((*addMeasure)(m)) }

func (m *addMeasure) Enabled() bool { return (*Model)(m).hasDocument() }
func (m *addMeasure) Do() {
	mm := (*Model)(m)
	defer mm.change("AddMeasure", true)()
	c, err := mm.cursor()
	if err != nil {
		mm.fault("AddMeasure", err)
		return
	}
	ids := mm.appendMeasure(c.measure.TimeSignature, c.duration.Length, c.duration.Dotted)
	m.d.Selection.Measure = len(c.track.Measures)
	m.d.Selection.Duration = ids[m.d.Selection.Track]
}

// appendMeasure appends a measure with a single placeholder duration to every
// track and returns the IDs of the new durations, one per track.
func (m *Model) appendMeasure(ts fretwork.TimeSignature, length fretwork.Length, dotted bool) []string {
	doc := &m.d.Document
	ids := make([]string, len(doc.Tracks))
	for i, t := range doc.Tracks {
		du := fretwork.Duration{ID: m.newID(), Length: length, Dotted: dotted}
		ms := fretwork.Measure{ID: m.newID(), TimeSignature: ts, Durations: []string{du.ID}}
		doc.SetDuration(du)
		doc.SetMeasure(ms)
		t.Measures = append(t.Measures, ms.ID)
		doc.SetTrack(i, t)
		ids[i] = du.ID
	}
	return ids
}

// deleteMeasure
type deleteMeasure Model

// DeleteMeasure returns an Action that deletes the selected bar from every
// track and selects the first duration of the previous bar (or of the next
// one, when deleting the first bar). It is disabled when only one bar is
// left.
func (m *Model) DeleteMeasure() Action { return MakeAction((*deleteMeasure)(m)) }

func (m *deleteMeasure) Enabled() bool { return m.d.Document.NumMeasures() > 1 }
func (m *deleteMeasure) Do() {
	mm := (*Model)(m)
	defer mm.change("DeleteMeasure", true)()
	if err := mm.deleteMeasure(); err != nil {
		mm.fault("DeleteMeasure", err)
	}
}

func (m *Model) deleteMeasure() error {
	c, err := m.cursor()
	if err != nil {
		return err
	}
	s := &m.d.Selection
	deleted := s.Measure
	fallback, next := deleted-1, deleted-1
	if deleted == 0 {
		fallback, next = 1, 0
	}
	first, err := m.firstDuration(s.Track, fallback)
	if err != nil {
		return err
	}
	if err := m.inherit(first, c.duration); err != nil {
		return err
	}
	s.Measure = next
	s.Duration = first
	doc := &m.d.Document
	for i, t := range doc.Tracks {
		if deleted >= len(t.Measures) {
			return fmt.Errorf("track %q has no measure #%d", t.ID, deleted)
		}
		if err := m.removeMeasure(t.Measures[deleted]); err != nil {
			return err
		}
		t.Measures = slices.Delete(t.Measures, deleted, deleted+1)
		doc.SetTrack(i, t)
	}
	return nil
}

// removeMeasure deletes a measure with its durations and notes from the
// tables. The caller removes the measure ID from its track.
func (m *Model) removeMeasure(id string) error {
	ms, err := m.d.Document.Measure(id)
	if err != nil {
		return err
	}
	for _, did := range ms.Durations {
		if err := m.removeDuration(did); err != nil {
			return err
		}
	}
	m.d.Document.DeleteMeasure(id)
	return nil
}

// addDuration appends a placeholder duration to a measure.
func (m *Model) addDuration(measureID string, length fretwork.Length, dotted bool) (string, error) {
	ms, err := m.d.Document.Measure(measureID)
	if err != nil {
		return "", err
	}
	du := fretwork.Duration{ID: m.newID(), Length: length, Dotted: dotted}
	m.d.Document.SetDuration(du)
	ms.Durations = append(ms.Durations, du.ID)
	m.d.Document.SetMeasure(ms)
	return du.ID, nil
}

// deleteDuration removes a duration from its measure and the tables.
func (m *Model) deleteDuration(measureID, durationID string) error {
	ms, err := m.d.Document.Measure(measureID)
	if err != nil {
		return err
	}
	i := slices.Index(ms.Durations, durationID)
	if i < 0 {
		return fmt.Errorf("duration %q in measure %q: %w", durationID, measureID, fretwork.ErrNotFound)
	}
	ms.Durations = slices.Delete(ms.Durations, i, i+1)
	m.d.Document.SetMeasure(ms)
	return m.removeDuration(durationID)
}

func (m *Model) removeDuration(id string) error {
	du, err := m.d.Document.Duration(id)
	if err != nil {
		return err
	}
	for _, nid := range du.Notes {
		m.d.Document.DeleteNote(nid)
	}
	m.d.Document.DeleteDuration(id)
	return nil
}

// markRest turns a duration into a rest, deleting its notes.
func (m *Model) markRest(du fretwork.Duration) {
	for _, nid := range du.Notes {
		m.d.Document.DeleteNote(nid)
	}
	du.Notes = nil
	du.Rest = true
	m.d.Document.SetDuration(du)
}

// markNotRest turns a rest back into a placeholder.
func (m *Model) markNotRest(du fretwork.Duration) {
	du.Rest = false
	m.d.Document.SetDuration(du)
}

// fit prepares a placeholder to start counting toward its bar: if it is
// longer than the room left in the measure, it is shortened to the longest
// undotted length that fits. ok is false if nothing fits.
func (m *Model) fit(ms fretwork.Measure, du *fretwork.Duration) (ok bool, err error) {
	if du.Counts() {
		return true, nil
	}
	room, err := m.d.Document.Room(ms)
	if err != nil {
		return false, err
	}
	if du.Effective() <= room {
		return true, nil
	}
	l, ok := fretwork.Fit(room)
	if !ok {
		return false, nil
	}
	du.Length = l
	du.Dotted = false
	return true, nil
}

// fits reports whether the selected duration could take the given length and
// dot without overfilling its bar. Placeholders always fit.
func (m *Model) fits(c cursor, length fretwork.Length, dotted bool) bool {
	if c.duration.Placeholder() {
		return true
	}
	room, err := m.d.Document.Room(c.measure)
	if err != nil {
		return true // let Do report it
	}
	changed := fretwork.Duration{Length: length, Dotted: dotted}
	return changed.Effective() <= room+c.duration.Effective()
}

// markRestAction
type markRestAction Model

// MarkRest returns an Action that turns the selected duration into a rest,
// deleting its notes.
func (m *Model) MarkRest() Action { return MakeAction((*markRestAction)(m)) }

func (m *markRestAction) Enabled() bool {
	c, err := (*Model)(m).cursor()
	return err == nil && !c.duration.Rest
}

func (m *markRestAction) Do() {
	mm := (*Model)(m)
	defer mm.change("MarkRest", true)()
	c, err := mm.cursor()
	if err != nil {
		mm.fault("MarkRest", err)
		return
	}
	ok, err := mm.fit(c.measure, &c.duration)
	if err != nil {
		mm.fault("MarkRest", err)
		return
	}
	if !ok {
		mm.changeCancel = true
		return
	}
	mm.markRest(c.duration)
}

// deleteSelectionContent
type deleteSelectionContent Model

// DeleteSelectionContent returns an Action that deletes what is under the
// cursor: the note on the selected string if there is one (a duration left
// without notes becomes a rest), otherwise the selected rest. A rest that is
// the only duration of its measure becomes a placeholder instead. Deleting one
// of several notes leaves the cursor where it is.
func (m *Model) DeleteSelectionContent() Action { return MakeAction((*deleteSelectionContent)(m)) }

func (m *deleteSelectionContent) Enabled() bool { return (*Model)(m).hasDocument() }
func (m *deleteSelectionContent) Do() {
	mm := (*Model)(m)
	defer mm.change("DeleteSelectionContent", true)()
	if err := mm.deleteSelectionContent(); err != nil {
		mm.fault("DeleteSelectionContent", err)
	}
}

func (m *Model) deleteSelectionContent() error {
	c, err := m.cursor()
	if err != nil {
		return err
	}
	s := &m.d.Selection
	doc := &m.d.Document
	note, ok, err := doc.NoteOnString(c.duration, s.String)
	if err != nil {
		return err
	}
	if ok {
		du := c.duration
		du.Notes = slices.DeleteFunc(du.Notes, func(id string) bool { return id == note.ID })
		doc.DeleteNote(note.ID)
		if len(du.Notes) == 0 {
			m.markRest(du)
		} else {
			doc.SetDuration(du)
		}
		return nil
	}
	if !c.duration.Rest {
		m.changeCancel = true
		return nil
	}
	if len(c.measure.Durations) == 1 {
		m.markNotRest(c.duration)
		return nil
	}
	var target string
	switch {
	case c.pos > 0:
		target = c.measure.Durations[c.pos-1]
	case s.Measure > 0:
		prev, err := doc.MeasureAt(s.Track, s.Measure-1)
		if err != nil {
			return err
		}
		if len(prev.Durations) == 0 {
			return fmt.Errorf("measure %q has no durations", prev.ID)
		}
		target = prev.Durations[len(prev.Durations)-1]
		s.Measure--
	default:
		target = c.measure.Durations[1]
	}
	if err := m.inherit(target, c.duration); err != nil {
		return err
	}
	s.Duration = target
	return m.deleteDuration(c.measure.ID, c.duration.ID)
}

// setLength
type setLength struct {
	Double bool
	*Model
}

// ShortenDuration returns an Action that halves the length of the selected
// duration. It is disabled at the shortest allowed length.
func (m *Model) ShortenDuration() Action { return MakeAction(setLength{Double: false, Model: m}) }

// LengthenDuration returns an Action that doubles the length of the selected
// duration. It is disabled at the longest allowed length, or when the bar
// would overflow.
func (m *Model) LengthenDuration() Action { return MakeAction(setLength{Double: true, Model: m}) }

func (a setLength) Enabled() bool {
	c, err := a.cursor()
	if err != nil {
		return false
	}
	if !a.Double {
		return c.duration.Length.CanHalve()
	}
	return c.duration.Length.CanDouble() && a.fits(c, c.duration.Length*2, c.duration.Dotted)
}

func (a setLength) Do() {
	defer a.change("SetDurationLength", true)()
	c, err := a.cursor()
	if err != nil {
		a.fault("SetDurationLength", err)
		return
	}
	du := c.duration
	if a.Double {
		du.Length *= 2
	} else {
		du.Length /= 2
	}
	a.d.Document.SetDuration(du)
}

// toggleDotted
type toggleDotted Model

// ToggleDotted returns an Action that flips the dot of the selected duration.
// Dotting is disabled when the bar would overflow.
func (m *Model) ToggleDotted() Action { return MakeAction((*toggleDotted)(m)) }

func (m *toggleDotted) Enabled() bool {
	c, err := (*Model)(m).cursor()
	if err != nil {
		return false
	}
	return c.duration.Dotted || (*Model)(m).fits(c, c.duration.Length, true)
}

func (m *toggleDotted) Do() {
	mm := (*Model)(m)
	defer mm.change("ToggleDotted", true)()
	c, err := mm.cursor()
	if err != nil {
		mm.fault("ToggleDotted", err)
		return
	}
	c.duration.Dotted = !c.duration.Dotted
	mm.d.Document.SetDuration(c.duration)
}
