package editor

import (
	"fmt"

	"github.com/fretwork/fretwork"
)

// moveString
type moveString struct {
	Delta int
	*Model
}

// MoveStringUp returns an Action to select the string above the current one,
// wrapping from the top string to the bottom one.
func (m *Model) MoveStringUp() Action { return MakeAction(moveString{Delta: -1, Model: m}) }

// MoveStringDown returns an Action to select the string below the current one,
// wrapping from the bottom string to the top one.
func (m *Model) MoveStringDown() Action { return MakeAction(moveString{Delta: 1, Model: m}) }

func (a moveString) Enabled() bool { return a.hasDocument() }
func (a moveString) Do() {
	defer a.change("MoveString", false)()
	t, err := a.d.Document.Track(a.d.Selection.Track)
	if err != nil {
		a.fault("MoveString", err)
		return
	}
	n := len(t.Tuning)
	a.d.Selection.String = ((a.d.Selection.String+a.Delta)%n + n) % n
}

// advanceDuration
type advanceDuration Model

// AdvanceDuration returns an Action to move the cursor to the next duration.
// A filled last duration grows the bar with a new duration; a full bar, or a
// placeholder, moves on to the next measure, which is created on every track
// when the cursor is in the last measure.
func (m *Model) AdvanceDuration() Action { return MakeAction((*advanceDuration)(m)) }

func (m *advanceDuration) Enabled() bool { return (*Model)(m).hasDocument() }
func (m *advanceDuration) Do() {
	mm := (*Model)(m)
	defer mm.change("AdvanceDuration", false)()
	if err := mm.advance(); err != nil {
		mm.fault("AdvanceDuration", err)
	}
}

func (m *Model) advance() error {
	c, err := m.cursor()
	if err != nil {
		return err
	}
	if c.duration.Placeholder() {
		return m.advanceMeasure(c)
	}
	if c.pos < len(c.measure.Durations)-1 {
		next := c.measure.Durations[c.pos+1]
		if err := m.inherit(next, c.duration); err != nil {
			return err
		}
		m.d.Selection.Duration = next
		return nil
	}
	filled, capacity, err := m.d.Document.Fill(c.measure)
	if err != nil {
		return err
	}
	if filled >= capacity {
		return m.advanceMeasure(c)
	}
	id, err := m.addDuration(c.measure.ID, c.duration.Length, c.duration.Dotted)
	if err != nil {
		return err
	}
	m.d.Selection.Duration = id
	return nil
}

func (m *Model) advanceMeasure(c cursor) error {
	s := &m.d.Selection
	if s.Measure == len(c.track.Measures)-1 {
		ids := m.appendMeasure(c.measure.TimeSignature, c.duration.Length, c.duration.Dotted)
		s.Measure++
		s.Duration = ids[s.Track]
		return nil
	}
	next, err := m.firstDuration(s.Track, s.Measure+1)
	if err != nil {
		return err
	}
	if err := m.inherit(next, c.duration); err != nil {
		return err
	}
	s.Measure++
	s.Duration = next
	return nil
}

// retreatDuration
type retreatDuration Model

// RetreatDuration returns an Action to move the cursor to the previous
// duration, crossing into the last duration of the previous measure. It is
// disabled at the very beginning of the score.
func (m *Model) RetreatDuration() Action { return MakeAction((*retreatDuration)(m)) }

func (m *retreatDuration) Enabled() bool {
	if !(*Model)(m).hasDocument() {
		return false
	}
	if m.d.Selection.Measure > 0 {
		return true
	}
	c, err := (*Model)(m).cursor()
	return err != nil || c.pos > 0 // let Do report a broken cursor
}

func (m *retreatDuration) Do() {
	mm := (*Model)(m)
	defer mm.change("RetreatDuration", false)()
	if err := mm.retreat(); err != nil {
		mm.fault("RetreatDuration", err)
	}
}

func (m *Model) retreat() error {
	c, err := m.cursor()
	if err != nil {
		return err
	}
	s := &m.d.Selection
	var target string
	switch {
	case c.pos > 0:
		target = c.measure.Durations[c.pos-1]
	case s.Measure > 0:
		prev, err := m.d.Document.MeasureAt(s.Track, s.Measure-1)
		if err != nil {
			return err
		}
		if len(prev.Durations) == 0 {
			return fmt.Errorf("measure %q has no durations", prev.ID)
		}
		target = prev.Durations[len(prev.Durations)-1]
		s.Measure--
	default:
		return nil
	}
	if err := m.inherit(target, c.duration); err != nil {
		return err
	}
	s.Duration = target
	return nil
}

// inherit makes a placeholder that the cursor lands on take the length and
// dot of the duration the cursor comes from. Other durations are left alone.
func (m *Model) inherit(target string, from fretwork.Duration) error {
	du, err := m.d.Document.Duration(target)
	if err != nil {
		return err
	}
	if !du.Placeholder() || (du.Length == from.Length && du.Dotted == from.Dotted) {
		return nil
	}
	du.Length = from.Length
	du.Dotted = from.Dotted
	m.d.Document.SetDuration(du)
	return nil
}

// firstDuration returns the ID of the first duration of the measure at bar
// index measure of track i.
func (m *Model) firstDuration(i, measure int) (string, error) {
	ms, err := m.d.Document.MeasureAt(i, measure)
	if err != nil {
		return "", err
	}
	if len(ms.Durations) == 0 {
		return "", fmt.Errorf("measure %q has no durations", ms.ID)
	}
	return ms.Durations[0], nil
}
