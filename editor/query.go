package editor

import "github.com/fretwork/fretwork"

// Document returns a copy of the document being edited.
func (m *Model) Document() fretwork.Document { return m.d.Document.Copy() }

func (m *Model) Selection() Selection { return m.d.Selection }

// Config returns the configuration the model was created with.
func (m *Model) Config() Config { return m.config }

// SelectedTrack returns the selected track. ok is false if the document is
// empty.
func (m *Model) SelectedTrack() (t fretwork.Track, ok bool) {
	c, err := m.cursor()
	if err != nil {
		return fretwork.Track{}, false
	}
	return c.track.Copy(), true
}

func (m *Model) SelectedMeasure() (ms fretwork.Measure, ok bool) {
	c, err := m.cursor()
	if err != nil {
		return fretwork.Measure{}, false
	}
	return c.measure.Copy(), true
}

func (m *Model) SelectedDuration() (du fretwork.Duration, ok bool) {
	c, err := m.cursor()
	if err != nil {
		return fretwork.Duration{}, false
	}
	return c.duration.Copy(), true
}

// BarStatus returns how much of the selected measure is filled and its
// capacity, each rounded for display on its own.
func (m *Model) BarStatus() (filled, capacity string) {
	c, err := m.cursor()
	if err != nil {
		return "0", "0"
	}
	f, cp, err := m.d.Document.Fill(c.measure)
	if err != nil {
		return "0", "0"
	}
	return fretwork.FormatAmount(f), fretwork.FormatAmount(cp)
}

// Faults returns how many internal consistency faults have been rolled back.
func (m *Model) Faults() int { return m.faults }

func (m *Model) ChangedSinceSave() bool { return m.changedSinceSave }

func (m *Model) FilePath() string { return m.filePath }

func (m *Model) SetFilePath(path string) { m.filePath = path }
