package tui

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/fretwork/fretwork"
	"github.com/fretwork/fretwork/editor"
)

// StatusData is what the status line template sees.
type StatusData struct {
	Title    string
	Artist   string
	Track    fretwork.Track
	Measure  int // 0-based
	Measures int
	String   int // 0-based
	Duration string
	Filled   string
	Capacity string
	Changed  bool
	File     string
	Faults   int
}

// ParseStatusLine compiles a status line template. The sprig functions are
// available.
func ParseStatusLine(text string) (*template.Template, error) {
	t, err := template.New("status").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("status line: %w", err)
	}
	return t, nil
}

func statusData(m *editor.Model) StatusData {
	s := m.Selection()
	doc := m.Document()
	filled, capacity := m.BarStatus()
	d := StatusData{
		Title:    doc.Title,
		Artist:   doc.Artist,
		Measure:  s.Measure,
		Measures: doc.NumMeasures(),
		String:   s.String,
		Filled:   filled,
		Capacity: capacity,
		Changed:  m.ChangedSinceSave(),
		File:     m.FilePath(),
		Faults:   m.Faults(),
	}
	if t, ok := m.SelectedTrack(); ok {
		d.Track = t
	}
	if du, ok := m.SelectedDuration(); ok {
		d.Duration = durationLabel(du)
	}
	return d
}

// durationLabel describes a duration, e.g. "1/8." or "1/4 rest".
func durationLabel(du fretwork.Duration) string {
	var b strings.Builder
	b.WriteString(du.Length.String())
	if du.Dotted {
		b.WriteByte('.')
	}
	if du.Rest {
		b.WriteString(" rest")
	}
	return b.String()
}

func renderStatus(t *template.Template, d StatusData) string {
	var b strings.Builder
	if err := t.Execute(&b, d); err != nil {
		return err.Error()
	}
	return b.String()
}
