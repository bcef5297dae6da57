package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fretwork/fretwork"
	"github.com/fretwork/fretwork/editor"
)

const cellWidth = 4

var (
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	trackStyle    = lipgloss.NewStyle().Bold(true)
	selectedTrack = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dialogStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// firstShown returns the first measure of the page of count measures that
// holds the selected one.
func firstShown(selected, count int) int {
	if count < 1 {
		count = 1
	}
	return selected - selected%count
}

// renderTab draws count measures starting at from, one staff of tab lines
// per track, with the cursor drawn in the cursor style.
func renderTab(doc fretwork.Document, sel editor.Selection, from, count int, cursor lipgloss.Style) string {
	var b strings.Builder
	to := min(from+count, doc.NumMeasures())
	for ti, t := range doc.Tracks {
		title := fmt.Sprintf("%s (%s)", t.FullName, t.Name)
		if ti == sel.Track {
			b.WriteString(selectedTrack.Render(title))
		} else {
			b.WriteString(trackStyle.Render(title))
		}
		b.WriteByte('\n')
		labels := stringLabels(t.Tuning)
		for str := range t.Tuning {
			b.WriteString(labels[str])
			b.WriteByte('|')
			for mi := from; mi < to; mi++ {
				ms := doc.Measures[t.Measures[mi]]
				for _, did := range ms.Durations {
					du := doc.Durations[did]
					c := cell(doc, du, str, len(t.Tuning))
					if ti == sel.Track && mi == sel.Measure && did == sel.Duration && str == sel.String {
						c = cursor.Render(c)
					}
					b.WriteString(c)
				}
				b.WriteByte('|')
			}
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(" ", len(labels[0])+1))
		for mi := from; mi < to; mi++ {
			ms := doc.Measures[t.Measures[mi]]
			for _, did := range ms.Durations {
				b.WriteString(dimStyle.Render(pad(rhythm(doc.Durations[did]), ' ')))
			}
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// cell is the text of a duration on one tab line: the fret of its note on
// that string, an r in the middle line for a rest, or dashes.
func cell(doc fretwork.Document, du fretwork.Duration, str, lines int) string {
	if du.Rest && str == lines/2 {
		return pad("r", '-')
	}
	n, ok, err := doc.NoteOnString(du, str)
	if err != nil || !ok {
		return pad("", '-')
	}
	return pad(strconv.Itoa(n.Fret), '-')
}

// rhythm is the note value of a duration, e.g. "8." for a dotted eighth.
func rhythm(du fretwork.Duration) string {
	s := strconv.Itoa(du.Length.Denominator())
	if du.Dotted {
		s += "."
	}
	return s
}

func pad(s string, fill rune) string {
	if n := cellWidth - len(s); n > 0 {
		return s + strings.Repeat(string(fill), n)
	}
	return s
}

// stringLabels are the pitch names of the strings, padded to equal width.
func stringLabels(t fretwork.Tuning) []string {
	ret := make([]string, len(t))
	w := 0
	for i, p := range t {
		ret[i] = p.String()
		w = max(w, len(ret[i]))
	}
	for i := range ret {
		ret[i] = fmt.Sprintf("%*s", w, ret[i])
	}
	return ret
}
