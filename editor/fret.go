package editor

import (
	"time"

	"github.com/fretwork/fretwork"
)

// nextFret computes the fret entered by typing digit. If the previous digit
// was typed less than cutoff ago and appending digit to previous stays within
// maxFret, the digits are concatenated; otherwise entry starts over from
// digit.
func nextFret(previous, digit int, elapsed, cutoff time.Duration, maxFret int) int {
	if elapsed < 0 || elapsed >= cutoff {
		return digit
	}
	if candidate := previous*10 + digit; candidate <= maxFret {
		return candidate
	}
	return digit
}

// enterFretDigit
type enterFretDigit struct {
	Digit int
	*Model
}

// EnterFretDigit returns an Action that puts a note on the selected string of
// the selected duration, replacing the note already there. Digits typed in
// quick succession build multi-digit frets.
func (m *Model) EnterFretDigit(digit int) Action {
	return MakeAction(enterFretDigit{Digit: digit, Model: m})
}

func (a enterFretDigit) Enabled() bool {
	return a.Digit >= 0 && a.Digit <= 9 && a.hasDocument()
}

func (a enterFretDigit) Do() {
	defer a.change("EnterFretDigit", true)()
	now := a.clock()
	elapsed := now.Sub(a.lastFretInput)
	c, err := a.cursor()
	if err != nil {
		a.fault("EnterFretDigit", err)
		return
	}
	doc := &a.d.Document
	str := a.d.Selection.String
	old, exists, err := doc.NoteOnString(c.duration, str)
	if err != nil {
		a.fault("EnterFretDigit", err)
		return
	}
	previous := 0
	if exists {
		previous = old.Fret
	}
	fret := nextFret(previous, a.Digit, elapsed, a.config.FretCutoff, a.config.MaxFret)
	du := c.duration
	ok, err := a.fit(c.measure, &du)
	if err != nil {
		a.fault("EnterFretDigit", err)
		return
	}
	if !ok {
		a.changeCancel = true
		return
	}
	if exists {
		old.Fret = fret
		doc.SetNote(old)
	} else {
		n := fretwork.Note{ID: a.newID(), String: str, Fret: fret}
		doc.SetNote(n)
		du.Notes = append(du.Notes, n.ID)
	}
	du.Rest = false
	doc.SetDuration(du)
	// a refused digit does not restart the cutoff window
	a.lastFretInput = now
}
