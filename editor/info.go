package editor

import "strings"

// setInfo
type setInfo struct {
	Title, Artist string
	*Model
}

// SetInfo returns an Action that sets the title and artist of the document.
// Surrounding white space is trimmed; empty values clear the fields.
func (m *Model) SetInfo(title, artist string) Action {
	return MakeAction(setInfo{Title: title, Artist: artist, Model: m})
}

func (a setInfo) Enabled() bool { return a.hasDocument() }

func (a setInfo) Do() {
	defer a.change("SetInfo", false)()
	a.d.Document.Title = strings.TrimSpace(a.Title)
	a.d.Document.Artist = strings.TrimSpace(a.Artist)
}
