package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fretwork/fretwork/editor"
)

type dialogKind int

const (
	noDialog dialogKind = iota
	addTrackDialog
	deleteTrackDialog
	infoDialog
)

// addTrackForm asks for the name and tuning of a new track.
type addTrackForm struct {
	name    textinput.Model
	presets []editor.TuningPreset
	preset  int
}

func newAddTrackForm(presets []editor.TuningPreset) addTrackForm {
	ti := textinput.New()
	ti.Placeholder = "track name"
	ti.CharLimit = 40
	ti.Focus()
	return addTrackForm{name: ti, presets: presets}
}

func (f addTrackForm) spec() editor.TrackSpec {
	spec := editor.TrackSpec{Name: strings.TrimSpace(f.name.Value())}
	if f.preset < len(f.presets) {
		spec.Tuning = f.presets[f.preset].Tuning
	}
	return spec
}

// infoForm edits the title and artist of the document.
type infoForm struct {
	fields [2]textinput.Model // title, artist
	focus  int
}

func newInfoForm(title, artist string) infoForm {
	var f infoForm
	for i, v := range []string{title, artist} {
		ti := textinput.New()
		ti.CharLimit = 80
		ti.SetValue(v)
		f.fields[i] = ti
	}
	f.fields[0].Placeholder = "title"
	f.fields[1].Placeholder = "artist"
	f.fields[0].Focus()
	return f
}

func (f *infoForm) cycle() {
	f.fields[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.fields)
	f.fields[f.focus].Focus()
}

// updateDialog handles keys while a dialog is open. Confirming dispatches the
// command of the dialog; esc closes the dialog without changes.
func (m Model) updateDialog(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.dialog {
	case addTrackDialog:
		switch msg.Type {
		case tea.KeyEsc:
			m.dialog = noDialog
			return m, nil
		case tea.KeyEnter:
			m.editor.Dispatch(editor.Command{Kind: editor.CmdRequestAddTrack, Track: m.addTrack.spec()})
			m.dialog = noDialog
			return m, nil
		case tea.KeyTab:
			if n := len(m.addTrack.presets); n > 0 {
				m.addTrack.preset = (m.addTrack.preset + 1) % n
			}
			return m, nil
		case tea.KeyShiftTab:
			if n := len(m.addTrack.presets); n > 0 {
				m.addTrack.preset = (m.addTrack.preset + n - 1) % n
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.addTrack.name, cmd = m.addTrack.name.Update(msg)
		return m, cmd
	case infoDialog:
		switch msg.Type {
		case tea.KeyEsc:
			m.dialog = noDialog
			return m, nil
		case tea.KeyEnter:
			m.editor.Dispatch(editor.Command{Kind: editor.CmdSetInfo, Title: m.info.fields[0].Value(), Artist: m.info.fields[1].Value()})
			m.dialog = noDialog
			return m, nil
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			m.info.cycle()
			return m, nil
		}
		var cmd tea.Cmd
		m.info.fields[m.info.focus], cmd = m.info.fields[m.info.focus].Update(msg)
		return m, cmd
	case deleteTrackDialog:
		switch msg.String() {
		case "y", "Y", "enter":
			m.editor.Dispatch(editor.Command{Kind: editor.CmdConfirmDeleteTrack})
			m.dialog = noDialog
		case "n", "N", "esc":
			m.dialog = noDialog
		}
	}
	return m, nil
}

func (m Model) viewDialog() string {
	switch m.dialog {
	case addTrackDialog:
		tuning := "default"
		if p := m.addTrack.preset; p < len(m.addTrack.presets) {
			tuning = fmt.Sprintf("%s (%v)", m.addTrack.presets[p].Name, m.addTrack.presets[p].Tuning)
		}
		return dialogStyle.Render(fmt.Sprintf("Add track\n\nName:   %s\nTuning: %s\n\n%s",
			m.addTrack.name.View(), tuning, dimStyle.Render("tab: tuning  enter: add  esc: cancel")))
	case infoDialog:
		return dialogStyle.Render(fmt.Sprintf("Song\n\nTitle:  %s\nArtist: %s\n\n%s",
			m.info.fields[0].View(), m.info.fields[1].View(), dimStyle.Render("tab: next field  enter: save  esc: cancel")))
	case deleteTrackDialog:
		name := ""
		if t, ok := m.editor.SelectedTrack(); ok {
			name = t.FullName
		}
		return dialogStyle.Render(fmt.Sprintf("Delete track %q?\n\n%s", name, dimStyle.Render("y: delete  n: cancel")))
	}
	return ""
}
