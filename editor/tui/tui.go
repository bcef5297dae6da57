// Package tui is the terminal front end of the editor.
package tui

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fretwork/fretwork"
	"github.com/fretwork/fretwork/editor"
)

// Model is the bubbletea model of the editor screen. It owns the editor
// model; all edits happen in Update.
type Model struct {
	editor *editor.Model
	keys   KeyMap
	prefs  Preferences
	status *template.Template
	help   help.Model

	dialog   dialogKind
	addTrack addTrackForm
	info     infoForm

	width     int
	message   string
	quitArmed bool
}

// New returns the front end for an editor model.
func New(m *editor.Model, keys KeyMap, prefs Preferences) (Model, error) {
	if prefs.Measures < 1 {
		prefs.Measures = 1
	}
	status, err := ParseStatusLine(prefs.StatusLine)
	if err != nil {
		return Model{}, err
	}
	ret := Model{
		editor: m,
		keys:   keys,
		prefs:  prefs,
		status: status,
		help:   help.New(),
	}
	if prefs.YmlError != nil {
		ret.message = prefs.YmlError.Error()
	}
	return ret, nil
}

// Run runs the front end until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dialog != noDialog {
		return m.updateDialog(msg)
	}
	k := msg.String()
	action := m.keys.Action(k)
	if action != ActionQuit {
		m.quitArmed = false
	}
	if cmd, ok := m.keys.Command(k); ok {
		m.message = ""
		m.editor.Dispatch(cmd)
		return m, nil
	}
	switch action {
	case ActionAddTrack:
		m.addTrack = newAddTrackForm(m.editor.Config().Tunings)
		m.dialog = addTrackDialog
		return m, textinput.Blink
	case ActionEditInfo:
		if !m.editor.SetInfo("", "").Enabled() {
			return m, nil
		}
		doc := m.editor.Document()
		m.info = newInfoForm(doc.Title, doc.Artist)
		m.dialog = infoDialog
		return m, textinput.Blink
	case ActionDeleteTrack:
		if m.editor.DeleteTrack().Enabled() {
			m.dialog = deleteTrackDialog
		} else {
			m.message = "the last track cannot be deleted"
		}
	case ActionSave:
		m.message = m.save()
	case ActionQuit:
		if m.editor.ChangedSinceSave() && !m.quitArmed {
			m.quitArmed = true
			m.message = "unsaved changes; quit again to discard them"
			return m, nil
		}
		return m, tea.Quit
	case ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) save() string {
	path := m.editor.FilePath()
	if path == "" {
		return "no file to save to; start fretwork with a file name"
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Sprintf("Error creating file: %v", err)
	}
	if err := m.editor.WriteDocument(f); err != nil {
		return fmt.Sprintf("Error saving: %v", err)
	}
	return "saved " + path
}

func (m Model) View() string {
	var b strings.Builder
	if heading := songHeading(m.editor.Document()); heading != "" {
		b.WriteString(trackStyle.Render(heading))
		b.WriteString("\n\n")
	}
	sel := m.editor.Selection()
	from := firstShown(sel.Measure, m.prefs.Measures)
	b.WriteString(renderTab(m.editor.Document(), sel, from, m.prefs.Measures, cursorStyle))
	b.WriteByte('\n')
	if m.dialog != noDialog {
		b.WriteString(m.viewDialog())
		b.WriteByte('\n')
	}
	b.WriteString(renderStatus(m.status, statusData(m.editor)))
	b.WriteByte('\n')
	if m.message != "" {
		b.WriteString(errorStyle.Render(m.message))
		b.WriteByte('\n')
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// songHeading is "Title - Artist", or whichever of the two is set.
func songHeading(doc fretwork.Document) string {
	switch {
	case doc.Title != "" && doc.Artist != "":
		return doc.Title + " - " + doc.Artist
	case doc.Artist != "":
		return doc.Artist
	}
	return doc.Title
}
