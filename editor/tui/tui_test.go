package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fretwork/fretwork/editor"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	em := editor.NewModel(editor.DefaultConfig(),
		editor.WithClock(func() time.Time { return now }),
		editor.WithIDs(func() string { n++; return fmt.Sprintf("id%d", n) }),
		editor.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	em.NewDocument(editor.TrackSpec{})
	keys, err := NewKeyMap(DefaultKeyBindings())
	if err != nil {
		t.Fatalf("default key bindings: %v", err)
	}
	m, err := New(em, keys, loadDefaultPreferences())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func alt(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Alt: true} }

func press(m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var ret tea.Model
		ret, cmd = m.Update(msg)
		m = ret.(Model)
	}
	return m, cmd
}

func TestDefaultKeyBindings(t *testing.T) {
	km, err := NewKeyMap(DefaultKeyBindings())
	if err != nil {
		t.Fatal(err)
	}
	for _, column := range helpOrder {
		for _, action := range column {
			if len(km.keys[action]) == 0 {
				t.Errorf("action %s has no default key", action)
			}
		}
	}
	cmd, ok := km.Command("7")
	if !ok || cmd.Kind != editor.CmdEnterFretDigit || cmd.Digit != 7 {
		t.Errorf("Command(\"7\") = %+v, %v", cmd, ok)
	}
	if _, ok := km.Command("ctrl+s"); ok {
		t.Errorf("Save should not be an editor command")
	}
}

func TestKeyBindingOverrides(t *testing.T) {
	user, err := ReadKeyBindings(strings.NewReader("- {key: r}\n- {key: x, action: MarkRest}\n- {key: right, action: AddMeasure}\n"))
	if err != nil {
		t.Fatal(err)
	}
	km, err := NewKeyMap(append(DefaultKeyBindings(), user...))
	if err != nil {
		t.Fatal(err)
	}
	if a := km.Action("r"); a != "" {
		t.Errorf("r should be unbound, got %q", a)
	}
	if a := km.Action("x"); a != string(editor.CmdMarkRest) {
		t.Errorf("x should mark rests, got %q", a)
	}
	if keys := km.keys[string(editor.CmdAdvanceDuration)]; len(keys) != 1 || keys[0] != "l" {
		t.Errorf("AdvanceDuration keys %v, want [l]", keys)
	}
}

func TestKeyBindingErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		kb   KeyBinding
	}{
		{"unknown action", KeyBinding{Key: "z", Action: "Explode"}},
		{"dialog only command", KeyBinding{Key: "z", Action: string(editor.CmdConfirmDeleteTrack)}},
		{"no key", KeyBinding{Action: ActionSave}},
		{"digit from a letter", KeyBinding{Key: "z", Action: string(editor.CmdEnterFretDigit)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewKeyMap([]KeyBinding{tc.kb}); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
	if _, err := ReadKeyBindings(strings.NewReader("- {key: a, action: Save, ctrl: true}\n")); err == nil {
		t.Errorf("unknown fields should be rejected")
	}
}

func TestTypingFrets(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, runes("1"), runes("2"))
	du, _ := m.editor.SelectedDuration()
	if len(du.Notes) != 1 {
		t.Fatalf("duration has %d notes, want 1", len(du.Notes))
	}
	if fret := m.editor.Document().Notes[du.Notes[0]].Fret; fret != 12 {
		t.Errorf("fret = %d, want 12", fret)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight}, runes("r"))
	if du, _ := m.editor.SelectedDuration(); !du.Rest {
		t.Errorf("r should mark a rest")
	}
	if view := m.View(); !strings.Contains(view, "12") {
		t.Errorf("view does not show the fret:\n%s", view)
	}
}

func TestAddTrackDialog(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, alt("n"))
	if m.dialog != addTrackDialog {
		t.Fatalf("alt+n did not open the add track dialog")
	}
	m, _ = press(m, runes("b"), runes("a"), runes("s"), runes("s"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "Standard bass") {
		t.Errorf("dialog does not show the selected tuning:\n%s", m.View())
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.dialog != noDialog {
		t.Errorf("enter did not close the dialog")
	}
	doc := m.editor.Document()
	if len(doc.Tracks) != 2 {
		t.Fatalf("%d tracks, want 2", len(doc.Tracks))
	}
	if tr := doc.Tracks[1]; tr.Name != "bass" || tr.FullName != "Bass" || len(tr.Tuning) != 4 {
		t.Errorf("unexpected track %+v", tr)
	}
	m, _ = press(m, alt("n"), runes("x"), tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.editor.Document().Tracks) != 2 || m.dialog != noDialog {
		t.Errorf("esc should cancel the dialog without adding a track")
	}
}

func TestInfoDialog(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, alt("i"))
	if m.dialog != infoDialog {
		t.Fatalf("alt+i did not open the title and artist dialog")
	}
	m, _ = press(m, runes("Jolene"), tea.KeyMsg{Type: tea.KeyTab}, runes("Dolly Parton"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.dialog != noDialog {
		t.Errorf("enter did not close the dialog")
	}
	doc := m.editor.Document()
	if doc.Title != "Jolene" || doc.Artist != "Dolly Parton" {
		t.Errorf("title %q artist %q", doc.Title, doc.Artist)
	}
	if !strings.Contains(m.View(), "Jolene - Dolly Parton") {
		t.Errorf("view does not show the title and artist:\n%s", m.View())
	}
	status, err := ParseStatusLine("{{ .Title }} by {{ .Artist }}")
	if err != nil {
		t.Fatal(err)
	}
	if got := renderStatus(status, statusData(m.editor)); got != "Jolene by Dolly Parton" {
		t.Errorf("status %q", got)
	}
	m, _ = press(m, alt("i"), runes("x"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.editor.Document().Title != "Jolene" {
		t.Errorf("esc should keep the title")
	}
}

func TestDeleteTrackDialog(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, alt("r"))
	if m.dialog != noDialog || m.message == "" {
		t.Errorf("deleting the only track should be refused with a message")
	}
	m, _ = press(m, alt("n"), tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = press(m, alt("r"), runes("n"))
	if len(m.editor.Document().Tracks) != 2 {
		t.Errorf("n should keep the track")
	}
	m, _ = press(m, alt("r"), runes("y"))
	if len(m.editor.Document().Tracks) != 1 {
		t.Errorf("y should delete the track")
	}
}

func TestQuitAsksAboutUnsavedChanges(t *testing.T) {
	m := newTestModel(t)
	if _, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlQ}); cmd == nil {
		t.Errorf("quitting without changes should quit at once")
	}
	m, _ = press(m, runes("3"))
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	if cmd != nil || !m.quitArmed {
		t.Fatalf("the first quit with unsaved changes should only warn")
	}
	if _, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlQ}); cmd == nil {
		t.Errorf("the second quit should quit")
	}
}

func TestSave(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(m.message, "no file") {
		t.Errorf("saving without a file: message %q", m.message)
	}
	path := filepath.Join(t.TempDir(), "song.yml")
	m.editor.SetFilePath(path)
	m, _ = press(m, runes("5"), tea.KeyMsg{Type: tea.KeyCtrlS})
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if m.editor.ChangedSinceSave() {
		t.Errorf("saving should clear the changed flag")
	}
}

func TestStatusLine(t *testing.T) {
	m := newTestModel(t)
	got := renderStatus(m.status, statusData(m.editor))
	for _, want := range []string{"Guitar", "bar 1/1 0/4", "1/4", "string 1", "untitled"} {
		if !strings.Contains(got, want) {
			t.Errorf("status %q does not contain %q", got, want)
		}
	}
	if _, err := ParseStatusLine("{{ .Nope"); err == nil {
		t.Errorf("a broken template should be an error")
	}
}

func TestRenderTab(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, runes("7"), tea.KeyMsg{Type: tea.KeyRight}, runes("r"), tea.KeyMsg{Type: tea.KeyRight})
	out := renderTab(m.editor.Document(), m.editor.Selection(), 0, 4, lipgloss.NewStyle())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 8 { // title, six strings, rhythm
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "|7---r---") && !strings.Contains(lines[1], "|7-------") {
		t.Errorf("top string line %q does not start with the fret", lines[1])
	}
	if !strings.Contains(lines[4], "r---") {
		t.Errorf("rest missing from the middle line %q", lines[4])
	}
	if !strings.Contains(lines[7], "4") {
		t.Errorf("rhythm line %q does not show quarters", lines[7])
	}
}

func TestFirstShown(t *testing.T) {
	for _, tc := range []struct{ selected, count, want int }{
		{0, 4, 0}, {3, 4, 0}, {4, 4, 4}, {9, 4, 8}, {5, 0, 5},
	} {
		if got := firstShown(tc.selected, tc.count); got != tc.want {
			t.Errorf("firstShown(%d, %d) = %d, want %d", tc.selected, tc.count, got, tc.want)
		}
	}
}
