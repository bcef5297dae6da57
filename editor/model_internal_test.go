package editor

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/fretwork/fretwork"
)

func TestNextFret(t *testing.T) {
	for _, tc := range []struct {
		previous, digit int
		elapsed         time.Duration
		want            int
	}{
		{1, 2, 500 * time.Millisecond, 12},
		{2, 4, 500 * time.Millisecond, 24},
		{2, 5, 500 * time.Millisecond, 5},
		{9, 9, 500 * time.Millisecond, 9},
		{1, 2, time.Second, 2},
		{1, 2, -time.Second, 2},
		{0, 7, 0, 7},
	} {
		if got := nextFret(tc.previous, tc.digit, tc.elapsed, time.Second, 24); got != tc.want {
			t.Errorf("nextFret(%d, %d, %v) = %d, want %d", tc.previous, tc.digit, tc.elapsed, got, tc.want)
		}
	}
}

func TestFaultRollsBack(t *testing.T) {
	var logs bytes.Buffer
	n := 0
	m := NewModel(DefaultConfig(), WithLogger(slog.New(slog.NewTextHandler(&logs, nil))), WithIDs(func() string {
		n++
		return strings.Repeat("x", n)
	}))
	m.NewDocument(TrackSpec{})
	m.EnterFretDigit(5).Do()
	before := m.d.copy()
	// break the cursor behind the model's back
	m.d.Selection.Duration = "missing"
	broken := m.d.copy()
	m.AdvanceDuration().Do()
	if m.Faults() != 1 {
		t.Fatalf("Faults() = %d, want 1", m.Faults())
	}
	if !reflect.DeepEqual(m.d, broken) {
		t.Errorf("the faulty change was not rolled back")
	}
	if !strings.Contains(logs.String(), "internal consistency fault") {
		t.Errorf("fault was not logged: %q", logs.String())
	}
	m.d = before
	if err := m.d.validate(); err != nil {
		t.Fatalf("restored model is invalid: %v", err)
	}
}

func TestChangeRejectsInvalidResult(t *testing.T) {
	m := NewModel(DefaultConfig(), WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	m.NewDocument(TrackSpec{})
	before := m.d.copy()
	func() {
		defer m.change("Test", true)()
		du, _ := m.d.Document.Duration(m.d.Selection.Duration)
		du.Rest = true
		du.Notes = []string{"ghost"}
		m.d.Document.SetDuration(du)
	}()
	if !reflect.DeepEqual(m.d, before) {
		t.Errorf("an invalid change was committed")
	}
	if m.Faults() != 1 {
		t.Errorf("Faults() = %d, want 1", m.Faults())
	}
	if m.ChangedSinceSave() {
		t.Errorf("a rolled back change marked the document as changed")
	}
}

func TestSelectionValidation(t *testing.T) {
	m := NewModel(DefaultConfig())
	if err := m.d.validate(); err != nil {
		t.Errorf("empty model: %v", err)
	}
	m.d.Selection.String = 2
	if err := m.d.validate(); err == nil {
		t.Errorf("a selection in an empty document should be invalid")
	}
	m.NewDocument(TrackSpec{})
	m.d.Selection.String = 6
	if err := m.d.validate(); err == nil {
		t.Errorf("string 6 of a 6-string track should be invalid")
	}
	m.d.Selection.String = 0
	m.d.Selection.Measure = 1
	if err := m.d.validate(); !errors.Is(err, fretwork.ErrNotFound) {
		t.Errorf("expected a missing measure, got %v", err)
	}
}

func TestRefusedDigitKeepsFretWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	m := NewModel(DefaultConfig(), WithClock(func() time.Time { return now }), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	err := m.ReadDocument(io.NopCloser(strings.NewReader(`
tracks:
  - {id: t1, name: guitar, tuning: [64, 59, 55, 50, 45, 40], measures: [m1]}
measures:
  m1: {id: m1, timesignature: {beatunit: 4, beatspermeasure: 4}, durations: [d1, d2]}
durations:
  d1: {id: d1, length: 1, rest: true}
  d2: {id: d2, length: 0.25}
`)))
	if err != nil {
		t.Fatal(err)
	}
	m.lastFretInput = start
	m.d.Selection.Duration = "d2"
	now = start.Add(100 * time.Millisecond)
	m.EnterFretDigit(1).Do()
	if !m.lastFretInput.Equal(start) {
		t.Errorf("a refused digit moved the last input time to %v", m.lastFretInput)
	}
	m.d.Selection.Duration = "d1"
	m.EnterFretDigit(1).Do()
	if !m.lastFretInput.Equal(now) {
		t.Errorf("last input time %v, want %v", m.lastFretInput, now)
	}
}
