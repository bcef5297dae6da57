package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/fretwork/fretwork"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

type (
	// Selection is the cursor: the index of the selected track, the bar index
	// shared by all tracks, the ID of the selected duration (in the selected
	// track's measure at that bar) and the index of the selected string.
	Selection struct {
		Track    int
		Measure  int
		Duration string
		String   int
	}

	// modelData is the part of the model that transactions snapshot and
	// restore.
	modelData struct {
		Document  fretwork.Document
		Selection Selection
	}

	// Model implements the mutable state of the editor.
	//
	// Go does not have immutable slices or maps, so Document() hands out
	// copies. The Model is not safe for concurrent use; it is owned by the UI
	// goroutine.
	Model struct {
		d      modelData
		config Config
		clock  func() time.Time
		newID  func() string
		log    *slog.Logger

		backup       modelData
		changeCancel bool
		faults       int

		lastFretInput time.Time

		filePath         string
		changedSinceSave bool
	}

	// Option customizes a Model created with NewModel.
	Option func(*Model)

	// cursor is the selection resolved to entities.
	cursor struct {
		track    fretwork.Track
		measure  fretwork.Measure
		duration fretwork.Duration
		pos      int // index of duration in measure.Durations
	}
)

// ErrInconsistent marks internal faults: an ID that should resolve to an
// entity did not, or a change would have broken an invariant.
var ErrInconsistent = errors.New("internal inconsistency")

// WithClock sets the time source used for multi-digit fret entry.
func WithClock(clock func() time.Time) Option {
	return func(m *Model) { m.clock = clock }
}

// WithIDs sets the generator of entity IDs.
func WithIDs(newID func() string) Option {
	return func(m *Model) { m.newID = newID }
}

func WithLogger(log *slog.Logger) Option {
	return func(m *Model) { m.log = log }
}

// NewModel returns a Model with an empty document.
func NewModel(config Config, options ...Option) *Model {
	m := &Model{
		config: config,
		clock:  time.Now,
		newID:  uuid.NewString,
		log:    slog.Default(),
	}
	for _, o := range options {
		o(m)
	}
	return m
}

// change starts a transaction and returns the function that ends it. Use it
// as `defer m.change("Kind", true)()` at the top of an Action. Navigation
// passes docChange false, as it only sometimes grows the document. If the action
// sets m.changeCancel, or leaves the model inconsistent, everything is
// restored to the state at the start of the transaction.
func (m *Model) change(kind string, docChange bool) func() {
	m.backup = m.d.copy()
	m.changeCancel = false
	return func() {
		if !m.changeCancel {
			if err := m.d.validate(); err != nil {
				m.fault(kind, err)
			}
		}
		if m.changeCancel {
			m.d = m.backup
			m.changeCancel = false
			return
		}
		if docChange || !reflect.DeepEqual(m.backup.Document, m.d.Document) {
			m.changedSinceSave = true
		}
	}
}

// fault records an internal inconsistency and cancels the ongoing change.
func (m *Model) fault(kind string, err error) {
	m.faults++
	m.changeCancel = true
	m.log.Error("internal consistency fault", "kind", kind, "err", fmt.Errorf("%w: %w", ErrInconsistent, err))
}

func (d *modelData) copy() modelData {
	return modelData{Document: d.Document.Copy(), Selection: d.Selection}
}

func (d *modelData) validate() error {
	if err := d.Document.Validate(); err != nil {
		return err
	}
	s := d.Selection
	if len(d.Document.Tracks) == 0 {
		if s != (Selection{}) {
			return fmt.Errorf("selection %+v in an empty document", s)
		}
		return nil
	}
	m, err := d.Document.MeasureAt(s.Track, s.Measure)
	if err != nil {
		return fmt.Errorf("selection %+v: %w", s, err)
	}
	if slices.Index(m.Durations, s.Duration) < 0 {
		return fmt.Errorf("selected duration %q is not in measure %q", s.Duration, m.ID)
	}
	if n := len(d.Document.Tracks[s.Track].Tuning); s.String < 0 || s.String >= n {
		return fmt.Errorf("selected string %d of %d", s.String, n)
	}
	return nil
}

// cursor resolves the selection. It fails if the document is empty.
func (m *Model) cursor() (c cursor, err error) {
	s := m.d.Selection
	if c.track, err = m.d.Document.Track(s.Track); err != nil {
		return c, err
	}
	if c.measure, err = m.d.Document.MeasureAt(s.Track, s.Measure); err != nil {
		return c, err
	}
	if c.pos = slices.Index(c.measure.Durations, s.Duration); c.pos < 0 {
		return c, fmt.Errorf("duration %q in measure %q: %w", s.Duration, c.measure.ID, fretwork.ErrNotFound)
	}
	if c.duration, err = m.d.Document.Duration(s.Duration); err != nil {
		return c, err
	}
	return c, nil
}

func (m *Model) hasDocument() bool {
	return len(m.d.Document.Tracks) > 0
}

// clampString keeps the selected string within the tuning of the selected
// track.
func (m *Model) clampString() {
	t, err := m.d.Document.Track(m.d.Selection.Track)
	if err != nil {
		return
	}
	m.d.Selection.String = clamp(m.d.Selection.String, 0, len(t.Tuning)-1)
}

func clamp(a, min, max int) int {
	if a > max {
		a = max
	}
	if a < min {
		return min
	}
	return a
}
