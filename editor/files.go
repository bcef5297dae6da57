package editor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fretwork/fretwork"
	"gopkg.in/yaml.v3"
)

// ReadDocument replaces the edited document with the one read from r, which
// can be JSON or YAML. The document is validated, frets above the configured
// maximum included, and the cursor moves to the first duration of the first
// track. r is closed.
func (m *Model) ReadDocument(r io.ReadCloser) error {
	b, err := io.ReadAll(r)
	if err != nil {
		r.Close()
		return fmt.Errorf("reading document: %w", err)
	}
	if err := r.Close(); err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	var doc fretwork.Document
	if errJSON := json.Unmarshal(b, &doc); errJSON != nil {
		doc = fretwork.Document{}
		if errYaml := yaml.Unmarshal(b, &doc); errYaml != nil {
			return fmt.Errorf("unmarshaling a document file: %v / %w", errJSON, errYaml)
		}
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := doc.CheckFrets(m.config.MaxFret); err != nil {
		return err
	}
	var sel Selection
	if len(doc.Tracks) > 0 {
		ms, err := doc.MeasureAt(0, 0)
		if err != nil {
			return fmt.Errorf("%w: %w", fretwork.ErrInvalidDocument, err)
		}
		sel.Duration = ms.Durations[0]
	}
	m.d = modelData{Document: doc, Selection: sel}
	m.changedSinceSave = false
	m.filePath = ""
	if f, ok := r.(*os.File); ok {
		m.filePath = f.Name()
	}
	m.log.Info("document loaded", "path", m.filePath, "tracks", len(doc.Tracks), "measures", doc.NumMeasures())
	return nil
}

// WriteDocument writes the document to w, as JSON if w is a file with the
// .json extension and as YAML otherwise. w is closed.
func (m *Model) WriteDocument(w io.WriteCloser) error {
	path := ""
	if f, ok := w.(*os.File); ok {
		path = f.Name()
	}
	var contents []byte
	var err error
	if filepath.Ext(path) == ".json" {
		contents, err = json.MarshalIndent(m.d.Document, "", "  ")
	} else {
		contents, err = yaml.Marshal(m.d.Document)
	}
	if err != nil {
		w.Close()
		return fmt.Errorf("marshaling a document file: %w", err)
	}
	if _, err := w.Write(contents); err != nil {
		w.Close()
		return fmt.Errorf("writing document: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	if path != "" {
		m.filePath = path
		m.changedSinceSave = false
	}
	m.log.Info("document saved", "path", path, "bytes", len(contents))
	return nil
}

// NewDocument replaces the edited document with an empty one holding a single
// track described by spec.
func (m *Model) NewDocument(spec TrackSpec) {
	m.d = modelData{}
	m.filePath = ""
	m.changedSinceSave = false
	m.AddTrack(spec).Do()
	m.changedSinceSave = false
}
