package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fretwork/fretwork/editor"
)

const score = `
title: Test
tracks:
  - {id: t1, name: guitar, tuning: [64, 59, 55, 50, 45, 40], measures: [m1, m2]}
measures:
  m1: {id: m1, timesignature: {beatunit: 4, beatspermeasure: 3}, durations: [d1, d2]}
  m2: {id: m2, timesignature: {beatunit: 4, beatspermeasure: 4}, durations: [d3]}
durations:
  d1: {id: d1, length: 0.5, dotted: true, notes: [n1]}
  d2: {id: d2, length: 0.25}
  d3: {id: d3, length: 0.125, rest: true}
notes:
  n1: {id: n1, string: 0, fret: 12}
`

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "score.yml")
	if err := os.WriteFile(path, []byte(score), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := checkFile(&out, path); err != nil {
		t.Fatalf("checkFile: %v", err)
	}
	for _, want := range []string{"1 tracks, 2 measures", "3/4", "2.25/3", "0.5/4"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q:\n%s", want, out.String())
		}
	}
}

func TestCheckRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	if err := os.WriteFile(path, []byte(strings.Replace(score, "dotted: true, notes: [n1]", "rest: true, notes: [n1]", 1)), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := runCheck(checkCmd, []string{path}); err == nil {
		t.Errorf("a rest with notes should fail the check")
	}
	if err := checkFile(&out, filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Errorf("a missing file should fail the check")
	}
}

func TestOpenMissingDocument(t *testing.T) {
	model := editor.NewModel(editor.DefaultConfig())
	model.NewDocument(editor.TrackSpec{})
	path := filepath.Join(t.TempDir(), "new.yml")
	if err := openDocument(model, path); err != nil {
		t.Fatal(err)
	}
	if model.FilePath() != path {
		t.Errorf("FilePath() = %q, want %q", model.FilePath(), path)
	}
	if len(model.Document().Tracks) != 1 {
		t.Errorf("the new document should be kept")
	}
}
