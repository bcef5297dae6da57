/*
Package fretwork contains the document model of the fretwork tablature editor.

A Document is a normalized store: Tracks are kept in an ordered table, while
Measures, Durations and Notes live in maps keyed by their IDs and are
referenced by ID from their parents. All tracks have the same number of
measures, and the measure at index i of each track describes the same bar of
the score.

The Document itself does not enforce any of the structural rules; it is a
plain table that the editor package mutates inside transactions. Validate can
be used to check that a document is consistent.
*/
package fretwork

import "errors"

var (
	// ErrNotFound is returned (wrapped) when an ID does not resolve to an
	// entity in the document.
	ErrNotFound = errors.New("not found")

	// ErrInvalidDocument is returned (wrapped) by Validate when the document
	// breaks one of the structural invariants.
	ErrInvalidDocument = errors.New("invalid document")
)
