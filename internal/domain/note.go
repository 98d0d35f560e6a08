// Package domain contains core business entities and rules.
package domain

import "unicode/utf8"

// NoteEntity is the entity name used in domain errors about notes.
const NoteEntity = "note"

// Note is a short text note. ID is assigned by the store on creation and
// never changes afterwards.
type Note struct {
	ID      int64
	Title   string
	Content string
}

// NoteInput carries the user-editable fields of a note.
// Both fields must be present; empty strings are allowed.
type NoteInput struct {
	Title   string
	Content string
}

// Validate checks business rules for note input.
// Title and content have no length or format constraint, but they must be
// valid UTF-8 text so they round-trip through the store and the views.
func (in NoteInput) Validate() error {
	if !utf8.ValidString(in.Title) {
		return NewValidationError("title", "must be valid UTF-8 text")
	}

	if !utf8.ValidString(in.Content) {
		return NewValidationError("content", "must be valid UTF-8 text")
	}

	return nil
}
