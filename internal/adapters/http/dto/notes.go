package dto

import "github.com/jsamuelsen/notekeeper/internal/domain"

// NoteRequest is the body of create and update requests, from either an
// HTML form or JSON. Pointer fields tell an absent field (rejected) apart
// from an explicitly empty one (allowed).
type NoteRequest struct {
	Title   *string `json:"title" form:"title" validate:"required"`
	Content *string `json:"content" form:"content" validate:"required"`
}

// ToInput converts a validated request into domain input.
// Call only after validation succeeded.
func (r NoteRequest) ToInput() domain.NoteInput {
	return domain.NoteInput{Title: *r.Title, Content: *r.Content}
}

// NoteResponse is the JSON representation of a note.
type NoteResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewNoteResponse converts a domain note.
func NewNoteResponse(n domain.Note) NoteResponse {
	return NoteResponse{ID: n.ID, Title: n.Title, Content: n.Content}
}

// NewNoteListResponse converts a list of notes. The result is never nil so
// an empty store encodes as [] rather than null.
func NewNoteListResponse(notes []domain.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNoteResponse(n))
	}

	return out
}
