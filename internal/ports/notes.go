// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never driver or DTO types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable)
package ports

import (
	"context"

	"github.com/jsamuelsen/notekeeper/internal/domain"
)

// NoteStore owns the authoritative collection of notes.
//
// Implementations must serialize mutating calls so that ids are never
// handed out twice and no update is lost. Ids are never reused after a
// delete for the lifetime of the store.
type NoteStore interface {
	// List returns all notes in insertion order.
	List(ctx context.Context) ([]domain.Note, error)

	// Get returns the note with the given id.
	// Returns domain.ErrNotFound if no such note exists.
	Get(ctx context.Context, id int64) (domain.Note, error)

	// Create stores a new note under a freshly allocated id and returns it.
	Create(ctx context.Context, in domain.NoteInput) (domain.Note, error)

	// Update replaces the title and content of an existing note.
	// Returns domain.ErrNotFound if no such note exists.
	Update(ctx context.Context, id int64, in domain.NoteInput) (domain.Note, error)

	// Delete removes the note and returns what was removed.
	// Returns domain.ErrNotFound if no such note exists.
	Delete(ctx context.Context, id int64) (domain.Note, error)
}
