// Package memory provides a process-local NoteStore. Notes are kept in
// insertion order and lost on restart.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/jsamuelsen/notekeeper/internal/domain"
	"github.com/jsamuelsen/notekeeper/internal/ports"
)

var _ ports.NoteStore = (*Store)(nil)

// Store is an in-memory NoteStore guarded by a single RWMutex.
type Store struct {
	mu     sync.RWMutex
	notes  []domain.Note
	lastID int64
}

// New creates an empty in-memory store. The first note gets id 1.
func New() *Store {
	return &Store{}
}

// List returns a copy of all notes in insertion order.
func (s *Store) List(_ context.Context) ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.notes), nil
}

// Get returns the note with the given id.
func (s *Store) Get(_ context.Context, id int64) (domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.indexOf(id)
	if !ok {
		return domain.Note{}, domain.NoteNotFound(id)
	}

	return s.notes[i], nil
}

// Create appends a new note. lastID only ever grows, so ids freed by
// Delete are never handed out again.
func (s *Store) Create(_ context.Context, in domain.NoteInput) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	note := domain.Note{ID: s.lastID, Title: in.Title, Content: in.Content}
	s.notes = append(s.notes, note)

	return note, nil
}

// Update replaces title and content in place.
func (s *Store) Update(_ context.Context, id int64, in domain.NoteInput) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok {
		return domain.Note{}, domain.NoteNotFound(id)
	}

	s.notes[i].Title = in.Title
	s.notes[i].Content = in.Content

	return s.notes[i], nil
}

// Delete removes the note and returns it.
func (s *Store) Delete(_ context.Context, id int64) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok {
		return domain.Note{}, domain.NoteNotFound(id)
	}

	note := s.notes[i]
	s.notes = slices.Delete(s.notes, i, i+1)

	return note, nil
}

// indexOf relies on notes being sorted by id, which append-only creation guarantees.
func (s *Store) indexOf(id int64) (int, bool) {
	return slices.BinarySearchFunc(s.notes, id, func(n domain.Note, target int64) int {
		return cmp.Compare(n.ID, target)
	})
}
