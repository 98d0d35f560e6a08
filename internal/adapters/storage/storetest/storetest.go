// Package storetest holds behavioural tests shared by every NoteStore backend.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jsamuelsen/notekeeper/internal/domain"
	"github.com/jsamuelsen/notekeeper/internal/ports"
)

// Factory returns a fresh, empty store for one test.
type Factory func(t testing.TB) ports.NoteStore

// Run executes the shared NoteStore test suite against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("CreateThenGet", func(t *testing.T) { testCreateThenGet(t, newStore(t)) })
	t.Run("GroceriesScenario", func(t *testing.T) { testGroceriesScenario(t, newStore(t)) })
	t.Run("UpdateMissingLeavesStoreUnchanged", func(t *testing.T) { testUpdateMissing(t, newStore(t)) })
	t.Run("DeleteTwice", func(t *testing.T) { testDeleteTwice(t, newStore(t)) })
	t.Run("IDsNotReusedAfterDelete", func(t *testing.T) { testIDsNotReused(t, newStore(t)) })
	t.Run("ListKeepsInsertionOrder", func(t *testing.T) { testListOrder(t, newStore(t)) })
	t.Run("EmptyFieldsAllowed", func(t *testing.T) { testEmptyFields(t, newStore(t)) })
	t.Run("ConcurrentCreates", func(t *testing.T) { testConcurrentCreates(t, newStore(t)) })
}

func testCreateThenGet(t *testing.T, store ports.NoteStore) {
	ctx := context.Background()

	created, err := store.Create(ctx, domain.NoteInput{Title: "A", Content: "B"})
	require.NoError(t, err)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "B", got.Content)
	assert.Equal(t, created.ID, got.ID)
}

func testGroceriesScenario(t *testing.T, store ports.NoteStore) {
	ctx := context.Background()

	created, err := store.Create(ctx, domain.NoteInput{Title: "Groceries", Content: "Milk, eggs"})
	require.NoError(t, err)

	notes, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.Note{ID: 1, Title: "Groceries", Content: "Milk, eggs"}, notes[0])
	assert.Equal(t, int64(1), created.ID)

	updated, err := store.Update(ctx, 1, domain.NoteInput{Title: "Groceries", Content: "Milk, eggs, bread"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Milk, eggs, bread", got.Content)

	deleted, err := store.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, got, deleted)

	notes, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	_, err = store.Get(ctx, 1)
	assert.True(t, domain.IsNotFound(err), "get after delete: %v", err)

	_, err = store.Delete(ctx, 1)
	assert.True(t, domain.IsNotFound(err), "second delete: %v", err)
}

func testUpdateMissing(t *testing.T, store ports.NoteStore) {
	ctx := context.Background()

	_, err := store.Create(ctx, domain.NoteInput{Title: "keep", Content: "me"})
	require.NoError(t, err)

	before, err := store.List(ctx)
	require.NoError(t, err)

	_, err = store.Update(ctx, 999, domain.NoteInput{Title: "x", Content: "y"})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	after, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func testDeleteTwice(t *testing.T, store ports.NoteStore) {
	ctx := context.Background()

	created, err := store.Create(ctx, domain.NoteInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = store.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = store.Delete(ctx, created.ID)
	assert.True(t, domain.IsNotFound(err))
}

func testIDsNotReused(t *testing.T, store ports.NoteStore) {
	ctx := context.Background()

	first, err := store.Create(ctx, domain.NoteInput{Title: "1", Content: "1"})
	require.NoError(t, err)
	second, err := store.Create(ctx, domain.NoteInput{Title: "2", Content: "2"})
	require.NoError(t, err)

	_, err = store.Delete(ctx, second.ID)
	require.NoError(t, err)

	third, err := store.Create(ctx, domain.NoteInput{Title: "3", Content: "3"})
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
	assert.Greater(t, third.ID, second.ID)
}

func testListOrder(t *testing.T, store ports.NoteStore) {
	ctx := context.Background()

	var want []domain.Note
	for _, title := range []string{"c", "a", "b"} {
		n, err := store.Create(ctx, domain.NoteInput{Title: title, Content: title + title})
		require.NoError(t, err)
		want = append(want, n)
	}

	got, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func testEmptyFields(t *testing.T, store ports.NoteStore) {
	ctx := context.Background()

	created, err := store.Create(ctx, domain.NoteInput{})
	require.NoError(t, err)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Title)
	assert.Empty(t, got.Content)
}

func testConcurrentCreates(t *testing.T, store ports.NoteStore) {
	const workers = 16

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int64]struct{}, workers)
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			n, err := store.Create(context.Background(), domain.NoteInput{Title: "t", Content: "c"})
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			ids[n.ID] = struct{}{}
			mu.Unlock()
		}()
	}

	wg.Wait()

	assert.Len(t, ids, workers, "every concurrent create must receive a distinct id")
}

// RunModel checks random operation sequences against a simple reference model.
// Created ids must be strictly increasing, and every read must agree with the model.
func RunModel(t *testing.T, newStore Factory) {
	t.Helper()

	rapid.Check(t, func(rt *rapid.T) {
		store := newStore(t)
		ctx := context.Background()

		model := map[int64]domain.Note{}
		var order []int64
		var lastID int64

		text := rapid.StringMatching(`[a-zA-Z0-9 ,.]{0,24}`)

		rt.Repeat(map[string]func(*rapid.T){
			"create": func(rt *rapid.T) {
				in := domain.NoteInput{Title: text.Draw(rt, "title"), Content: text.Draw(rt, "content")}

				n, err := store.Create(ctx, in)
				if err != nil {
					rt.Fatalf("create: %v", err)
				}
				if n.ID <= lastID {
					rt.Fatalf("id %d not greater than previous %d", n.ID, lastID)
				}

				lastID = n.ID
				model[n.ID] = n
				order = append(order, n.ID)
			},
			"update": func(rt *rapid.T) {
				id := pickID(rt, order, lastID)
				in := domain.NoteInput{Title: text.Draw(rt, "title"), Content: text.Draw(rt, "content")}

				n, err := store.Update(ctx, id, in)
				if _, ok := model[id]; !ok {
					if !domain.IsNotFound(err) {
						rt.Fatalf("update of missing %d: want not found, got %v", id, err)
					}
					return
				}
				if err != nil {
					rt.Fatalf("update %d: %v", id, err)
				}

				want := domain.Note{ID: id, Title: in.Title, Content: in.Content}
				if n != want {
					rt.Fatalf("update returned %+v, want %+v", n, want)
				}
				model[id] = want
			},
			"delete": func(rt *rapid.T) {
				id := pickID(rt, order, lastID)

				n, err := store.Delete(ctx, id)
				want, ok := model[id]
				if !ok {
					if !domain.IsNotFound(err) {
						rt.Fatalf("delete of missing %d: want not found, got %v", id, err)
					}
					return
				}
				if err != nil {
					rt.Fatalf("delete %d: %v", id, err)
				}
				if n != want {
					rt.Fatalf("delete returned %+v, want %+v", n, want)
				}
				delete(model, id)
			},
			"": func(rt *rapid.T) {
				got, err := store.List(ctx)
				if err != nil {
					rt.Fatalf("list: %v", err)
				}

				var want []domain.Note
				for _, id := range order {
					if n, ok := model[id]; ok {
						want = append(want, n)
					}
				}

				if len(got) != len(want) {
					rt.Fatalf("list has %d notes, model has %d", len(got), len(want))
				}
				for i := range want {
					if got[i] != want[i] {
						rt.Fatalf("list[%d] = %+v, want %+v", i, got[i], want[i])
					}
				}
			},
		})
	})
}

// pickID draws either a known id (live or deleted) or one that was never issued.
func pickID(rt *rapid.T, order []int64, lastID int64) int64 {
	if len(order) == 0 || rapid.Bool().Draw(rt, "unknown") {
		return lastID + rapid.Int64Range(1, 100).Draw(rt, "offset")
	}

	return rapid.SampledFrom(order).Draw(rt, "id")
}
