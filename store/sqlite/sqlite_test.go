package sqlite_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/calc-engine/engine"
	"github.com/warp/calc-engine/history"
	"github.com/warp/calc-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func entry(id, expression, result, operand string) history.Entry {
	return history.Entry{
		ID:         id,
		Expression: expression,
		Result:     result,
		Operation:  engine.OpAdd,
		Operand:    operand,
		CreatedAt:  time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
	}
}

// =============================================================================
// STORE CONTRACT
// =============================================================================

func TestSQLiteStore_AppendAndList(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Append(ctx, "s1", entry("e1", "1 + 1", "2", "1")))
	require.NoError(t, st.Append(ctx, "s1", entry("e2", "2 + 2", "4", "2")))

	entries, err := st.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first, by commit order.
	assert.Equal(t, "e2", entries[0].ID)
	assert.Equal(t, "e1", entries[1].ID)
	assert.Equal(t, engine.OpAdd, entries[0].Operation)
	assert.Equal(t, "2 + 2", entries[0].Expression)
}

func TestSQLiteStore_Latest(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	latest, err := st.Latest(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, latest, "empty session has no latest entry")

	require.NoError(t, st.Append(ctx, "s1", entry("e1", "1 + 1", "2", "1")))
	require.NoError(t, st.Append(ctx, "s1", entry("e2", "2 + 2", "4", "2")))

	latest, err = st.Latest(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "e2", latest.ID)
	assert.Equal(t, "2 + 2|4", latest.DedupKey())
}

func TestSQLiteStore_Get(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	want := entry("e1", "5 + 3", "8", "3")
	require.NoError(t, st.Append(ctx, "s1", want))

	got, err := st.Get(ctx, "s1", "e1")
	require.NoError(t, err)
	assert.Equal(t, want.Expression, got.Expression)
	assert.Equal(t, want.Result, got.Result)
	assert.Equal(t, want.Operand, got.Operand)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))

	_, err = st.Get(ctx, "s1", "missing")
	assert.ErrorIs(t, err, history.ErrEntryNotFound)

	// An entry is invisible from another session.
	_, err = st.Get(ctx, "s2", "e1")
	assert.ErrorIs(t, err, history.ErrEntryNotFound)
}

func TestSQLiteStore_Purge(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Append(ctx, "s1", entry("e1", "1 + 1", "2", "1")))
	require.NoError(t, st.Append(ctx, "s2", entry("e2", "2 + 2", "4", "2")))

	require.NoError(t, st.Purge(ctx, "s1"))

	entries, err := st.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Other sessions are untouched.
	entries, err = st.List(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSQLiteStore_ConcurrentAccessSharesMemoryDatabase(t *testing.T) {
	// GIVEN: an in-memory store that has already been migrated and seeded.
	// database/sql opens extra pool connections under concurrent load, and
	// a per-connection ":memory:" database would give those connections no
	// history_entries table at all. Every caller must see the one shared,
	// migrated database.
	ctx := context.Background()
	st := newTestStore(t)
	require.NoError(t, st.Append(ctx, "s1", entry("seed", "1 + 1", "2", "1")))

	// WHEN: many goroutines append and list at once
	var wg sync.WaitGroup
	errs := make(chan error, 128)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("e%d", i)
			if err := st.Append(ctx, "s1", entry(id, "2 + 2", "4", "2")); err != nil {
				errs <- err
				return
			}
			if _, err := st.List(ctx, "s1"); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	// THEN: no caller ever saw a fresh, schemaless database
	for err := range errs {
		require.NoError(t, err)
	}

	entries, err := st.List(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, entries, 65)
}

// The ledger's dedup and recall behavior holds on the SQLite store too.
func TestSQLiteStore_WithLedger(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	ledger := history.NewLedger(st, "s1")

	ev := engine.Event{Expression: "5 + 3", Result: "8", Operation: engine.OpAdd, Operand: "3"}
	committed, err := ledger.Commit(ctx, ev)
	require.NoError(t, err)

	_, err = ledger.Commit(ctx, ev)
	assert.ErrorIs(t, err, history.ErrDuplicateEntry)

	state, err := ledger.Recall(ctx, committed.ID)
	require.NoError(t, err)
	assert.Equal(t, "8", state.CurrentNumber)
	assert.Equal(t, engine.OpAdd, state.Operation)
}
