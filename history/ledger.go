/*
Package history maintains the calculator's ledger of completed calculations.

PURPOSE:
  An ordered, newest-first, deduplicated record of every Equals evaluation
  that produced a numeric result. The ledger is the bridge between the pure
  engine and whatever displays a recall list: the reducer emits an Event,
  the caller commits it here in the same step.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: Entries are never mutated after commit.
  2. IDEMPOTENT: A commit whose dedup key equals the MOST RECENTLY committed
     key is suppressed. The surrounding event system may deliver the same
     logical completion more than once (at-least-once delivery); the ledger
     absorbs that. Non-adjacent repeats of the same calculation are distinct
     entries and are kept.
  3. REPLAYABLE: Recall reconstructs engine state from an entry exactly as
     if that calculation had just completed, so a following Equals repeats it.

SEE ALSO:
  - store.go: Persistence interface
  - store/memory.go: In-memory implementation
  - store/sqlite: SQLite implementation
*/
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/warp/calc-engine/engine"
)

// =============================================================================
// ENTRY - One completed calculation, immutable once created
// =============================================================================

type Entry struct {
	ID         string
	Expression string // "<left> <op> <right>"
	Result     string
	Operation  engine.Operator
	Operand    string // the right operand, reusable for repeat-equals
	CreatedAt  time.Time
}

// DedupKey identifies the logical calculation this entry records.
func (e Entry) DedupKey() string {
	return e.Expression + "|" + e.Result
}

// =============================================================================
// LEDGER - Dedup commit + recall on top of a Store
// =============================================================================

// Ledger scopes a Store to one calculator session and enforces the
// adjacent-duplicate suppression policy on commit.
type Ledger struct {
	store     Store
	sessionID string

	// now is swappable for deterministic tests.
	now func() time.Time
}

func NewLedger(store Store, sessionID string) *Ledger {
	return &Ledger{store: store, sessionID: sessionID, now: func() time.Time { return time.Now().UTC() }}
}

// Commit records a completed calculation. If the event's dedup key matches
// the most recently committed entry's key, the commit is suppressed and
// ErrDuplicateEntry is returned; this is expected under at-least-once
// delivery and safe to ignore with errors.Is.
func (l *Ledger) Commit(ctx context.Context, ev engine.Event) (*Entry, error) {
	latest, err := l.store.Latest(ctx, l.sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading latest entry: %w", err)
	}
	if latest != nil && latest.DedupKey() == ev.DedupKey() {
		return nil, ErrDuplicateEntry
	}

	entry := Entry{
		ID:         uuid.NewString(),
		Expression: ev.Expression,
		Result:     ev.Result,
		Operation:  ev.Operation,
		Operand:    ev.Operand,
		CreatedAt:  l.now(),
	}
	if err := l.store.Append(ctx, l.sessionID, entry); err != nil {
		return nil, fmt.Errorf("appending entry: %w", err)
	}
	return &entry, nil
}

// Entries returns all committed entries, newest first.
func (l *Ledger) Entries(ctx context.Context) ([]Entry, error) {
	return l.store.List(ctx, l.sessionID)
}

// Recall reconstructs engine state from a past entry: the result becomes
// both display and left operand, and the operation and operand are primed
// so a subsequent Equals repeats the calculation.
func (l *Ledger) Recall(ctx context.Context, entryID string) (engine.State, error) {
	entry, err := l.store.Get(ctx, l.sessionID, entryID)
	if err != nil {
		return engine.State{}, err
	}
	return engine.State{
		CurrentNumber:     entry.Result,
		PreviousNumber:    entry.Result,
		Operation:         entry.Operation,
		LastOperand:       entry.Operand,
		IsNewNumber:       true,
		HistoryExpression: entry.Expression + " =",
	}, nil
}

// Purge removes every entry in this ledger's session. Used when a session
// is discarded; the entries themselves are never edited.
func (l *Ledger) Purge(ctx context.Context) error {
	return l.store.Purge(ctx, l.sessionID)
}
