/*
store.go - Persistence interface for history entries

PURPOSE:
  Defines the interface between the ledger and storage. Entries are written
  once and never updated; the only destructive operation is Purge, which
  discards a whole session's history when the session itself goes away.

IMPLEMENTATIONS:
  - store/memory.go: In-memory, for tests and single-process use
  - store/sqlite:    SQLite-backed (":memory:" by default — history does
                     not survive process restarts by design)

SEE ALSO:
  - ledger.go: The only consumer
*/
package history

import "context"

// Store persists history entries per session. Implementations must preserve
// insertion order; List returns newest first.
type Store interface {
	// Append persists one entry. Entries are immutable once written.
	Append(ctx context.Context, sessionID string, e Entry) error

	// List returns all entries for a session, newest first.
	List(ctx context.Context, sessionID string) ([]Entry, error)

	// Latest returns the most recently appended entry, or nil if the
	// session has none.
	Latest(ctx context.Context, sessionID string) (*Entry, error)

	// Get returns the entry with the given ID, or ErrEntryNotFound.
	Get(ctx context.Context, sessionID, entryID string) (*Entry, error)

	// Purge discards all entries for a session.
	Purge(ctx context.Context, sessionID string) error
}
