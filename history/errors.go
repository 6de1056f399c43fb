/*
errors.go - Sentinel errors for the history ledger
*/
package history

import "errors"

var (
	// ErrDuplicateEntry is returned when a commit's dedup key matches the
	// most recently committed entry. Expected under at-least-once delivery;
	// callers should treat it as a successful no-op.
	ErrDuplicateEntry = errors.New("duplicate history entry")

	// ErrEntryNotFound is returned when a referenced entry doesn't exist.
	ErrEntryNotFound = errors.New("history entry not found")
)
