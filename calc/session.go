/*
Package calc ties one calculator state to one history ledger.

PURPOSE:
  A Session is what the presentation layer talks to. It classifies raw
  tokens, runs the reducer, and commits emitted history events to the
  ledger in the same step. Commands are applied one at a time: the mutex
  gives the causal, single-command-at-a-time ordering the engine assumes,
  while leaving the (immutable) state freely readable between reductions.

ERROR POSTURE:
  The engine itself never fails: division by zero and unparseable input
  are states, not errors. The only errors surfacing here come from the
  history store. A duplicate commit (ErrDuplicateEntry) is absorbed —
  that is the ledger doing its job under at-least-once delivery.

SEE ALSO:
  - engine: Classifier and reducer
  - history: Ledger and stores
*/
package calc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/warp/calc-engine/engine"
	"github.com/warp/calc-engine/history"
)

// Session is one interactive calculation stream: a current state plus the
// ledger of its completed calculations.
type Session struct {
	ID string

	mu     sync.Mutex
	state  engine.State
	ledger *history.Ledger
}

// NewSession creates a fresh session backed by the given store.
func NewSession(store history.Store) *Session {
	id := uuid.NewString()
	return &Session{
		ID:     id,
		state:  engine.Initial(),
		ledger: history.NewLedger(store, id),
	}
}

// Input classifies a raw token and applies it. Unrecognized tokens are
// dropped: the current state is returned unchanged, with no error.
func (s *Session) Input(ctx context.Context, token string) (engine.State, error) {
	cmd, ok := engine.Classify(token)
	if !ok {
		return s.State(), nil
	}
	return s.Apply(ctx, cmd)
}

// Apply runs one command through the reducer and commits any resulting
// history event. The state transition always lands; a store failure is
// reported but never leaves the session in a partial state.
func (s *Session) Apply(ctx context.Context, cmd engine.Command) (engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ev := engine.Reduce(s.state, cmd)
	s.state = next

	if ev != nil {
		if _, err := s.ledger.Commit(ctx, *ev); err != nil && !errors.Is(err, history.ErrDuplicateEntry) {
			return next, fmt.Errorf("committing history event: %w", err)
		}
	}
	return next, nil
}

// State returns the current state. Safe to call concurrently with Apply;
// states are values, so the caller gets a consistent snapshot.
func (s *Session) State() engine.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns the session's completed calculations, newest first.
func (s *Session) History(ctx context.Context) ([]history.Entry, error) {
	return s.ledger.Entries(ctx)
}

// Recall replaces the session state with one reconstructed from a past
// entry, priming it so a subsequent Equals repeats that calculation.
// The mutex is held across the ledger read and the state swap so a recall
// serializes with Apply like any other command; a command landing between
// the two would otherwise be silently overwritten.
func (s *Session) Recall(ctx context.Context, entryID string) (engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recalled, err := s.ledger.Recall(ctx, entryID)
	if err != nil {
		return s.state, err
	}
	s.state = recalled
	return recalled, nil
}

// Close discards the session's history.
func (s *Session) Close(ctx context.Context) error {
	return s.ledger.Purge(ctx)
}
