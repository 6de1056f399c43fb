/*
Package engine implements the calculator's state-transition core.

PURPOSE:
  This package contains the pure heart of the calculator: the state type,
  the command vocabulary, the decimal arithmetic evaluator, and the reducer
  that computes the next state (and, on a completed calculation, a history
  event) from the current state and one incoming command.

KEY CONCEPTS IN THIS FILE (types.go):
  - Operator: Closed set of the four binary operations
  - State: The complete calculator state, replaced wholesale per transition
  - Event: Emitted when an Equals evaluation completes with a numeric result

DESIGN PRINCIPLES:
  1. Purity: Reduce is a function of (State, Command) with no side effects
  2. Immutability: States are values; transitions build a new State
  3. Precision: Uses decimal.Decimal to avoid floating-point errors
  4. Totality: Every command from every state yields a valid State

USAGE:
  state := engine.Initial()
  cmd, ok := engine.Classify("5")
  state, ev := engine.Reduce(state, cmd)

SEE ALSO:
  - reduce.go: The state machine
  - compute.go: Decimal arithmetic
  - input.go: Raw token classification
*/
package engine

// =============================================================================
// OPERATOR - Closed set of binary operations
// =============================================================================

type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"

	// opNone is the zero value: no operation pending.
	opNone Operator = ""
)

// Valid reports whether op is one of the four operations.
func (op Operator) Valid() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// =============================================================================
// STATE - The calculator's sole mutable entity
// =============================================================================

// DivideByZeroMessage is the fixed display text of the error state.
const DivideByZeroMessage = "Cannot divide by zero"

// State is the complete calculator state. It is a value type: the reducer
// never mutates a State in place, it returns a replacement.
//
// FIELD INVARIANTS:
//   - Operation is non-empty iff PreviousNumber is non-empty.
//   - CurrentNumber is numeric text (optionally with a trailing dot) in every
//     non-error state; empty means "awaiting a new operand".
//   - LastOperand is meaningful only while Operation is set; it feeds
//     repeat-equals replay.
type State struct {
	// CurrentNumber is the active display buffer.
	CurrentNumber string

	// PreviousNumber is the left operand of the pending or just-completed
	// operation. Empty means no operation is pending.
	PreviousNumber string

	// Operation is the pending operator, or empty for none.
	Operation Operator

	// LastOperand is the right operand most recently combined with
	// PreviousNumber, kept so repeated Equals can replay it.
	LastOperand string

	// IsNewNumber is true when the next Digit/Dot should start a fresh
	// operand instead of appending to CurrentNumber.
	IsNewNumber bool

	// HistoryExpression is the human-readable equation being built or just
	// completed. Presentation hint only; never used in arithmetic.
	HistoryExpression string
}

// Initial returns the reset state: "0" on display, nothing pending.
func Initial() State {
	return State{CurrentNumber: "0", IsNewNumber: true}
}

// IsError reports whether the state is the division-by-zero display state.
func (s State) IsError() bool {
	return s.CurrentNumber == DivideByZeroMessage
}

// =============================================================================
// EVENT - Completed calculation, to be committed to the history ledger
// =============================================================================

// Event describes one completed Equals evaluation with a numeric result.
// The reducer emits at most one Event per transition; the caller commits it
// to the history ledger in the same step.
type Event struct {
	Expression string   // "<left> <op> <right>"
	Result     string   // result text
	Operation  Operator // the operator applied
	Operand    string   // the right operand, reusable for repeat-equals
}

// DedupKey identifies a logically unique completed calculation. The ledger
// suppresses a commit whose key equals the most recently committed key.
func (e Event) DedupKey() string {
	return e.Expression + "|" + e.Result
}
