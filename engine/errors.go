/*
errors.go - Error values for the engine core

PURPOSE:
  Both error kinds in this subsystem are handled entirely inside the
  reducer: division by zero becomes the Error display state, an
  unparseable operand forces a reset to the initial state. The sentinels
  exist so the evaluator can signal outcomes as data and so callers can
  distinguish them with errors.Is.

SEE ALSO:
  - compute.go: Returns these from Compute and ParseOperand
  - reduce.go: Translates them into state transitions
*/
package engine

import "errors"

var (
	// ErrDivisionByZero is returned by Compute when the right operand of a
	// division is zero. It is an expected outcome, not a fault.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUnparseableOperand is returned when display text cannot be read as
	// a number. Reachable only when the display already shows non-numeric
	// text such as the division-by-zero message.
	ErrUnparseableOperand = errors.New("unparseable operand")

	// ErrUnknownOperator is returned for an operator outside {+,-,*,/}.
	ErrUnknownOperator = errors.New("unknown operator")
)
