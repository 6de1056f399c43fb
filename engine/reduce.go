/*
reduce.go - The calculator state machine

PURPOSE:
  Reduce computes the next State (and, when an Equals evaluation completes
  with a numeric result, an Event for the history ledger) from the current
  State and one Command. It is pure: no I/O, no clocks, no mutation of the
  input State.

CONCEPTUAL STATES (derived from field combinations, no explicit tag):
  Entering        IsNewNumber=false, building CurrentNumber
  OperatorPending CurrentNumber="", Operation set
  ResultShown     IsNewNumber=true after an Equals
  Error           CurrentNumber holds the division-by-zero message

OPERATOR/EQUALS RULE (the subtle part):
  1. Repeat-equals: Equals on a shown result replays the last operation
     against its remembered right operand, and keeps replaying on every
     further Equals.
  2. Operator while awaiting an operand substitutes the pending operator
     without evaluating; Equals while awaiting an operand reuses the last
     operand (or the left operand itself) as the right operand.
  3. An operator pressed on a shown result starts a NEW left-to-right
     chain from that result; it does not reuse the old operator.
  Division by zero in any branch lands in the Error state. An unparseable
  display buffer (only possible when it already shows the error message)
  forces a reset to the initial state.

SEE ALSO:
  - types.go: State and Event
  - compute.go: Arithmetic
*/
package engine

import (
	"errors"
	"strings"
)

// Reduce applies one command to the state. It always returns a valid State;
// the *Event is non-nil only when an Equals evaluation produced a numeric
// result that belongs in the history ledger.
func Reduce(s State, cmd Command) (State, *Event) {
	switch cmd.Kind {
	case KindClear:
		return Initial(), nil
	case KindDigit:
		return reduceDigit(s, cmd.Digit), nil
	case KindDot:
		return reduceDot(s), nil
	case KindBackspace:
		return reduceBackspace(s), nil
	case KindOperator:
		return reduceOperation(s, cmd.Op, false)
	case KindEquals:
		return reduceOperation(s, opNone, true)
	}
	return s, nil
}

// =============================================================================
// DIGIT / DOT / BACKSPACE
// =============================================================================

func reduceDigit(s State, d rune) State {
	if s.IsNewNumber || s.CurrentNumber == "0" {
		// Starting a fresh operand clears the completed-equation banner.
		if s.Operation == opNone {
			s.HistoryExpression = ""
		}
		s.CurrentNumber = string(d)
		s.IsNewNumber = false
		return s
	}
	s.CurrentNumber += string(d)
	return s
}

func reduceDot(s State) State {
	if s.IsNewNumber {
		if s.Operation == opNone {
			s.HistoryExpression = ""
		}
		s.CurrentNumber = "0."
		s.IsNewNumber = false
		return s
	}
	if strings.Contains(s.CurrentNumber, ".") {
		return s
	}
	s.CurrentNumber += "."
	return s
}

func reduceBackspace(s State) State {
	// A shown result or a pending-operator display is not editable.
	if s.IsNewNumber {
		return s
	}
	s.CurrentNumber = s.CurrentNumber[:len(s.CurrentNumber)-1]
	if s.CurrentNumber == "" {
		s.CurrentNumber = "0"
		s.IsNewNumber = true
	}
	return s
}

// =============================================================================
// OPERATOR / EQUALS - the core transition rule
// =============================================================================

// reduceOperation unifies Operator(op) and Equals. equals=true means the
// command was Equals and newOp is ignored.
func reduceOperation(s State, newOp Operator, equals bool) (State, *Event) {
	// 1. Repeat-equals: replay PreviousNumber OP LastOperand.
	if equals && s.IsNewNumber && s.PreviousNumber != "" && s.Operation != opNone && s.LastOperand != "" {
		return completeEquals(s.PreviousNumber, s.Operation, s.LastOperand)
	}

	// 2. Awaiting an operand (an operator was chosen, nothing typed yet).
	if s.CurrentNumber == "" {
		if !equals {
			if s.Operation != opNone {
				// Operator substitution, no evaluation.
				s.Operation = newOp
				s.HistoryExpression = s.PreviousNumber + " " + string(newOp)
			}
			return s, nil
		}
		if s.Operation == opNone {
			return s, nil
		}
		operand := s.LastOperand
		if operand == "" {
			operand = s.PreviousNumber
		}
		return completeEquals(s.PreviousNumber, s.Operation, operand)
	}

	// 3. An operand is on display.
	cur, err := ParseOperand(s.CurrentNumber)
	if err != nil {
		// Error-message display: any operation command recovers by reset.
		return Initial(), nil
	}
	curText := cur.String()

	// A result followed by a new operator starts a fresh chain from it.
	if s.IsNewNumber && !equals && s.PreviousNumber != "" && s.Operation != opNone {
		return State{
			PreviousNumber:    curText,
			Operation:         newOp,
			IsNewNumber:       true,
			HistoryExpression: curText + " " + string(newOp),
		}, nil
	}

	// Chained calculation: fold the typed operand into the pending one.
	if s.PreviousNumber != "" && s.Operation != opNone {
		if equals {
			return completeEquals(s.PreviousNumber, s.Operation, curText)
		}
		return continueChain(s.PreviousNumber, s.Operation, curText, newOp)
	}

	// First operator of a fresh calculation.
	if equals {
		// Equals with nothing pending: freeze the operand, nothing to do.
		s.IsNewNumber = true
		return s, nil
	}
	return State{
		PreviousNumber: curText,
		Operation:      newOp,
		// Seed LastOperand so an immediate Equals can reuse the left side.
		LastOperand:       curText,
		IsNewNumber:       true,
		HistoryExpression: curText + " " + string(newOp),
	}, nil
}

// completeEquals evaluates left OP right and presents the result as a shown
// result: Equals keeps the operation and operand so it can be replayed.
func completeEquals(left string, op Operator, right string) (State, *Event) {
	result, errState, ok := evaluate(left, op, right)
	if !ok {
		return errState, nil
	}
	expr := left + " " + string(op) + " " + right
	next := State{
		CurrentNumber:     result,
		PreviousNumber:    result,
		Operation:         op,
		LastOperand:       right,
		IsNewNumber:       true,
		HistoryExpression: expr + " =",
	}
	return next, &Event{Expression: expr, Result: result, Operation: op, Operand: right}
}

// continueChain evaluates left OP right and carries the result forward as
// the left operand of newOp. No Event: only Equals completes a calculation.
func continueChain(left string, op Operator, right string, newOp Operator) (State, *Event) {
	result, errState, ok := evaluate(left, op, right)
	if !ok {
		return errState, nil
	}
	return State{
		PreviousNumber:    result,
		Operation:         newOp,
		LastOperand:       right,
		IsNewNumber:       true,
		HistoryExpression: result + " " + string(newOp),
	}, nil
}

// evaluate parses both operands and computes. ok=false carries the state to
// land in instead: Error for division by zero, Initial for parse failures.
func evaluate(left string, op Operator, right string) (string, State, bool) {
	l, err := ParseOperand(left)
	if err != nil {
		return "", Initial(), false
	}
	r, err := ParseOperand(right)
	if err != nil {
		return "", Initial(), false
	}
	result, err := Compute(l, op, r)
	if errors.Is(err, ErrDivisionByZero) {
		return "", errorState(left, op, right), false
	}
	if err != nil {
		return "", Initial(), false
	}
	return result.String(), State{}, true
}

// errorState is the terminal-looking division-by-zero display. Everything
// except the message and the failed equation matches the initial state.
func errorState(left string, op Operator, right string) State {
	return State{
		CurrentNumber:     DivideByZeroMessage,
		IsNewNumber:       true,
		HistoryExpression: left + " " + string(op) + " " + right + " =",
	}
}
