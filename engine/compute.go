/*
compute.go - Decimal-safe arithmetic evaluator

PURPOSE:
  Performs the four binary operations on two decimal operands with exact
  decimal semantics. 0.1 + 0.2 is 0.3 here, not 0.30000000000000004:
  operands are decimal.Decimal, never float64.

DIVISION BY ZERO:
  Signaled as ErrDivisionByZero, as data. The reducer turns it into the
  Error display state; nothing in this subsystem panics.

SEE ALSO:
  - reduce.go: The only caller inside the engine
  - errors.go: Sentinel errors
*/
package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Compute applies op to a and b.
// Division by zero yields ErrDivisionByZero for every a, including zero.
func Compute(a decimal.Decimal, op Operator, b decimal.Decimal) (decimal.Decimal, error) {
	switch op {
	case OpAdd:
		return a.Add(b), nil
	case OpSub:
		return a.Sub(b), nil
	case OpMul:
		return a.Mul(b), nil
	case OpDiv:
		if b.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}
		return a.Div(b), nil
	}
	return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
}

// ParseOperand reads display text as a decimal. A trailing decimal point
// ("5.") is accepted; it is how a half-typed operand looks on screen.
func ParseOperand(text string) (decimal.Decimal, error) {
	trimmed := strings.TrimSuffix(text, ".")
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrUnparseableOperand)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparseableOperand, text)
	}
	return d, nil
}
