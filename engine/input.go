/*
input.go - Raw token classification

PURPOSE:
  Normalizes heterogeneous raw tokens (keyboard characters, UI glyphs)
  into the canonical command vocabulary consumed by the reducer. This is
  the single place where stringly-typed input exists; past this boundary
  everything is a tagged Command.

TOKEN TABLE:
  0-9                  -> Digit
  .                    -> Dot
  + - * /              -> Operator
  × ÷                  -> Operator (display glyphs, normalized to * and /)
  = Enter              -> Equals
  Escape c C           -> Clear
  Backspace            -> Backspace
  anything else        -> dropped (Classify returns ok=false)

SEE ALSO:
  - reduce.go: Consumes Commands
*/
package engine

// =============================================================================
// COMMAND - Canonical input vocabulary
// =============================================================================

type CommandKind string

const (
	KindDigit     CommandKind = "digit"
	KindDot       CommandKind = "dot"
	KindOperator  CommandKind = "operator"
	KindEquals    CommandKind = "equals"
	KindClear     CommandKind = "clear"
	KindBackspace CommandKind = "backspace"
)

// Command is one canonical calculator input. Digit is set only for
// KindDigit, Op only for KindOperator.
type Command struct {
	Kind  CommandKind
	Digit rune
	Op    Operator
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Classify maps a raw token to a Command. Unrecognized tokens report
// ok=false and must be dropped by the caller: no state change, no error.
func Classify(token string) (Command, bool) {
	switch token {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return Command{Kind: KindDigit, Digit: rune(token[0])}, true
	case ".":
		return Command{Kind: KindDot}, true
	case "+":
		return Command{Kind: KindOperator, Op: OpAdd}, true
	case "-":
		return Command{Kind: KindOperator, Op: OpSub}, true
	case "*", "×":
		return Command{Kind: KindOperator, Op: OpMul}, true
	case "/", "÷":
		return Command{Kind: KindOperator, Op: OpDiv}, true
	case "=", "Enter":
		return Command{Kind: KindEquals}, true
	case "Escape", "c", "C":
		return Command{Kind: KindClear}, true
	case "Backspace":
		return Command{Kind: KindBackspace}, true
	}
	return Command{}, false
}
