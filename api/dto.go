/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's state model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/calc-engine/engine"
	"github.com/warp/calc-engine/history"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SessionDTO is the engine state exposed to the presentation layer:
// the primary display text, the equation banner, and whether the display
// is the division-by-zero message.
type SessionDTO struct {
	ID         string `json:"id"`
	Display    string `json:"display"`
	Expression string `json:"expression"`
	Error      bool   `json:"error"`
}

// InputRequest carries raw tokens to feed the classifier, in order.
// Tokens are whatever the client has: digits, ".", "+", "×", "Enter",
// "Escape", "Backspace"... Unrecognized tokens are silently dropped.
type InputRequest struct {
	Tokens []string `json:"tokens"`
}

// HistoryEntryDTO represents one completed calculation.
type HistoryEntryDTO struct {
	ID         string `json:"id"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Operation  string `json:"operation"`
	Operand    string `json:"operand"`
	CreatedAt  string `json:"created_at"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func sessionDTO(id string, s engine.State) SessionDTO {
	display := s.CurrentNumber
	if display == "" {
		// Operator-pending: keep showing the left operand, the way a
		// physical calculator does.
		display = s.PreviousNumber
	}
	return SessionDTO{
		ID:         id,
		Display:    display,
		Expression: s.HistoryExpression,
		Error:      s.IsError(),
	}
}

func historyEntryDTO(e history.Entry) HistoryEntryDTO {
	return HistoryEntryDTO{
		ID:         e.ID,
		Expression: e.Expression,
		Result:     e.Result,
		Operation:  string(e.Operation),
		Operand:    e.Operand,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}
