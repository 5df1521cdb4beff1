package calculator

import "fmt"

// ValidationKind classifies a user-correctable rejection.
type ValidationKind string

const (
	// KindUnbalancedSession: participant results do not sum to zero.
	KindUnbalancedSession ValidationKind = "unbalanced_session"
	// KindNoParticipants: no player has a buy-in recorded.
	KindNoParticipants ValidationKind = "no_participants"
	// KindInvalidBuyInAmount: the per-buy-in cost is zero or negative.
	KindInvalidBuyInAmount ValidationKind = "invalid_buy_in_amount"
	// KindMissingRequiredField: a required session field is empty or invalid.
	KindMissingRequiredField ValidationKind = "missing_required_field"
	// KindSelfDebt: a debt names the same player on both sides.
	KindSelfDebt ValidationKind = "self_debt"
	// KindInvalidAmount: a debt amount is zero or negative.
	KindInvalidAmount ValidationKind = "invalid_amount"
)

// ValidationError is a recoverable, user-correctable rejection. Field names
// the input field the message should be attached to, so the UI can show it
// next to a concrete control instead of a generic banner.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Field, e.Message)
}

func newValidationError(kind ValidationKind, field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}
