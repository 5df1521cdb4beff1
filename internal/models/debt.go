package models

// Transaction is a planned payment from a session settlement.
// It is the in-memory output of the settlement planner; persisting the plan
// turns each transaction into a Debt.
type Transaction struct {
	// FromPlayer is the loser paying.
	FromPlayer string

	// ToPlayer is the winner being paid.
	ToPlayer string

	// Amount is the payment amount (always positive).
	Amount float64
}

// Debt represents an obligation between two players.
type Debt struct {
	// ID is the unique identifier for the debt (UUID format).
	ID string

	// FromPlayer owes the money. Must differ from ToPlayer.
	FromPlayer string

	// ToPlayer is owed the money.
	ToPlayer string

	// Amount is the outstanding amount (always positive).
	Amount float64

	// Description is optional free text. Debts derived from a session
	// settlement usually leave it empty.
	Description string

	// Settled reports whether the debt has been paid. The flip is one-way.
	Settled bool

	// CreatedAt is the Unix timestamp when the debt was recorded.
	CreatedAt int64

	// SettledAt is the Unix timestamp when the debt was marked settled.
	// Zero while the debt is outstanding.
	SettledAt int64

	// SessionID links a settlement-derived debt back to its session.
	// Empty for manually entered debts. Deleting the session cascades to
	// its debts.
	SessionID string

	// SessionDate mirrors the originating session's date for display.
	SessionDate string
}
