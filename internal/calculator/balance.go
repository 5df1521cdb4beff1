// Package calculator holds the settlement and statistics engine: ledger
// validation, settlement planning and statistics aggregation. Everything in
// this package is a pure function over in-memory inputs; persistence and
// transport live elsewhere.
package calculator

import (
	"math"

	"pokerpal/internal/models"
)

const (
	// BalanceTolerance is the epsilon for the zero-sum ledger check.
	// Currency amounts are floats, so exact zero is not expected.
	BalanceTolerance = 0.01

	// settleEpsilon eliminates floating-point noise when matching debtors to
	// creditors: residuals below it are treated as fully settled.
	settleEpsilon = 0.005
)

// ComputeBalance sums wins and losses over participating players. Entries
// with no buy-ins are ignored, whatever their result field holds.
//
// The function is called on every keystroke of the session form for live
// "is this balanced yet" feedback, so it must accept partial input and never
// fail; validity is reported through IsBalanced only.
func ComputeBalance(entries []models.PlayerEntry) models.Balance {
	var b models.Balance
	for _, e := range entries {
		if !e.Participated() {
			continue
		}
		switch {
		case e.Result > 0:
			b.TotalWins += e.Result
		case e.Result < 0:
			b.TotalLosses += e.Result
		}
	}
	b.Balance = b.TotalWins + b.TotalLosses
	b.IsBalanced = math.Abs(b.Balance) < BalanceTolerance
	return b
}

// ClampNonParticipants zeroes the result of every entry without buy-ins,
// in place. A non-participant's stray result is leftover form input, not an
// error: it is silently discarded before the balance check and before the
// session is persisted.
func ClampNonParticipants(entries []models.PlayerEntry) {
	for i := range entries {
		if entries[i].BuyIns == 0 {
			entries[i].Result = 0
		}
	}
}

// ValidateSession decides whether a candidate session may be recorded.
// It returns a *ValidationError naming the offending field, or nil.
//
// The caller is expected to run ClampNonParticipants first; ValidateSession
// does not mutate its input.
func ValidateSession(s *models.Session, roster []string) error {
	if s.Date == "" {
		return newValidationError(KindMissingRequiredField, "date", "date is required")
	}
	if s.Location == "" {
		return newValidationError(KindMissingRequiredField, "location", "location is required")
	}
	if s.AddedBy == "" {
		return newValidationError(KindMissingRequiredField, "addedBy", "select who is adding this session")
	}
	if !contains(roster, s.AddedBy) {
		return newValidationError(KindMissingRequiredField, "addedBy", "%q is not a roster member", s.AddedBy)
	}
	if s.BuyInAmount <= 0 {
		return newValidationError(KindInvalidBuyInAmount, "buyInAmount", "buy-in amount must be positive")
	}

	participants := 0
	for _, e := range s.Entries {
		if e.Participated() {
			participants++
		}
	}
	if participants == 0 {
		return newValidationError(KindNoParticipants, "", "a session needs at least one participant")
	}

	if b := ComputeBalance(s.Entries); !b.IsBalanced {
		// Attach the unbalanced-sum error to the first roster member's
		// field by convention, so the user has a concrete place to look.
		field := ""
		if len(roster) > 0 {
			field = roster[0]
		}
		return newValidationError(KindUnbalancedSession, field,
			"player results must sum to 0, got %.2f", b.Balance)
	}
	return nil
}

// ValidateDebt checks a manually entered debt. Settlement-derived debts are
// constructed internally and skip this.
func ValidateDebt(d *models.Debt) error {
	if d.FromPlayer == "" {
		return newValidationError(KindMissingRequiredField, "fromPlayer", "debtor is required")
	}
	if d.ToPlayer == "" {
		return newValidationError(KindMissingRequiredField, "toPlayer", "creditor is required")
	}
	if d.FromPlayer == d.ToPlayer {
		return newValidationError(KindSelfDebt, "toPlayer", "a player cannot owe themselves")
	}
	if d.Amount <= 0 {
		return newValidationError(KindInvalidAmount, "amount", "amount must be positive")
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
