package models

// Balance is the live consistency check for a session ledger.
type Balance struct {
	// TotalWins is the sum of positive results over participating players.
	TotalWins float64

	// TotalLosses is the sum of negative results over participating players.
	TotalLosses float64

	// Balance is TotalWins + TotalLosses. Zero (within tolerance) for a
	// consistent ledger.
	Balance float64

	// IsBalanced reports whether |Balance| is within the currency tolerance.
	IsBalanced bool
}

// PlayerStats is a per-player aggregate over all sessions the player
// participated in. Derived on every read, never persisted.
type PlayerStats struct {
	Name string

	// TotalWinnings is the sum of the player's results.
	TotalWinnings float64

	// SessionsWon and SessionsLost count positive and negative results.
	SessionsWon  int
	SessionsLost int

	// WinRate is SessionsWon / TotalSessions as a rounded percentage.
	WinRate int

	// BiggestWin is the largest positive result ever; BiggestLoss the most
	// negative. Both zero for a player who never won or never lost.
	BiggestWin  float64
	BiggestLoss float64

	// TotalSessions counts sessions the player participated in.
	TotalSessions int

	// TotalBuyIns is the sum of the player's buy-in counts.
	TotalBuyIns int

	// AverageBuyIns is TotalBuyIns / TotalSessions, one decimal place.
	AverageBuyIns float64
}
