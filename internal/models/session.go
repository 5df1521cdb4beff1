package models

// PlayerEntry is one player's line in a session ledger.
type PlayerEntry struct {
	// Name is the player's roster name.
	Name string

	// Result is the player's net profit or loss for the session.
	// Positive = net win, negative = net loss, zero = break-even.
	Result float64

	// BuyIns is the number of chip purchases. Zero means the player did not
	// participate; their Result is treated as 0 regardless of stored value.
	BuyIns int
}

// Participated reports whether the player actually played in the session.
func (e PlayerEntry) Participated() bool {
	return e.BuyIns > 0
}

// Session represents one recorded poker night.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// Date is the calendar date of the session, formatted as "2006-01-02".
	Date string

	// Location is free text ("John's House").
	Location string

	// AddedBy is the roster name of the player who recorded the session.
	AddedBy string

	// BuyInAmount is the cost of a single buy-in.
	BuyInAmount float64

	// Entries holds one entry per roster member, in roster order as of the
	// session's creation. Keys are fixed at creation time: a player removed
	// from the roster later still appears in historical sessions.
	Entries []PlayerEntry

	// TotalPot is the total money in play, derived at write time.
	// Canonically buyInAmount x total buy-ins; for legacy records without
	// buy-in counts it is the sum of positive results.
	TotalPot float64

	// Settled reports whether debts have been recorded for this session.
	Settled bool

	// CreatedAt is the Unix timestamp when the session was recorded.
	CreatedAt int64
}

// Entry returns the entry for the named player, if present.
func (s *Session) Entry(name string) (PlayerEntry, bool) {
	for _, e := range s.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return PlayerEntry{}, false
}

// HasBuyIns reports whether any entry records a buy-in count. Sessions from
// the earlier schema tracked results only; pot derivation falls back to the
// sum of positive results for those.
func (s *Session) HasBuyIns() bool {
	for _, e := range s.Entries {
		if e.BuyIns > 0 {
			return true
		}
	}
	return false
}
