package calculator

import (
	"math"
	"sort"

	"pokerpal/internal/models"
)

// AggregateStats reduces the full session history into one PlayerStats per
// roster member and ranks the result by total winnings.
//
// Only entries with buy-ins count: a non-participant's stale result never
// contributes to any aggregate. Ties in total winnings keep roster order, so
// the ranking is deterministic. The reduction is recomputed on every call --
// session volume per group is small, so recomputation beats incremental
// maintenance and its staleness bugs.
func AggregateStats(sessions []*models.Session, roster []string) []models.PlayerStats {
	stats := make([]models.PlayerStats, len(roster))
	index := make(map[string]int, len(roster))
	for i, name := range roster {
		stats[i] = models.PlayerStats{Name: name}
		index[name] = i
	}

	for _, s := range sessions {
		for _, e := range s.Entries {
			i, ok := index[e.Name]
			if !ok || !e.Participated() {
				continue
			}
			st := &stats[i]
			st.TotalWinnings += e.Result
			st.TotalSessions++
			st.TotalBuyIns += e.BuyIns
			if e.Result > 0 {
				st.SessionsWon++
				if e.Result > st.BiggestWin {
					st.BiggestWin = e.Result
				}
			} else if e.Result < 0 {
				st.SessionsLost++
				if e.Result < st.BiggestLoss {
					st.BiggestLoss = e.Result
				}
			}
		}
	}

	for i := range stats {
		if stats[i].TotalSessions == 0 {
			continue
		}
		played := float64(stats[i].TotalSessions)
		stats[i].WinRate = int(math.Round(100 * float64(stats[i].SessionsWon) / played))
		stats[i].AverageBuyIns = math.Round(float64(stats[i].TotalBuyIns)/played*10) / 10
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalWinnings > stats[j].TotalWinnings
	})
	return stats
}

// SessionPot derives the total money in play for a session. The canonical
// rule is buy-in amount times total buy-ins; sessions from the earlier
// schema without buy-in counts fall back to the sum of positive results.
func SessionPot(s *models.Session) float64 {
	if s == nil {
		return 0
	}
	if s.BuyInAmount > 0 && s.HasBuyIns() {
		total := 0
		for _, e := range s.Entries {
			total += e.BuyIns
		}
		return s.BuyInAmount * float64(total)
	}
	var pot float64
	for _, e := range s.Entries {
		if e.Result > 0 {
			pot += e.Result
		}
	}
	return pot
}

// BiggestSessions returns the n sessions with the largest pots, descending.
// A missing pot counts as 0. The input slice is not modified.
func BiggestSessions(sessions []*models.Session, n int) []*models.Session {
	sorted := make([]*models.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalPot > sorted[j].TotalPot
	})
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
