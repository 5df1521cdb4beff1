package calculator

import (
	"sort"

	"pokerpal/internal/models"
)

// PlanSettlement turns a balanced session's results into a list of
// debtor-to-creditor payments. If every transaction is executed, each loser
// pays exactly their loss and each winner receives exactly their win.
//
// The matching is greedy largest-to-largest: winners sorted descending by
// amount, losers ascending (largest absolute loss first), then two pointers
// walk both lists settling min(remaining win, remaining loss) at each step.
// This is deliberately not transaction-count optimal -- finding the true
// minimum is a subset-matching problem -- but greedy largest-first keeps the
// count small at a fraction of the complexity. It emits at most
// len(winners)+len(losers)-1 transactions.
//
// PlanSettlement is total: it never fails, and the whole plan is returned
// atomically. Callers persist either all of it or none of it. Input that is
// not actually balanced makes the walk stop early once one side exhausts;
// that is acceptable because the planner only runs on validated sessions.
func PlanSettlement(entries []models.PlayerEntry) []models.Transaction {
	type stake struct {
		name      string
		remaining float64
	}

	var winners, losers []stake
	for _, e := range entries {
		if !e.Participated() {
			continue
		}
		switch {
		case e.Result > 0:
			winners = append(winners, stake{e.Name, e.Result})
		case e.Result < 0:
			losers = append(losers, stake{e.Name, e.Result})
		}
	}

	sort.SliceStable(winners, func(i, j int) bool {
		return winners[i].remaining > winners[j].remaining
	})
	sort.SliceStable(losers, func(i, j int) bool {
		return losers[i].remaining < losers[j].remaining
	})

	var plan []models.Transaction
	i, j := 0, 0
	for i < len(losers) && j < len(winners) {
		owed := -losers[i].remaining
		due := winners[j].remaining

		amount := owed
		if due < amount {
			amount = due
		}
		if amount > settleEpsilon {
			plan = append(plan, models.Transaction{
				FromPlayer: losers[i].name,
				ToPlayer:   winners[j].name,
				Amount:     amount,
			})
		}

		losers[i].remaining += amount
		winners[j].remaining -= amount

		if -losers[i].remaining < settleEpsilon {
			i++
		}
		if winners[j].remaining < settleEpsilon {
			j++
		}
	}
	return plan
}
