package calculator

import (
	"math"
	"testing"

	"pokerpal/internal/models"
)

func TestPlanSettlement(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.PlayerEntry
		want    []models.Transaction
	}{
		{
			name: "one winner two losers",
			entries: []models.PlayerEntry{
				{Name: "A", Result: 20, BuyIns: 2},
				{Name: "B", Result: -10, BuyIns: 1},
				{Name: "C", Result: -10, BuyIns: 1},
			},
			want: []models.Transaction{
				{FromPlayer: "B", ToPlayer: "A", Amount: 10},
				{FromPlayer: "C", ToPlayer: "A", Amount: 10},
			},
		},
		{
			name: "largest loss pairs with largest win first",
			entries: []models.PlayerEntry{
				{Name: "W3", Result: 10, BuyIns: 1},
				{Name: "W1", Result: 30, BuyIns: 1},
				{Name: "W2", Result: 20, BuyIns: 1},
				{Name: "L1", Result: -50, BuyIns: 1},
				{Name: "L2", Result: -10, BuyIns: 1},
			},
			want: []models.Transaction{
				{FromPlayer: "L1", ToPlayer: "W1", Amount: 30},
				{FromPlayer: "L1", ToPlayer: "W2", Amount: 20},
				{FromPlayer: "L2", ToPlayer: "W3", Amount: 10},
			},
		},
		{
			name: "loser split across winners",
			entries: []models.PlayerEntry{
				{Name: "A", Result: 15, BuyIns: 1},
				{Name: "B", Result: 5, BuyIns: 1},
				{Name: "C", Result: -20, BuyIns: 2},
			},
			want: []models.Transaction{
				{FromPlayer: "C", ToPlayer: "A", Amount: 15},
				{FromPlayer: "C", ToPlayer: "B", Amount: 5},
			},
		},
		{
			name: "all break even yields empty plan",
			entries: []models.PlayerEntry{
				{Name: "A", Result: 0, BuyIns: 1},
				{Name: "B", Result: 0, BuyIns: 2},
			},
			want: nil,
		},
		{
			name:    "empty session yields empty plan",
			entries: nil,
			want:    nil,
		},
		{
			name: "non-participants are excluded",
			entries: []models.PlayerEntry{
				{Name: "A", Result: 10, BuyIns: 1},
				{Name: "B", Result: -10, BuyIns: 1},
				{Name: "C", Result: 99, BuyIns: 0},
			},
			want: []models.Transaction{
				{FromPlayer: "B", ToPlayer: "A", Amount: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanSettlement(tt.entries)
			if len(got) != len(tt.want) {
				t.Fatalf("PlanSettlement() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].FromPlayer != tt.want[i].FromPlayer || got[i].ToPlayer != tt.want[i].ToPlayer {
					t.Errorf("transaction %d = %s->%s, want %s->%s",
						i, got[i].FromPlayer, got[i].ToPlayer, tt.want[i].FromPlayer, tt.want[i].ToPlayer)
				}
				if math.Abs(got[i].Amount-tt.want[i].Amount) > 1e-9 {
					t.Errorf("transaction %d amount = %v, want %v", i, got[i].Amount, tt.want[i].Amount)
				}
			}
		})
	}
}

// Every winner must receive exactly their result and every loser pay exactly
// their loss, and the plan must never exceed winners+losers-1 transactions.
func TestPlanSettlementConservation(t *testing.T) {
	cases := [][]models.PlayerEntry{
		{
			{Name: "A", Result: 33.5, BuyIns: 2},
			{Name: "B", Result: 12.25, BuyIns: 1},
			{Name: "C", Result: -20.75, BuyIns: 1},
			{Name: "D", Result: -25, BuyIns: 3},
		},
		{
			{Name: "A", Result: 100, BuyIns: 1},
			{Name: "B", Result: -40, BuyIns: 1},
			{Name: "C", Result: -35, BuyIns: 1},
			{Name: "D", Result: -25, BuyIns: 1},
		},
		{
			{Name: "A", Result: 7.5, BuyIns: 1},
			{Name: "B", Result: -7.5, BuyIns: 1},
		},
	}

	for _, entries := range cases {
		plan := PlanSettlement(entries)

		received := make(map[string]float64)
		paid := make(map[string]float64)
		for _, tx := range plan {
			if tx.Amount <= 0 {
				t.Errorf("non-positive transaction amount: %+v", tx)
			}
			received[tx.ToPlayer] += tx.Amount
			paid[tx.FromPlayer] += tx.Amount
		}

		winners, losers := 0, 0
		for _, e := range entries {
			switch {
			case e.Result > 0:
				winners++
				if math.Abs(received[e.Name]-e.Result) > settleEpsilon {
					t.Errorf("%s received %v, want %v", e.Name, received[e.Name], e.Result)
				}
			case e.Result < 0:
				losers++
				if math.Abs(paid[e.Name]+e.Result) > settleEpsilon {
					t.Errorf("%s paid %v, want %v", e.Name, paid[e.Name], -e.Result)
				}
			}
		}

		if max := winners + losers - 1; len(plan) > max {
			t.Errorf("plan has %d transactions, want at most %d", len(plan), max)
		}
	}
}
