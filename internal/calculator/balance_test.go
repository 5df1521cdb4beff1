package calculator

import (
	"errors"
	"math"
	"testing"

	"pokerpal/internal/models"
)

func TestComputeBalance(t *testing.T) {
	tests := []struct {
		name         string
		entries      []models.PlayerEntry
		wantWins     float64
		wantLosses   float64
		wantBalanced bool
	}{
		{
			name: "balanced three players",
			entries: []models.PlayerEntry{
				{Name: "A", Result: 20, BuyIns: 2},
				{Name: "B", Result: -10, BuyIns: 1},
				{Name: "C", Result: -10, BuyIns: 1},
			},
			wantWins:     20,
			wantLosses:   -20,
			wantBalanced: true,
		},
		{
			name: "unbalanced by five",
			entries: []models.PlayerEntry{
				{Name: "A", Result: 15, BuyIns: 1},
				{Name: "B", Result: -10, BuyIns: 1},
			},
			wantWins:     15,
			wantLosses:   -10,
			wantBalanced: false,
		},
		{
			name: "non-participant stray result is ignored",
			entries: []models.PlayerEntry{
				{Name: "A", Result: 10, BuyIns: 1},
				{Name: "B", Result: -10, BuyIns: 1},
				{Name: "C", Result: 7, BuyIns: 0},
			},
			wantWins:     10,
			wantLosses:   -10,
			wantBalanced: true,
		},
		{
			name: "break-even participant counts as participating",
			entries: []models.PlayerEntry{
				{Name: "A", Result: 0, BuyIns: 1},
			},
			wantWins:     0,
			wantLosses:   0,
			wantBalanced: true,
		},
		{
			name:         "empty input is balanced",
			entries:      nil,
			wantWins:     0,
			wantLosses:   0,
			wantBalanced: true,
		},
		{
			name: "within tolerance",
			entries: []models.PlayerEntry{
				{Name: "A", Result: 10.004, BuyIns: 1},
				{Name: "B", Result: -10, BuyIns: 1},
			},
			wantWins:     10.004,
			wantLosses:   -10,
			wantBalanced: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ComputeBalance(tt.entries)
			if math.Abs(b.TotalWins-tt.wantWins) > 1e-9 {
				t.Errorf("TotalWins = %v, want %v", b.TotalWins, tt.wantWins)
			}
			if math.Abs(b.TotalLosses-tt.wantLosses) > 1e-9 {
				t.Errorf("TotalLosses = %v, want %v", b.TotalLosses, tt.wantLosses)
			}
			if math.Abs(b.Balance-(tt.wantWins+tt.wantLosses)) > 1e-9 {
				t.Errorf("Balance = %v, want %v", b.Balance, tt.wantWins+tt.wantLosses)
			}
			if b.IsBalanced != tt.wantBalanced {
				t.Errorf("IsBalanced = %v, want %v", b.IsBalanced, tt.wantBalanced)
			}
		})
	}
}

func TestClampNonParticipants(t *testing.T) {
	entries := []models.PlayerEntry{
		{Name: "A", Result: 10, BuyIns: 1},
		{Name: "B", Result: 7, BuyIns: 0},
		{Name: "C", Result: -10, BuyIns: 2},
	}
	ClampNonParticipants(entries)

	if entries[1].Result != 0 {
		t.Errorf("non-participant result = %v, want 0", entries[1].Result)
	}
	if entries[0].Result != 10 || entries[2].Result != -10 {
		t.Errorf("participant results changed: %+v", entries)
	}
}

func validSession() *models.Session {
	return &models.Session{
		Date:        "2024-05-17",
		Location:    "John's House",
		AddedBy:     "Alice",
		BuyInAmount: 20,
		Entries: []models.PlayerEntry{
			{Name: "Alice", Result: 20, BuyIns: 2},
			{Name: "Bob", Result: -10, BuyIns: 1},
			{Name: "Carol", Result: -10, BuyIns: 1},
		},
	}
}

func TestValidateSession(t *testing.T) {
	roster := []string{"Alice", "Bob", "Carol"}

	tests := []struct {
		name      string
		mutate    func(*models.Session)
		wantKind  ValidationKind
		wantField string
	}{
		{
			name:   "valid session passes",
			mutate: func(s *models.Session) {},
		},
		{
			name:      "missing location",
			mutate:    func(s *models.Session) { s.Location = "" },
			wantKind:  KindMissingRequiredField,
			wantField: "location",
		},
		{
			name:      "missing date",
			mutate:    func(s *models.Session) { s.Date = "" },
			wantKind:  KindMissingRequiredField,
			wantField: "date",
		},
		{
			name:      "addedBy not on roster",
			mutate:    func(s *models.Session) { s.AddedBy = "Mallory" },
			wantKind:  KindMissingRequiredField,
			wantField: "addedBy",
		},
		{
			name:      "zero buy-in amount",
			mutate:    func(s *models.Session) { s.BuyInAmount = 0 },
			wantKind:  KindInvalidBuyInAmount,
			wantField: "buyInAmount",
		},
		{
			name: "no participants",
			mutate: func(s *models.Session) {
				for i := range s.Entries {
					s.Entries[i].BuyIns = 0
					s.Entries[i].Result = 0
				}
			},
			wantKind: KindNoParticipants,
		},
		{
			name: "unbalanced results attach to first roster member",
			mutate: func(s *models.Session) {
				s.Entries[0].Result = 15
				s.Entries[1].Result = -10
				s.Entries[2].Result = 0
			},
			wantKind:  KindUnbalancedSession,
			wantField: "Alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSession()
			tt.mutate(s)
			err := ValidateSession(s, roster)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("ValidateSession() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateSession() = %v, want *ValidationError", err)
			}
			if verr.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", verr.Kind, tt.wantKind)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateDebt(t *testing.T) {
	tests := []struct {
		name     string
		debt     models.Debt
		wantKind ValidationKind
	}{
		{
			name: "valid debt",
			debt: models.Debt{FromPlayer: "Bob", ToPlayer: "Alice", Amount: 10},
		},
		{
			name:     "self debt rejected",
			debt:     models.Debt{FromPlayer: "Bob", ToPlayer: "Bob", Amount: 10},
			wantKind: KindSelfDebt,
		},
		{
			name:     "missing debtor",
			debt:     models.Debt{ToPlayer: "Alice", Amount: 10},
			wantKind: KindMissingRequiredField,
		},
		{
			name:     "non-positive amount",
			debt:     models.Debt{FromPlayer: "Bob", ToPlayer: "Alice", Amount: 0},
			wantKind: KindInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDebt(&tt.debt)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("ValidateDebt() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateDebt() = %v, want *ValidationError", err)
			}
			if verr.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", verr.Kind, tt.wantKind)
			}
		})
	}
}
