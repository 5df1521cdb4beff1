package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pokerpal/internal/models"
	"pokerpal/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "pokerpal-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testSession() *models.Session {
	return &models.Session{
		Date:        "2024-05-17",
		Location:    "John's House",
		AddedBy:     "Alice",
		BuyInAmount: 20,
		TotalPot:    80,
		Entries: []models.PlayerEntry{
			{Name: "Alice", Result: 20, BuyIns: 2},
			{Name: "Bob", Result: -10, BuyIns: 1},
			{Name: "Carol", Result: -10, BuyIns: 1},
		},
	}
}

func TestGroupProvisioning(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("unprovisioned reads fail", func(t *testing.T) {
		if _, err := store.GetAccessHash(ctx); !errors.Is(err, storage.ErrNotProvisioned) {
			t.Errorf("GetAccessHash error = %v, want ErrNotProvisioned", err)
		}
		if _, err := store.GetGroup(ctx); !errors.Is(err, storage.ErrNotProvisioned) {
			t.Errorf("GetGroup error = %v, want ErrNotProvisioned", err)
		}
	})

	t.Run("provision stores hash and roster order", func(t *testing.T) {
		players := []string{"Alice", "Bob", "Carol"}
		if err := store.ProvisionGroup(ctx, "hash-1", players); err != nil {
			t.Fatalf("ProvisionGroup failed: %v", err)
		}

		hash, err := store.GetAccessHash(ctx)
		if err != nil {
			t.Fatalf("GetAccessHash failed: %v", err)
		}
		if hash != "hash-1" {
			t.Errorf("hash = %q, want %q", hash, "hash-1")
		}

		group, err := store.GetGroup(ctx)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(group.Players) != 3 || group.Players[0] != "Alice" || group.Players[2] != "Carol" {
			t.Errorf("roster = %v, want %v", group.Players, players)
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("double provisioning fails", func(t *testing.T) {
		if err := store.ProvisionGroup(ctx, "hash-2", []string{"Mallory"}); err == nil {
			t.Fatal("Expected second ProvisionGroup to fail")
		}
		hash, _ := store.GetAccessHash(ctx)
		if hash != "hash-1" {
			t.Errorf("hash changed to %q after failed provisioning", hash)
		}
	})

	t.Run("roster update preserves order", func(t *testing.T) {
		if err := store.UpdateRoster(ctx, []string{"Carol", "Alice", "Dave"}); err != nil {
			t.Fatalf("UpdateRoster failed: %v", err)
		}
		group, err := store.GetGroup(ctx)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		want := []string{"Carol", "Alice", "Dave"}
		for i, name := range want {
			if group.Players[i] != name {
				t.Fatalf("roster = %v, want %v", group.Players, want)
			}
		}
	})
}

func TestSessionCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateSession generates ID", func(t *testing.T) {
		session := testSession()
		if err := store.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if session.ID == "" {
			t.Error("Expected session ID to be generated")
		}
		if session.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetSession retrieves entries in order", func(t *testing.T) {
		original := testSession()
		if err := store.CreateSession(ctx, original); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		got, err := store.GetSession(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got.Location != original.Location || got.AddedBy != original.AddedBy {
			t.Errorf("got %+v, want %+v", got, original)
		}
		if len(got.Entries) != 3 {
			t.Fatalf("got %d entries, want 3", len(got.Entries))
		}
		for i, e := range original.Entries {
			if got.Entries[i] != e {
				t.Errorf("entry %d = %+v, want %+v", i, got.Entries[i], e)
			}
		}
	})

	t.Run("UpdateSession replaces entries", func(t *testing.T) {
		session := testSession()
		if err := store.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		session.Location = "Bob's Place"
		session.Entries = []models.PlayerEntry{
			{Name: "Alice", Result: 5, BuyIns: 1},
			{Name: "Bob", Result: -5, BuyIns: 1},
		}
		if err := store.UpdateSession(ctx, session); err != nil {
			t.Fatalf("UpdateSession failed: %v", err)
		}

		got, err := store.GetSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got.Location != "Bob's Place" || len(got.Entries) != 2 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("UpdateSession of missing session fails", func(t *testing.T) {
		missing := testSession()
		missing.ID = "no-such-session"
		if err := store.UpdateSession(ctx, missing); err == nil {
			t.Error("Expected UpdateSession to fail")
		}
	})

	t.Run("ListSessions newest first", func(t *testing.T) {
		sessions, err := store.ListSessions(ctx)
		if err != nil {
			t.Fatalf("ListSessions failed: %v", err)
		}
		if len(sessions) != 3 {
			t.Fatalf("got %d sessions, want 3", len(sessions))
		}
		for _, s := range sessions {
			if len(s.Entries) == 0 {
				t.Errorf("session %s has no entries", s.ID)
			}
		}
	})
}

func TestSettleSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := testSession()
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	debts := []*models.Debt{
		{FromPlayer: "Bob", ToPlayer: "Alice", Amount: 10, SessionDate: session.Date},
		{FromPlayer: "Carol", ToPlayer: "Alice", Amount: 10, SessionDate: session.Date},
	}

	t.Run("settle records debts and flag atomically", func(t *testing.T) {
		if err := store.SettleSession(ctx, session.ID, debts); err != nil {
			t.Fatalf("SettleSession failed: %v", err)
		}

		got, err := store.GetSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if !got.Settled {
			t.Error("Expected session to be settled")
		}

		stored, err := store.ListDebts(ctx)
		if err != nil {
			t.Fatalf("ListDebts failed: %v", err)
		}
		if len(stored) != 2 {
			t.Fatalf("got %d debts, want 2", len(stored))
		}
		for _, d := range stored {
			if d.SessionID != session.ID {
				t.Errorf("debt %s not linked to session", d.ID)
			}
		}
	})

	t.Run("second settle fails without writing", func(t *testing.T) {
		err := store.SettleSession(ctx, session.ID, []*models.Debt{
			{ID: "dup", FromPlayer: "Bob", ToPlayer: "Alice", Amount: 1},
		})
		if err == nil {
			t.Fatal("Expected second SettleSession to fail")
		}
		stored, _ := store.ListDebts(ctx)
		if len(stored) != 2 {
			t.Errorf("got %d debts after failed settle, want 2", len(stored))
		}
	})

	t.Run("missing session fails", func(t *testing.T) {
		if err := store.SettleSession(ctx, "no-such-session", nil); err == nil {
			t.Error("Expected SettleSession to fail")
		}
	})

	t.Run("deleting the session cascades to its debts", func(t *testing.T) {
		if err := store.DeleteSession(ctx, session.ID); err != nil {
			t.Fatalf("DeleteSession failed: %v", err)
		}
		stored, err := store.ListDebts(ctx)
		if err != nil {
			t.Fatalf("ListDebts failed: %v", err)
		}
		if len(stored) != 0 {
			t.Errorf("got %d debts after session deletion, want 0", len(stored))
		}
	})
}

func TestDebts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("create and get manual debt", func(t *testing.T) {
		debt := &models.Debt{
			FromPlayer:  "Bob",
			ToPlayer:    "Alice",
			Amount:      12.5,
			Description: "Side bet",
		}
		if err := store.CreateDebt(ctx, debt); err != nil {
			t.Fatalf("CreateDebt failed: %v", err)
		}
		if debt.ID == "" {
			t.Error("Expected debt ID to be generated")
		}

		got, err := store.GetDebt(ctx, debt.ID)
		if err != nil {
			t.Fatalf("GetDebt failed: %v", err)
		}
		if got.Description != "Side bet" || got.Amount != 12.5 || got.Settled {
			t.Errorf("got %+v", got)
		}
		if got.SessionID != "" {
			t.Errorf("manual debt has session backlink %q", got.SessionID)
		}
	})

	t.Run("settle is one-way", func(t *testing.T) {
		debt := &models.Debt{FromPlayer: "Bob", ToPlayer: "Alice", Amount: 5}
		if err := store.CreateDebt(ctx, debt); err != nil {
			t.Fatalf("CreateDebt failed: %v", err)
		}

		if err := store.SettleDebt(ctx, debt.ID, 1700000000); err != nil {
			t.Fatalf("SettleDebt failed: %v", err)
		}
		got, err := store.GetDebt(ctx, debt.ID)
		if err != nil {
			t.Fatalf("GetDebt failed: %v", err)
		}
		if !got.Settled || got.SettledAt != 1700000000 {
			t.Errorf("got settled=%v settledAt=%d", got.Settled, got.SettledAt)
		}

		if err := store.SettleDebt(ctx, debt.ID, 1700000001); err == nil {
			t.Error("Expected settling twice to fail")
		}
	})

	t.Run("settling a missing debt fails", func(t *testing.T) {
		if err := store.SettleDebt(ctx, "no-such-debt", 1); err == nil {
			t.Error("Expected SettleDebt to fail")
		}
	})
}
