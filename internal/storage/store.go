// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"pokerpal/internal/models"
)

// ErrNotProvisioned is returned by group reads before the first join has
// stored an access code and roster.
var ErrNotProvisioned = errors.New("group not provisioned")

// Store defines the interface for PokerPal storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// ProvisionGroup stores the access-code hash and the initial roster.
	// It fails if the group has already been provisioned.
	ProvisionGroup(ctx context.Context, accessHash string, players []string) error

	// GetAccessHash returns the stored access-code hash, or
	// ErrNotProvisioned.
	GetAccessHash(ctx context.Context) (string, error)

	// GetGroup returns the roster in insertion order, or ErrNotProvisioned.
	GetGroup(ctx context.Context) (*models.Group, error)

	// UpdateRoster replaces the roster, preserving the given order.
	UpdateRoster(ctx context.Context, players []string) error

	// CreateSession persists a new session. ID and CreatedAt are populated
	// by the store when unset.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session with its entries in stored order.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// ListSessions returns all sessions, newest first.
	ListSessions(ctx context.Context) ([]*models.Session, error)

	// UpdateSession replaces an existing session's fields and entries.
	UpdateSession(ctx context.Context, session *models.Session) error

	// DeleteSession removes a session and cascades to any debts that
	// reference it.
	DeleteSession(ctx context.Context, sessionID string) error

	// SettleSession atomically records the given debts and marks the
	// session settled. Either everything is applied or nothing is; it fails
	// if the session is missing or already settled.
	SettleSession(ctx context.Context, sessionID string, debts []*models.Debt) error

	// CreateDebt persists a manually entered debt.
	CreateDebt(ctx context.Context, debt *models.Debt) error

	// GetDebt retrieves a debt by ID.
	GetDebt(ctx context.Context, debtID string) (*models.Debt, error)

	// ListDebts returns all debts, newest first.
	ListDebts(ctx context.Context) ([]*models.Debt, error)

	// SettleDebt flips the debt's settled flag and records the timestamp.
	// The flip is one-way; settling an already settled debt fails.
	SettleDebt(ctx context.Context, debtID string, settledAt int64) error

	// Close releases any resources held by the store.
	Close() error
}
