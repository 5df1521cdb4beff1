// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"pokerpal/internal/models"
	"pokerpal/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

const (
	accessHashKey = "access_hash"
	createdAtKey  = "created_at"
)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys; debt cascade on session deletion depends on it.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ProvisionGroup stores the access-code hash and initial roster. Fails if
// the group already exists.
func (s *SQLiteStore) ProvisionGroup(ctx context.Context, accessHash string, players []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", accessHashKey).Scan(&existing)
	if err == nil {
		return fmt.Errorf("group already provisioned")
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check provisioning: %w", err)
	}

	now := time.Now().Unix()
	_, err = tx.ExecContext(ctx,
		"INSERT INTO config (key, value) VALUES (?, ?), (?, ?)",
		accessHashKey, accessHash, createdAtKey, strconv.FormatInt(now, 10),
	)
	if err != nil {
		return fmt.Errorf("failed to store access hash: %w", err)
	}

	if err := replaceRoster(ctx, tx, players); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetAccessHash returns the stored access-code hash.
func (s *SQLiteStore) GetAccessHash(ctx context.Context) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", accessHashKey).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", storage.ErrNotProvisioned
	}
	if err != nil {
		return "", fmt.Errorf("failed to get access hash: %w", err)
	}
	return hash, nil
}

// GetGroup returns the roster in insertion order.
func (s *SQLiteStore) GetGroup(ctx context.Context) (*models.Group, error) {
	var createdAt string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", createdAtKey).Scan(&createdAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotProvisioned
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	group := &models.Group{}
	group.CreatedAt, _ = strconv.ParseInt(createdAt, 10, 64)

	rows, err := s.db.QueryContext(ctx, "SELECT name FROM roster ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan roster member: %w", err)
		}
		group.Players = append(group.Players, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}

	return group, nil
}

// UpdateRoster replaces the roster with the given ordered list.
func (s *SQLiteStore) UpdateRoster(ctx context.Context, players []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceRoster(ctx, tx, players); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func replaceRoster(ctx context.Context, tx *sql.Tx, players []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM roster"); err != nil {
		return fmt.Errorf("failed to clear roster: %w", err)
	}
	for i, name := range players {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO roster (position, name) VALUES (?, ?)", i, name,
		); err != nil {
			return fmt.Errorf("failed to insert roster member: %w", err)
		}
	}
	return nil
}
