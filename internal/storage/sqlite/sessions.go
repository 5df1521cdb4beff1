package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pokerpal/internal/models"
)

// CreateSession persists a new session with its entries.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, date, location, added_by, buy_in_amount, total_pot, settled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.Date, session.Location, session.AddedBy,
		session.BuyInAmount, session.TotalPot, session.Settled, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if err := insertEntries(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID with entries in stored order.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, date, location, added_by, buy_in_amount, total_pot, settled, created_at
		 FROM sessions WHERE id = ?`,
		sessionID,
	).Scan(&session.ID, &session.Date, &session.Location, &session.AddedBy,
		&session.BuyInAmount, &session.TotalPot, &session.Settled, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := s.loadEntries(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions returns all sessions, newest first.
func (s *SQLiteStore) ListSessions(ctx context.Context) ([]*models.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, location, added_by, buy_in_amount, total_pot, settled, created_at
		 FROM sessions ORDER BY date DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session := &models.Session{}
		if err := rows.Scan(&session.ID, &session.Date, &session.Location, &session.AddedBy,
			&session.BuyInAmount, &session.TotalPot, &session.Settled, &session.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	for _, session := range sessions {
		if err := s.loadEntries(ctx, session); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// UpdateSession replaces an existing session's fields and entries.
func (s *SQLiteStore) UpdateSession(ctx context.Context, session *models.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET date = ?, location = ?, added_by = ?, buy_in_amount = ?, total_pot = ?, settled = ?
		 WHERE id = ?`,
		session.Date, session.Location, session.AddedBy,
		session.BuyInAmount, session.TotalPot, session.Settled, session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session not found: %s", session.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM session_entries WHERE session_id = ?", session.ID); err != nil {
		return fmt.Errorf("failed to clear session entries: %w", err)
	}
	if err := insertEntries(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteSession removes a session. Debts referencing it are removed by the
// foreign-key cascade.
func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM sessions WHERE id = ?", sessionID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	if err != nil {
		return fmt.Errorf("failed to check session existence: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// SettleSession records the given debts and marks the session settled in a
// single transaction, so a failure leaves neither half applied.
func (s *SQLiteStore) SettleSession(ctx context.Context, sessionID string, debts []*models.Debt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var settled bool
	err = tx.QueryRowContext(ctx, "SELECT settled FROM sessions WHERE id = ?", sessionID).Scan(&settled)
	if err == sql.ErrNoRows {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if settled {
		return fmt.Errorf("session already settled: %s", sessionID)
	}

	now := time.Now().Unix()
	for _, debt := range debts {
		if debt.ID == "" {
			debt.ID = uuid.New().String()
		}
		if debt.CreatedAt == 0 {
			debt.CreatedAt = now
		}
		debt.SessionID = sessionID
		if err := insertDebt(ctx, tx, debt); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "UPDATE sessions SET settled = 1 WHERE id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to mark session settled: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertEntries(ctx context.Context, tx *sql.Tx, session *models.Session) error {
	for i, e := range session.Entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO session_entries (session_id, position, name, result, buy_ins)
			 VALUES (?, ?, ?, ?, ?)`,
			session.ID, i, e.Name, e.Result, e.BuyIns,
		)
		if err != nil {
			return fmt.Errorf("failed to insert session entry: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) loadEntries(ctx context.Context, session *models.Session) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, result, buy_ins FROM session_entries WHERE session_id = ? ORDER BY position",
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get session entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.PlayerEntry
		if err := rows.Scan(&e.Name, &e.Result, &e.BuyIns); err != nil {
			return fmt.Errorf("failed to scan session entry: %w", err)
		}
		session.Entries = append(session.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate session entries: %w", err)
	}
	return nil
}
