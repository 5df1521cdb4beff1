package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pokerpal/internal/models"
)

// CreateDebt persists a manually entered debt.
func (s *SQLiteStore) CreateDebt(ctx context.Context, debt *models.Debt) error {
	if debt.ID == "" {
		debt.ID = uuid.New().String()
	}
	if debt.CreatedAt == 0 {
		debt.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertDebt(ctx, tx, debt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetDebt retrieves a debt by ID.
func (s *SQLiteStore) GetDebt(ctx context.Context, debtID string) (*models.Debt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, from_player, to_player, amount, description, settled, created_at, settled_at, session_id, session_date
		 FROM debts WHERE id = ?`,
		debtID,
	)
	debt, err := scanDebt(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("debt not found: %s", debtID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	return debt, nil
}

// ListDebts returns all debts, newest first.
func (s *SQLiteStore) ListDebts(ctx context.Context) ([]*models.Debt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, from_player, to_player, amount, description, settled, created_at, settled_at, session_id, session_date
		 FROM debts ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []*models.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, debt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}
	return debts, nil
}

// SettleDebt flips the settled flag and records the settlement timestamp.
// Settling twice fails; the flip is one-way.
func (s *SQLiteStore) SettleDebt(ctx context.Context, debtID string, settledAt int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE debts SET settled = 1, settled_at = ? WHERE id = ? AND settled = 0",
		settledAt, debtID,
	)
	if err != nil {
		return fmt.Errorf("failed to settle debt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to settle debt: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("debt not found or already settled: %s", debtID)
	}
	return nil
}

func insertDebt(ctx context.Context, tx *sql.Tx, debt *models.Debt) error {
	var description, sessionID, sessionDate, settledAt interface{}
	if debt.Description != "" {
		description = debt.Description
	}
	if debt.SessionID != "" {
		sessionID = debt.SessionID
	}
	if debt.SessionDate != "" {
		sessionDate = debt.SessionDate
	}
	if debt.SettledAt != 0 {
		settledAt = debt.SettledAt
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO debts (id, from_player, to_player, amount, description, settled, created_at, settled_at, session_id, session_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		debt.ID, debt.FromPlayer, debt.ToPlayer, debt.Amount, description,
		debt.Settled, debt.CreatedAt, settledAt, sessionID, sessionDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDebt(row rowScanner) (*models.Debt, error) {
	debt := &models.Debt{}
	var description, sessionID, sessionDate sql.NullString
	var settledAt sql.NullInt64

	err := row.Scan(&debt.ID, &debt.FromPlayer, &debt.ToPlayer, &debt.Amount,
		&description, &debt.Settled, &debt.CreatedAt, &settledAt, &sessionID, &sessionDate)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		debt.Description = description.String
	}
	if settledAt.Valid {
		debt.SettledAt = settledAt.Int64
	}
	if sessionID.Valid {
		debt.SessionID = sessionID.String
	}
	if sessionDate.Valid {
		debt.SessionDate = sessionDate.String
	}
	return debt, nil
}
