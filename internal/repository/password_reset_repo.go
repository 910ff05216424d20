package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/foodmind/foodmind-backend/internal/domain"
)

type PasswordResetRepository struct {
	db *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, accountID, code string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO password_resets (account_id, code, expires_at) VALUES (?, ?, ?)`,
		accountID, code, expiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create password reset: %w", err)
	}
	return nil
}

// GetValid returns the newest unused, unexpired reset matching email and
// code, or nil.
func (r *PasswordResetRepository) GetValid(ctx context.Context, email, code string, now time.Time) (*domain.PasswordReset, error) {
	var p domain.PasswordReset
	err := r.db.QueryRowContext(ctx, `
		SELECT pr.id, pr.account_id, pr.code, pr.expires_at, pr.used
		FROM password_resets pr
		JOIN accounts a ON a.id = pr.account_id
		WHERE a.email = ? AND pr.code = ? AND pr.used = FALSE AND pr.expires_at > ?
		ORDER BY pr.id DESC
		LIMIT 1`,
		email, code, now.UTC(),
	).Scan(&p.ID, &p.AccountID, &p.Code, &p.ExpiresAt, &p.Used)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get password reset: %w", err)
	}
	return &p, nil
}

func (r *PasswordResetRepository) MarkUsed(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE password_resets SET used = TRUE WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark password reset used: %w", err)
	}
	return nil
}

func (r *PasswordResetRepository) DeleteByAccountID(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM password_resets WHERE account_id = ?`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete password resets: %w", err)
	}
	return nil
}
