package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// userTokenRepository implements the refresh-token data access layer.
// The user_tokens table is keyed by user_id, so a user holds at most one
// refresh token at a time (single-session semantics).
type userTokenRepository struct {
	db *sql.DB
}

// NewUserTokenRepository creates a new user token repository
func NewUserTokenRepository(db *sql.DB) *userTokenRepository {
	return &userTokenRepository{
		db: db,
	}
}

// Upsert stores the refresh token for a user, replacing any previous one
func (r *userTokenRepository) Upsert(ctx context.Context, userID int, token string) error {
	query := `
		INSERT INTO user_tokens (user_id, token)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE token = VALUES(token), created_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, userID, token); err != nil {
		return fmt.Errorf("failed to upsert user token: %w", err)
	}

	return nil
}

// Replace swaps the stored refresh token for a new one, but only if the stored
// value still equals oldToken. A concurrent rotation or a replayed stale token
// matches no row and returns ErrTokenMismatch.
func (r *userTokenRepository) Replace(ctx context.Context, userID int, oldToken, newToken string) error {
	query := `
		UPDATE user_tokens
		SET token = ?, created_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND token = ?
	`

	result, err := r.db.ExecContext(ctx, query, newToken, userID, oldToken)
	if err != nil {
		return fmt.Errorf("failed to replace user token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("refresh token for user %d: %w", userID, ErrTokenMismatch)
	}

	return nil
}

// DeleteByUserID removes the stored refresh token of a user.
// Deleting an absent row is not an error, which makes logout idempotent.
func (r *userTokenRepository) DeleteByUserID(ctx context.Context, userID int) error {
	query := `DELETE FROM user_tokens WHERE user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete user token: %w", err)
	}

	return nil
}
