package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/commentboard/backend/internal/model"
)

func (db *Postgres) InsertRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := db.Pool.Exec(ctx, query, userID, tokenHash, expiresAt)
	return err
}

func (db *Postgres) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, created_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`
	var token model.RefreshToken
	err := db.Pool.QueryRow(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (db *Postgres) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
	return err
}

func (db *Postgres) InsertResetToken(ctx context.Context, token, email string, expiresAt time.Time) error {
	query := `
		INSERT INTO password_reset_tokens (token, email, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := db.Pool.Exec(ctx, query, token, email, expiresAt)
	return err
}

// ConsumeResetToken marks the token used and rewrites the owning
// user's password hash in one transaction. The guarded UPDATE makes
// redemption single-shot even under concurrent attempts: exactly one
// caller sees the row, everyone else gets pgx.ErrNoRows.
func (db *Postgres) ConsumeResetToken(ctx context.Context, tokenStr, newPasswordHash string) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var email string
	err = tx.QueryRow(ctx, `
		UPDATE password_reset_tokens
		SET used = TRUE
		WHERE token = $1 AND used = FALSE AND expires_at > NOW()
		RETURNING email
	`, tokenStr).Scan(&email)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE email = $2
	`, newPasswordHash, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

// DeleteExpiredTokens is the periodic sweep. Expired tokens are
// already rejected at verify time; this only bounds table growth.
func (db *Postgres) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	var total int64

	tag, err := db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return total, err
	}
	total += tag.RowsAffected()

	tag, err = db.Pool.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return total, err
	}
	total += tag.RowsAffected()

	return total, nil
}
