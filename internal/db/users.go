package db

import (
	"context"

	"github.com/commentboard/backend/internal/model"
)

const userColumns = `id, name, email, password_hash, can_read, can_write, can_delete, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CanRead,
		&user.CanWrite,
		&user.CanDelete,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, name, email, passwordHash))
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}

func (db *Postgres) ListUsers(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// UpdateUserPermissions applies a partial flag update in a single
// statement, so concurrent updates to the same row cannot interleave
// mid-write.
func (db *Postgres) UpdateUserPermissions(ctx context.Context, userID int64, update model.PermissionUpdate) (*model.User, error) {
	query := `
		UPDATE users
		SET can_read = COALESCE($2, can_read),
		    can_write = COALESCE($3, can_write),
		    can_delete = COALESCE($4, can_delete),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, userID, update.CanRead, update.CanWrite, update.CanDelete))
}
