package db

import (
	"context"

	"github.com/commentboard/backend/internal/model"
)

const commentColumns = `
	c.id, c.content, c.author_id, c.created_at, c.updated_at,
	u.id, u.name, u.email
`

func scanComment(row interface{ Scan(...any) error }) (*model.Comment, error) {
	var comment model.Comment
	err := row.Scan(
		&comment.ID,
		&comment.Content,
		&comment.AuthorID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.Author.ID,
		&comment.Author.Name,
		&comment.Author.Email,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (db *Postgres) ListComments(ctx context.Context) ([]model.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN users u ON u.id = c.author_id
		ORDER BY c.created_at DESC
	`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	return comments, rows.Err()
}

func (db *Postgres) GetCommentByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1
	`
	return scanComment(db.Pool.QueryRow(ctx, query, commentID))
}

func (db *Postgres) CreateComment(ctx context.Context, authorID int64, content string) (*model.Comment, error) {
	query := `
		WITH inserted AS (
			INSERT INTO comments (content, author_id, created_at, updated_at)
			VALUES ($1, $2, NOW(), NOW())
			RETURNING id, content, author_id, created_at, updated_at
		)
		SELECT i.id, i.content, i.author_id, i.created_at, i.updated_at,
		       u.id, u.name, u.email
		FROM inserted i
		JOIN users u ON u.id = i.author_id
	`
	return scanComment(db.Pool.QueryRow(ctx, query, content, authorID))
}

func (db *Postgres) UpdateComment(ctx context.Context, commentID int64, content string) (*model.Comment, error) {
	query := `
		WITH updated AS (
			UPDATE comments
			SET content = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING id, content, author_id, created_at, updated_at
		)
		SELECT m.id, m.content, m.author_id, m.created_at, m.updated_at,
		       u.id, u.name, u.email
		FROM updated m
		JOIN users u ON u.id = m.author_id
	`
	return scanComment(db.Pool.QueryRow(ctx, query, commentID, content))
}

func (db *Postgres) DeleteComment(ctx context.Context, commentID int64) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
