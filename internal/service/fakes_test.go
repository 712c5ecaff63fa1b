package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/commentboard/backend/internal/model"
)

// fakeStore is an in-memory stand-in for db.Postgres, mirroring its
// error contract: pgx.ErrNoRows for missing rows, PgError 23505 for
// unique violations, and column defaults on insert.
type fakeStore struct {
	mu           sync.Mutex
	nextID       int64
	users        map[int64]*model.User
	usersByEmail map[string]int64
	refresh      map[string]*model.RefreshToken
	resets       map[string]*model.PasswordResetToken
	comments     map[int64]*model.Comment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        map[int64]*model.User{},
		usersByEmail: map[string]int64{},
		refresh:      map[string]*model.RefreshToken{},
		resets:       map[string]*model.PasswordResetToken{},
		comments:     map[int64]*model.Comment{},
	}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

func (f *fakeStore) CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.usersByEmail[email]; exists {
		return nil, uniqueViolation()
	}

	f.nextID++
	user := &model.User{
		ID:           f.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CanRead:      true,
		CanWrite:     true,
		CanDelete:    false,
		CreatedAt:    time.Now(),
	}
	f.users[user.ID] = user
	f.usersByEmail[email] = user.ID
	return user, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.usersByEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return f.users[id], nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users := []model.User{}
	for _, user := range f.users {
		users = append(users, *user)
	}
	return users, nil
}

func (f *fakeStore) UpdateUserPermissions(ctx context.Context, userID int64, update model.PermissionUpdate) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if update.CanRead != nil {
		user.CanRead = *update.CanRead
	}
	if update.CanWrite != nil {
		user.CanWrite = *update.CanWrite
	}
	if update.CanDelete != nil {
		user.CanDelete = *update.CanDelete
	}
	return user, nil
}

func (f *fakeStore) InsertRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.refresh[tokenHash]; exists {
		return uniqueViolation()
	}
	f.nextID++
	f.refresh[tokenHash] = &model.RefreshToken{
		ID:        f.nextID,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeStore) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.refresh[tokenHash]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return record, nil
}

func (f *fakeStore) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.refresh, tokenHash)
	return nil
}

func (f *fakeStore) InsertResetToken(ctx context.Context, token, email string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.resets[token]; exists {
		return uniqueViolation()
	}
	f.nextID++
	f.resets[token] = &model.PasswordResetToken{
		ID:        f.nextID,
		Token:     token,
		Email:     email,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeStore) ConsumeResetToken(ctx context.Context, token, newPasswordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.resets[token]
	if !ok || record.Used || time.Now().After(record.ExpiresAt) {
		return pgx.ErrNoRows
	}
	id, ok := f.usersByEmail[record.Email]
	if !ok {
		return pgx.ErrNoRows
	}

	record.Used = true
	f.users[id].PasswordHash = newPasswordHash
	return nil
}

func (f *fakeStore) ListComments(ctx context.Context) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	comments := []model.Comment{}
	for _, comment := range f.comments {
		comments = append(comments, *comment)
	}
	return comments, nil
}

func (f *fakeStore) GetCommentByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	comment, ok := f.comments[commentID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return comment, nil
}

func (f *fakeStore) CreateComment(ctx context.Context, authorID int64, content string) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	author, ok := f.users[authorID]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	f.nextID++
	comment := &model.Comment{
		ID:       f.nextID,
		Content:  content,
		AuthorID: authorID,
		Author: model.CommentAuthor{
			ID:    author.ID,
			Name:  author.Name,
			Email: author.Email,
		},
		CreatedAt: time.Now(),
	}
	f.comments[comment.ID] = comment
	return comment, nil
}

func (f *fakeStore) UpdateComment(ctx context.Context, commentID int64, content string) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	comment, ok := f.comments[commentID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	comment.Content = content
	comment.UpdatedAt = time.Now()
	return comment, nil
}

func (f *fakeStore) DeleteComment(ctx context.Context, commentID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.comments[commentID]; !ok {
		return 0, nil
	}
	delete(f.comments, commentID)
	return 1, nil
}

func (f *fakeStore) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var deleted int64
	now := time.Now()
	for hash, record := range f.refresh {
		if record.ExpiresAt.Before(now) {
			delete(f.refresh, hash)
			deleted++
		}
	}
	for token, record := range f.resets {
		if record.ExpiresAt.Before(now) {
			delete(f.resets, token)
			deleted++
		}
	}
	return deleted, nil
}
