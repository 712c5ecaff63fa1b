package service

import (
	"context"

	"github.com/commentboard/backend/internal/db"
	"github.com/commentboard/backend/internal/model"
)

type UserRepo interface {
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserPermissions(ctx context.Context, userID int64, update model.PermissionUpdate) (*model.User, error)
}

type UserService struct {
	repo UserRepo
}

func NewUserService(repo UserRepo) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdatePermissions applies a partial flag update. Flags are read live
// on every request, so the change lands on the target user's very next
// call without re-authentication.
func (s *UserService) UpdatePermissions(ctx context.Context, userID int64, update model.PermissionUpdate) (*model.User, error) {
	user, err := s.repo.UpdateUserPermissions(ctx, userID, update)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
