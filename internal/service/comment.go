package service

import (
	"context"
	"strings"

	"github.com/commentboard/backend/internal/db"
	"github.com/commentboard/backend/internal/model"
)

type CommentRepo interface {
	ListComments(ctx context.Context) ([]model.Comment, error)
	GetCommentByID(ctx context.Context, commentID int64) (*model.Comment, error)
	CreateComment(ctx context.Context, authorID int64, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, commentID int64, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) (int64, error)
}

type CommentService struct {
	repo CommentRepo
}

func NewCommentService(repo CommentRepo) *CommentService {
	return &CommentService{repo: repo}
}

func (s *CommentService) ListComments(ctx context.Context) ([]model.Comment, error) {
	return s.repo.ListComments(ctx)
}

func (s *CommentService) CreateComment(ctx context.Context, authorID int64, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.CreateComment(ctx, authorID, content)
}

// UpdateComment is author-only; the write permission flag gates the
// route, ownership gates the row.
func (s *CommentService) UpdateComment(ctx context.Context, commentID, requesterID int64, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if existing.AuthorID != requesterID {
		return nil, ErrNotOwner
	}

	return s.repo.UpdateComment(ctx, commentID, content)
}

// DeleteComment removes any comment; the delete flag is a global
// moderation right, not an ownership check.
func (s *CommentService) DeleteComment(ctx context.Context, commentID int64) error {
	deleted, err := s.repo.DeleteComment(ctx, commentID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}
