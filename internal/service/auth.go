package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/commentboard/backend/internal/config"
	"github.com/commentboard/backend/internal/db"
	"github.com/commentboard/backend/internal/model"
	"github.com/commentboard/backend/internal/token"
)

type AuthRepo interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	InsertRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error
}

// AuthService owns the session lifecycle: signup, login, access-token
// refresh and logout.
type AuthService struct {
	repo       AuthRepo
	codec      *token.Codec
	refreshTTL time.Duration
}

// TokenPair is what a successful signup or login hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func NewAuthService(repo AuthRepo, codec *token.Codec, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		repo:       repo,
		codec:      codec,
		refreshTTL: cfg.RefreshTTL,
	}
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*model.User, TokenPair, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, TokenPair{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, TokenPair{}, err
	}

	// The unique constraint on email settles concurrent signups:
	// exactly one insert wins.
	user, err := s.repo.CreateUser(ctx, name, email, string(hash))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, TokenPair{}, ErrDuplicateEmail
		}
		return nil, TokenPair{}, err
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if db.IsNoRows(err) {
			// Same error as a wrong password; callers must not be able
			// to probe which emails exist.
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh mints a new access token. The refresh token itself is not
// rotated; it stays valid until logout or expiry, matching the rest of
// the API's multi-device model.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", ErrInvalidRefreshToken
	}

	if _, err := s.codec.Verify(refreshToken, token.Refresh); err != nil {
		return "", ErrInvalidRefreshToken
	}

	record, err := s.repo.GetRefreshTokenByHash(ctx, hashToken(refreshToken))
	if err != nil {
		if db.IsNoRows(err) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}
	if time.Now().After(record.ExpiresAt) {
		return "", ErrInvalidRefreshToken
	}

	return s.codec.IssueAccess(record.UserID)
}

// Logout deletes the stored refresh token. Unknown tokens are not an
// error; logout always succeeds from the caller's perspective.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	return s.repo.DeleteRefreshTokenByHash(ctx, hashToken(refreshToken))
}

func (s *AuthService) issueTokens(ctx context.Context, userID int64) (TokenPair, error) {
	accessToken, err := s.codec.IssueAccess(userID)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := s.codec.IssueRefresh(userID)
	if err != nil {
		return TokenPair{}, err
	}

	expiresAt := time.Now().Add(s.refreshTTL)
	if err := s.repo.InsertRefreshToken(ctx, userID, hashToken(refreshToken), expiresAt); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh tokens are stored hashed; a leaked table yields nothing usable.
func hashToken(tokenStr string) string {
	sum := sha256.Sum256([]byte(tokenStr))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
