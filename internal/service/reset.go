package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/commentboard/backend/internal/config"
	"github.com/commentboard/backend/internal/db"
	"github.com/commentboard/backend/internal/model"
)

type ResetRepo interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	InsertResetToken(ctx context.Context, token, email string, expiresAt time.Time) error
	ConsumeResetToken(ctx context.Context, token, newPasswordHash string) error
}

// ResetService issues and redeems single-use password reset tokens.
type ResetService struct {
	repo       ResetRepo
	tokenTTL   time.Duration
	echoTokens bool
	log        *logrus.Logger
}

func NewResetService(repo ResetRepo, cfg config.AuthConfig, log *logrus.Logger) *ResetService {
	return &ResetService{
		repo:       repo,
		tokenTTL:   cfg.ResetTokenTTL,
		echoTokens: cfg.EchoResetTokens,
		log:        log,
	}
}

func (s *ResetService) EchoTokens() bool {
	return s.echoTokens
}

// RequestReset generates a reset token for the given email. The empty
// return for unknown emails is deliberate: the handler sends the same
// acknowledgement either way, so the endpoint cannot be used to
// enumerate accounts.
func (s *ResetService) RequestReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)

	if _, err := s.repo.GetUserByEmail(ctx, email); err != nil {
		if db.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}

	resetToken := uuid.NewString()
	expiresAt := time.Now().Add(s.tokenTTL)
	if err := s.repo.InsertResetToken(ctx, resetToken, email, expiresAt); err != nil {
		return "", err
	}

	// Delivery is an out-of-band concern; the token only ever reaches
	// the caller directly when ECHO_RESET_TOKENS is on.
	s.log.WithField("email", email).Info("password reset token issued")

	return resetToken, nil
}

// RedeemReset swaps the user's password hash and burns the token. The
// store does both in one transaction, so a token can never end up
// spent without the password changing, or vice versa.
func (s *ResetService) RedeemReset(ctx context.Context, resetToken, newPassword string) error {
	if strings.TrimSpace(resetToken) == "" || newPassword == "" {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.ConsumeResetToken(ctx, resetToken, string(hash)); err != nil {
		if db.IsNoRows(err) {
			return ErrInvalidResetToken
		}
		return err
	}
	return nil
}
