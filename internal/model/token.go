package model

import "time"

type RefreshToken struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type PasswordResetToken struct {
	ID        int64
	Token     string
	Email     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
