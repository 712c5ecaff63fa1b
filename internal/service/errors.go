package service

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
	ErrNotFound            = errors.New("not found")
	ErrNotOwner            = errors.New("not the comment author")
)
