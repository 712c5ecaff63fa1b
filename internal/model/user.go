package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CanRead      bool      `json:"canRead"`
	CanWrite     bool      `json:"canWrite"`
	CanDelete    bool      `json:"canDelete"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// PermissionUpdate carries a partial update; nil fields keep the
// current value.
type PermissionUpdate struct {
	CanRead   *bool `json:"canRead"`
	CanWrite  *bool `json:"canWrite"`
	CanDelete *bool `json:"canDelete"`
}
