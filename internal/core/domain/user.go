package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSelfLockout        = errors.New("admins cannot deactivate their own account")
)

// Profile holds optional contact details a user maintains about themselves.
type Profile struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	ZipCode   string `json:"zipCode,omitempty"`
}

// User models an account in the identity store.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	Profile      *Profile  `json:"profile,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ProfileUpdate lists the only fields a user may change on their own record.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Username *string
	Profile  *Profile
}

// UserFilter narrows user listings. Zero values match everything.
type UserFilter struct {
	Role   string
	Search string
	Active *bool
}

// NormalizeEmail returns the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
