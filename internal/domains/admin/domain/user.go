package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RoleAdmin is the only role that may reach the dashboard endpoints.
const RoleAdmin = "admin"

var (
	ErrEmptyUsername = errors.New("username must not be empty")
	ErrEmptyPassword = errors.New("password must not be empty")
)

// AdminUser is an operator account. Passwords are stored as salted
// Argon2id hashes; the plaintext never leaves the application layer.
type AdminUser struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Salt         string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAdminUser creates an admin account with a freshly hashed password.
func NewAdminUser(username, password string) (*AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	hash, salt, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &AdminUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Salt:         salt,
		Role:         RoleAdmin,
	}, nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (u *AdminUser) CheckPassword(password string) (bool, error) {
	return VerifyPassword(password, u.Salt, u.PasswordHash)
}

// IsAdmin reports whether the account carries the admin role.
func (u *AdminUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
