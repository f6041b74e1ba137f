package ports

import (
	"context"
	"errors"

	"github.com/inkwell-labs/bookstore-api/internal/domains/admin/domain"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so the response does not leak which one failed.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken signals a malformed, forged, or mis-signed token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired signals the token's lifetime has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTooManyAttempts signals the login rate limit was hit.
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// Session is the authenticated result of a login.
type Session struct {
	Token    string
	Username string
	Role     string
}

// Claims is the verified identity extracted from a bearer token.
type Claims struct {
	UserID   string
	Username string
	Role     string
}

// Service authenticates operators and verifies their tokens.
type Service interface {
	Register(ctx context.Context, username, password string) (*domain.AdminUser, error)
	Authenticate(ctx context.Context, username, password string) (*Session, error)
	Verify(ctx context.Context, token string) (*Claims, error)
}
