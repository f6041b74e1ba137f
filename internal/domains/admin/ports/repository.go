package ports

import (
	"context"
	"errors"

	"github.com/inkwell-labs/bookstore-api/internal/domains/admin/domain"
)

var (
	// ErrNotFound signals no account exists under the given username.
	ErrNotFound = errors.New("admin user not found")
	// ErrStoreUnavailable signals the backing store could not be reached.
	ErrStoreUnavailable = errors.New("admin store unavailable")
)

// Repository persists admin accounts.
type Repository interface {
	Save(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
}
