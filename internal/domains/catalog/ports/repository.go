package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/inkwell-labs/bookstore-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("book not found")
	// ErrStoreUnavailable distinguishes an unreachable store from an empty one.
	ErrStoreUnavailable = errors.New("catalog store unavailable")
)

// Repository persists books and exposes the counts the reporting core needs.
type Repository interface {
	Save(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Book, error)
	Count(ctx context.Context) (int64, error)
	CountTrending(ctx context.Context) (int64, error)
}
