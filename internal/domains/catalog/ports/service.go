package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/inkwell-labs/bookstore-api/internal/domains/catalog/domain"
)

// BookPatch carries optional field replacements for a partial update.
// Nil fields keep the existing value.
type BookPatch struct {
	Title       *string
	Description *string
	Category    *string
	Trending    *bool
	OldPrice    *float64
	NewPrice    *float64
	CoverImage  *string
}

// Service exposes catalog bounded context use cases to adapters.
type Service interface {
	CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, patch BookPatch) (*domain.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	CountBooks(ctx context.Context) (int64, error)
	CountTrendingBooks(ctx context.Context) (int64, error)
}
