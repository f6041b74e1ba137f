package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/inkwell-labs/bookstore-api/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrStoreUnavailable distinguishes an unreachable store from an empty one.
	ErrStoreUnavailable = errors.New("order store unavailable")
)

// MonthlyBucket aggregates order volume for one calendar month ("YYYY-MM", UTC).
type MonthlyBucket struct {
	Month       string
	TotalSales  float64
	TotalOrders int64
}

// Repository persists orders and exposes the aggregate queries the
// reporting core needs.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	FindByEmail(ctx context.Context, email string) ([]*domain.Order, error)
	Count(ctx context.Context) (int64, error)
	SumTotalPrice(ctx context.Context) (float64, error)
	// GroupByMonth buckets orders by the UTC calendar month of their
	// creation time, sorted ascending by month string.
	GroupByMonth(ctx context.Context) ([]MonthlyBucket, error)
}
