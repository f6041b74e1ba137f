package ports

import (
	"context"

	"github.com/google/uuid"

	catalogdomain "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/domain"
	"github.com/inkwell-labs/bookstore-api/internal/domains/orders/domain"
)

// BookResolver expands order book references into full catalog records.
// Orders hold non-owning references, so resolution happens at read time.
type BookResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*catalogdomain.Book, error)
}

// ExpandedOrder pairs an order with the catalog records its references
// resolve to. Dangling references are skipped, not errors.
type ExpandedOrder struct {
	Order *domain.Order
	Books []*catalogdomain.Book
}

// Service exposes orders bounded context use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindOrdersByEmail(ctx context.Context, email string) ([]ExpandedOrder, error)
	CountOrders(ctx context.Context) (int64, error)
	SumTotalPrice(ctx context.Context) (float64, error)
	GroupByMonth(ctx context.Context) ([]MonthlyBucket, error)
}
