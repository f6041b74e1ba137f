package application

import (
	"context"
	"errors"

	catalogdomain "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/domain"
	"github.com/inkwell-labs/bookstore-api/internal/domains/orders/domain"
	"github.com/inkwell-labs/bookstore-api/internal/domains/orders/ports"
)

// Service orchestrates the orders bounded context use cases.
type Service struct {
	repo  ports.Repository
	books ports.BookResolver
}

// NewService wires the orders service with its dependencies. The resolver
// may be nil, in which case lookups return bare orders.
func NewService(repo ports.Repository, books ports.BookResolver) *Service {
	return &Service{repo: repo, books: books}
}

// CreateOrder validates and persists a new order. Referenced books are not
// checked for existence; orders tolerate dangling references.
func (s *Service) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// FindOrdersByEmail matches orders case-insensitively on the normalized
// email and expands each order's book references into catalog records.
func (s *Service) FindOrdersByEmail(ctx context.Context, email string) ([]ports.ExpandedOrder, error) {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		return nil, mapError(domain.ErrInvalidEmail)
	}
	orders, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, mapError(err)
	}
	expanded := make([]ports.ExpandedOrder, 0, len(orders))
	for _, order := range orders {
		expanded = append(expanded, ports.ExpandedOrder{
			Order: order,
			Books: s.resolveBooks(ctx, order),
		})
	}
	return expanded, nil
}

// CountOrders exposes the order count for reporting.
func (s *Service) CountOrders(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

// SumTotalPrice exposes total revenue for reporting.
func (s *Service) SumTotalPrice(ctx context.Context) (float64, error) {
	sum, err := s.repo.SumTotalPrice(ctx)
	if err != nil {
		return 0, mapError(err)
	}
	return sum, nil
}

// GroupByMonth exposes per-month revenue buckets for reporting.
func (s *Service) GroupByMonth(ctx context.Context) ([]ports.MonthlyBucket, error) {
	buckets, err := s.repo.GroupByMonth(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return buckets, nil
}

func (s *Service) resolveBooks(ctx context.Context, order *domain.Order) []*catalogdomain.Book {
	if s.books == nil {
		return nil
	}
	books := make([]*catalogdomain.Book, 0, len(order.BookIDs))
	for _, id := range order.BookIDs {
		book, err := s.books.GetByID(ctx, id)
		if err != nil {
			// Dangling reference: the book may have been deleted after
			// the order was placed. Skip it rather than fail the lookup.
			continue
		}
		books = append(books, book)
	}
	return books
}

var _ ports.Service = (*Service)(nil)
