package application

import (
	"context"
	"fmt"

	"github.com/inkwell-labs/bookstore-api/internal/domains/reporting/ports"
)

// Service composes catalog and orders figures into a stats snapshot.
type Service struct {
	catalog ports.CatalogSource
	orders  ports.OrdersSource
}

func NewService(catalog ports.CatalogSource, orders ports.OrdersSource) *Service {
	return &Service{catalog: catalog, orders: orders}
}

// ComputeStats gathers counts and revenue from both contexts. An empty
// store yields a snapshot of zeros with no month buckets; a store failure
// in either context aborts the whole computation.
func (s *Service) ComputeStats(ctx context.Context) (*ports.StatsSnapshot, error) {
	totalOrders, err := s.orders.CountOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting orders: %w", err)
	}
	totalSales, err := s.orders.SumTotalPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("summing revenue: %w", err)
	}
	trending, err := s.catalog.CountTrendingBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting trending books: %w", err)
	}
	totalBooks, err := s.catalog.CountBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting books: %w", err)
	}
	monthly, err := s.orders.GroupByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("bucketing monthly sales: %w", err)
	}
	return &ports.StatsSnapshot{
		TotalOrders:   totalOrders,
		TotalSales:    totalSales,
		TrendingBooks: trending,
		TotalBooks:    totalBooks,
		MonthlySales:  monthly,
	}, nil
}

var _ ports.Service = (*Service)(nil)
