package ports

import (
	"context"

	ordersports "github.com/inkwell-labs/bookstore-api/internal/domains/orders/ports"
)

// StatsSnapshot aggregates storefront figures across the catalog and
// orders contexts at a single point in time.
type StatsSnapshot struct {
	TotalOrders   int64
	TotalSales    float64
	TrendingBooks int64
	TotalBooks    int64
	MonthlySales  []ordersports.MonthlyBucket
}

// CatalogSource is the slice of the catalog service that reporting reads.
type CatalogSource interface {
	CountBooks(ctx context.Context) (int64, error)
	CountTrendingBooks(ctx context.Context) (int64, error)
}

// OrdersSource is the slice of the orders service that reporting reads.
type OrdersSource interface {
	CountOrders(ctx context.Context) (int64, error)
	SumTotalPrice(ctx context.Context) (float64, error)
	GroupByMonth(ctx context.Context) ([]ordersports.MonthlyBucket, error)
}

// Service computes aggregate storefront statistics.
type Service interface {
	ComputeStats(ctx context.Context) (*StatsSnapshot, error)
}
