package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/application"
	catalogdomain "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/domain"
	ordersmemory "github.com/inkwell-labs/bookstore-api/internal/domains/orders/adapters/memory"
	ordersapp "github.com/inkwell-labs/bookstore-api/internal/domains/orders/application"
	ordersdomain "github.com/inkwell-labs/bookstore-api/internal/domains/orders/domain"
	ordersports "github.com/inkwell-labs/bookstore-api/internal/domains/orders/ports"
)

type fixture struct {
	catalog *catalogmemory.Repository
	orders  *ordersmemory.Repository
	svc     *Service
}

func newFixture() *fixture {
	catalogRepo := catalogmemory.NewRepository()
	ordersRepo := ordersmemory.NewRepository()
	return &fixture{
		catalog: catalogRepo,
		orders:  ordersRepo,
		svc: NewService(
			catalogapp.NewService(catalogRepo),
			ordersapp.NewService(ordersRepo, catalogRepo),
		),
	}
}

func (f *fixture) seedBook(t *testing.T, trending bool) *catalogdomain.Book {
	t.Helper()
	book, err := catalogdomain.NewBook("Seeded", 10)
	require.NoError(t, err)
	book.MarkTrending(trending)
	saved, err := f.catalog.Save(context.Background(), book)
	require.NoError(t, err)
	return saved
}

func (f *fixture) seedOrder(t *testing.T, total float64, createdAt time.Time) {
	t.Helper()
	order, err := ordersdomain.NewOrder("Reader", "reader@example.com",
		ordersdomain.Address{City: "Springfield", Country: "US", State: "IL", Zipcode: "62704"},
		"5551234567", []uuid.UUID{uuid.New()}, total)
	require.NoError(t, err)
	order.CreatedAt = createdAt
	_, err = f.orders.Save(context.Background(), order)
	require.NoError(t, err)
}

func TestComputeStats_EmptyStores(t *testing.T) {
	f := newFixture()

	snapshot, err := f.svc.ComputeStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(0), snapshot.TotalOrders)
	require.Equal(t, 0.0, snapshot.TotalSales)
	require.Equal(t, int64(0), snapshot.TrendingBooks)
	require.Equal(t, int64(0), snapshot.TotalBooks)
	require.Empty(t, snapshot.MonthlySales)
}

func TestComputeStats_SingleMonthBucket(t *testing.T) {
	f := newFixture()
	f.seedOrder(t, 10, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	f.seedOrder(t, 20, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))

	snapshot, err := f.svc.ComputeStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), snapshot.TotalOrders)
	require.Equal(t, 30.0, snapshot.TotalSales)
	require.Len(t, snapshot.MonthlySales, 1)
	require.Equal(t, ordersports.MonthlyBucket{
		Month:       "2024-03",
		TotalSales:  30,
		TotalOrders: 2,
	}, snapshot.MonthlySales[0])
}

func TestComputeStats_CountsBooks(t *testing.T) {
	f := newFixture()
	f.seedBook(t, true)
	f.seedBook(t, true)
	f.seedBook(t, false)

	snapshot, err := f.svc.ComputeStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), snapshot.TotalBooks)
	require.Equal(t, int64(2), snapshot.TrendingBooks)
}

type unavailableOrders struct{}

func (unavailableOrders) CountOrders(context.Context) (int64, error) {
	return 0, ordersports.ErrStoreUnavailable
}

func (unavailableOrders) SumTotalPrice(context.Context) (float64, error) {
	return 0, ordersports.ErrStoreUnavailable
}

func (unavailableOrders) GroupByMonth(context.Context) ([]ordersports.MonthlyBucket, error) {
	return nil, ordersports.ErrStoreUnavailable
}

func TestComputeStats_StoreUnavailable(t *testing.T) {
	catalogRepo := catalogmemory.NewRepository()
	svc := NewService(catalogapp.NewService(catalogRepo), unavailableOrders{})

	_, err := svc.ComputeStats(context.Background())
	require.ErrorIs(t, err, ordersports.ErrStoreUnavailable)
}
