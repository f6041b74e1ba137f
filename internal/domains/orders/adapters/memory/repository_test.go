package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/bookstore-api/internal/domains/orders/domain"
)

func storedOrder(t *testing.T, repo *Repository, email string, total float64, createdAt time.Time) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder("Reader", email,
		domain.Address{City: "Springfield", Country: "US", State: "IL", Zipcode: "62704"},
		"5551234567", []uuid.UUID{uuid.New()}, total)
	require.NoError(t, err)
	order.CreatedAt = createdAt
	saved, err := repo.Save(context.Background(), order)
	require.NoError(t, err)
	return saved
}

func TestGroupByMonth_BucketsInUTC(t *testing.T) {
	repo := NewRepository()
	march := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	storedOrder(t, repo, "a@example.com", 10, march)
	storedOrder(t, repo, "b@example.com", 20, march.AddDate(0, 0, 10))
	storedOrder(t, repo, "c@example.com", 7, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	buckets, err := repo.GroupByMonth(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	require.Equal(t, "2024-03", buckets[0].Month)
	require.Equal(t, 30.0, buckets[0].TotalSales)
	require.Equal(t, int64(2), buckets[0].TotalOrders)
	require.Equal(t, "2024-04", buckets[1].Month)
}

func TestGroupByMonth_NonUTCCreationTime(t *testing.T) {
	repo := NewRepository()
	// 2024-03-31 23:30 in UTC-5 is already April in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	storedOrder(t, repo, "a@example.com", 10, time.Date(2024, 3, 31, 23, 30, 0, 0, loc))

	buckets, err := repo.GroupByMonth(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	require.Equal(t, "2024-04", buckets[0].Month)
}

func TestGroupByMonth_Empty(t *testing.T) {
	repo := NewRepository()

	buckets, err := repo.GroupByMonth(context.Background())
	require.NoError(t, err)
	require.Empty(t, buckets)
}

func TestSumTotalPrice(t *testing.T) {
	repo := NewRepository()

	sum, err := repo.SumTotalPrice(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0.0, sum)

	now := time.Now().UTC()
	storedOrder(t, repo, "a@example.com", 12.5, now)
	storedOrder(t, repo, "b@example.com", 7.5, now)

	sum, err = repo.SumTotalPrice(context.Background())
	require.NoError(t, err)
	require.Equal(t, 20.0, sum)
}

func TestFindByEmail_OldestFirst(t *testing.T) {
	repo := NewRepository()
	later := storedOrder(t, repo, "same@example.com", 5, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	earlier := storedOrder(t, repo, "same@example.com", 5, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	orders, err := repo.FindByEmail(context.Background(), "same@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, earlier.ID, orders[0].ID)
	require.Equal(t, later.ID, orders[1].ID)
}
