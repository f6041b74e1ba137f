package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/bookstore-api/internal/domains/orders/domain"
	"github.com/inkwell-labs/bookstore-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[uuid.UUID]*domain.Order{}}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	now := time.Now().UTC()
	if existing, ok := r.orders[clone.ID]; ok {
		clone.CreatedAt = existing.CreatedAt
	} else if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.orders[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *Repository) FindByEmail(_ context.Context, email string) ([]*domain.Order, error) {
	normalized := domain.NormalizeEmail(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matches []*domain.Order
	for _, order := range r.orders {
		if order.Email == normalized {
			clone := *order
			matches = append(matches, &clone)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})
	return matches, nil
}

func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

func (r *Repository) SumTotalPrice(_ context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum float64
	for _, order := range r.orders {
		sum += order.TotalPrice
	}
	return sum, nil
}

// GroupByMonth buckets orders by the UTC calendar month of their creation
// time, matching the SQL adapter's "YYYY-MM" format.
func (r *Repository) GroupByMonth(_ context.Context) ([]ports.MonthlyBucket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byMonth := map[string]*ports.MonthlyBucket{}
	for _, order := range r.orders {
		month := order.CreatedAt.UTC().Format("2006-01")
		bucket, ok := byMonth[month]
		if !ok {
			bucket = &ports.MonthlyBucket{Month: month}
			byMonth[month] = bucket
		}
		bucket.TotalSales += order.TotalPrice
		bucket.TotalOrders++
	}
	buckets := make([]ports.MonthlyBucket, 0, len(byMonth))
	for _, bucket := range byMonth {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month < buckets[j].Month
	})
	return buckets, nil
}
