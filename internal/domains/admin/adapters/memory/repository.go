package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/bookstore-api/internal/domains/admin/domain"
	"github.com/inkwell-labs/bookstore-api/internal/domains/admin/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory admin account store.
type Repository struct {
	mu    sync.RWMutex
	users map[string]*domain.AdminUser
}

func NewRepository() *Repository {
	return &Repository{users: map[string]*domain.AdminUser{}}
}

func (r *Repository) Save(_ context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
	if user == nil {
		return nil, errors.New("admin user is nil")
	}
	clone := *user
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	now := time.Now().UTC()
	if existing, ok := r.users[clone.Username]; ok {
		clone.CreatedAt = existing.CreatedAt
	} else if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.users[clone.Username] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}
