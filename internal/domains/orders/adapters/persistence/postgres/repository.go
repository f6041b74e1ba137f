package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/inkwell-labs/bookstore-api/internal/domains/orders/domain"
	"github.com/inkwell-labs/bookstore-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// orderRecord maps the order aggregate to a relational table. Book
// references are stored as a text array of identities; no foreign key is
// enforced against the books table.
type orderRecord struct {
	ID          uuid.UUID      `gorm:"primaryKey;column:id;type:uuid"`
	Name        string         `gorm:"column:name"`
	Email       string         `gorm:"column:email;index"`
	City        string         `gorm:"column:city"`
	Country     string         `gorm:"column:country"`
	State       string         `gorm:"column:state"`
	Zipcode     string         `gorm:"column:zipcode"`
	Phone       string         `gorm:"column:phone"`
	BookIDs     pq.StringArray `gorm:"column:book_ids;type:text[]"`
	TotalPrice  float64        `gorm:"column:total_price"`
	CreatedAt   time.Time      `gorm:"column:created_at;index"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts a new order. Orders are immutable after creation.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, storeErr(err)
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return record.toDomain()
}

// FindByEmail returns all orders stored under the normalized email,
// oldest first. Emails are lowercased at write time, so an exact match
// on the normalized input is case-insensitive.
func (r *Repository) FindByEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("email = ?", domain.NormalizeEmail(email)).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, storeErr(err)
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		order, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// Count returns the total number of orders.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&orderRecord{}).Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

// SumTotalPrice returns total revenue across all orders, zero when empty.
func (r *Repository) SumTotalPrice(ctx context.Context) (float64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var sum float64
	if err := r.db.WithContext(ctx).Model(&orderRecord{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&sum).Error; err != nil {
		return 0, storeErr(err)
	}
	return sum, nil
}

// GroupByMonth buckets orders by the UTC calendar month of their creation
// time, sorted ascending by month string.
func (r *Repository) GroupByMonth(ctx context.Context) ([]ports.MonthlyBucket, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var buckets []ports.MonthlyBucket
	query := `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM') AS month,
		       COALESCE(SUM(total_price), 0) AS total_sales,
		       COUNT(*) AS total_orders
		FROM orders
		GROUP BY 1
		ORDER BY 1 ASC
	`
	if err := r.db.WithContext(ctx).Raw(query).Scan(&buckets).Error; err != nil {
		return nil, storeErr(err)
	}
	return buckets, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return fmt.Errorf("%w: postgres order repository not configured", ports.ErrStoreUnavailable)
	}
	return nil
}

// storeErr wraps driver failures so callers can distinguish an unreachable
// store from an empty result.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ports.ErrStoreUnavailable, err)
}

func toRecord(order *domain.Order) orderRecord {
	bookIDs := make(pq.StringArray, 0, len(order.BookIDs))
	for _, id := range order.BookIDs {
		bookIDs = append(bookIDs, id.String())
	}
	return orderRecord{
		ID:         order.ID,
		Name:       order.Name,
		Email:      order.Email,
		City:       order.Address.City,
		Country:    order.Address.Country,
		State:      order.Address.State,
		Zipcode:    order.Address.Zipcode,
		Phone:      order.Phone,
		BookIDs:    bookIDs,
		TotalPrice: order.TotalPrice,
		CreatedAt:  order.CreatedAt,
	}
}

func (r orderRecord) toDomain() (*domain.Order, error) {
	bookIDs, err := domain.ParseBookRefs(r.BookIDs)
	if err != nil {
		return nil, fmt.Errorf("corrupt book reference on order %s: %w", r.ID, err)
	}
	return &domain.Order{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
		Address: domain.Address{
			City:    r.City,
			Country: r.Country,
			State:   r.State,
			Zipcode: r.Zipcode,
		},
		Phone:      r.Phone,
		BookIDs:    bookIDs,
		TotalPrice: r.TotalPrice,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}
