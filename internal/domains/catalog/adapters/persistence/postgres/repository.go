package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-labs/bookstore-api/internal/domains/catalog/domain"
	"github.com/inkwell-labs/bookstore-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists books in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&bookRecord{})
	}
	return repo
}

// bookRecord maps the book aggregate to a relational table.
type bookRecord struct {
	ID          uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	Category    string    `gorm:"column:category;index"`
	Trending    bool      `gorm:"column:trending;index"`
	OldPrice    *float64  `gorm:"column:old_price"`
	NewPrice    float64   `gorm:"column:new_price"`
	CoverImage  string    `gorm:"column:cover_image"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (bookRecord) TableName() string { return "books" }

// Save inserts or updates a book.
func (r *Repository) Save(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errors.New("book is nil")
	}
	record := toRecord(book)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"title":       record.Title,
				"description": record.Description,
				"category":    record.Category,
				"trending":    record.Trending,
				"old_price":   record.OldPrice,
				"new_price":   record.NewPrice,
				"cover_image": record.CoverImage,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, storeErr(err)
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a book by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record bookRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return record.toDomain(), nil
}

// Delete removes a book by identifier.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&bookRecord{}, "id = ?", id)
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all books, newest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []bookRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, storeErr(err)
	}
	books := make([]*domain.Book, 0, len(records))
	for i := range records {
		books = append(books, records[i].toDomain())
	}
	return books, nil
}

// Count returns the catalog size.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&bookRecord{}).Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

// CountTrending counts books flagged as trending.
func (r *Repository) CountTrending(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&bookRecord{}).Where("trending = ?", true).Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return fmt.Errorf("%w: postgres book repository not configured", ports.ErrStoreUnavailable)
	}
	return nil
}

// storeErr wraps driver failures so callers can distinguish an unreachable
// store from an empty result.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ports.ErrStoreUnavailable, err)
}

func toRecord(book *domain.Book) bookRecord {
	return bookRecord{
		ID:          book.ID,
		Title:       book.Title,
		Description: book.Description,
		Category:    book.Category,
		Trending:    book.Trending,
		OldPrice:    book.OldPrice,
		NewPrice:    book.NewPrice,
		CoverImage:  book.CoverImage,
		CreatedAt:   book.CreatedAt,
	}
}

func (r bookRecord) toDomain() *domain.Book {
	return &domain.Book{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Trending:    r.Trending,
		OldPrice:    r.OldPrice,
		NewPrice:    r.NewPrice,
		CoverImage:  r.CoverImage,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
