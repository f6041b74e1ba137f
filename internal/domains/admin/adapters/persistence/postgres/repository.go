package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-labs/bookstore-api/internal/domains/admin/domain"
	"github.com/inkwell-labs/bookstore-api/internal/domains/admin/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists admin accounts in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&adminUserRecord{})
	}
	return repo
}

type adminUserRecord struct {
	ID           uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Username     string    `gorm:"column:username;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Salt         string    `gorm:"column:salt"`
	Role         string    `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (adminUserRecord) TableName() string { return "admin_users" }

// Save upserts on username so reseeding an account rotates its hash.
func (r *Repository) Save(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("admin user is nil")
	}
	record := adminUserRecord{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Salt:         user.Salt,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "username"}},
		DoUpdates: clause.Assignments(map[string]any{
			"password_hash": record.PasswordHash,
			"salt":          record.Salt,
			"role":          record.Role,
			"updated_at":    gorm.Expr("NOW()"),
		}),
	}).Create(&record).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return r.GetByUsername(ctx, record.Username)
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record adminUserRecord
	if err := r.db.WithContext(ctx).First(&record, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return &domain.AdminUser{
		ID:           record.ID,
		Username:     record.Username,
		PasswordHash: record.PasswordHash,
		Salt:         record.Salt,
		Role:         record.Role,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return fmt.Errorf("%w: postgres admin repository not configured", ports.ErrStoreUnavailable)
	}
	return nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ports.ErrStoreUnavailable, err)
}
