package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&bookRecord{},
		&orderRecord{},
		&adminUserRecord{},
	)
}

// Book schema mirrors the catalog Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID         uuid.UUID      `gorm:"primaryKey;column:id;type:uuid"`
	Name       string         `gorm:"column:name"`
	Email      string         `gorm:"column:email;index"`
	City       string         `gorm:"column:city"`
	Country    string         `gorm:"column:country"`
	State      string         `gorm:"column:state"`
	Zipcode    string         `gorm:"column:zipcode"`
	Phone      string         `gorm:"column:phone"`
	BookIDs    pq.StringArray `gorm:"column:book_ids;type:text[]"`
	TotalPrice float64        `gorm:"column:total_price"`
	CreatedAt  time.Time      `gorm:"column:created_at;index"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Admin account schema mirrors the admin Postgres adapter.
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
