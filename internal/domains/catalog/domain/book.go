package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle      = errors.New("book title is required")
	ErrNegativePrice   = errors.New("price must be greater or equal to zero")
	ErrMissingNewPrice = errors.New("new price is required")
)

// Book represents the aggregate managed by the catalog bounded context.
type Book struct {
	ID          uuid.UUID
	Title       string
	Description string
	Category    string
	Trending    bool
	OldPrice    *float64
	NewPrice    float64
	CoverImage  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook validates the invariants and builds a new Book aggregate.
func NewBook(title string, newPrice float64) (*Book, error) {
	b := &Book{ID: uuid.New()}
	if err := b.Rename(title); err != nil {
		return nil, err
	}
	if err := b.SetNewPrice(newPrice); err != nil {
		return nil, err
	}
	return b, nil
}

// Rename mutates the book title ensuring the invariant.
func (b *Book) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	b.Title = title
	return nil
}

// SetNewPrice stores the current selling price.
func (b *Book) SetNewPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	b.NewPrice = price
	return nil
}

// SetOldPrice stores the optional pre-discount price; nil clears it.
func (b *Book) SetOldPrice(price *float64) error {
	if price == nil {
		b.OldPrice = nil
		return nil
	}
	if *price < 0 {
		return ErrNegativePrice
	}
	value := *price
	b.OldPrice = &value
	return nil
}

// MarkTrending flips the trending flag.
func (b *Book) MarkTrending(trending bool) {
	b.Trending = trending
}

// Describe replaces the free-text description.
func (b *Book) Describe(description string) {
	b.Description = strings.TrimSpace(description)
}

// Categorize replaces the category label.
func (b *Book) Categorize(category string) {
	b.Category = strings.TrimSpace(category)
}

// AttachCover stores the path of an uploaded cover image.
func (b *Book) AttachCover(path string) {
	b.CoverImage = strings.TrimSpace(path)
}

// Validate re-applies core invariants for persistence.
func (b *Book) Validate() error {
	if err := b.Rename(b.Title); err != nil {
		return err
	}
	if err := b.SetNewPrice(b.NewPrice); err != nil {
		return err
	}
	if b.OldPrice != nil && *b.OldPrice < 0 {
		return ErrNegativePrice
	}
	return nil
}
