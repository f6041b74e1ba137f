package mapper

import (
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/domain"
)

// Book represents the transport-layer shape of a catalog record.
type Book struct {
	ID          uuid.UUID `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Trending    bool      `json:"trending"`
	OldPrice    *float64  `json:"oldPrice,omitempty"`
	NewPrice    float64   `json:"newPrice"`
	CoverImage  string    `json:"coverImage,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromDomainBook converts a domain book to the transport representation.
func FromDomainBook(book *catalogdomain.Book) Book {
	if book == nil {
		return Book{}
	}
	return Book{
		ID:          book.ID,
		Title:       book.Title,
		Description: book.Description,
		Category:    book.Category,
		Trending:    book.Trending,
		OldPrice:    book.OldPrice,
		NewPrice:    book.NewPrice,
		CoverImage:  book.CoverImage,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
}

// FromDomainBooks converts a list of domain books.
func FromDomainBooks(books []*catalogdomain.Book) []Book {
	result := make([]Book, 0, len(books))
	for _, book := range books {
		result = append(result, FromDomainBook(book))
	}
	return result
}
