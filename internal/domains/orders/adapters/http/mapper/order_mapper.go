package mapper

import (
	"time"

	catalogmapper "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/adapters/http/mapper"
	"github.com/inkwell-labs/bookstore-api/internal/domains/orders/domain"
	"github.com/inkwell-labs/bookstore-api/internal/domains/orders/ports"
)

// Order is the transport representation of an order.
type Order struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Address    Address   `json:"address"`
	Phone      string    `json:"phone"`
	BookIDs    []string  `json:"productIds"`
	TotalPrice float64   `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Address struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	Zipcode string `json:"zipcode,omitempty"`
}

// ExpandedOrder carries the order plus the catalog records its references
// resolved to. Deleted books are simply absent from the books list.
type ExpandedOrder struct {
	Order
	Books []catalogmapper.Book `json:"books"`
}

// FromDomainOrder converts a domain order into its transport shape.
func FromDomainOrder(order *domain.Order) Order {
	bookIDs := make([]string, 0, len(order.BookIDs))
	for _, id := range order.BookIDs {
		bookIDs = append(bookIDs, id.String())
	}
	return Order{
		ID:    order.ID.String(),
		Name:  order.Name,
		Email: order.Email,
		Address: Address{
			City:    order.Address.City,
			Country: order.Address.Country,
			State:   order.Address.State,
			Zipcode: order.Address.Zipcode,
		},
		Phone:      order.Phone,
		BookIDs:    bookIDs,
		TotalPrice: order.TotalPrice,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

// FromExpandedOrder converts an expanded order, including resolved books.
func FromExpandedOrder(expanded ports.ExpandedOrder) ExpandedOrder {
	return ExpandedOrder{
		Order: FromDomainOrder(expanded.Order),
		Books: catalogmapper.FromDomainBooks(expanded.Books),
	}
}

// FromExpandedOrders converts a slice, always returning a non-nil slice so
// an empty result serializes as [] instead of null.
func FromExpandedOrders(expanded []ports.ExpandedOrder) []ExpandedOrder {
	out := make([]ExpandedOrder, 0, len(expanded))
	for _, e := range expanded {
		out = append(out, FromExpandedOrder(e))
	}
	return out
}
