package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName         = errors.New("customer name is required")
	ErrInvalidEmail      = errors.New("a valid email address is required")
	ErrIncompleteAddress = errors.New("address requires city, country, state, and zipcode")
	ErrInvalidPhone      = errors.New("phone number must be exactly 10 digits")
	ErrNoBookRefs        = errors.New("at least one book reference is required")
	ErrInvalidBookRef    = errors.New("book reference is not a valid identity")
	ErrInvalidTotal      = errors.New("total price must be greater than zero")
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// Address is the shipping destination attached to an order.
type Address struct {
	City    string
	Country string
	State   string
	Zipcode string
}

func (a Address) validate() error {
	if strings.TrimSpace(a.City) == "" ||
		strings.TrimSpace(a.Country) == "" ||
		strings.TrimSpace(a.State) == "" ||
		strings.TrimSpace(a.Zipcode) == "" {
		return ErrIncompleteAddress
	}
	return nil
}

// Order represents the aggregate managed by the orders bounded context.
// Orders are immutable once created; books are referenced by identity only.
type Order struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Address    Address
	Phone      string
	BookIDs    []uuid.UUID
	TotalPrice float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrder validates the invariants and builds a new Order aggregate.
// The email is normalized to lowercase before storage.
func NewOrder(name, email string, address Address, phone string, bookIDs []uuid.UUID, totalPrice float64) (*Order, error) {
	o := &Order{ID: uuid.New(), Address: address}
	if err := o.setName(name); err != nil {
		return nil, err
	}
	if err := o.setEmail(email); err != nil {
		return nil, err
	}
	if err := address.validate(); err != nil {
		return nil, err
	}
	if err := o.setPhone(phone); err != nil {
		return nil, err
	}
	if err := o.setBookRefs(bookIDs); err != nil {
		return nil, err
	}
	if err := o.setTotalPrice(totalPrice); err != nil {
		return nil, err
	}
	return o, nil
}

// ParseBookRefs converts raw identifiers into book references, rejecting
// anything that is not a syntactically valid identity.
func ParseBookRefs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, ErrNoBookRefs
	}
	refs := make([]uuid.UUID, 0, len(raw))
	for _, candidate := range raw {
		id, err := uuid.Parse(strings.TrimSpace(candidate))
		if err != nil {
			return nil, ErrInvalidBookRef
		}
		refs = append(refs, id)
	}
	return refs, nil
}

// NormalizeEmail lowercases and trims an email for case-insensitive matching.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (o *Order) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	o.Name = name
	return nil
}

func (o *Order) setEmail(email string) error {
	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	o.Email = email
	return nil
}

func (o *Order) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	o.Phone = phone
	return nil
}

func (o *Order) setBookRefs(bookIDs []uuid.UUID) error {
	if len(bookIDs) == 0 {
		return ErrNoBookRefs
	}
	for _, id := range bookIDs {
		if id == uuid.Nil {
			return ErrInvalidBookRef
		}
	}
	o.BookIDs = append([]uuid.UUID{}, bookIDs...)
	return nil
}

func (o *Order) setTotalPrice(total float64) error {
	if total <= 0 {
		return ErrInvalidTotal
	}
	o.TotalPrice = total
	return nil
}

// Validate re-applies core invariants for persistence.
func (o *Order) Validate() error {
	if err := o.setName(o.Name); err != nil {
		return err
	}
	if err := o.setEmail(o.Email); err != nil {
		return err
	}
	if err := o.Address.validate(); err != nil {
		return err
	}
	if err := o.setPhone(o.Phone); err != nil {
		return err
	}
	if err := o.setBookRefs(o.BookIDs); err != nil {
		return err
	}
	return o.setTotalPrice(o.TotalPrice)
}
