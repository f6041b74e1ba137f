package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ordersmapper "github.com/inkwell-labs/bookstore-api/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/inkwell-labs/bookstore-api/internal/domains/orders/domain"
	ordersports "github.com/inkwell-labs/bookstore-api/internal/domains/orders/ports"
)

// OrderAPI wires HTTP transport with the orders bounded context service.
type OrderAPI struct {
	service ordersports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service) OrderAPI {
	return OrderAPI{service: service}
}

type orderPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address struct {
		City    string `json:"city"`
		Country string `json:"country"`
		State   string `json:"state"`
		Zipcode string `json:"zipcode"`
	} `json:"address"`
	Phone      string   `json:"phone"`
	BookIDs    []string `json:"productIds"`
	TotalPrice float64  `json:"totalPrice"`
}

// Post /api/orders
// Place a new order
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload orderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	bookIDs, err := ordersdomain.ParseBookRefs(payload.BookIDs)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	order, err := ordersdomain.NewOrder(
		payload.Name,
		payload.Email,
		ordersdomain.Address{
			City:    payload.Address.City,
			Country: payload.Address.Country,
			State:   payload.Address.State,
			Zipcode: payload.Address.Zipcode,
		},
		payload.Phone,
		bookIDs,
		payload.TotalPrice,
	)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	saved, err := api.service.CreateOrder(c.Request.Context(), order)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordersmapper.FromDomainOrder(saved))
}

// Get /api/orders?email=
// Orders for an email, oldest first, book references expanded.
// No matching orders responds 404 rather than an empty list.
func (api *OrderAPI) FindOrdersByEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		respondProblem(c, problemValidation("email query parameter is required"))
		return
	}
	expanded, err := api.service.FindOrdersByEmail(c.Request.Context(), email)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	if len(expanded) == 0 {
		respondProblem(c, notFoundOrders(email))
		return
	}
	c.JSON(http.StatusOK, ordersmapper.FromExpandedOrders(expanded))
}
