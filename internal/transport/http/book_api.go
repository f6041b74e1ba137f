package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogmapper "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/domain"
	catalogports "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/ports"
	"github.com/inkwell-labs/bookstore-api/internal/platform/uploads"
	apierrors "github.com/inkwell-labs/bookstore-api/internal/shared/errors"
)

// BookAPI wires HTTP transport with the catalog bounded context service.
type BookAPI struct {
	service catalogports.Service
	covers  *uploads.Storage
}

// NewBookAPI creates a BookAPI backed by the provided service. The cover
// storage may be nil, in which case uploaded images are rejected.
func NewBookAPI(service catalogports.Service, covers *uploads.Storage) BookAPI {
	return BookAPI{service: service, covers: covers}
}

// NewPrice binds as a pointer so an omitted field is distinguishable
// from an explicit zero price.
type bookPayload struct {
	Title       string   `json:"title" form:"title"`
	Description string   `json:"description" form:"description"`
	Category    string   `json:"category" form:"category"`
	Trending    bool     `json:"trending" form:"trending"`
	OldPrice    *float64 `json:"oldPrice" form:"oldPrice"`
	NewPrice    *float64 `json:"newPrice" form:"newPrice"`
	CoverImage  string   `json:"coverImage" form:"coverImage"`
}

type bookPatchPayload struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Trending    *bool    `json:"trending"`
	OldPrice    *float64 `json:"oldPrice"`
	NewPrice    *float64 `json:"newPrice"`
	CoverImage  *string  `json:"coverImage"`
}

// Post /api/books/create-book
// Add a new book to the catalog. Accepts JSON or multipart form with an
// optional cover image file.
func (api *BookAPI) CreateBook(c *gin.Context) {
	payload, ok := api.bindBookPayload(c)
	if !ok {
		return
	}
	if payload.NewPrice == nil {
		respondCatalogError(c, catalogdomain.ErrMissingNewPrice)
		return
	}
	book, err := catalogdomain.NewBook(payload.Title, *payload.NewPrice)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	book.Description = payload.Description
	book.Category = payload.Category
	book.Trending = payload.Trending
	book.OldPrice = payload.OldPrice
	book.CoverImage = payload.CoverImage

	saved, err := api.service.CreateBook(c.Request.Context(), book)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainBook(saved))
}

// Get /api/books
// List all books, newest first
func (api *BookAPI) ListBooks(c *gin.Context) {
	books, err := api.service.ListBooks(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainBooks(books))
}

// Get /api/books/:id
// Find book by ID
func (api *BookAPI) GetBook(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}
	book, err := api.service.GetBook(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainBook(book))
}

// Put /api/books/edit/:id
// Partially update an existing book; absent fields keep their value
func (api *BookAPI) UpdateBook(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}
	var payload bookPatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	patch := catalogports.BookPatch{
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Trending:    payload.Trending,
		OldPrice:    payload.OldPrice,
		NewPrice:    payload.NewPrice,
		CoverImage:  payload.CoverImage,
	}
	updated, err := api.service.UpdateBook(c.Request.Context(), id, patch)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainBook(updated))
}

// Delete /api/books/:id
// Deletes a book and returns the removed record
func (api *BookAPI) DeleteBook(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}
	deleted, err := api.service.DeleteBook(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainBook(deleted))
}

// bindBookPayload reads the creation payload from JSON or a multipart form.
// A multipart "coverImage" file is stored and its generated name recorded.
func (api *BookAPI) bindBookPayload(c *gin.Context) (bookPayload, bool) {
	var payload bookPayload
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return payload, false
		}
		return payload, true
	}

	payload.Title = c.PostForm("title")
	payload.Description = c.PostForm("description")
	payload.Category = c.PostForm("category")
	payload.Trending = isTruthy(c.PostForm("trending"))
	if raw := strings.TrimSpace(c.PostForm("oldPrice")); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondProblem(c, problemValidation("oldPrice must be a number"))
			return payload, false
		}
		payload.OldPrice = &value
	}
	if raw := strings.TrimSpace(c.PostForm("newPrice")); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondProblem(c, problemValidation("newPrice must be a number"))
			return payload, false
		}
		payload.NewPrice = &value
	}
	if file, err := c.FormFile("coverImage"); err == nil && file != nil {
		if api.covers == nil {
			respondProblem(c, problemValidation("cover image uploads are not enabled"))
			return payload, false
		}
		name, err := api.covers.SaveCover(file)
		if err != nil {
			// Storage errors carry filesystem detail; log it, respond generically.
			slog.ErrorContext(c.Request.Context(), "failed to store cover image", slog.String("error", err.Error()))
			respondProblem(c, apierrors.ErrInternal)
			return payload, false
		}
		payload.CoverImage = name
	}
	return payload, true
}

func parseBookID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondProblem(c, problemValidation("book id must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
