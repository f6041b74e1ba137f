package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	adminports "github.com/inkwell-labs/bookstore-api/internal/domains/admin/ports"
	catalogapp "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/application"
	catalogdomain "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/domain"
	catalogports "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/ports"
	ordersapp "github.com/inkwell-labs/bookstore-api/internal/domains/orders/application"
	ordersdomain "github.com/inkwell-labs/bookstore-api/internal/domains/orders/domain"
	ordersports "github.com/inkwell-labs/bookstore-api/internal/domains/orders/ports"
	apierrors "github.com/inkwell-labs/bookstore-api/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError converts plain errors into RFC 7807 responses at a fixed status.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

func problemValidation(detail string) apierrors.ProblemDetail {
	return apierrors.ErrValidation.WithDetail(detail)
}

func notFoundOrders(email string) apierrors.ProblemDetail {
	return apierrors.NewNotFoundProblem("orders", email)
}

// Domain sentinels reach the transport layer unwrapped when the payload is
// rejected before the application service is invoked.
func isCatalogDomainError(err error) bool {
	return errors.Is(err, catalogdomain.ErrEmptyTitle) ||
		errors.Is(err, catalogdomain.ErrNegativePrice) ||
		errors.Is(err, catalogdomain.ErrMissingNewPrice)
}

func isOrderDomainError(err error) bool {
	return errors.Is(err, ordersdomain.ErrEmptyName) ||
		errors.Is(err, ordersdomain.ErrInvalidEmail) ||
		errors.Is(err, ordersdomain.ErrIncompleteAddress) ||
		errors.Is(err, ordersdomain.ErrInvalidPhone) ||
		errors.Is(err, ordersdomain.ErrNoBookRefs) ||
		errors.Is(err, ordersdomain.ErrInvalidBookRef) ||
		errors.Is(err, ordersdomain.ErrInvalidTotal)
}

// respondCatalogError maps catalog service errors onto the problem taxonomy.
func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail("book not found"))
	case errors.Is(err, catalogapp.ErrInvalidInput), isCatalogDomainError(err):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, catalogports.ErrStoreUnavailable):
		respondProblem(c, apierrors.ErrStoreUnavailable)
	default:
		respondProblem(c, apierrors.ErrInternal)
	}
}

// respondOrderError maps orders service errors onto the problem taxonomy.
func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail("order not found"))
	case errors.Is(err, ordersapp.ErrInvalidInput), isOrderDomainError(err):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, ordersports.ErrStoreUnavailable):
		respondProblem(c, apierrors.ErrStoreUnavailable)
	default:
		respondProblem(c, apierrors.ErrInternal)
	}
}

// respondStatsError maps reporting failures onto the problem taxonomy. The
// snapshot spans both stores, so either context's store error applies.
func respondStatsError(c *gin.Context, err error) {
	if errors.Is(err, ordersports.ErrStoreUnavailable) || errors.Is(err, catalogports.ErrStoreUnavailable) {
		respondProblem(c, apierrors.ErrStoreUnavailable)
		return
	}
	respondProblem(c, apierrors.ErrInternal)
}

// respondAuthError maps authentication failures onto the problem taxonomy.
func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, adminports.ErrInvalidCredentials):
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("invalid username or password"))
	case errors.Is(err, adminports.ErrTooManyAttempts):
		respondProblem(c, apierrors.ProblemDetail{
			Type:   apierrors.TypeBadRequest,
			Title:  "Too Many Requests",
			Status: http.StatusTooManyRequests,
			Detail: "too many login attempts, slow down",
		})
	case errors.Is(err, adminports.ErrStoreUnavailable):
		respondProblem(c, apierrors.ErrStoreUnavailable)
	default:
		respondProblem(c, apierrors.ErrInternal)
	}
}
