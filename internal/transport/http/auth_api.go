package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adminports "github.com/inkwell-labs/bookstore-api/internal/domains/admin/ports"
)

// AuthAPI handles admin authentication.
type AuthAPI struct {
	service adminports.Service
}

// NewAuthAPI creates an AuthAPI backed by the provided service.
func NewAuthAPI(service adminports.Service) AuthAPI {
	return AuthAPI{service: service}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Post /api/auth/admin
// Authenticate an admin account and issue a session token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session, err := api.service.Authenticate(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Authentication successful",
		"token":   session.Token,
		"user": gin.H{
			"username": session.Username,
			"role":     session.Role,
		},
	})
}
