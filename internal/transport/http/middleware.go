package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	admindomain "github.com/inkwell-labs/bookstore-api/internal/domains/admin/domain"
	adminports "github.com/inkwell-labs/bookstore-api/internal/domains/admin/ports"
	apierrors "github.com/inkwell-labs/bookstore-api/internal/shared/errors"
)

// ClaimsKey is the gin context key the verified admin identity is stored under.
const ClaimsKey = "adminClaims"

// RequireAdmin checks the bearer token and ensures the admin role.
func RequireAdmin(verifier adminports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			abortProblem(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")
		claims, err := verifier.Verify(c.Request.Context(), raw)
		if err != nil {
			switch {
			case errors.Is(err, adminports.ErrTokenExpired):
				abortProblem(c, apierrors.ErrUnauthorized.WithDetail("token expired"))
			default:
				abortProblem(c, apierrors.ErrUnauthorized.WithDetail("invalid token"))
			}
			return
		}
		if claims.Role != admindomain.RoleAdmin {
			abortProblem(c, apierrors.ErrForbidden.WithDetail("admin role required"))
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func abortProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	c.Header("Content-Type", apierrors.ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Duration of HTTP requests in ms",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware records request counts and latency for Prometheus.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := float64(time.Since(start).Milliseconds())
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		httpRequests.WithLabelValues(c.Request.Method, path,
			http.StatusText(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}
