package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"

	"github.com/inkwell-labs/bookstore-api/internal/domains/admin/domain"
	"github.com/inkwell-labs/bookstore-api/internal/domains/admin/ports"
)

// DefaultTokenTTL matches the dashboard's session length.
const DefaultTokenTTL = time.Hour

// Service authenticates admin accounts and issues HS256 bearer tokens.
type Service struct {
	repo     ports.Repository
	secret   []byte
	tokenTTL time.Duration
	limiter  *rate.Limiter
	now      func() time.Time
}

type Option func(*Service)

// WithTokenTTL overrides the issued token lifetime.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithLoginLimiter throttles authentication attempts.
func WithLoginLimiter(limiter *rate.Limiter) Option {
	return func(s *Service) {
		s.limiter = limiter
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, secret string, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		secret:   []byte(secret),
		tokenTTL: DefaultTokenTTL,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 5),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register creates an admin account, hashing the password before it is
// stored. Used by the seeding command rather than the HTTP surface.
func (s *Service) Register(ctx context.Context, username, password string) (*domain.AdminUser, error) {
	user, err := domain.NewAdminUser(username, password)
	if err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, user)
}

// Authenticate checks the credentials and issues a signed session token.
// Unknown usernames and wrong passwords are indistinguishable to callers.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*ports.Session, error) {
	if s.limiter != nil && !s.limiter.Allow() {
		return nil, ports.ErrTooManyAttempts
	}
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ports.ErrInvalidCredentials
		}
		return nil, err
	}
	ok, err := user.CheckPassword(password)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, ports.ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}
	return &ports.Session{Token: signed, Username: user.Username, Role: user.Role}, nil
}

// Verify parses and validates a bearer token issued by Authenticate.
func (s *Service) Verify(_ context.Context, raw string) (*ports.Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ports.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ports.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ports.ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ports.ErrInvalidToken
	}
	out := &ports.Claims{}
	if sub, ok := claims["sub"].(string); ok {
		out.UserID = sub
	}
	if username, ok := claims["username"].(string); ok {
		out.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = role
	}
	return out, nil
}

var _ ports.Service = (*Service)(nil)
