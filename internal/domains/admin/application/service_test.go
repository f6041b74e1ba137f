package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/inkwell-labs/bookstore-api/internal/domains/admin/adapters/memory"
	"github.com/inkwell-labs/bookstore-api/internal/domains/admin/domain"
	"github.com/inkwell-labs/bookstore-api/internal/domains/admin/ports"
)

const testSecret = "test-secret"

func seededService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	svc := NewService(memory.NewRepository(), testSecret, opts...)
	_, err := svc.Register(context.Background(), "admin", "correct horse battery staple")
	require.NoError(t, err)
	return svc
}

func TestAuthenticate_IssuesVerifiableToken(t *testing.T) {
	svc := seededService(t)

	session, err := svc.Authenticate(context.Background(), "admin", "correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.Equal(t, domain.RoleAdmin, session.Role)

	claims, err := svc.Verify(context.Background(), session.Token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, domain.RoleAdmin, claims.Role)
	require.NotEmpty(t, claims.UserID)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc := seededService(t)

	session, err := svc.Authenticate(context.Background(), "admin", "wrong password")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
	require.Nil(t, session)
}

func TestAuthenticate_UnknownUsername(t *testing.T) {
	svc := seededService(t)

	_, err := svc.Authenticate(context.Background(), "nobody", "whatever")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestVerify_ExpiredToken(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := seededService(t, WithClock(func() time.Time { return now }))

	session, err := svc.Authenticate(context.Background(), "admin", "correct horse battery staple")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = svc.Verify(context.Background(), session.Token)
	require.ErrorIs(t, err, ports.ErrTokenExpired)
}

func TestVerify_TamperedToken(t *testing.T) {
	svc := seededService(t)

	session, err := svc.Authenticate(context.Background(), "admin", "correct horse battery staple")
	require.NoError(t, err)

	other := NewService(memory.NewRepository(), "a different secret")
	_, err = other.Verify(context.Background(), session.Token)
	require.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestAuthenticate_RateLimited(t *testing.T) {
	svc := seededService(t, WithLoginLimiter(rate.NewLimiter(rate.Every(time.Hour), 1)))

	_, err := svc.Authenticate(context.Background(), "admin", "correct horse battery staple")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "admin", "correct horse battery staple")
	require.ErrorIs(t, err, ports.ErrTooManyAttempts)
}

func TestRegister_HashesPassword(t *testing.T) {
	svc := NewService(memory.NewRepository(), testSecret)

	user, err := svc.Register(context.Background(), "admin", "plaintext")
	require.NoError(t, err)
	require.NotEqual(t, "plaintext", user.PasswordHash)
	require.NotEmpty(t, user.Salt)

	ok, err := user.CheckPassword("plaintext")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegister_EmptyUsername(t *testing.T) {
	svc := NewService(memory.NewRepository(), testSecret)

	_, err := svc.Register(context.Background(), "  ", "password")
	require.ErrorIs(t, err, domain.ErrEmptyUsername)
}
