package jwt_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapcard/tapcard/pkg/jwt"
)

func newService(t *testing.T) *jwt.Service {
	t.Helper()
	svc, err := jwt.New("test-signing-key-at-least-32-bytes!!")
	require.NoError(t, err)
	return svc
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := jwt.New("")
	assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)
}

func TestService_ParseGenerate(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		claims := jwt.Claims{
			Subject:   "a1b2c3d4-e5f6-4789-8abc-def012345678",
			Email:     "user@example.com",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		}

		token, err := svc.Generate(claims)
		require.NoError(t, err)

		got, err := svc.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, claims.Subject, got.Subject)
		assert.Equal(t, claims.Email, got.Email)
	})

	t.Run("rejects tampered payload", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		token, err := svc.Generate(jwt.Claims{Subject: "user-1"})
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		parts[1] = parts[1][:len(parts[1])-2] + "xx"

		_, err = svc.Parse(strings.Join(parts, "."))
		assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
	})

	t.Run("rejects foreign key", func(t *testing.T) {
		t.Parallel()

		other, err := jwt.New("another-signing-key-32-bytes-long!!!")
		require.NoError(t, err)
		token, err := other.Generate(jwt.Claims{Subject: "user-1"})
		require.NoError(t, err)

		_, err = newService(t).Parse(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		token, err := svc.Generate(jwt.Claims{
			Subject:   "user-1",
			ExpiresAt: time.Now().Add(-time.Minute).Unix(),
		})
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		t.Parallel()

		_, err := newService(t).Parse("not.a-token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}

func TestService_FromRequest(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	token, err := svc.Generate(jwt.Claims{Subject: "user-1", Email: "u@example.com"})
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		claims, err := svc.FromRequest(r)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject)
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()

		_, err := svc.FromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, jwt.ErrMissingToken)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Basic "+token)

		_, err := svc.FromRequest(r)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
