package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	builder := jwt.NewBuilder().Subject("uploader")
	if !exp.IsZero() {
		builder = builder.Expiration(exp)
	}
	token, err := builder.Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte("test-secret")))
	require.NoError(t, err)
	return string(signed)
}

func TestStaticProvider_AccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("blank token means no session", func(t *testing.T) {
		_, err := NewStaticProvider("   ").AccessToken(ctx)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("opaque tokens pass through", func(t *testing.T) {
		got, err := NewStaticProvider("not-a-jwt").AccessToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "not-a-jwt", got)
	})

	t.Run("unexpired JWT passes through", func(t *testing.T) {
		token := signedToken(t, time.Now().Add(time.Hour))

		got, err := NewStaticProvider(token).AccessToken(ctx)

		require.NoError(t, err)
		assert.Equal(t, token, got)
	})

	t.Run("JWT without exp passes through", func(t *testing.T) {
		token := signedToken(t, time.Time{})

		got, err := NewStaticProvider(token).AccessToken(ctx)

		require.NoError(t, err)
		assert.Equal(t, token, got)
	})

	t.Run("expired JWT means no session", func(t *testing.T) {
		token := signedToken(t, time.Now().Add(-time.Hour))

		_, err := NewStaticProvider(token).AccessToken(ctx)

		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("exactly at expiry means no session", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		token := signedToken(t, exp)

		provider := NewStaticProvider(token)
		provider.now = func() time.Time { return exp }

		_, err := provider.AccessToken(ctx)

		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestRememberStore(t *testing.T) {
	t.Run("load before any save returns the zero value", func(t *testing.T) {
		store := NewRememberStore(filepath.Join(t.TempDir(), "nested", "session.json"))

		login, err := store.Load()

		require.NoError(t, err)
		assert.Equal(t, RememberedLogin{}, login)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		store := NewRememberStore(filepath.Join(t.TempDir(), "nested", "session.json"))

		require.NoError(t, store.Save(RememberedLogin{Remember: true, Username: "maria"}))

		login, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, RememberedLogin{Remember: true, Username: "maria"}, login)
	})

	t.Run("saving without remember clears the store", func(t *testing.T) {
		store := NewRememberStore(filepath.Join(t.TempDir(), "session.json"))

		require.NoError(t, store.Save(RememberedLogin{Remember: true, Username: "maria"}))
		require.NoError(t, store.Save(RememberedLogin{Remember: false, Username: "maria"}))

		login, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, RememberedLogin{}, login)
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		store := NewRememberStore(filepath.Join(t.TempDir(), "session.json"))

		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())
	})
}
