package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-todo-client/internal/api"
	"github.com/adanyl0v/go-todo-client/internal/config"
	"github.com/adanyl0v/go-todo-client/internal/credstore"
	"github.com/adanyl0v/go-todo-client/internal/models"
)

func newTestAPIClient(baseURL string) *api.Client {
	return api.NewClient(zerolog.Nop(), config.APIConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
}

func loginStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 1, "accessToken": "opaque-token"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// failingStore wraps a working store with an injected Clear failure.
type failingStore struct {
	credstore.Store
	clearErr error
}

func (s failingStore) Clear(context.Context) error { return s.clearErr }

func TestAuthLoginEstablishesSession(t *testing.T) {
	srv := loginStub(t)
	store := credstore.NewMemoryStore()
	auth := NewAuthService(zerolog.Nop(), newTestAPIClient(srv.URL), store)

	err := auth.Login(context.Background(), LoginParams{
		Username: "kminchelle",
		Password: "0lelplR",
	})
	require.NoError(t, err)

	session := auth.Session()
	assert.True(t, session.Active())
	assert.Equal(t, "1", session.UserID)
	assert.Equal(t, "opaque-token", session.Token)
	assert.Empty(t, auth.Message())

	creds, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, credstore.Credentials{Token: "opaque-token", UserID: "1"}, creds)
}

func TestAuthRestoreRoundTrip(t *testing.T) {
	srv := loginStub(t)
	store := credstore.NewMemoryStore()

	auth := NewAuthService(zerolog.Nop(), newTestAPIClient(srv.URL), store)
	require.NoError(t, auth.Login(context.Background(), LoginParams{Username: "u", Password: "p"}))
	want := auth.Session()

	// Fresh instance over the same persisted store.
	restored := NewAuthService(zerolog.Nop(), newTestAPIClient(srv.URL), store)
	restored.Restore(context.Background())

	assert.Equal(t, want, restored.Session())
	assert.True(t, restored.Session().Active())
}

func TestAuthRestorePartialPair(t *testing.T) {
	store := credstore.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), credstore.Credentials{Token: "only-token"}))

	auth := NewAuthService(zerolog.Nop(), nil, store)
	auth.Restore(context.Background())

	assert.False(t, auth.Session().Active())
}

func TestAuthRestoreStoreFailure(t *testing.T) {
	store := loadFailStore{err: errors.New("disk gone")}
	auth := NewAuthService(zerolog.Nop(), nil, store)

	// Never fails the caller, session stays empty.
	auth.Restore(context.Background())
	assert.False(t, auth.Session().Active())
}

type loadFailStore struct{ err error }

func (s loadFailStore) Load(context.Context) (credstore.Credentials, error) {
	return credstore.Credentials{}, s.err
}
func (s loadFailStore) Save(context.Context, credstore.Credentials) error { return nil }
func (s loadFailStore) Clear(context.Context) error                       { return nil }

func TestAuthLoginBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	store := credstore.NewMemoryStore()
	auth := NewAuthService(zerolog.Nop(), newTestAPIClient(srv.URL), store)

	err := auth.Login(context.Background(), LoginParams{Username: "x", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, api.KindInvalidCredentials, api.KindOf(err))
	assert.Equal(t, MsgInvalidCredentials, auth.Message())
	assert.False(t, auth.Session().Active())

	// Credential store untouched.
	creds, loadErr := store.Load(context.Background())
	require.NoError(t, loadErr)
	assert.False(t, creds.Complete())
}

func TestAuthLoginMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	auth := NewAuthService(zerolog.Nop(), newTestAPIClient(srv.URL), credstore.NewMemoryStore())

	err := auth.Login(context.Background(), LoginParams{Username: "u", Password: "p"})
	require.Error(t, err)
	assert.Equal(t, api.KindMalformed, api.KindOf(err))
	assert.Equal(t, MsgLoginFailed, auth.Message())
	assert.False(t, auth.Session().Active())
}

func TestAuthLoginMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"not found", http.StatusNotFound, MsgServerNotFound},
		{"server error", http.StatusInternalServerError, MsgServerError},
		{"unexpected status", http.StatusTeapot, MsgUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			auth := NewAuthService(zerolog.Nop(), newTestAPIClient(srv.URL), credstore.NewMemoryStore())
			err := auth.Login(context.Background(), LoginParams{Username: "u", Password: "p"})
			require.Error(t, err)
			assert.Equal(t, tt.want, auth.Message())
		})
	}
}

func TestAuthLoginReplacesSession(t *testing.T) {
	srv := loginStub(t)
	store := credstore.NewMemoryStore()
	auth := NewAuthService(zerolog.Nop(), newTestAPIClient(srv.URL), store)

	require.NoError(t, auth.Login(context.Background(), LoginParams{Username: "a", Password: "p"}))
	require.NoError(t, auth.Login(context.Background(), LoginParams{Username: "b", Password: "p"}))
	assert.True(t, auth.Session().Active())
}

func TestAuthLogout(t *testing.T) {
	srv := loginStub(t)
	store := credstore.NewMemoryStore()
	auth := NewAuthService(zerolog.Nop(), newTestAPIClient(srv.URL), store)
	require.NoError(t, auth.Login(context.Background(), LoginParams{Username: "u", Password: "p"}))

	require.NoError(t, auth.Logout(context.Background()))
	assert.False(t, auth.Session().Active())

	creds, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, creds.Complete())
}

func TestAuthLogoutStoreFailureStillClearsSession(t *testing.T) {
	srv := loginStub(t)
	store := failingStore{
		Store:    credstore.NewMemoryStore(),
		clearErr: errors.New("keychain unavailable"),
	}
	auth := NewAuthService(zerolog.Nop(), newTestAPIClient(srv.URL), store)
	require.NoError(t, auth.Login(context.Background(), LoginParams{Username: "u", Password: "p"}))

	err := auth.Logout(context.Background())
	require.Error(t, err)
	assert.False(t, auth.Session().Active())
	assert.Equal(t, MsgLogoutFailed, auth.Message())
}

func TestAuthSubscribe(t *testing.T) {
	srv := loginStub(t)
	auth := NewAuthService(zerolog.Nop(), newTestAPIClient(srv.URL), credstore.NewMemoryStore())

	var published []models.Session
	unsubscribe := auth.Subscribe(func(s models.Session) {
		published = append(published, s)
	})

	require.NoError(t, auth.Login(context.Background(), LoginParams{Username: "u", Password: "p"}))
	require.NoError(t, auth.Logout(context.Background()))

	require.Len(t, published, 2)
	assert.True(t, published[0].Active())
	assert.False(t, published[1].Active())

	unsubscribe()
	require.NoError(t, auth.Login(context.Background(), LoginParams{Username: "u", Password: "p"}))
	assert.Len(t, published, 2)
}
