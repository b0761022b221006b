package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
	"github.com/Rohit-Goswami064/Divine-Darshan/client"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...client.Option) *client.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.New(client.StaticConfig{APIURL: server.URL + "/api"}, opts...)
	require.NoError(t, err)
	return c
}

func TestErrorMessageUsesBackendMessage(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	c := newTestClient(t, r)
	_, err := c.Login(context.Background(), client.LoginRequest{Identifier: "a@b.co", Password: "secret1"})
	require.Error(t, err)

	var httpErr *client.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "Invalid credentials", httpErr.Message)
	assert.Equal(t, goerrors.CategoryAuth, httpErr.Category())
	assert.Equal(t, "Invalid credentials", client.ErrorMessage(err))
}

func TestErrorMessageFallsBackToStatusLine(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/temples", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := newTestClient(t, r)
	_, err := c.ListTemples(context.Background())
	require.Error(t, err)
	assert.Equal(t, "500 Internal Server Error", client.ErrorMessage(err))
}

func TestErrorMessageIgnoresNonJSONBody(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/temples/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html>not found</html>"))
	})

	c := newTestClient(t, r)
	_, err := c.GetTemple(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "404 Not Found", client.ErrorMessage(err))

	var httpErr *client.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, goerrors.CategoryNotFound, httpErr.Category())
}

func TestErrorMessageNoResponse(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := client.New(client.StaticConfig{APIURL: url + "/api"})
	require.NoError(t, err)

	_, err = c.ListServices(context.Background())
	require.Error(t, err)

	var noResp *client.NoResponseError
	assert.True(t, errors.As(err, &noResp))
	assert.True(t, errors.Is(err, darshan.ErrNoResponse))
	assert.Equal(t, client.NoResponseMessage, client.ErrorMessage(err))
}

func TestErrorMessagePlainAndEmpty(t *testing.T) {
	assert.Equal(t, "boom", client.ErrorMessage(errors.New("boom")))
	assert.Equal(t, client.GenericErrorMessage, client.ErrorMessage(errors.New("   ")))
	assert.Equal(t, client.GenericErrorMessage, client.ErrorMessage(nil))
}

func TestErrorMessageDropsCategoryPrefix(t *testing.T) {
	err := goerrors.New("session expired", goerrors.CategoryAuth).WithTextCode("SESSION_EXPIRED")
	require.Contains(t, err.Error(), "SESSION_EXPIRED")

	assert.Equal(t, "session expired", client.ErrorMessage(err))
	assert.Equal(t, "disk full",
		client.ErrorMessage(darshan.Wrap(errors.New("disk full"), darshan.ErrTokenPersist)))
}

func TestErrorMessageKeepsRequestSetupCause(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/temples", func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})

	c := newTestClient(t, r, client.WithDecorators(func(*http.Request) error {
		return errors.New("boom")
	}))

	_, err := c.ListTemples(context.Background())
	require.Error(t, err)
	assert.True(t, darshan.HasTextCode(err, darshan.TextCodeRequestSetup))
	assert.Equal(t, "boom", client.ErrorMessage(err))
}

func TestErrorMessageUnwrapsNestedCause(t *testing.T) {
	inner := darshan.Wrap(errors.New("disk unavailable"), darshan.ErrStorage)
	outer := darshan.Wrap(inner, darshan.ErrSessionRestore)

	assert.True(t, darshan.HasTextCode(outer, darshan.TextCodeSessionRestore))
	assert.Equal(t, "disk unavailable", client.ErrorMessage(outer))
	assert.Equal(t, "unable to restore session", client.ErrorMessage(darshan.ErrSessionRestore))
}

type panicError struct{}

func (*panicError) Error() string { panic("typed nil") }

func TestErrorMessageNeverPanics(t *testing.T) {
	var typed *panicError
	assert.NotPanics(t, func() {
		assert.Equal(t, client.GenericErrorMessage, client.ErrorMessage(typed))
	})
}

func TestHTTPErrorCategories(t *testing.T) {
	tests := map[int]goerrors.Category{
		http.StatusBadRequest:          goerrors.CategoryBadInput,
		http.StatusUnprocessableEntity: goerrors.CategoryBadInput,
		http.StatusUnauthorized:        goerrors.CategoryAuth,
		http.StatusForbidden:           goerrors.CategoryAuthz,
		http.StatusNotFound:            goerrors.CategoryNotFound,
		http.StatusConflict:            goerrors.CategoryConflict,
		http.StatusTooManyRequests:     goerrors.CategoryRateLimit,
		http.StatusBadGateway:          goerrors.CategoryOperation,
	}

	for status, want := range tests {
		err := &client.HTTPError{Method: http.MethodGet, Path: "/x", Status: status}
		assert.Equal(t, want, err.Category(), "status %d", status)

		rich := err.Rich()
		assert.Equal(t, want, rich.Category)
		assert.Equal(t, status, rich.Metadata["status"])
	}
}
