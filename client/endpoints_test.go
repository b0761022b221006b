package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
	"github.com/Rohit-Goswami064/Divine-Darshan/client"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

type recorder struct {
	mu   sync.Mutex
	last recordedRequest
}

func (rec *recorder) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	entry := recordedRequest{Method: r.Method, Path: r.URL.EscapedPath()}
	if len(body) > 0 {
		_ = json.Unmarshal(body, &entry.Body)
	}

	rec.mu.Lock()
	rec.last = entry
	rec.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`null`))
}

func (rec *recorder) Last() recordedRequest {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.last
}

func TestEndpointRoutes(t *testing.T) {
	rec := &recorder{}
	r := chi.NewRouter()
	r.HandleFunc("/api/*", rec.handler)

	c := newTestClient(t, r)
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"login", func() error { _, err := c.Login(ctx, client.LoginRequest{Identifier: "9876543210", Password: "secret1"}); return err }, http.MethodPost, "/api/auth/login"},
		{"register", func() error { _, err := c.Register(ctx, client.RegisterRequest{Name: "Asha"}); return err }, http.MethodPost, "/api/auth/register"},
		{"me", func() error { _, err := c.Me(ctx); return err }, http.MethodGet, "/api/auth/me"},
		{"list temples", func() error { _, err := c.ListTemples(ctx); return err }, http.MethodGet, "/api/temples"},
		{"get temple", func() error { _, err := c.GetTemple(ctx, "t1"); return err }, http.MethodGet, "/api/temples/t1"},
		{"create temple", func() error { _, err := c.CreateTemple(ctx, darshan.Temple{Name: "Kedarnath"}); return err }, http.MethodPost, "/api/temples"},
		{"update temple", func() error { _, err := c.UpdateTemple(ctx, "t1", darshan.Temple{}); return err }, http.MethodPut, "/api/temples/t1"},
		{"delete temple", func() error { _, err := c.DeleteTemple(ctx, "t1"); return err }, http.MethodDelete, "/api/temples/t1"},
		{"list services", func() error { _, err := c.ListServices(ctx); return err }, http.MethodGet, "/api/services"},
		{"create service", func() error { _, err := c.CreateService(ctx, darshan.Service{}); return err }, http.MethodPost, "/api/services"},
		{"update service", func() error { _, err := c.UpdateService(ctx, "s1", darshan.Service{}); return err }, http.MethodPut, "/api/services/s1"},
		{"delete service", func() error { _, err := c.DeleteService(ctx, "s1"); return err }, http.MethodDelete, "/api/services/s1"},
		{"list testimonials", func() error { _, err := c.ListTestimonials(ctx); return err }, http.MethodGet, "/api/content/testimonials"},
		{"create testimonial", func() error { _, err := c.CreateTestimonial(ctx, darshan.Testimonial{}); return err }, http.MethodPost, "/api/content/testimonials"},
		{"update testimonial", func() error { _, err := c.UpdateTestimonial(ctx, "x1", darshan.Testimonial{}); return err }, http.MethodPut, "/api/content/testimonials/x1"},
		{"delete testimonial", func() error { _, err := c.DeleteTestimonial(ctx, "x1"); return err }, http.MethodDelete, "/api/content/testimonials/x1"},
		{"get seasonal event", func() error { _, err := c.GetSeasonalEvent(ctx); return err }, http.MethodGet, "/api/content/seasonalevent"},
		{"update seasonal event", func() error { _, err := c.UpdateSeasonalEvent(ctx, darshan.SeasonalEvent{}); return err }, http.MethodPut, "/api/content/seasonalevent"},
		{"create booking", func() error { _, err := c.CreateBooking(ctx, darshan.Booking{}); return err }, http.MethodPost, "/api/bookings"},
		{"my bookings", func() error { _, err := c.MyBookings(ctx); return err }, http.MethodGet, "/api/bookings/my-bookings"},
		{"all bookings", func() error { _, err := c.AllBookings(ctx); return err }, http.MethodGet, "/api/bookings/all"},
		{"list users", func() error { _, err := c.ListUsers(ctx); return err }, http.MethodGet, "/api/users"},
		{"create subscription", func() error { _, err := c.CreateSubscription(ctx, darshan.Subscription{}); return err }, http.MethodPost, "/api/subscriptions"},
		{"my subscriptions", func() error { _, err := c.MySubscriptions(ctx); return err }, http.MethodGet, "/api/subscriptions/my-subscriptions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			last := rec.Last()
			assert.Equal(t, tt.method, last.Method)
			assert.Equal(t, tt.path, last.Path)
		})
	}
}

func TestLoginBodyRepeatsIdentifierAsEmail(t *testing.T) {
	rec := &recorder{}
	r := chi.NewRouter()
	r.HandleFunc("/api/*", rec.handler)

	c := newTestClient(t, r)
	_, err := c.Login(context.Background(), client.LoginRequest{Identifier: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	body := rec.Last().Body
	assert.Equal(t, "asha@example.com", body["identifier"])
	assert.Equal(t, "asha@example.com", body["email"])
	assert.Equal(t, "secret1", body["password"])
}

func TestResourceIDIsEscaped(t *testing.T) {
	rec := &recorder{}
	r := chi.NewRouter()
	r.HandleFunc("/api/*", rec.handler)

	c := newTestClient(t, r)
	_, err := c.GetTemple(context.Background(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "/api/temples/a%2Fb%20c", rec.Last().Path)
}

func TestEmptyResourceIDRejected(t *testing.T) {
	rec := &recorder{}
	r := chi.NewRouter()
	r.HandleFunc("/api/*", rec.handler)

	c := newTestClient(t, r)
	_, err := c.DeleteTemple(context.Background(), "  ")
	require.Error(t, err)
	assert.Empty(t, rec.Last().Method)
}

func TestDecodesTypedBodies(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/services", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"s1","templeId":"t1","name":"Abhishekam","price":"501.00"},{"id":"s2","name":"Aarti","price":251}]`))
	})
	r.Post("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"jwt","user":{"id":"u9","name":"Ravi","role":"admin"}}`))
	})

	c := newTestClient(t, r)
	ctx := context.Background()

	services, err := c.ListServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, services.Status)
	require.Len(t, services.Body, 2)
	assert.True(t, decimal.RequireFromString("501").Equal(services.Body[0].Price))
	assert.True(t, decimal.NewFromInt(251).Equal(services.Body[1].Price))

	auth, err := c.Register(ctx, client.RegisterRequest{Name: "Ravi"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, auth.Status)
	assert.Equal(t, "jwt", auth.Body.Token)
	require.NotNil(t, auth.Body.User)
	assert.True(t, auth.Body.User.IsAdmin())
}
