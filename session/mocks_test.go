package session_test

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
	"github.com/Rohit-Goswami064/Divine-Darshan/client"
	"github.com/Rohit-Goswami064/Divine-Darshan/storage"
)

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, req client.LoginRequest) (*client.Response[client.AuthResponse], error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*client.Response[client.AuthResponse])
	return resp, args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, req client.RegisterRequest) (*client.Response[client.AuthResponse], error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*client.Response[client.AuthResponse])
	return resp, args.Error(1)
}

func (m *MockAuthAPI) Me(ctx context.Context) (*client.Response[client.MeResponse], error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*client.Response[client.MeResponse])
	return resp, args.Error(1)
}

func authResponse(token string, user *darshan.User) *client.Response[client.AuthResponse] {
	return &client.Response[client.AuthResponse]{Status: 200, Body: client.AuthResponse{Token: token, User: user}}
}

func meResponse(user *darshan.User) *client.Response[client.MeResponse] {
	return &client.Response[client.MeResponse]{Status: 200, Body: client.MeResponse{User: user}}
}

// brokenStore fails the configured operations.
type brokenStore struct {
	*storage.MemoryStore
	failGet    bool
	failSet    bool
	failRemove bool
}

var errDisk = errors.New("disk unavailable")

func (b *brokenStore) Get(ctx context.Context, key string) (string, bool, error) {
	if b.failGet {
		return "", false, errDisk
	}
	return b.MemoryStore.Get(ctx, key)
}

func (b *brokenStore) Set(ctx context.Context, key, value string) error {
	if b.failSet {
		return errDisk
	}
	return b.MemoryStore.Set(ctx, key, value)
}

func (b *brokenStore) Remove(ctx context.Context, key string) error {
	if b.failRemove {
		return errDisk
	}
	return b.MemoryStore.Remove(ctx, key)
}

type recordingSink struct {
	mu     sync.Mutex
	events []darshan.ActivityEvent
	err    error
}

func (r *recordingSink) Record(_ context.Context, event darshan.ActivityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingSink) Types() []darshan.ActivityEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]darshan.ActivityEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}

type captureLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *captureLogger) Debug(string, ...any) {}
func (l *captureLogger) Error(string, ...any) {}

func (l *captureLogger) Info(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *captureLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}
