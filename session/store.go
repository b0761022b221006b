package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
	"github.com/Rohit-Goswami064/Divine-Darshan/client"
	"github.com/Rohit-Goswami064/Divine-Darshan/storage"
)

// AuthAPI is the subset of the backend client the Store depends on.
// *client.Client satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, req client.LoginRequest) (*client.Response[client.AuthResponse], error)
	Register(ctx context.Context, req client.RegisterRequest) (*client.Response[client.AuthResponse], error)
	Me(ctx context.Context) (*client.Response[client.MeResponse], error)
}

var _ AuthAPI = (*client.Client)(nil)

// Listener receives a snapshot after every state change.
type Listener func(State)

type subscription struct {
	id uint64
	fn Listener
}

// Store owns the current user and the authentication lifecycle. It is
// safe for concurrent use.
type Store struct {
	api      AuthAPI
	tokens   storage.Store
	tokenKey string

	logger      darshan.Logger
	activity    darshan.ActivitySink
	now         func() time.Time
	skipExpired bool

	initOnce sync.Once

	mu    sync.RWMutex
	state State
	// bumped by every login, signup and logout so a slow restore
	// never overwrites a newer outcome
	generation uint64
	// serializes token writes against the generation check
	tokenMu sync.Mutex

	subsMu sync.Mutex
	subs   []subscription
	nextID uint64
}

// New creates a Store in the bootstrapping phase. A nil tokens store
// falls back to process memory.
func New(api AuthAPI, tokens storage.Store, opts ...Option) *Store {
	if tokens == nil {
		tokens = storage.NewMemoryStore(nil)
	}

	s := &Store{
		api:      api,
		tokens:   tokens,
		tokenKey: DefaultTokenKey,
		logger:   darshan.DefaultLogger(),
		activity: darshan.NormalizeActivitySink(nil),
		now:      time.Now,
		state:    State{IsLoading: true},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Init restores a persisted session. Only the first call does any work.
// Restore failures are logged and never returned; the store always
// leaves the loading phase.
func (s *Store) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		s.mu.RLock()
		gen := s.generation
		s.mu.RUnlock()

		user := s.restore(ctx, gen)

		s.mu.Lock()
		if s.generation == gen {
			s.state.User = user
		}
		s.state.IsLoading = false
		snapshot := s.state.clone()
		s.mu.Unlock()

		s.notify(snapshot)
	})
}

func (s *Store) restore(ctx context.Context, gen uint64) *darshan.User {
	token, ok, err := s.tokens.Get(ctx, s.tokenKey)
	if err != nil {
		s.restoreFailed(ctx, gen, darshan.Wrap(err, darshan.ErrStorage), false)
		return nil
	}

	if !ok || strings.TrimSpace(token) == "" {
		return nil
	}

	if s.skipExpired {
		if exp, ok := TokenExpiry(token); ok && !exp.After(s.now()) {
			s.logger.Info("session token expired, skipping restore", "expired_at", exp)
			s.discardStaleToken(ctx, gen)
			s.record(ctx, darshan.ActivityEventRestoreFailure, nil, map[string]any{"reason": "token_expired"})
			return nil
		}
	}

	if s.api == nil {
		s.restoreFailed(ctx, gen, darshan.ErrSessionRestore, true)
		return nil
	}

	resp, err := s.api.Me(ctx)
	if err == nil && (resp == nil || resp.Body.User == nil) {
		err = darshan.ErrEmptyAuthPayload
	}
	if err != nil {
		s.restoreFailed(ctx, gen, err, true)
		return nil
	}

	user := resp.Body.User.Clone()
	s.record(ctx, darshan.ActivityEventRestoreSuccess, user, nil)
	return user
}

func (s *Store) restoreFailed(ctx context.Context, gen uint64, err error, discard bool) {
	s.logger.Info("session restore failed", "error", darshan.Wrap(err, darshan.ErrSessionRestore))
	if discard {
		s.discardStaleToken(ctx, gen)
	}
	s.record(ctx, darshan.ActivityEventRestoreFailure, nil, map[string]any{
		"reason": client.ErrorMessage(err),
	})
}

// Login authenticates with an email or mobile identifier. On success the
// token is persisted before the user is stored.
func (s *Store) Login(ctx context.Context, identifier, password string) Result {
	req := client.LoginRequest{
		Identifier: identifier,
		Email:      identifier,
		Password:   password,
	}

	var (
		resp *client.Response[client.AuthResponse]
		err  error
	)
	if s.api == nil {
		err = darshan.ErrRequestSetup
	} else {
		resp, err = s.api.Login(ctx, req)
	}

	return s.complete(ctx, authAttempt{
		success:    darshan.ActivityEventLoginSuccess,
		failure:    darshan.ActivityEventLoginFailure,
		identifier: identifier,
	}, resp, err)
}

// Signup registers a new account and signs it in.
func (s *Store) Signup(ctx context.Context, input SignupInput) Result {
	req := client.RegisterRequest{
		Name:     input.Name,
		Email:    input.Email,
		Mobile:   input.Mobile,
		Password: input.Password,
	}

	var (
		resp *client.Response[client.AuthResponse]
		err  error
	)
	if s.api == nil {
		err = darshan.ErrRequestSetup
	} else {
		resp, err = s.api.Register(ctx, req)
	}

	return s.complete(ctx, authAttempt{
		success:    darshan.ActivityEventSignupSuccess,
		failure:    darshan.ActivityEventSignupFailure,
		identifier: input.Email,
	}, resp, err)
}

type authAttempt struct {
	success    darshan.ActivityEventType
	failure    darshan.ActivityEventType
	identifier string
}

func (s *Store) complete(ctx context.Context, attempt authAttempt, resp *client.Response[client.AuthResponse], err error) Result {
	if err == nil && (resp == nil || strings.TrimSpace(resp.Body.Token) == "" || resp.Body.User == nil) {
		err = darshan.ErrEmptyAuthPayload
	}

	var snapshot State
	if err == nil {
		s.tokenMu.Lock()
		if setErr := s.tokens.Set(ctx, s.tokenKey, resp.Body.Token); setErr != nil {
			err = darshan.Wrap(setErr, darshan.ErrTokenPersist)
			s.logger.Error("failed to persist session token", "error", err)
		} else {
			s.mu.Lock()
			s.generation++
			s.state.User = resp.Body.User.Clone()
			snapshot = s.state.clone()
			s.mu.Unlock()
		}
		s.tokenMu.Unlock()
	}

	if err != nil {
		message := client.ErrorMessage(err)
		var httpErr *client.HTTPError
		if errors.As(err, &httpErr) {
			s.logger.Debug("authentication failed", "event", attempt.failure, "error", httpErr.Rich())
		} else {
			s.logger.Debug("authentication failed", "event", attempt.failure, "error", err)
		}
		s.record(ctx, attempt.failure, nil, map[string]any{
			"identifier": attempt.identifier,
			"error":      message,
		})
		return Result{Success: false, Error: message}
	}

	s.notify(snapshot)
	s.record(ctx, attempt.success, snapshot.User, nil)

	return Result{Success: true}
}

// Logout forgets the token and the user. It never calls the backend.
func (s *Store) Logout(ctx context.Context) {
	s.tokenMu.Lock()
	s.mu.Lock()
	previous := s.state.User
	s.generation++
	s.state.User = nil
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.discardToken(ctx)
	s.tokenMu.Unlock()

	s.notify(snapshot)
	s.record(ctx, darshan.ActivityEventLogout, previous, nil)
}

// discardStaleToken removes the token read at generation gen, unless a
// login or logout has replaced it since.
func (s *Store) discardStaleToken(ctx context.Context, gen uint64) {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()

	s.mu.RLock()
	current := s.generation
	s.mu.RUnlock()
	if current != gen {
		s.logger.Debug("session token replaced during restore, keeping it")
		return
	}
	s.discardToken(ctx)
}

func (s *Store) discardToken(ctx context.Context) {
	if err := s.tokens.Remove(ctx, s.tokenKey); err != nil {
		s.logger.Warn("failed to remove session token", "error", darshan.Wrap(err, darshan.ErrStorage))
	}
}

// State returns a snapshot of the session.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// User returns a copy of the current user, nil when anonymous.
func (s *Store) User() *darshan.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User.Clone()
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsLoading
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated()
}

// Token returns the persisted token, empty when absent. For diagnostics.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, _, err := s.tokens.Get(ctx, s.tokenKey)
	if err != nil {
		return "", darshan.Wrap(err, darshan.ErrStorage)
	}
	return token, nil
}

// Subscribe registers fn to run after each state change, in subscription
// order and outside the store lock. The returned func unsubscribes.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}

	s.subsMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) notify(state State) {
	s.subsMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.fn(state.clone())
	}
}

func (s *Store) record(ctx context.Context, eventType darshan.ActivityEventType, user *darshan.User, metadata map[string]any) {
	event := darshan.ActivityEvent{
		EventType:  eventType,
		Actor:      darshan.ActorFromUser(user),
		Metadata:   metadata,
		OccurredAt: s.now().UTC(),
	}
	if user != nil {
		event.UserID = user.ID
	}

	if err := s.activity.Record(ctx, event); err != nil {
		s.logger.Warn("failed to record session activity", "event", eventType, "error", err)
	}
}
