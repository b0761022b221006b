package authflow_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
	"github.com/Rohit-Goswami064/Divine-Darshan/authflow"
	"github.com/Rohit-Goswami064/Divine-Darshan/session"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, identifier, password string) session.Result {
	args := m.Called(ctx, identifier, password)
	return args.Get(0).(session.Result)
}

func (m *MockAuthenticator) Signup(ctx context.Context, input session.SignupInput) session.Result {
	args := m.Called(ctx, input)
	return args.Get(0).(session.Result)
}

func (m *MockAuthenticator) User() *darshan.User {
	args := m.Called()
	user, _ := args.Get(0).(*darshan.User)
	return user
}

type toast struct {
	level   authflow.Level
	message string
}

type toastRecorder struct {
	mu     sync.Mutex
	toasts []toast
}

func (r *toastRecorder) Notify(level authflow.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast{level: level, message: message})
}

func newModal(auth authflow.Authenticator, opts ...authflow.ModalOption) *authflow.Modal {
	opts = append([]authflow.ModalOption{
		authflow.WithPasswordResetter(authflow.SimulatedResetter{}),
		authflow.WithLogger(quietLogger{}),
	}, opts...)
	return authflow.NewModal(auth, opts...)
}

type quietLogger struct{}

func (quietLogger) Debug(string, ...any) {}
func (quietLogger) Info(string, ...any)  {}
func (quietLogger) Warn(string, ...any)  {}
func (quietLogger) Error(string, ...any) {}

func TestModalStartsAtLogin(t *testing.T) {
	m := newModal(&MockAuthenticator{})

	assert.Equal(t, authflow.ViewLogin, m.View())
	assert.Empty(t, m.FieldErrors())
	assert.Empty(t, m.FormError())
	assert.False(t, m.Submitting())
}

func TestModalTransitions(t *testing.T) {
	m := newModal(&MockAuthenticator{})

	require.NoError(t, m.ShowSignup())
	assert.Equal(t, authflow.ViewSignup, m.View())

	assert.ErrorIs(t, m.ShowForgotPassword(), authflow.ErrInvalidTransition)
	assert.ErrorIs(t, m.Back(), authflow.ErrInvalidTransition)

	require.NoError(t, m.ShowLogin())
	require.NoError(t, m.ShowForgotPassword())
	assert.Equal(t, authflow.ViewForgotPassword, m.View())

	assert.ErrorIs(t, m.ShowSignup(), authflow.ErrInvalidTransition)

	require.NoError(t, m.Back())
	assert.Equal(t, authflow.ViewLogin, m.View())

	require.NoError(t, m.ShowLogin(), "showing the current view is a no-op")
}

func TestCanTransition(t *testing.T) {
	assert.True(t, authflow.CanTransition(authflow.ViewLogin, authflow.ViewSignup))
	assert.True(t, authflow.CanTransition(authflow.ViewForgotPassword, authflow.ViewResetSent))
	assert.False(t, authflow.CanTransition(authflow.ViewLogin, authflow.ViewResetSent))
	assert.False(t, authflow.CanTransition(authflow.ViewResetSent, authflow.ViewLogin))
	assert.False(t, authflow.CanTransition(authflow.View("bogus"), authflow.ViewLogin))
	assert.False(t, authflow.View("bogus").IsValid())
}

func TestViewSwitchClearsErrorsKeepsFields(t *testing.T) {
	auth := &MockAuthenticator{}
	m := newModal(auth)

	m.SetLogin(authflow.LoginForm{Identifier: "not-an-email-or-phone", Password: "secret1"})
	require.ErrorIs(t, m.Submit(context.Background()), authflow.ErrValidation)
	require.NotEmpty(t, m.FieldErrors())

	require.NoError(t, m.ShowSignup())
	assert.Empty(t, m.FieldErrors())
	assert.Empty(t, m.FormError())

	m.SetSignup(authflow.SignupForm{Name: "A", Mobile: "12345"})
	require.ErrorIs(t, m.Submit(context.Background()), authflow.ErrValidation)
	require.NotEmpty(t, m.FieldErrors())

	require.NoError(t, m.ShowLogin())
	assert.Empty(t, m.FieldErrors())
	assert.Empty(t, m.FormError())

	assert.Equal(t, authflow.LoginForm{Identifier: "not-an-email-or-phone", Password: "secret1"}, m.LoginValues())
	assert.Equal(t, authflow.SignupForm{Name: "A", Mobile: "12345"}, m.SignupValues())
	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	auth.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestSubmitLoginValidationBlocksNetwork(t *testing.T) {
	auth := &MockAuthenticator{}
	m := newModal(auth)

	m.SetLogin(authflow.LoginForm{Identifier: "not-an-email-or-phone", Password: "secret1"})
	err := m.Submit(context.Background())

	assert.ErrorIs(t, err, authflow.ErrValidation)
	assert.Equal(t, map[string]string{
		"identifier": authflow.DefaultTranslator().T(authflow.KeyIdentifierInvalid, nil),
	}, m.FieldErrors())
	assert.False(t, m.Submitting())
	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitLoginSuccess(t *testing.T) {
	user := &darshan.User{ID: "u1", Name: "Asha"}
	auth := &MockAuthenticator{}
	auth.On("Login", mock.Anything, "asha@example.com", "secret1").Return(session.Result{Success: true}).Once()
	auth.On("User").Return(user).Once()

	toasts := &toastRecorder{}
	var signedIn *darshan.User
	m := newModal(auth,
		authflow.WithNotifier(toasts),
		authflow.WithOnSuccess(func(u *darshan.User) { signedIn = u }),
	)

	m.SetLogin(authflow.LoginForm{Identifier: "  asha@example.com ", Password: "secret1"})
	require.NoError(t, m.Submit(context.Background()))

	assert.Equal(t, user, signedIn)
	assert.False(t, m.Submitting())
	assert.Empty(t, m.FormError())
	assert.Equal(t, []toast{{level: authflow.LevelSuccess, message: "Welcome, Asha!"}}, toasts.toasts)
	auth.AssertExpectations(t)
}

func TestSubmitTrimsIdentifierBeforeValidation(t *testing.T) {
	auth := &MockAuthenticator{}
	auth.On("Login", mock.Anything, "9876543210", " secret1 ").Return(session.Result{Success: true}).Once()
	auth.On("User").Return(&darshan.User{ID: "u1", Name: "Asha"}).Once()

	m := newModal(auth)
	m.SetLogin(authflow.LoginForm{Identifier: " 9876543210 ", Password: " secret1 "})

	require.NoError(t, m.Submit(context.Background()))
	assert.Empty(t, m.FieldErrors())
	auth.AssertExpectations(t)
}

func TestSubmitLoginFailure(t *testing.T) {
	auth := &MockAuthenticator{}
	auth.On("Login", mock.Anything, "9876543210", "secret1").Return(session.Result{Error: "Invalid credentials"}).Once()

	called := false
	m := newModal(auth, authflow.WithOnSuccess(func(*darshan.User) { called = true }))

	m.SetLogin(authflow.LoginForm{Identifier: "9876543210", Password: "secret1"})
	err := m.Submit(context.Background())

	require.Error(t, err)
	assert.True(t, darshan.HasTextCode(err, authflow.TextCodeAuthFailed))
	assert.Equal(t, "Invalid credentials", m.FormError())
	assert.Empty(t, m.FieldErrors())
	assert.False(t, m.Submitting())
	assert.False(t, called)
	auth.AssertNotCalled(t, "User")
}

func TestSubmitLoginFailureWithoutMessage(t *testing.T) {
	auth := &MockAuthenticator{}
	auth.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(session.Result{}).Once()

	m := newModal(auth)
	m.SetLogin(authflow.LoginForm{Identifier: "9876543210", Password: "secret1"})

	require.Error(t, m.Submit(context.Background()))
	assert.Equal(t, authflow.DefaultTranslator().T(authflow.KeyGenericError, nil), m.FormError())
}

func TestSubmitClearsPreviousFormError(t *testing.T) {
	auth := &MockAuthenticator{}
	auth.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(session.Result{Error: "Invalid credentials"}).Once()

	m := newModal(auth)
	m.SetLogin(authflow.LoginForm{Identifier: "9876543210", Password: "secret1"})
	require.Error(t, m.Submit(context.Background()))
	require.NotEmpty(t, m.FormError())

	m.SetLogin(authflow.LoginForm{Identifier: "9876543210", Password: "123"})
	require.ErrorIs(t, m.Submit(context.Background()), authflow.ErrValidation)
	assert.Empty(t, m.FormError())
}

func TestSubmitInProgress(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})

	auth := &MockAuthenticator{}
	auth.On("Login", mock.Anything, mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(entered)
		<-release
	}).Return(session.Result{Error: "Invalid credentials"}).Once()

	m := newModal(auth)
	m.SetLogin(authflow.LoginForm{Identifier: "asha@example.com", Password: "secret1"})

	done := make(chan error, 1)
	go func() { done <- m.Submit(context.Background()) }()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("login was not called")
	}

	assert.True(t, m.Submitting())
	assert.ErrorIs(t, m.Submit(context.Background()), authflow.ErrSubmitInProgress)

	close(release)
	require.Error(t, <-done)
	assert.False(t, m.Submitting())
	auth.AssertNumberOfCalls(t, "Login", 1)
}

func TestSubmitSignup(t *testing.T) {
	user := &darshan.User{ID: "u2", Name: "Ravi"}
	auth := &MockAuthenticator{}
	auth.On("Signup", mock.Anything, session.SignupInput{
		Name:     "Ravi",
		Mobile:   "9123456789",
		Email:    "ravi@example.com",
		Password: "secret1",
	}).Return(session.Result{Success: true}).Once()
	auth.On("User").Return(user).Once()

	toasts := &toastRecorder{}
	var signedIn *darshan.User
	m := newModal(auth,
		authflow.WithNotifier(toasts),
		authflow.WithOnSuccess(func(u *darshan.User) { signedIn = u }),
	)
	require.NoError(t, m.ShowSignup())

	m.SetSignup(authflow.SignupForm{Name: " Ravi ", Email: "ravi@example.com", Mobile: "9123456789", Password: "secret1"})
	require.NoError(t, m.Submit(context.Background()))

	assert.Equal(t, user, signedIn)
	assert.Equal(t, []toast{{level: authflow.LevelSuccess, message: "Account created. Welcome, Ravi!"}}, toasts.toasts)
	auth.AssertExpectations(t)
}

func TestSubmitSignupValidation(t *testing.T) {
	auth := &MockAuthenticator{}
	m := newModal(auth)
	require.NoError(t, m.ShowSignup())

	m.SetSignup(authflow.SignupForm{Name: "Ravi", Email: "ravi@example.com", Mobile: "12345", Password: "secret1"})
	require.ErrorIs(t, m.Submit(context.Background()), authflow.ErrValidation)
	assert.Contains(t, m.FieldErrors(), "mobile")

	m.SetSignup(authflow.SignupForm{Name: "Ravi", Email: "bad", Mobile: "9876543210", Password: "secret1"})
	require.ErrorIs(t, m.Submit(context.Background()), authflow.ErrValidation)
	assert.NotContains(t, m.FieldErrors(), "mobile")
	assert.Contains(t, m.FieldErrors(), "email")

	auth.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestForgotPasswordFlow(t *testing.T) {
	var requested string
	closed := false
	var moves [][2]authflow.View

	m := newModal(&MockAuthenticator{},
		authflow.WithPasswordResetter(authflow.PasswordResetterFunc(func(_ context.Context, email string) error {
			requested = email
			return nil
		})),
		authflow.WithOnClose(func() { closed = true }),
		authflow.WithViewChangeHook(func(from, to authflow.View) {
			moves = append(moves, [2]authflow.View{from, to})
		}),
	)

	require.NoError(t, m.ShowForgotPassword())

	m.SetResetEmail("nope")
	require.ErrorIs(t, m.Submit(context.Background()), authflow.ErrValidation)
	assert.Contains(t, m.FieldErrors(), "resetEmail")
	assert.Empty(t, requested)

	m.SetResetEmail("asha@example.com")
	require.NoError(t, m.Submit(context.Background()))

	assert.Equal(t, "asha@example.com", requested)
	assert.Equal(t, authflow.ViewResetSent, m.View())
	assert.Empty(t, m.FieldErrors())

	assert.ErrorIs(t, m.Submit(context.Background()), authflow.ErrInvalidTransition)
	assert.ErrorIs(t, m.ShowLogin(), authflow.ErrInvalidTransition)

	m.Close()
	assert.True(t, closed)

	assert.Equal(t, [][2]authflow.View{
		{authflow.ViewLogin, authflow.ViewForgotPassword},
		{authflow.ViewForgotPassword, authflow.ViewResetSent},
	}, moves)
}

func TestForgotPasswordSimulatedResetter(t *testing.T) {
	m := authflow.NewModal(&MockAuthenticator{}, authflow.WithPasswordResetter(authflow.SimulatedResetter{Delay: 10 * time.Millisecond}))
	require.NoError(t, m.ShowForgotPassword())

	m.SetResetEmail("asha@example.com")
	require.NoError(t, m.Submit(context.Background()))
	assert.Equal(t, authflow.ViewResetSent, m.View())
}

func TestForgotPasswordResetterFailure(t *testing.T) {
	m := newModal(&MockAuthenticator{},
		authflow.WithPasswordResetter(authflow.PasswordResetterFunc(func(context.Context, string) error {
			return errors.New("mail service unavailable")
		})),
	)
	require.NoError(t, m.ShowForgotPassword())

	m.SetResetEmail("asha@example.com")
	require.Error(t, m.Submit(context.Background()))

	assert.Equal(t, authflow.ViewForgotPassword, m.View())
	assert.Equal(t, "mail service unavailable", m.FormError())
	assert.False(t, m.Submitting())
}

func TestReset(t *testing.T) {
	m := newModal(&MockAuthenticator{})
	require.NoError(t, m.ShowForgotPassword())
	m.SetResetEmail("asha@example.com")
	require.NoError(t, m.Submit(context.Background()))
	m.SetLogin(authflow.LoginForm{Identifier: "asha@example.com"})

	m.Reset()

	assert.Equal(t, authflow.ViewLogin, m.View())
	assert.Equal(t, authflow.LoginForm{}, m.LoginValues())
	assert.Empty(t, m.ResetEmail())
	assert.Empty(t, m.FieldErrors())
}

func TestCloseWithoutCallback(t *testing.T) {
	m := newModal(&MockAuthenticator{})
	assert.NotPanics(t, m.Close)
}

func TestFieldErrorsReturnsCopy(t *testing.T) {
	m := newModal(&MockAuthenticator{})
	require.ErrorIs(t, m.Submit(context.Background()), authflow.ErrValidation)

	errs := m.FieldErrors()
	errs["identifier"] = "changed"

	assert.NotEqual(t, "changed", m.FieldErrors()["identifier"])
}
