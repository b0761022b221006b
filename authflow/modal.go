package authflow

import (
	"context"
	"errors"
	"strings"
	"sync"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
	"github.com/Rohit-Goswami064/Divine-Darshan/client"
	"github.com/Rohit-Goswami064/Divine-Darshan/session"
)

// Authenticator runs the login and signup transitions. *session.Store
// satisfies it.
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) session.Result
	Signup(ctx context.Context, input session.SignupInput) session.Result
	User() *darshan.User
}

var _ Authenticator = (*session.Store)(nil)

// ModalOption customizes a Modal.
type ModalOption func(*Modal)

// WithTranslator sets the message translator.
func WithTranslator(t Translator) ModalOption {
	return func(m *Modal) {
		if t != nil {
			m.translator = t
		}
	}
}

// WithNotifier sets the toast notifier.
func WithNotifier(n Notifier) ModalOption {
	return func(m *Modal) {
		if n != nil {
			m.notifier = n
		}
	}
}

// WithPasswordResetter replaces the simulated reset request.
func WithPasswordResetter(r PasswordResetter) ModalOption {
	return func(m *Modal) {
		if r != nil {
			m.resetter = r
		}
	}
}

// WithOnSuccess is called with the signed in user after a successful
// login or signup.
func WithOnSuccess(fn func(user *darshan.User)) ModalOption {
	return func(m *Modal) {
		m.onSuccess = fn
	}
}

// WithOnClose is called by Close.
func WithOnClose(fn func()) ModalOption {
	return func(m *Modal) {
		m.onClose = fn
	}
}

// WithViewChangeHook adds a hook run after every view change.
func WithViewChangeHook(h ViewChangeHook) ModalOption {
	return func(m *Modal) {
		if h != nil {
			m.hooks = append(m.hooks, h)
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(logger darshan.Logger) ModalOption {
	return func(m *Modal) {
		m.logger = darshan.NormalizeLogger(logger)
	}
}

// Modal is the login, signup and password reset flow. Field values
// survive view changes; errors do not.
type Modal struct {
	auth       Authenticator
	translator Translator
	notifier   Notifier
	resetter   PasswordResetter
	logger     darshan.Logger
	onSuccess  func(*darshan.User)
	onClose    func()
	hooks      []ViewChangeHook

	mu          sync.Mutex
	view        View
	login       LoginForm
	signup      SignupForm
	forgot      ForgotPasswordForm
	fieldErrors map[string]string
	formError   string
	submitting  bool
}

// NewModal returns a Modal showing the login view. auth must not be nil.
func NewModal(auth Authenticator, opts ...ModalOption) *Modal {
	m := &Modal{
		auth:        auth,
		translator:  DefaultTranslator(),
		notifier:    noopNotifier{},
		resetter:    SimulatedResetter{Delay: DefaultResetDelay},
		logger:      darshan.DefaultLogger(),
		view:        ViewLogin,
		fieldErrors: map[string]string{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// T translates key with the modal translator
func (m *Modal) T(key string, vars map[string]any) string {
	return m.translator.T(key, vars)
}

func (m *Modal) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

// FieldErrors returns a copy of the field error map.
func (m *Modal) FieldErrors() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.fieldErrors))
	for k, v := range m.fieldErrors {
		out[k] = v
	}
	return out
}

func (m *Modal) FormError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.formError
}

func (m *Modal) Submitting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitting
}

func (m *Modal) LoginValues() LoginForm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.login
}

func (m *Modal) SignupValues() SignupForm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signup
}

func (m *Modal) ResetEmail() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.forgot.Email
}

func (m *Modal) SetLogin(form LoginForm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.login = form
}

func (m *Modal) SetSignup(form SignupForm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signup = form
}

func (m *Modal) SetResetEmail(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forgot.Email = email
}

func (m *Modal) ShowLogin() error {
	return m.transition(ViewLogin)
}

func (m *Modal) ShowSignup() error {
	return m.transition(ViewSignup)
}

func (m *Modal) ShowForgotPassword() error {
	return m.transition(ViewForgotPassword)
}

// Back returns from the forgot password view to login.
func (m *Modal) Back() error {
	if m.View() != ViewForgotPassword {
		return ErrInvalidTransition
	}
	return m.transition(ViewLogin)
}

// Close hands control back to the caller.
func (m *Modal) Close() {
	if m.onClose != nil {
		m.onClose()
	}
}

// Reset shows the login view with every field and error cleared.
func (m *Modal) Reset() {
	m.mu.Lock()
	from := m.view
	m.view = ViewLogin
	m.login = LoginForm{}
	m.signup = SignupForm{}
	m.forgot = ForgotPasswordForm{}
	m.clearErrorsLocked()
	m.submitting = false
	m.mu.Unlock()

	if from != ViewLogin {
		m.runHooks(from, ViewLogin)
	}
}

func (m *Modal) transition(to View) error {
	m.mu.Lock()
	from := m.view
	if from == to {
		m.mu.Unlock()
		return nil
	}
	if !CanTransition(from, to) {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	m.view = to
	m.clearErrorsLocked()
	m.mu.Unlock()

	m.runHooks(from, to)
	return nil
}

func (m *Modal) runHooks(from, to View) {
	for _, h := range m.hooks {
		h(from, to)
	}
}

func (m *Modal) clearErrorsLocked() {
	m.fieldErrors = map[string]string{}
	m.formError = ""
}

// Submit validates and submits the current view. Validation failures
// return ErrValidation without any network call.
func (m *Modal) Submit(ctx context.Context) error {
	m.mu.Lock()
	if m.submitting {
		m.mu.Unlock()
		return ErrSubmitInProgress
	}

	view := m.view
	login := LoginForm{Identifier: strings.TrimSpace(m.login.Identifier), Password: m.login.Password}
	signup := SignupForm{
		Name:     strings.TrimSpace(m.signup.Name),
		Email:    strings.TrimSpace(m.signup.Email),
		Mobile:   strings.TrimSpace(m.signup.Mobile),
		Password: m.signup.Password,
	}
	forgot := ForgotPasswordForm{Email: strings.TrimSpace(m.forgot.Email)}

	var err error
	switch view {
	case ViewLogin:
		err = login.Validate(m.translator)
	case ViewSignup:
		err = signup.Validate(m.translator)
	case ViewForgotPassword:
		err = forgot.Validate(m.translator)
	default:
		m.mu.Unlock()
		return ErrInvalidTransition
	}

	m.clearErrorsLocked()
	if err != nil {
		m.fieldErrors = FormatValidationErrorToMap(err)
		m.mu.Unlock()
		return ErrValidation
	}
	m.submitting = true
	m.mu.Unlock()

	switch view {
	case ViewLogin:
		return m.finishAuth(m.auth.Login(ctx, login.Identifier, login.Password), KeyWelcomeToast)
	case ViewSignup:
		return m.finishAuth(m.auth.Signup(ctx, session.SignupInput{
			Name:     signup.Name,
			Mobile:   signup.Mobile,
			Email:    signup.Email,
			Password: signup.Password,
		}), KeyAccountCreated)
	default:
		return m.finishReset(ctx, forgot.Email)
	}
}

func (m *Modal) finishAuth(result session.Result, toastKey string) error {
	m.mu.Lock()
	m.submitting = false
	if !result.Success {
		message := strings.TrimSpace(result.Error)
		if message == "" {
			message = m.translator.T(KeyGenericError, nil)
		}
		m.formError = message
		m.mu.Unlock()
		return darshan.Wrap(errors.New(message), ErrAuthFailed)
	}
	m.mu.Unlock()

	user := m.auth.User()
	name := ""
	if user != nil {
		name = user.Name
	}
	m.notifier.Notify(LevelSuccess, m.translator.T(toastKey, map[string]any{"name": name}))

	if m.onSuccess != nil {
		m.onSuccess(user)
	}
	return nil
}

func (m *Modal) finishReset(ctx context.Context, email string) error {
	err := m.resetter.RequestPasswordReset(ctx, email)

	m.mu.Lock()
	m.submitting = false
	if err != nil {
		m.formError = client.ErrorMessage(err)
		m.mu.Unlock()
		m.logger.Warn("password reset request failed", "error", err)
		return err
	}

	// the user may have gone back to login while the request was running
	if m.view != ViewForgotPassword {
		m.mu.Unlock()
		return nil
	}
	m.view = ViewResetSent
	m.clearErrorsLocked()
	m.mu.Unlock()

	m.runHooks(ViewForgotPassword, ViewResetSent)
	return nil
}
