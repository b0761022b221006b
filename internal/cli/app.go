package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
	"github.com/Rohit-Goswami064/Divine-Darshan/activitymap"
	"github.com/Rohit-Goswami064/Divine-Darshan/authflow"
	"github.com/Rohit-Goswami064/Divine-Darshan/client"
	"github.com/Rohit-Goswami064/Divine-Darshan/config"
	"github.com/Rohit-Goswami064/Divine-Darshan/session"
	"github.com/Rohit-Goswami064/Divine-Darshan/storage"
)

// UserAgent identifies the CLI to the backend
const UserAgent = "darshan-cli/1.0"

// App wires the client, the session store and the auth modal behind the
// darshan commands.
type App struct {
	api        *client.Client
	session    *session.Store
	tokens     storage.Store
	logger     darshan.Logger
	translator authflow.Translator
	resetter   authflow.PasswordResetter
	registry   *prometheus.Registry

	in    *Prompter
	out   io.Writer
	debug bool

	unsubscribe func()
}

// Option customizes an App.
type Option func(*App)

// WithIO replaces stdin and stdout. fd is the input descriptor, -1 when
// in is not a terminal.
func WithIO(in io.Reader, out io.Writer, fd int) Option {
	return func(a *App) {
		a.in = NewPrompter(in, out, fd)
		a.out = out
	}
}

// WithPasswordResetter replaces the simulated reset request.
func WithPasswordResetter(r authflow.PasswordResetter) Option {
	return func(a *App) {
		a.resetter = r
	}
}

// New opens token storage, builds the API client and restores the session.
func New(ctx context.Context, cfg *config.Config, logger darshan.Logger, opts ...Option) (*App, error) {
	logger = darshan.NormalizeLogger(logger)

	tokens, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("open token storage: %w", err)
	}

	clientOpts := []client.Option{
		client.WithLogger(logger),
		client.WithDebug(cfg.Debug),
		client.WithTimeout(cfg.Timeout),
		client.WithDecorators(
			client.BearerToken(tokens, cfg.TokenKey),
			client.RequestID(),
			client.UserAgent(UserAgent),
		),
	}

	var registry *prometheus.Registry
	if cfg.Metrics {
		registry = prometheus.NewRegistry()
		clientOpts = append(clientOpts, client.WithMetrics(registry))
	}

	api, err := client.New(cfg, clientOpts...)
	if err != nil {
		_ = storage.Close(tokens)
		return nil, err
	}

	sessionOpts := []session.Option{
		session.WithLogger(logger),
		session.WithTokenKey(cfg.TokenKey),
		session.WithActivitySink(activitymap.LogSink(logger)),
	}
	if cfg.SkipExpiredTokens {
		sessionOpts = append(sessionOpts, session.WithSkipExpiredTokens())
	}

	a := &App{
		api:        api,
		session:    session.New(api, tokens, sessionOpts...),
		tokens:     tokens,
		logger:     logger,
		translator: translatorFor(cfg.Locale, logger),
		registry:   registry,
		in:         NewPrompter(os.Stdin, os.Stdout, int(os.Stdin.Fd())),
		out:        os.Stdout,
		debug:      cfg.Debug,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	a.session.Init(ctx)
	a.unsubscribe = a.session.Subscribe(a.renderState)

	return a, nil
}

// Close releases storage and reports request metrics when enabled.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.reportMetrics()
	return storage.Close(a.tokens)
}

// Session exposes the session store
func (a *App) Session() *session.Store {
	return a.session
}

func (a *App) newModal() *authflow.Modal {
	opts := []authflow.ModalOption{
		authflow.WithTranslator(a.translator),
		authflow.WithLogger(a.logger),
		authflow.WithNotifier(authflow.NotifierFunc(func(level authflow.Level, message string) {
			fmt.Fprintf(a.out, "[%s] %s\n", level, message)
		})),
	}
	if a.resetter != nil {
		opts = append(opts, authflow.WithPasswordResetter(a.resetter))
	}
	return authflow.NewModal(a.session, opts...)
}

func (a *App) renderState(state session.State) {
	if state.User == nil {
		fmt.Fprintln(a.out, "Signed out")
		return
	}
	fmt.Fprintf(a.out, "Signed in as %s <%s>\n", state.User.Name, state.User.Email)
}

func (a *App) reportMetrics() {
	if a.registry == nil {
		return
	}
	families, err := a.registry.Gather()
	if err != nil {
		a.logger.Warn("gather client metrics", "error", err)
		return
	}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			if c := m.GetCounter(); c != nil {
				labels := make([]any, 0, 2*len(m.GetLabel())+2)
				labels = append(labels, "value", c.GetValue())
				for _, pair := range m.GetLabel() {
					labels = append(labels, pair.GetName(), pair.GetValue())
				}
				a.logger.Info(family.GetName(), labels...)
			}
		}
	}
}

func translatorFor(locale string, logger darshan.Logger) authflow.Translator {
	if locale == "" {
		return authflow.DefaultTranslator()
	}
	tag, err := language.Parse(locale)
	if err != nil {
		logger.Warn("invalid locale, using English", "locale", locale, "error", err)
		return authflow.DefaultTranslator()
	}
	t, err := authflow.NewCatalogTranslator(tag, authflow.DefaultMessages)
	if err != nil {
		logger.Warn("build message catalog", "locale", locale, "error", err)
		return authflow.DefaultTranslator()
	}
	return t
}
