package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	goerrors "github.com/goliatone/go-errors"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
	"github.com/Rohit-Goswami064/Divine-Darshan/authflow"
)

// MaxAttempts bounds how many times a form is prompted again after a
// validation or authentication failure.
const MaxAttempts = 3

const (
	TextCodeUnknownCommand  = "UNKNOWN_COMMAND"
	TextCodeNotSignedIn     = "NOT_SIGNED_IN"
	TextCodeAdminOnly       = "ADMIN_ONLY"
	TextCodeTooManyAttempts = "TOO_MANY_ATTEMPTS"
)

var ErrUnknownCommand = goerrors.New("unknown command", goerrors.CategoryBadInput).
	WithTextCode(TextCodeUnknownCommand).
	WithCode(goerrors.CodeBadRequest)

var ErrNotSignedIn = goerrors.New("not signed in, run \"darshan login\" first", goerrors.CategoryAuth).
	WithTextCode(TextCodeNotSignedIn).
	WithCode(goerrors.CodeUnauthorized)

var ErrAdminOnly = goerrors.New("this command requires an admin account", goerrors.CategoryAuthz).
	WithTextCode(TextCodeAdminOnly).
	WithCode(goerrors.CodeForbidden)

var ErrTooManyAttempts = goerrors.New("too many failed attempts", goerrors.CategoryBadInput).
	WithTextCode(TextCodeTooManyAttempts).
	WithCode(goerrors.CodeBadRequest)

type command struct {
	name    string
	args    string
	summary string
	// auth requires a signed in user, role the minimum role it grants
	auth bool
	role darshan.UserRole
	run  func(ctx context.Context, a *App, args []string) error
}

// permits reports whether user holds at least the command's role. Roles
// are compared case insensitively, unknown roles never qualify.
func (cmd command) permits(user *darshan.User) bool {
	if cmd.role == "" {
		return true
	}
	if user == nil {
		return false
	}
	role, ok := darshan.ParseRole(string(user.Role))
	return ok && role.IsAtLeast(cmd.role)
}

var commands = []command{
	{name: "login", summary: "sign in with email or mobile", run: runLogin},
	{name: "signup", summary: "create an account", run: runSignup},
	{name: "forgot-password", summary: "request a password reset link", run: runForgotPassword},
	{name: "logout", summary: "sign out and forget the stored token", run: runLogout},
	{name: "whoami", summary: "show the signed in user", run: runWhoami},
	{name: "temples", args: "[id]", summary: "list temples or show one", run: runTemples},
	{name: "services", summary: "list bookable services", run: runServices},
	{name: "testimonials", summary: "list devotee testimonials", run: runTestimonials},
	{name: "event", summary: "show the seasonal event", run: runEvent},
	{name: "bookings", args: "[mine|all]", summary: "list your bookings, or all bookings for admins", auth: true, run: runBookings},
	{name: "subscriptions", summary: "list your subscriptions", auth: true, run: runSubscriptions},
	{name: "users", summary: "list registered users", auth: true, role: darshan.RoleAdmin, run: runUsers},
}

func lookup(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

// Run dispatches args[0] with the remaining arguments. The signed in user
// is attached to ctx.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.help()
		return nil
	}

	cmd, ok := lookup(args[0])
	if !ok {
		return darshan.Wrap(fmt.Errorf("unknown command %q", args[0]), ErrUnknownCommand)
	}

	user := a.session.User()
	if cmd.auth && user == nil {
		return ErrNotSignedIn
	}
	if !cmd.permits(user) {
		return ErrAdminOnly
	}

	if user != nil {
		ctx = darshan.WithContext(ctx, user)
	}

	a.logger.Debug("run command", "command", cmd.name, "args", args[1:])
	return cmd.run(ctx, a, args[1:])
}

func (a *App) help() {
	user := a.session.User()

	fmt.Fprintln(a.out, "Usage: darshan [flags] <command> [args]")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Commands:")
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, cmd := range commands {
		if !cmd.permits(user) {
			continue
		}
		fmt.Fprintf(w, "  %s %s\t%s\n", cmd.name, cmd.args, cmd.summary)
	}
	w.Flush()
}

func runLogin(ctx context.Context, a *App, _ []string) error {
	if user := a.session.User(); user != nil {
		fmt.Fprintf(a.out, "Already signed in as %s\n", user.Name)
		return nil
	}

	modal := a.newModal()
	fmt.Fprintln(a.out, modal.T(authflow.KeyLoginTitle, nil))

	return a.submitLoop(ctx, modal, func() error {
		identifier, err := a.in.Text("Email or mobile")
		if err != nil {
			return err
		}
		password, err := a.in.Password("Password")
		if err != nil {
			return err
		}
		modal.SetLogin(authflow.LoginForm{Identifier: identifier, Password: password})
		return nil
	})
}

func runSignup(ctx context.Context, a *App, _ []string) error {
	if user := a.session.User(); user != nil {
		fmt.Fprintf(a.out, "Already signed in as %s\n", user.Name)
		return nil
	}

	modal := a.newModal()
	if err := modal.ShowSignup(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, modal.T(authflow.KeySignupTitle, nil))

	return a.submitLoop(ctx, modal, func() error {
		var form authflow.SignupForm
		var err error
		if form.Name, err = a.in.Text("Name"); err != nil {
			return err
		}
		if form.Email, err = a.in.Text("Email"); err != nil {
			return err
		}
		if form.Mobile, err = a.in.Text("Mobile"); err != nil {
			return err
		}
		if form.Password, err = a.in.Password("Password"); err != nil {
			return err
		}
		modal.SetSignup(form)
		return nil
	})
}

func runForgotPassword(ctx context.Context, a *App, _ []string) error {
	modal := a.newModal()
	if err := modal.ShowForgotPassword(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, modal.T(authflow.KeyForgotTitle, nil))

	var email string
	err := a.submitLoop(ctx, modal, func() error {
		var err error
		if email, err = a.in.Text("Email"); err != nil {
			return err
		}
		modal.SetResetEmail(email)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, modal.T(authflow.KeyResetSentTitle, nil))
	fmt.Fprintln(a.out, modal.T(authflow.KeyResetSentMessage, map[string]any{"email": modal.ResetEmail()}))
	modal.Close()
	return nil
}

// submitLoop prompts, submits and prompts again on validation or
// authentication failures, up to MaxAttempts times.
func (a *App) submitLoop(ctx context.Context, modal *authflow.Modal, prompt func() error) error {
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if err := prompt(); err != nil {
			return err
		}

		err := modal.Submit(ctx)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, authflow.ErrValidation):
			a.printFieldErrors(modal.FieldErrors())
		case darshan.HasTextCode(err, authflow.TextCodeAuthFailed):
			fmt.Fprintf(a.out, "[%s] %s\n", authflow.LevelError, modal.FormError())
		default:
			return err
		}
	}
	return ErrTooManyAttempts
}

func (a *App) printFieldErrors(fieldErrors map[string]string) {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(a.out, "  %s: %s\n", field, fieldErrors[field])
	}
}

func runLogout(ctx context.Context, a *App, _ []string) error {
	if !a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	a.session.Logout(ctx)
	return nil
}

func runWhoami(ctx context.Context, a *App, _ []string) error {
	user, ok := darshan.FromContext(ctx)
	if !ok {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	a.renderUser(user)
	return nil
}

func runTemples(ctx context.Context, a *App, args []string) error {
	if len(args) > 0 {
		resp, err := a.api.GetTemple(ctx, args[0])
		if err != nil {
			return err
		}
		a.renderTemple(resp.Body)
		return nil
	}

	resp, err := a.api.ListTemples(ctx)
	if err != nil {
		return err
	}
	a.renderTemples(resp.Body)
	return nil
}

func runServices(ctx context.Context, a *App, _ []string) error {
	resp, err := a.api.ListServices(ctx)
	if err != nil {
		return err
	}
	a.renderServices(resp.Body)
	return nil
}

func runTestimonials(ctx context.Context, a *App, _ []string) error {
	resp, err := a.api.ListTestimonials(ctx)
	if err != nil {
		return err
	}
	a.renderTestimonials(resp.Body)
	return nil
}

func runEvent(ctx context.Context, a *App, _ []string) error {
	resp, err := a.api.GetSeasonalEvent(ctx)
	if err != nil {
		return err
	}
	a.renderEvent(resp.Body)
	return nil
}

func runBookings(ctx context.Context, a *App, args []string) error {
	scope := "mine"
	if len(args) > 0 {
		scope = strings.ToLower(args[0])
	}

	switch scope {
	case "mine":
		resp, err := a.api.MyBookings(ctx)
		if err != nil {
			return err
		}
		a.renderBookings(resp.Body)
	case "all":
		if !darshan.IsAdminContext(ctx) {
			return ErrAdminOnly
		}
		resp, err := a.api.AllBookings(ctx)
		if err != nil {
			return err
		}
		a.renderBookings(resp.Body)
	default:
		return darshan.Wrap(fmt.Errorf("unknown bookings scope %q, expected mine or all", scope), ErrUnknownCommand)
	}
	return nil
}

func runSubscriptions(ctx context.Context, a *App, _ []string) error {
	resp, err := a.api.MySubscriptions(ctx)
	if err != nil {
		return err
	}
	a.renderSubscriptions(resp.Body)
	return nil
}

func runUsers(ctx context.Context, a *App, _ []string) error {
	resp, err := a.api.ListUsers(ctx)
	if err != nil {
		return err
	}
	a.renderUsers(resp.Body)
	return nil
}
