package authflow

import (
	"fmt"
	"regexp"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys used by the modal.
const (
	KeyLoginTitle         = "auth.login.title"
	KeySignupTitle        = "auth.signup.title"
	KeyForgotTitle        = "auth.forgot.title"
	KeyResetSentTitle     = "auth.resetSent.title"
	KeyResetSentMessage   = "auth.resetSent.message"
	KeyIdentifierRequired = "auth.errors.identifierRequired"
	KeyIdentifierInvalid  = "auth.errors.identifierInvalid"
	KeyPasswordLength     = "auth.errors.passwordLength"
	KeyNameLength         = "auth.errors.nameLength"
	KeyEmailInvalid       = "auth.errors.emailInvalid"
	KeyMobileInvalid      = "auth.errors.mobileInvalid"
	KeyGenericError       = "auth.errors.generic"
	KeyWelcomeToast       = "auth.toast.welcome"
	KeyAccountCreated     = "auth.toast.accountCreated"
)

// DefaultMessages are the built-in English strings.
var DefaultMessages = map[string]string{
	KeyLoginTitle:         "Welcome back",
	KeySignupTitle:        "Create your account",
	KeyForgotTitle:        "Reset your password",
	KeyResetSentTitle:     "Check your email",
	KeyResetSentMessage:   "If an account exists for {{email}}, a reset link is on its way.",
	KeyIdentifierRequired: "Email or mobile number is required",
	KeyIdentifierInvalid:  "Enter a valid email or 10 digit mobile number",
	KeyPasswordLength:     "Password must be at least 6 characters",
	KeyNameLength:         "Name must be at least 3 characters",
	KeyEmailInvalid:       "Enter a valid email address",
	KeyMobileInvalid:      "Enter a valid 10 digit mobile number",
	KeyGenericError:       "Something went wrong. Please try again.",
	KeyWelcomeToast:       "Welcome, {{name}}!",
	KeyAccountCreated:     "Account created. Welcome, {{name}}!",
}

// Translator resolves a message key, substituting {{name}} style vars.
type Translator interface {
	T(key string, vars map[string]any) string
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(key string, vars map[string]any) string

// T implements Translator.
func (f TranslatorFunc) T(key string, vars map[string]any) string {
	if f == nil {
		return key
	}
	return f(key, vars)
}

// CatalogTranslator looks keys up in an x/text message catalog. Unknown
// keys resolve to the key itself.
type CatalogTranslator struct {
	tag     language.Tag
	printer *message.Printer
}

// NewCatalogTranslator registers messages for tag. Message text must not
// contain printf verbs.
func NewCatalogTranslator(tag language.Tag, messages map[string]string) (*CatalogTranslator, error) {
	builder := catalog.NewBuilder(catalog.Fallback(tag))
	for key, text := range messages {
		if err := builder.SetString(tag, key, text); err != nil {
			return nil, fmt.Errorf("register message %q: %w", key, err)
		}
	}

	return &CatalogTranslator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}, nil
}

// Language returns the catalog language
func (c *CatalogTranslator) Language() language.Tag {
	return c.tag
}

func (c *CatalogTranslator) T(key string, vars map[string]any) string {
	return interpolate(c.printer.Sprintf(key), vars)
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// interpolate replaces {{name}} with vars["name"]. Unknown names are kept.
func interpolate(text string, vars map[string]any) string {
	if len(vars) == 0 {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		if v, ok := vars[name]; ok {
			return fmt.Sprint(v)
		}
		return match
	})
}

var defaultTranslator Translator = mustCatalog(language.English, DefaultMessages)

// DefaultTranslator returns the English translator.
func DefaultTranslator() Translator {
	return defaultTranslator
}

func mustCatalog(tag language.Tag, messages map[string]string) *CatalogTranslator {
	t, err := NewCatalogTranslator(tag, messages)
	if err != nil {
		panic(err)
	}
	return t
}
