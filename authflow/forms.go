package authflow

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	// MinPasswordLength applies to login and signup
	MinPasswordLength = 6
	// MinNameLength applies to the trimmed signup name
	MinNameLength = 3
	// FormErrorKey holds non field errors in FormatValidationErrorToMap
	FormErrorKey = "form"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// IsEmail reports whether s looks like an email address
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsMobile reports whether s is a 10 digit Indian mobile number
func IsMobile(s string) bool {
	return mobilePattern.MatchString(s)
}

// LoginForm holds the login inputs. Identifier is an email or a mobile number.
type LoginForm struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Validate checks every field and returns validation.Errors keyed by json name.
func (f LoginForm) Validate(t Translator) error {
	return validation.ValidateStruct(&f,
		validation.Field(
			&f.Identifier,
			validation.Required.Error(t.T(KeyIdentifierRequired, nil)),
			validation.By(func(value interface{}) error {
				s, _ := value.(string)
				if IsEmail(s) || IsMobile(s) {
					return nil
				}
				return errors.New(t.T(KeyIdentifierInvalid, nil))
			}),
		),
		validation.Field(
			&f.Password,
			validation.Required.Error(t.T(KeyPasswordLength, nil)),
			validation.RuneLength(MinPasswordLength, 0).Error(t.T(KeyPasswordLength, nil)),
		),
	)
}

// SignupForm holds the registration inputs.
type SignupForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

func (f SignupForm) Validate(t Translator) error {
	return validation.ValidateStruct(&f,
		validation.Field(
			&f.Name,
			validation.By(func(value interface{}) error {
				s, _ := value.(string)
				if utf8.RuneCountInString(strings.TrimSpace(s)) >= MinNameLength {
					return nil
				}
				return errors.New(t.T(KeyNameLength, nil))
			}),
		),
		validation.Field(
			&f.Email,
			validation.Required.Error(t.T(KeyEmailInvalid, nil)),
			validation.Match(emailPattern).Error(t.T(KeyEmailInvalid, nil)),
		),
		validation.Field(
			&f.Mobile,
			validation.Required.Error(t.T(KeyMobileInvalid, nil)),
			validation.Match(mobilePattern).Error(t.T(KeyMobileInvalid, nil)),
		),
		validation.Field(
			&f.Password,
			validation.Required.Error(t.T(KeyPasswordLength, nil)),
			validation.RuneLength(MinPasswordLength, 0).Error(t.T(KeyPasswordLength, nil)),
		),
	)
}

// ForgotPasswordForm holds the email a reset link is sent to.
type ForgotPasswordForm struct {
	Email string `json:"resetEmail"`
}

func (f ForgotPasswordForm) Validate(t Translator) error {
	return validation.ValidateStruct(&f,
		validation.Field(
			&f.Email,
			validation.Required.Error(t.T(KeyEmailInvalid, nil)),
			validation.Match(emailPattern).Error(t.T(KeyEmailInvalid, nil)),
		),
	)
}

// FormatValidationErrorToMap flattens validation errors into a field name
// to message map. Other errors are reported under FormErrorKey.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, fieldErr := range fieldErrs {
			if fieldErr != nil {
				out[field] = fieldErr.Error()
			}
		}
		return out
	}

	out[FormErrorKey] = err.Error()
	return out
}
