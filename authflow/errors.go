package authflow

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeValidation        = "AUTH_FORM_VALIDATION"
	TextCodeInvalidTransition = "INVALID_VIEW_TRANSITION"
	TextCodeSubmitInProgress  = "SUBMIT_IN_PROGRESS"
	TextCodeAuthFailed        = "AUTH_FAILED"
)

// ErrValidation is returned by Submit when field validation failed. The
// messages are available through FieldErrors.
var ErrValidation = goerrors.New("form validation failed", goerrors.CategoryValidation).
	WithTextCode(TextCodeValidation).
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidTransition is returned when a view change is not allowed.
var ErrInvalidTransition = goerrors.New("invalid auth view transition", goerrors.CategoryBadInput).
	WithTextCode(TextCodeInvalidTransition).
	WithCode(goerrors.CodeBadRequest)

// ErrSubmitInProgress is returned when Submit is called while a previous
// submission has not completed.
var ErrSubmitInProgress = goerrors.New("submission already in progress", goerrors.CategoryConflict).
	WithTextCode(TextCodeSubmitInProgress).
	WithCode(goerrors.CodeConflict)

// ErrAuthFailed marks a rejected login or signup. The display message is
// available through FormError.
var ErrAuthFailed = goerrors.New("authentication failed", goerrors.CategoryAuth).
	WithTextCode(TextCodeAuthFailed).
	WithCode(goerrors.CodeUnauthorized)
