package darshan

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeNoResponse       = "NO_RESPONSE"
	TextCodeRequestSetup     = "REQUEST_SETUP_FAILED"
	TextCodeSessionRestore   = "SESSION_RESTORE_FAILED"
	TextCodeTokenPersist     = "TOKEN_PERSIST_FAILED"
	TextCodeEmptyAuthPayload = "EMPTY_AUTH_PAYLOAD"
	TextCodeStorage          = "STORAGE_FAILURE"
)

// ErrNoResponse is used when a request was sent but no response came back
var ErrNoResponse = goerrors.New("no response from server", goerrors.CategoryOperation).
	WithTextCode(TextCodeNoResponse)

// ErrRequestSetup is used when a request could not be built or decorated
var ErrRequestSetup = goerrors.New("unable to prepare request", goerrors.CategoryBadInput).
	WithTextCode(TextCodeRequestSetup)

// ErrSessionRestore wraps failures while restoring a persisted session
var ErrSessionRestore = goerrors.New("unable to restore session", goerrors.CategoryAuth).
	WithTextCode(TextCodeSessionRestore)

// ErrTokenPersist is used when the session token cannot be written to storage
var ErrTokenPersist = goerrors.New("unable to persist session token", goerrors.CategoryInternal).
	WithTextCode(TextCodeTokenPersist)

// ErrEmptyAuthPayload is used when the backend answered 2xx without token or user
var ErrEmptyAuthPayload = goerrors.New("authentication response is missing token or user", goerrors.CategoryOperation).
	WithTextCode(TextCodeEmptyAuthPayload)

// ErrStorage wraps key/value storage failures
var ErrStorage = goerrors.New("storage failure", goerrors.CategoryInternal).
	WithTextCode(TextCodeStorage)

// Wrap attaches err to a copy of the sentinel category, message and text code.
func Wrap(err error, sentinel *goerrors.Error) *goerrors.Error {
	if sentinel == nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unexpected error")
	}
	return goerrors.Wrap(err, sentinel.Category, sentinel.Message).WithTextCode(sentinel.TextCode)
}

// HasTextCode reports whether err carries the given go-errors text code.
func HasTextCode(err error, code string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}
