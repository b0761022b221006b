package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
)

const (
	// NoResponseMessage is shown when the request was sent but nothing came back
	NoResponseMessage = "No response from server. Please check your connection."
	// GenericErrorMessage is the last resort message
	GenericErrorMessage = "Something went wrong. Please try again."
)

// HTTPError is a response received with a non-2xx status.
type HTTPError struct {
	Method     string
	Path       string
	Status     int
	StatusText string
	// Message is the backend supplied "message" field, if any
	Message string
	Body    []byte
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "http error"
	}
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.statusLine())
}

func (e *HTTPError) statusLine() string {
	text := e.StatusText
	if text == "" {
		text = http.StatusText(e.Status)
	}
	return strings.TrimSpace(fmt.Sprintf("%d %s", e.Status, text))
}

// Category maps the status code into a go-errors category
func (e *HTTPError) Category() goerrors.Category {
	switch e.Status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return goerrors.CategoryBadInput
	case http.StatusUnauthorized:
		return goerrors.CategoryAuth
	case http.StatusForbidden:
		return goerrors.CategoryAuthz
	case http.StatusNotFound:
		return goerrors.CategoryNotFound
	case http.StatusConflict:
		return goerrors.CategoryConflict
	case http.StatusTooManyRequests:
		return goerrors.CategoryRateLimit
	default:
		return goerrors.CategoryOperation
	}
}

// Rich converts the error into a go-errors value for structured logging
func (e *HTTPError) Rich() *goerrors.Error {
	return goerrors.Wrap(e, e.Category(), ErrorMessage(e)).
		WithCode(e.Status).
		WithMetadata(map[string]any{
			"method": e.Method,
			"path":   e.Path,
			"status": e.Status,
		})
}

// NoResponseError is returned when the transport failed before any
// response was received (connection refused, DNS, reset...).
type NoResponseError struct {
	Method string
	Path   string
	Err    error
}

func (e *NoResponseError) Error() string {
	if e == nil {
		return "no response"
	}
	return fmt.Sprintf("%s %s: no response: %v", e.Method, e.Path, e.Err)
}

func (e *NoResponseError) Unwrap() error { return e.Err }

// Is lets errors.Is match the darshan.ErrNoResponse sentinel
func (e *NoResponseError) Is(target error) bool {
	return target == darshan.ErrNoResponse
}

// ErrorMessage normalizes any request failure into a display string:
//   - non-2xx response: backend "message" or "<status> <status text>"
//   - no response: NoResponseMessage
//   - go-errors value: the message of the wrapped cause, else its own
//     message without the category prefix
//   - anything else: the error text or GenericErrorMessage
//
// It never panics and always returns a non-empty string.
func ErrorMessage(err error) string {
	if err == nil {
		return GenericErrorMessage
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if msg := strings.TrimSpace(httpErr.Message); msg != "" {
			return msg
		}
		return httpErr.statusLine()
	}

	var noResp *NoResponseError
	if errors.As(err, &noResp) && noResp != nil {
		return NoResponseMessage
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr != nil {
		if richErr.Source != nil {
			return ErrorMessage(richErr.Source)
		}
		if msg := strings.TrimSpace(richErr.Message); msg != "" {
			return msg
		}
	}

	if msg := safeErrorText(err); msg != "" {
		return msg
	}

	return GenericErrorMessage
}

// typed nil errors may panic inside Error()
func safeErrorText(err error) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = ""
		}
	}()
	return strings.TrimSpace(err.Error())
}

type apiErrorBody struct {
	Message string `json:"message"`
}

func apiErrorMessage(body []byte) string {
	var apiErr apiErrorBody
	if err := json.Unmarshal(body, &apiErr); err == nil {
		return strings.TrimSpace(apiErr.Message)
	}
	return ""
}

func newHTTPError(method, path string, resp *http.Response, body []byte) *HTTPError {
	statusText := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
	if statusText == "" {
		statusText = http.StatusText(resp.StatusCode)
	}
	return &HTTPError{
		Method:     method,
		Path:       path,
		Status:     resp.StatusCode,
		StatusText: statusText,
		Message:    apiErrorMessage(body),
		Body:       body,
	}
}
