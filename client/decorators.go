package client

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Rohit-Goswami064/Divine-Darshan/storage"
)

const (
	// HeaderAuthorization carries the bearer token
	HeaderAuthorization = "Authorization"
	// HeaderRequestID carries a per request id
	HeaderRequestID = "X-Request-ID"
	// AuthScheme is the authorization scheme for session tokens
	AuthScheme = "Bearer"
)

// RequestDecorator mutates an outgoing request before it is sent.
// Returning an error aborts the request.
type RequestDecorator func(req *http.Request) error

// BearerToken reads the persisted token under key on every request and,
// when present, sets the Authorization header. Endpoint methods never set
// this header themselves.
func BearerToken(store storage.Store, key string) RequestDecorator {
	return func(req *http.Request) error {
		if store == nil {
			return nil
		}
		token, ok, err := store.Get(req.Context(), key)
		if err != nil {
			return err
		}
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			return nil
		}
		req.Header.Set(HeaderAuthorization, AuthScheme+" "+token)
		return nil
	}
}

// RequestID sets X-Request-ID to a random UUID unless already present.
func RequestID() RequestDecorator {
	return func(req *http.Request) error {
		if req.Header.Get(HeaderRequestID) != "" {
			return nil
		}
		req.Header.Set(HeaderRequestID, uuid.NewString())
		return nil
	}
}

// UserAgent sets the User-Agent header.
func UserAgent(agent string) RequestDecorator {
	return func(req *http.Request) error {
		if agent != "" {
			req.Header.Set("User-Agent", agent)
		}
		return nil
	}
}

// Chain composes decorators into one, running them in order.
func Chain(decorators ...RequestDecorator) RequestDecorator {
	return func(req *http.Request) error {
		for _, d := range decorators {
			if d == nil {
				continue
			}
			if err := d(req); err != nil {
				return err
			}
		}
		return nil
	}
}
