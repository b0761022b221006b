package session

import (
	"time"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
)

// DefaultTokenKey is the storage key holding the session token
const DefaultTokenKey = "token"

// Option customizes a Store.
type Option func(*Store)

// WithLogger overrides the logger.
func WithLogger(logger darshan.Logger) Option {
	return func(s *Store) {
		s.logger = darshan.NormalizeLogger(logger)
	}
}

// WithActivitySink publishes session events to sink.
func WithActivitySink(sink darshan.ActivitySink) Option {
	return func(s *Store) {
		s.activity = darshan.NormalizeActivitySink(sink)
	}
}

// WithTokenKey overrides the storage key of the token.
func WithTokenKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.tokenKey = key
		}
	}
}

// WithSkipExpiredTokens makes Init drop a JWT whose exp is in the past
// without calling the backend. Opaque tokens are always verified remotely.
func WithSkipExpiredTokens() Option {
	return func(s *Store) {
		s.skipExpired = true
	}
}

// WithClock injects the clock used for token expiry and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}
