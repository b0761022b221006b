package darshan

import (
	"context"
)

var userCtxKey = &contextKey{"user"}

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	if raw == nil {
		return nil, false
	}
	return raw, ok
}

// IsAdminContext reports whether the context user is an admin
func IsAdminContext(ctx context.Context) bool {
	user, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return user.IsAdmin()
}
