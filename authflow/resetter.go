package authflow

import (
	"context"
	"time"
)

// DefaultResetDelay is the simulated latency of a password reset request
const DefaultResetDelay = 1500 * time.Millisecond

// PasswordResetter sends a password reset link to email.
type PasswordResetter interface {
	RequestPasswordReset(ctx context.Context, email string) error
}

// PasswordResetterFunc adapts a function to the PasswordResetter interface.
type PasswordResetterFunc func(ctx context.Context, email string) error

// RequestPasswordReset implements PasswordResetter.
func (f PasswordResetterFunc) RequestPasswordReset(ctx context.Context, email string) error {
	if f == nil {
		return nil
	}
	return f(ctx, email)
}

// SimulatedResetter waits Delay and reports success. No request is sent,
// the backend has no reset endpoint yet.
type SimulatedResetter struct {
	Delay time.Duration
}

func (r SimulatedResetter) RequestPasswordReset(ctx context.Context, _ string) error {
	if r.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(r.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
