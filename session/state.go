package session

import (
	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
)

// Phase is the lifecycle stage derived from State.
type Phase string

const (
	// PhaseBootstrapping is the initial phase, before Init has resolved
	PhaseBootstrapping Phase = "bootstrapping"
	// PhaseAnonymous means no user is signed in
	PhaseAnonymous Phase = "anonymous"
	// PhaseAuthenticated means a user is signed in
	PhaseAuthenticated Phase = "authenticated"
)

// State is a snapshot of the session.
type State struct {
	User      *darshan.User
	IsLoading bool
}

// IsAuthenticated is true exactly when a user is present.
func (s State) IsAuthenticated() bool {
	return s.User != nil
}

// Phase derives the lifecycle phase. A user restored or logged in wins
// over the loading flag.
func (s State) Phase() Phase {
	switch {
	case s.User != nil:
		return PhaseAuthenticated
	case s.IsLoading:
		return PhaseBootstrapping
	default:
		return PhaseAnonymous
	}
}

func (s State) clone() State {
	return State{User: s.User.Clone(), IsLoading: s.IsLoading}
}

// Result is the outcome of Login and Signup. Error is a display ready
// message and is empty on success.
type Result struct {
	Success bool
	Error   string
}

// SignupInput carries the registration fields.
type SignupInput struct {
	Name     string
	Mobile   string
	Email    string
	Password string
}
