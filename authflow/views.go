package authflow

// View is the sub form shown by the modal.
type View string

const (
	ViewLogin          View = "login"
	ViewSignup         View = "signup"
	ViewForgotPassword View = "forgot_password"
	ViewResetSent      View = "reset_sent"
)

func (v View) String() string {
	return string(v)
}

// IsValid reports whether v is a known view
func (v View) IsValid() bool {
	_, ok := viewTransitions[v]
	return ok
}

// ViewChangeHook runs after the modal moved from one view to another.
type ViewChangeHook func(from, to View)

// ResetSent is terminal: the only action left is closing the modal.
var viewTransitions = map[View]map[View]struct{}{
	ViewLogin: {
		ViewSignup:         {},
		ViewForgotPassword: {},
	},
	ViewSignup: {
		ViewLogin: {},
	},
	ViewForgotPassword: {
		ViewLogin:     {},
		ViewResetSent: {},
	},
	ViewResetSent: {},
}

// CanTransition reports whether the modal may move from one view to another.
func CanTransition(from, to View) bool {
	allowed, ok := viewTransitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}
