// Package authflow implements the auth modal: a small view state machine
// (login, signup, forgot password, reset sent) with per view form state,
// submit time validation and submission through an Authenticator.
//
// The modal holds no presentation. A UI renders View, the form values,
// FieldErrors and FormError, and forwards user actions to the Show*,
// Set*, Submit and Close methods.
package authflow
