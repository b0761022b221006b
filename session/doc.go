// Package session holds the shared authentication state of the client.
//
// A Store starts bootstrapping, restores a persisted token once through
// Init and then moves between anonymous and authenticated through Login,
// Signup and Logout. Consumers read snapshots or Subscribe to changes.
package session
