// Package darshan holds the shared domain types of the Divine Darshan client:
// the backend models (users, temples, services, bookings, testimonials,
// subscriptions), roles, the Logger interface and the error sentinels used by
// the client packages.
//
// Packages:
//   - client wraps the REST backend. It resolves the base URL once, runs
//     request decorators (bearer token, request id) before every call and
//     normalizes failures into display strings with ErrorMessage.
//   - storage abstracts token persistence as a small key/value capability with
//     memory, SQLite (bun) and Redis implementations.
//   - session owns authentication state. Init restores a persisted token,
//     Login/Signup/Logout drive the transitions and Subscribe notifies UI
//     consumers of every change.
//   - authflow is the login modal: four views, ozzo-validation rule sets and
//     submit handling on top of a session.Store.
//
// Activity sinks:
//   - ActivitySink receives session lifecycle events (restore, login, signup,
//     logout). Sinks run best-effort, errors are logged and never change the
//     session state. activitymap normalizes events for log or audit pipelines.
package darshan
