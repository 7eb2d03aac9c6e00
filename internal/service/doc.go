// Package service contains the application use cases: registration and
// account management, login and bearer authentication, the email
// verification lifecycle, and ownership-checked task management.
//
// Services coordinate domain objects and the store interfaces without
// depending on concrete infrastructure. Transactional boundaries are
// applied here when an operation spans multiple store calls, and access
// control (self-only accounts, owner-only tasks) is enforced here rather
// than in handlers or stores. Domain and store errors are translated to
// the application-level errors the API boundary maps to HTTP statuses.
package service
