// Package api contains the HTTP delivery layer: request/response DTOs,
// chi handlers for the auth, user and task endpoints, and the single
// error-to-status mapping applied at the boundary. Handlers stay thin;
// access control and business rules live in internal/service.
package api
