// Package handler provides HTTP request handlers for the Mandalateu API.
//
// The handler package contains all HTTP endpoint implementations organized by domain.
// Each handler struct encapsulates the dependencies needed to serve requests for a
// specific feature area (authentication, mandalarts, dashboard, etc.).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts the service it delegates to
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details responses
//
// # Response Format
//
// Handlers use standardized response functions:
//
//   - WriteData: Single resource with optional HATEOAS links
//   - WriteCollection: Paginated list of resources
//   - WriteJSON: Raw JSON response
//   - WriteError: RFC 9457 Problem Details error response
//
// # Authentication
//
// All endpoints except /health and the auth endpoints require a JWT access
// token. The auth middleware extracts the user ID and makes it available
// via middleware.GetUserID(ctx).
//
// # Example Usage
//
//	handler := NewMandalartHandler(mandalartService)
//	mux.HandleFunc("GET /api/v1/mandalarts", handler.List)
//	mux.HandleFunc("POST /api/v1/mandalarts", handler.Create)
package handler
