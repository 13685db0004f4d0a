// Package model defines domain entities and data structures for the Mandalateu API.
//
// The model package contains all struct definitions for domain objects, request/response
// types, and error definitions. Models are used across all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: Application user with authentication credentials
//   - Mandalart: Root goal container; owns exactly 9 strategies
//   - Strategy: One of the 9 sub-goals (position 4 is the core goal slot)
//   - ActionItem: Leaf task with completion state, deadline, and priority
//
// Dashboard report types (SummaryReport, WeeklyReport, StreakReport,
// DeadlineEntry) live in dashboard.go.
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Mandalart struct {
//	    ID     string `json:"id"`
//	    UserID string `json:"user_id"`
//	    Title  string `json:"title"`
//	}
//
// # Validation Constants
//
// The package defines validation constants:
//
//	const (
//	    GridSize       = 9
//	    CenterPosition = 4
//	    MaxTitleLength = 100
//	)
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
