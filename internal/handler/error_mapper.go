package handler

import (
	"errors"

	"github.com/dlwnsgus777/my-mandalateu/internal/model"
	"github.com/dlwnsgus777/my-mandalateu/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())
	case errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrRefreshTokenExpired),
		errors.Is(err, service.ErrRefreshTokenRevoked):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrForbidden):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrMandalartNotFound):
		return model.NewNotFoundError("mandalart")
	case errors.Is(err, service.ErrStrategyNotFound):
		return model.NewNotFoundError("strategy")
	case errors.Is(err, service.ErrActionItemNotFound):
		return model.NewNotFoundError("action item")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "credentials", Message: err.Error()}})

	case errors.Is(err, service.ErrNicknameRequired),
		errors.Is(err, service.ErrNicknameTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "nickname", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidDeadlineFormat):
		return model.NewValidationError([]model.FieldError{{Field: "deadline", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidPriority):
		return model.NewValidationError([]model.FieldError{{Field: "priority", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
