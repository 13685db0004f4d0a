package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrNicknameRequired   = errors.New("nickname is required")
	ErrNicknameTooLong    = errors.New("nickname exceeds maximum length")
)

// ===== Token Errors =====
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
)

// ===== Mandalart Errors =====
var (
	ErrMandalartNotFound  = errors.New("mandalart not found")
	ErrStrategyNotFound   = errors.New("strategy not found")
	ErrActionItemNotFound = errors.New("action item not found")
	ErrForbidden          = errors.New("not authorized to access this resource")
)

// ===== Action Item Errors =====
var (
	ErrInvalidPriority       = errors.New("invalid priority")
	ErrInvalidDeadlineFormat = errors.New("invalid deadline format, expected YYYY-MM-DD")
)
