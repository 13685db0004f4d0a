package model

import "time"

// User represents a user account
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	Hash      *string   `json:"-"` // Never expose password hash
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// TokenClaims represents extracted JWT claims
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname,omitempty"`
}

// UserInfo represents a user for API responses
type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	CreatedOn time.Time `json:"created_on"`
}

// ToInfo converts a User to its API representation
func (u *User) ToInfo() *UserInfo {
	return &UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		CreatedOn: u.CreatedOn,
	}
}

// MaxNicknameLength bounds user nicknames
const MaxNicknameLength = 30

// UpdateNicknameRequest represents a profile update
type UpdateNicknameRequest struct {
	Nickname string `json:"nickname"`
}

// Validate checks if the nickname update request is valid
func (r *UpdateNicknameRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Nickname == "" {
		errors = append(errors, FieldError{Field: "nickname", Message: "nickname is required"})
	} else if len(r.Nickname) > MaxNicknameLength {
		errors = append(errors, FieldError{Field: "nickname", Message: "nickname must be 30 characters or less"})
	}

	return errors
}
