package model

import "time"

// Priority represents the urgency of an action item
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// IsValid returns true if the priority is a known value
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Grid layout constants. A mandalart always has 9 strategies and each
// strategy always has 9 action items; position 4 is the center cell.
const (
	GridSize       = 9
	CenterPosition = 4
)

// Field length limits
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
	MaxNotesLength       = 1000
)

// Mandalart represents a root goal container owned by one user
type Mandalart struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Strategy is one of the 9 sub-goals of a mandalart.
// Position 4 is the core goal slot.
type Strategy struct {
	ID          string  `json:"id"`
	MandalartID string  `json:"mandalart_id"`
	Position    int     `json:"position"`
	Title       string  `json:"title"`
	Color       *string `json:"color,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// ActionItem is a leaf task under a strategy.
// The position 4 item is the center cell mirroring the strategy title.
type ActionItem struct {
	ID          string     `json:"id"`
	StrategyID  string     `json:"strategy_id"`
	Position    int        `json:"position"`
	IsCenter    bool       `json:"is_center"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Deadline    *string    `json:"deadline,omitempty"` // YYYY-MM-DD
	Priority    *Priority  `json:"priority,omitempty"`
}

// CreateMandalartRequest creates the full 1+9+81 grid
type CreateMandalartRequest struct {
	Title    string `json:"title"`
	CoreGoal string `json:"core_goal"`
}

// Validate checks if the create request is valid
func (r *CreateMandalartRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Title == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	} else if len(r.Title) > MaxTitleLength {
		errors = append(errors, FieldError{Field: "title", Message: "title must be 100 characters or less"})
	}
	if r.CoreGoal == "" {
		errors = append(errors, FieldError{Field: "core_goal", Message: "core_goal is required"})
	} else if len(r.CoreGoal) > MaxTitleLength {
		errors = append(errors, FieldError{Field: "core_goal", Message: "core_goal must be 100 characters or less"})
	}

	return errors
}

// UpdateMandalartRequest is a partial update; nil fields are left unchanged
type UpdateMandalartRequest struct {
	Title *string `json:"title"`
}

// Validate checks if the update request is valid
func (r *UpdateMandalartRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Title != nil {
		if *r.Title == "" {
			errors = append(errors, FieldError{Field: "title", Message: "title cannot be empty"})
		} else if len(*r.Title) > MaxTitleLength {
			errors = append(errors, FieldError{Field: "title", Message: "title must be 100 characters or less"})
		}
	}

	return errors
}

// UpdateStrategyRequest is a partial update; nil fields are left unchanged
type UpdateStrategyRequest struct {
	Title *string `json:"title"`
	Color *string `json:"color"`
	Notes *string `json:"notes"`
}

// Validate checks if the strategy update request is valid
func (r *UpdateStrategyRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Title != nil {
		if *r.Title == "" {
			errors = append(errors, FieldError{Field: "title", Message: "title cannot be empty"})
		} else if len(*r.Title) > MaxTitleLength {
			errors = append(errors, FieldError{Field: "title", Message: "title must be 100 characters or less"})
		}
	}
	if r.Notes != nil && len(*r.Notes) > MaxNotesLength {
		errors = append(errors, FieldError{Field: "notes", Message: "notes must be 1000 characters or less"})
	}

	return errors
}

// UpdateActionItemRequest is a partial update; nil fields are left unchanged
type UpdateActionItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Deadline    *string `json:"deadline"` // YYYY-MM-DD
	Priority    *string `json:"priority"` // HIGH, MEDIUM, LOW
}

// Validate checks if the action item update request is valid.
// Deadline format and priority values are verified by the service,
// which reports them as sentinel errors.
func (r *UpdateActionItemRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Title != nil {
		if *r.Title == "" {
			errors = append(errors, FieldError{Field: "title", Message: "title cannot be empty"})
		} else if len(*r.Title) > MaxTitleLength {
			errors = append(errors, FieldError{Field: "title", Message: "title must be 100 characters or less"})
		}
	}
	if r.Description != nil && len(*r.Description) > MaxDescriptionLength {
		errors = append(errors, FieldError{Field: "description", Message: "description must be 1000 characters or less"})
	}

	return errors
}

// MandalartSummary is a list-view projection of a mandalart
type MandalartSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// ToSummary converts a Mandalart to its list representation
func (m *Mandalart) ToSummary() *MandalartSummary {
	return &MandalartSummary{
		ID:        m.ID,
		Title:     m.Title,
		CreatedOn: m.CreatedOn,
		UpdatedOn: m.UpdatedOn,
	}
}

// StrategyWithItems pairs a strategy with its action items sorted by position
type StrategyWithItems struct {
	Strategy    *Strategy     `json:"strategy"`
	ActionItems []*ActionItem `json:"action_items"`
}

// MandalartDetail is the full grid response: the mandalart plus its 9
// strategies (sorted by position), each with its 9 items (sorted by position)
type MandalartDetail struct {
	Mandalart  *Mandalart           `json:"mandalart"`
	Strategies []*StrategyWithItems `json:"strategies"`
}
