package escalation

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Reema362/learn-spark-lms-sub001/core"
)

// Statuses
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

// Priorities
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

type Escalation struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	Priority    string    `json:"priority" db:"priority"`
	AssignedTo  string    `json:"assigned_to" db:"assigned_to"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// NewEscalation contains information needed to create a new Escalation.
type NewEscalation struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"required,oneof=low medium high critical"`
	AssignedTo  string `json:"assigned_to"`
}

func (ne *NewEscalation) Validate(validate *validator.Validate) error {
	ne.Title = core.SanitizeInput(ne.Title)
	ne.Description = core.SanitizeInput(ne.Description)
	return validate.Struct(ne)
}

// UpdateEscalation defines what information may be provided to modify an
// existing Escalation. Zero-valued fields are left untouched.
type UpdateEscalation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	AssignedTo  string `json:"assigned_to"`
}

func (ue *UpdateEscalation) Validate(validate *validator.Validate) error {
	ue.Title = core.SanitizeInput(ue.Title)
	ue.Description = core.SanitizeInput(ue.Description)
	return validate.Struct(ue)
}

func (ue UpdateEscalation) apply(esc Escalation) Escalation {
	if ue.Title != "" {
		esc.Title = ue.Title
	}
	if ue.Description != "" {
		esc.Description = ue.Description
	}
	if ue.Status != "" {
		esc.Status = ue.Status
	}
	if ue.Priority != "" {
		esc.Priority = ue.Priority
	}
	if ue.AssignedTo != "" {
		esc.AssignedTo = ue.AssignedTo
	}
	return esc
}
