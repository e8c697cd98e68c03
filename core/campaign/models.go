package campaign

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Reema362/learn-spark-lms-sub001/core"
)

// Statuses
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

// Campaign is a scheduled security-awareness push targeting learners.
type Campaign struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// NewCampaign contains information needed to create a new Campaign.
type NewCampaign struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date" validate:"omitempty,gtefield=StartDate"`
}

func (nc *NewCampaign) Validate(validate *validator.Validate) error {
	nc.Name = core.SanitizeInput(nc.Name)
	nc.Description = core.SanitizeInput(nc.Description)
	return validate.Struct(nc)
}

// UpdateCampaign defines what information may be provided to modify an
// existing Campaign. Zero-valued fields are left untouched.
type UpdateCampaign struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status" validate:"omitempty,oneof=draft active paused completed"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

func (uc *UpdateCampaign) Validate(validate *validator.Validate) error {
	uc.Name = core.SanitizeInput(uc.Name)
	uc.Description = core.SanitizeInput(uc.Description)
	return validate.Struct(uc)
}

func (uc UpdateCampaign) apply(c Campaign) Campaign {
	if uc.Name != "" {
		c.Name = uc.Name
	}
	if uc.Description != "" {
		c.Description = uc.Description
	}
	if uc.Status != "" {
		c.Status = uc.Status
	}
	if !uc.StartDate.IsZero() {
		c.StartDate = uc.StartDate
	}
	if !uc.EndDate.IsZero() {
		c.EndDate = uc.EndDate
	}
	return c
}
