package user

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Reema362/learn-spark-lms-sub001/core"
)

// Role is a named permission bundle assignable to users.
type Role struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
}

// RoleAssignment links a user to a role.
type RoleAssignment struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	RoleID     string    `json:"role_id" db:"role_id"`
	AssignedBy string    `json:"assigned_by" db:"assigned_by"`
	AssignedAt time.Time `json:"assigned_at" db:"assigned_at"` // UTC
}

// NewRole contains information needed to create a new Role.
type NewRole struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (nr *NewRole) Validate(validate *validator.Validate) error {
	nr.Name = core.SanitizeInput(nr.Name)
	nr.Description = core.SanitizeInput(nr.Description)
	return validate.Struct(nr)
}

// NewRoleAssignment contains information needed to assign a role to a user.
type NewRoleAssignment struct {
	UserID string `json:"user_id" validate:"required"`
	RoleID string `json:"role_id" validate:"required"`
}

func (na NewRoleAssignment) Validate(validate *validator.Validate) error {
	return validate.Struct(na)
}
