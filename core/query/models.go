package query

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Reema362/learn-spark-lms-sub001/core"
)

// Statuses
const (
	StatusOpen      = "open"
	StatusResponded = "responded"
	StatusClosed    = "closed"
)

// Query is a learner-submitted support question.
type Query struct {
	ID        string    `json:"id" db:"id"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	Status    string    `json:"status" db:"status"`
	Response  string    `json:"response" db:"response"`
	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// NewQuery contains information needed to submit a new Query.
type NewQuery struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (nq *NewQuery) Validate(validate *validator.Validate) error {
	nq.Subject = core.SanitizeInput(nq.Subject)
	nq.Message = core.SanitizeInput(nq.Message)
	return validate.Struct(nq)
}

// UpdateQuery defines what may be modified on an existing Query, typically an
// admin responding to it. Zero-valued fields are left untouched.
type UpdateQuery struct {
	Status   string `json:"status" validate:"omitempty,oneof=open responded closed"`
	Response string `json:"response"`
}

func (uq *UpdateQuery) Validate(validate *validator.Validate) error {
	uq.Response = core.SanitizeInput(uq.Response)
	return validate.Struct(uq)
}

func (uq UpdateQuery) apply(q Query) Query {
	if uq.Status != "" {
		q.Status = uq.Status
	}
	if uq.Response != "" {
		q.Response = uq.Response
		if uq.Status == "" {
			q.Status = StatusResponded
		}
	}
	return q
}
