package template

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
)

// Template types
const (
	TypeEmail        = "email"
	TypeSMS          = "sms"
	TypeAlert        = "alert"
	TypeNotification = "notification"
)

// Template categories derived from the template name.
const (
	CategoryCourseAssignment    = "course-assignment"
	CategoryCourseCompletion    = "course-completion"
	CategoryCourseReminder      = "course-reminder"
	CategoryCourseQuizFailure   = "course-quiz-failure"
	CategoryManagerReminder     = "manager-reminder"
	CategoryCourseCertification = "course-certification"
	CategoryCustom              = "custom"
)

// categoryRules is an ordered keyword table: the first rule whose keyword
// occurs in the lowered template name wins.
var categoryRules = []struct {
	keywords []string
	category string
}{
	{[]string{"course assignment", "send course"}, CategoryCourseAssignment},
	{[]string{"course completion"}, CategoryCourseCompletion},
	{[]string{"course reminder"}, CategoryCourseReminder},
	{[]string{"quiz failure"}, CategoryCourseQuizFailure},
	{[]string{"manager reminder"}, CategoryManagerReminder},
	{[]string{"certification"}, CategoryCourseCertification},
}

// CategoryForName derives a template's category from its name. The value is
// attached at create time only and is not recomputed on update.
func CategoryForName(name string) string {
	name = strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}
	return CategoryCustom
}

// Variable is a named placeholder available to a template's content.
type Variable struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// Variables is an ordered list of template variables, stored as JSONB.
type Variables []Variable

func (v Variables) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	return json.Marshal(v)
}

func (v *Variables) Scan(src interface{}) error {
	switch data := src.(type) {
	case nil:
		*v = nil
		return nil
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	}
	return errors.Errorf("unsupported Variables source %T", src)
}

type Template struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Type      string    `json:"type" db:"type"`
	Subject   string    `json:"subject" db:"subject"`
	Content   string    `json:"content" db:"content"`
	Variables Variables `json:"variables" db:"variables"`
	Category  string    `json:"category" db:"category"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// NewTemplate contains information needed to create a new Template.
type NewTemplate struct {
	Name      string    `json:"name" validate:"required"`
	Type      string    `json:"type" validate:"required,oneof=email sms alert notification"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content" validate:"required"`
	Variables Variables `json:"variables" validate:"omitempty,dive"`
	IsActive  *bool     `json:"is_active"`
}

func (nt *NewTemplate) Validate(validate *validator.Validate) error {
	nt.Name = core.SanitizeInput(nt.Name)
	nt.Subject = core.SanitizeInput(nt.Subject)
	return validate.Struct(nt)
}

// UpdateTemplate defines what information may be provided to modify an
// existing Template. Zero-valued fields are left untouched.
type UpdateTemplate struct {
	Name      string    `json:"name"`
	Type      string    `json:"type" validate:"omitempty,oneof=email sms alert notification"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Variables Variables `json:"variables" validate:"omitempty,dive"`
	IsActive  *bool     `json:"is_active"`
}

func (ut *UpdateTemplate) Validate(validate *validator.Validate) error {
	ut.Name = core.SanitizeInput(ut.Name)
	ut.Subject = core.SanitizeInput(ut.Subject)
	return validate.Struct(ut)
}

func (ut UpdateTemplate) apply(tpl Template) Template {
	if ut.Name != "" {
		tpl.Name = ut.Name
	}
	if ut.Type != "" {
		tpl.Type = ut.Type
	}
	if ut.Subject != "" {
		tpl.Subject = ut.Subject
	}
	if ut.Content != "" {
		tpl.Content = ut.Content
	}
	if ut.Variables != nil {
		tpl.Variables = ut.Variables
	}
	if ut.IsActive != nil {
		tpl.IsActive = *ut.IsActive
	}
	return tpl
}
