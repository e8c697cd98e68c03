package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Reema362/learn-spark-lms-sub001/core"
)

// Course statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Lesson progress statuses
const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

type Course struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	CategoryID   string    `json:"category_id" db:"category_id"`
	Status       string    `json:"status" db:"status"`
	Duration     int       `json:"duration_minutes" db:"duration_minutes"`
	ThumbnailURL string    `json:"thumbnail_url" db:"thumbnail_url"`
	CreatedBy    string    `json:"created_by" db:"created_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
}

type Category struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Color       string    `json:"color" db:"color"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
}

type Lesson struct {
	ID         string    `json:"id" db:"id"`
	CourseID   string    `json:"course_id" db:"course_id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	VideoURL   string    `json:"video_url" db:"video_url"`
	OrderIndex int       `json:"order_index" db:"order_index"`
	Duration   int       `json:"duration_minutes" db:"duration_minutes"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"` // UTC
}

type LessonProgress struct {
	ID          string    `json:"id" db:"id"`
	LessonID    string    `json:"lesson_id" db:"lesson_id"`
	CourseID    string    `json:"course_id" db:"course_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Status      string    `json:"status" db:"status"`
	Percent     int       `json:"percent" db:"percent"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"` // UTC; zero until completed
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`     // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	Duration    int    `json:"duration_minutes" validate:"omitempty,gte=0"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.SanitizeInput(nc.Title)
	nc.Description = core.SanitizeInput(nc.Description)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing
// Course. Zero-valued fields are left untouched.
type UpdateCourse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	Status      string `json:"status" validate:"omitempty,oneof=draft published archived"`
	Duration    int    `json:"duration_minutes" validate:"omitempty,gte=0"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.Title = core.SanitizeInput(uc.Title)
	uc.Description = core.SanitizeInput(uc.Description)
	return validate.Struct(uc)
}

func (uc UpdateCourse) apply(c Course) Course {
	if uc.Title != "" {
		c.Title = uc.Title
	}
	if uc.Description != "" {
		c.Description = uc.Description
	}
	if uc.CategoryID != "" {
		c.CategoryID = uc.CategoryID
	}
	if uc.Status != "" {
		c.Status = uc.Status
	}
	if uc.Duration > 0 {
		c.Duration = uc.Duration
	}
	return c
}

// NewCategory contains information needed to create a new Category.
type NewCategory struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

func (nc *NewCategory) Validate(validate *validator.Validate) error {
	nc.Name = core.SanitizeInput(nc.Name)
	nc.Description = core.SanitizeInput(nc.Description)
	return validate.Struct(nc)
}

// NewLesson contains information needed to create a new Lesson.
type NewLesson struct {
	CourseID   string `json:"course_id" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content"`
	VideoURL   string `json:"video_url" validate:"omitempty,url"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
	Duration   int    `json:"duration_minutes" validate:"omitempty,gte=0"`
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.Title = core.SanitizeInput(nl.Title)
	return validate.Struct(nl)
}

// ProgressUpdate records a learner's advancement through a lesson.
type ProgressUpdate struct {
	LessonID string `json:"lesson_id" validate:"required"`
	CourseID string `json:"course_id"`
	Percent  int    `json:"percent" validate:"gte=0,lte=100"`
}

func (pu ProgressUpdate) Validate(validate *validator.Validate) error {
	return validate.Struct(pu)
}
