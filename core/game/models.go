package game

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Reema362/learn-spark-lms-sub001/core"
)

// Game is a security-awareness quiz definition.
type Game struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Topic       string    `json:"topic" db:"topic"`
	Questions   int       `json:"questions" db:"questions"`
	PassScore   int       `json:"pass_score" db:"pass_score"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
}

// Session is one learner's play-through of a game.
type Session struct {
	ID          string    `json:"id" db:"id"`
	GameID      string    `json:"game_id" db:"game_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Score       int       `json:"score" db:"score"`
	Total       int       `json:"total" db:"total"`
	Passed      bool      `json:"passed" db:"passed"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"` // UTC
}

// Stats aggregates a user's game performance.
type Stats struct {
	UserID       string `json:"user_id"`
	Played       int    `json:"played"`
	Passed       int    `json:"passed"`
	BestScore    int    `json:"best_score"`
	AverageScore int    `json:"average_score"`
}

// NewGame contains information needed to create a new Game.
type NewGame struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Topic       string `json:"topic"`
	Questions   int    `json:"questions" validate:"required,gt=0"`
	PassScore   int    `json:"pass_score" validate:"gte=0"`
}

func (ng *NewGame) Validate(validate *validator.Validate) error {
	ng.Title = core.SanitizeInput(ng.Title)
	ng.Description = core.SanitizeInput(ng.Description)
	return validate.Struct(ng)
}

// NewSession records a finished play-through.
type NewSession struct {
	GameID string `json:"game_id" validate:"required"`
	Score  int    `json:"score" validate:"gte=0"`
	Total  int    `json:"total" validate:"required,gt=0"`
}

func (ns NewSession) Validate(validate *validator.Validate) error {
	return validate.Struct(ns)
}
