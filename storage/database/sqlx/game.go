package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Reema362/learn-spark-lms-sub001/core/game"
)

type gameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) game.Repository {
	return &gameRepository{db: db}
}

func (repo *gameRepository) CreateGame(ctx context.Context, g game.Game) (game.Game, error) {
	q := `
INSERT INTO game (id, title, description, topic, questions, pass_score, is_active, created_by, created_at)
VALUES (:id, :title, :description, :topic, :questions, :pass_score, :is_active, :created_by, :created_at)`
	g.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, q, g); err != nil {
		return game.Game{}, err
	}
	return g, nil
}

func (repo *gameRepository) QueryAllGames(ctx context.Context) ([]game.Game, error) {
	games := []game.Game{}
	err := repo.db.SelectContext(ctx, &games, `SELECT * FROM game ORDER BY created_at DESC`)
	return games, err
}

func (repo *gameRepository) GetGameByID(ctx context.Context, id string) (game.Game, error) {
	var g game.Game
	err := repo.db.GetContext(ctx, &g, `SELECT * FROM game WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return game.Game{}, game.ErrNotFound
	}
	return g, err
}

func (repo *gameRepository) DeleteGameByID(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM game WHERE id = $1`, id)
	return err
}

func (repo *gameRepository) CreateSession(ctx context.Context, s game.Session) (game.Session, error) {
	q := `
INSERT INTO game_session (id, game_id, user_id, score, total, passed, completed_at)
VALUES (:id, :game_id, :user_id, :score, :total, :passed, :completed_at)`
	s.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, q, s); err != nil {
		return game.Session{}, err
	}
	return s, nil
}

func (repo *gameRepository) QuerySessionsByUser(ctx context.Context, userID string) ([]game.Session, error) {
	sessions := []game.Session{}
	err := repo.db.SelectContext(ctx, &sessions, `SELECT * FROM game_session WHERE user_id = $1 ORDER BY completed_at DESC`, userID)
	return sessions, err
}
