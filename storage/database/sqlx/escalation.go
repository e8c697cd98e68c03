package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Reema362/learn-spark-lms-sub001/core/escalation"
)

type escalationRepository struct {
	db *sqlx.DB
}

func NewEscalationRepository(db *sqlx.DB) escalation.Repository {
	return &escalationRepository{db: db}
}

func (repo *escalationRepository) CreateEscalation(ctx context.Context, esc escalation.Escalation) (escalation.Escalation, error) {
	q := `
INSERT INTO escalation (id, title, description, status, priority, assigned_to, created_by, created_at, updated_at)
VALUES (:id, :title, :description, :status, :priority, :assigned_to, :created_by, :created_at, :updated_at)`
	esc.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, q, esc); err != nil {
		return escalation.Escalation{}, err
	}
	return esc, nil
}

func (repo *escalationRepository) QueryAllEscalations(ctx context.Context) ([]escalation.Escalation, error) {
	escs := []escalation.Escalation{}
	err := repo.db.SelectContext(ctx, &escs, `SELECT * FROM escalation ORDER BY created_at DESC`)
	return escs, err
}

func (repo *escalationRepository) GetEscalationByID(ctx context.Context, id string) (escalation.Escalation, error) {
	var esc escalation.Escalation
	err := repo.db.GetContext(ctx, &esc, `SELECT * FROM escalation WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return escalation.Escalation{}, escalation.ErrNotFound
	}
	return esc, err
}

func (repo *escalationRepository) UpdateEscalation(ctx context.Context, esc escalation.Escalation) (escalation.Escalation, error) {
	q := `
UPDATE escalation
SET title = :title, description = :description, status = :status,
    priority = :priority, assigned_to = :assigned_to, updated_at = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, esc)
	if err != nil {
		return escalation.Escalation{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return escalation.Escalation{}, escalation.ErrNotFound
	}
	return esc, nil
}

func (repo *escalationRepository) DeleteEscalationByID(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM escalation WHERE id = $1`, id)
	return err
}
