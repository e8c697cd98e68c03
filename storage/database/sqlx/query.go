package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Reema362/learn-spark-lms-sub001/core/query"
)

type queryRepository struct {
	db *sqlx.DB
}

func NewQueryRepository(db *sqlx.DB) query.Repository {
	return &queryRepository{db: db}
}

func (repo *queryRepository) CreateQuery(ctx context.Context, q query.Query) (query.Query, error) {
	stmt := `
INSERT INTO support_query (id, subject, message, status, response, created_by, created_at, updated_at)
VALUES (:id, :subject, :message, :status, :response, :created_by, :created_at, :updated_at)`
	q.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, stmt, q); err != nil {
		return query.Query{}, err
	}
	return q, nil
}

func (repo *queryRepository) QueryAllQueries(ctx context.Context) ([]query.Query, error) {
	queries := []query.Query{}
	err := repo.db.SelectContext(ctx, &queries, `SELECT * FROM support_query ORDER BY created_at DESC`)
	return queries, err
}

func (repo *queryRepository) GetQueryByID(ctx context.Context, id string) (query.Query, error) {
	var q query.Query
	err := repo.db.GetContext(ctx, &q, `SELECT * FROM support_query WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return query.Query{}, query.ErrNotFound
	}
	return q, err
}

func (repo *queryRepository) UpdateQuery(ctx context.Context, q query.Query) (query.Query, error) {
	stmt := `
UPDATE support_query
SET subject = :subject, message = :message, status = :status,
    response = :response, updated_at = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, stmt, q)
	if err != nil {
		return query.Query{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return query.Query{}, query.ErrNotFound
	}
	return q, nil
}

func (repo *queryRepository) DeleteQueryByID(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM support_query WHERE id = $1`, id)
	return err
}
