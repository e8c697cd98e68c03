package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Reema362/learn-spark-lms-sub001/core/template"
)

type templateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) template.Repository {
	return &templateRepository{db: db}
}

func (repo *templateRepository) CreateTemplate(ctx context.Context, tpl template.Template) (template.Template, error) {
	q := `
INSERT INTO template (id, name, type, subject, content, variables, category, is_active, created_by, created_at, updated_at)
VALUES (:id, :name, :type, :subject, :content, :variables, :category, :is_active, :created_by, :created_at, :updated_at)`
	tpl.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, q, tpl); err != nil {
		return template.Template{}, err
	}
	return tpl, nil
}

func (repo *templateRepository) QueryAllTemplates(ctx context.Context) ([]template.Template, error) {
	tpls := []template.Template{}
	err := repo.db.SelectContext(ctx, &tpls, `SELECT * FROM template ORDER BY created_at DESC`)
	return tpls, err
}

func (repo *templateRepository) GetTemplateByID(ctx context.Context, id string) (template.Template, error) {
	var tpl template.Template
	err := repo.db.GetContext(ctx, &tpl, `SELECT * FROM template WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return template.Template{}, template.ErrNotFound
	}
	return tpl, err
}

func (repo *templateRepository) UpdateTemplate(ctx context.Context, tpl template.Template) (template.Template, error) {
	q := `
UPDATE template
SET name = :name, type = :type, subject = :subject, content = :content,
    variables = :variables, category = :category, is_active = :is_active, updated_at = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, tpl)
	if err != nil {
		return template.Template{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return template.Template{}, template.ErrNotFound
	}
	return tpl, nil
}

func (repo *templateRepository) DeleteTemplateByID(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM template WHERE id = $1`, id)
	return err
}
