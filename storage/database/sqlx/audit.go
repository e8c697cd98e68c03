package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Reema362/learn-spark-lms-sub001/core/audit"
)

type auditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) audit.Repository {
	return &auditRepository{db: db}
}

func (repo *auditRepository) CreateEntry(ctx context.Context, e audit.Entry) (audit.Entry, error) {
	q := `
INSERT INTO audit_log (id, user_id, user_email, action, resource, resource_id, details, created_at)
VALUES (:id, :user_id, :user_email, :action, :resource, :resource_id, :details, :created_at)`
	e.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, q, e); err != nil {
		return audit.Entry{}, err
	}
	return e, nil
}

func (repo *auditRepository) QueryAllEntries(ctx context.Context) ([]audit.Entry, error) {
	entries := []audit.Entry{}
	err := repo.db.SelectContext(ctx, &entries, `SELECT * FROM audit_log ORDER BY created_at DESC`)
	return entries, err
}
