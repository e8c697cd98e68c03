package audit

import (
	"context"
	"time"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
)

type (
	Repository interface {
		CreateEntry(ctx context.Context, e Entry) (Entry, error)
		// QueryAllEntries returns entries ordered by creation time descending.
		QueryAllEntries(ctx context.Context) ([]Entry, error)
	}

	// Service records and lists the audit trail. Recording is best-effort
	// and never fails the calling operation; listing is admin-only.
	Service struct {
		repo   Repository
		idp    auth.IdentityProvider
		cache  core.Invalidator
		logger core.Logger
	}
)

func NewService(repo Repository, idp auth.IdentityProvider, cache core.Invalidator, logger core.Logger) *Service {
	return &Service{repo: repo, idp: idp, cache: cache, logger: logger}
}

// Record appends an audit entry for the current identity. Demo identities are
// not audited (their actions never reach the remote store). Failures are
// logged and swallowed.
func (svc *Service) Record(ctx context.Context, action, resource, resourceID, details string) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return
	}
	entry := Entry{
		UserID:    ident.ID,
		UserEmail: ident.Email,
		Action:    action,
		Resource:  resource,
		ResID:     resourceID,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := svc.repo.CreateEntry(ctx, entry); err != nil {
		svc.logger.Warn("recording audit entry", err)
		return
	}
	svc.cache.Invalidate(core.CacheAuditLogs)
}

func (svc *Service) Query(ctx context.Context) ([]Entry, error) {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return nil, err
	}
	return svc.repo.QueryAllEntries(ctx)
}
