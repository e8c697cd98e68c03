package query

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
)

var ErrNotFound = errors.New("query not found")

const entityName = "query"

type (
	Repository interface {
		CreateQuery(ctx context.Context, q Query) (Query, error)
		QueryAllQueries(ctx context.Context) ([]Query, error)
		GetQueryByID(ctx context.Context, id string) (Query, error)
		UpdateQuery(ctx context.Context, q Query) (Query, error)
		DeleteQueryByID(ctx context.Context, id string) error
	}

	// Service exposes support-query CRUD over the remote store. Queries have
	// no demo persistence. Any authenticated identity may submit one;
	// responding and deleting are admin-only.
	Service struct {
		repo  Repository
		idp   auth.IdentityProvider
		cache core.Invalidator
	}
)

func NewService(repo Repository, idp auth.IdentityProvider, cache core.Invalidator) *Service {
	return &Service{repo: repo, idp: idp, cache: cache}
}

func (svc *Service) Query(ctx context.Context) ([]Query, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return []Query{}, nil
	}
	items, err := svc.repo.QueryAllQueries(ctx)
	if err != nil {
		return nil, err
	}
	// learners only see their own submissions
	if !ident.IsAdmin() {
		own := make([]Query, 0, len(items))
		for _, q := range items {
			if q.CreatedBy == ident.ID {
				own = append(own, q)
			}
		}
		items = own
	}
	return items, nil
}

func (svc *Service) Create(ctx context.Context, nq NewQuery) (Query, error) {
	ident, err := auth.RequireIdentity(ctx, svc.idp)
	if err != nil {
		return Query{}, err
	}

	now := time.Now().UTC()
	q := Query{
		Subject:   nq.Subject,
		Message:   nq.Message,
		Status:    StatusOpen,
		CreatedBy: ident.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	q, err = svc.repo.CreateQuery(ctx, q)
	if err != nil {
		return Query{}, core.NewRemoteStoreError("create", entityName, err)
	}
	svc.cache.Invalidate(core.CacheQueries)
	return q, nil
}

func (svc *Service) Update(ctx context.Context, id string, uq UpdateQuery) (Query, error) {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return Query{}, err
	}

	q, err := svc.repo.GetQueryByID(ctx, id)
	if err != nil {
		return Query{}, core.NewRemoteStoreError("update", entityName, err)
	}
	q = uq.apply(q)
	q.UpdatedAt = time.Now().UTC()

	q, err = svc.repo.UpdateQuery(ctx, q)
	if err != nil {
		return Query{}, core.NewRemoteStoreError("update", entityName, err)
	}
	svc.cache.Invalidate(core.CacheQueries)
	return q, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return err
	}
	if err := svc.repo.DeleteQueryByID(ctx, id); err != nil {
		return core.NewRemoteStoreError("delete", entityName, err)
	}
	svc.cache.Invalidate(core.CacheQueries)
	return nil
}
