package escalation

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
)

var ErrNotFound = errors.New("escalation not found")

const entityName = "escalation"

type (
	Repository interface {
		CreateEscalation(ctx context.Context, esc Escalation) (Escalation, error)
		QueryAllEscalations(ctx context.Context) ([]Escalation, error)
		GetEscalationByID(ctx context.Context, id string) (Escalation, error)
		UpdateEscalation(ctx context.Context, esc Escalation) (Escalation, error)
		DeleteEscalationByID(ctx context.Context, id string) error
	}

	// Service exposes escalation CRUD over the remote store. Escalations have
	// no demo persistence; writes are admin-only.
	Service struct {
		repo  Repository
		idp   auth.IdentityProvider
		cache core.Invalidator
	}
)

func NewService(repo Repository, idp auth.IdentityProvider, cache core.Invalidator) *Service {
	return &Service{repo: repo, idp: idp, cache: cache}
}

func (svc *Service) Query(ctx context.Context) ([]Escalation, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return []Escalation{}, nil
	}
	return svc.repo.QueryAllEscalations(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Escalation, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return Escalation{}, ErrNotFound
	}
	return svc.repo.GetEscalationByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, ne NewEscalation) (Escalation, error) {
	ident, err := auth.RequireAdmin(ctx, svc.idp)
	if err != nil {
		return Escalation{}, err
	}

	now := time.Now().UTC()
	esc := Escalation{
		Title:       ne.Title,
		Description: ne.Description,
		Status:      StatusOpen,
		Priority:    ne.Priority,
		AssignedTo:  ne.AssignedTo,
		CreatedBy:   ident.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	esc, err = svc.repo.CreateEscalation(ctx, esc)
	if err != nil {
		return Escalation{}, core.NewRemoteStoreError("create", entityName, err)
	}
	svc.cache.Invalidate(core.CacheEscalations)
	return esc, nil
}

func (svc *Service) Update(ctx context.Context, id string, ue UpdateEscalation) (Escalation, error) {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return Escalation{}, err
	}

	esc, err := svc.repo.GetEscalationByID(ctx, id)
	if err != nil {
		return Escalation{}, core.NewRemoteStoreError("update", entityName, err)
	}
	esc = ue.apply(esc)
	esc.UpdatedAt = time.Now().UTC()

	esc, err = svc.repo.UpdateEscalation(ctx, esc)
	if err != nil {
		return Escalation{}, core.NewRemoteStoreError("update", entityName, err)
	}
	svc.cache.Invalidate(core.CacheEscalations)
	return esc, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return err
	}
	if err := svc.repo.DeleteEscalationByID(ctx, id); err != nil {
		return core.NewRemoteStoreError("delete", entityName, err)
	}
	svc.cache.Invalidate(core.CacheEscalations)
	return nil
}
