package template

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
)

var ErrNotFound = errors.New("template not found")

const entityName = "template"

type (
	Repository interface {
		CreateTemplate(ctx context.Context, tpl Template) (Template, error)
		QueryAllTemplates(ctx context.Context) ([]Template, error)
		GetTemplateByID(ctx context.Context, id string) (Template, error)
		UpdateTemplate(ctx context.Context, tpl Template) (Template, error)
		DeleteTemplateByID(ctx context.Context, id string) error
	}

	// Service exposes template CRUD over the remote store. Templates have no
	// demo persistence: demo identities see empty listings. Writes are
	// admin-only and invalidate the "templates" cache key.
	Service struct {
		repo  Repository
		idp   auth.IdentityProvider
		cache core.Invalidator
	}
)

func NewService(repo Repository, idp auth.IdentityProvider, cache core.Invalidator) *Service {
	return &Service{repo: repo, idp: idp, cache: cache}
}

// Query lists templates, creation time descending. Demo identities and
// anonymous callers get an empty sequence; remote errors are returned for the
// caller to degrade as it sees fit.
func (svc *Service) Query(ctx context.Context) ([]Template, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return []Template{}, nil
	}
	return svc.repo.QueryAllTemplates(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Template, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return Template{}, ErrNotFound
	}
	return svc.repo.GetTemplateByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nt NewTemplate) (Template, error) {
	ident, err := auth.RequireAdmin(ctx, svc.idp)
	if err != nil {
		return Template{}, err
	}

	now := time.Now().UTC()
	isActive := true
	if nt.IsActive != nil {
		isActive = *nt.IsActive
	}
	tpl := Template{
		Name:      nt.Name,
		Type:      nt.Type,
		Subject:   nt.Subject,
		Content:   nt.Content,
		Variables: nt.Variables,
		Category:  CategoryForName(nt.Name),
		IsActive:  isActive,
		CreatedBy: ident.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	tpl, err = svc.repo.CreateTemplate(ctx, tpl)
	if err != nil {
		return Template{}, core.NewRemoteStoreError("create", entityName, err)
	}
	svc.cache.Invalidate(core.CacheTemplates)
	return tpl, nil
}

func (svc *Service) Update(ctx context.Context, id string, ut UpdateTemplate) (Template, error) {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return Template{}, err
	}

	tpl, err := svc.repo.GetTemplateByID(ctx, id)
	if err != nil {
		return Template{}, core.NewRemoteStoreError("update", entityName, err)
	}
	tpl = ut.apply(tpl)
	tpl.UpdatedAt = time.Now().UTC()

	tpl, err = svc.repo.UpdateTemplate(ctx, tpl)
	if err != nil {
		return Template{}, core.NewRemoteStoreError("update", entityName, err)
	}
	svc.cache.Invalidate(core.CacheTemplates)
	return tpl, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return err
	}
	if err := svc.repo.DeleteTemplateByID(ctx, id); err != nil {
		return core.NewRemoteStoreError("delete", entityName, err)
	}
	svc.cache.Invalidate(core.CacheTemplates)
	return nil
}
