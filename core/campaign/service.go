package campaign

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
)

var ErrNotFound = errors.New("campaign not found")

const entityName = "campaign"

type (
	Repository interface {
		CreateCampaign(ctx context.Context, c Campaign) (Campaign, error)
		QueryAllCampaigns(ctx context.Context) ([]Campaign, error)
		GetCampaignByID(ctx context.Context, id string) (Campaign, error)
		UpdateCampaign(ctx context.Context, c Campaign) (Campaign, error)
		DeleteCampaignByID(ctx context.Context, id string) error
	}

	// Service exposes campaign CRUD over the remote store. Campaigns have no
	// demo persistence; any authenticated identity may write.
	Service struct {
		repo  Repository
		idp   auth.IdentityProvider
		cache core.Invalidator
	}
)

func NewService(repo Repository, idp auth.IdentityProvider, cache core.Invalidator) *Service {
	return &Service{repo: repo, idp: idp, cache: cache}
}

func (svc *Service) Query(ctx context.Context) ([]Campaign, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return []Campaign{}, nil
	}
	return svc.repo.QueryAllCampaigns(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Campaign, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return Campaign{}, ErrNotFound
	}
	return svc.repo.GetCampaignByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nc NewCampaign) (Campaign, error) {
	ident, err := auth.RequireIdentity(ctx, svc.idp)
	if err != nil {
		return Campaign{}, err
	}

	now := time.Now().UTC()
	c := Campaign{
		Name:        nc.Name,
		Description: nc.Description,
		Status:      StatusDraft,
		StartDate:   nc.StartDate,
		EndDate:     nc.EndDate,
		CreatedBy:   ident.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c, err = svc.repo.CreateCampaign(ctx, c)
	if err != nil {
		return Campaign{}, core.NewRemoteStoreError("create", entityName, err)
	}
	svc.cache.Invalidate(core.CacheCampaigns)
	return c, nil
}

func (svc *Service) Update(ctx context.Context, id string, uc UpdateCampaign) (Campaign, error) {
	if _, err := auth.RequireIdentity(ctx, svc.idp); err != nil {
		return Campaign{}, err
	}

	c, err := svc.repo.GetCampaignByID(ctx, id)
	if err != nil {
		return Campaign{}, core.NewRemoteStoreError("update", entityName, err)
	}
	c = uc.apply(c)
	c.UpdatedAt = time.Now().UTC()

	c, err = svc.repo.UpdateCampaign(ctx, c)
	if err != nil {
		return Campaign{}, core.NewRemoteStoreError("update", entityName, err)
	}
	svc.cache.Invalidate(core.CacheCampaigns)
	return c, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := auth.RequireIdentity(ctx, svc.idp); err != nil {
		return err
	}
	if err := svc.repo.DeleteCampaignByID(ctx, id); err != nil {
		return core.NewRemoteStoreError("delete", entityName, err)
	}
	svc.cache.Invalidate(core.CacheCampaigns)
	return nil
}
