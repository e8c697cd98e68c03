package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/Reema362/learn-spark-lms-sub001/core/campaign"
)

type campaignRepository struct {
	mutex     sync.RWMutex
	campaigns []campaign.Campaign
}

func NewCampaignRepository() campaign.Repository {
	return &campaignRepository{}
}

func (repo *campaignRepository) CreateCampaign(_ context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	c.ID = newID()
	repo.campaigns = append(repo.campaigns, c)
	return c, nil
}

func (repo *campaignRepository) QueryAllCampaigns(_ context.Context) ([]campaign.Campaign, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]campaign.Campaign, len(repo.campaigns))
	copy(out, repo.campaigns)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (repo *campaignRepository) GetCampaignByID(_ context.Context, id string) (campaign.Campaign, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, c := range repo.campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return campaign.Campaign{}, campaign.ErrNotFound
}

func (repo *campaignRepository) UpdateCampaign(_ context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for i := range repo.campaigns {
		if repo.campaigns[i].ID == c.ID {
			repo.campaigns[i] = c
			return c, nil
		}
	}
	return campaign.Campaign{}, campaign.ErrNotFound
}

func (repo *campaignRepository) DeleteCampaignByID(_ context.Context, id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	out := repo.campaigns[:0]
	for _, c := range repo.campaigns {
		if c.ID != id {
			out = append(out, c)
		}
	}
	repo.campaigns = out
	return nil
}
