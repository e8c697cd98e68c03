package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Reema362/learn-spark-lms-sub001/core/campaign"
)

type campaignRepository struct {
	db *sqlx.DB
}

func NewCampaignRepository(db *sqlx.DB) campaign.Repository {
	return &campaignRepository{db: db}
}

func (repo *campaignRepository) CreateCampaign(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	q := `
INSERT INTO campaign (id, name, description, status, start_date, end_date, created_by, created_at, updated_at)
VALUES (:id, :name, :description, :status, :start_date, :end_date, :created_by, :created_at, :updated_at)`
	c.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, q, c); err != nil {
		return campaign.Campaign{}, err
	}
	return c, nil
}

func (repo *campaignRepository) QueryAllCampaigns(ctx context.Context) ([]campaign.Campaign, error) {
	campaigns := []campaign.Campaign{}
	err := repo.db.SelectContext(ctx, &campaigns, `SELECT * FROM campaign ORDER BY created_at DESC`)
	return campaigns, err
}

func (repo *campaignRepository) GetCampaignByID(ctx context.Context, id string) (campaign.Campaign, error) {
	var c campaign.Campaign
	err := repo.db.GetContext(ctx, &c, `SELECT * FROM campaign WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return campaign.Campaign{}, campaign.ErrNotFound
	}
	return c, err
}

func (repo *campaignRepository) UpdateCampaign(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	q := `
UPDATE campaign
SET name = :name, description = :description, status = :status,
    start_date = :start_date, end_date = :end_date, updated_at = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, c)
	if err != nil {
		return campaign.Campaign{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return campaign.Campaign{}, campaign.ErrNotFound
	}
	return c, nil
}

func (repo *campaignRepository) DeleteCampaignByID(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM campaign WHERE id = $1`, id)
	return err
}
