package repository

import (
	"github.com/onegreenvn/phishing-campaign-service/internal/models"

	"gorm.io/gorm"
)

type CampaignRunRepository struct {
	db *gorm.DB
}

func NewCampaignRunRepository(db *gorm.DB) *CampaignRunRepository {
	return &CampaignRunRepository{db: db}
}

// Create creates a new run record
func (r *CampaignRunRepository) Create(run *models.CampaignRun) error {
	return r.db.Create(run).Error
}

// GetByCampaignID returns the runs of a campaign, most recent first
func (r *CampaignRunRepository) GetByCampaignID(campaignID string, limit int) ([]*models.CampaignRun, error) {
	var runs []*models.CampaignRun
	query := r.db.Where("campaign_id = ?", campaignID).Order("executed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&runs).Error
	return runs, err
}
