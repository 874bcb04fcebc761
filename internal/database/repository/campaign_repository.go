package repository

import (
	"errors"
	"time"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create creates a new campaign
func (r *CampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// GetByID retrieves a campaign by ID
func (r *CampaignRepository) GetByID(id string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.First(&campaign, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

// List returns a page of campaigns, newest first, optionally for one company
func (r *CampaignRepository) List(companyName string, offset, limit int) ([]*models.Campaign, int64, error) {
	query := r.db.Model(&models.Campaign{})
	if companyName != "" {
		query = query.Where("company_name = ?", companyName)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []*models.Campaign
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&campaigns).Error
	return campaigns, total, err
}

// ListActiveRecurring returns every campaign the scheduler should be driving
func (r *CampaignRepository) ListActiveRecurring() ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	err := r.db.Where("is_active = ? AND is_recurring = ?", true, true).
		Order("created_at").
		Find(&campaigns).Error
	return campaigns, err
}

// SetActive writes only is_active
func (r *CampaignRepository) SetActive(id string, active bool) error {
	res := r.db.Model(&models.Campaign{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

// RecordRun writes only the run counters of a scheduled run
func (r *CampaignRepository) RecordRun(id string, runsExecuted int, at time.Time) error {
	res := r.db.Model(&models.Campaign{}).Where("id = ?", id).Updates(map[string]interface{}{
		"runs_executed": runsExecuted,
		"last_run_time": at,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

// MarkRun records a manual run. Non-recurring campaigns use it to refuse a second run.
func (r *CampaignRepository) MarkRun(id string, at time.Time) error {
	return r.db.Model(&models.Campaign{}).Where("id = ?", id).Update("last_run_time", at).Error
}

// UpdateLogo stores the hosted logo URL
func (r *CampaignRepository) UpdateLogo(id, logoURL string) error {
	return r.db.Model(&models.Campaign{}).Where("id = ?", id).Update("logo_url", logoURL).Error
}
