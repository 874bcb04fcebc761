package models

import (
	"time"
)

// Run triggers
const (
	RunTriggerScheduled = "scheduled"
	RunTriggerManual    = "manual"
)

// CampaignRun records one dispatch of a campaign to its recipient list
type CampaignRun struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CampaignID   string    `json:"campaign_id" gorm:"not null;index;type:uuid"`
	Trigger      string    `json:"trigger" gorm:"type:varchar(20);not null"`
	RunNumber    int       `json:"run_number"` // runs_executed after the commit, 0 for manual runs
	ExecutedAt   time.Time `json:"executed_at" gorm:"not null;index"`
	SuccessCount int       `json:"success_count"`
	FailureCount int       `json:"failure_count"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the CampaignRun model
func (CampaignRun) TableName() string {
	return "campaign_runs"
}

// RunEvent is published to the message broker after every committed run
type RunEvent struct {
	CampaignID   string    `json:"campaign_id"`
	Trigger      string    `json:"trigger"`
	RunNumber    int       `json:"run_number"`
	ExecutedAt   time.Time `json:"executed_at"`
	SuccessCount int       `json:"success_count"`
	FailureCount int       `json:"failure_count"`
	Deactivated  bool      `json:"deactivated,omitempty"`
}

// RunResponse is the API form of a one-time run
type RunResponse struct {
	CampaignID   string    `json:"campaign_id"`
	ExecutedAt   time.Time `json:"executed_at"`
	SuccessCount int       `json:"success_count"`
	FailureCount int       `json:"failure_count"`
}
