package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// RunStore persists run records
type RunStore interface {
	Create(run *models.CampaignRun) error
	GetByCampaignID(campaignID string, limit int) ([]*models.CampaignRun, error)
}

// RunPublisher forwards run events to other systems
type RunPublisher interface {
	PublishRun(ctx context.Context, event models.RunEvent) error
}

// RunHistoryService keeps the run log of every campaign and forwards each run
// to the publisher when one is configured
type RunHistoryService struct {
	runs      RunStore
	publisher RunPublisher
}

func NewRunHistoryService(runs RunStore, publisher RunPublisher) *RunHistoryService {
	return &RunHistoryService{runs: runs, publisher: publisher}
}

// RunCommitted records a run. The run itself is already committed, so
// failures here are only logged.
func (s *RunHistoryService) RunCommitted(event models.RunEvent) {
	log := logrus.WithFields(logrus.Fields{"campaign_id": event.CampaignID, "trigger": event.Trigger})

	run := &models.CampaignRun{
		CampaignID:   event.CampaignID,
		Trigger:      event.Trigger,
		RunNumber:    event.RunNumber,
		ExecutedAt:   event.ExecutedAt,
		SuccessCount: event.SuccessCount,
		FailureCount: event.FailureCount,
	}
	if err := s.runs.Create(run); err != nil {
		log.Errorf("Failed to record run: %v", err)
	}

	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publisher.PublishRun(ctx, event); err != nil {
		log.Warnf("Failed to publish run event: %v", err)
	}
}

// List returns the most recent runs of a campaign
func (s *RunHistoryService) List(campaignID string, limit int) ([]*models.CampaignRun, error) {
	return s.runs.GetByCampaignID(campaignID, limit)
}
