package services

import (
	"context"
	"fmt"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/dispatch"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/excel"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/report"
)

// ClickSource returns the latest click per user id
type ClickSource interface {
	LatestClicks(ctx context.Context) (map[string]report.Click, error)
}

// ReportService builds click-through reports of campaigns
type ReportService struct {
	campaigns CampaignStore
	clicks    ClickSource
	excel     *excel.Service
}

func NewReportService(campaigns CampaignStore, clicks ClickSource, excelService *excel.Service) *ReportService {
	return &ReportService{campaigns: campaigns, clicks: clicks, excel: excelService}
}

// ClickReport maps the latest clicks onto the recipients of a campaign
func (s *ReportService) ClickReport(ctx context.Context, id string) (*models.ClickReport, error) {
	campaign, err := s.campaigns.GetByID(id)
	if err != nil {
		return nil, err
	}

	recipients, err := dispatch.LoadRecipients(campaign.RecipientFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipients: %w", err)
	}

	clicks, err := s.clicks.LatestClicks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportUnavailable, err)
	}
	return report.Build(campaign.ID, recipients, clicks), nil
}

// ExportClickReport writes the click report of a campaign to an Excel file
func (s *ReportService) ExportClickReport(ctx context.Context, id string) (*excel.ExportResult, error) {
	rep, err := s.ClickReport(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.excel.ExportClickReport(rep)
}
