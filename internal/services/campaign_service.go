package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/dispatch"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/scheduler"
	"github.com/onegreenvn/phishing-campaign-service/internal/utils"
)

// CampaignStore is the campaign persistence used by the service
type CampaignStore interface {
	Create(campaign *models.Campaign) error
	GetByID(id string) (*models.Campaign, error)
	List(companyName string, offset, limit int) ([]*models.Campaign, int64, error)
	MarkRun(id string, at time.Time) error
	UpdateLogo(id, logoURL string) error
}

// CampaignScheduler starts and stops recurring campaigns
type CampaignScheduler interface {
	StartCampaign(id string) error
	StopCampaign(id string) error
}

// CampaignDispatcher sends campaign batches and demo messages
type CampaignDispatcher interface {
	DispatchCampaign(ctx context.Context, c *models.Campaign) (dispatch.Result, error)
	SendDemo(first, second string) error
}

// LogoHost renders and hosts campaign logos
type LogoHost interface {
	Enabled() bool
	Upload(ctx context.Context, image []byte) (string, error)
	GenerateAndHost(ctx context.Context, prompt string) (string, error)
}

// Uploads stores files sent with a registration
type Uploads interface {
	SaveUpload(fileHeader *multipart.FileHeader, allowed []string) (string, error)
	ReadUpload(fileHeader *multipart.FileHeader, allowed []string) ([]byte, error)
}

// CampaignUploads are the files of a registration. Logo is optional.
type CampaignUploads struct {
	Recipients *multipart.FileHeader
	Logo       *multipart.FileHeader
}

type CampaignService struct {
	campaigns  CampaignStore
	scheduler  CampaignScheduler
	dispatcher CampaignDispatcher
	uploads    Uploads
	logos      LogoHost
	archive    *dispatch.Archive
	runs       scheduler.RunObserver

	runningMu sync.Mutex
	running   map[string]bool
}

func NewCampaignService(
	campaigns CampaignStore,
	sched CampaignScheduler,
	dispatcher CampaignDispatcher,
	uploads Uploads,
	logos LogoHost,
	archive *dispatch.Archive,
	runs scheduler.RunObserver,
) *CampaignService {
	return &CampaignService{
		campaigns:  campaigns,
		scheduler:  sched,
		dispatcher: dispatcher,
		uploads:    uploads,
		logos:      logos,
		archive:    archive,
		runs:       runs,
		running:    make(map[string]bool),
	}
}

// ValidateRecurring previews the send distribution of a recurring registration
func (s *CampaignService) ValidateRecurring(req *models.ValidateRecurringRequest) (*scheduler.RecurringSummary, error) {
	return scheduler.ValidateRecurring(recurringParams(req.RecurrenceInterval, req.StartDate, req.EndDate,
		req.DailyStartTime, req.DailyEndTime, req.TotalSends))
}

// Register validates and stores a new campaign. Recurring campaigns are
// created inactive and start sending once started.
func (s *CampaignService) Register(ctx context.Context, req *models.CreateCampaignRequest, files CampaignUploads) (*models.CampaignResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &scheduler.ValidationError{Reason: err.Error()}
	}

	var schedule *scheduler.RecurringSchedule
	if req.IsRecurring {
		summary, err := scheduler.ValidateRecurring(recurringParams(req.RecurrenceInterval, req.StartDate, req.EndDate,
			req.DailyStartTime, req.DailyEndTime, req.TotalSends))
		if err != nil {
			return nil, err
		}
		schedule = &summary.Schedule
	}

	if files.Recipients == nil {
		return nil, ErrRecipientsMissing
	}
	path, err := s.uploads.SaveUpload(files.Recipients, RecipientExtensions)
	if err != nil {
		return nil, err
	}
	recipients, err := dispatch.LoadRecipients(path)
	if err != nil {
		os.Remove(path)
		return nil, &scheduler.ValidationError{Reason: fmt.Sprintf("Recipient file could not be read: %v", err)}
	}
	if len(recipients) == 0 {
		os.Remove(path)
		return nil, &scheduler.ValidationError{Reason: dispatch.ErrNoRecipients.Error()}
	}

	campaign := &models.Campaign{
		CompanyName:   req.CompanyName,
		Name:          req.Name,
		Category:      req.Category,
		RecipientFile: path,
		IsRecurring:   req.IsRecurring,
	}
	if schedule != nil {
		start, end := schedule.StartDate, schedule.EndDate
		campaign.StartDate = &start
		campaign.EndDate = &end
		campaign.DailyStart = schedule.DailyStart
		campaign.DailyEnd = schedule.DailyEnd
		campaign.RecurrenceInterval = schedule.RecurrenceInterval
		campaign.TotalCampaignCount = schedule.TotalSends
	}

	if err := s.campaigns.Create(campaign); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	logrus.WithField("campaign_id", campaign.ID).Infof("Campaign registered for %s (recurring: %t)", campaign.CompanyName, campaign.IsRecurring)

	// A logo is optional; the campaign is kept when hosting fails
	if url := s.hostLogo(ctx, req.LogoPrompt, files.Logo); url != "" {
		if err := s.campaigns.UpdateLogo(campaign.ID, url); err != nil {
			logrus.WithField("campaign_id", campaign.ID).Warnf("Failed to store logo URL: %v", err)
		} else {
			campaign.LogoURL = url
		}
	}

	resp := campaign.ToResponse()
	return &resp, nil
}

func (s *CampaignService) hostLogo(ctx context.Context, prompt string, logo *multipart.FileHeader) string {
	if s.logos == nil || !s.logos.Enabled() {
		return ""
	}

	var (
		url string
		err error
	)
	switch {
	case logo != nil:
		var image []byte
		image, err = s.uploads.ReadUpload(logo, LogoExtensions)
		if err == nil {
			url, err = s.logos.Upload(ctx, image)
		}
	case prompt != "":
		url, err = s.logos.GenerateAndHost(ctx, prompt)
	default:
		return ""
	}
	if err != nil {
		logrus.Warnf("Campaign logo not hosted: %v", err)
		return ""
	}
	return url
}

// GetCampaign returns one campaign
func (s *CampaignService) GetCampaign(id string) (*models.CampaignResponse, error) {
	campaign, err := s.campaigns.GetByID(id)
	if err != nil {
		return nil, err
	}
	resp := campaign.ToResponse()
	return &resp, nil
}

// ListCampaigns returns a page of campaigns, optionally for one company
func (s *CampaignService) ListCampaigns(companyName string, page, pageSize int) (*models.CampaignListResponse, error) {
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)

	campaigns, total, err := s.campaigns.List(companyName, utils.CalculateOffset(page, pageSize), pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	info := utils.CalculatePaginationInfo(int(total), page, pageSize)
	resp := &models.CampaignListResponse{
		Campaigns:  make([]models.CampaignResponse, 0, len(campaigns)),
		Total:      info.Total,
		Page:       info.Page,
		PageSize:   info.PageSize,
		TotalPages: info.TotalPages,
	}
	for _, c := range campaigns {
		resp.Campaigns = append(resp.Campaigns, c.ToResponse())
	}
	return resp, nil
}

// RunOnce sends a campaign to its recipients right away. A one-time campaign
// can only run once. Manual runs of recurring campaigns leave the scheduler's
// counters alone.
func (s *CampaignService) RunOnce(ctx context.Context, id string) (*models.RunResponse, error) {
	if !s.acquireRun(id) {
		return nil, ErrRunInProgress
	}
	defer s.releaseRun(id)

	campaign, err := s.campaigns.GetByID(id)
	if err != nil {
		return nil, err
	}
	if campaign.LastRunTime != nil && !campaign.IsRecurring {
		return nil, ErrAlreadyRun
	}

	log := logrus.WithField("campaign_id", id)
	log.Infof("Starting one-time run for company %s", campaign.CompanyName)

	result, err := s.dispatcher.DispatchCampaign(ctx, campaign)
	if err != nil {
		return nil, fmt.Errorf("failed to run campaign: %w", err)
	}
	if result.Success+result.Failed == 0 {
		return nil, dispatch.ErrNoRecipients
	}

	now := time.Now().UTC()
	if !campaign.IsRecurring {
		if err := s.campaigns.MarkRun(id, now); err != nil {
			return nil, fmt.Errorf("campaign sent but run not recorded: %w", err)
		}
	}
	log.Infof("One-time run finished. Sent: %d, Failed: %d", result.Success, result.Failed)

	if s.runs != nil {
		s.runs.RunCommitted(models.RunEvent{
			CampaignID:   id,
			Trigger:      models.RunTriggerManual,
			ExecutedAt:   now,
			SuccessCount: result.Success,
			FailureCount: result.Failed,
		})
	}

	return &models.RunResponse{
		CampaignID:   id,
		ExecutedAt:   now,
		SuccessCount: result.Success,
		FailureCount: result.Failed,
	}, nil
}

func (s *CampaignService) acquireRun(id string) bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	if s.running[id] {
		return false
	}
	s.running[id] = true
	return true
}

func (s *CampaignService) releaseRun(id string) {
	s.runningMu.Lock()
	delete(s.running, id)
	s.runningMu.Unlock()
}

// StartCampaign activates a recurring campaign
func (s *CampaignService) StartCampaign(id string) (*models.CampaignResponse, error) {
	if err := s.scheduler.StartCampaign(id); err != nil {
		return nil, err
	}
	return s.GetCampaign(id)
}

// StopCampaign deactivates a recurring campaign
func (s *CampaignService) StopCampaign(id string) (*models.CampaignResponse, error) {
	if err := s.scheduler.StopCampaign(id); err != nil {
		return nil, err
	}
	return s.GetCampaign(id)
}

// SentEmail returns the archived body sent to email
func (s *CampaignService) SentEmail(id, email string) ([]byte, error) {
	if _, err := s.campaigns.GetByID(id); err != nil {
		return nil, err
	}
	body, err := s.archive.Read(id, email)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSentEmailNotFound
	}
	return body, err
}

// SendDemo sends the two demo messages
func (s *CampaignService) SendDemo(req *models.DemoRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return &scheduler.ValidationError{Reason: err.Error()}
	}
	if err := s.dispatcher.SendDemo(req.Email1, req.Email2); err != nil {
		return fmt.Errorf("failed to send demo emails: %w", err)
	}
	return nil
}

func recurringParams(interval, startDate, endDate, dailyStart, dailyEnd, total string) scheduler.RecurringParams {
	return scheduler.RecurringParams{
		DailyStartTime:     dailyStart,
		DailyEndTime:       dailyEnd,
		RecurrenceInterval: interval,
		StartDate:          startDate,
		EndDate:            endDate,
		TotalSends:         total,
	}
}
