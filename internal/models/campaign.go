package models

import (
	"time"
)

// Campaign categories understood by the composer
const (
	CategoryBanking    = "banking"
	CategoryEcommerce  = "ecommerce"
	CategoryDelivery   = "delivery"
	CategoryTechnology = "technology"
	CategoryHR         = "hr template"
	CategoryCustomized = "customized template"
)

// Campaign is a phishing-awareness campaign sent to an uploaded recipient list.
// Recurring campaigns are driven by the scheduler, which is the only writer of
// IsActive, RunsExecuted and LastRunTime once the campaign is active.
type Campaign struct {
	ID            string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CompanyName   string `json:"company_name" gorm:"type:varchar(80);not null;index"`
	Name          string `json:"name" gorm:"type:varchar(255)"`
	Category      string `json:"category" gorm:"type:varchar(50);index"`
	RecipientFile string `json:"recipient_file" gorm:"type:varchar(255);not null"`
	LogoURL       string `json:"logo_url" gorm:"type:varchar(500)"`

	// Recurrence
	IsRecurring        bool       `json:"is_recurring" gorm:"default:false;index"`
	IsActive           bool       `json:"is_active" gorm:"default:false;index"`
	RecurrenceInterval int        `json:"recurrence_interval"` // minutes
	StartDate          *time.Time `json:"start_date" gorm:"type:date"`
	EndDate            *time.Time `json:"end_date" gorm:"type:date"`
	DailyStart         TimeOfDay  `json:"daily_start_time" gorm:"column:daily_start_minute"`
	DailyEnd           TimeOfDay  `json:"daily_end_time" gorm:"column:daily_end_minute"`
	TotalCampaignCount int        `json:"total_campaign_count"`

	// Run state
	RunsExecuted int        `json:"runs_executed" gorm:"not null;default:0"`
	LastRunTime  *time.Time `json:"last_run_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Runs []CampaignRun `json:"runs,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// CreateCampaignRequest is the multipart form of a campaign registration.
// Recurring fields stay strings so format errors can be reported field by field.
type CreateCampaignRequest struct {
	CompanyName        string `form:"company_name" json:"company_name" validate:"required,max=80" example:"Acme Corp"`
	Name               string `form:"name" json:"name" validate:"max=255" example:"Q3 awareness"`
	Category           string `form:"category" json:"category" validate:"required,oneof=banking ecommerce delivery technology 'hr template' 'customized template'" example:"banking"`
	LogoPrompt         string `form:"logo_prompt" json:"logo_prompt" validate:"max=500"`
	IsRecurring        bool   `form:"is_recurring" json:"is_recurring" example:"true"`
	RecurrenceInterval string `form:"recurrence_interval" json:"recurrence_interval" example:"20"`
	StartDate          string `form:"start_date" json:"start_date" example:"2025-01-01"`
	EndDate            string `form:"end_date" json:"end_date" example:"2025-01-03"`
	DailyStartTime     string `form:"daily_start_time" json:"daily_start_time" example:"09:00"`
	DailyEndTime       string `form:"daily_end_time" json:"daily_end_time" example:"10:00"`
	TotalSends         string `form:"total_sends" json:"total_sends" example:"10"`
}

// ValidateRecurringRequest is the JSON body of the validation preview
type ValidateRecurringRequest struct {
	RecurrenceInterval string `json:"recurrence_interval" example:"20"`
	StartDate          string `json:"start_date" example:"2025-01-01"`
	EndDate            string `json:"end_date" example:"2025-01-03"`
	DailyStartTime     string `json:"daily_start_time" example:"09:00"`
	DailyEndTime       string `json:"daily_end_time" example:"10:00"`
	TotalSends         string `json:"total_sends" example:"10"`
}

// CampaignResponse represents the response for campaign operations
type CampaignResponse struct {
	ID                 string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CompanyName        string     `json:"company_name" example:"Acme Corp"`
	Name               string     `json:"name" example:"Q3 awareness"`
	Category           string     `json:"category" example:"banking"`
	LogoURL            string     `json:"logo_url,omitempty"`
	IsRecurring        bool       `json:"is_recurring"`
	IsActive           bool       `json:"is_active"`
	RecurrenceInterval int        `json:"recurrence_interval,omitempty" example:"20"`
	StartDate          string     `json:"start_date,omitempty" example:"2025-01-01"`
	EndDate            string     `json:"end_date,omitempty" example:"2025-01-03"`
	DailyStartTime     string     `json:"daily_start_time,omitempty" example:"09:00"`
	DailyEndTime       string     `json:"daily_end_time,omitempty" example:"10:00"`
	TotalCampaignCount int        `json:"total_campaign_count,omitempty" example:"10"`
	RunsExecuted       int        `json:"runs_executed" example:"3"`
	LastRunTime        *time.Time `json:"last_run_time,omitempty"`
	CreatedAt          string     `json:"created_at" example:"2025-01-09T10:30:00Z"`
	UpdatedAt          string     `json:"updated_at" example:"2025-01-09T10:30:00Z"`
}

// CampaignListResponse is a page of campaigns
type CampaignListResponse struct {
	Campaigns  []CampaignResponse `json:"campaigns"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// ToResponse converts a campaign to its API form
func (c *Campaign) ToResponse() CampaignResponse {
	resp := CampaignResponse{
		ID:           c.ID,
		CompanyName:  c.CompanyName,
		Name:         c.Name,
		Category:     c.Category,
		LogoURL:      c.LogoURL,
		IsRecurring:  c.IsRecurring,
		IsActive:     c.IsActive,
		RunsExecuted: c.RunsExecuted,
		LastRunTime:  c.LastRunTime,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
	if c.IsRecurring {
		resp.RecurrenceInterval = c.RecurrenceInterval
		resp.DailyStartTime = c.DailyStart.String()
		resp.DailyEndTime = c.DailyEnd.String()
		resp.TotalCampaignCount = c.TotalCampaignCount
		if c.StartDate != nil {
			resp.StartDate = c.StartDate.Format(DateLayout)
		}
		if c.EndDate != nil {
			resp.EndDate = c.EndDate.Format(DateLayout)
		}
	}
	return resp
}

// DateLayout is the calendar date format used at the API edge
const DateLayout = "2006-01-02"
