package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
	"github.com/onegreenvn/phishing-campaign-service/internal/services"
	"github.com/onegreenvn/phishing-campaign-service/internal/utils"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	runHistory      *services.RunHistoryService
}

func NewCampaignHandler(campaignService *services.CampaignService, runHistory *services.RunHistoryService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		runHistory:      runHistory,
	}
}

// ValidateRecurring godoc
// @Summary Preview a recurring schedule
// @Description Validate recurring parameters and return the per-day send distribution without storing anything
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ValidateRecurringRequest true "Recurring parameters"
// @Success 200 {object} scheduler.RecurringSummary
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/campaigns/validate [post]
func (h *CampaignHandler) ValidateRecurring(c *gin.Context) {
	var req models.ValidateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	summary, err := h.campaignService.ValidateRecurring(&req)
	if err != nil {
		respondError(c, err, "Failed to validate schedule")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CreateCampaign godoc
// @Summary Register a campaign
// @Description Register a one-time or recurring campaign with its recipient list (.csv or .xlsx). Recurring campaigns are created inactive.
// @Tags campaigns
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param company_name formData string true "Company name"
// @Param name formData string false "Campaign name"
// @Param category formData string true "Template category"
// @Param recipient_file formData file true "Recipient list with email, name, address, department columns"
// @Param logo formData file false "Company logo"
// @Param logo_prompt formData string false "Prompt for a generated logo"
// @Param is_recurring formData bool false "Recurring campaign"
// @Param recurrence_interval formData string false "Minutes between sends"
// @Param start_date formData string false "First day (YYYY-MM-DD)"
// @Param end_date formData string false "Last day (YYYY-MM-DD)"
// @Param daily_start_time formData string false "Daily window start (HH:MM, UTC)"
// @Param daily_end_time formData string false "Daily window end (HH:MM, UTC)"
// @Param total_sends formData string false "Total number of sends"
// @Success 201 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req models.CreateCampaignRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	var files services.CampaignUploads
	if fh, err := c.FormFile("recipient_file"); err == nil {
		files.Recipients = fh
	}
	if fh, err := c.FormFile("logo"); err == nil {
		files.Logo = fh
	}

	response, err := h.campaignService.Register(c.Request.Context(), &req, files)
	if err != nil {
		respondError(c, err, "Failed to create campaign")
		return
	}
	c.JSON(http.StatusCreated, response)
}

// ListCampaigns godoc
// @Summary List campaigns
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 100)"
// @Param company query string false "Company name"
// @Success 200 {object} models.CampaignListResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	response, err := h.campaignService.ListCampaigns(c.Query("company"), page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to get campaigns")
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetCampaignByID godoc
// @Summary Get campaign by ID
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaignByID(c *gin.Context) {
	response, err := h.campaignService.GetCampaign(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get campaign")
		return
	}
	c.JSON(http.StatusOK, response)
}

// RunCampaign godoc
// @Summary Run a campaign now
// @Description Send the campaign to its recipient list once. A one-time campaign can only be run once.
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.RunResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/run [post]
func (h *CampaignHandler) RunCampaign(c *gin.Context) {
	response, err := h.campaignService.RunOnce(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to run campaign")
		return
	}
	c.JSON(http.StatusOK, response)
}

// StartCampaign godoc
// @Summary Start a recurring campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/start [post]
func (h *CampaignHandler) StartCampaign(c *gin.Context) {
	response, err := h.campaignService.StartCampaign(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to start campaign")
		return
	}
	c.JSON(http.StatusOK, response)
}

// StopCampaign godoc
// @Summary Stop a recurring campaign
// @Description Stopping an inactive campaign is a no-op. A send already in progress finishes.
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/stop [post]
func (h *CampaignHandler) StopCampaign(c *gin.Context) {
	response, err := h.campaignService.StopCampaign(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to stop campaign")
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetCampaignRuns godoc
// @Summary Run history of a campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param limit query int false "Maximum number of runs" default(50)
// @Success 200 {array} models.CampaignRun
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/runs [get]
func (h *CampaignHandler) GetCampaignRuns(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.campaignService.GetCampaign(id); err != nil {
		respondError(c, err, "Failed to get runs")
		return
	}

	_, limit := utils.ParsePaginationFromQuery("", c.DefaultQuery("limit", "50"))
	runs, err := h.runHistory.List(id, limit)
	if err != nil {
		respondError(c, err, "Failed to get runs")
		return
	}
	c.JSON(http.StatusOK, runs)
}

// GetSentEmail godoc
// @Summary View a sent e-mail
// @Description Returns the HTML body that was sent to a recipient
// @Tags campaigns
// @Produce html
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param email path string true "Recipient e-mail"
// @Success 200 {string} string
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/sent/{email} [get]
func (h *CampaignHandler) GetSentEmail(c *gin.Context) {
	body, err := h.campaignService.SentEmail(c.Param("id"), c.Param("email"))
	if err != nil {
		respondError(c, err, "Failed to read sent e-mail")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// SendDemo godoc
// @Summary Send demo e-mails
// @Description Sends the two canned demo messages, one to each address
// @Tags demo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DemoRequest true "Demo recipients"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/demo [post]
func (h *CampaignHandler) SendDemo(c *gin.Context) {
	var req models.DemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.campaignService.SendDemo(&req); err != nil {
		respondError(c, err, "Failed to send demo emails")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Demo emails sent successfully"})
}
