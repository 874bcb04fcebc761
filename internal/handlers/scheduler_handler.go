package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/onegreenvn/phishing-campaign-service/internal/services/scheduler"
)

type SchedulerHandler struct {
	scheduler *scheduler.Scheduler
}

func NewSchedulerHandler(s *scheduler.Scheduler) *SchedulerHandler {
	return &SchedulerHandler{scheduler: s}
}

type jobResponse struct {
	CampaignID      string     `json:"campaign_id"`
	IntervalMinutes int        `json:"interval_minutes"`
	NextRun         *time.Time `json:"next_run,omitempty"`
}

// ListJobs godoc
// @Summary Registered scheduler timers
// @Description Debug listing of every recurring campaign timer
// @Tags scheduler
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/scheduler/jobs [get]
func (h *SchedulerHandler) ListJobs(c *gin.Context) {
	entries := h.scheduler.Jobs()
	jobs := make([]jobResponse, 0, len(entries))
	for _, e := range entries {
		jobs = append(jobs, jobResponse{
			CampaignID:      e.CampaignID,
			IntervalMinutes: int(e.Interval / time.Minute),
			NextRun:         e.NextRun,
		})
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}
