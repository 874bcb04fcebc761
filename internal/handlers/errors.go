package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/onegreenvn/phishing-campaign-service/internal/services"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/dispatch"
	"github.com/onegreenvn/phishing-campaign-service/internal/services/scheduler"
)

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, err error, fallback string) {
	var verr *scheduler.ValidationError
	switch {
	case errors.As(err, &verr):
		body := gin.H{"error": verr.Reason}
		if len(verr.Missing) > 0 {
			body["missing_fields"] = verr.Missing
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, services.ErrUnsupportedFile), errors.Is(err, services.ErrRecipientsMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, scheduler.ErrCampaignNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
	case errors.Is(err, services.ErrSentEmailNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, scheduler.ErrNotRecurring),
		errors.Is(err, scheduler.ErrAlreadyActive),
		errors.Is(err, scheduler.ErrCampaignFinished),
		errors.Is(err, services.ErrAlreadyRun),
		errors.Is(err, services.ErrRunInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, dispatch.ErrNoRecipients):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrReportUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback, "details": err.Error()})
	default:
		logrus.WithField("path", c.FullPath()).Errorf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}
