package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onegreenvn/phishing-campaign-service/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetClickReport godoc
// @Summary Live click report
// @Description Latest click per recipient, matched on the local part of the address
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.ClickReport
// @Failure 404 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/report [get]
func (h *ReportHandler) GetClickReport(c *gin.Context) {
	report, err := h.reportService.ClickReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to build click report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportClickReport godoc
// @Summary Export click report
// @Description Download the click report as an Excel workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/report/export [get]
func (h *ReportHandler) ExportClickReport(c *gin.Context) {
	result, err := h.reportService.ExportClickReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to export click report")
		return
	}
	c.FileAttachment(result.Path, result.Filename)
}
