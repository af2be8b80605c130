package handlers

import (
	"net/http"

	"salonbook/middleware"
	"salonbook/services/report"
	"salonbook/utils"
	"salonbook/views"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the feedback report lifecycle.
type ReportHandler struct {
	Svc   report.ReportService
	Views *views.Materializer
}

func NewReportHandler(svc report.ReportService, mat *views.Materializer) *ReportHandler {
	return &ReportHandler{Svc: svc, Views: mat}
}

// CreateHandler files a report against a past appointment.
func (h *ReportHandler) CreateHandler(c *gin.Context) {
	var in report.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	rep, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rep)
}

// RespondHandler records the professional's feedback.
func (h *ReportHandler) RespondHandler(c *gin.Context) {
	var in struct {
		Feedback string `json:"feedback" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.Respond(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in.Feedback); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "responded"})
}

// FlagHandler raises or clears the professional's grievance flag.
func (h *ReportHandler) FlagHandler(c *gin.Context) {
	var in struct {
		Flagged *bool `json:"flagged" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.SetFlag(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), *in.Flagged); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// MarkSeenHandler records that the consumer has read the responses.
func (h *ReportHandler) MarkSeenHandler(c *gin.Context) {
	var in struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.MarkSeen(c.Request.Context(), middleware.CurrentUser(c), in.IDs); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "seen"})
}

// GetHandler returns one report through the view cache.
func (h *ReportHandler) GetHandler(c *gin.Context) {
	if _, err := h.Svc.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}

	payload, err := h.Views.SingleReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// MyReportsHandler returns the signed-in user's reports.
func (h *ReportHandler) MyReportsHandler(c *gin.Context) {
	payload, err := h.Views.UserReports(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}
