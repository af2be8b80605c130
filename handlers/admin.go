package handlers

import (
	"net/http"

	"salonbook/middleware"
	"salonbook/services/report"
	"salonbook/services/user"
	"salonbook/utils"
	"salonbook/views"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin boards and moderation operations.
type AdminHandler struct {
	Users   user.UserService
	Reports report.ReportService
	Views   *views.Materializer
}

func NewAdminHandler(users user.UserService, reports report.ReportService, mat *views.Materializer) *AdminHandler {
	return &AdminHandler{Users: users, Reports: reports, Views: mat}
}

// DashboardHandler returns the aggregate counts for the landing page.
func (h *AdminHandler) DashboardHandler(c *gin.Context) {
	payload, err := h.Views.Dashboard(c.Request.Context(), middleware.CurrentUser(c).UserType)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// ManageAppointmentsHandler returns the appointment board, optionally
// filtered by ?status=.
func (h *AdminHandler) ManageAppointmentsHandler(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	payload, err := h.Views.ManageAppointments(c.Request.Context(), middleware.CurrentUser(c).UserType, status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// AllAppointmentsHandler returns the unfiltered appointment list.
func (h *AdminHandler) AllAppointmentsHandler(c *gin.Context) {
	payload, err := h.Views.AllAppointments(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// ManageReportsHandler returns the report board, optionally filtered
// by ?status=.
func (h *AdminHandler) ManageReportsHandler(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	payload, err := h.Views.ManageReports(c.Request.Context(), status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// UpdateReportHandler moves a report through its statuses.
func (h *AdminHandler) UpdateReportHandler(c *gin.Context) {
	var in report.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Reports.AdminUpdate(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteReportHandler removes a report, unblocking deletion of its
// appointment.
func (h *AdminHandler) DeleteReportHandler(c *gin.Context) {
	if err := h.Reports.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ManageUsersHandler returns the user board, optionally filtered by
// ?filter=.
func (h *AdminHandler) ManageUsersHandler(c *gin.Context) {
	filter := c.DefaultQuery("filter", "all")
	payload, err := h.Views.ManageUsers(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// UserAppointmentsHandler returns a user's appointments for the admin
// detail page.
func (h *AdminHandler) UserAppointmentsHandler(c *gin.Context) {
	payload, err := h.Views.UserAppointments(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// WarnUserHandler attaches a warning to an account.
func (h *AdminHandler) WarnUserHandler(c *gin.Context) {
	var in struct {
		Warning string `json:"warning" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Users.Warn(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in.Warning); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "warned"})
}

// ClearWarningHandler removes the active warning text.
func (h *AdminHandler) ClearWarningHandler(c *gin.Context) {
	if err := h.Users.ClearWarning(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// SetActiveHandler toggles an account on or off.
func (h *AdminHandler) SetActiveHandler(c *gin.Context) {
	var in struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Users.SetActive(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), *in.Active); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteUserHandler removes an account. Super admin only.
func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
