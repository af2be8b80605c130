package handlers

import (
	"net/http"

	"salonbook/middleware"
	"salonbook/services/appointment"
	"salonbook/utils"
	"salonbook/views"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler serves the appointment lifecycle and its cached
// list views.
type AppointmentHandler struct {
	Svc   appointment.AppointmentService
	Views *views.Materializer
}

func NewAppointmentHandler(svc appointment.AppointmentService, mat *views.Materializer) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Views: mat}
}

// CreateHandler books a new appointment for the signed-in consumer.
func (h *AppointmentHandler) CreateHandler(c *gin.Context) {
	var in appointment.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	detail, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

// AcceptHandler moves a requested appointment to accepted.
func (h *AppointmentHandler) AcceptHandler(c *gin.Context) {
	if err := h.Svc.Accept(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

// CancelHandler moves an appointment to cancelled.
func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	if err := h.Svc.Cancel(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// ModifyHandler reschedules an appointment.
func (h *AppointmentHandler) ModifyHandler(c *gin.Context) {
	var in appointment.ModifyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	detail, err := h.Svc.Modify(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// DeleteHandler removes an appointment and its service line.
func (h *AppointmentHandler) DeleteHandler(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GetHandler returns one appointment through the view cache.
func (h *AppointmentHandler) GetHandler(c *gin.Context) {
	// Authorization first; the cached payload is audience-independent.
	if _, err := h.Svc.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}

	payload, err := h.Views.SingleAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// MyAppointmentsHandler returns the signed-in user's appointments.
func (h *AppointmentHandler) MyAppointmentsHandler(c *gin.Context) {
	payload, err := h.Views.MyAppointments(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}
