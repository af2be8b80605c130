package handlers

import (
	"net/http"

	"salonbook/middleware"
	"salonbook/services/user"
	"salonbook/utils"
	"salonbook/views"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile reads and edits.
type UserHandler struct {
	Svc   user.UserService
	Views *views.Materializer
}

func NewUserHandler(svc user.UserService, mat *views.Materializer) *UserHandler {
	return &UserHandler{Svc: svc, Views: mat}
}

// ViewUserHandler returns a user profile through the view cache. The
// audience decides which fields the rendered payload carries.
func (h *UserHandler) ViewUserHandler(c *gin.Context) {
	id := c.Param("id")
	actor := middleware.CurrentUser(c)

	returnType := "public"
	switch {
	case actor.IsAdmin():
		returnType = "admin"
	case actor.ID == id:
		returnType = "self"
	}

	payload, err := h.Views.ViewUser(c.Request.Context(), id, returnType)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// UpdateProfileHandler edits a profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	var in user.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	u, err := h.Svc.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
