package utils

import (
	"errors"
	"net/http"

	"salonbook/pkg/fault"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps a service error onto its HTTP status: validation
// errors to 400, authorization to 403, conflicts to 409, missing
// entities to 404 and anything else to 500.
func RespondError(c *gin.Context, err error) {
	var (
		verr  *fault.ValidationError
		aerr  *fault.AuthorizationError
		cerr  *fault.ConflictError
		nferr *fault.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: verr.Message, Code: verr.Code})
	case errors.As(err, &aerr):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: aerr.Message, Code: aerr.Code})
	case errors.As(err, &cerr):
		c.JSON(http.StatusConflict, ErrorResponse{Message: cerr.Message, Code: cerr.Code})
	case errors.As(err, &nferr):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: nferr.Error()})
	default:
		GetLogger().Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
	}
}
