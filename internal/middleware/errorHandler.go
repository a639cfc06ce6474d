package middleware

import (
	"net/http"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorHandler is the single translator turning service errors into HTTP
// responses. Every failure leaves the API as {"success": false, "message"}
// with the status matching the error kind, anything unrecognized becomes a
// generic 500 carrying the request correlation id.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		err := c.Errors.Last()
		if err == nil {
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.JSON(status, errorResponse{Success: false, Message: err.Error()})
			return
		}

		// nolint:gocritic
		if errdef.IsBadRequest(err) {
			c.JSON(http.StatusBadRequest, errorResponse{Success: false, Message: err.Error()})
		} else if errdef.IsUnauthorized(err) {
			c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: err.Error()})
		} else if errdef.IsForbidden(err) {
			c.JSON(http.StatusForbidden, errorResponse{Success: false, Message: err.Error()})
		} else if errdef.IsNotFound(err) {
			c.JSON(http.StatusNotFound, errorResponse{Success: false, Message: err.Error()})
		} else if errdef.IsDuplicated(err) {
			c.JSON(http.StatusConflict, errorResponse{Success: false, Message: err.Error()})
		} else if errdef.IsConflict(err) {
			c.JSON(http.StatusConflict, errorResponse{Success: false, Message: err.Error()})
		} else if errdef.IsUnsupportedMediaType(err) {
			c.JSON(http.StatusUnsupportedMediaType, errorResponse{Success: false, Message: err.Error()})
		} else {
			message := "an unexpected error occurred"
			if id, ok := GetCorrelationID(c.Request.Context()); ok {
				message = "an unexpected error occurred, mention id " + id + " when reporting it"
			}
			c.JSON(http.StatusInternalServerError, errorResponse{Success: false, Message: message})
		}
	}
}
