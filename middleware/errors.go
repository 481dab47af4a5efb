// Package middleware holds the Gin middleware shared by every route group.
package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hugox-backend/apperror"
	"hugox-backend/logger"
	"hugox-backend/models"
)

const internalMessage = "Internal server error"

// Errors turns the last error attached with c.Error into the failure
// envelope. It is the only place that maps errors to HTTP statuses.
func Errors(forbiddenStatus int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body := envelope(err, forbiddenStatus)
		entry := logger.WithRequest(c).WithField("status", status)
		if status >= http.StatusInternalServerError {
			entry.WithError(err).Error("request failed")
		} else {
			entry.WithField("reason", err.Error()).Debug("request rejected")
		}
		c.JSON(status, body)
	}
}

func envelope(err error, forbiddenStatus int) (int, models.Envelope) {
	ae, ok := apperror.As(err)
	if !ok {
		return http.StatusInternalServerError, models.Envelope{Message: internalMessage}
	}
	status := ae.Status(forbiddenStatus)
	body := models.Envelope{Message: ae.Message, Error: ae.Kind.String()}
	if status >= http.StatusInternalServerError && ae.Message == "" {
		body.Message = internalMessage
	}
	return status, body
}

// NotFound answers unknown routes and methods.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.Envelope{
		Message: fmt.Sprintf("Route %s not found", c.Request.URL.Path),
		Error:   apperror.KindNotFound.String(),
	})
}

// Recovery logs a panic and answers with the 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithRequest(c).WithFields(logrus.Fields{"panic": recovered}).Error("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.Envelope{Message: internalMessage})
	})
}
