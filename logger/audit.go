package logger

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LogAction writes one audit entry for the request in c.
func LogAction(c *gin.Context, action string, details logrus.Fields) {
	entry := requestFields(logrus.NewEntry(AuditLogger()), c).
		WithField("action", action).
		WithField("user_agent", c.Request.UserAgent())
	if len(details) > 0 {
		entry = entry.WithFields(details)
	}
	entry.Info("audit")
}

// LogCRUD records an admin mutation of one resource.
func LogCRUD(c *gin.Context, operation, resourceType, resourceID string) {
	LogAction(c, "crud_"+operation, logrus.Fields{
		"resource_type": resourceType,
		"resource_id":   resourceID,
	})
}

// LogAuth records a login, logout or registration.
func LogAuth(c *gin.Context, action, email string) {
	LogAction(c, "auth_"+action, logrus.Fields{"email": email})
}
