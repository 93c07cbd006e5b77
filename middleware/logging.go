package middleware

import (
	"context"
	"encoding/json"
	"time"

	"studytrack_go/database"
	"studytrack_go/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ActivityLogBufferKey is the Redis list buffering activity logs before the
// retention job flushes them to the database.
const ActivityLogBufferKey = "activitylog:buffer"

// LoggerMiddleware logs HTTP requests
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Process request
		err := c.Next()

		// Log request
		duration := time.Since(start)
		status := c.Response().StatusCode()

		logrus.WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"duration":   duration.String(),
			"ip":         c.IP(),
			"user_agent": c.Get("User-Agent"),
		}).Info("HTTP Request")

		return err
	}
}

// LogActivity records an audit entry for the current request. Entries are
// buffered through Redis when it is available and written straight to the
// database otherwise. Logging must never fail a request, so errors are only
// reported through logrus.
func LogActivity(c *fiber.Ctx, action, resource string, details interface{}) {
	userID := ""
	if user, err := GetCurrentUser(c); err == nil {
		userID = user.ID
	}

	var detailsJSON models.JSON
	if details != nil {
		if detailsBytes, err := json.Marshal(details); err == nil {
			detailsJSON = detailsBytes
		}
	}

	entry := models.ActivityLog{
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		Details:   detailsJSON,
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
		CreatedAt: time.Now(),
	}

	if rc := database.GetRedisClient(); rc != nil {
		payload, err := json.Marshal(entry)
		if err == nil {
			if err := rc.RPush(context.Background(), ActivityLogBufferKey, payload).Err(); err == nil {
				return
			}
			logrus.WithField("action", action).Warn("Failed to buffer activity log, falling back to database")
		}
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":   action,
			"resource": resource,
		}).Warn("Failed to save activity log")
	}
}
