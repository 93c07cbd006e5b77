package services

import (
	"context"
	"encoding/json"
	"time"

	"studytrack_go/config"
	"studytrack_go/database"
	"studytrack_go/middleware"
	"studytrack_go/models"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const flushBatchSize = 200

// LogRetentionService flushes Redis-buffered activity logs to the database
// and prunes entries older than the configured retention window.
type LogRetentionService struct {
	cron *cron.Cron
}

// NewLogRetentionService creates a new service instance
func NewLogRetentionService() *LogRetentionService {
	return &LogRetentionService{cron: cron.New()}
}

// StartScheduler registers the flush and prune jobs and starts the cron loop.
func (s *LogRetentionService) StartScheduler() {
	if _, err := s.cron.AddFunc("@every 5m", func() {
		if err := s.FlushBufferedLogs(); err != nil {
			logrus.WithError(err).Warn("Activity log flush failed")
		}
	}); err != nil {
		logrus.WithError(err).Error("Failed to schedule activity log flush")
	}

	if _, err := s.cron.AddFunc("@daily", func() {
		if err := s.PruneOldLogs(); err != nil {
			logrus.WithError(err).Warn("Activity log prune failed")
		}
	}); err != nil {
		logrus.WithError(err).Error("Failed to schedule activity log prune")
	}

	s.cron.Start()
	logrus.Info("Log retention scheduler started")
}

// Stop halts the cron loop.
func (s *LogRetentionService) Stop() {
	s.cron.Stop()
}

// FlushBufferedLogs drains the Redis buffer into the activity_logs table.
// No-op when Redis is unavailable (entries were written directly).
func (s *LogRetentionService) FlushBufferedLogs() error {
	rc := database.GetRedisClient()
	if rc == nil {
		return nil
	}

	ctx := context.Background()
	flushed := 0

	for {
		payloads, err := rc.LPopCount(ctx, middleware.ActivityLogBufferKey, flushBatchSize).Result()
		if err == redis.Nil || len(payloads) == 0 {
			break
		}
		if err != nil {
			return err
		}

		entries := make([]models.ActivityLog, 0, len(payloads))
		for _, payload := range payloads {
			var entry models.ActivityLog
			if err := json.Unmarshal([]byte(payload), &entry); err != nil {
				logrus.WithError(err).Warn("Dropping malformed buffered activity log")
				continue
			}
			entry.ID = 0
			entries = append(entries, entry)
		}

		if len(entries) > 0 {
			if err := database.DB.Create(&entries).Error; err != nil {
				return err
			}
			flushed += len(entries)
		}

		if len(payloads) < flushBatchSize {
			break
		}
	}

	if flushed > 0 {
		logrus.WithField("count", flushed).Info("Flushed buffered activity logs")
	}
	return nil
}

// PruneOldLogs deletes activity logs older than the retention window.
func (s *LogRetentionService) PruneOldLogs() error {
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.LogRetentionDays)

	result := database.DB.Where("created_at < ?", cutoff).Delete(&models.ActivityLog{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		logrus.WithFields(logrus.Fields{
			"deleted": result.RowsAffected,
			"cutoff":  cutoff,
		}).Info("Pruned old activity logs")
	}
	return nil
}
