package controllers

import (
	"errors"
	"time"

	"studytrack_go/database"
	"studytrack_go/middleware"
	"studytrack_go/models"
	"studytrack_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressController struct{}

// UpdateProgressRequest represents the progress update request body.
// VideosWatched is a pointer so an explicit 0 is accepted while a missing
// or null value is rejected.
type UpdateProgressRequest struct {
	ChapterID     string `json:"chapter_id"`
	VideosWatched *int   `json:"videos_watched"`
}

// SubjectProgress is the per-subject summary row of the dashboard.
type SubjectProgress struct {
	Subject       string  `json:"subject"`
	VideosWatched int     `json:"videos_watched"`
	TotalVideos   int     `json:"total_videos"`
	Percentage    float64 `json:"percentage"`
	Color         string  `json:"color"`
}

// ChapterProgress is a single chapter in the dashboard breakdown. Chapters
// the student never touched report zero watched videos.
type ChapterProgress struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	TotalVideos   int    `json:"total_videos"`
	WatchedVideos int    `json:"watched_videos"`
}

// SubjectChapters groups the chapter breakdown of one subject.
type SubjectChapters struct {
	Subject  string            `json:"subject"`
	Chapters []ChapterProgress `json:"chapters"`
}

// Dashboard returns the per-subject progress summary and chapter breakdown
// for the authenticated student.
func (pc *ProgressController) Dashboard(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "User not found")
	}

	// Only students can access dashboard
	if user.Role != models.RoleStudent {
		return utils.Fail(c, fiber.StatusForbidden, "Only students can access dashboard")
	}

	var subjects []models.Subject
	if err := database.DB.Order("`order` asc, display_name asc").Find(&subjects).Error; err != nil {
		return dashboardError(c, err)
	}

	progress := make([]SubjectProgress, 0, len(subjects))
	breakdown := make([]SubjectChapters, 0, len(subjects))

	for _, subject := range subjects {
		var chapters []models.Chapter
		if err := database.DB.Where("subject_id = ?", subject.ID).
			Order("`order` asc, title asc").Find(&chapters).Error; err != nil {
			return dashboardError(c, err)
		}

		var records []models.VideoProgress
		if err := database.DB.
			Joins("JOIN chapters ON chapters.id = video_progress.chapter_id").
			Where("video_progress.student_id = ? AND chapters.subject_id = ?", user.ID, subject.ID).
			Find(&records).Error; err != nil {
			return dashboardError(c, err)
		}

		watchedByChapter := make(map[string]int, len(records))
		for _, r := range records {
			watchedByChapter[r.ChapterID] = r.VideosWatched
		}

		summary, subjectChapters := summarizeSubject(subject, chapters, watchedByChapter)
		progress = append(progress, summary)
		breakdown = append(breakdown, subjectChapters)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"progress": progress,
			"subjects": breakdown,
		},
	})
}

// summarizeSubject shapes one subject's dashboard rows from its chapters and
// the student's watched counts keyed by chapter id.
func summarizeSubject(subject models.Subject, chapters []models.Chapter, watchedByChapter map[string]int) (SubjectProgress, SubjectChapters) {
	totalVideos := 0
	videosWatched := 0
	chapterRows := make([]ChapterProgress, 0, len(chapters))

	for _, chapter := range chapters {
		watched := watchedByChapter[chapter.ID]
		totalVideos += chapter.TotalVideos
		videosWatched += watched
		chapterRows = append(chapterRows, ChapterProgress{
			ID:            chapter.ID,
			Title:         chapter.Title,
			TotalVideos:   chapter.TotalVideos,
			WatchedVideos: watched,
		})
	}

	summary := SubjectProgress{
		Subject:       subject.DisplayName,
		VideosWatched: videosWatched,
		TotalVideos:   totalVideos,
		Percentage:    models.ProgressPercentage(videosWatched, totalVideos),
		Color:         subject.Color,
	}

	return summary, SubjectChapters{
		Subject:  subject.DisplayName,
		Chapters: chapterRows,
	}
}

func dashboardError(c *fiber.Ctx, err error) error {
	logrus.WithError(err).Error("Dashboard aggregation failed")
	return utils.FailInternal(c, "Failed to fetch dashboard data", err)
}

// UpdateProgress creates or replaces the watched count for one
// (student, chapter) pair. The write is a single upsert guarded by the
// unique index, so concurrent updates serialize to one winning row.
func (pc *ProgressController) UpdateProgress(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "User not found")
	}

	var req UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.ChapterID == "" || req.VideosWatched == nil {
		return utils.Fail(c, fiber.StatusBadRequest, "chapter_id and videos_watched are required")
	}

	var chapter models.Chapter
	if err := database.DB.Where("id = ?", req.ChapterID).First(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Fail(c, fiber.StatusNotFound, "Chapter not found")
		}
		logrus.WithError(err).Error("Update progress failed")
		return utils.FailInternal(c, "Failed to update progress", err)
	}

	now := time.Now()
	record := models.VideoProgress{
		StudentID:     user.ID,
		ChapterID:     chapter.ID,
		VideosWatched: *req.VideosWatched,
		LastWatchedAt: now,
	}

	// Watched counts are stored as supplied, even above the chapter total.
	if err := database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "chapter_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"videos_watched":  *req.VideosWatched,
			"last_watched_at": now,
		}),
	}).Create(&record).Error; err != nil {
		logrus.WithError(err).Error("Update progress failed")
		return utils.FailInternal(c, "Failed to update progress", err)
	}

	middleware.LogActivity(c, "UPDATE", "video_progress", fiber.Map{
		"chapter_id":     chapter.ID,
		"videos_watched": *req.VideosWatched,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Progress updated successfully",
		"data": fiber.Map{
			"chapter_id":     chapter.ID,
			"videos_watched": *req.VideosWatched,
			"total_videos":   chapter.TotalVideos,
			"percentage":     models.ProgressPercentage(*req.VideosWatched, chapter.TotalVideos),
		},
	})
}
