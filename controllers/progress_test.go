package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"studytrack_go/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSubject() models.Subject {
	return models.Subject{
		UUIDModel:   models.UUIDModel{ID: "subject-1"},
		Name:        models.SubjectPhysics,
		DisplayName: "Physics",
		Color:       models.ColorBlue,
	}
}

func testChapters() []models.Chapter {
	return []models.Chapter{
		{UUIDModel: models.UUIDModel{ID: "ch-1"}, SubjectID: "subject-1", Title: "Kinematics", TotalVideos: 10},
		{UUIDModel: models.UUIDModel{ID: "ch-2"}, SubjectID: "subject-1", Title: "Laws of Motion", TotalVideos: 12},
		{UUIDModel: models.UUIDModel{ID: "ch-3"}, SubjectID: "subject-1", Title: "Gravitation", TotalVideos: 8},
	}
}

func TestSummarizeSubject(t *testing.T) {
	watched := map[string]int{
		"ch-1": 3,
		"ch-2": 12,
	}

	summary, breakdown := summarizeSubject(testSubject(), testChapters(), watched)

	assert.Equal(t, "Physics", summary.Subject)
	assert.Equal(t, 30, summary.TotalVideos)
	assert.Equal(t, 15, summary.VideosWatched)
	assert.Equal(t, 50.0, summary.Percentage)
	assert.Equal(t, models.ColorBlue, summary.Color)

	require.Len(t, breakdown.Chapters, 3)
	assert.Equal(t, "Physics", breakdown.Subject)
	assert.Equal(t, ChapterProgress{ID: "ch-1", Title: "Kinematics", TotalVideos: 10, WatchedVideos: 3}, breakdown.Chapters[0])
	assert.Equal(t, 12, breakdown.Chapters[1].WatchedVideos)
}

func TestSummarizeSubjectMissingProgressCountsAsZero(t *testing.T) {
	summary, breakdown := summarizeSubject(testSubject(), testChapters(), map[string]int{})

	assert.Equal(t, 0, summary.VideosWatched)
	assert.Equal(t, 0.0, summary.Percentage)
	for _, ch := range breakdown.Chapters {
		assert.Equal(t, 0, ch.WatchedVideos)
	}
}

func TestSummarizeSubjectNoChapters(t *testing.T) {
	summary, breakdown := summarizeSubject(testSubject(), nil, nil)

	assert.Equal(t, 0, summary.TotalVideos)
	assert.Equal(t, 0.0, summary.Percentage, "empty subject must not divide by zero")
	assert.Empty(t, breakdown.Chapters)
}

func TestSummarizeSubjectPercentageRounding(t *testing.T) {
	subject := testSubject()
	chapters := []models.Chapter{
		{UUIDModel: models.UUIDModel{ID: "ch-1"}, SubjectID: "subject-1", Title: "Kinematics", TotalVideos: 3},
	}

	summary, _ := summarizeSubject(subject, chapters, map[string]int{"ch-1": 1})
	assert.Equal(t, 33.3, summary.Percentage)
}

func TestSummarizeSubjectWatchedAboveTotal(t *testing.T) {
	subject := testSubject()
	chapters := []models.Chapter{
		{UUIDModel: models.UUIDModel{ID: "ch-1"}, SubjectID: "subject-1", Title: "Kinematics", TotalVideos: 10},
	}

	// Watched counts are stored unclamped; the summary reflects them as-is.
	summary, _ := summarizeSubject(subject, chapters, map[string]int{"ch-1": 15})
	assert.Equal(t, 15, summary.VideosWatched)
	assert.Equal(t, 150.0, summary.Percentage)
}

// newProgressTestApp mounts the controller behind a stub that injects the
// authenticated user, the way the JWT middleware would.
func newProgressTestApp(user *models.User) *fiber.App {
	app := fiber.New()
	pc := &ProgressController{}
	inject := func(c *fiber.Ctx) error {
		c.Locals("user", user)
		return c.Next()
	}
	app.Get("/api/progress/dashboard", inject, pc.Dashboard)
	app.Post("/api/progress/update", inject, pc.UpdateProgress)
	return app
}

func TestDashboardRejectsTeacherRole(t *testing.T) {
	teacher := &models.User{
		UUIDModel: models.UUIDModel{ID: "teacher-1"},
		Email:     "teacher@example.com",
		Name:      "Meera Iyer",
		Role:      models.RoleTeacher,
		IsActive:  true,
	}
	app := newProgressTestApp(teacher)

	req := httptest.NewRequest("GET", "/api/progress/dashboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "Only students can access dashboard", body.Message)
}

func TestUpdateProgressRequiresBothFields(t *testing.T) {
	student := &models.User{
		UUIDModel: models.UUIDModel{ID: "student-1"},
		Email:     "asha@example.com",
		Name:      "Asha Rao",
		Role:      models.RoleStudent,
		IsActive:  true,
	}
	app := newProgressTestApp(student)

	tests := []struct {
		name string
		body string
	}{
		{"missing videos_watched", `{"chapter_id":"ch-1"}`},
		{"null videos_watched", `{"chapter_id":"ch-1","videos_watched":null}`},
		{"missing chapter_id", `{"videos_watched":3}`},
		{"empty body", `{}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/progress/update", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, "chapter_id and videos_watched are required", body.Message)
		})
	}
}

func TestProgressEndpointsRequireUser(t *testing.T) {
	app := fiber.New()
	pc := &ProgressController{}
	app.Get("/api/progress/dashboard", pc.Dashboard)

	req := httptest.NewRequest("GET", "/api/progress/dashboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
