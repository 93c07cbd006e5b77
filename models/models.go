package models

import (
	"database/sql/driver"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDModel is the base for API-facing entities. The frontend expects string
// ids, so primary keys are UUIDs generated on insert.
type UUIDModel struct {
	ID string `json:"id" gorm:"type:char(36);primaryKey"`
}

func (m *UUIDModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher:
		return true
	}
	return false
}

// Subject canonical names.
const (
	SubjectPhysics   = "physics"
	SubjectChemistry = "chemistry"
	SubjectMaths     = "maths"
)

// Subject color palette.
const (
	ColorBlue   = "#3b82f6"
	ColorPurple = "#8b5cf6"
	ColorPink   = "#ec4899"
	ColorGreen  = "#10b981"
	ColorOrange = "#f59e0b"
)

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// User model. Email is stored lower-cased and is unique case-insensitively.
type User struct {
	UUIDModel
	Email       string     `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Name        string     `json:"name" gorm:"size:255;not null"`
	Password    string     `json:"-" gorm:"size:255;not null"`
	Role        Role       `json:"role" gorm:"size:10;not null;default:'student';type:enum('student','teacher')"`
	IsActive    bool       `json:"is_active" gorm:"not null;default:true"`
	IsStaff     bool       `json:"is_staff" gorm:"not null;default:false"`
	IsSuperuser bool       `json:"is_superuser" gorm:"not null;default:false"`
	DateJoined  time.Time  `json:"date_joined" gorm:"autoCreateTime"`
	LastLogin   *time.Time `json:"last_login"`

	// Relationships
	Progress []VideoProgress `json:"progress,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string { return "users" }

// Subject model - Physics, Chemistry, Maths
type Subject struct {
	UUIDModel
	Name        string    `json:"name" gorm:"size:50;not null;uniqueIndex;type:enum('physics','chemistry','maths')"`
	DisplayName string    `json:"display_name" gorm:"size:100;not null"`
	Color       string    `json:"color" gorm:"size:7;not null;default:'#3b82f6'"`
	Order       int       `json:"order" gorm:"column:order;not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Chapters []Chapter `json:"chapters,omitempty" gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
}

func (Subject) TableName() string { return "subjects" }

// Chapter model for each subject. (subject, title) is unique.
type Chapter struct {
	UUIDModel
	SubjectID   string    `json:"subject_id" gorm:"type:char(36);not null;uniqueIndex:idx_chapters_subject_title"`
	Title       string    `json:"title" gorm:"size:200;not null;uniqueIndex:idx_chapters_subject_title"`
	Order       int       `json:"order" gorm:"column:order;not null;default:0"`
	TotalVideos int       `json:"total_videos" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Subject Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
}

func (Chapter) TableName() string { return "chapters" }

// VideoProgress tracks video watch progress per student per chapter.
// At most one row exists per (student, chapter); updates are upserts riding
// on the unique index, so concurrent writers never produce duplicates.
type VideoProgress struct {
	UUIDModel
	StudentID     string    `json:"student_id" gorm:"type:char(36);not null;uniqueIndex:idx_progress_student_chapter"`
	ChapterID     string    `json:"chapter_id" gorm:"type:char(36);not null;uniqueIndex:idx_progress_student_chapter"`
	VideosWatched int       `json:"videos_watched" gorm:"not null;default:0"`
	LastWatchedAt time.Time `json:"last_watched_at"`
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	Student User    `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Chapter Chapter `json:"chapter,omitempty" gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE"`
}

func (VideoProgress) TableName() string { return "video_progress" }

// Percentage returns the watched share of the chapter, assuming Chapter is loaded.
func (vp *VideoProgress) Percentage() float64 {
	return ProgressPercentage(vp.VideosWatched, vp.Chapter.TotalVideos)
}

// ProgressPercentage computes round(watched/total*100) to one decimal place.
// A chapter or subject with no videos reports 0 rather than dividing by zero.
// Watched counts are not clamped, so values above 100 are possible.
func ProgressPercentage(watched, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(watched)/float64(total)*1000) / 10
}

// ActivityLog model for audit logging
type ActivityLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:char(36);index"`
	Action    string    `json:"action" gorm:"size:50;not null"`
	Resource  string    `json:"resource" gorm:"size:100;not null"`
	Details   JSON      `json:"details" gorm:"type:json"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	UserAgent string    `json:"user_agent" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
