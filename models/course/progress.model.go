package course

import (
	"entrelaunch/models"
	"time"

	"github.com/shopspring/decimal"
)

// StudentProgress tracks a user's progress through a course. One row per (user, course).
type StudentProgress struct {
	models.Base
	UserID               uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	CourseID             uint            `json:"course_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	LastLessonID         *uint           `json:"last_lesson_id"`
	TimeSpentSeconds     int64           `json:"time_spent_seconds" gorm:"default:0"`
	CompletionPercentage decimal.Decimal `json:"completion_percentage" gorm:"type:decimal(5,2)"` // 0-100
	LastActivityAt       time.Time       `json:"last_activity_at"`
}
