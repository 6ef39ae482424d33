package course

import (
	"entrelaunch/models"
	"time"
)

// Lesson represents a unit of content within a course
type Lesson struct {
	models.Base
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Content         string `json:"content" gorm:"type:text"`
	VideoURL        string `json:"video_url"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
}

// LessonCompletion marks a lesson as completed by a user. One row per (user, lesson).
type LessonCompletion struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID    uint      `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	CourseID    uint      `json:"course_id" gorm:"not null;index"`
	CompletedAt time.Time `json:"completed_at"`
}
