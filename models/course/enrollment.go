package course

import (
	"entrelaunch/models"
	"time"
)

// Enrollment links a user to a course. At most one live enrollment exists per (user, course).
type Enrollment struct {
	models.Base
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	CourseID     uint       `json:"course_id" gorm:"index;not null"`
	EnrolledAt   time.Time  `json:"enrolled_at"`
	IsActive     bool       `json:"is_active"`
	UnenrolledAt *time.Time `json:"unenrolled_at"`
}
