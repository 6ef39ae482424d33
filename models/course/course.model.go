package course

import (
	"entrelaunch/models"
	"time"

	"github.com/shopspring/decimal"
)

type CourseStatus string

const (
	CourseDraft    CourseStatus = "DRAFT"
	CourseActive   CourseStatus = "ACTIVE"
	CourseClosed   CourseStatus = "CLOSED"
	CourseArchived CourseStatus = "ARCHIVED"
)

// Course represents a learning course
type Course struct {
	models.Base
	Title                  string          `json:"title"`
	Description            string          `json:"description"`
	Author                 string          `json:"author"`
	ThumbnailURL           string          `json:"thumbnail_url"`
	MaxEnrollment          int             `json:"max_enrollment" gorm:"default:0"` // 0 means unlimited
	CurrentEnrollmentCount int             `json:"current_enrollment_count" gorm:"default:0"`
	IsFree                 bool            `json:"is_free"`
	Price                  decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	Status                 CourseStatus    `json:"status" gorm:"type:varchar(16);default:'DRAFT'"`
	EndsAt                 *time.Time      `json:"ends_at"`
	Version                int64           `json:"-" gorm:"default:0"` // optimistic concurrency token
}

// HasCapacityLimit reports whether MaxEnrollment bounds the course.
func (c Course) HasCapacityLimit() bool {
	return c.MaxEnrollment > 0
}

// IsFull reports whether no seat is left.
func (c Course) IsFull() bool {
	return c.HasCapacityLimit() && c.CurrentEnrollmentCount >= c.MaxEnrollment
}

// TrainingPath groups courses into a track. Exams may be attached to a path.
type TrainingPath struct {
	models.Base
	Title       string `json:"title"`
	Description string `json:"description"`
}
