package course

import "entrelaunch/models"

// CourseRating is a user's 1-5 score for a course. One row per (user, course).
type CourseRating struct {
	models.Base
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_rating_user_course"`
	CourseID uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_rating_user_course;index"`
	Score    int    `json:"score" gorm:"not null"`
	Comment  string `json:"comment"`
}
