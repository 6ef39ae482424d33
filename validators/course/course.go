package courseValidator

import (
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/training"
	"entrelaunch/validators"

	"github.com/gofiber/fiber/v2"
)

const (
	CourseListKey = "validatedCourseList"
	ProgressKey   = "validatedProgress"
	RetakeKey     = "validatedRetake"
	RateKey       = "validatedRating"
)

type CourseListRequest struct {
	Page   int                       `query:"page" validate:"omitempty,min=1"`
	Limit  int                       `query:"limit" validate:"omitempty,min=1,max=100"`
	Status courseModels.CourseStatus `query:"status" validate:"omitempty,oneof=DRAFT ACTIVE CLOSED ARCHIVED"`
}

type ProgressRequest struct {
	LessonID         uint  `json:"lesson_id" validate:"required"`
	TimeSpentSeconds int64 `json:"time_spent_seconds" validate:"gte=0"`
}

type RetakeRequest struct {
	Answers          []training.SubmittedAnswer `json:"answers" validate:"required,min=1,dive"`
	TimeTakenSeconds int                        `json:"time_taken_seconds" validate:"gte=0"`
}

type RateRequest struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

func ListCourses() fiber.Handler {
	return validators.Query[CourseListRequest](CourseListKey)
}

func UpdateProgress() fiber.Handler {
	return validators.Body[ProgressRequest](ProgressKey)
}

func Retake() fiber.Handler {
	return validators.Body[RetakeRequest](RetakeKey)
}

func RateCourse() fiber.Handler {
	return validators.Body[RateRequest](RateKey)
}
