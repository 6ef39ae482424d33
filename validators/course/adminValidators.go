package courseValidator

import (
	courseModels "entrelaunch/models/course"
	"entrelaunch/validators"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const (
	CourseCreateKey   = "validatedCourse"
	CourseUpdateKey   = "validatedCourseUpdate"
	CourseStatusKey   = "validatedCourseStatus"
	LessonCreateKey   = "validatedLesson"
	ExamCreateKey     = "validatedExam"
	PathCreateKey     = "validatedPath"
	PaymentRecordKey  = "validatedPayment"
	RefundResolveKey  = "validatedRefundResolve"
	RefundListKey     = "validatedRefundList"
	EnrollmentListKey = "validatedEnrollmentList"
)

type CourseCreateRequest struct {
	Title         string          `json:"title" validate:"required,min=3,max=255"`
	Description   string          `json:"description" validate:"max=5000"`
	Author        string          `json:"author" validate:"max=255"`
	ThumbnailURL  string          `json:"thumbnail_url" validate:"omitempty,url"`
	MaxEnrollment int             `json:"max_enrollment" validate:"gte=0"`
	IsFree        bool            `json:"is_free"`
	Price         decimal.Decimal `json:"price"`
	EndsAt        *time.Time      `json:"ends_at"`
}

type CourseUpdateRequest struct {
	Title         *string          `json:"title" validate:"omitempty,min=3,max=255"`
	Description   *string          `json:"description" validate:"omitempty,max=5000"`
	Author        *string          `json:"author" validate:"omitempty,max=255"`
	ThumbnailURL  *string          `json:"thumbnail_url" validate:"omitempty,url"`
	MaxEnrollment *int             `json:"max_enrollment" validate:"omitempty,gte=0"`
	IsFree        *bool            `json:"is_free"`
	Price         *decimal.Decimal `json:"price"`
	EndsAt        *time.Time       `json:"ends_at"`
}

type CourseStatusRequest struct {
	Status courseModels.CourseStatus `json:"status" validate:"required,oneof=DRAFT ACTIVE CLOSED ARCHIVED"`
}

type LessonCreateRequest struct {
	Title           string `json:"title" validate:"required,min=3,max=255"`
	Content         string `json:"content"`
	VideoURL        string `json:"video_url" validate:"omitempty,url"`
	OrderIndex      int    `json:"order_index" validate:"gte=0"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`
}

type AnswerRequest struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionRequest struct {
	Text    string          `json:"text" validate:"required"`
	Mark    decimal.Decimal `json:"mark"`
	Answers []AnswerRequest `json:"answers" validate:"required,min=2,dive"`
}

type ExamCreateRequest struct {
	CourseID        *uint             `json:"course_id" validate:"omitempty,min=1"`
	LessonID        *uint             `json:"lesson_id" validate:"omitempty,min=1"`
	PathID          *uint             `json:"path_id" validate:"omitempty,min=1"`
	Title           string            `json:"title" validate:"required,min=3,max=255"`
	Description     string            `json:"description"`
	DurationMinutes int               `json:"duration_minutes" validate:"gte=0"`
	MinMark         decimal.Decimal   `json:"min_mark"`
	MaxAttempts     int               `json:"max_attempts" validate:"gte=0"`
	Questions       []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type PathCreateRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description"`
}

type PaymentRecordRequest struct {
	UserID     uint            `json:"user_id" validate:"required"`
	CourseID   uint            `json:"course_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	GatewayRef string          `json:"gateway_ref" validate:"required,max=128"`
}

type RefundResolveRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

type RefundListRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED"`
}

func CreateCourseAdmin() fiber.Handler {
	return validators.Body[CourseCreateRequest](CourseCreateKey)
}

func UpdateCourseAdmin() fiber.Handler {
	return validators.Body[CourseUpdateRequest](CourseUpdateKey)
}

func ChangeCourseStatus() fiber.Handler {
	return validators.Body[CourseStatusRequest](CourseStatusKey)
}

func CreateLesson() fiber.Handler {
	return validators.Body[LessonCreateRequest](LessonCreateKey)
}

// CreateExam checks the shape of the exam. Parent and answer rules are enforced when it is stored.
func CreateExam() fiber.Handler {
	return validators.Body[ExamCreateRequest](ExamCreateKey)
}

func CreatePath() fiber.Handler {
	return validators.Body[PathCreateRequest](PathCreateKey)
}

func RecordPayment() fiber.Handler {
	return validators.Body[PaymentRecordRequest](PaymentRecordKey)
}

func ResolveRefund() fiber.Handler {
	return validators.Body[RefundResolveRequest](RefundResolveKey)
}

func ListRefunds() fiber.Handler {
	return validators.Query[RefundListRequest](RefundListKey)
}

func ListEnrollments() fiber.Handler {
	return validators.Query[validators.Pagination](EnrollmentListKey)
}
