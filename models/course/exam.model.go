package course

import (
	"entrelaunch/models"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Exam belongs to exactly one of a course, a lesson or a training path.
type Exam struct {
	models.Base
	CourseID        *uint           `json:"course_id" gorm:"index"`
	LessonID        *uint           `json:"lesson_id" gorm:"index"`
	PathID          *uint           `json:"path_id" gorm:"index"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"duration_minutes" gorm:"default:0"`
	MinMark         decimal.Decimal `json:"min_mark" gorm:"type:decimal(8,2)"`
	MaxMark         decimal.Decimal `json:"max_mark" gorm:"type:decimal(8,2)"`
	MaxAttempts     int             `json:"max_attempts" gorm:"default:1"`
	Questions       []Question      `json:"questions,omitempty" gorm:"foreignKey:ExamID"`
}

// AllowedAttempts returns MaxAttempts, treating an unset value as a single attempt.
func (e Exam) AllowedAttempts() int {
	if e.MaxAttempts <= 0 {
		return 1
	}
	return e.MaxAttempts
}

type Question struct {
	models.Base
	ExamID     uint            `json:"exam_id" gorm:"index;not null"`
	Text       string          `json:"text" gorm:"type:text"`
	Mark       decimal.Decimal `json:"mark" gorm:"type:decimal(8,2)"`
	OrderIndex int             `json:"order_index" gorm:"default:0"`
	Answers    []Answer        `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`
}

// CorrectAnswer returns the first answer flagged correct.
func (q Question) CorrectAnswer() (Answer, bool) {
	for _, a := range q.Answers {
		if a.IsCorrect && !a.IsDeleted() {
			return a, true
		}
	}
	return Answer{}, false
}

type Answer struct {
	models.Base
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
}

type ResultStatus string

const (
	ResultPassed ResultStatus = "PASSED"
	ResultFailed ResultStatus = "FAILED"
)

// ExamResult is one scored attempt. Attempt numbers are dense per (exam, user).
type ExamResult struct {
	models.Base
	UserID               uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_exam_user_attempt"`
	ExamID               uint            `json:"exam_id" gorm:"not null;uniqueIndex:idx_exam_user_attempt"`
	AttemptNumber        int             `json:"attempt_number" gorm:"not null;uniqueIndex:idx_exam_user_attempt"`
	ObtainedMark         decimal.Decimal `json:"obtained_mark" gorm:"type:decimal(8,2)"`
	MaxMark              decimal.Decimal `json:"max_mark" gorm:"type:decimal(8,2)"`
	CompletionPercentage decimal.Decimal `json:"completion_percentage" gorm:"type:decimal(5,2)"`
	TimeTakenSeconds     int             `json:"time_taken_seconds"`
	Status               ResultStatus    `json:"status" gorm:"type:varchar(16);not null"`
	IsActive             bool            `json:"is_active" gorm:"index"`
	Answers              datatypes.JSON  `json:"answers"`
	SubmittedAt          time.Time       `json:"submitted_at"`
}
