package catalog

import (
	"context"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/result"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const MsgExamNotFound = "Exam not found"

type AnswerCreate struct {
	Text      string
	IsCorrect bool
}

type QuestionCreate struct {
	Text    string
	Mark    decimal.Decimal
	Answers []AnswerCreate
}

// ExamCreate describes an exam and its questions. Exactly one of CourseID,
// LessonID and PathID must be set.
type ExamCreate struct {
	CourseID        *uint
	LessonID        *uint
	PathID          *uint
	Title           string
	Description     string
	DurationMinutes int
	MinMark         decimal.Decimal
	MaxAttempts     int
	Questions       []QuestionCreate
}

// validate returns a user-facing reason the request is unusable, or "".
func (req ExamCreate) validate() string {
	parents := 0
	for _, p := range []*uint{req.CourseID, req.LessonID, req.PathID} {
		if p != nil {
			parents++
		}
	}
	if parents != 1 {
		return "Exam must belong to exactly one of a course, a lesson or a training path"
	}
	if req.MaxAttempts < 0 {
		return "Maximum attempts cannot be negative"
	}
	if len(req.Questions) == 0 {
		return "Exam must have at least one question"
	}
	for i, q := range req.Questions {
		if !q.Mark.IsPositive() {
			return fmt.Sprintf("Question %d must carry a positive mark", i+1)
		}
		if len(q.Answers) < 2 {
			return fmt.Sprintf("Question %d needs at least two answers", i+1)
		}
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Sprintf("Question %d must have exactly one correct answer", i+1)
		}
	}
	return ""
}

func (s *Service) parentExists(ctx context.Context, req ExamCreate) (bool, error) {
	var model interface{}
	var id uint
	switch {
	case req.CourseID != nil:
		model, id = &courseModels.Course{}, *req.CourseID
	case req.LessonID != nil:
		model, id = &courseModels.Lesson{}, *req.LessonID
	default:
		model, id = &courseModels.TrainingPath{}, *req.PathID
	}
	var n int64
	err := s.db.WithContext(ctx).Model(model).Scopes(models.Alive).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// CreateExam stores the exam with its questions and answers in one insert. MaxMark
// is the sum of the question marks.
func (s *Service) CreateExam(ctx context.Context, req ExamCreate) result.Result[*courseModels.Exam] {
	if reason := req.validate(); reason != "" {
		return result.Fail[*courseModels.Exam](result.Validation, reason)
	}
	ok, err := s.parentExists(ctx, req)
	if err != nil {
		s.log.Error("Failed to check exam parent", "error", err)
		return result.Fail[*courseModels.Exam](result.Internal, "Failed to create exam")
	}
	if !ok {
		return result.Fail[*courseModels.Exam](result.NotFound, "Exam parent not found or deleted")
	}

	exam := &courseModels.Exam{
		CourseID:        req.CourseID,
		LessonID:        req.LessonID,
		PathID:          req.PathID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		MinMark:         req.MinMark,
		MaxMark:         decimal.Zero,
		MaxAttempts:     req.MaxAttempts,
	}
	if exam.MaxAttempts == 0 {
		exam.MaxAttempts = 1
	}
	for i, q := range req.Questions {
		question := courseModels.Question{Text: q.Text, Mark: q.Mark, OrderIndex: i}
		for j, a := range q.Answers {
			question.Answers = append(question.Answers, courseModels.Answer{Text: a.Text, IsCorrect: a.IsCorrect, OrderIndex: j})
		}
		exam.Questions = append(exam.Questions, question)
		exam.MaxMark = exam.MaxMark.Add(q.Mark)
	}

	if err := s.db.WithContext(ctx).Create(exam).Error; err != nil {
		s.log.Error("Failed to create exam", "title", req.Title, "error", err)
		return result.Fail[*courseModels.Exam](result.Internal, "Failed to create exam")
	}
	s.log.Info("Exam created", "exam_id", exam.ID, "questions", len(exam.Questions))
	return result.Ok("Exam created successfully", exam)
}

type AnswerView struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"is_correct,omitempty"`
}

type QuestionView struct {
	ID      uint            `json:"id"`
	Text    string          `json:"text"`
	Mark    decimal.Decimal `json:"mark"`
	Answers []AnswerView    `json:"answers"`
}

type ExamView struct {
	ID              uint            `json:"id"`
	CourseID        *uint           `json:"course_id"`
	LessonID        *uint           `json:"lesson_id"`
	PathID          *uint           `json:"path_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"duration_minutes"`
	MinMark         decimal.Decimal `json:"min_mark"`
	MaxMark         decimal.Decimal `json:"max_mark"`
	MaxAttempts     int             `json:"max_attempts"`
	Questions       []QuestionView  `json:"questions"`
}

// GetExam returns the exam with its live questions. Correct-answer flags are only
// included when revealAnswers is set.
func (s *Service) GetExam(ctx context.Context, id uint, revealAnswers bool) result.Result[ExamView] {
	var exam courseModels.Exam
	err := s.db.WithContext(ctx).
		Scopes(models.Alive).
		Preload("Questions", func(q *gorm.DB) *gorm.DB {
			return q.Scopes(models.Alive).Order("order_index, id")
		}).
		Preload("Questions.Answers", func(q *gorm.DB) *gorm.DB {
			return q.Scopes(models.Alive).Order("order_index, id")
		}).
		First(&exam, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[ExamView](result.NotFound, MsgExamNotFound)
		}
		s.log.Error("Failed to load exam", "exam_id", id, "error", err)
		return result.Fail[ExamView](result.Internal, "Failed to fetch exam")
	}

	view := ExamView{
		ID:              exam.ID,
		CourseID:        exam.CourseID,
		LessonID:        exam.LessonID,
		PathID:          exam.PathID,
		Title:           exam.Title,
		Description:     exam.Description,
		DurationMinutes: exam.DurationMinutes,
		MinMark:         exam.MinMark,
		MaxMark:         exam.MaxMark,
		MaxAttempts:     exam.AllowedAttempts(),
		Questions:       make([]QuestionView, 0, len(exam.Questions)),
	}
	for _, q := range exam.Questions {
		qv := QuestionView{ID: q.ID, Text: q.Text, Mark: q.Mark, Answers: make([]AnswerView, 0, len(q.Answers))}
		for _, a := range q.Answers {
			av := AnswerView{ID: a.ID, Text: a.Text}
			if revealAnswers {
				correct := a.IsCorrect
				av.IsCorrect = &correct
			}
			qv.Answers = append(qv.Answers, av)
		}
		view.Questions = append(view.Questions, qv)
	}
	return result.Ok("Exam fetched successfully", view)
}
