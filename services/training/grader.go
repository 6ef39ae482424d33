package training

import (
	"context"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/result"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SubmittedAnswer is the answer a user picked for one question.
type SubmittedAnswer struct {
	QuestionID uint `json:"question_id" validate:"required"`
	AnswerID   uint `json:"answer_id" validate:"required"`
}

// GradeResult is a scored submission. It is not persisted by CalculateResult.
type GradeResult struct {
	ExamID               uint            `json:"exam_id"`
	ObtainedMark         decimal.Decimal `json:"obtained_mark"`
	MaxMark              decimal.Decimal `json:"max_mark"`
	CompletionPercentage decimal.Decimal `json:"completion_percentage"`
	CorrectCount         int             `json:"correct_count"`
	AnsweredCount        int             `json:"answered_count"`
	QuestionCount        int             `json:"question_count"`
	TimeTakenSeconds     int             `json:"time_taken_seconds"`
}

// Passed reports whether the obtained mark reaches half of the maximum.
func (g GradeResult) Passed() bool {
	return g.ObtainedMark.GreaterThanOrEqual(g.MaxMark.Div(decimal.NewFromInt(2)))
}

func (g GradeResult) Status() courseModels.ResultStatus {
	if g.Passed() {
		return courseModels.ResultPassed
	}
	return courseModels.ResultFailed
}

func (s *Service) loadExam(ctx context.Context, db *gorm.DB, examID uint) (courseModels.Exam, error) {
	var exam courseModels.Exam
	err := db.WithContext(ctx).
		Scopes(models.Alive).
		Preload("Questions", func(q *gorm.DB) *gorm.DB {
			return q.Scopes(models.Alive).Order("order_index, id")
		}).
		Preload("Questions.Answers", func(q *gorm.DB) *gorm.DB {
			return q.Scopes(models.Alive).Order("order_index, id")
		}).
		First(&exam, examID).Error
	return exam, err
}

// grade scores answers against exam. Only the first submission for a question
// counts; answers for questions outside the exam are ignored.
func grade(exam courseModels.Exam, answers []SubmittedAnswer, timeTaken int) GradeResult {
	g := GradeResult{
		ExamID:           exam.ID,
		ObtainedMark:     decimal.Zero,
		MaxMark:          decimal.Zero,
		QuestionCount:    len(exam.Questions),
		TimeTakenSeconds: timeTaken,
	}

	submitted := make(map[uint]uint, len(answers))
	for _, a := range answers {
		if _, seen := submitted[a.QuestionID]; !seen {
			submitted[a.QuestionID] = a.AnswerID
		}
	}

	for _, q := range exam.Questions {
		g.MaxMark = g.MaxMark.Add(q.Mark)
		picked, ok := submitted[q.ID]
		if !ok {
			continue
		}
		g.AnsweredCount++
		if correct, found := q.CorrectAnswer(); found && correct.ID == picked {
			g.ObtainedMark = g.ObtainedMark.Add(q.Mark)
			g.CorrectCount++
		}
	}

	g.CompletionPercentage = completionPercentage(int64(g.AnsweredCount), int64(g.QuestionCount))
	return g
}

// CalculateResult grades a submission without recording an attempt.
func (s *Service) CalculateResult(ctx context.Context, examID uint, answers []SubmittedAnswer, timeTakenSeconds int) result.Result[GradeResult] {
	exam, err := s.loadExam(ctx, s.db, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[GradeResult](result.NotFound, MsgExamNotFound)
		}
		s.log.Error("Failed to load exam", "exam_id", examID, "error", err)
		return result.Fail[GradeResult](result.Internal, "Failed to calculate result")
	}
	if len(exam.Questions) == 0 {
		return result.Fail[GradeResult](result.BusinessRule, MsgExamNoQuestions)
	}
	return result.Ok("Result calculated successfully", grade(exam, answers, timeTakenSeconds))
}
