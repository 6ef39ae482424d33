package training

import (
	"context"
	"encoding/json"
	"entrelaunch/database"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/result"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RetakeRequest struct {
	ExamID           uint
	UserID           uint
	Answers          []SubmittedAnswer
	TimeTakenSeconds int
}

type RetakeEligibility struct {
	ExamID       uint `json:"exam_id"`
	AttemptsUsed int  `json:"attempts_used"`
	MaxAttempts  int  `json:"max_attempts"`
	CanRetake    bool `json:"can_retake"`
}

// AttemptHistory lists every attempt, oldest first, with the best one picked out.
type AttemptHistory struct {
	Attempts    []courseModels.ExamResult `json:"attempts"`
	BestAttempt *courseModels.ExamResult  `json:"best_attempt"`
}

func (s *Service) countAttempts(ctx context.Context, db *gorm.DB, examID, userID uint) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&courseModels.ExamResult{}).
		Scopes(models.Alive).
		Where("exam_id = ? AND user_id = ?", examID, userID).
		Count(&n).Error
	return n, err
}

// CanRetake reports whether the user has attempts left on the exam.
func (s *Service) CanRetake(ctx context.Context, examID, userID uint) result.Result[RetakeEligibility] {
	var exam courseModels.Exam
	if err := s.db.WithContext(ctx).Scopes(models.Alive).First(&exam, examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[RetakeEligibility](result.NotFound, MsgExamNotFound)
		}
		s.log.Error("Failed to load exam", "exam_id", examID, "error", err)
		return result.Fail[RetakeEligibility](result.Internal, "Failed to check attempts")
	}
	used, err := s.countAttempts(ctx, s.db, examID, userID)
	if err != nil {
		s.log.Error("Failed to count attempts", "exam_id", examID, "user_id", userID, "error", err)
		return result.Fail[RetakeEligibility](result.Internal, "Failed to check attempts")
	}

	elig := RetakeEligibility{
		ExamID:       examID,
		AttemptsUsed: int(used),
		MaxAttempts:  exam.AllowedAttempts(),
		CanRetake:    int(used) < exam.AllowedAttempts(),
	}
	if !elig.CanRetake {
		return result.Ok(MsgMaxAttempts, elig)
	}
	return result.Ok("User can attempt this exam", elig)
}

// Retake grades a submission and records it as the user's newest, only active
// attempt. The attempt count is re-read inside the transaction; two concurrent
// submissions racing for the same attempt number collide on the unique index.
func (s *Service) Retake(ctx context.Context, req RetakeRequest) result.Result[*courseModels.ExamResult] {
	if req.TimeTakenSeconds < 0 {
		return result.Fail[*courseModels.ExamResult](result.Validation, "Time taken cannot be negative")
	}
	if _, err := s.findUser(ctx, s.db, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[*courseModels.ExamResult](result.NotFound, MsgUserNotFound)
		}
		s.log.Error("Failed to load user", "user_id", req.UserID, "error", err)
		return result.Fail[*courseModels.ExamResult](result.Internal, "Failed to submit exam")
	}

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return result.Fail[*courseModels.ExamResult](result.Validation, "Invalid answers")
	}

	var attempt courseModels.ExamResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exam, err := s.loadExam(ctx, tx, req.ExamID)
		if err != nil {
			return err
		}
		if len(exam.Questions) == 0 {
			return errExamHasNoQuestions
		}

		used, err := s.countAttempts(ctx, tx, req.ExamID, req.UserID)
		if err != nil {
			return err
		}
		if int(used) >= exam.AllowedAttempts() {
			return errMaxAttempts
		}

		if err := tx.Model(&courseModels.ExamResult{}).
			Where("exam_id = ? AND user_id = ? AND is_active = ?", req.ExamID, req.UserID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		g := grade(exam, req.Answers, req.TimeTakenSeconds)
		attempt = courseModels.ExamResult{
			UserID:               req.UserID,
			ExamID:               req.ExamID,
			AttemptNumber:        int(used) + 1,
			ObtainedMark:         g.ObtainedMark,
			MaxMark:              g.MaxMark,
			CompletionPercentage: g.CompletionPercentage,
			TimeTakenSeconds:     req.TimeTakenSeconds,
			Status:               g.Status(),
			IsActive:             true,
			Answers:              datatypes.JSON(answersJSON),
			SubmittedAt:          s.now(),
		}
		return tx.Create(&attempt).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return result.Fail[*courseModels.ExamResult](result.NotFound, MsgExamNotFound)
		case errors.Is(err, errExamHasNoQuestions):
			return result.Fail[*courseModels.ExamResult](result.BusinessRule, MsgExamNoQuestions)
		case errors.Is(err, errMaxAttempts):
			return result.Fail[*courseModels.ExamResult](result.BusinessRule, MsgMaxAttempts)
		case database.IsDuplicateKey(err):
			s.log.Warn("Concurrent exam attempt rejected", "exam_id", req.ExamID, "user_id", req.UserID)
			return result.Fail[*courseModels.ExamResult](result.Conflict, MsgAttemptConflict)
		default:
			s.log.Error("Failed to record attempt", "exam_id", req.ExamID, "user_id", req.UserID, "error", err)
			return result.Fail[*courseModels.ExamResult](result.Internal, "Failed to submit exam")
		}
	}

	s.log.Info("Exam attempt recorded", "exam_id", req.ExamID, "user_id", req.UserID,
		"attempt", attempt.AttemptNumber, "status", attempt.Status)
	return result.Ok(MsgExamSubmitted, &attempt)
}

func (s *Service) GetActiveResult(ctx context.Context, examID, userID uint) result.Result[*courseModels.ExamResult] {
	var r courseModels.ExamResult
	err := s.db.WithContext(ctx).Scopes(models.Alive).
		Where("exam_id = ? AND user_id = ? AND is_active = ?", examID, userID, true).
		First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[*courseModels.ExamResult](result.NotFound, MsgNoActiveResult)
		}
		s.log.Error("Failed to load active result", "exam_id", examID, "user_id", userID, "error", err)
		return result.Fail[*courseModels.ExamResult](result.Internal, "Failed to fetch result")
	}
	return result.Ok("Result fetched successfully", &r)
}

// GetAllAttempts returns every attempt. The best attempt has the highest obtained
// mark; the earliest attempt wins a tie.
func (s *Service) GetAllAttempts(ctx context.Context, examID, userID uint) result.Result[AttemptHistory] {
	var attempts []courseModels.ExamResult
	if err := s.db.WithContext(ctx).Scopes(models.Alive).
		Where("exam_id = ? AND user_id = ?", examID, userID).
		Order("attempt_number asc").
		Find(&attempts).Error; err != nil {
		s.log.Error("Failed to list attempts", "exam_id", examID, "user_id", userID, "error", err)
		return result.Fail[AttemptHistory](result.Internal, "Failed to fetch attempts")
	}

	history := AttemptHistory{Attempts: attempts}
	for i := range attempts {
		if history.BestAttempt == nil || attempts[i].ObtainedMark.GreaterThan(history.BestAttempt.ObtainedMark) {
			history.BestAttempt = &attempts[i]
		}
	}
	if history.Attempts == nil {
		history.Attempts = []courseModels.ExamResult{}
	}
	return result.Ok("Attempts fetched successfully", history)
}
