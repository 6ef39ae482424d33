package training

import (
	"context"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/result"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressUpdate struct {
	CourseID         uint
	UserID           uint
	LessonID         uint
	TimeSpentSeconds int64
}

// ProgressView is the stored progress plus the completed lesson set.
type ProgressView struct {
	courseModels.StudentProgress
	CompletedLessonIDs []uint `json:"completed_lesson_ids"`
	TotalLessons       int64  `json:"total_lessons"`
}

var (
	hundred     = decimal.NewFromInt(100)
	errNoLesson = errors.New("training: lesson not in course")
)

// completionPercentage is completed/total*100, two decimals, clamped to [0,100].
func completionPercentage(completed, total int64) decimal.Decimal {
	if total <= 0 || completed <= 0 {
		return decimal.Zero
	}
	pct := decimal.NewFromInt(completed).Mul(hundred).Div(decimal.NewFromInt(total)).Round(2)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// RecordProgress marks a lesson complete, accumulates time spent and recomputes the
// completion percentage from the distinct lessons completed. Concurrent calls for
// the same (user, course) share one progress row.
func (s *Service) RecordProgress(ctx context.Context, req ProgressUpdate) result.Result[*courseModels.StudentProgress] {
	if req.TimeSpentSeconds < 0 {
		return result.Fail[*courseModels.StudentProgress](result.Validation, "Time spent cannot be negative")
	}
	if _, err := s.findCourse(ctx, s.db, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[*courseModels.StudentProgress](result.NotFound, MsgCourseNotFound)
		}
		s.log.Error("Failed to load course", "course_id", req.CourseID, "error", err)
		return result.Fail[*courseModels.StudentProgress](result.Internal, "Failed to record progress")
	}
	if _, err := s.findUser(ctx, s.db, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[*courseModels.StudentProgress](result.NotFound, MsgUserNotFound)
		}
		s.log.Error("Failed to load user", "user_id", req.UserID, "error", err)
		return result.Fail[*courseModels.StudentProgress](result.Internal, "Failed to record progress")
	}

	var progress courseModels.StudentProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lesson courseModels.Lesson
		if err := tx.Scopes(models.Alive).
			Where("id = ? AND course_id = ?", req.LessonID, req.CourseID).
			First(&lesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNoLesson
			}
			return err
		}

		now := s.now()
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&courseModels.LessonCompletion{
			UserID:      req.UserID,
			LessonID:    lesson.ID,
			CourseID:    req.CourseID,
			CompletedAt: now,
		}).Error; err != nil {
			return err
		}

		// first visit races are settled by idx_progress_user_course
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&courseModels.StudentProgress{
			UserID:               req.UserID,
			CourseID:             req.CourseID,
			CompletionPercentage: decimal.Zero,
			LastActivityAt:       now,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&courseModels.StudentProgress{}).
			Where("user_id = ? AND course_id = ?", req.UserID, req.CourseID).
			Updates(map[string]interface{}{
				"last_lesson_id":     lesson.ID,
				"time_spent_seconds": gorm.Expr("time_spent_seconds + ?", req.TimeSpentSeconds),
				"last_activity_at":   now,
				"lifecycle":          models.LifecycleActive,
			}).Error; err != nil {
			return err
		}

		// counted after the row update so concurrent completions are seen
		var total, completed int64
		if err := tx.Model(&courseModels.Lesson{}).
			Scopes(models.Alive).
			Where("course_id = ?", req.CourseID).
			Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.LessonCompletion{}).
			Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
			Scopes(models.AliveIn("lessons")).
			Where("lesson_completions.user_id = ? AND lesson_completions.course_id = ?", req.UserID, req.CourseID).
			Count(&completed).Error; err != nil {
			return err
		}

		if err := tx.Model(&courseModels.StudentProgress{}).
			Where("user_id = ? AND course_id = ?", req.UserID, req.CourseID).
			Update("completion_percentage", completionPercentage(completed, total)).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND course_id = ?", req.UserID, req.CourseID).First(&progress).Error
	})
	if err != nil {
		if errors.Is(err, errNoLesson) {
			return result.Fail[*courseModels.StudentProgress](result.NotFound, MsgLessonNotFound)
		}
		s.log.Error("Failed to record progress", "course_id", req.CourseID, "user_id", req.UserID, "lesson_id", req.LessonID, "error", err)
		return result.Fail[*courseModels.StudentProgress](result.Internal, "Failed to record progress")
	}
	return result.Ok(MsgProgressRecorded, &progress)
}

func (s *Service) GetProgress(ctx context.Context, courseID, userID uint) result.Result[ProgressView] {
	var view ProgressView
	err := s.db.WithContext(ctx).Scopes(models.Alive).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&view.StudentProgress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[ProgressView](result.NotFound, MsgProgressNotFound)
		}
		s.log.Error("Failed to load progress", "course_id", courseID, "user_id", userID, "error", err)
		return result.Fail[ProgressView](result.Internal, "Failed to fetch progress")
	}

	if err := s.db.WithContext(ctx).
		Model(&courseModels.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
		Scopes(models.AliveIn("lessons")).
		Where("lesson_completions.user_id = ? AND lesson_completions.course_id = ?", userID, courseID).
		Order("lesson_completions.lesson_id").
		Pluck("lesson_completions.lesson_id", &view.CompletedLessonIDs).Error; err != nil {
		s.log.Error("Failed to load completed lessons", "course_id", courseID, "user_id", userID, "error", err)
		return result.Fail[ProgressView](result.Internal, "Failed to fetch progress")
	}
	if err := s.db.WithContext(ctx).Model(&courseModels.Lesson{}).
		Scopes(models.Alive).
		Where("course_id = ?", courseID).
		Count(&view.TotalLessons).Error; err != nil {
		s.log.Error("Failed to count lessons", "course_id", courseID, "error", err)
		return result.Fail[ProgressView](result.Internal, "Failed to fetch progress")
	}
	if view.CompletedLessonIDs == nil {
		view.CompletedLessonIDs = []uint{}
	}
	return result.Ok("Progress fetched successfully", view)
}
