package catalog

import (
	"context"
	"entrelaunch/cache"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/result"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	MsgRatingOutOfRange      = "Score must be between 1 and 5"
	MsgRatingNeedsEnrollment = "Only enrolled students can rate this course"
)

type RatingCreate struct {
	CourseID uint
	UserID   uint
	Score    int
	Comment  string
}

// RatingSummary is the average score of a course, rounded to two decimals.
type RatingSummary struct {
	CourseID uint            `json:"course_id"`
	Average  decimal.Decimal `json:"average"`
	Count    int64           `json:"count"`
}

// RateCourse records or replaces the user's rating for a course.
func (s *Service) RateCourse(ctx context.Context, req RatingCreate) result.Result[*courseModels.CourseRating] {
	if req.Score < 1 || req.Score > 5 {
		return result.Fail[*courseModels.CourseRating](result.Validation, MsgRatingOutOfRange)
	}
	if found := s.GetCourse(ctx, req.CourseID); !found.IsSuccess {
		return result.Fail[*courseModels.CourseRating](found.Kind(), found.Message)
	}

	var enrolled int64
	if err := s.db.WithContext(ctx).Model(&courseModels.Enrollment{}).
		Scopes(models.Alive).
		Where("course_id = ? AND user_id = ? AND is_active = ?", req.CourseID, req.UserID, true).
		Count(&enrolled).Error; err != nil {
		s.log.Error("Failed to check enrollment", "course_id", req.CourseID, "user_id", req.UserID, "error", err)
		return result.Fail[*courseModels.CourseRating](result.Internal, "Failed to rate course")
	}
	if enrolled == 0 {
		return result.Fail[*courseModels.CourseRating](result.Forbidden, MsgRatingNeedsEnrollment)
	}

	rating := &courseModels.CourseRating{
		UserID:   req.UserID,
		CourseID: req.CourseID,
		Score:    req.Score,
		Comment:  req.Comment,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "comment", "lifecycle", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		s.log.Error("Failed to save rating", "course_id", req.CourseID, "user_id", req.UserID, "error", err)
		return result.Fail[*courseModels.CourseRating](result.Internal, "Failed to rate course")
	}

	s.invalidateRating(ctx, req.CourseID)
	return result.Ok("Course rated successfully", rating)
}

// GetCourseRating returns the rating summary, served from the cache when one is
// configured and holds it.
func (s *Service) GetCourseRating(ctx context.Context, courseID uint) result.Result[RatingSummary] {
	key := cache.CourseRatingKey(courseID)
	if s.cache != nil {
		var cached RatingSummary
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return result.Ok("Course rating fetched successfully", cached)
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("Rating cache read failed", "course_id", courseID, "error", err)
		}
	}

	if found := s.GetCourse(ctx, courseID); !found.IsSuccess {
		return result.Fail[RatingSummary](found.Kind(), found.Message)
	}

	var row struct {
		Average float64
		Count   int64
	}
	if err := s.db.WithContext(ctx).Model(&courseModels.CourseRating{}).
		Scopes(models.Alive).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
		Where("course_id = ?", courseID).
		Scan(&row).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Error("Failed to aggregate ratings", "course_id", courseID, "error", err)
		return result.Fail[RatingSummary](result.Internal, "Failed to fetch course rating")
	}

	summary := RatingSummary{
		CourseID: courseID,
		Average:  decimal.NewFromFloat(row.Average).Round(2),
		Count:    row.Count,
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary, s.ratingTTL); err != nil {
			s.log.Warn("Rating cache write failed", "course_id", courseID, "error", err)
		}
	}
	return result.Ok("Course rating fetched successfully", summary)
}

func (s *Service) invalidateRating(ctx context.Context, courseID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.CourseRatingKey(courseID)); err != nil {
		s.log.Warn("Rating cache invalidation failed", "course_id", courseID, "error", err)
	}
}
