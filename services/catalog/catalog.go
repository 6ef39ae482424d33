// Package catalog manages what students enroll in: courses, lessons, exams,
// training paths and course ratings.
package catalog

import (
	"context"
	"entrelaunch/logger"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/result"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MsgCourseNotFound      = "Course not found or deleted"
	MsgCourseCreated       = "Course created successfully"
	MsgCourseUpdated       = "Course updated successfully"
	MsgCourseDeleted       = "Course deleted successfully"
	MsgInvalidTransition   = "Course status change is not allowed"
	MsgCapacityBelowCount  = "Maximum enrollment cannot be lower than the current enrollment count"
	MsgPaidCourseNeedPrice = "A paid course must have a price greater than zero"
	MsgCourseChanged       = "Course was modified by another request, please retry"
)

// RatingCache is the subset of cache.Cache the catalog uses.
type RatingCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Deps struct {
	DB        *gorm.DB
	Log       *logger.Logger
	Cache     RatingCache // optional
	RatingTTL time.Duration
}

type Service struct {
	db        *gorm.DB
	log       *logger.Logger
	cache     RatingCache
	ratingTTL time.Duration
}

func New(d Deps) *Service {
	ttl := d.RatingTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Service{
		db:        d.DB,
		log:       d.Log.With("service", "CatalogService"),
		cache:     d.Cache,
		ratingTTL: ttl,
	}
}

type CourseCreate struct {
	Title         string
	Description   string
	Author        string
	ThumbnailURL  string
	MaxEnrollment int
	IsFree        bool
	Price         decimal.Decimal
	EndsAt        *time.Time
}

// CourseUpdate carries optional changes; nil fields are left as they are.
type CourseUpdate struct {
	Title         *string
	Description   *string
	Author        *string
	ThumbnailURL  *string
	MaxEnrollment *int
	IsFree        *bool
	Price         *decimal.Decimal
	EndsAt        *time.Time
}

func checkPricing(isFree bool, price decimal.Decimal) (decimal.Decimal, bool) {
	if isFree {
		return decimal.Zero, true
	}
	return price, price.IsPositive()
}

func (s *Service) CreateCourse(ctx context.Context, req CourseCreate) result.Result[*courseModels.Course] {
	if req.MaxEnrollment < 0 {
		return result.Fail[*courseModels.Course](result.Validation, "Maximum enrollment cannot be negative")
	}
	price, ok := checkPricing(req.IsFree, req.Price)
	if !ok {
		return result.Fail[*courseModels.Course](result.Validation, MsgPaidCourseNeedPrice)
	}

	course := &courseModels.Course{
		Title:         req.Title,
		Description:   req.Description,
		Author:        req.Author,
		ThumbnailURL:  req.ThumbnailURL,
		MaxEnrollment: req.MaxEnrollment,
		IsFree:        req.IsFree,
		Price:         price,
		Status:        courseModels.CourseDraft,
		EndsAt:        req.EndsAt,
	}
	if err := s.db.WithContext(ctx).Create(course).Error; err != nil {
		s.log.Error("Failed to create course", "title", req.Title, "error", err)
		return result.Fail[*courseModels.Course](result.Internal, "Failed to create course")
	}
	s.log.Info("Course created", "course_id", course.ID)
	return result.Ok(MsgCourseCreated, course)
}

func (s *Service) GetCourse(ctx context.Context, id uint) result.Result[*courseModels.Course] {
	var course courseModels.Course
	if err := s.db.WithContext(ctx).Scopes(models.Alive).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[*courseModels.Course](result.NotFound, MsgCourseNotFound)
		}
		s.log.Error("Failed to load course", "course_id", id, "error", err)
		return result.Fail[*courseModels.Course](result.Internal, "Failed to fetch course")
	}
	return result.Ok("Course fetched successfully", &course)
}

func (s *Service) ListCourses(ctx context.Context, page, limit int, status courseModels.CourseStatus) result.Result[result.Page[courseModels.Course]] {
	offset, page, limit := result.Offset(page, limit)
	q := s.db.WithContext(ctx).Model(&courseModels.Course{}).Scopes(models.Alive)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		s.log.Error("Failed to count courses", "error", err)
		return result.Fail[result.Page[courseModels.Course]](result.Internal, "Failed to fetch courses")
	}
	var courses []courseModels.Course
	if err := q.Order("created_at desc, id desc").Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		s.log.Error("Failed to list courses", "error", err)
		return result.Fail[result.Page[courseModels.Course]](result.Internal, "Failed to fetch courses")
	}
	return result.Ok("Courses fetched successfully", result.Page[courseModels.Course]{
		Items: courses, Total: total, Page: page, Limit: limit,
	})
}

// UpdateCourse applies the given changes. The write is guarded on the version that
// was read, so a concurrent enrollment or edit makes it fail with CONFLICT.
func (s *Service) UpdateCourse(ctx context.Context, id uint, req CourseUpdate) result.Result[*courseModels.Course] {
	found := s.GetCourse(ctx, id)
	if !found.IsSuccess {
		return found
	}
	course := found.Data

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Author != nil {
		course.Author = *req.Author
	}
	if req.ThumbnailURL != nil {
		course.ThumbnailURL = *req.ThumbnailURL
	}
	if req.EndsAt != nil {
		course.EndsAt = req.EndsAt
	}
	if req.MaxEnrollment != nil {
		if *req.MaxEnrollment < 0 {
			return result.Fail[*courseModels.Course](result.Validation, "Maximum enrollment cannot be negative")
		}
		if *req.MaxEnrollment > 0 && *req.MaxEnrollment < course.CurrentEnrollmentCount {
			return result.Fail[*courseModels.Course](result.BusinessRule, MsgCapacityBelowCount)
		}
		course.MaxEnrollment = *req.MaxEnrollment
	}
	if req.IsFree != nil {
		course.IsFree = *req.IsFree
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	price, ok := checkPricing(course.IsFree, course.Price)
	if !ok {
		return result.Fail[*courseModels.Course](result.Validation, MsgPaidCourseNeedPrice)
	}
	course.Price = price

	res := s.db.WithContext(ctx).Model(&courseModels.Course{}).
		Where("id = ? AND version = ? AND lifecycle = ?", course.ID, course.Version, models.LifecycleActive).
		Updates(map[string]interface{}{
			"title":          course.Title,
			"description":    course.Description,
			"author":         course.Author,
			"thumbnail_url":  course.ThumbnailURL,
			"max_enrollment": course.MaxEnrollment,
			"is_free":        course.IsFree,
			"price":          course.Price,
			"ends_at":        course.EndsAt,
			"version":        gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		s.log.Error("Failed to update course", "course_id", id, "error", res.Error)
		return result.Fail[*courseModels.Course](result.Internal, "Failed to update course")
	}
	if res.RowsAffected == 0 {
		return result.Fail[*courseModels.Course](result.Conflict, MsgCourseChanged)
	}
	course.Version++
	return result.Ok(MsgCourseUpdated, course)
}

var transitions = map[courseModels.CourseStatus][]courseModels.CourseStatus{
	courseModels.CourseDraft:  {courseModels.CourseActive},
	courseModels.CourseActive: {courseModels.CourseClosed},
	courseModels.CourseClosed: {courseModels.CourseActive, courseModels.CourseArchived},
}

// CanTransition reports whether a course may move from one status to another.
func CanTransition(from, to courseModels.CourseStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *Service) ChangeCourseStatus(ctx context.Context, id uint, to courseModels.CourseStatus) result.Result[*courseModels.Course] {
	found := s.GetCourse(ctx, id)
	if !found.IsSuccess {
		return found
	}
	course := found.Data
	if !CanTransition(course.Status, to) {
		return result.Fail[*courseModels.Course](result.BusinessRule, MsgInvalidTransition)
	}

	res := s.db.WithContext(ctx).Model(&courseModels.Course{}).
		Where("id = ? AND status = ? AND lifecycle = ?", id, course.Status, models.LifecycleActive).
		Updates(map[string]interface{}{"status": to, "version": gorm.Expr("version + 1")})
	if res.Error != nil {
		s.log.Error("Failed to change course status", "course_id", id, "to", to, "error", res.Error)
		return result.Fail[*courseModels.Course](result.Internal, "Failed to change course status")
	}
	if res.RowsAffected == 0 {
		return result.Fail[*courseModels.Course](result.Conflict, MsgCourseChanged)
	}
	s.log.Info("Course status changed", "course_id", id, "from", course.Status, "to", to)
	course.Status = to
	course.Version++
	return result.Ok("Course status updated successfully", course)
}

// DeleteCourse soft-deletes the course. The version bump makes in-flight
// enrollments against it fail.
func (s *Service) DeleteCourse(ctx context.Context, id uint) result.Result[bool] {
	res := s.db.WithContext(ctx).Model(&courseModels.Course{}).
		Where("id = ? AND lifecycle = ?", id, models.LifecycleActive).
		Updates(map[string]interface{}{"lifecycle": models.LifecycleDeleted, "version": gorm.Expr("version + 1")})
	if res.Error != nil {
		s.log.Error("Failed to delete course", "course_id", id, "error", res.Error)
		return result.Fail[bool](result.Internal, "Failed to delete course")
	}
	if res.RowsAffected == 0 {
		return result.Fail[bool](result.NotFound, MsgCourseNotFound)
	}
	s.invalidateRating(ctx, id)
	return result.Ok(MsgCourseDeleted, true)
}

// CloseExpiredCourses moves ACTIVE courses whose end date is before now to CLOSED
// and returns how many changed.
func (s *Service) CloseExpiredCourses(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&courseModels.Course{}).
		Scopes(models.Alive).
		Where("status = ? AND ends_at IS NOT NULL AND ends_at < ?", courseModels.CourseActive, now).
		Updates(map[string]interface{}{"status": courseModels.CourseClosed, "version": gorm.Expr("version + 1")})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		s.log.Info("Closed expired courses", "count", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
