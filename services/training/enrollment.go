package training

import (
	"context"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/refund"
	"entrelaunch/services/result"
	"errors"

	"gorm.io/gorm"
)

type EnrollmentCreate struct {
	CourseID uint
	UserID   uint
}

// Eligibility describes why a user may enroll.
type Eligibility struct {
	CourseID        uint `json:"course_id"`
	UserID          uint `json:"user_id"`
	RequiresPayment bool `json:"requires_payment"`
	SeatsLeft       *int `json:"seats_left"` // nil when the course is unlimited
}

// UnenrollOutcome is the payload of a successful Unenroll.
type UnenrollOutcome struct {
	Enrollment courseModels.Enrollment `json:"enrollment"`
	Refund     *models.RefundRequest   `json:"refund,omitempty"`
}

// VerifyEligibility checks every enrollment precondition without writing anything.
func (s *Service) VerifyEligibility(ctx context.Context, courseID, userID uint) result.Result[Eligibility] {
	_, _, res := s.eligibility(ctx, courseID, userID)
	return res
}

func (s *Service) eligibility(ctx context.Context, courseID, userID uint) (courseModels.Course, models.User, result.Result[Eligibility]) {
	course, err := s.findCourse(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return course, models.User{}, result.Fail[Eligibility](result.NotFound, MsgCourseNotFound)
		}
		s.log.Error("Failed to load course", "course_id", courseID, "error", err)
		return course, models.User{}, result.Fail[Eligibility](result.Internal, "Failed to verify eligibility")
	}

	user, err := s.findUser(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return course, user, result.Fail[Eligibility](result.NotFound, MsgUserNotFound)
		}
		s.log.Error("Failed to load user", "user_id", userID, "error", err)
		return course, user, result.Fail[Eligibility](result.Internal, "Failed to verify eligibility")
	}

	if course.Status != courseModels.CourseActive {
		return course, user, result.Fail[Eligibility](result.BusinessRule, MsgCourseNotOpen)
	}

	if _, err := s.findActiveEnrollment(ctx, s.db, courseID, userID); err == nil {
		return course, user, result.Fail[Eligibility](result.BusinessRule, MsgAlreadyEnrolled)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Error("Failed to check enrollment", "course_id", courseID, "user_id", userID, "error", err)
		return course, user, result.Fail[Eligibility](result.Internal, "Failed to verify eligibility")
	}

	if course.IsFull() {
		return course, user, result.Fail[Eligibility](result.BusinessRule, MsgCapacityReached)
	}

	if !course.IsFree {
		paid, err := s.payments.IsPaid(ctx, nil, courseID, userID)
		if err != nil {
			s.log.Error("Failed to check payment", "course_id", courseID, "user_id", userID, "error", err)
			return course, user, result.Fail[Eligibility](result.Internal, "Failed to verify eligibility")
		}
		if !paid {
			return course, user, result.Fail[Eligibility](result.BusinessRule, MsgPaymentRequired)
		}
	}

	elig := Eligibility{CourseID: courseID, UserID: userID, RequiresPayment: !course.IsFree}
	if course.HasCapacityLimit() {
		left := course.MaxEnrollment - course.CurrentEnrollmentCount
		elig.SeatsLeft = &left
	}
	return course, user, result.Ok(MsgEligible, elig)
}

// Enroll admits the user after VerifyEligibility passes. The enrollment row, the
// STUDENT role grant and the seat count move together in one transaction; the seat
// count update is guarded on the course version read during eligibility.
func (s *Service) Enroll(ctx context.Context, req EnrollmentCreate) result.Result[*courseModels.Enrollment] {
	course, user, elig := s.eligibility(ctx, req.CourseID, req.UserID)
	if !elig.IsSuccess {
		return result.Fail[*courseModels.Enrollment](elig.Kind(), elig.Message)
	}

	enrollment := &courseModels.Enrollment{
		UserID:     req.UserID,
		CourseID:   req.CourseID,
		EnrolledAt: s.now(),
		IsActive:   true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&courseModels.Enrollment{}).
			Scopes(models.Alive).
			Where("course_id = ? AND user_id = ? AND is_active = ?", req.CourseID, req.UserID, true).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errAlreadyEnrolled
		}

		if err := tx.Create(enrollment).Error; err != nil {
			return err
		}

		if err := s.roles.AssignRole(ctx, tx, req.UserID, models.RoleStudent); err != nil {
			return err
		}

		res := tx.Model(&courseModels.Course{}).
			Where("id = ? AND version = ? AND lifecycle = ? AND status = ?", course.ID, course.Version, models.LifecycleActive, courseModels.CourseActive).
			Where("max_enrollment = 0 OR current_enrollment_count < max_enrollment").
			Updates(map[string]interface{}{
				"current_enrollment_count": gorm.Expr("current_enrollment_count + 1"),
				"version":                  gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrencyConflict
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrConcurrencyConflict):
			s.log.Warn("Enrollment lost a concurrent course update", "course_id", req.CourseID, "user_id", req.UserID)
			return result.Fail[*courseModels.Enrollment](result.Conflict, MsgCourseNotFound)
		case errors.Is(err, errAlreadyEnrolled):
			return result.Fail[*courseModels.Enrollment](result.BusinessRule, MsgAlreadyEnrolled)
		default:
			s.log.Error("Failed to enroll", "course_id", req.CourseID, "user_id", req.UserID, "error", err)
			return result.Fail[*courseModels.Enrollment](result.Internal, "Failed to enroll in course")
		}
	}

	s.notify("enroll", func() error {
		return s.notifier.EnrollmentConfirmed(ctx, user, course)
	})
	return result.Ok(MsgEnrolled, enrollment)
}

// Unenroll soft-deletes the active enrollment. For paid courses the payment must be
// confirmed and a refund request is opened in the same transaction; the STUDENT role
// is dropped afterwards when no other active enrollment remains.
func (s *Service) Unenroll(ctx context.Context, courseID, userID uint) result.Result[UnenrollOutcome] {
	course, err := s.findCourse(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[UnenrollOutcome](result.NotFound, MsgCourseNotFound)
		}
		s.log.Error("Failed to load course", "course_id", courseID, "error", err)
		return result.Fail[UnenrollOutcome](result.Internal, "Failed to unenroll from course")
	}
	user, err := s.findUser(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[UnenrollOutcome](result.NotFound, MsgUserNotFound)
		}
		s.log.Error("Failed to load user", "user_id", userID, "error", err)
		return result.Fail[UnenrollOutcome](result.Internal, "Failed to unenroll from course")
	}
	enrollment, err := s.findActiveEnrollment(ctx, s.db, courseID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[UnenrollOutcome](result.NotFound, MsgEnrollmentNotFound)
		}
		s.log.Error("Failed to load enrollment", "course_id", courseID, "user_id", userID, "error", err)
		return result.Fail[UnenrollOutcome](result.Internal, "Failed to unenroll from course")
	}

	var outcome UnenrollOutcome
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !course.IsFree {
			paid, err := s.payments.IsPaid(ctx, tx, courseID, userID)
			if err != nil {
				return err
			}
			if !paid {
				return errNotPaid
			}
		}

		now := s.now()
		res := tx.Model(&courseModels.Enrollment{}).
			Where("id = ? AND lifecycle = ?", enrollment.ID, models.LifecycleActive).
			Updates(map[string]interface{}{
				"lifecycle":     models.LifecycleDeleted,
				"is_active":     false,
				"unenrolled_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errEnrollmentGone
		}
		enrollment.Lifecycle = models.LifecycleDeleted
		enrollment.IsActive = false
		enrollment.UnenrolledAt = &now

		if err := tx.Model(&courseModels.Course{}).
			Where("id = ? AND current_enrollment_count > 0", course.ID).
			Updates(map[string]interface{}{
				"current_enrollment_count": gorm.Expr("current_enrollment_count - 1"),
				"version":                  gorm.Expr("version + 1"),
			}).Error; err != nil {
			return err
		}

		if !course.IsFree {
			r, err := s.refunds.CreateRefund(ctx, tx, refund.RefundCreate{
				UserID:   userID,
				CourseID: courseID,
				Reason:   "Unenrolled from course",
			})
			if err != nil {
				if errors.Is(err, refund.ErrNoPayment) {
					return errNotPaid
				}
				return err
			}
			outcome.Refund = r
		}

		var remaining int64
		if err := tx.Model(&courseModels.Enrollment{}).
			Scopes(models.Alive).
			Where("user_id = ? AND is_active = ?", userID, true).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			return s.roles.RemoveRole(ctx, tx, userID, models.RoleStudent)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errNotPaid):
			return result.Fail[UnenrollOutcome](result.BusinessRule, MsgNotPaid)
		case errors.Is(err, errEnrollmentGone):
			return result.Fail[UnenrollOutcome](result.NotFound, MsgEnrollmentNotFound)
		default:
			s.log.Error("Failed to unenroll", "course_id", courseID, "user_id", userID, "error", err)
			return result.Fail[UnenrollOutcome](result.Internal, "Failed to unenroll from course")
		}
	}

	outcome.Enrollment = enrollment
	s.notify("unenroll", func() error {
		return s.notifier.EnrollmentCancelled(ctx, user, course, outcome.Refund != nil)
	})
	return result.Ok(MsgUnenrolled, outcome)
}

// EnrollmentWithCourse is an enrollment joined with its course title.
type EnrollmentWithCourse struct {
	courseModels.Enrollment
	CourseTitle string `json:"course_title"`
}

func (s *Service) ListUserEnrollments(ctx context.Context, userID uint) result.Result[[]EnrollmentWithCourse] {
	var rows []EnrollmentWithCourse
	if err := s.db.WithContext(ctx).
		Model(&courseModels.Enrollment{}).
		Select("enrollments.*, courses.title AS course_title").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Scopes(models.AliveIn("enrollments")).
		Where("enrollments.user_id = ? AND enrollments.is_active = ?", userID, true).
		Order("enrollments.enrolled_at desc").
		Scan(&rows).Error; err != nil {
		s.log.Error("Failed to list enrollments", "user_id", userID, "error", err)
		return result.Fail[[]EnrollmentWithCourse](result.Internal, "Failed to fetch enrollments")
	}
	return result.Ok("Enrollments fetched successfully", rows)
}

func (s *Service) ListCourseEnrollments(ctx context.Context, courseID uint, page, limit int) result.Result[result.Page[courseModels.Enrollment]] {
	offset, page, limit := result.Offset(page, limit)
	q := s.db.WithContext(ctx).
		Model(&courseModels.Enrollment{}).
		Scopes(models.Alive).
		Where("course_id = ? AND is_active = ?", courseID, true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		s.log.Error("Failed to count enrollments", "course_id", courseID, "error", err)
		return result.Fail[result.Page[courseModels.Enrollment]](result.Internal, "Failed to fetch enrollments")
	}
	var items []courseModels.Enrollment
	if err := q.Order("enrolled_at desc").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		s.log.Error("Failed to list enrollments", "course_id", courseID, "error", err)
		return result.Fail[result.Page[courseModels.Enrollment]](result.Internal, "Failed to fetch enrollments")
	}
	return result.Ok("Enrollments fetched successfully", result.Page[courseModels.Enrollment]{
		Items: items, Total: total, Page: page, Limit: limit,
	})
}
