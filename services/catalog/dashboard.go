package catalog

import (
	"context"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/result"
	"time"
)

type DashboardStats struct {
	TotalCourses       int64              `json:"total_courses"`
	ActiveCourses      int64              `json:"active_courses"`
	ActiveEnrollments  int64              `json:"active_enrollments"`
	IssuedCertificates int64              `json:"issued_certificates"`
	PendingRefunds     int64              `json:"pending_refunds"`
	RecentEnrollments  []RecentEnrollment `json:"recent_enrollments"`
}

type RecentEnrollment struct {
	UserName    string    `json:"user_name"`
	CourseTitle string    `json:"course_title"`
	EnrolledAt  time.Time `json:"enrolled_at"`
}

// DashboardStats returns the admin overview counters and the five latest enrollments.
func (s *Service) DashboardStats(ctx context.Context) result.Result[DashboardStats] {
	db := s.db.WithContext(ctx)
	var stats DashboardStats

	counts := []struct {
		dest  *int64
		model interface{}
		where string
		args  []interface{}
	}{
		{&stats.TotalCourses, &courseModels.Course{}, "", nil},
		{&stats.ActiveCourses, &courseModels.Course{}, "status = ?", []interface{}{courseModels.CourseActive}},
		{&stats.ActiveEnrollments, &courseModels.Enrollment{}, "is_active = ?", []interface{}{true}},
		{&stats.IssuedCertificates, &courseModels.StudentCertificate{}, "", nil},
		{&stats.PendingRefunds, &models.RefundRequest{}, "status = ?", []interface{}{models.RefundPending}},
	}
	for _, c := range counts {
		q := db.Model(c.model).Scopes(models.Alive)
		if c.where != "" {
			q = q.Where(c.where, c.args...)
		}
		if err := q.Count(c.dest).Error; err != nil {
			s.log.Error("Failed to compute dashboard stats", "error", err)
			return result.Fail[DashboardStats](result.Internal, "Failed to fetch dashboard stats")
		}
	}

	stats.RecentEnrollments = []RecentEnrollment{}
	if err := db.Model(&courseModels.Enrollment{}).
		Select("users.name AS user_name, courses.title AS course_title, enrollments.enrolled_at").
		Joins("JOIN users ON users.id = enrollments.user_id").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Scopes(models.AliveIn("enrollments")).
		Where("enrollments.is_active = ?", true).
		Order("enrollments.enrolled_at desc, enrollments.id desc").
		Limit(5).
		Scan(&stats.RecentEnrollments).Error; err != nil {
		s.log.Error("Failed to fetch recent enrollments", "error", err)
		return result.Fail[DashboardStats](result.Internal, "Failed to fetch dashboard stats")
	}
	return result.Ok("Dashboard stats fetched successfully", stats)
}
