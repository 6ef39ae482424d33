// Package training manages the course lifecycle of a student: enrollment, lesson
// progress, exam attempts and certificate issuance.
//
// Every operation returns a result.Result. Business-rule failures (capacity,
// duplicate enrollment, attempt limits, duplicate certificates) are reported in the
// result; only unexpected persistence failures are logged, and those are still
// returned as a generic INTERNAL result.
package training

import (
	"context"
	"entrelaunch/logger"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/refund"
	"time"

	"gorm.io/gorm"
)

// Config carries the settings the lifecycle reads at runtime.
type Config struct {
	CertificateBaseURL  string
	VerificationBaseURL string
}

type PaymentChecker interface {
	IsPaid(ctx context.Context, tx *gorm.DB, targetID, userID uint) (bool, error)
}

type RoleManager interface {
	AssignRole(ctx context.Context, tx *gorm.DB, userID uint, role string) error
	RemoveRole(ctx context.Context, tx *gorm.DB, userID uint, role string) error
	IsUserInRole(ctx context.Context, tx *gorm.DB, userID uint, role string) (bool, error)
}

type RefundCreator interface {
	CreateRefund(ctx context.Context, tx *gorm.DB, req refund.RefundCreate) (*models.RefundRequest, error)
}

// Notifier delivers lifecycle notifications. Calls happen after the transaction commits.
type Notifier interface {
	EnrollmentConfirmed(ctx context.Context, user models.User, course courseModels.Course) error
	EnrollmentCancelled(ctx context.Context, user models.User, course courseModels.Course, refundRequested bool) error
	CertificateIssued(ctx context.Context, user models.User, course courseModels.Course, cert courseModels.StudentCertificate) error
}

type Deps struct {
	DB       *gorm.DB
	Log      *logger.Logger
	Config   Config
	Payments PaymentChecker
	Roles    RoleManager
	Refunds  RefundCreator
	Notifier Notifier
}

type Service struct {
	db       *gorm.DB
	log      *logger.Logger
	cfg      Config
	payments PaymentChecker
	roles    RoleManager
	refunds  RefundCreator
	notifier Notifier
	now      func() time.Time
}

func New(d Deps) *Service {
	return &Service{
		db:       d.DB,
		log:      d.Log.With("service", "TrainingService"),
		cfg:      d.Config,
		payments: d.Payments,
		roles:    d.Roles,
		refunds:  d.Refunds,
		notifier: d.Notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) findCourse(ctx context.Context, db *gorm.DB, courseID uint) (courseModels.Course, error) {
	var c courseModels.Course
	err := db.WithContext(ctx).Scopes(models.Alive).First(&c, courseID).Error
	return c, err
}

func (s *Service) findUser(ctx context.Context, db *gorm.DB, userID uint) (models.User, error) {
	var u models.User
	err := db.WithContext(ctx).Scopes(models.Alive).First(&u, userID).Error
	return u, err
}

func (s *Service) findActiveEnrollment(ctx context.Context, db *gorm.DB, courseID, userID uint) (courseModels.Enrollment, error) {
	var e courseModels.Enrollment
	err := db.WithContext(ctx).
		Scopes(models.Alive).
		Where("course_id = ? AND user_id = ? AND is_active = ?", courseID, userID, true).
		First(&e).Error
	return e, err
}

func (s *Service) notify(op string, fn func() error) {
	if s.notifier == nil {
		return
	}
	if err := fn(); err != nil {
		s.log.Warn("Notification failed", "op", op, "error", err)
	}
}
