package payment

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

// PaymentCreate is a gateway-confirmed payment to record.
type PaymentCreate struct {
	UserID     uint
	CourseID   uint
	Amount     decimal.Decimal
	GatewayRef string
}

type Service interface {
	RecordPayment(ctx context.Context, req PaymentCreate) result.Result[*models.Payment]
	IsPaid(ctx context.Context, tx *gorm.DB, targetID, userID uint) (bool, error)
	ListUserPayments(ctx context.Context, userID uint) result.Result[[]models.Payment]
}

type paymentService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(db *gorm.DB, baseLog *logger.Logger) Service {
	return &paymentService{db: db, log: baseLog.With("service", "PaymentService")}
}

func (s *paymentService) RecordPayment(ctx context.Context, req PaymentCreate) result.Result[*models.Payment] {
	if !req.Amount.IsPositive() {
		return result.Fail[*models.Payment](result.Validation, "Amount must be greater than zero")
	}

	var course courseModels.Course
	if err := s.db.WithContext(ctx).Scopes(models.Alive).First(&course, req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[*models.Payment](result.NotFound, "Course not found or deleted")
		}
		s.log.Error("Failed to load course for payment", "course_id", req.CourseID, "error", err)
		return result.Fail[*models.Payment](result.Internal, "Failed to record payment")
	}
	if course.IsFree {
		return result.Fail[*models.Payment](result.BusinessRule, "Course is free and does not accept payments")
	}

	if req.GatewayRef != "" {
		var existing models.Payment
		err := s.db.WithContext(ctx).Where("gateway_ref = ?", req.GatewayRef).First(&existing).Error
		if err == nil {
			return result.Fail[*models.Payment](result.Conflict, "Transaction already processed")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("Failed to check gateway reference", "gateway_ref", req.GatewayRef, "error", err)
			return result.Fail[*models.Payment](result.Internal, "Failed to record payment")
		}
	}

	p := &models.Payment{
		UserID:     req.UserID,
		TargetID:   req.CourseID,
		TargetType: models.PaymentTargetCourse,
		Amount:     req.Amount,
		GatewayRef: req.GatewayRef,
		Status:     models.PaymentCompleted,
		PaidAt:     time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		s.log.Error("Failed to record payment", "user_id", req.UserID, "course_id", req.CourseID, "error", err)
		return result.Fail[*models.Payment](result.Internal, "Failed to record payment")
	}
	return result.Ok("Payment recorded successfully", p)
}

// IsPaid reports whether a completed payment exists for (target, user).
func (s *paymentService) IsPaid(ctx context.Context, tx *gorm.DB, targetID, userID uint) (bool, error) {
	if tx == nil {
		tx = s.db
	}
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Payment{}).
		Scopes(models.Alive).
		Where("target_id = ? AND user_id = ? AND target_type = ? AND status = ?",
			targetID, userID, models.PaymentTargetCourse, models.PaymentCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *paymentService) ListUserPayments(ctx context.Context, userID uint) result.Result[[]models.Payment] {
	var payments []models.Payment
	if err := s.db.WithContext(ctx).
		Scopes(models.Alive).
		Where("user_id = ?", userID).
		Order("paid_at desc").
		Find(&payments).Error; err != nil {
		s.log.Error("Failed to list payments", "user_id", userID, "error", err)
		return result.Fail[[]models.Payment](result.Internal, "Failed to fetch payments")
	}
	return result.Ok("Payments fetched successfully", payments)
}
