package refund

import (
	"context"
	"entrelaunch/logger"
	"entrelaunch/models"
	"entrelaunch/services/result"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNoPayment is returned by CreateRefund when there is no completed payment to refund.
var ErrNoPayment = errors.New("refund: no completed payment for course")

type RefundCreate struct {
	UserID   uint
	CourseID uint
	Reason   string
}

type Service interface {
	CreateRefund(ctx context.Context, tx *gorm.DB, req RefundCreate) (*models.RefundRequest, error)
	ListRefunds(ctx context.Context, status models.RefundStatus) result.Result[[]models.RefundRequest]
	ResolveRefund(ctx context.Context, refundID uint, approve bool, adminID uint) result.Result[*models.RefundRequest]
}

type refundService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(db *gorm.DB, baseLog *logger.Logger) Service {
	return &refundService{db: db, log: baseLog.With("service", "RefundService")}
}

// CreateRefund opens a PENDING refund request against the latest completed payment
// and marks that payment REFUND_REQUESTED. Runs on tx when given.
func (s *refundService) CreateRefund(ctx context.Context, tx *gorm.DB, req RefundCreate) (*models.RefundRequest, error) {
	if tx == nil {
		tx = s.db
	}
	conn := tx.WithContext(ctx)

	var payment models.Payment
	err := conn.Scopes(models.Alive).
		Where("user_id = ? AND target_id = ? AND target_type = ? AND status = ?",
			req.UserID, req.CourseID, models.PaymentTargetCourse, models.PaymentCompleted).
		Order("paid_at desc").
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPayment
		}
		return nil, err
	}

	refund := &models.RefundRequest{
		PaymentID: payment.ID,
		UserID:    req.UserID,
		CourseID:  req.CourseID,
		Reason:    req.Reason,
		Status:    models.RefundPending,
	}
	if err := conn.Create(refund).Error; err != nil {
		return nil, err
	}
	if err := conn.Model(&payment).Update("status", models.PaymentRefundRequested).Error; err != nil {
		return nil, err
	}

	s.log.Info("Refund requested", "refund_id", refund.ID, "payment_id", payment.ID, "user_id", req.UserID)
	return refund, nil
}

func (s *refundService) ListRefunds(ctx context.Context, status models.RefundStatus) result.Result[[]models.RefundRequest] {
	q := s.db.WithContext(ctx).Scopes(models.Alive)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var refunds []models.RefundRequest
	if err := q.Order("created_at desc").Find(&refunds).Error; err != nil {
		s.log.Error("Failed to list refunds", "status", status, "error", err)
		return result.Fail[[]models.RefundRequest](result.Internal, "Failed to fetch refund requests")
	}
	return result.Ok("Refund requests fetched successfully", refunds)
}

// ResolveRefund approves or rejects a pending request. Approval marks the payment
// REFUNDED; rejection restores it to COMPLETED.
func (s *refundService) ResolveRefund(ctx context.Context, refundID uint, approve bool, adminID uint) result.Result[*models.RefundRequest] {
	var refund models.RefundRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(models.Alive).First(&refund, refundID).Error; err != nil {
			return err
		}
		if refund.Status != models.RefundPending {
			return errAlreadyResolved
		}

		now := time.Now().UTC()
		refund.ResolvedAt = &now
		refund.ResolvedBy = &adminID
		paymentStatus := models.PaymentCompleted
		refund.Status = models.RefundRejected
		if approve {
			refund.Status = models.RefundApproved
			paymentStatus = models.PaymentRefunded
		}
		if err := tx.Save(&refund).Error; err != nil {
			return err
		}
		return tx.Model(&models.Payment{}).Where("id = ?", refund.PaymentID).Update("status", paymentStatus).Error
	})
	switch {
	case err == nil:
		return result.Ok("Refund request resolved successfully", &refund)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return result.Fail[*models.RefundRequest](result.NotFound, "Refund request not found")
	case errors.Is(err, errAlreadyResolved):
		return result.Fail[*models.RefundRequest](result.BusinessRule, "Refund request has already been resolved")
	default:
		s.log.Error("Failed to resolve refund", "refund_id", refundID, "error", err)
		return result.Fail[*models.RefundRequest](result.Internal, "Failed to resolve refund request")
	}
}

var errAlreadyResolved = errors.New("refund: already resolved")
