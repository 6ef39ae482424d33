package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentCompleted       PaymentStatus = "COMPLETED"
	PaymentRefundRequested PaymentStatus = "REFUND_REQUESTED"
	PaymentRefunded        PaymentStatus = "REFUNDED"
)

const PaymentTargetCourse = "COURSE"

// Payment is a confirmed gateway payment for a target (a course).
type Payment struct {
	Base
	UserID     uint            `json:"user_id" gorm:"not null;index:idx_payment_target"`
	TargetID   uint            `json:"target_id" gorm:"not null;index:idx_payment_target"`
	TargetType string          `json:"target_type" gorm:"type:varchar(32);not null;default:'COURSE'"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	GatewayRef string          `json:"gateway_ref" gorm:"type:varchar(128);index"`
	Status     PaymentStatus   `json:"status" gorm:"type:varchar(32);not null"`
	PaidAt     time.Time       `json:"paid_at"`
}

type RefundStatus string

const (
	RefundPending  RefundStatus = "PENDING"
	RefundApproved RefundStatus = "APPROVED"
	RefundRejected RefundStatus = "REJECTED"
)

type RefundRequest struct {
	Base
	PaymentID  uint         `json:"payment_id" gorm:"not null;index"`
	UserID     uint         `json:"user_id" gorm:"not null;index"`
	CourseID   uint         `json:"course_id" gorm:"not null;index"`
	Reason     string       `json:"reason"`
	Status     RefundStatus `json:"status" gorm:"type:varchar(16);not null"`
	ResolvedAt *time.Time   `json:"resolved_at"`
	ResolvedBy *uint        `json:"resolved_by"`
}
