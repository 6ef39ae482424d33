package course

import (
	"entrelaunch/models"
	"time"
)

// StudentCertificate is issued once per (enrollment, course).
type StudentCertificate struct {
	models.Base
	EnrollmentID    uint      `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_cert_enrollment_course"`
	CourseID        uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_cert_enrollment_course"`
	UserID          uint      `json:"user_id" gorm:"not null;index"`
	ExamID          uint      `json:"exam_id" gorm:"not null"`
	ExamResultID    uint      `json:"exam_result_id" gorm:"not null"`
	CertificateCode string    `json:"certificate_code" gorm:"type:varchar(64);not null;uniqueIndex"`
	CertificateURL  string    `json:"certificate_url"`
	VerificationURL string    `json:"verification_url"`
	IssuedAt        time.Time `json:"issued_at"`
}
