package training

import (
	"context"
	"entrelaunch/database"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/result"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	errExamWithoutCourse = errors.New("training: exam has no course")
	errAlreadyIssued     = errors.New("training: certificate already issued")
)

// courseForExam resolves the course an exam counts towards: its own course, or the
// course of its lesson. Path-level exams have none.
func (s *Service) courseForExam(ctx context.Context, exam courseModels.Exam) (courseModels.Course, error) {
	switch {
	case exam.CourseID != nil:
		return s.findCourse(ctx, s.db, *exam.CourseID)
	case exam.LessonID != nil:
		var lesson courseModels.Lesson
		if err := s.db.WithContext(ctx).Scopes(models.Alive).First(&lesson, *exam.LessonID).Error; err != nil {
			return courseModels.Course{}, err
		}
		return s.findCourse(ctx, s.db, lesson.CourseID)
	default:
		return courseModels.Course{}, errExamWithoutCourse
	}
}

// Issue creates the certificate for a passed exam. Issuance is once per
// (enrollment, course); a second call, concurrent or not, reports already issued.
func (s *Service) Issue(ctx context.Context, examID, userID uint) result.Result[*courseModels.StudentCertificate] {
	var exam courseModels.Exam
	if err := s.db.WithContext(ctx).Scopes(models.Alive).First(&exam, examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[*courseModels.StudentCertificate](result.NotFound, MsgExamNotFound)
		}
		s.log.Error("Failed to load exam", "exam_id", examID, "error", err)
		return result.Fail[*courseModels.StudentCertificate](result.Internal, "Failed to issue certificate")
	}

	course, err := s.courseForExam(ctx, exam)
	if err != nil {
		switch {
		case errors.Is(err, errExamWithoutCourse):
			return result.Fail[*courseModels.StudentCertificate](result.BusinessRule, MsgExamWithoutCourse)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return result.Fail[*courseModels.StudentCertificate](result.NotFound, MsgCourseNotFound)
		default:
			s.log.Error("Failed to resolve exam course", "exam_id", examID, "error", err)
			return result.Fail[*courseModels.StudentCertificate](result.Internal, "Failed to issue certificate")
		}
	}

	user, err := s.findUser(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[*courseModels.StudentCertificate](result.NotFound, MsgUserNotFound)
		}
		s.log.Error("Failed to load user", "user_id", userID, "error", err)
		return result.Fail[*courseModels.StudentCertificate](result.Internal, "Failed to issue certificate")
	}

	var active courseModels.ExamResult
	if err := s.db.WithContext(ctx).Scopes(models.Alive).
		Where("exam_id = ? AND user_id = ? AND is_active = ?", examID, userID, true).
		First(&active).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[*courseModels.StudentCertificate](result.NotFound, MsgNoActiveResult)
		}
		s.log.Error("Failed to load active result", "exam_id", examID, "user_id", userID, "error", err)
		return result.Fail[*courseModels.StudentCertificate](result.Internal, "Failed to issue certificate")
	}
	if active.Status != courseModels.ResultPassed {
		return result.Fail[*courseModels.StudentCertificate](result.BusinessRule, MsgResultNotPassed)
	}

	enrollment, err := s.findActiveEnrollment(ctx, s.db, course.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[*courseModels.StudentCertificate](result.NotFound, MsgNoActiveEnrollment)
		}
		s.log.Error("Failed to load enrollment", "course_id", course.ID, "user_id", userID, "error", err)
		return result.Fail[*courseModels.StudentCertificate](result.Internal, "Failed to issue certificate")
	}

	code := uuid.NewString()
	cert := &courseModels.StudentCertificate{
		EnrollmentID:    enrollment.ID,
		CourseID:        course.ID,
		UserID:          userID,
		ExamID:          examID,
		ExamResultID:    active.ID,
		CertificateCode: code,
		CertificateURL:  s.cfg.CertificateBaseURL + "/" + code,
		VerificationURL: s.cfg.VerificationBaseURL + "/" + code,
		IssuedAt:        s.now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&courseModels.StudentCertificate{}).
			Where("enrollment_id = ? AND course_id = ?", enrollment.ID, course.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errAlreadyIssued
		}
		return tx.Create(cert).Error
	})
	if err != nil {
		if errors.Is(err, errAlreadyIssued) || database.IsDuplicateKey(err) {
			return result.Fail[*courseModels.StudentCertificate](result.Conflict, MsgCertificateAlreadyIssued)
		}
		s.log.Error("Failed to issue certificate", "exam_id", examID, "user_id", userID, "error", err)
		return result.Fail[*courseModels.StudentCertificate](result.Internal, "Failed to issue certificate")
	}

	s.log.Info("Certificate issued", "certificate_id", cert.ID, "course_id", course.ID, "user_id", userID)
	s.notify("certificate", func() error {
		return s.notifier.CertificateIssued(ctx, user, course, *cert)
	})
	return result.Ok(MsgCertificateIssued, cert)
}

func (s *Service) GetUserCertificates(ctx context.Context, userID uint) result.Result[[]courseModels.StudentCertificate] {
	var certs []courseModels.StudentCertificate
	if err := s.db.WithContext(ctx).Scopes(models.Alive).
		Where("user_id = ?", userID).
		Order("issued_at desc").
		Find(&certs).Error; err != nil {
		s.log.Error("Failed to list certificates", "user_id", userID, "error", err)
		return result.Fail[[]courseModels.StudentCertificate](result.Internal, "Failed to fetch certificates")
	}
	return result.Ok("Certificates fetched successfully", certs)
}

// CertificateVerification is the public view of a certificate.
type CertificateVerification struct {
	CertificateCode string `json:"certificate_code"`
	StudentName     string `json:"student_name"`
	CourseTitle     string `json:"course_title"`
	IssuedAt        string `json:"issued_at"`
}

func (s *Service) VerifyCertificate(ctx context.Context, code string) result.Result[CertificateVerification] {
	var cert courseModels.StudentCertificate
	if err := s.db.WithContext(ctx).Scopes(models.Alive).
		Where("certificate_code = ?", code).
		First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Fail[CertificateVerification](result.NotFound, MsgCertificateNotFound)
		}
		s.log.Error("Failed to verify certificate", "code", code, "error", err)
		return result.Fail[CertificateVerification](result.Internal, "Failed to verify certificate")
	}

	view := CertificateVerification{
		CertificateCode: cert.CertificateCode,
		IssuedAt:        cert.IssuedAt.Format("2006-01-02"),
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, cert.UserID).Error; err == nil {
		view.StudentName = user.Name
	}
	var course courseModels.Course
	if err := s.db.WithContext(ctx).First(&course, cert.CourseID).Error; err == nil {
		view.CourseTitle = course.Title
	}
	return result.Ok("Certificate is valid", view)
}
