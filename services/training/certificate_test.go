package training

import (
	"context"
	"entrelaunch/database/testutil"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/result"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passExam(t *testing.T, f fixture, exam *courseModels.Exam, userID uint) {
	t.Helper()
	all := make([]int, len(exam.Questions))
	for i := range all {
		all[i] = i
	}
	res := f.svc.Retake(context.Background(), RetakeRequest{ExamID: exam.ID, UserID: userID, Answers: answersFor(exam, all...)})
	require.True(t, res.IsSuccess, res.Message)
	require.Equal(t, courseModels.ResultPassed, res.Data.Status)
}

func TestIssueCertificateOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db, nil)
	user := testutil.SeedUser(t, f.db, "grad@example.com")
	exam := testutil.SeedExam(t, f.db, course.ID, 2, 5, 5)
	require.True(t, f.svc.Enroll(ctx, EnrollmentCreate{CourseID: course.ID, UserID: user.ID}).IsSuccess)
	passExam(t, f, exam, user.ID)

	first := f.svc.Issue(ctx, exam.ID, user.ID)
	require.True(t, first.IsSuccess, first.Message)
	cert := first.Data
	assert.NotEmpty(t, cert.CertificateCode)
	assert.Equal(t, "https://cert.example.com/c/"+cert.CertificateCode, cert.CertificateURL)
	assert.Equal(t, "https://cert.example.com/verify/"+cert.CertificateCode, cert.VerificationURL)

	second := f.svc.Issue(ctx, exam.ID, user.ID)
	assert.False(t, second.IsSuccess)
	assert.Equal(t, result.Conflict, second.Kind())
	assert.Equal(t, MsgCertificateAlreadyIssued, second.Message)

	var count int64
	require.NoError(t, f.db.Model(&courseModels.StudentCertificate{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var certNotices int
	for _, n := range f.notifier.sent {
		if n.kind == "certificate" {
			certNotices++
		}
	}
	assert.Equal(t, 1, certNotices)
}

func TestIssueCertificateAfterConcurrentIssue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db, nil)
	user := testutil.SeedUser(t, f.db, "dup@example.com")
	exam := testutil.SeedExam(t, f.db, course.ID, 1, 3)
	require.True(t, f.svc.Enroll(ctx, EnrollmentCreate{CourseID: course.ID, UserID: user.ID}).IsSuccess)
	passExam(t, f, exam, user.ID)

	enrollment, err := f.svc.findActiveEnrollment(ctx, f.db, course.ID, user.ID)
	require.NoError(t, err)
	// a row written by a concurrent request that committed first
	require.NoError(t, f.db.Create(&courseModels.StudentCertificate{
		EnrollmentID: enrollment.ID, CourseID: course.ID, UserID: user.ID,
		ExamID: exam.ID, CertificateCode: "racer",
	}).Error)

	res := f.svc.Issue(ctx, exam.ID, user.ID)
	assert.Equal(t, result.Conflict, res.Kind())
	assert.Equal(t, MsgCertificateAlreadyIssued, res.Message)
}

func TestIssueCertificatePreconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db, nil)
	user := testutil.SeedUser(t, f.db, "pre@example.com")
	exam := testutil.SeedExam(t, f.db, course.ID, 3, 5, 5)

	t.Run("unknown exam", func(t *testing.T) {
		res := f.svc.Issue(ctx, 999, user.ID)
		assert.Equal(t, MsgExamNotFound, res.Message)
	})

	t.Run("no attempt", func(t *testing.T) {
		res := f.svc.Issue(ctx, exam.ID, user.ID)
		assert.Equal(t, result.NotFound, res.Kind())
		assert.Equal(t, MsgNoActiveResult, res.Message)
	})

	t.Run("failed attempt", func(t *testing.T) {
		require.True(t, f.svc.Retake(ctx, RetakeRequest{ExamID: exam.ID, UserID: user.ID, Answers: answersFor(exam)}).IsSuccess)
		res := f.svc.Issue(ctx, exam.ID, user.ID)
		assert.Equal(t, result.BusinessRule, res.Kind())
		assert.Equal(t, MsgResultNotPassed, res.Message)
	})

	t.Run("passed without enrollment", func(t *testing.T) {
		passExam(t, f, exam, user.ID)
		res := f.svc.Issue(ctx, exam.ID, user.ID)
		assert.Equal(t, result.NotFound, res.Kind())
		assert.Equal(t, MsgNoActiveEnrollment, res.Message)
	})

	t.Run("path exam has no course", func(t *testing.T) {
		path := courseModels.TrainingPath{Title: "Founder track"}
		require.NoError(t, f.db.Create(&path).Error)
		pathExam := courseModels.Exam{PathID: &path.ID, Title: "Track exam"}
		require.NoError(t, f.db.Create(&pathExam).Error)
		res := f.svc.Issue(ctx, pathExam.ID, user.ID)
		assert.Equal(t, MsgExamWithoutCourse, res.Message)
	})
}

func TestIssueCertificateForLessonExam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db, nil)
	lessons := testutil.SeedLessons(t, f.db, course.ID, 1)
	user := testutil.SeedUser(t, f.db, "lesson@example.com")

	exam := testutil.SeedExam(t, f.db, course.ID, 1, 2)
	require.NoError(t, f.db.Model(exam).Updates(map[string]interface{}{"course_id": nil, "lesson_id": lessons[0].ID}).Error)

	require.True(t, f.svc.Enroll(ctx, EnrollmentCreate{CourseID: course.ID, UserID: user.ID}).IsSuccess)
	passExam(t, f, exam, user.ID)

	res := f.svc.Issue(ctx, exam.ID, user.ID)
	require.True(t, res.IsSuccess, res.Message)
	assert.Equal(t, course.ID, res.Data.CourseID)
}

func TestVerifyCertificate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db, nil)
	user := testutil.SeedUser(t, f.db, "verify@example.com")
	exam := testutil.SeedExam(t, f.db, course.ID, 1, 1)
	require.True(t, f.svc.Enroll(ctx, EnrollmentCreate{CourseID: course.ID, UserID: user.ID}).IsSuccess)
	passExam(t, f, exam, user.ID)
	issued := f.svc.Issue(ctx, exam.ID, user.ID)
	require.True(t, issued.IsSuccess)

	res := f.svc.VerifyCertificate(ctx, issued.Data.CertificateCode)
	require.True(t, res.IsSuccess)
	assert.Equal(t, user.Name, res.Data.StudentName)
	assert.Equal(t, course.Title, res.Data.CourseTitle)
	assert.Equal(t, "2026-03-01", res.Data.IssuedAt)

	missing := f.svc.VerifyCertificate(ctx, strings.Repeat("0", 36))
	assert.Equal(t, result.NotFound, missing.Kind())

	mine := f.svc.GetUserCertificates(ctx, user.ID)
	require.True(t, mine.IsSuccess)
	assert.Len(t, mine.Data, 1)
}
