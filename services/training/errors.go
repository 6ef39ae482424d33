package training

import "errors"

// ErrConcurrencyConflict aborts a transaction whose optimistic update matched no row.
var ErrConcurrencyConflict = errors.New("training: concurrent modification")

var (
	errAlreadyEnrolled    = errors.New("training: already enrolled")
	errEnrollmentGone     = errors.New("training: enrollment no longer active")
	errNotPaid            = errors.New("training: payment not completed")
	errMaxAttempts        = errors.New("training: maximum attempts reached")
	errExamHasNoQuestions = errors.New("training: exam has no questions")
)

// User-facing messages.
const (
	MsgCourseNotFound     = "Course not found or deleted"
	MsgUserNotFound       = "User not found"
	MsgCourseNotOpen      = "Course is not open for enrollment"
	MsgAlreadyEnrolled    = "User is already enrolled in this course"
	MsgCapacityReached    = "Course has reached its maximum enrollment limit"
	MsgPaymentRequired    = "Payment for this course has not been completed"
	MsgEligible           = "User is eligible to enroll in this course"
	MsgEnrolled           = "Enrolled in course successfully"
	MsgEnrollmentNotFound = "Enrollment not found"
	MsgNotPaid            = "You have not paid for this course"
	MsgUnenrolled         = "Unenrolled from course successfully"

	MsgLessonNotFound   = "Lesson not found in this course"
	MsgProgressNotFound = "Progress not found for this course"
	MsgProgressRecorded = "Progress recorded successfully"

	MsgExamNotFound       = "Exam not found"
	MsgExamNoQuestions    = "Exam has no questions"
	MsgMaxAttempts        = "Maximum number of attempts reached"
	MsgAttemptConflict    = "Another attempt was recorded at the same time, please retry"
	MsgExamSubmitted      = "Exam submitted successfully"
	MsgNoActiveResult     = "No active result found for this exam"
	MsgResultNotPassed    = "Exam has not been passed"
	MsgExamWithoutCourse  = "Exam is not linked to a course"
	MsgNoActiveEnrollment = "Active enrollment not found for this course"

	MsgCertificateIssued        = "Certificate issued successfully"
	MsgCertificateAlreadyIssued = "Certificate has already been issued for this enrollment"
	MsgCertificateNotFound      = "Certificate not found"
)
