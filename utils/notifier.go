package utils

import (
	"context"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// CourseNotifier sends lifecycle notices by email and SMS. Either channel may be
// nil, in which case it is skipped.
type CourseNotifier struct {
	mailer *Mailer
	sms    *SMSSender
}

func NewCourseNotifier(mailer *Mailer, sms *SMSSender) *CourseNotifier {
	return &CourseNotifier{mailer: mailer, sms: sms}
}

func (n *CourseNotifier) deliver(ctx context.Context, user models.User, email emailContent, text string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return n.mailer.SendEmail(ctx, user.Email, user.Name, email.Subject, email.HTML)
	})
	g.Go(func() error {
		return n.sms.Send(ctx, user.Mobile, text)
	})
	return g.Wait()
}

func (n *CourseNotifier) EnrollmentConfirmed(ctx context.Context, user models.User, course courseModels.Course) error {
	return n.deliver(ctx, user,
		enrollmentConfirmedEmail(user.Name, course.Title),
		fmt.Sprintf("EntreLaunch: you are enrolled in %s.", course.Title))
}

func (n *CourseNotifier) EnrollmentCancelled(ctx context.Context, user models.User, course courseModels.Course, refundRequested bool) error {
	text := fmt.Sprintf("EntreLaunch: your enrollment in %s was cancelled.", course.Title)
	if refundRequested {
		text += " A refund request has been opened."
	}
	return n.deliver(ctx, user, enrollmentCancelledEmail(user.Name, course.Title, refundRequested), text)
}

func (n *CourseNotifier) CertificateIssued(ctx context.Context, user models.User, course courseModels.Course, cert courseModels.StudentCertificate) error {
	return n.deliver(ctx, user,
		certificateIssuedEmail(user.Name, course.Title, cert.CertificateCode, cert.CertificateURL),
		fmt.Sprintf("EntreLaunch: your certificate for %s is ready. Code %s", course.Title, cert.CertificateCode))
}
