package training

import (
	"context"
	"entrelaunch/database/testutil"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/payment"
	"entrelaunch/services/refund"
	"entrelaunch/services/roles"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"
)

type sentNotice struct {
	kind     string
	userID   uint
	courseID uint
	refund   bool
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotice
	err  error
}

func (f *fakeNotifier) record(n sentNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return f.err
}

func (f *fakeNotifier) EnrollmentConfirmed(_ context.Context, u models.User, c courseModels.Course) error {
	return f.record(sentNotice{kind: "enrolled", userID: u.ID, courseID: c.ID})
}

func (f *fakeNotifier) EnrollmentCancelled(_ context.Context, u models.User, c courseModels.Course, refundRequested bool) error {
	return f.record(sentNotice{kind: "cancelled", userID: u.ID, courseID: c.ID, refund: refundRequested})
}

func (f *fakeNotifier) CertificateIssued(_ context.Context, u models.User, c courseModels.Course, _ courseModels.StudentCertificate) error {
	return f.record(sentNotice{kind: "certificate", userID: u.ID, courseID: c.ID})
}

type fixture struct {
	db       *gorm.DB
	svc      *Service
	roles    roles.Service
	notifier *fakeNotifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	roleSvc := roles.NewService(db, log)
	notifier := &fakeNotifier{}
	svc := New(Deps{
		DB:  db,
		Log: log,
		Config: Config{
			CertificateBaseURL:  "https://cert.example.com/c",
			VerificationBaseURL: "https://cert.example.com/verify",
		},
		Payments: payment.NewService(db, log),
		Roles:    roleSvc,
		Refunds:  refund.NewService(db, log),
		Notifier: notifier,
	})
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return fixture{db: db, svc: svc, roles: roleSvc, notifier: notifier}
}
