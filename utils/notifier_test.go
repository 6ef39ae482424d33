package utils

import (
	"context"
	"encoding/json"
	"entrelaunch/logger"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailClient struct {
	mu     sync.Mutex
	sent   []*mail.SGMailV3
	status int
	err    error
}

func (f *fakeMailClient) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, email)
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status}, nil
}

type smsRequest struct {
	auth string
	body map[string]string
}

func smsGateway(t *testing.T, status int) (*httptest.Server, *[]smsRequest) {
	t.Helper()
	var mu sync.Mutex
	var got []smsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		got = append(got, smsRequest{auth: r.Header.Get("Authorization"), body: body})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

var (
	student = models.User{Name: "Ada", Email: "ada@example.com", Mobile: "+15550100"}
	course  = courseModels.Course{Title: "Lean Startup Basics"}
)

func TestCourseNotifierSendsBothChannels(t *testing.T) {
	mc := &fakeMailClient{status: http.StatusAccepted}
	srv, got := smsGateway(t, http.StatusOK)
	n := NewCourseNotifier(
		newMailerWithClient(mc, "no-reply@entrelaunch.com", "EntreLaunch", logger.Nop()),
		NewSMSSender(srv.URL, "sms-key", logger.Nop()),
	)

	require.NoError(t, n.EnrollmentConfirmed(context.Background(), student, course))

	require.Len(t, mc.sent, 1)
	assert.Equal(t, "Enrollment Confirmed: Lean Startup Basics", mc.sent[0].Subject)
	assert.Equal(t, "ada@example.com", mc.sent[0].Personalizations[0].To[0].Address)

	require.Len(t, *got, 1)
	assert.Equal(t, "Bearer sms-key", (*got)[0].auth)
	assert.Equal(t, "+15550100", (*got)[0].body["to"])
	assert.Contains(t, (*got)[0].body["message"], "Lean Startup Basics")
}

func TestCourseNotifierCancellationMentionsRefund(t *testing.T) {
	mc := &fakeMailClient{status: http.StatusAccepted}
	srv, got := smsGateway(t, http.StatusOK)
	n := NewCourseNotifier(
		newMailerWithClient(mc, "no-reply@entrelaunch.com", "EntreLaunch", logger.Nop()),
		NewSMSSender(srv.URL, "k", logger.Nop()),
	)

	require.NoError(t, n.EnrollmentCancelled(context.Background(), student, course, true))
	require.Len(t, mc.sent, 1)
	assert.Contains(t, mc.sent[0].Content[1].Value, "refund request")
	assert.Contains(t, (*got)[0].body["message"], "refund request")

	require.NoError(t, n.EnrollmentCancelled(context.Background(), student, course, false))
	assert.NotContains(t, mc.sent[1].Content[1].Value, "refund request")
}

func TestCourseNotifierWithoutChannels(t *testing.T) {
	n := NewCourseNotifier(NewMailer("", "x@example.com", "x", logger.Nop()), NewSMSSender("", "", logger.Nop()))
	cert := courseModels.StudentCertificate{CertificateCode: "abc", CertificateURL: "https://cert.example.com/c/abc"}
	assert.NoError(t, n.CertificateIssued(context.Background(), student, course, cert))
}

func TestCourseNotifierReportsFailures(t *testing.T) {
	mc := &fakeMailClient{status: http.StatusBadRequest}
	n := NewCourseNotifier(newMailerWithClient(mc, "a@example.com", "a", logger.Nop()), nil)
	assert.Error(t, n.EnrollmentConfirmed(context.Background(), student, course))

	mc = &fakeMailClient{err: errors.New("connection reset")}
	n = NewCourseNotifier(newMailerWithClient(mc, "a@example.com", "a", logger.Nop()), nil)
	assert.Error(t, n.EnrollmentConfirmed(context.Background(), student, course))

	srv, _ := smsGateway(t, http.StatusUnauthorized)
	n = NewCourseNotifier(nil, NewSMSSender(srv.URL, "bad", logger.Nop()))
	assert.Error(t, n.EnrollmentConfirmed(context.Background(), student, course))
}

func TestSMSSkipsUsersWithoutMobile(t *testing.T) {
	srv, got := smsGateway(t, http.StatusOK)
	sender := NewSMSSender(srv.URL, "k", logger.Nop())
	require.NoError(t, sender.Send(context.Background(), "", "hello"))
	assert.Empty(t, *got)
}

func TestCertificateEmailEscapesInput(t *testing.T) {
	email := certificateIssuedEmail("<b>Eve</b>", "Growth", "code-1", "https://cert.example.com/c/code-1")
	assert.Contains(t, email.HTML, "&lt;b&gt;Eve&lt;/b&gt;")
	assert.Contains(t, email.HTML, `href="https://cert.example.com/c/code-1"`)
	assert.Equal(t, "Your certificate for Growth", email.Subject)
}
