package utils

import (
	"context"
	"entrelaunch/logger"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// MailClient is the part of the SendGrid client the mailer uses.
type MailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Mailer sends transactional HTML mail through SendGrid.
type Mailer struct {
	client     MailClient
	senderAddr string
	senderName string
	log        *logger.Logger
}

// NewMailer returns nil when no API key is configured; a nil mailer skips every send.
func NewMailer(apiKey, senderAddr, senderName string, log *logger.Logger) *Mailer {
	if strings.TrimSpace(apiKey) == "" {
		return nil
	}
	return newMailerWithClient(sendgrid.NewSendClient(apiKey), senderAddr, senderName, log)
}

func newMailerWithClient(client MailClient, senderAddr, senderName string, log *logger.Logger) *Mailer {
	return &Mailer{
		client:     client,
		senderAddr: senderAddr,
		senderName: senderName,
		log:        log.With("client", "SendGridMailer"),
	}
}

// SendEmail delivers one HTML message.
func (m *Mailer) SendEmail(ctx context.Context, toAddr, toName, subject, htmlBody string) error {
	if m == nil {
		return nil
	}
	from := mail.NewEmail(m.senderName, m.senderAddr)
	to := mail.NewEmail(toName, toAddr)
	message := mail.NewSingleEmail(from, subject, to, subject, htmlBody)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		m.log.Error("Error sending email", "to", toAddr, "subject", subject, "error", err)
		return err
	}
	if resp.StatusCode >= 300 {
		m.log.Error("SendGrid rejected email", "to", toAddr, "status", resp.StatusCode, "body", resp.Body)
		return fmt.Errorf("sendgrid: status %d", resp.StatusCode)
	}
	m.log.Debug("Email sent", "to", toAddr, "subject", subject)
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #0B3D2E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #0B3D2E; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #F2A541; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #EAF6F0; padding: 15px; border-radius: 4px; border-left: 4px solid #F2A541; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>ENTRELAUNCH</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 EntreLaunch. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

type emailContent struct {
	Subject string
	HTML    string
}

func enrollmentConfirmedEmail(name, courseTitle string) emailContent {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Open your dashboard to start the first lesson.
		</div>
	`, html.EscapeString(name), html.EscapeString(courseTitle))
	return emailContent{
		Subject: "Enrollment Confirmed: " + courseTitle,
		HTML:    getEmailTemplate("Welcome to the course!", body),
	}
}

func enrollmentCancelledEmail(name, courseTitle string, refundRequested bool) emailContent {
	refundNote := ""
	if refundRequested {
		refundNote = `<div class="info-box">A refund request has been opened for your payment. We will notify you once it is processed.</div>`
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your enrollment in <strong>%s</strong> has been cancelled.</p>
		%s
	`, html.EscapeString(name), html.EscapeString(courseTitle), refundNote)
	return emailContent{
		Subject: "Enrollment Cancelled: " + courseTitle,
		HTML:    getEmailTemplate("Enrollment Cancelled", body),
	}
}

func certificateIssuedEmail(name, courseTitle, code, certURL string) emailContent {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>!</p>
		<div class="info-box">
			<strong>Certificate code:</strong> %s
		</div>
		<a href="%s" class="btn">View Certificate</a>
	`, html.EscapeString(name), html.EscapeString(courseTitle), html.EscapeString(code), html.EscapeString(certURL))
	return emailContent{
		Subject: "Your certificate for " + courseTitle,
		HTML:    getEmailTemplate("Certificate Issued", body),
	}
}
