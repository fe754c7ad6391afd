package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/notification"
)

const maxRetries = 3

var emailTemplate = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif;">
  <p>Halo {{.Name}},</p>
  <p><strong>{{.Title}}</strong></p>
  <p>{{.Message}}</p>
  <p style="color:#888;font-size:12px;">HR Kecil</p>
</body>
</html>`))

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Recipient resolves the address of the employee a notification is about.
type Recipient func(ctx context.Context, employeeID string) (email string, name string, err error)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailSender mails decisions (leave, timesheet) to the affected employee.
type EmailSender struct {
	cfg       SMTPConfig
	recipient Recipient
	types     map[notification.NotificationType]bool
	sendMail  sendMailFunc
	backoff   time.Duration
}

func NewEmailSender(cfg SMTPConfig, recipient Recipient) *EmailSender {
	return &EmailSender{
		cfg:       cfg,
		recipient: recipient,
		types: map[notification.NotificationType]bool{
			notification.TypeLeaveApproved:     true,
			notification.TypeLeaveRejected:     true,
			notification.TypeTimesheetApproved: true,
			notification.TypeTimesheetRejected: true,
		},
		sendMail: smtp.SendMail,
		backoff:  time.Second,
	}
}

type emailData struct {
	Name    string
	Title   string
	Message string
}

func (s *EmailSender) Send(ctx context.Context, n notification.Notification) error {
	if !s.types[n.Type] {
		return nil
	}

	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "type", n.Type, "employee_id", n.EmployeeID)
		return nil
	}

	to, name, err := s.recipient(ctx, n.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to resolve email recipient: %w", err)
	}
	if to == "" {
		return nil
	}

	var body bytes.Buffer
	if err := emailTemplate.Execute(&body, emailData{Name: name, Title: n.Title, Message: n.Message}); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, n.Title, body.String())
}

func (s *EmailSender) sendHTML(to, subject, htmlBody string) error {
	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.sendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1s, 2s
		if attempt < maxRetries {
			time.Sleep(s.backoff << (attempt - 1))
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
