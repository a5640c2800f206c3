package mail

import (
	"fmt"

	"github.com/gomarkdown/markdown"
	gomail "gopkg.in/gomail.v2"
)

// Default SMTP endpoint (gmail over SSL).
const (
	DefaultHost = "smtp.gmail.com"
	DefaultPort = 465
)

// Config carries SMTP credentials and addressing for report delivery.
// The pipeline never reads these itself; the invoking process supplies
// them.
type Config struct {
	Host        string
	Port        int
	FromEmail   string
	AppPassword string
	ToEmail     string
}

// Sender delivers the generated report as an HTML email. The report
// arrives as markdown and is converted before sending.
type Sender struct {
	cfg Config
}

// NewSender creates a sender, filling in the default SMTP endpoint.
func NewSender(cfg Config) *Sender {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	return &Sender{cfg: cfg}
}

// Send converts the markdown report to HTML and mails it with the
// given subject. Delivery failure is fatal for the invocation.
func (s *Sender) Send(reportText, subject string) error {
	if s.cfg.FromEmail == "" || s.cfg.AppPassword == "" || s.cfg.ToEmail == "" {
		return fmt.Errorf("email configuration is incomplete: from, password and to are required")
	}

	html := markdown.ToHTML([]byte(reportText), nil, nil)

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.FromEmail)
	msg.SetHeader("To", s.cfg.ToEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", string(html))

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.FromEmail, s.cfg.AppPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
