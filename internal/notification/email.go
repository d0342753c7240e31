package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/cityair/cityair-server/internal/protocol"
	"github.com/cityair/cityair-server/pkg/config"
)

// EmailNotifier sends email notifications for air quality advisories
type EmailNotifier struct {
	config *config.SMTPConfig
}

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(cfg *config.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{config: cfg}
}

// SendAdvisoryNotification sends an email for an advisory notification
func (e *EmailNotifier) SendAdvisoryNotification(notification *protocol.AdvisoryNotification) error {
	var subject string
	var body string
	var err error

	switch notification.Type {
	case protocol.AdvisoryTypeIssued:
		subject = fmt.Sprintf("Air Quality Advisory ISSUED - %s, zone %s", notification.City, notification.Zone)
		body, err = e.renderIssuedTemplate(notification)
	case protocol.AdvisoryTypeLifted:
		subject = fmt.Sprintf("Air Quality Advisory LIFTED - %s, zone %s", notification.City, notification.Zone)
		body, err = e.renderLiftedTemplate(notification)
	default:
		return fmt.Errorf("unknown notification type: %s", notification.Type)
	}

	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return e.sendEmail(subject, body)
}

func (e *EmailNotifier) renderIssuedTemplate(notification *protocol.AdvisoryNotification) (string, error) {
	tmpl := `
Air Quality Advisory Issued
===========================

Location: {{.City}}, zone {{.Zone}}
AQI: {{.AQI}} ({{.Category}})
Dominant Pollutant: {{.Dominant}}
Threshold: AQI >= {{.Threshold}} sustained for {{.Duration}} minutes
Start Time: {{.StartTime}}
Advisory ID: {{.AdvisoryID}}

Health guidance by group:
{{range .RiskByGroup}}
* {{.Group}} (risk {{.Level}}, score {{.Score}}/100)
{{- range .Recommendations}}
  - {{.}}
{{- end}}
{{end}}
---
CityAir Advisory System
`

	t, err := template.New("issued").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, notification); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (e *EmailNotifier) renderLiftedTemplate(notification *protocol.AdvisoryNotification) (string, error) {
	tmpl := `
Air Quality Advisory Lifted
===========================

Location: {{.City}}, zone {{.Zone}}
Advisory ID: {{.AdvisoryID}}

Air quality in this zone has returned below the advisory threshold.

---
CityAir Advisory System
`

	t, err := template.New("lifted").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, notification); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (e *EmailNotifier) sendEmail(subject, body string) error {
	// Skip sending if SMTP is not configured
	if e.config.Username == "" || e.config.Password == "" {
		fmt.Printf("SMTP not configured, skipping email:\nSubject: %s\n%s\n", subject, body)
		return nil
	}

	message := fmt.Sprintf("From: %s\r\n", e.config.From)
	message += fmt.Sprintf("To: %s\r\n", e.config.To)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	message += "\r\n"
	message += body

	auth := smtp.PlainAuth("", e.config.Username, e.config.Password, e.config.Host)

	addr := fmt.Sprintf("%s:%d", e.config.Host, e.config.Port)
	if err := smtp.SendMail(addr, auth, e.config.From, []string{e.config.To}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	fmt.Printf("Email sent successfully: %s\n", subject)
	return nil
}

// TestConnection tests the SMTP connection
func (e *EmailNotifier) TestConnection() error {
	if e.config.Username == "" {
		return fmt.Errorf("SMTP not configured")
	}

	addr := fmt.Sprintf("%s:%d", e.config.Host, e.config.Port)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	fmt.Println("SMTP connection test successful")
	return nil
}
