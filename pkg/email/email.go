// pkg/email/email.go
package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type LeadNotificationData struct {
	PropertyTitle string
	LeadName      string
	LeadEmail     string
	LeadPhone     string
	LeadMessage   string
}

type WelcomeEmailData struct {
	Name string
}

func NewEmailService(apiKey, from string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      from,
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	payload, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("could not marshal email payload: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", strings.NewReader(string(payload)))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func (s *EmailService) SendLeadNotificationEmail(to, propertyTitle, leadName, leadEmail, leadPhone, leadMessage string) error {
	return s.sendTemplateEmail(
		to,
		"Nuevo contacto: "+leadName,
		"lead_notification.html",
		LeadNotificationData{
			PropertyTitle: propertyTitle,
			LeadName:      leadName,
			LeadEmail:     leadEmail,
			LeadPhone:     leadPhone,
			LeadMessage:   leadMessage,
		},
	)
}

func (s *EmailService) SendWelcomeEmail(to, name string) error {
	return s.sendTemplateEmail(to, "Bienvenido a CasaVista", "welcome.html", WelcomeEmailData{Name: name})
}
