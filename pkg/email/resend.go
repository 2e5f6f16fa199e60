package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"

	"github.com/waalid2540/gew-backend/internal/config"
	"github.com/waalid2540/gew-backend/internal/models"
)

// EmailService delivers ticket emails via Resend. Delivery is best-effort:
// callers log failures and never roll back issuance over them.
type EmailService struct {
	client       *resend.Client
	from         string
	fromName     string
	templatesDir string
	event        config.EventConfig
	logger       *zap.Logger
	enabled      bool
}

func NewEmailService(cfg config.EmailConfig, event config.EventConfig, logger *zap.Logger) *EmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailService{
		client:       resend.NewClient(cfg.APIKey),
		from:         cfg.FromAddress,
		fromName:     cfg.FromName,
		templatesDir: "pkg/email/templates",
		event:        event,
		logger:       logger,
		enabled:      cfg.APIKey != "" && cfg.FromAddress != "",
	}
}

// Enabled reports whether the Resend transport is configured.
func (s *EmailService) Enabled() bool {
	return s.enabled
}

// SendTicketConfirmation sends the registration-confirmed email with the
// ticket QR code attached inline.
func (s *EmailService) SendTicketConfirmation(attendee *models.Attendee, ticketURL string, qrPNG []byte) error {
	subject := "Global Entrepreneurship Week - Your Registration Confirmed"
	return s.sendTicket("confirmation.html", subject, attendee, ticketURL, qrPNG)
}

// SendPaymentConfirmation sends the payment-confirmed email for paid tickets.
func (s *EmailService) SendPaymentConfirmation(attendee *models.Attendee, ticketURL string, qrPNG []byte) error {
	subject := "Global Entrepreneurship Week - Payment Confirmed"
	return s.sendTicket("payment-confirmed.html", subject, attendee, ticketURL, qrPNG)
}

func (s *EmailService) sendTicket(templateName, subject string, attendee *models.Attendee, ticketURL string, qrPNG []byte) error {
	templateData := map[string]interface{}{
		"Name":       attendee.Name,
		"TicketType": attendee.TicketType.Upper(),
		"TicketID":   attendee.UniqueID,
		"TicketURL":  ticketURL,
		"Location":   s.event.Location,
		"Dates":      s.event.Dates,
	}

	html, err := s.parseTemplate(templateName, templateData)
	if err != nil {
		s.logger.Error("parse email template failed",
			zap.String("template", templateName), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{attendee.Email},
		Subject: subject,
		Html:    html,
		Attachments: []resend.Attachment{
			{
				Filename: "gew-ticket-qr.png",
				Content:  base64.StdEncoding.EncodeToString(qrPNG),
			},
		},
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("send ticket email: %w", err)
	}

	s.logger.Info("ticket email sent",
		zap.String("email", attendee.Email),
		zap.String("ticket_id", attendee.UniqueID),
		zap.String("message_id", resp.Id))
	return nil
}

func (s *EmailService) parseTemplate(templateName string, data interface{}) (string, error) {
	templatePath := filepath.Join(s.templatesDir, templateName)

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}

	return body.String(), nil
}
