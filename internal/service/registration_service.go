package service

import (
	"errors"
	"html"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/waalid2540/gew-backend/internal/models"
	"github.com/waalid2540/gew-backend/internal/repository"
	"github.com/waalid2540/gew-backend/pkg/qrcode"
	"github.com/waalid2540/gew-backend/pkg/utils"
)

// ErrEmailTaken is returned when the submitted email already belongs to an
// attendee.
var ErrEmailTaken = errors.New("email already registered")

// ValidationError reports the offending field category of a rejected
// registration.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RegisterResult is the outcome of a registration: either a checkout
// redirect (paid path) or an issued ticket (free path).
type RegisterResult struct {
	CheckoutURL string
	TicketID    string
	TicketURL   string
}

// RegistrationService validates inbound registrations and routes them to
// immediate issuance or to checkout.
type RegistrationService struct {
	attendeeRepo *repository.AttendeeRepository
	tickets      *TicketService
	payments     *PaymentService
	mailer       TicketMailer
	qr           *qrcode.QRService
	validator    *utils.Validator
	logger       *zap.Logger
}

func NewRegistrationService(attendeeRepo *repository.AttendeeRepository, tickets *TicketService, payments *PaymentService, mailer TicketMailer, qr *qrcode.QRService, validator *utils.Validator, logger *zap.Logger) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		attendeeRepo: attendeeRepo,
		tickets:      tickets,
		payments:     payments,
		mailer:       mailer,
		qr:           qr,
		validator:    validator,
		logger:       logger,
	}
}

// Validate checks and normalizes raw registration fields. Free text is
// trimmed and HTML-escaped, the email lower-cased, the ticket type
// lower-cased. Pure transformation; the store is not touched.
func (s *RegistrationService) Validate(req models.RegisterRequest) (models.Registration, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > 100 {
		return models.Registration{}, &ValidationError{Field: "name", Message: "Valid name is required"}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Var(email, "required,email"); err != nil {
		return models.Registration{}, &ValidationError{Field: "email", Message: "Valid email is required"}
	}

	ticketType := models.TicketType(strings.ToLower(strings.TrimSpace(req.TicketType)))
	if err := s.validator.Var(string(ticketType), "required,ticket_type"); err != nil {
		return models.Registration{}, &ValidationError{Field: "ticket_type", Message: "Valid ticket type is required"}
	}

	return models.Registration{
		Name:       html.EscapeString(name),
		Email:      email,
		Phone:      html.EscapeString(strings.TrimSpace(req.Phone)),
		Company:    html.EscapeString(strings.TrimSpace(req.Company)),
		TicketType: ticketType,
	}, nil
}

// Register runs the full registration workflow. Paid ticket types get a
// checkout session carrying the registration as metadata and no local row;
// everything else is issued immediately and notified best-effort.
func (s *RegistrationService) Register(req models.RegisterRequest) (*RegisterResult, error) {
	reg, err := s.Validate(req)
	if err != nil {
		return nil, err
	}

	// Early exit on duplicates. Not atomic with the insert below; the
	// uniqueness constraint is the authority.
	exists, err := s.attendeeRepo.EmailExists(reg.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	if reg.TicketType.RequiresPayment() && s.payments.Enabled() {
		uniqueID := utils.NewTicketID()
		checkoutURL, err := s.payments.CreateCheckout(reg, uniqueID)
		if err != nil {
			return nil, err
		}
		return &RegisterResult{CheckoutURL: checkoutURL}, nil
	}

	attendee, err := s.tickets.Issue(reg, "", "")
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("ticket issued",
		zap.String("unique_id", attendee.UniqueID),
		zap.String("ticket_type", string(attendee.TicketType)))

	s.sendConfirmation(attendee)

	return &RegisterResult{
		TicketID:  attendee.UniqueID,
		TicketURL: "/ticket/" + attendee.UniqueID,
	}, nil
}

func (s *RegistrationService) sendConfirmation(attendee *models.Attendee) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return
	}

	qrPNG, err := s.qr.GenerateQRCode(attendee.UniqueID, 256)
	if err != nil {
		s.logger.Warn("qr generation for email failed",
			zap.String("unique_id", attendee.UniqueID), zap.Error(err))
		return
	}

	if err := s.mailer.SendTicketConfirmation(attendee, s.tickets.TicketURL(attendee.UniqueID), qrPNG); err != nil {
		s.logger.Warn("confirmation email failed",
			zap.String("email", attendee.Email), zap.Error(err))
	}
}
