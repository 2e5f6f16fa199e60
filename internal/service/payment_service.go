package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"

	"github.com/waalid2540/gew-backend/internal/config"
	"github.com/waalid2540/gew-backend/internal/models"
	"github.com/waalid2540/gew-backend/internal/repository"
	"github.com/waalid2540/gew-backend/pkg/qrcode"
)

// CheckoutGateway creates external checkout sessions. Satisfied by
// payment.StripeService; tests substitute a fake.
type CheckoutGateway interface {
	CreateCheckoutSession(customerEmail, priceID string, metadata map[string]string, successURL, cancelURL string) (*stripe.CheckoutSession, error)
}

// PaymentService decides the fulfillment path for paid ticket types and
// finalizes issuance when the payment provider reports a completed checkout.
type PaymentService struct {
	gateway CheckoutGateway
	tickets *TicketService
	mailer  TicketMailer
	qr      *qrcode.QRService
	stripe  config.StripeConfig
	baseURL string
	logger  *zap.Logger
}

func NewPaymentService(gateway CheckoutGateway, tickets *TicketService, mailer TicketMailer, qr *qrcode.QRService, stripeCfg config.StripeConfig, baseURL string, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		gateway: gateway,
		tickets: tickets,
		mailer:  mailer,
		qr:      qr,
		stripe:  stripeCfg,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Enabled reports whether paid registrations can go through checkout. When
// disabled, VIP registrations fall through to immediate issuance.
func (s *PaymentService) Enabled() bool {
	return s.gateway != nil && s.stripe.Enabled()
}

// CreateCheckout opens a checkout session for a paid registration. The full
// registration payload plus the pre-generated ticket id travel as session
// metadata; no attendee row exists until the completion webhook. Returns the
// checkout redirect URL.
func (s *PaymentService) CreateCheckout(reg models.Registration, uniqueID string) (string, error) {
	metadata := map[string]string{
		"name":        reg.Name,
		"email":       reg.Email,
		"phone":       reg.Phone,
		"company":     reg.Company,
		"ticket_type": string(reg.TicketType),
		"unique_id":   uniqueID,
	}

	sess, err := s.gateway.CreateCheckoutSession(
		reg.Email,
		s.stripe.PriceID,
		metadata,
		s.baseURL+"/ticket/"+uniqueID,
		s.baseURL,
	)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	s.logger.Info("checkout session created",
		zap.String("session_id", sess.ID),
		zap.String("unique_id", uniqueID))
	return sess.URL, nil
}

// HandleWebhook applies a signature-verified Stripe event. Only
// checkout.session.completed has effects; everything else is ignored.
func (s *PaymentService) HandleWebhook(event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}
		return s.fulfillCheckout(&session)
	}

	return nil
}

// fulfillCheckout issues the ticket recorded in the session metadata, with
// the original unique_id, and sends the payment-confirmed email. The
// provider retries webhook delivery, so a uniqueness conflict on insert
// means the event was already applied and is treated as success.
func (s *PaymentService) fulfillCheckout(session *stripe.CheckoutSession) error {
	md := session.Metadata
	if md["unique_id"] == "" || md["email"] == "" {
		return errors.New("checkout session metadata missing registration fields")
	}

	reg := models.Registration{
		Name:       md["name"],
		Email:      md["email"],
		Phone:      md["phone"],
		Company:    md["company"],
		TicketType: models.TicketType(md["ticket_type"]),
	}

	paymentIntent := ""
	if session.PaymentIntent != nil {
		paymentIntent = session.PaymentIntent.ID
	}

	attendee, err := s.tickets.Issue(reg, md["unique_id"], paymentIntent)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Info("duplicate checkout completion ignored",
				zap.String("session_id", session.ID),
				zap.String("unique_id", md["unique_id"]))
			return nil
		}
		return err
	}

	s.logger.Info("paid ticket issued",
		zap.String("unique_id", attendee.UniqueID),
		zap.String("payment_intent", paymentIntent))

	s.sendPaymentConfirmation(attendee)
	return nil
}

func (s *PaymentService) sendPaymentConfirmation(attendee *models.Attendee) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return
	}

	qrPNG, err := s.qr.GenerateQRCode(attendee.UniqueID, 256)
	if err != nil {
		s.logger.Warn("qr generation for email failed",
			zap.String("unique_id", attendee.UniqueID), zap.Error(err))
		return
	}

	if err := s.mailer.SendPaymentConfirmation(attendee, s.tickets.TicketURL(attendee.UniqueID), qrPNG); err != nil {
		s.logger.Warn("payment confirmation email failed",
			zap.String("email", attendee.Email), zap.Error(err))
	}
}
