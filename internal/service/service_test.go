package service

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/waalid2540/gew-backend/internal/config"
	"github.com/waalid2540/gew-backend/internal/models"
	"github.com/waalid2540/gew-backend/internal/repository"
	"github.com/waalid2540/gew-backend/pkg/qrcode"
	"github.com/waalid2540/gew-backend/pkg/utils"
)

const testBaseURL = "http://localhost:3000"

var testStripeConfig = config.StripeConfig{
	SecretKey:     "sk_test_123",
	PriceID:       "price_123",
	WebhookSecret: "whsec_test",
}

// fakeMailer records sent ticket emails and can simulate delivery failures.
type fakeMailer struct {
	enabled   bool
	fail      bool
	confirmed []string
	paid      []string
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) SendTicketConfirmation(a *models.Attendee, ticketURL string, qrPNG []byte) error {
	if m.fail {
		return errors.New("delivery failed")
	}
	m.confirmed = append(m.confirmed, a.Email)
	return nil
}

func (m *fakeMailer) SendPaymentConfirmation(a *models.Attendee, ticketURL string, qrPNG []byte) error {
	if m.fail {
		return errors.New("delivery failed")
	}
	m.paid = append(m.paid, a.Email)
	return nil
}

// fakeGateway stands in for Stripe checkout session creation.
type fakeGateway struct {
	err          error
	lastEmail    string
	lastMetadata map[string]string
	lastSuccess  string
}

func (g *fakeGateway) CreateCheckoutSession(customerEmail, priceID string, metadata map[string]string, successURL, cancelURL string) (*stripe.CheckoutSession, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.lastEmail = customerEmail
	g.lastMetadata = metadata
	g.lastSuccess = successURL
	return &stripe.CheckoutSession{
		ID:  "cs_test_123",
		URL: "https://checkout.stripe.com/c/pay/cs_test_123",
	}, nil
}

type testEnv struct {
	repo         *repository.AttendeeRepository
	tickets      *TicketService
	payments     *PaymentService
	registration *RegistrationService
	admin        *AdminService
	mailer       *fakeMailer
	gateway      *fakeGateway
}

func newTestEnv(t *testing.T, stripeCfg config.StripeConfig) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Attendee{}))

	repo := repository.NewAttendeeRepository(db)
	qr := qrcode.NewQRService(testBaseURL)
	event := config.EventConfig{Location: "Salt Lake City", Dates: "November 18-24, 2024"}
	mailer := &fakeMailer{enabled: true}
	gateway := &fakeGateway{}

	tickets := NewTicketService(repo, qr, event)
	payments := NewPaymentService(gateway, tickets, mailer, qr, stripeCfg, testBaseURL, nil)
	registration := NewRegistrationService(repo, tickets, payments, mailer, qr, utils.NewValidator(), nil)

	return &testEnv{
		repo:         repo,
		tickets:      tickets,
		payments:     payments,
		registration: registration,
		admin:        NewAdminService(repo),
		mailer:       mailer,
		gateway:      gateway,
	}
}
