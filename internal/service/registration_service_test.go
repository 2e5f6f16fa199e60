package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waalid2540/gew-backend/internal/config"
	"github.com/waalid2540/gew-backend/internal/models"
)

func TestRegisterFreeTicket(t *testing.T) {
	env := newTestEnv(t, config.StripeConfig{})

	result, err := env.registration.Register(models.RegisterRequest{
		Name:       "Asha",
		Email:      "Asha@Example.com",
		TicketType: "general",
	})
	require.NoError(t, err)
	assert.Empty(t, result.CheckoutURL)
	assert.NotEmpty(t, result.TicketID)
	assert.Equal(t, "/ticket/"+result.TicketID, result.TicketURL)

	attendee, err := env.repo.GetByUniqueID(result.TicketID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", attendee.Name)
	assert.Equal(t, "asha@example.com", attendee.Email)
	assert.Equal(t, models.TicketGeneral, attendee.TicketType)
	assert.False(t, attendee.CheckedIn)
	assert.Empty(t, attendee.StripePaymentIntent)

	// Confirmation email went out.
	assert.Equal(t, []string{"asha@example.com"}, env.mailer.confirmed)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t, config.StripeConfig{})

	cases := []struct {
		name  string
		req   models.RegisterRequest
		field string
	}{
		{"missing name", models.RegisterRequest{Email: "a@b.com", TicketType: "general"}, "name"},
		{"blank name", models.RegisterRequest{Name: "   ", Email: "a@b.com", TicketType: "general"}, "name"},
		{"name too long", models.RegisterRequest{Name: strings.Repeat("x", 101), Email: "a@b.com", TicketType: "general"}, "name"},
		{"missing email", models.RegisterRequest{Name: "Asha", TicketType: "general"}, "email"},
		{"bad email", models.RegisterRequest{Name: "Asha", Email: "not-an-email", TicketType: "general"}, "email"},
		{"missing ticket type", models.RegisterRequest{Name: "Asha", Email: "a@b.com"}, "ticket_type"},
		{"unknown ticket type", models.RegisterRequest{Name: "Asha", Email: "a@b.com", TicketType: "platinum"}, "ticket_type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.registration.Register(tc.req)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}

	// Nothing was written.
	all, err := env.repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRegisterNormalization(t *testing.T) {
	env := newTestEnv(t, config.StripeConfig{})

	result, err := env.registration.Register(models.RegisterRequest{
		Name:       "  Bilal <Omar>  ",
		Email:      "  BILAL@Startup.IO ",
		Company:    " Startup & Co ",
		TicketType: "SPEAKER",
	})
	require.NoError(t, err)

	attendee, err := env.repo.GetByUniqueID(result.TicketID)
	require.NoError(t, err)
	assert.Equal(t, "Bilal &lt;Omar&gt;", attendee.Name)
	assert.Equal(t, "bilal@startup.io", attendee.Email)
	assert.Equal(t, "Startup &amp; Co", attendee.Company)
	assert.Equal(t, models.TicketSpeaker, attendee.TicketType)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, config.StripeConfig{})

	_, err := env.registration.Register(models.RegisterRequest{
		Name: "Asha", Email: "Asha@Example.com", TicketType: "general",
	})
	require.NoError(t, err)

	// Same address with different casing and whitespace.
	_, err = env.registration.Register(models.RegisterRequest{
		Name: "Asha Again", Email: " asha@example.com ", TicketType: "vip",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	all, listErr := env.repo.GetAll()
	require.NoError(t, listErr)
	assert.Len(t, all, 1)
}

func TestRegisterVIPGoesToCheckout(t *testing.T) {
	env := newTestEnv(t, testStripeConfig)

	result, err := env.registration.Register(models.RegisterRequest{
		Name:       "Cala",
		Email:      "cala@example.com",
		Phone:      "555-0100",
		Company:    "Checkpoint Labs",
		TicketType: "vip",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", result.CheckoutURL)
	assert.Empty(t, result.TicketID)

	// No attendee row exists before payment completes.
	all, listErr := env.repo.GetAll()
	require.NoError(t, listErr)
	assert.Empty(t, all)

	// The session metadata is the durable record of intent.
	md := env.gateway.lastMetadata
	assert.Equal(t, "Cala", md["name"])
	assert.Equal(t, "cala@example.com", md["email"])
	assert.Equal(t, "vip", md["ticket_type"])
	assert.NotEmpty(t, md["unique_id"])
	assert.Equal(t, testBaseURL+"/ticket/"+md["unique_id"], env.gateway.lastSuccess)

	// No confirmation email on the paid path yet.
	assert.Empty(t, env.mailer.confirmed)
}

func TestRegisterVIPWithoutPaymentsIssuesImmediately(t *testing.T) {
	env := newTestEnv(t, config.StripeConfig{})

	result, err := env.registration.Register(models.RegisterRequest{
		Name: "Cala", Email: "cala@example.com", TicketType: "vip",
	})
	require.NoError(t, err)
	assert.Empty(t, result.CheckoutURL)
	assert.NotEmpty(t, result.TicketID)
}

func TestRegisterCheckoutFailureCreatesNoState(t *testing.T) {
	env := newTestEnv(t, testStripeConfig)
	env.gateway.err = assert.AnError

	_, err := env.registration.Register(models.RegisterRequest{
		Name: "Cala", Email: "cala@example.com", TicketType: "vip",
	})
	require.Error(t, err)

	all, listErr := env.repo.GetAll()
	require.NoError(t, listErr)
	assert.Empty(t, all)
}

func TestRegisterEmailFailureDoesNotBlockIssuance(t *testing.T) {
	env := newTestEnv(t, config.StripeConfig{})
	env.mailer.fail = true

	result, err := env.registration.Register(models.RegisterRequest{
		Name: "Asha", Email: "asha@example.com", TicketType: "general",
	})
	require.NoError(t, err)

	// The ticket record stands regardless of email outcome.
	_, err = env.repo.GetByUniqueID(result.TicketID)
	assert.NoError(t, err)
}
