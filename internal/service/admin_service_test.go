package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waalid2540/gew-backend/internal/config"
	"github.com/waalid2540/gew-backend/internal/models"
	"github.com/waalid2540/gew-backend/internal/repository"
)

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t, config.StripeConfig{})

	_, err := env.registration.Register(models.RegisterRequest{
		Name: "Asha", Email: "asha@example.com", Company: "Khan Ventures", TicketType: "general",
	})
	require.NoError(t, err)
	_, err = env.registration.Register(models.RegisterRequest{
		Name: "Bilal", Email: "bilal@startup.io", TicketType: "speaker",
	})
	require.NoError(t, err)

	csv, err := env.admin.ExportCSV()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(csv), "\n"), "\n")
	require.Len(t, lines, 3) // header + one row per attendee
	assert.Equal(t, "Name,Email,Company,Ticket Type,Created At,Checked In", lines[0])
	assert.Contains(t, string(csv), `"Asha","asha@example.com","Khan Ventures","general",`)
	assert.Contains(t, string(csv), `"No"`)
}

func TestExportCSVCheckedInRendersYes(t *testing.T) {
	env := newTestEnv(t, config.StripeConfig{})

	result, err := env.registration.Register(models.RegisterRequest{
		Name: "Asha", Email: "asha@example.com", TicketType: "general",
	})
	require.NoError(t, err)
	require.NoError(t, env.admin.ToggleCheckIn(result.TicketID))

	csv, err := env.admin.ExportCSV()
	require.NoError(t, err)
	assert.Contains(t, string(csv), `"Yes"`)
}

func TestToggleCheckInUnknownID(t *testing.T) {
	env := newTestEnv(t, config.StripeConfig{})

	err := env.admin.ToggleCheckIn("missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListAttendeesFilter(t *testing.T) {
	env := newTestEnv(t, config.StripeConfig{})

	_, err := env.registration.Register(models.RegisterRequest{
		Name: "Asha", Email: "asha@example.com", TicketType: "general",
	})
	require.NoError(t, err)
	_, err = env.registration.Register(models.RegisterRequest{
		Name: "Bilal", Email: "bilal@startup.io", TicketType: "vip",
	})
	require.NoError(t, err)

	vips, err := env.admin.ListAttendees(repository.AttendeeFilter{Type: "vip"})
	require.NoError(t, err)
	require.Len(t, vips, 1)
	assert.Equal(t, "Bilal", vips[0].Name)
}
