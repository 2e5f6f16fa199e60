package service

import "github.com/waalid2540/gew-backend/internal/models"

// TicketMailer delivers ticket emails. Delivery failures are logged by
// callers and never block or roll back issuance.
type TicketMailer interface {
	Enabled() bool
	SendTicketConfirmation(attendee *models.Attendee, ticketURL string, qrPNG []byte) error
	SendPaymentConfirmation(attendee *models.Attendee, ticketURL string, qrPNG []byte) error
}
