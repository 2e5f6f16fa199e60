package models

import (
	"strings"
	"time"
)

// TicketType enumerates the ticket classes sold for the event.
type TicketType string

const (
	TicketGeneral TicketType = "general"
	TicketVIP     TicketType = "vip"
	TicketSpeaker TicketType = "speaker"
	TicketSponsor TicketType = "sponsor"
)

func (t TicketType) Valid() bool {
	switch t {
	case TicketGeneral, TicketVIP, TicketSpeaker, TicketSponsor:
		return true
	}
	return false
}

// RequiresPayment reports whether a ticket class is paid. Only VIP is paid
// under the current pricing policy.
func (t TicketType) RequiresPayment() bool {
	return t == TicketVIP
}

func (t TicketType) Upper() string {
	return strings.ToUpper(string(t))
}

// Attendee is one registered person. UniqueID is the opaque, externally
// visible ticket identifier used in URLs and QR payloads.
type Attendee struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	Name                string     `json:"name" gorm:"not null"`
	Email               string     `json:"email" gorm:"uniqueIndex;not null"`
	Phone               string     `json:"phone"`
	Company             string     `json:"company"`
	TicketType          TicketType `json:"ticket_type" gorm:"not null"`
	CheckedIn           bool       `json:"checked_in" gorm:"default:false"`
	StripePaymentIntent string     `json:"stripe_payment_intent"`
	UniqueID            string     `json:"unique_id" gorm:"uniqueIndex;not null"`
	CreatedAt           time.Time  `json:"created_at"`
}

// RegisterRequest is the body for POST /register.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	TicketType string `json:"ticket_type"`
}

// Registration carries validated, normalized registration fields between the
// validator, the payment coordinator and the ticket issuer.
type Registration struct {
	Name       string
	Email      string
	Phone      string
	Company    string
	TicketType TicketType
}
