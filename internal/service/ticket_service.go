package service

import (
	"bytes"
	"html/template"

	"github.com/waalid2540/gew-backend/internal/config"
	"github.com/waalid2540/gew-backend/internal/models"
	"github.com/waalid2540/gew-backend/internal/repository"
	"github.com/waalid2540/gew-backend/pkg/qrcode"
	"github.com/waalid2540/gew-backend/pkg/utils"
)

// TicketService issues tickets and renders the public ticket view. Issuance
// is shared by the free registration path and the payment webhook path.
type TicketService struct {
	attendeeRepo *repository.AttendeeRepository
	qr           *qrcode.QRService
	event        config.EventConfig
}

func NewTicketService(attendeeRepo *repository.AttendeeRepository, qr *qrcode.QRService, event config.EventConfig) *TicketService {
	return &TicketService{
		attendeeRepo: attendeeRepo,
		qr:           qr,
		event:        event,
	}
}

// Issue persists the attendee row for a normalized registration. When
// uniqueID is empty a new ticket id is generated; the webhook path passes the
// id that was embedded in the checkout session metadata. A uniqueness
// violation on insert surfaces as repository.ErrDuplicate and leaves no row;
// the single-check-then-insert done by callers is not atomic and must not be
// relied on.
func (s *TicketService) Issue(reg models.Registration, uniqueID, paymentIntent string) (*models.Attendee, error) {
	if uniqueID == "" {
		uniqueID = utils.NewTicketID()
	}

	attendee := &models.Attendee{
		Name:                reg.Name,
		Email:               reg.Email,
		Phone:               reg.Phone,
		Company:             reg.Company,
		TicketType:          reg.TicketType,
		StripePaymentIntent: paymentIntent,
		UniqueID:            uniqueID,
	}

	if err := s.attendeeRepo.Create(attendee); err != nil {
		return nil, err
	}

	return attendee, nil
}

// TicketURL returns the canonical public URL for a ticket id.
func (s *TicketService) TicketURL(uniqueID string) string {
	return s.qr.TicketURL(uniqueID)
}

// GetTicket looks up an attendee by ticket id.
func (s *TicketService) GetTicket(uniqueID string) (*models.Attendee, error) {
	return s.attendeeRepo.GetByUniqueID(uniqueID)
}

// RenderTicket renders the HTML ticket view for a ticket id, embedding the
// QR code as a data URL.
func (s *TicketService) RenderTicket(uniqueID string) (string, error) {
	attendee, err := s.attendeeRepo.GetByUniqueID(uniqueID)
	if err != nil {
		return "", err
	}

	qrDataURL, err := s.qr.GenerateDataURL(attendee.UniqueID, 256)
	if err != nil {
		return "", err
	}

	data := struct {
		Name       string
		Email      string
		Company    string
		TicketType string
		EventDates string
		TicketID   string
		CheckedIn  bool
		QRDataURL  template.URL
	}{
		Name:       attendee.Name,
		Email:      attendee.Email,
		Company:    attendee.Company,
		TicketType: attendee.TicketType.Upper(),
		EventDates: s.event.Dates,
		TicketID:   attendee.UniqueID,
		CheckedIn:  attendee.CheckedIn,
		QRDataURL:  template.URL(qrDataURL),
	}

	var buf bytes.Buffer
	if err := ticketTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var ticketTemplate = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Global Entrepreneurship Week - {{.Name}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      max-width: 600px;
      margin: 0 auto;
      padding: 20px;
      background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
      min-height: 100vh;
    }
    .ticket {
      background: white;
      border-radius: 16px;
      padding: 30px;
      text-align: center;
      box-shadow: 0 20px 40px rgba(0,0,0,0.1);
    }
    .event-title { color: #333; font-size: 1.8em; margin-bottom: 20px; }
    .attendee-name { color: #667eea; font-size: 1.5em; margin: 20px 0; }
    .details { text-align: left; margin: 20px 0; }
    .detail-item { margin: 8px 0; }
    .qr { margin: 30px 0; }
    .status {
      padding: 12px 20px;
      border-radius: 8px;
      margin: 20px 0;
      font-weight: bold;
    }
    .checked-in { background: #d4edda; color: #155724; }
    .not-checked-in { background: #fff3cd; color: #856404; }
    .footer { font-size: 0.9em; color: #666; margin-top: 20px; }
  </style>
</head>
<body>
  <div class="ticket">
    <h1 class="event-title">Global Entrepreneurship Week</h1>
    <h2 class="attendee-name">{{.Name}}</h2>

    <div class="details">
      <div class="detail-item"><strong>Email:</strong> {{.Email}}</div>
      {{if .Company}}<div class="detail-item"><strong>Company:</strong> {{.Company}}</div>{{end}}
      <div class="detail-item"><strong>Ticket Type:</strong> {{.TicketType}}</div>
      <div class="detail-item"><strong>Event Date:</strong> {{.EventDates}}</div>
      <div class="detail-item"><strong>Ticket ID:</strong> {{.TicketID}}</div>
    </div>

    <div class="status {{if .CheckedIn}}checked-in{{else}}not-checked-in{{end}}">
      {{if .CheckedIn}}CHECKED IN{{else}}READY FOR CHECK-IN{{end}}
    </div>

    <div class="qr">
      <img src="{{.QRDataURL}}" alt="Event QR Code" style="max-width: 200px;" />
    </div>

    <div class="footer">
      <p>Present this QR code at the event entrance</p>
      <p>Global Entrepreneurship Week</p>
    </div>
  </div>
</body>
</html>
`))
