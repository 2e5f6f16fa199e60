package qrcode

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService generates QR codes whose payload is the canonical ticket URL.
type QRService struct {
	baseURL string // e.g. "https://gew.example.com"
}

func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: baseURL,
	}
}

// TicketURL returns the canonical public URL for a ticket id.
func (s *QRService) TicketURL(ticketID string) string {
	return fmt.Sprintf("%s/ticket/%s", s.baseURL, ticketID)
}

// GenerateQRCode returns a PNG QR code for the given ticket id.
func (s *QRService) GenerateQRCode(ticketID string, size int) ([]byte, error) {
	png, err := qrcode.Encode(s.TicketURL(ticketID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}

// GenerateDataURL returns the QR code as a data: URL for inline <img> use.
func (s *QRService) GenerateDataURL(ticketID string, size int) (string, error) {
	png, err := s.GenerateQRCode(ticketID, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
