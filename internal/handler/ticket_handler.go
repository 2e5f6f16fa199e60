package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/waalid2540/gew-backend/internal/repository"
	"github.com/waalid2540/gew-backend/internal/service"
)

type TicketHandler struct {
	ticketService *service.TicketService
}

func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// GetTicket handles GET /ticket/:id and renders the HTML ticket view.
func (h *TicketHandler) GetTicket(c *fiber.Ctx) error {
	page, err := h.ticketService.RenderTicket(c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Ticket not found")
		}
		return c.Status(fiber.StatusInternalServerError).SendString("Error displaying ticket")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(page)
}
