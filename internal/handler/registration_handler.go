package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/waalid2540/gew-backend/internal/models"
	"github.com/waalid2540/gew-backend/internal/service"
)

type RegistrationHandler struct {
	registrationService *service.RegistrationService
}

func NewRegistrationHandler(registrationService *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
	}
}

// Register handles POST /register. The paid path answers with a checkout
// redirect URL; the free path answers with the issued ticket.
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.registrationService.Register(req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Message})
		}
		if errors.Is(err, service.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Registration failed"})
	}

	if result.CheckoutURL != "" {
		return c.JSON(fiber.Map{"checkout_url": result.CheckoutURL})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"ticket_id":  result.TicketID,
		"ticket_url": result.TicketURL,
	})
}
