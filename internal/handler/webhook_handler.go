package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74/webhook"
	"go.uber.org/zap"

	"github.com/waalid2540/gew-backend/internal/service"
)

type WebhookHandler struct {
	paymentService *service.PaymentService
	webhookSecret  string
	logger         *zap.Logger
}

func NewWebhookHandler(paymentService *service.PaymentService, webhookSecret string, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{
		paymentService: paymentService,
		webhookSecret:  webhookSecret,
		logger:         logger,
	}
}

// HandleStripeWebhook handles POST /webhook/stripe. The raw body is verified
// against the configured signing secret; unverified events have no effect.
func (h *WebhookHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	event, err := webhook.ConstructEventWithOptions(
		c.Body(),
		c.Get("Stripe-Signature"),
		h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: " + err.Error())
	}

	if err := h.paymentService.HandleWebhook(&event); err != nil {
		h.logger.Error("webhook processing failed",
			zap.String("event_type", string(event.Type)), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: " + err.Error())
	}

	return c.JSON(fiber.Map{"received": true})
}
