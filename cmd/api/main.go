package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/waalid2540/gew-backend/internal/config"
	"github.com/waalid2540/gew-backend/internal/handler"
	"github.com/waalid2540/gew-backend/internal/repository"
	"github.com/waalid2540/gew-backend/internal/service"
	"github.com/waalid2540/gew-backend/pkg/database"
	"github.com/waalid2540/gew-backend/pkg/email"
	"github.com/waalid2540/gew-backend/pkg/payment"
	"github.com/waalid2540/gew-backend/pkg/qrcode"
	"github.com/waalid2540/gew-backend/pkg/utils"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	log := newLogger()
	defer log.Sync()

	cfg := config.LoadConfig()

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	// Repositories
	attendeeRepo := repository.NewAttendeeRepository(db)

	// Shared services
	qrService := qrcode.NewQRService(cfg.Server.PublicBaseURL)
	emailService := email.NewEmailService(cfg.Email, cfg.Event, log)
	validator := utils.NewValidator()

	var gateway service.CheckoutGateway
	if cfg.Stripe.SecretKey != "" {
		gateway = payment.NewStripeService(cfg.Stripe.SecretKey)
	}

	// Domain services
	ticketService := service.NewTicketService(attendeeRepo, qrService, cfg.Event)
	paymentService := service.NewPaymentService(gateway, ticketService, emailService, qrService, cfg.Stripe, cfg.Server.PublicBaseURL, log)
	registrationService := service.NewRegistrationService(attendeeRepo, ticketService, paymentService, emailService, qrService, validator, log)
	adminService := service.NewAdminService(attendeeRepo)

	// Handlers
	handlers := handler.Handlers{
		Registration: handler.NewRegistrationHandler(registrationService),
		Ticket:       handler.NewTicketHandler(ticketService),
		Admin:        handler.NewAdminHandler(adminService),
		Webhook:      handler.NewWebhookHandler(paymentService, cfg.Stripe.WebhookSecret, log),
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST",
	}))
	app.Use(logger.New())

	handler.SetupRoutes(app, handlers, handler.RouterConfig{
		AdminSecret:   cfg.Admin.Password,
		PublicBaseURL: cfg.Server.PublicBaseURL,
		PublicDir:     "./public",
		RegisterLimiter: limiter.New(limiter.Config{
			Max:        5,
			Expiration: 15 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many registration attempts, please try again later.",
				})
			},
		}),
	})

	log.Info("server listening",
		zap.String("port", cfg.Server.Port),
		zap.Bool("payments", cfg.Stripe.Enabled()),
		zap.Bool("email", emailService.Enabled()))

	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
