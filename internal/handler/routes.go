package handler

import (
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/waalid2540/gew-backend/internal/middleware"
)

// Handlers bundles the route handlers for registration.
type Handlers struct {
	Registration *RegistrationHandler
	Ticket       *TicketHandler
	Admin        *AdminHandler
	Webhook      *WebhookHandler
}

// RouterConfig carries the route-level knobs that come from the environment.
type RouterConfig struct {
	AdminSecret     string
	PublicBaseURL   string
	PublicDir       string        // static assets; empty disables
	RegisterLimiter fiber.Handler // admission control on POST /register; nil disables
}

// SetupRoutes registers the public, webhook and admin routes.
func SetupRoutes(app *fiber.App, h Handlers, cfg RouterConfig) {
	if cfg.RegisterLimiter != nil {
		app.Post("/register", cfg.RegisterLimiter, h.Registration.Register)
	} else {
		app.Post("/register", h.Registration.Register)
	}

	app.Get("/ticket/:id", h.Ticket.GetTicket)

	// Stripe webhook (public, signature-verified in the handler)
	app.Post("/webhook/stripe", h.Webhook.HandleStripeWebhook)

	// Admin dashboard shell + API
	if cfg.PublicDir != "" {
		app.Get("/admin", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(cfg.PublicDir, "admin.html"))
		})
	}

	api := app.Group("/api/admin", middleware.AdminAuth(cfg.AdminSecret))
	api.Get("/attendees", h.Admin.ListAttendees)
	api.Post("/checkin/:id", h.Admin.ToggleCheckIn)
	api.Get("/export", h.Admin.ExportCSV)

	// SEO
	app.Get("/sitemap.xml", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/xml")
		return c.SendString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>` + cfg.PublicBaseURL + `/</loc>
    <lastmod>` + time.Now().Format("2006-01-02") + `</lastmod>
    <changefreq>daily</changefreq>
    <priority>1.0</priority>
  </url>
</urlset>`)
	})
	app.Get("/robots.txt", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/plain")
		return c.SendString("User-agent: *\nAllow: /\nSitemap: " + cfg.PublicBaseURL + "/sitemap.xml\n")
	})

	if cfg.PublicDir != "" {
		app.Static("/", cfg.PublicDir)
	}
}
