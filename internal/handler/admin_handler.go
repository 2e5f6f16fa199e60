package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/waalid2540/gew-backend/internal/models"
	"github.com/waalid2540/gew-backend/internal/repository"
	"github.com/waalid2540/gew-backend/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// ListAttendees handles GET /api/admin/attendees?search&type&status.
func (h *AdminHandler) ListAttendees(c *fiber.Ctx) error {
	filter := repository.AttendeeFilter{
		Search: c.Query("search"),
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}

	attendees, err := h.adminService.ListAttendees(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to fetch attendees"))
	}

	return c.JSON(models.SuccessResponse(attendees, ""))
}

// ToggleCheckIn handles POST /api/admin/checkin/:id.
func (h *AdminHandler) ToggleCheckIn(c *fiber.Ctx) error {
	if err := h.adminService.ToggleCheckIn(c.Params("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Attendee not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Check-in failed"))
	}

	return c.JSON(models.SuccessResponse(nil, "Check-in updated"))
}

// ExportCSV handles GET /api/admin/export.
func (h *AdminHandler) ExportCSV(c *fiber.Ctx) error {
	csv, err := h.adminService.ExportCSV()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Export failed"))
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="gew-attendees.csv"`)
	return c.Send(csv)
}
