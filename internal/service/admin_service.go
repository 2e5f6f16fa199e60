package service

import (
	"fmt"
	"strings"

	"github.com/waalid2540/gew-backend/internal/models"
	"github.com/waalid2540/gew-backend/internal/repository"
)

// AdminService backs the admin dashboard: filtered listing, check-in
// toggling and CSV export.
type AdminService struct {
	attendeeRepo *repository.AttendeeRepository
}

func NewAdminService(attendeeRepo *repository.AttendeeRepository) *AdminService {
	return &AdminService{attendeeRepo: attendeeRepo}
}

func (s *AdminService) ListAttendees(filter repository.AttendeeFilter) ([]models.Attendee, error) {
	return s.attendeeRepo.Search(filter)
}

func (s *AdminService) ToggleCheckIn(uniqueID string) error {
	return s.attendeeRepo.ToggleCheckIn(uniqueID)
}

// ExportCSV renders all attendees as CSV with a fixed column order. Text
// fields are quoted but embedded quote characters are not escaped; known
// limitation for this dataset.
func (s *AdminService) ExportCSV() ([]byte, error) {
	attendees, err := s.attendeeRepo.GetAll()
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Name,Email,Company,Ticket Type,Created At,Checked In\n")
	for _, a := range attendees {
		checkedIn := "No"
		if a.CheckedIn {
			checkedIn = "Yes"
		}
		fmt.Fprintf(&b, "\"%s\",\"%s\",\"%s\",\"%s\",\"%s\",\"%s\"\n",
			a.Name,
			a.Email,
			a.Company,
			a.TicketType,
			a.CreatedAt.Format("2006-01-02 15:04:05"),
			checkedIn,
		)
	}

	return []byte(b.String()), nil
}
