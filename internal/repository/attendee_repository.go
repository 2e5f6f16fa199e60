package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/waalid2540/gew-backend/internal/models"
)

var (
	// ErrDuplicate is returned when an insert violates the email or ticket id
	// uniqueness constraint. The constraint is the authority on duplicates;
	// any pre-check is an early exit only.
	ErrDuplicate = errors.New("attendee already exists")
	// ErrNotFound is returned when no attendee matches the given ticket id.
	ErrNotFound = errors.New("attendee not found")
)

// AttendeeFilter narrows admin listing queries.
type AttendeeFilter struct {
	Search string // substring match on name, email, company or unique_id
	Type   string // exact ticket type
	Status string // "checked_in" or "not_checked_in"
}

type AttendeeRepository struct {
	db *gorm.DB
}

func NewAttendeeRepository(db *gorm.DB) *AttendeeRepository {
	return &AttendeeRepository{db: db}
}

func (r *AttendeeRepository) Create(attendee *models.Attendee) error {
	if err := r.db.Create(attendee).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *AttendeeRepository) GetByUniqueID(uniqueID string) (*models.Attendee, error) {
	var attendee models.Attendee
	err := r.db.Where("unique_id = ?", uniqueID).First(&attendee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &attendee, nil
}

func (r *AttendeeRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Attendee{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Search lists attendees matching the filter, newest first.
func (r *AttendeeRepository) Search(filter AttendeeFilter) ([]models.Attendee, error) {
	query := r.db.Model(&models.Attendee{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"name LIKE ? OR email LIKE ? OR company LIKE ? OR unique_id LIKE ?",
			like, like, like, like,
		)
	}
	if filter.Type != "" {
		query = query.Where("ticket_type = ?", filter.Type)
	}
	switch filter.Status {
	case "checked_in":
		query = query.Where("checked_in = ?", true)
	case "not_checked_in":
		query = query.Where("checked_in = ?", false)
	}

	var attendees []models.Attendee
	err := query.Order("created_at DESC, id DESC").Find(&attendees).Error
	return attendees, err
}

// ToggleCheckIn flips the check-in flag for the given ticket id.
func (r *AttendeeRepository) ToggleCheckIn(uniqueID string) error {
	result := r.db.Model(&models.Attendee{}).
		Where("unique_id = ?", uniqueID).
		Update("checked_in", gorm.Expr("NOT checked_in"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetAll returns every attendee, newest first, for CSV export.
func (r *AttendeeRepository) GetAll() ([]models.Attendee, error) {
	var attendees []models.Attendee
	err := r.db.Order("created_at DESC, id DESC").Find(&attendees).Error
	return attendees, err
}
