package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/waalid2540/gew-backend/internal/models"
)

// NewDatabase opens the SQLite database at path and creates the attendee
// table if it does not exist. TranslateError maps unique-constraint
// violations to gorm.ErrDuplicatedKey so callers can detect conflicts.
func NewDatabase(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Attendee{}); err != nil {
		return nil, err
	}

	return db, nil
}
