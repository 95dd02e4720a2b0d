// Package submission provides the queries on the submissions table.
//
// Rows are read in the engine's natural order, no ORDER BY is applied.
// For sqlite that is insertion (rowid) order.
package submission

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/eingabe/eingabe/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrTextEmpty is returned when attempting to store an empty submission.
	ErrTextEmpty = errors.New("submission text cannot be empty")
	// ErrNoSubmissions is returned by Latest on an empty table.
	ErrNoSubmissions = errors.New("no submissions stored")
)

// EnsureTable creates the submissions table if it does not exist yet.
func EnsureTable(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	m := db.Migrator()
	if m.HasTable(&models.Submission{}) {
		return nil
	}

	if err := m.CreateTable(&models.Submission{}); err != nil {
		// a concurrent request may have created it in between
		if m.HasTable(&models.Submission{}) {
			return nil
		}

		return err
	}

	return nil
}

// Create stores one submission.
func Create(db *gorm.DB, text string) (*models.Submission, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if text == "" {
		return nil, ErrTextEmpty
	}

	s := &models.Submission{Text: text}

	result := db.Create(s)
	if result.Error != nil {
		return nil, result.Error
	}

	return s, nil
}

// GetAll retrieves all submissions.
func GetAll(db *gorm.DB) ([]models.Submission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var submissions []models.Submission
	result := db.Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}

// Latest returns the last row of GetAll.
func Latest(db *gorm.DB) (*models.Submission, error) {
	submissions, err := GetAll(db)
	if err != nil {
		return nil, err
	}

	if len(submissions) == 0 {
		return nil, ErrNoSubmissions
	}

	return &submissions[len(submissions)-1], nil
}

// Lines joins all submissions with newlines and splits the result into lines.
// A submission containing a newline therefore yields several lines.
func Lines(db *gorm.DB) ([]string, error) {
	submissions, err := GetAll(db)
	if err != nil {
		return nil, err
	}

	if len(submissions) == 0 {
		return []string{}, nil
	}

	texts := make([]string, 0, len(submissions))
	for _, s := range submissions {
		texts = append(texts, s.Text)
	}

	return strings.Split(strings.Join(texts, "\n"), "\n"), nil
}
