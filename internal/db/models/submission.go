// Package models contains database model definitions.
package models

// SubmissionTable is the table holding all submissions.
const SubmissionTable = "Eingaben"

// Submission is one stored form entry.
// The table has a single text column and no primary key.
type Submission struct {
	Text string `gorm:"column:eingabe;type:text"`
}

// TableName implements gorm's schema.Tabler.
func (Submission) TableName() string {
	return SubmissionTable
}
