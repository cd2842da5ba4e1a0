package models

import (
	"time"

	"github.com/google/uuid"
)

// Subject is one graded course entry within a term, backed by the 'subjects'
// table.
type Subject struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TermID      uuid.UUID `json:"termId" db:"term_id"`
	SubjectName string    `json:"subjectName" db:"subject_name"`
	SubjectCode string    `json:"subjectCode" db:"subject_code"`
	Credits     int       `json:"credits" db:"credits"`
	Marks       float64   `json:"marks" db:"marks"` // 0-100
	Grade       string    `json:"grade" db:"grade"` // letter code
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
