package models

import (
	"time"

	"github.com/google/uuid"
)

// AcademicTerm is one semester/year record with an aggregate GPA, backed by
// the 'academic_terms' table. (user_id, semester, year) is unique.
type AcademicTerm struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Semester  int       `json:"semester" db:"semester"`
	Year      int       `json:"year" db:"year"`
	GPA       float64   `json:"gpa" db:"gpa"` // 0-10 scale
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Subjects []Subject `json:"subjects,omitempty"` // relation, no db tag
}
