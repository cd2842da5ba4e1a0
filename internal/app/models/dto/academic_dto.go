package dto

import (
	"github.com/google/uuid"
	"github.com/pr17-lab/sata-backend/internal/app/models"
)

// SubjectResponse is the API shape of one graded course entry.
type SubjectResponse struct {
	ID          uuid.UUID `json:"id"`
	SubjectName string    `json:"subjectName"`
	SubjectCode string    `json:"subjectCode"`
	Credits     int       `json:"credits"`
	Marks       float64   `json:"marks"`
	Grade       string    `json:"grade"`
}

// TermResponse is one academic term with its subjects.
type TermResponse struct {
	ID       uuid.UUID         `json:"id"`
	Semester int               `json:"semester"`
	Year     int               `json:"year"`
	GPA      float64           `json:"gpa"`
	Subjects []SubjectResponse `json:"subjects"`
}

// AcademicRecordSummary is the full academic history for a student.
type AcademicRecordSummary struct {
	StudentID    uuid.UUID      `json:"studentId"`
	TotalTerms   int            `json:"totalTerms"`
	OverallGPA   float64        `json:"overallGpa"`
	TotalCredits int            `json:"totalCredits"`
	Terms        []TermResponse `json:"terms"`
}

// NewTermResponse maps a term model (with subjects loaded) to its response shape.
func NewTermResponse(t *models.AcademicTerm) TermResponse {
	subjects := make([]SubjectResponse, 0, len(t.Subjects))
	for _, s := range t.Subjects {
		subjects = append(subjects, SubjectResponse{
			ID:          s.ID,
			SubjectName: s.SubjectName,
			SubjectCode: s.SubjectCode,
			Credits:     s.Credits,
			Marks:       s.Marks,
			Grade:       s.Grade,
		})
	}
	return TermResponse{
		ID:       t.ID,
		Semester: t.Semester,
		Year:     t.Year,
		GPA:      t.GPA,
		Subjects: subjects,
	}
}
