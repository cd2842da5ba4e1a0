package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/pr17-lab/sata-backend/internal/app/models"
)

// CreateStudentRequest creates a profile for an existing user.
type CreateStudentRequest struct {
	UserID    uuid.UUID `json:"userId" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Branch    string    `json:"branch" binding:"required"`
	Semester  int       `json:"semester" binding:"required,min=1,max=10"`
	Interests *string   `json:"interests,omitempty"`
}

// UpdateStudentRequest updates a profile; nil fields are left untouched.
type UpdateStudentRequest struct {
	Name      *string `json:"name,omitempty"`
	Branch    *string `json:"branch,omitempty"`
	Semester  *int    `json:"semester,omitempty" binding:"omitempty,min=1,max=10"`
	Interests *string `json:"interests,omitempty"`
}

// StudentResponse is the API shape of a student profile.
type StudentResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Branch    string    `json:"branch"`
	Semester  int       `json:"semester"`
	Interests *string   `json:"interests,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewStudentResponse maps a profile model to its response shape.
func NewStudentResponse(p *models.StudentProfile) StudentResponse {
	return StudentResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Branch:    p.Branch,
		Semester:  p.Semester,
		Interests: p.Interests,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
