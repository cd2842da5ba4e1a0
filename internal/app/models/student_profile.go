package models

import (
	"time"

	"github.com/google/uuid"
)

// StudentProfile is the one-to-one profile for a user, backed by the
// 'student_profiles' table. At most one profile exists per user.
type StudentProfile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Branch    string    `json:"branch" db:"branch"`
	Semester  int       `json:"semester" db:"semester"` // 1-10
	Interests *string   `json:"interests,omitempty" db:"interests"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	User *User `json:"user,omitempty"` // relation, no db tag
}
