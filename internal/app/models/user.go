package models

import (
	"time"

	"github.com/google/uuid"
)

// Lockout policy: 5 consecutive failures lock the account for 30 minutes.
const (
	MaxFailedLoginAttempts = 5
	LockoutDuration        = 30 * time.Minute
)

// User defines the identity and credential record backed by the 'users' table.
type User struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	StudentID           *string    `json:"studentId,omitempty" db:"student_id"` // external key, unique when present
	Email               string     `json:"email" db:"email"`
	PasswordHash        string     `json:"-" db:"password_hash"`
	IsActive            bool       `json:"isActive" db:"is_active"`
	FailedLoginAttempts int        `json:"-" db:"failed_login_attempts"`
	LockedUntil         *time.Time `json:"-" db:"locked_until"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated_at"`

	Profile *StudentProfile `json:"profile,omitempty"` // relation, no db tag
}

// IsLocked reports whether the account is locked at the given instant.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// RecordFailedLogin increments the failure counter and locks the account once
// the threshold is reached.
func (u *User) RecordFailedLogin(now time.Time) {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= MaxFailedLoginAttempts {
		until := now.Add(LockoutDuration)
		u.LockedUntil = &until
	}
}

// ResetFailedAttempts clears lockout state after a successful login.
func (u *User) ResetFailedAttempts() {
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
}
