package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/pr17-lab/sata-backend/internal/app/models"
	"github.com/pr17-lab/sata-backend/internal/app/models/dto"
	"github.com/pr17-lab/sata-backend/internal/app/repositories"
	"github.com/pr17-lab/sata-backend/internal/pkg/apperrors"
	"github.com/pr17-lab/sata-backend/internal/pkg/auth"
)

// userStore is the slice of the user repository the auth service needs.
type userStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByStudentID(ctx context.Context, studentID string) (*models.User, error)
	UpdateLoginState(ctx context.Context, id uuid.UUID, failedAttempts int, lockedUntil *time.Time) error
}

// profileStore is the slice of the student repository the auth service needs.
type profileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error)
}

// AuthService handles login and current-user lookups.
type AuthService struct {
	users      userStore
	profiles   profileStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(users userStore, profiles profileStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		profiles:   profiles,
		jwtService: jwtService,
		logger:     logger,
		now:        time.Now,
	}
}

// Login authenticates by external student identifier and password. Failed
// attempts increment the lockout counter; the fifth consecutive failure locks
// the account for thirty minutes. A correct password during the cooldown
// still fails.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Same message as a bad password so student IDs cannot be probed.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.now()

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if user.IsLocked(now) {
		s.logger.Warn().Str("studentId", req.StudentID).Time("lockedUntil", *user.LockedUntil).Msg("Login attempt on locked account")
		return nil, apperrors.ErrAccountLocked
	}

	if user.PasswordHash == "" || !auth.CheckPassword(user.PasswordHash, req.Password) {
		user.RecordFailedLogin(now)
		if err := s.users.UpdateLoginState(ctx, user.ID, user.FailedLoginAttempts, user.LockedUntil); err != nil {
			s.logger.Error().Err(err).Str("studentId", req.StudentID).Msg("Failed to persist lockout state")
		}
		if user.IsLocked(now) {
			return nil, apperrors.ErrAccountLocked
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	// Successful login clears any accumulated failures.
	if user.FailedLoginAttempts > 0 || user.LockedUntil != nil {
		user.ResetFailedAttempts()
		if err := s.users.UpdateLoginState(ctx, user.ID, 0, nil); err != nil {
			s.logger.Error().Err(err).Str("studentId", req.StudentID).Msg("Failed to reset lockout state")
		}
	}

	studentID := ""
	if user.StudentID != nil {
		studentID = *user.StudentID
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, studentID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// CurrentUser returns the authenticated user's identity plus profile fields.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*dto.CurrentUserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	resp := &dto.CurrentUserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		StudentID: user.StudentID,
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return resp, nil
		}
		return nil, err
	}

	resp.Name = &profile.Name
	resp.Branch = &profile.Branch
	resp.Semester = &profile.Semester
	return resp, nil
}
