package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/pr17-lab/sata-backend/internal/app/models"
	"github.com/pr17-lab/sata-backend/internal/app/models/dto"
	"github.com/pr17-lab/sata-backend/internal/app/repositories"
	"github.com/pr17-lab/sata-backend/internal/pkg/apperrors"
	"github.com/pr17-lab/sata-backend/internal/pkg/auth"
)

type fakeUserStore struct {
	users map[string]*models.User // keyed by student ID
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserStore) GetByStudentID(_ context.Context, studentID string) (*models.User, error) {
	if u, ok := f.users[studentID]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserStore) UpdateLoginState(_ context.Context, id uuid.UUID, failedAttempts int, lockedUntil *time.Time) error {
	for _, u := range f.users {
		if u.ID == id {
			u.FailedLoginAttempts = failedAttempts
			u.LockedUntil = lockedUntil
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

type fakeProfileStore struct {
	byUserID map[uuid.UUID]*models.StudentProfile
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID uuid.UUID) (*models.StudentProfile, error) {
	if p, ok := f.byUserID[userID]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func newAuthFixture(t *testing.T, password string) (*AuthService, *fakeUserStore, *models.User) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	studentID := "2024CS001"
	user := &models.User{
		ID:           uuid.New(),
		StudentID:    &studentID,
		Email:        "ada@example.edu",
		PasswordHash: hash,
		IsActive:     true,
	}
	users := &fakeUserStore{users: map[string]*models.User{studentID: user}}
	profiles := &fakeProfileStore{byUserID: make(map[uuid.UUID]*models.StudentProfile)}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "0123456789abcdef0123456789abcdef",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})

	return NewAuthService(users, profiles, jwtService, zerolog.Nop()), users, user
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown student", func(t *testing.T) {
		service, _, _ := newAuthFixture(t, "secret123")
		_, err := service.Login(ctx, &dto.LoginRequest{StudentID: "nope", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("successful login returns a token", func(t *testing.T) {
		service, _, _ := newAuthFixture(t, "secret123")
		token, err := service.Login(ctx, &dto.LoginRequest{StudentID: "2024CS001", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, token.AccessToken)
		assert.Equal(t, "bearer", token.TokenType)
		assert.Equal(t, 3600, token.ExpiresIn)
	})

	t.Run("disabled account", func(t *testing.T) {
		service, _, user := newAuthFixture(t, "secret123")
		user.IsActive = false
		_, err := service.Login(ctx, &dto.LoginRequest{StudentID: "2024CS001", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})

	t.Run("fifth consecutive failure locks the account", func(t *testing.T) {
		service, _, user := newAuthFixture(t, "secret123")
		req := &dto.LoginRequest{StudentID: "2024CS001", Password: "wrong"}

		for i := 0; i < models.MaxFailedLoginAttempts-1; i++ {
			_, err := service.Login(ctx, req)
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "attempt %d", i+1)
		}

		_, err := service.Login(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
		assert.Equal(t, models.MaxFailedLoginAttempts, user.FailedLoginAttempts)
		require.NotNil(t, user.LockedUntil)
	})

	t.Run("correct password during cooldown still fails", func(t *testing.T) {
		service, _, user := newAuthFixture(t, "secret123")
		until := time.Now().Add(10 * time.Minute)
		user.FailedLoginAttempts = models.MaxFailedLoginAttempts
		user.LockedUntil = &until

		_, err := service.Login(ctx, &dto.LoginRequest{StudentID: "2024CS001", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
	})

	t.Run("correct password after cooldown succeeds and resets the counter", func(t *testing.T) {
		service, _, user := newAuthFixture(t, "secret123")
		until := time.Now().Add(10 * time.Minute)
		user.FailedLoginAttempts = models.MaxFailedLoginAttempts
		user.LockedUntil = &until

		service.now = func() time.Time { return until.Add(time.Second) }

		token, err := service.Login(ctx, &dto.LoginRequest{StudentID: "2024CS001", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, token.AccessToken)
		assert.Zero(t, user.FailedLoginAttempts)
		assert.Nil(t, user.LockedUntil)
	})
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("without profile", func(t *testing.T) {
		service, _, user := newAuthFixture(t, "secret123")
		resp, err := service.CurrentUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, resp.Email)
		assert.Nil(t, resp.Name)
	})

	t.Run("unknown user", func(t *testing.T) {
		service, _, _ := newAuthFixture(t, "secret123")
		_, err := service.CurrentUser(ctx, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
