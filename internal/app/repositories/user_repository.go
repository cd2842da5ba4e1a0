package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pr17-lab/sata-backend/internal/app/models"
	"github.com/pr17-lab/sata-backend/internal/pkg/dberrors"
	"github.com/pr17-lab/sata-backend/internal/pkg/logger"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already in use")
	ErrStudentIDExists = errors.New("student ID already in use")
)

const userColumns = "id, student_id, email, password_hash, is_active, failed_login_attempts, locked_until, created_at, updated_at"

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(
		&user.ID, &user.StudentID, &user.Email, &user.PasswordHash, &user.IsActive,
		&user.FailedLoginAttempts, &user.LockedUntil, &user.CreatedAt, &user.UpdatedAt)
}

// Create inserts a new user. The caller is expected to have set ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("id", "student_id", "email", "password_hash", "is_active").
		Values(user.ID, user.StudentID, user.Email, user.PasswordHash, user.IsActive).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return ErrEmailExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_student_id_key") {
			return ErrStudentIDExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by primary key.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	sql, args, err := r.sb.Select(userColumns).From("users").
		Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	if err := scanUser(r.db.QueryRow(ctx, sql, args...), &user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetByStudentID retrieves a user by the external student identifier.
func (r *UserRepository) GetByStudentID(ctx context.Context, studentID string) (*models.User, error) {
	var user models.User
	sql, args, err := r.sb.Select(userColumns).From("users").
		Where(squirrel.Eq{"student_id": studentID}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by student ID query: %w", err)
	}

	if err := scanUser(r.db.QueryRow(ctx, sql, args...), &user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// EmailExists checks whether an email is already taken.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// UpdateLoginState persists the lockout counters after a login attempt.
func (r *UserRepository) UpdateLoginState(ctx context.Context, id uuid.UUID, failedAttempts int, lockedUntil *time.Time) error {
	sql, args, err := r.sb.Update("users").
		Set("failed_login_attempts", failedAttempts).
		Set("locked_until", lockedUntil).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update login state query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating login state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePasswordHash replaces a user's password hash.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("error updating password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListWithStudentIDs returns id and student_id of every user that has an
// external student identifier. Used by the password reset tooling.
func (r *UserRepository) ListWithStudentIDs(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, student_id FROM users WHERE student_id IS NOT NULL ORDER BY student_id`)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.StudentID); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
