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
)

var (
	ErrProfileNotFound = errors.New("student profile not found")
	ErrProfileExists   = errors.New("student profile already exists for user")
)

const profileColumns = "id, user_id, name, branch, semester, interests, created_at, updated_at"

// StudentFilter narrows student listings. Nil fields are ignored.
type StudentFilter struct {
	Branch   *string
	Semester *int
}

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanProfile(row pgx.Row, p *models.StudentProfile) error {
	return row.Scan(&p.ID, &p.UserID, &p.Name, &p.Branch, &p.Semester,
		&p.Interests, &p.CreatedAt, &p.UpdatedAt)
}

// Create inserts a new profile. The caller is expected to have set ID.
func (r *StudentRepository) Create(ctx context.Context, profile *models.StudentProfile) error {
	sql, args, err := r.sb.Insert("student_profiles").
		Columns("id", "user_id", "name", "branch", "semester", "interests").
		Values(profile.ID, profile.UserID, profile.Name, profile.Branch, profile.Semester, profile.Interests).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create profile query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_user_id_key") {
			return ErrProfileExists
		}
		return fmt.Errorf("error creating student profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by primary key.
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	sql, args, err := r.sb.Select(profileColumns).From("student_profiles").
		Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	if err := scanProfile(r.db.QueryRow(ctx, sql, args...), &profile); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return &profile, nil
}

// GetByUserID retrieves the profile attached to a user.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	sql, args, err := r.sb.Select(profileColumns).From("student_profiles").
		Where(squirrel.Eq{"user_id": userID}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile by user query: %w", err)
	}

	if err := scanProfile(r.db.QueryRow(ctx, sql, args...), &profile); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return &profile, nil
}

// List returns one page of profiles matching the filter plus the total count.
func (r *StudentRepository) List(ctx context.Context, filter StudentFilter, offset, limit uint64) ([]*models.StudentProfile, int64, error) {
	base := r.sb.Select(profileColumns).From("student_profiles")
	countQuery := r.sb.Select("COUNT(*)").From("student_profiles")

	if filter.Branch != nil {
		base = base.Where(squirrel.Eq{"branch": *filter.Branch})
		countQuery = countQuery.Where(squirrel.Eq{"branch": *filter.Branch})
	}
	if filter.Semester != nil {
		base = base.Where(squirrel.Eq{"semester": *filter.Semester})
		countQuery = countQuery.Where(squirrel.Eq{"semester": *filter.Semester})
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting student profiles: %w", err)
	}

	listSQL, listArgs, err := base.OrderBy("name").Offset(offset).Limit(limit).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing student profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.StudentProfile
	for rows.Next() {
		var p models.StudentProfile
		if err := scanProfile(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("error scanning profile row: %w", err)
		}
		profiles = append(profiles, &p)
	}

	return profiles, total, rows.Err()
}

// ListByCohort returns all profiles sharing a branch and semester.
func (r *StudentRepository) ListByCohort(ctx context.Context, branch string, semester int) ([]*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(profileColumns).From("student_profiles").
		Where(squirrel.Eq{"branch": branch, "semester": semester}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build cohort query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing cohort profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.StudentProfile
	for rows.Next() {
		var p models.StudentProfile
		if err := scanProfile(rows, &p); err != nil {
			return nil, fmt.Errorf("error scanning profile row: %w", err)
		}
		profiles = append(profiles, &p)
	}

	return profiles, rows.Err()
}

// ListAll returns every profile. Used by the analytics overview.
func (r *StudentRepository) ListAll(ctx context.Context) ([]*models.StudentProfile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM student_profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing student profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.StudentProfile
	for rows.Next() {
		var p models.StudentProfile
		if err := scanProfile(rows, &p); err != nil {
			return nil, fmt.Errorf("error scanning profile row: %w", err)
		}
		profiles = append(profiles, &p)
	}

	return profiles, rows.Err()
}

// Update applies the non-nil fields and bumps updated_at.
func (r *StudentRepository) Update(ctx context.Context, id uuid.UUID, name, branch *string, semester *int, interests *string) (*models.StudentProfile, error) {
	update := r.sb.Update("student_profiles").Set("updated_at", time.Now())
	if name != nil {
		update = update.Set("name", *name)
	}
	if branch != nil {
		update = update.Set("branch", *branch)
	}
	if semester != nil {
		update = update.Set("semester", *semester)
	}
	if interests != nil {
		update = update.Set("interests", *interests)
	}

	sql, args, err := update.Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + profileColumns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update profile query: %w", err)
	}

	var profile models.StudentProfile
	if err := scanProfile(r.db.QueryRow(ctx, sql, args...), &profile); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error updating student profile: %w", err)
	}

	return &profile, nil
}

// Delete removes a profile row.
func (r *StudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM student_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}
