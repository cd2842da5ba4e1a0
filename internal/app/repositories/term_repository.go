package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pr17-lab/sata-backend/internal/app/models"
	"github.com/pr17-lab/sata-backend/internal/pkg/dberrors"
)

var (
	ErrTermNotFound = errors.New("academic term not found")
	ErrTermExists   = errors.New("academic term already exists for user, semester and year")
)

// TermRepository handles academic term database operations
type TermRepository struct {
	db *pgxpool.Pool
}

// NewTermRepository creates a new TermRepository
func NewTermRepository(db *pgxpool.Pool) *TermRepository {
	return &TermRepository{db: db}
}

// Create inserts a new term. Returns ErrTermExists when the
// (user, semester, year) triple is already present.
func (r *TermRepository) Create(ctx context.Context, term *models.AcademicTerm) error {
	query := `
		INSERT INTO academic_terms (id, user_id, semester, year, gpa)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, term.ID, term.UserID, term.Semester, term.Year, term.GPA)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_user_semester_year") {
			return ErrTermExists
		}
		return fmt.Errorf("error creating academic term: %w", err)
	}

	return nil
}

// GetByUserSemesterYear finds the term for a (user, semester, year) triple.
func (r *TermRepository) GetByUserSemesterYear(ctx context.Context, userID uuid.UUID, semester, year int) (*models.AcademicTerm, error) {
	query := `
		SELECT id, user_id, semester, year, gpa, created_at, updated_at
		FROM academic_terms
		WHERE user_id = $1 AND semester = $2 AND year = $3
	`

	var term models.AcademicTerm
	err := r.db.QueryRow(ctx, query, userID, semester, year).Scan(
		&term.ID, &term.UserID, &term.Semester, &term.Year, &term.GPA,
		&term.CreatedAt, &term.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTermNotFound
		}
		return nil, fmt.Errorf("error retrieving academic term: %w", err)
	}

	return &term, nil
}

// ListByUser returns a user's terms in chronological (year, semester) order.
func (r *TermRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.AcademicTerm, error) {
	query := `
		SELECT id, user_id, semester, year, gpa, created_at, updated_at
		FROM academic_terms
		WHERE user_id = $1
		ORDER BY year, semester
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing academic terms: %w", err)
	}
	defer rows.Close()

	var terms []*models.AcademicTerm
	for rows.Next() {
		var term models.AcademicTerm
		if err := rows.Scan(&term.ID, &term.UserID, &term.Semester, &term.Year,
			&term.GPA, &term.CreatedAt, &term.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning term row: %w", err)
		}
		terms = append(terms, &term)
	}

	return terms, rows.Err()
}

// ListByUserWithSubjects returns ordered terms with their subjects attached.
func (r *TermRepository) ListByUserWithSubjects(ctx context.Context, userID uuid.UUID) ([]*models.AcademicTerm, error) {
	terms, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return terms, nil
	}

	query := `
		SELECT s.id, s.term_id, s.subject_name, s.subject_code, s.credits, s.marks, s.grade, s.created_at, s.updated_at
		FROM subjects s
		JOIN academic_terms t ON t.id = s.term_id
		WHERE t.user_id = $1
		ORDER BY s.subject_code
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects for terms: %w", err)
	}
	defer rows.Close()

	byTerm := make(map[uuid.UUID]*models.AcademicTerm, len(terms))
	for _, t := range terms {
		byTerm[t.ID] = t
	}

	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.TermID, &s.SubjectName, &s.SubjectCode,
			&s.Credits, &s.Marks, &s.Grade, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		if term, ok := byTerm[s.TermID]; ok {
			term.Subjects = append(term.Subjects, s)
		}
	}

	return terms, rows.Err()
}

// MeanGPAByUsers computes each user's mean GPA across their terms in one
// query. Users with no terms are absent from the result.
func (r *TermRepository) MeanGPAByUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	if len(userIDs) == 0 {
		return map[uuid.UUID]float64{}, nil
	}

	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT user_id, AVG(gpa)
		FROM academic_terms
		WHERE user_id = ANY($1::uuid[])
		GROUP BY user_id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error computing mean GPAs: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID]float64)
	for rows.Next() {
		var userID uuid.UUID
		var mean float64
		if err := rows.Scan(&userID, &mean); err != nil {
			return nil, fmt.Errorf("error scanning mean GPA row: %w", err)
		}
		result[userID] = mean
	}

	return result, rows.Err()
}
