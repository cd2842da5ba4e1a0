package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pr17-lab/sata-backend/internal/app/models"
)

// SubjectAggregate is one subject grouped across a student's terms.
type SubjectAggregate struct {
	SubjectCode  string
	SubjectName  string
	AverageMarks float64
	TotalCredits int
	Frequency    int
}

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// Create inserts a new subject row.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (id, term_id, subject_name, subject_code, credits, marks, grade)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query, subject.ID, subject.TermID, subject.SubjectName,
		subject.SubjectCode, subject.Credits, subject.Marks, subject.Grade)
	if err != nil {
		return fmt.Errorf("error creating subject: %w", err)
	}

	return nil
}

// ExistsInTerm checks whether a subject code is already recorded in a term.
func (r *SubjectRepository) ExistsInTerm(ctx context.Context, termID uuid.UUID, subjectCode string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM subjects WHERE term_id = $1 AND subject_code = $2)`,
		termID, subjectCode).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking subject existence: %w", err)
	}
	return exists, nil
}

// AggregateByUser groups all of a user's subjects by (code, name), returning
// mean marks, summed credits and occurrence count per subject.
func (r *SubjectRepository) AggregateByUser(ctx context.Context, userID uuid.UUID) ([]SubjectAggregate, error) {
	query := `
		SELECT s.subject_code, s.subject_name, AVG(s.marks), SUM(s.credits), COUNT(s.id)
		FROM subjects s
		JOIN academic_terms t ON t.id = s.term_id
		WHERE t.user_id = $1
		GROUP BY s.subject_code, s.subject_name
		ORDER BY s.subject_code
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error aggregating subjects: %w", err)
	}
	defer rows.Close()

	var aggregates []SubjectAggregate
	for rows.Next() {
		var a SubjectAggregate
		if err := rows.Scan(&a.SubjectCode, &a.SubjectName, &a.AverageMarks,
			&a.TotalCredits, &a.Frequency); err != nil {
			return nil, fmt.Errorf("error scanning aggregate row: %w", err)
		}
		aggregates = append(aggregates, a)
	}

	return aggregates, rows.Err()
}

// TotalsByUser returns the total subject count and summed credits across all
// of a user's terms.
func (r *SubjectRepository) TotalsByUser(ctx context.Context, userID uuid.UUID) (subjects int, credits int, err error) {
	query := `
		SELECT COUNT(s.id), COALESCE(SUM(s.credits), 0)
		FROM subjects s
		JOIN academic_terms t ON t.id = s.term_id
		WHERE t.user_id = $1
	`

	if err := r.db.QueryRow(ctx, query, userID).Scan(&subjects, &credits); err != nil {
		return 0, 0, fmt.Errorf("error computing subject totals: %w", err)
	}

	return subjects, credits, nil
}
