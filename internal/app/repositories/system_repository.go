package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pr17-lab/sata-backend/internal/app/models/dto"
)

// SystemRepository answers health-check queries.
type SystemRepository struct {
	db *pgxpool.Pool
}

// NewSystemRepository creates a new SystemRepository
func NewSystemRepository(db *pgxpool.Pool) *SystemRepository {
	return &SystemRepository{db: db}
}

// Ping verifies database reachability.
func (r *SystemRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// TableCounts returns row counts of the four core tables.
func (r *SystemRepository) TableCounts(ctx context.Context) (*dto.TableCounts, error) {
	var counts dto.TableCounts
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM student_profiles),
			(SELECT COUNT(*) FROM academic_terms),
			(SELECT COUNT(*) FROM subjects)
	`).Scan(&counts.Users, &counts.Profiles, &counts.AcademicTerms, &counts.Subjects)
	if err != nil {
		return nil, fmt.Errorf("error counting table rows: %w", err)
	}

	return &counts, nil
}
