package importer

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/pr17-lab/sata-backend/internal/app/models"
	"github.com/pr17-lab/sata-backend/internal/app/repositories"
	"github.com/pr17-lab/sata-backend/internal/pkg/auth"
)

// DefaultImportPassword is assigned to every imported account.
const DefaultImportPassword = "student123"

// StudentImportSummary counts the outcome of a roster import.
type StudentImportSummary struct {
	TotalRows       int
	Created         int
	SkippedExisting int
	SkippedInvalid  int
	Failed          int
}

// rosterUserStore is the slice of the user repository the roster import needs.
type rosterUserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

// rosterProfileStore creates the imported student profiles.
type rosterProfileStore interface {
	Create(ctx context.Context, profile *models.StudentProfile) error
}

// StudentImporter creates users and profiles from a roster export.
type StudentImporter struct {
	users    rosterUserStore
	profiles rosterProfileStore
	logger   zerolog.Logger
}

// NewStudentImporter creates a new StudentImporter
func NewStudentImporter(users rosterUserStore, profiles rosterProfileStore, logger zerolog.Logger) *StudentImporter {
	return &StudentImporter{
		users:    users,
		profiles: profiles,
		logger:   logger,
	}
}

// Import loads a roster CSV. Rows with duplicate emails are deduplicated
// keeping the first occurrence; rows whose email already exists in the
// database are skipped. Row-level failures are logged and skipped.
func (im *StudentImporter) Import(ctx context.Context, path string) (*StudentImportSummary, error) {
	table, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := table.RequireColumns(RosterColumns...); err != nil {
		return nil, err
	}

	summary := &StudentImportSummary{TotalRows: len(table.Rows)}

	// Every imported account gets the same starting password, so one hash
	// covers the whole batch.
	passwordHash, err := auth.HashPassword(DefaultImportPassword)
	if err != nil {
		return nil, err
	}

	seenEmails := make(map[string]bool)
	for i, row := range table.Rows {
		line := i + 2

		email := strings.ToLower(row["email"])
		studentID := row["student_id"]
		if email == "" || studentID == "" || row["name"] == "" {
			im.logger.Warn().Int("row", line).Msg("Skipping roster row with missing required fields")
			summary.SkippedInvalid++
			continue
		}

		if seenEmails[email] {
			im.logger.Debug().Int("row", line).Str("email", email).Msg("Skipping duplicate email in CSV")
			summary.SkippedInvalid++
			continue
		}
		seenEmails[email] = true

		semester, err := strconv.Atoi(row["current_semester"])
		if err != nil || semester < 1 || semester > 10 {
			im.logger.Warn().Int("row", line).Str("semester", row["current_semester"]).Msg("Skipping roster row with invalid semester")
			summary.SkippedInvalid++
			continue
		}

		exists, err := im.users.EmailExists(ctx, email)
		if err != nil {
			im.logger.Error().Err(err).Int("row", line).Msg("Failed to check existing email")
			summary.Failed++
			continue
		}
		if exists {
			summary.SkippedExisting++
			continue
		}

		user := &models.User{
			ID:           uuid.New(),
			StudentID:    &studentID,
			Email:        email,
			PasswordHash: passwordHash,
			IsActive:     strings.EqualFold(row["status"], "active"),
		}
		if err := im.users.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrEmailExists) || errors.Is(err, repositories.ErrStudentIDExists) {
				summary.SkippedExisting++
				continue
			}
			im.logger.Error().Err(err).Int("row", line).Str("studentId", studentID).Msg("Failed to create user")
			summary.Failed++
			continue
		}

		profile := &models.StudentProfile{
			ID:       uuid.New(),
			UserID:   user.ID,
			Name:     row["name"],
			Branch:   row["department"],
			Semester: semester,
		}
		if err := im.profiles.Create(ctx, profile); err != nil {
			im.logger.Error().Err(err).Int("row", line).Str("studentId", studentID).Msg("Failed to create profile")
			summary.Failed++
			continue
		}

		summary.Created++
	}

	im.logger.Info().
		Int("rows", summary.TotalRows).
		Int("created", summary.Created).
		Int("skippedExisting", summary.SkippedExisting).
		Int("skippedInvalid", summary.SkippedInvalid).
		Int("failed", summary.Failed).
		Msg("Roster import finished")

	return summary, nil
}
