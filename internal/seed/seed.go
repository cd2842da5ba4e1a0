package seed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/pr17-lab/sata-backend/internal/app/models"
	appRepos "github.com/pr17-lab/sata-backend/internal/app/repositories"
	"github.com/pr17-lab/sata-backend/internal/pkg/auth"
)

// Demo account credentials created by CreateDemoData.
const (
	DemoStudentID = "DEMO001"
	DemoEmail     = "demo.student@sata.app"
	DemoPassword  = "demo1234"
)

// CreateDemoData seeds a demo user with a profile and one graded term if the
// account doesn't exist yet. Safe to run repeatedly.
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	studentRepo := appRepos.NewStudentRepository(dbPool)
	termRepo := appRepos.NewTermRepository(dbPool)
	subjectRepo := appRepos.NewSubjectRepository(dbPool)

	if _, err := userRepo.GetByStudentID(ctx, DemoStudentID); err == nil {
		lgr.Debug().Str("studentId", DemoStudentID).Msg("Demo user already exists, skipping seed")
		return nil
	} else if !errors.Is(err, appRepos.ErrUserNotFound) {
		return err
	}

	lgr.Info().Msg("Creating demo data...")

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	studentID := DemoStudentID
	user := &appModels.User{
		ID:           uuid.New(),
		StudentID:    &studentID,
		Email:        DemoEmail,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return err
	}

	interests := "distributed systems, databases"
	profile := &appModels.StudentProfile{
		ID:        uuid.New(),
		UserID:    user.ID,
		Name:      "Demo Student",
		Branch:    "Computer Science",
		Semester:  3,
		Interests: &interests,
	}
	if err := studentRepo.Create(ctx, profile); err != nil {
		return err
	}

	term := &appModels.AcademicTerm{
		ID:       uuid.New(),
		UserID:   user.ID,
		Semester: 1,
		Year:     2024,
		GPA:      8.25,
	}
	if err := termRepo.Create(ctx, term); err != nil {
		return err
	}

	subjects := []appModels.Subject{
		{SubjectName: "Data Structures", SubjectCode: "CS201", Credits: 4, Marks: 85, Grade: "A"},
		{SubjectName: "Discrete Mathematics", SubjectCode: "MA202", Credits: 3, Marks: 80, Grade: "A"},
	}
	for _, s := range subjects {
		s.ID = uuid.New()
		s.TermID = term.ID
		if err := subjectRepo.Create(ctx, &s); err != nil {
			return err
		}
	}

	lgr.Info().Str("studentId", DemoStudentID).Msg("Demo data created")
	return nil
}
