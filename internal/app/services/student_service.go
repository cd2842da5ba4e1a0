package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/pr17-lab/sata-backend/internal/app/models"
	"github.com/pr17-lab/sata-backend/internal/app/models/dto"
	"github.com/pr17-lab/sata-backend/internal/app/repositories"
	"github.com/pr17-lab/sata-backend/internal/pkg/apperrors"
	"github.com/pr17-lab/sata-backend/internal/pkg/helpers"
)

// studentStore is the slice of the student repository the service needs.
type studentStore interface {
	Create(ctx context.Context, profile *models.StudentProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.StudentProfile, error)
	List(ctx context.Context, filter repositories.StudentFilter, offset, limit uint64) ([]*models.StudentProfile, int64, error)
	Update(ctx context.Context, id uuid.UUID, name, branch *string, semester *int, interests *string) (*models.StudentProfile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// userLookup checks the owning user exists before a profile is created.
type userLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// termLookup loads a student's full academic history.
type termLookup interface {
	ListByUserWithSubjects(ctx context.Context, userID uuid.UUID) ([]*models.AcademicTerm, error)
}

// StudentService handles student profile CRUD and academic record retrieval.
type StudentService struct {
	students studentStore
	users    userLookup
	terms    termLookup
	logger   zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(students studentStore, users userLookup, terms termLookup, logger zerolog.Logger) *StudentService {
	return &StudentService{
		students: students,
		users:    users,
		terms:    terms,
		logger:   logger,
	}
}

// List returns a page of student profiles with optional branch and semester
// filters.
func (s *StudentService) List(ctx context.Context, filter repositories.StudentFilter, page, pageSize int) (*dto.PaginatedResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	profiles, total, err := s.students.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StudentResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, dto.NewStudentResponse(p))
	}

	return &dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// Get returns one student profile by ID.
func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (*dto.StudentResponse, error) {
	profile, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}

	resp := dto.NewStudentResponse(profile)
	return &resp, nil
}

// Create adds a profile for an existing user.
func (s *StudentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	profile := &models.StudentProfile{
		ID:        uuid.New(),
		UserID:    req.UserID,
		Name:      req.Name,
		Branch:    req.Branch,
		Semester:  req.Semester,
		Interests: req.Interests,
	}

	if err := s.students.Create(ctx, profile); err != nil {
		if errors.Is(err, repositories.ErrProfileExists) {
			return nil, apperrors.ErrProfileAlreadyExists
		}
		return nil, err
	}

	s.logger.Info().Str("studentId", profile.ID.String()).Str("userId", req.UserID.String()).Msg("Student profile created")

	return s.Get(ctx, profile.ID)
}

// Update applies a partial update; nil fields are left untouched.
func (s *StudentService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	if req.Name == nil && req.Branch == nil && req.Semester == nil && req.Interests == nil {
		return nil, apperrors.NewBadRequestError("no fields provided for update")
	}

	profile, err := s.students.Update(ctx, id, req.Name, req.Branch, req.Semester, req.Interests)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}

	resp := dto.NewStudentResponse(profile)
	return &resp, nil
}

// Delete removes a student profile.
func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return err
	}

	s.logger.Info().Str("studentId", id.String()).Msg("Student profile deleted")
	return nil
}

// AcademicRecords returns the student's full term history with nested
// subjects. A student with no terms gets an empty, zero-valued summary.
func (s *StudentService) AcademicRecords(ctx context.Context, id uuid.UUID) (*dto.AcademicRecordSummary, error) {
	profile, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}

	terms, err := s.terms.ListByUserWithSubjects(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	summary := &dto.AcademicRecordSummary{
		StudentID: profile.ID,
		Terms:     make([]dto.TermResponse, 0, len(terms)),
	}

	gpas := make([]float64, 0, len(terms))
	for _, term := range terms {
		summary.Terms = append(summary.Terms, dto.NewTermResponse(term))
		gpas = append(gpas, term.GPA)
		for _, subj := range term.Subjects {
			summary.TotalCredits += subj.Credits
		}
	}
	summary.TotalTerms = len(terms)
	summary.OverallGPA = round2(meanOf(gpas))

	return summary, nil
}
