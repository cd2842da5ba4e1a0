package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/pr17-lab/sata-backend/internal/app/models"
	"github.com/pr17-lab/sata-backend/internal/app/models/dto"
	"github.com/pr17-lab/sata-backend/internal/app/repositories"
	"github.com/pr17-lab/sata-backend/internal/pkg/apperrors"
)

func createStudentRequest(userID uuid.UUID) *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		UserID:   userID,
		Name:     "Ben",
		Branch:   "CSE",
		Semester: 1,
	}
}

type fakeStudentCRUDStore struct {
	profiles map[uuid.UUID]*models.StudentProfile
}

func (f *fakeStudentCRUDStore) Create(_ context.Context, profile *models.StudentProfile) error {
	for _, p := range f.profiles {
		if p.UserID == profile.UserID {
			return repositories.ErrProfileExists
		}
	}
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeStudentCRUDStore) GetByID(_ context.Context, id uuid.UUID) (*models.StudentProfile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeStudentCRUDStore) List(_ context.Context, filter repositories.StudentFilter, offset, limit uint64) ([]*models.StudentProfile, int64, error) {
	var matched []*models.StudentProfile
	for _, p := range f.profiles {
		if filter.Branch != nil && p.Branch != *filter.Branch {
			continue
		}
		if filter.Semester != nil && p.Semester != *filter.Semester {
			continue
		}
		matched = append(matched, p)
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeStudentCRUDStore) Update(_ context.Context, id uuid.UUID, name, branch *string, semester *int, interests *string) (*models.StudentProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	if name != nil {
		p.Name = *name
	}
	if branch != nil {
		p.Branch = *branch
	}
	if semester != nil {
		p.Semester = *semester
	}
	if interests != nil {
		p.Interests = interests
	}
	return p, nil
}

func (f *fakeStudentCRUDStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.profiles[id]; !ok {
		return repositories.ErrProfileNotFound
	}
	delete(f.profiles, id)
	return nil
}

func newStudentFixture() (*StudentService, *fakeStudentCRUDStore, *fakeUserStore, *fakeTermStore) {
	students := &fakeStudentCRUDStore{profiles: make(map[uuid.UUID]*models.StudentProfile)}
	users := &fakeUserStore{users: make(map[string]*models.User)}
	terms := &fakeTermStore{terms: make(map[uuid.UUID][]*models.AcademicTerm)}
	return NewStudentService(students, users, terms, zerolog.Nop()), students, users, terms
}

func TestStudentGet(t *testing.T) {
	ctx := context.Background()
	service, students, _, _ := newStudentFixture()

	_, err := service.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	profile := &models.StudentProfile{ID: uuid.New(), UserID: uuid.New(), Name: "Ada", Branch: "CSE", Semester: 2}
	students.profiles[profile.ID] = profile

	resp, err := service.Get(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", resp.Name)
}

func TestStudentCreate(t *testing.T) {
	ctx := context.Background()
	service, _, users, _ := newStudentFixture()

	t.Run("unknown user", func(t *testing.T) {
		_, err := service.Create(ctx, createStudentRequest(uuid.New()))
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("creates and rejects a second profile for the same user", func(t *testing.T) {
		sid := "2024CS002"
		user := &models.User{ID: uuid.New(), StudentID: &sid, Email: "ben@example.edu", IsActive: true}
		users.users[sid] = user

		created, err := service.Create(ctx, createStudentRequest(user.ID))
		require.NoError(t, err)
		assert.Equal(t, user.ID, created.UserID)

		_, err = service.Create(ctx, createStudentRequest(user.ID))
		assert.ErrorIs(t, err, apperrors.ErrProfileAlreadyExists)
	})
}

func TestStudentUpdate(t *testing.T) {
	ctx := context.Background()
	service, students, _, _ := newStudentFixture()

	profile := &models.StudentProfile{ID: uuid.New(), UserID: uuid.New(), Name: "Ada", Branch: "CSE", Semester: 2}
	students.profiles[profile.ID] = profile

	t.Run("empty update is rejected", func(t *testing.T) {
		_, err := service.Update(ctx, profile.ID, &dto.UpdateStudentRequest{})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("applies only the provided fields", func(t *testing.T) {
		semester := 3
		resp, err := service.Update(ctx, profile.ID, &dto.UpdateStudentRequest{Semester: &semester})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Semester)
		assert.Equal(t, "Ada", resp.Name)
	})

	t.Run("unknown student", func(t *testing.T) {
		name := "Grace"
		_, err := service.Update(ctx, uuid.New(), &dto.UpdateStudentRequest{Name: &name})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})
}

func TestAcademicRecords(t *testing.T) {
	ctx := context.Background()
	service, students, _, terms := newStudentFixture()

	profile := &models.StudentProfile{ID: uuid.New(), UserID: uuid.New(), Name: "Ada", Branch: "CSE", Semester: 2}
	students.profiles[profile.ID] = profile

	t.Run("zero terms gives a zero-valued summary", func(t *testing.T) {
		summary, err := service.AcademicRecords(ctx, profile.ID)
		require.NoError(t, err)
		assert.Zero(t, summary.TotalTerms)
		assert.Zero(t, summary.OverallGPA)
		assert.Zero(t, summary.TotalCredits)
		assert.Empty(t, summary.Terms)
	})

	t.Run("aggregates terms and credits", func(t *testing.T) {
		terms.terms[profile.UserID] = []*models.AcademicTerm{
			{
				ID: uuid.New(), UserID: profile.UserID, Semester: 1, Year: 2024, GPA: 8.0,
				Subjects: []models.Subject{
					{SubjectCode: "CS101", Credits: 4, Marks: 80, Grade: "A"},
					{SubjectCode: "MA101", Credits: 3, Marks: 75, Grade: "B+"},
				},
			},
			{
				ID: uuid.New(), UserID: profile.UserID, Semester: 2, Year: 2024, GPA: 7.0,
				Subjects: []models.Subject{
					{SubjectCode: "CS102", Credits: 4, Marks: 70, Grade: "B+"},
				},
			},
		}

		summary, err := service.AcademicRecords(ctx, profile.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.TotalTerms)
		assert.Equal(t, 7.5, summary.OverallGPA)
		assert.Equal(t, 11, summary.TotalCredits)
		require.Len(t, summary.Terms, 2)
		assert.Len(t, summary.Terms[0].Subjects, 2)
	})
}
