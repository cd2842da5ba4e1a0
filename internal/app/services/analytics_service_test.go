package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/pr17-lab/sata-backend/internal/app/models"
	"github.com/pr17-lab/sata-backend/internal/app/repositories"
	"github.com/pr17-lab/sata-backend/internal/pkg/apperrors"
)

type fakeStudentStore struct {
	profiles map[uuid.UUID]*models.StudentProfile
}

func (f *fakeStudentStore) GetByID(_ context.Context, id uuid.UUID) (*models.StudentProfile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeStudentStore) ListByCohort(_ context.Context, branch string, semester int) ([]*models.StudentProfile, error) {
	var members []*models.StudentProfile
	for _, p := range f.profiles {
		if p.Branch == branch && p.Semester == semester {
			members = append(members, p)
		}
	}
	return members, nil
}

func (f *fakeStudentStore) ListAll(_ context.Context) ([]*models.StudentProfile, error) {
	var all []*models.StudentProfile
	for _, p := range f.profiles {
		all = append(all, p)
	}
	return all, nil
}

type fakeTermStore struct {
	terms map[uuid.UUID][]*models.AcademicTerm
}

func (f *fakeTermStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.AcademicTerm, error) {
	return f.terms[userID], nil
}

func (f *fakeTermStore) ListByUserWithSubjects(_ context.Context, userID uuid.UUID) ([]*models.AcademicTerm, error) {
	return f.terms[userID], nil
}

func (f *fakeTermStore) MeanGPAByUsers(_ context.Context, userIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	means := make(map[uuid.UUID]float64)
	for _, id := range userIDs {
		terms := f.terms[id]
		if len(terms) == 0 {
			continue
		}
		var sum float64
		for _, t := range terms {
			sum += t.GPA
		}
		means[id] = sum / float64(len(terms))
	}
	return means, nil
}

type fakeSubjectStore struct {
	aggregates map[uuid.UUID][]repositories.SubjectAggregate
	subjects   map[uuid.UUID]int
	credits    map[uuid.UUID]int
}

func (f *fakeSubjectStore) AggregateByUser(_ context.Context, userID uuid.UUID) ([]repositories.SubjectAggregate, error) {
	return f.aggregates[userID], nil
}

func (f *fakeSubjectStore) TotalsByUser(_ context.Context, userID uuid.UUID) (int, int, error) {
	return f.subjects[userID], f.credits[userID], nil
}

type analyticsFixture struct {
	service  *AnalyticsService
	students *fakeStudentStore
	terms    *fakeTermStore
	subjects *fakeSubjectStore
}

func newAnalyticsFixture() *analyticsFixture {
	students := &fakeStudentStore{profiles: make(map[uuid.UUID]*models.StudentProfile)}
	terms := &fakeTermStore{terms: make(map[uuid.UUID][]*models.AcademicTerm)}
	subjects := &fakeSubjectStore{
		aggregates: make(map[uuid.UUID][]repositories.SubjectAggregate),
		subjects:   make(map[uuid.UUID]int),
		credits:    make(map[uuid.UUID]int),
	}
	return &analyticsFixture{
		service:  NewAnalyticsService(students, terms, subjects, zerolog.Nop()),
		students: students,
		terms:    terms,
		subjects: subjects,
	}
}

func (f *analyticsFixture) addStudent(name, branch string, semester int, gpas ...float64) *models.StudentProfile {
	profile := &models.StudentProfile{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Name:     name,
		Branch:   branch,
		Semester: semester,
	}
	f.students.profiles[profile.ID] = profile
	for i, gpa := range gpas {
		f.terms.terms[profile.UserID] = append(f.terms.terms[profile.UserID], &models.AcademicTerm{
			ID:       uuid.New(),
			UserID:   profile.UserID,
			Semester: i + 1,
			Year:     2024,
			GPA:      gpa,
		})
	}
	return profile
}

func TestGPATrend(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown student", func(t *testing.T) {
		f := newAnalyticsFixture()
		_, err := f.service.GPATrend(ctx, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("zero terms gives empty stable result", func(t *testing.T) {
		f := newAnalyticsFixture()
		p := f.addStudent("Ada", "CSE", 1)

		trend, err := f.service.GPATrend(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, trend.DataPoints)
		assert.Zero(t, trend.AverageGPA)
		assert.Equal(t, TrendStable, trend.Trend)
	})

	t.Run("improving series", func(t *testing.T) {
		f := newAnalyticsFixture()
		p := f.addStudent("Ada", "CSE", 4, 6.0, 6.5, 7.5, 8.0)

		trend, err := f.service.GPATrend(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, trend.DataPoints, 4)
		assert.Equal(t, TrendImproving, trend.Trend)
		assert.Equal(t, 7.0, trend.AverageGPA)
	})
}

func TestSemesterComparison(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture()
	p := f.addStudent("Ada", "CSE", 3, 7.0, 8.5, 8.0)

	comparison, err := f.service.SemesterComparison(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comparison.Semesters, 3)
	require.NotNil(t, comparison.BestSemester)
	require.NotNil(t, comparison.CurrentSemester)
	assert.Equal(t, 8.5, comparison.BestSemester.GPA)
	assert.Equal(t, 8.0, comparison.CurrentSemester.GPA)
}

func TestStudentSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("zero terms gives zero-valued summary", func(t *testing.T) {
		f := newAnalyticsFixture()
		p := f.addStudent("Ada", "CSE", 1)

		summary, err := f.service.StudentSummary(ctx, p.ID)
		require.NoError(t, err)
		assert.Zero(t, summary.OverallGPA)
		assert.Equal(t, TrendStable, summary.GPATrend)
		assert.Equal(t, 50.0, summary.PerformancePercentile)
	})

	t.Run("percentile against cohort", func(t *testing.T) {
		f := newAnalyticsFixture()
		p := f.addStudent("Ada", "CSE", 2, 9.0, 9.0)
		f.addStudent("Ben", "CSE", 2, 7.0)
		f.addStudent("Cem", "CSE", 2, 8.0)
		f.addStudent("Eli", "EEE", 2, 9.5) // different cohort
		f.subjects.subjects[p.UserID] = 10
		f.subjects.credits[p.UserID] = 40

		summary, err := f.service.StudentSummary(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 9.0, summary.OverallGPA)
		assert.Equal(t, 10, summary.TotalSubjects)
		assert.Equal(t, 40, summary.TotalCredits)
		// Two of the three cohort GPAs are strictly below 9.0.
		assert.InDelta(t, 66.67, summary.PerformancePercentile, 0.01)
	})
}

func TestCohortStats(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cohort", func(t *testing.T) {
		f := newAnalyticsFixture()
		stats, err := f.service.CohortStats(ctx, "CSE", 3)
		require.NoError(t, err)
		assert.Zero(t, stats.TotalStudents)
		assert.Zero(t, stats.AverageGPA)
		assert.Len(t, stats.GPADistribution, 5)
	})

	t.Run("aggregates member mean GPAs", func(t *testing.T) {
		f := newAnalyticsFixture()
		f.addStudent("Ada", "CSE", 3, 9.2)
		f.addStudent("Ben", "CSE", 3, 7.4)
		f.addStudent("Cem", "CSE", 3, 5.0)
		f.addStudent("NoTerms", "CSE", 3)

		stats, err := f.service.CohortStats(ctx, "CSE", 3)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalStudents)
		assert.Equal(t, 7.2, stats.AverageGPA)
		assert.Equal(t, 7.4, stats.MedianGPA)
		assert.Equal(t, 9.2, stats.TopGPA)
		assert.Equal(t, 5.0, stats.BottomGPA)
		assert.Equal(t, 1, stats.GPADistribution["9.0-10.0"])
		assert.Equal(t, 1, stats.GPADistribution["7.0-7.9"])
		assert.Equal(t, 1, stats.GPADistribution["Below 6.0"])
	})
}

func TestSubjectPerformance(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture()
	p := f.addStudent("Ada", "CSE", 2)
	f.subjects.aggregates[p.UserID] = []repositories.SubjectAggregate{
		{SubjectCode: "CS101", SubjectName: "Programming", AverageMarks: 91.5, TotalCredits: 4, Frequency: 1},
		{SubjectCode: "MA101", SubjectName: "Calculus", AverageMarks: 64.0, TotalCredits: 3, Frequency: 2},
		{SubjectCode: "PH101", SubjectName: "Physics", AverageMarks: 72.0, TotalCredits: 3, Frequency: 1},
	}

	performance, err := f.service.SubjectPerformance(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, performance.Subjects, 3)
	assert.Equal(t, "Programming", performance.StrongestSubject)
	assert.Equal(t, "Calculus", performance.WeakestSubject)
	// Ranked by mean marks, best first.
	assert.Equal(t, "CS101", performance.Subjects[0].SubjectCode)
	assert.Equal(t, "MA101", performance.Subjects[2].SubjectCode)
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture()
	f.addStudent("Ada", "CSE", 2, 9.5)
	f.addStudent("Ben", "CSE", 2, 8.1)
	f.addStudent("Cem", "EEE", 2, 6.2)
	f.addStudent("NoTerms", "EEE", 2)

	overview, err := f.service.Overview(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, overview.TotalStudents)
	assert.InDelta(t, 7.93, overview.OverallAverageGPA, 0.01)
	require.Len(t, overview.TopPerformers, 2)
	assert.Equal(t, "Ada", overview.TopPerformers[0].StudentName)
	assert.Equal(t, "Ben", overview.TopPerformers[1].StudentName)

	var bands []string
	for _, d := range overview.GradeDistribution {
		bands = append(bands, d.Grade)
	}
	assert.Equal(t, []string{"A+", "A", "B"}, bands)
}
