package services

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/pr17-lab/sata-backend/internal/app/models"
	"github.com/pr17-lab/sata-backend/internal/app/models/dto"
	"github.com/pr17-lab/sata-backend/internal/app/repositories"
	"github.com/pr17-lab/sata-backend/internal/pkg/apperrors"
)

// analyticsStudentStore is the slice of the student repository analytics needs.
type analyticsStudentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.StudentProfile, error)
	ListByCohort(ctx context.Context, branch string, semester int) ([]*models.StudentProfile, error)
	ListAll(ctx context.Context) ([]*models.StudentProfile, error)
}

// analyticsTermStore is the slice of the term repository analytics needs.
type analyticsTermStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.AcademicTerm, error)
	ListByUserWithSubjects(ctx context.Context, userID uuid.UUID) ([]*models.AcademicTerm, error)
	MeanGPAByUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]float64, error)
}

// analyticsSubjectStore is the slice of the subject repository analytics needs.
type analyticsSubjectStore interface {
	AggregateByUser(ctx context.Context, userID uuid.UUID) ([]repositories.SubjectAggregate, error)
	TotalsByUser(ctx context.Context, userID uuid.UUID) (int, int, error)
}

// DefaultTopPerformers bounds the overview leaderboard when no limit is given.
const (
	DefaultTopPerformers = 5
	MaxTopPerformers     = 50
)

// AnalyticsService computes derived views over academic records. Students
// with no recorded terms get zero-valued results rather than errors; only an
// unknown student ID is an error.
type AnalyticsService struct {
	students analyticsStudentStore
	terms    analyticsTermStore
	subjects analyticsSubjectStore
	logger   zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(students analyticsStudentStore, terms analyticsTermStore, subjects analyticsSubjectStore, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		students: students,
		terms:    terms,
		subjects: subjects,
		logger:   logger,
	}
}

func (s *AnalyticsService) profile(ctx context.Context, studentID uuid.UUID) (*models.StudentProfile, error) {
	profile, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}
	return profile, nil
}

// GPATrend returns a student's GPA series in chronological order with a
// trend label.
func (s *AnalyticsService) GPATrend(ctx context.Context, studentID uuid.UUID) (*dto.GPATrend, error) {
	profile, err := s.profile(ctx, studentID)
	if err != nil {
		return nil, err
	}

	terms, err := s.terms.ListByUser(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	points := make([]dto.GPATrendPoint, 0, len(terms))
	gpas := make([]float64, 0, len(terms))
	for _, term := range terms {
		points = append(points, dto.GPATrendPoint{
			Semester: term.Semester,
			Year:     term.Year,
			GPA:      term.GPA,
		})
		gpas = append(gpas, term.GPA)
	}

	return &dto.GPATrend{
		StudentID:  profile.ID,
		DataPoints: points,
		AverageGPA: round2(meanOf(gpas)),
		Trend:      classifyTrend(gpas),
	}, nil
}

// SubjectPerformance groups a student's subjects across all terms and ranks
// them by mean marks.
func (s *AnalyticsService) SubjectPerformance(ctx context.Context, studentID uuid.UUID) (*dto.SubjectPerformance, error) {
	profile, err := s.profile(ctx, studentID)
	if err != nil {
		return nil, err
	}

	aggregates, err := s.subjects.AggregateByUser(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	result := &dto.SubjectPerformance{
		StudentID: profile.ID,
		Subjects:  make([]dto.SubjectPerformanceItem, 0, len(aggregates)),
	}

	var strongest, weakest *repositories.SubjectAggregate
	for i := range aggregates {
		a := aggregates[i]
		result.Subjects = append(result.Subjects, dto.SubjectPerformanceItem{
			SubjectCode:  a.SubjectCode,
			SubjectName:  a.SubjectName,
			AverageMarks: round2(a.AverageMarks),
			TotalCredits: a.TotalCredits,
			Frequency:    a.Frequency,
		})
		if strongest == nil || a.AverageMarks > strongest.AverageMarks {
			strongest = &aggregates[i]
		}
		if weakest == nil || a.AverageMarks < weakest.AverageMarks {
			weakest = &aggregates[i]
		}
	}

	if strongest != nil {
		result.StrongestSubject = strongest.SubjectName
		result.WeakestSubject = weakest.SubjectName
	}

	sort.Slice(result.Subjects, func(i, j int) bool {
		return result.Subjects[i].AverageMarks > result.Subjects[j].AverageMarks
	})

	return result, nil
}

// SemesterComparison summarizes each of a student's terms and flags the best
// and the most recent one.
func (s *AnalyticsService) SemesterComparison(ctx context.Context, studentID uuid.UUID) (*dto.SemesterComparison, error) {
	profile, err := s.profile(ctx, studentID)
	if err != nil {
		return nil, err
	}

	terms, err := s.terms.ListByUserWithSubjects(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	result := &dto.SemesterComparison{
		StudentID: profile.ID,
		Semesters: make([]dto.SemesterStats, 0, len(terms)),
	}

	for _, term := range terms {
		var credits int
		marks := make([]float64, 0, len(term.Subjects))
		for _, subj := range term.Subjects {
			credits += subj.Credits
			marks = append(marks, subj.Marks)
		}
		result.Semesters = append(result.Semesters, dto.SemesterStats{
			Semester:      term.Semester,
			Year:          term.Year,
			GPA:           term.GPA,
			TotalCredits:  credits,
			SubjectsCount: len(term.Subjects),
			AverageMarks:  round2(meanOf(marks)),
		})
	}

	for i := range result.Semesters {
		if result.BestSemester == nil || result.Semesters[i].GPA > result.BestSemester.GPA {
			result.BestSemester = &result.Semesters[i]
		}
	}
	if n := len(result.Semesters); n > 0 {
		result.CurrentSemester = &result.Semesters[n-1]
	}

	return result, nil
}

// StudentSummary is the headline view: overall GPA, totals, trend and the
// student's percentile within their (branch, semester) cohort.
func (s *AnalyticsService) StudentSummary(ctx context.Context, studentID uuid.UUID) (*dto.StudentAnalyticsSummary, error) {
	profile, err := s.profile(ctx, studentID)
	if err != nil {
		return nil, err
	}

	terms, err := s.terms.ListByUser(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	gpas := make([]float64, 0, len(terms))
	for _, term := range terms {
		gpas = append(gpas, term.GPA)
	}
	overallGPA := round2(meanOf(gpas))

	totalSubjects, totalCredits, err := s.subjects.TotalsByUser(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	cohortGPAs, err := s.cohortGPAs(ctx, profile.Branch, profile.Semester)
	if err != nil {
		return nil, err
	}

	return &dto.StudentAnalyticsSummary{
		StudentID:             profile.ID,
		StudentName:           profile.Name,
		Branch:                profile.Branch,
		CurrentSemester:       profile.Semester,
		OverallGPA:            overallGPA,
		TotalCredits:          totalCredits,
		TotalSubjects:         totalSubjects,
		GPATrend:              classifyTrend(gpas),
		PerformancePercentile: percentileRank(cohortGPAs, overallGPA),
	}, nil
}

// cohortGPAs returns the mean GPA of every (branch, semester) cohort member
// that has at least one recorded term.
func (s *AnalyticsService) cohortGPAs(ctx context.Context, branch string, semester int) ([]float64, error) {
	members, err := s.students.ListByCohort(ctx, branch, semester)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}

	userIDs := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}

	means, err := s.terms.MeanGPAByUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	gpas := make([]float64, 0, len(means))
	for _, m := range members {
		if gpa, ok := means[m.UserID]; ok {
			gpas = append(gpas, gpa)
		}
	}
	return gpas, nil
}

// CohortStats aggregates GPA statistics across a (branch, semester) cohort.
func (s *AnalyticsService) CohortStats(ctx context.Context, branch string, semester int) (*dto.CohortStats, error) {
	gpas, err := s.cohortGPAs(ctx, branch, semester)
	if err != nil {
		return nil, err
	}

	stats := &dto.CohortStats{
		Branch:          branch,
		Semester:        semester,
		TotalStudents:   len(gpas),
		GPADistribution: gpaHistogram(gpas),
	}
	if len(gpas) == 0 {
		return stats, nil
	}

	top, bottom := gpas[0], gpas[0]
	for _, gpa := range gpas {
		if gpa > top {
			top = gpa
		}
		if gpa < bottom {
			bottom = gpa
		}
	}

	stats.AverageGPA = round2(meanOf(gpas))
	stats.MedianGPA = round2(medianOf(gpas))
	stats.TopGPA = round2(top)
	stats.BottomGPA = round2(bottom)
	return stats, nil
}

// Overview aggregates across the whole student population: overall average
// GPA, a banded grade distribution and a leaderboard of top performers.
func (s *AnalyticsService) Overview(ctx context.Context, limit int) (*dto.AnalyticsOverview, error) {
	if limit <= 0 {
		limit = DefaultTopPerformers
	}
	if limit > MaxTopPerformers {
		limit = MaxTopPerformers
	}

	profiles, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	overview := &dto.AnalyticsOverview{
		TotalStudents:     len(profiles),
		GradeDistribution: []dto.GradeDistribution{},
		TopPerformers:     []dto.StudentAnalyticsSummary{},
	}
	if len(profiles) == 0 {
		return overview, nil
	}

	userIDs := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		userIDs = append(userIDs, p.UserID)
	}
	means, err := s.terms.MeanGPAByUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	type ranked struct {
		profile *models.StudentProfile
		gpa     float64
	}
	graded := make([]ranked, 0, len(profiles))
	gpas := make([]float64, 0, len(profiles))
	for _, p := range profiles {
		gpa, ok := means[p.UserID]
		if !ok {
			continue
		}
		graded = append(graded, ranked{profile: p, gpa: gpa})
		gpas = append(gpas, gpa)
	}
	if len(graded) == 0 {
		return overview, nil
	}

	overview.OverallAverageGPA = round2(meanOf(gpas))

	bands := make(map[string]int, len(gradeBandOrder))
	for _, gpa := range gpas {
		bands[gradeBand(gpa)]++
	}
	for _, band := range gradeBandOrder {
		count := bands[band]
		if count == 0 {
			continue
		}
		overview.GradeDistribution = append(overview.GradeDistribution, dto.GradeDistribution{
			Grade:      band,
			Count:      count,
			Percentage: round2(float64(count) / float64(len(gpas)) * 100),
		})
	}

	sort.SliceStable(graded, func(i, j int) bool { return graded[i].gpa > graded[j].gpa })
	if len(graded) > limit {
		graded = graded[:limit]
	}

	// Cohort GPAs per (branch, semester), built from the means already fetched.
	type cohortKey struct {
		branch   string
		semester int
	}
	cohorts := make(map[cohortKey][]float64)
	for _, p := range profiles {
		if gpa, ok := means[p.UserID]; ok {
			key := cohortKey{branch: p.Branch, semester: p.Semester}
			cohorts[key] = append(cohorts[key], gpa)
		}
	}

	for _, entry := range graded {
		terms, err := s.terms.ListByUser(ctx, entry.profile.UserID)
		if err != nil {
			return nil, err
		}
		termGPAs := make([]float64, 0, len(terms))
		for _, t := range terms {
			termGPAs = append(termGPAs, t.GPA)
		}

		totalSubjects, totalCredits, err := s.subjects.TotalsByUser(ctx, entry.profile.UserID)
		if err != nil {
			return nil, err
		}

		key := cohortKey{branch: entry.profile.Branch, semester: entry.profile.Semester}
		overview.TopPerformers = append(overview.TopPerformers, dto.StudentAnalyticsSummary{
			StudentID:             entry.profile.ID,
			StudentName:           entry.profile.Name,
			Branch:                entry.profile.Branch,
			CurrentSemester:       entry.profile.Semester,
			OverallGPA:            round2(entry.gpa),
			TotalCredits:          totalCredits,
			TotalSubjects:         totalSubjects,
			GPATrend:              classifyTrend(termGPAs),
			PerformancePercentile: percentileRank(cohorts[key], entry.gpa),
		})
	}

	return overview, nil
}
