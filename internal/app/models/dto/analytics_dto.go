package dto

import "github.com/google/uuid"

// GPATrendPoint is one (semester, year, gpa) point in chronological order.
type GPATrendPoint struct {
	Semester int     `json:"semester"`
	Year     int     `json:"year"`
	GPA      float64 `json:"gpa"`
}

// GPATrend is the trend of a student's GPA over time.
type GPATrend struct {
	StudentID  uuid.UUID       `json:"studentId"`
	DataPoints []GPATrendPoint `json:"dataPoints"`
	AverageGPA float64         `json:"averageGpa"`
	Trend      string          `json:"trend" example:"improving" enums:"improving,declining,stable"`
}

// SubjectPerformanceItem aggregates a subject across all terms.
type SubjectPerformanceItem struct {
	SubjectCode  string  `json:"subjectCode"`
	SubjectName  string  `json:"subjectName"`
	AverageMarks float64 `json:"averageMarks"`
	TotalCredits int     `json:"totalCredits"`
	Frequency    int     `json:"frequency"`
}

// SubjectPerformance ranks a student's subjects by mean marks.
type SubjectPerformance struct {
	StudentID        uuid.UUID                `json:"studentId"`
	Subjects         []SubjectPerformanceItem `json:"subjects"`
	StrongestSubject string                   `json:"strongestSubject,omitempty"`
	WeakestSubject   string                   `json:"weakestSubject,omitempty"`
}

// SemesterStats aggregates one term for comparison purposes.
type SemesterStats struct {
	Semester      int     `json:"semester"`
	Year          int     `json:"year"`
	GPA           float64 `json:"gpa"`
	TotalCredits  int     `json:"totalCredits"`
	SubjectsCount int     `json:"subjectsCount"`
	AverageMarks  float64 `json:"averageMarks"`
}

// SemesterComparison compares a student's terms against each other.
type SemesterComparison struct {
	StudentID       uuid.UUID       `json:"studentId"`
	Semesters       []SemesterStats `json:"semesters"`
	BestSemester    *SemesterStats  `json:"bestSemester,omitempty"`
	CurrentSemester *SemesterStats  `json:"currentSemester,omitempty"`
}

// StudentAnalyticsSummary is the headline analytics view for one student.
type StudentAnalyticsSummary struct {
	StudentID             uuid.UUID `json:"studentId"`
	StudentName           string    `json:"studentName"`
	Branch                string    `json:"branch"`
	CurrentSemester       int       `json:"currentSemester"`
	OverallGPA            float64   `json:"overallGpa"`
	TotalCredits          int       `json:"totalCredits"`
	TotalSubjects         int       `json:"totalSubjects"`
	GPATrend              string    `json:"gpaTrend"`
	PerformancePercentile float64   `json:"performancePercentile"`
}

// CohortStats summarizes GPA statistics for a (branch, semester) cohort.
type CohortStats struct {
	Branch          string         `json:"branch"`
	Semester        int            `json:"semester"`
	TotalStudents   int            `json:"totalStudents"`
	AverageGPA      float64        `json:"averageGpa"`
	MedianGPA       float64        `json:"medianGpa"`
	TopGPA          float64        `json:"topGpa"`
	BottomGPA       float64        `json:"bottomGpa"`
	GPADistribution map[string]int `json:"gpaDistribution"`
}

// GradeDistribution is one band of the overview grade histogram.
type GradeDistribution struct {
	Grade      string  `json:"grade"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// AnalyticsOverview aggregates across the whole student population.
type AnalyticsOverview struct {
	TotalStudents     int                       `json:"totalStudents"`
	OverallAverageGPA float64                   `json:"overallAverageGpa"`
	GradeDistribution []GradeDistribution       `json:"gradeDistribution"`
	TopPerformers     []StudentAnalyticsSummary `json:"topPerformers"`
}
