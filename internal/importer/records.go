package importer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/pr17-lab/sata-backend/internal/app/models"
	"github.com/pr17-lab/sata-backend/internal/app/repositories"
)

// DefaultAcademicYear is assumed when the records export carries no year.
const DefaultAcademicYear = 2024

// maxGPA caps the term GPA derived from marks.
const maxGPA = 9.99

// RecordsImportSummary counts the outcome of an academic-records import.
type RecordsImportSummary struct {
	TotalRows       int
	TermsCreated    int
	TermsReused     int
	SubjectsCreated int
	SubjectsSkipped int
	SkippedRows     int
}

// TermGPA derives a 10-point GPA from subject marks: mean marks divided by
// ten, rounded to two decimals, capped at 9.99.
func TermGPA(marks []float64) float64 {
	if len(marks) == 0 {
		return 0
	}
	var sum float64
	for _, m := range marks {
		sum += m
	}
	gpa := math.Round(sum/float64(len(marks))/10*100) / 100
	return math.Min(gpa, maxGPA)
}

// GradeFromMarks maps subject marks to a letter grade.
func GradeFromMarks(marks float64) string {
	switch {
	case marks >= 90:
		return "A+"
	case marks >= 80:
		return "A"
	case marks >= 70:
		return "B+"
	case marks >= 60:
		return "B"
	case marks >= 50:
		return "C"
	case marks >= 40:
		return "D"
	default:
		return "F"
	}
}

type recordRow struct {
	line        int
	studentID   string
	semester    int
	subjectCode string
	subjectName string
	credits     int
	marks       float64
}

type termKey struct {
	studentID string
	semester  int
}

// recordsUserStore resolves external student IDs to users.
type recordsUserStore interface {
	GetByStudentID(ctx context.Context, studentID string) (*models.User, error)
}

// recordsTermStore is the slice of the term repository the import needs.
type recordsTermStore interface {
	Create(ctx context.Context, term *models.AcademicTerm) error
	GetByUserSemesterYear(ctx context.Context, userID uuid.UUID, semester, year int) (*models.AcademicTerm, error)
}

// recordsSubjectStore is the slice of the subject repository the import needs.
type recordsSubjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	ExistsInTerm(ctx context.Context, termID uuid.UUID, subjectCode string) (bool, error)
}

// RecordsImporter loads graded subjects from a records export, creating or
// reusing one academic term per (student, semester).
type RecordsImporter struct {
	users    recordsUserStore
	terms    recordsTermStore
	subjects recordsSubjectStore
	year     int
	logger   zerolog.Logger
}

// NewRecordsImporter creates a new RecordsImporter. A year of 0 selects
// DefaultAcademicYear.
func NewRecordsImporter(users recordsUserStore, terms recordsTermStore, subjects recordsSubjectStore, year int, logger zerolog.Logger) *RecordsImporter {
	if year == 0 {
		year = DefaultAcademicYear
	}
	return &RecordsImporter{
		users:    users,
		terms:    terms,
		subjects: subjects,
		year:     year,
		logger:   logger,
	}
}

// Import loads a records CSV. Re-running the same file creates no duplicate
// subjects: terms are reused and subject codes already present in a term are
// skipped.
func (im *RecordsImporter) Import(ctx context.Context, path string) (*RecordsImportSummary, error) {
	table, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := table.RequireColumns(RecordsColumns...); err != nil {
		return nil, err
	}

	summary := &RecordsImportSummary{TotalRows: len(table.Rows)}

	// Group rows by (student, semester), dropping duplicate subject codes
	// within a group and keeping input order of groups.
	groups := make(map[termKey][]recordRow)
	var order []termKey
	for i, raw := range table.Rows {
		row, err := parseRecordRow(i+2, raw)
		if err != nil {
			im.logger.Warn().Err(err).Int("row", i+2).Msg("Skipping invalid records row")
			summary.SkippedRows++
			continue
		}

		key := termKey{studentID: row.studentID, semester: row.semester}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}

		duplicate := false
		for _, existing := range groups[key] {
			if existing.subjectCode == row.subjectCode {
				duplicate = true
				break
			}
		}
		if duplicate {
			summary.SkippedRows++
			continue
		}
		groups[key] = append(groups[key], row)
	}

	for _, key := range order {
		rows := groups[key]

		user, err := im.users.GetByStudentID(ctx, key.studentID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				im.logger.Warn().Str("studentId", key.studentID).Msg("Skipping records for unknown student")
				summary.SkippedRows += len(rows)
				continue
			}
			return nil, err
		}

		term, created, err := im.findOrCreateTerm(ctx, user.ID, key.semester, rows)
		if err != nil {
			im.logger.Error().Err(err).Str("studentId", key.studentID).Int("semester", key.semester).Msg("Failed to resolve term")
			summary.SkippedRows += len(rows)
			continue
		}
		if created {
			summary.TermsCreated++
		} else {
			summary.TermsReused++
		}

		for _, row := range rows {
			exists, err := im.subjects.ExistsInTerm(ctx, term.ID, row.subjectCode)
			if err != nil {
				im.logger.Error().Err(err).Int("row", row.line).Msg("Failed to check subject existence")
				summary.SkippedRows++
				continue
			}
			if exists {
				summary.SubjectsSkipped++
				continue
			}

			subject := &models.Subject{
				ID:          uuid.New(),
				TermID:      term.ID,
				SubjectName: row.subjectName,
				SubjectCode: row.subjectCode,
				Credits:     row.credits,
				Marks:       row.marks,
				Grade:       GradeFromMarks(row.marks),
			}
			if err := im.subjects.Create(ctx, subject); err != nil {
				im.logger.Error().Err(err).Int("row", row.line).Str("subjectCode", row.subjectCode).Msg("Failed to create subject")
				summary.SkippedRows++
				continue
			}
			summary.SubjectsCreated++
		}
	}

	im.logger.Info().
		Int("rows", summary.TotalRows).
		Int("termsCreated", summary.TermsCreated).
		Int("termsReused", summary.TermsReused).
		Int("subjectsCreated", summary.SubjectsCreated).
		Int("subjectsSkipped", summary.SubjectsSkipped).
		Int("skippedRows", summary.SkippedRows).
		Msg("Records import finished")

	return summary, nil
}

func (im *RecordsImporter) findOrCreateTerm(ctx context.Context, userID uuid.UUID, semester int, rows []recordRow) (*models.AcademicTerm, bool, error) {
	term, err := im.terms.GetByUserSemesterYear(ctx, userID, semester, im.year)
	if err == nil {
		return term, false, nil
	}
	if !errors.Is(err, repositories.ErrTermNotFound) {
		return nil, false, err
	}

	marks := make([]float64, 0, len(rows))
	for _, row := range rows {
		marks = append(marks, row.marks)
	}

	term = &models.AcademicTerm{
		ID:       uuid.New(),
		UserID:   userID,
		Semester: semester,
		Year:     im.year,
		GPA:      TermGPA(marks),
	}
	if err := im.terms.Create(ctx, term); err != nil {
		if errors.Is(err, repositories.ErrTermExists) {
			// Created concurrently; fall back to the existing row.
			existing, getErr := im.terms.GetByUserSemesterYear(ctx, userID, semester, im.year)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return term, true, nil
}

func parseRecordRow(line int, raw map[string]string) (recordRow, error) {
	row := recordRow{
		line:        line,
		studentID:   raw["student_id"],
		subjectCode: raw["subject_code"],
		subjectName: raw["subject_name"],
	}
	if row.studentID == "" || row.subjectCode == "" || row.subjectName == "" {
		return row, fmt.Errorf("missing required fields")
	}

	semester, err := strconv.Atoi(raw["semester"])
	if err != nil || semester < 1 || semester > 10 {
		return row, fmt.Errorf("invalid semester %q", raw["semester"])
	}
	row.semester = semester

	marks, err := strconv.ParseFloat(raw["Total_marks"], 64)
	if err != nil || marks < 0 || marks > 100 {
		return row, fmt.Errorf("invalid Total_marks %q", raw["Total_marks"])
	}
	row.marks = marks

	if raw["credits"] != "" {
		credits, err := strconv.Atoi(raw["credits"])
		if err != nil || credits < 0 {
			return row, fmt.Errorf("invalid credits %q", raw["credits"])
		}
		row.credits = credits
	}

	return row, nil
}
