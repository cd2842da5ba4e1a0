package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/pr17-lab/sata-backend/internal/app/models"
	"github.com/pr17-lab/sata-backend/internal/app/repositories"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTermGPA(t *testing.T) {
	tests := []struct {
		name  string
		marks []float64
		want  float64
	}{
		{name: "no marks", marks: nil, want: 0},
		{name: "single subject", marks: []float64{82.0}, want: 8.2},
		{name: "mean of several subjects", marks: []float64{80, 90, 70}, want: 8.0},
		{name: "rounded to two decimals", marks: []float64{81, 82, 84}, want: 8.23},
		{name: "capped at 9.99", marks: []float64{100, 100}, want: 9.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TermGPA(tt.marks))
		})
	}
}

func TestGradeFromMarks(t *testing.T) {
	assert.Equal(t, "A+", GradeFromMarks(95))
	assert.Equal(t, "A", GradeFromMarks(80))
	assert.Equal(t, "B+", GradeFromMarks(70))
	assert.Equal(t, "B", GradeFromMarks(60))
	assert.Equal(t, "C", GradeFromMarks(50))
	assert.Equal(t, "D", GradeFromMarks(40))
	assert.Equal(t, "F", GradeFromMarks(39.9))
}

func TestReadCSV(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"))
		assert.Error(t, err)
	})

	t.Run("parses header and trims cells", func(t *testing.T) {
		path := writeTempCSV(t, "a, b ,c\n1, two ,3\n")
		table, err := ReadCSV(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, table.Headers)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "two", table.Rows[0]["b"])
	})

	t.Run("require columns reports what is missing", func(t *testing.T) {
		path := writeTempCSV(t, "a,b\n1,2\n")
		table, err := ReadCSV(path)
		require.NoError(t, err)
		assert.NoError(t, table.RequireColumns("a", "b"))
		err = table.RequireColumns("a", "c", "d")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "c, d")
	})
}

func TestValidateRoster(t *testing.T) {
	t.Run("clean file", func(t *testing.T) {
		path := writeTempCSV(t,
			"student_id,name,email,department,current_semester,status\n"+
				"S1,Ada,ada@x.edu,CSE,3,active\n"+
				"S2,Ben,ben@x.edu,EEE,5,inactive\n")
		table, err := ReadCSV(path)
		require.NoError(t, err)
		assert.Empty(t, ValidateRoster(table))
	})

	t.Run("flags duplicates and bad ranges", func(t *testing.T) {
		path := writeTempCSV(t,
			"student_id,name,email,department,current_semester,status\n"+
				"S1,Ada,ada@x.edu,CSE,3,active\n"+
				"S1,Ada2,ADA@x.edu,CSE,11,active\n"+
				"S3,,carol@x.edu,EEE,2,active\n")
		table, err := ReadCSV(path)
		require.NoError(t, err)

		issues := ValidateRoster(table)
		require.Len(t, issues, 4)
		assert.Contains(t, issues[0], "duplicate email")
		assert.Contains(t, issues[1], "duplicate student_id")
		assert.Contains(t, issues[2], "out of range")
		assert.Contains(t, issues[3], "missing name")
	})

	t.Run("missing columns short-circuit", func(t *testing.T) {
		path := writeTempCSV(t, "student_id,name\nS1,Ada\n")
		table, err := ReadCSV(path)
		require.NoError(t, err)
		issues := ValidateRoster(table)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "missing required columns")
	})
}

func TestValidateRecords(t *testing.T) {
	t.Run("clean file", func(t *testing.T) {
		path := writeTempCSV(t,
			"student_id,semester,subject_code,subject_name,credits,Total_marks,pass_fail\n"+
				"S1,1,CS101,Programming,4,82,pass\n")
		table, err := ReadCSV(path)
		require.NoError(t, err)
		assert.Empty(t, ValidateRecords(table))
	})

	t.Run("flags out-of-range values", func(t *testing.T) {
		path := writeTempCSV(t,
			"student_id,semester,subject_code,subject_name,credits,Total_marks,pass_fail\n"+
				"S1,0,CS101,Programming,4,101,pass\n"+
				"S1,2,MA101,Calculus,-1,55,pass\n")
		table, err := ReadCSV(path)
		require.NoError(t, err)

		issues := ValidateRecords(table)
		require.Len(t, issues, 3)
		assert.Contains(t, issues[0], "semester")
		assert.Contains(t, issues[1], "Total_marks")
		assert.Contains(t, issues[2], "credits")
	})
}

type fakeRosterUsers struct {
	users []*models.User
}

func (f *fakeRosterUsers) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRosterUsers) Create(_ context.Context, user *models.User) error {
	f.users = append(f.users, user)
	return nil
}

type fakeRosterProfiles struct {
	profiles []*models.StudentProfile
}

func (f *fakeRosterProfiles) Create(_ context.Context, profile *models.StudentProfile) error {
	f.profiles = append(f.profiles, profile)
	return nil
}

type fakeRecordsUsers struct {
	byStudentID map[string]*models.User
}

func (f *fakeRecordsUsers) GetByStudentID(_ context.Context, studentID string) (*models.User, error) {
	if u, ok := f.byStudentID[studentID]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

type fakeRecordsTerms struct {
	terms []*models.AcademicTerm
}

func (f *fakeRecordsTerms) Create(_ context.Context, term *models.AcademicTerm) error {
	for _, t := range f.terms {
		if t.UserID == term.UserID && t.Semester == term.Semester && t.Year == term.Year {
			return repositories.ErrTermExists
		}
	}
	f.terms = append(f.terms, term)
	return nil
}

func (f *fakeRecordsTerms) GetByUserSemesterYear(_ context.Context, userID uuid.UUID, semester, year int) (*models.AcademicTerm, error) {
	for _, t := range f.terms {
		if t.UserID == userID && t.Semester == semester && t.Year == year {
			return t, nil
		}
	}
	return nil, repositories.ErrTermNotFound
}

type fakeRecordsSubjects struct {
	subjects []*models.Subject
}

func (f *fakeRecordsSubjects) Create(_ context.Context, subject *models.Subject) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakeRecordsSubjects) ExistsInTerm(_ context.Context, termID uuid.UUID, subjectCode string) (bool, error) {
	for _, s := range f.subjects {
		if s.TermID == termID && s.SubjectCode == subjectCode {
			return true, nil
		}
	}
	return false, nil
}

func TestStudentImport(t *testing.T) {
	ctx := context.Background()
	header := "student_id,name,email,department,current_semester,status\n"

	t.Run("duplicate email keeps the first row", func(t *testing.T) {
		path := writeTempCSV(t, header+
			"S1,Ada,ada@x.edu,CSE,3,active\n"+
			"S2,Imposter,ADA@x.edu,EEE,5,active\n"+
			"S3,Ben,ben@x.edu,EEE,2,inactive\n")

		users := &fakeRosterUsers{}
		profiles := &fakeRosterProfiles{}
		im := NewStudentImporter(users, profiles, zerolog.Nop())

		summary, err := im.Import(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Created)
		assert.Equal(t, 1, summary.SkippedInvalid)

		require.Len(t, profiles.profiles, 2)
		assert.Equal(t, "Ada", profiles.profiles[0].Name)
		assert.Equal(t, "CSE", profiles.profiles[0].Branch)
		assert.Equal(t, 3, profiles.profiles[0].Semester)

		require.Len(t, users.users, 2)
		assert.True(t, users.users[0].IsActive)
		assert.False(t, users.users[1].IsActive)
	})

	t.Run("existing email is skipped", func(t *testing.T) {
		path := writeTempCSV(t, header+"S1,Ada,ada@x.edu,CSE,3,active\n")

		users := &fakeRosterUsers{users: []*models.User{{ID: uuid.New(), Email: "ada@x.edu"}}}
		im := NewStudentImporter(users, &fakeRosterProfiles{}, zerolog.Nop())

		summary, err := im.Import(ctx, path)
		require.NoError(t, err)
		assert.Zero(t, summary.Created)
		assert.Equal(t, 1, summary.SkippedExisting)
		assert.Len(t, users.users, 1)
	})
}

func TestRecordsImportIdempotent(t *testing.T) {
	ctx := context.Background()
	path := writeTempCSV(t,
		"student_id,semester,subject_code,subject_name,credits,Total_marks,pass_fail\n"+
			"S1,1,CS101,Programming,4,82,pass\n"+
			"S1,1,MA101,Calculus,3,74,pass\n")

	sid := "S1"
	users := &fakeRecordsUsers{byStudentID: map[string]*models.User{
		"S1": {ID: uuid.New(), StudentID: &sid},
	}}
	terms := &fakeRecordsTerms{}
	subjects := &fakeRecordsSubjects{}
	im := NewRecordsImporter(users, terms, subjects, 0, zerolog.Nop())

	first, err := im.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TermsCreated)
	assert.Equal(t, 2, first.SubjectsCreated)
	require.Len(t, terms.terms, 1)
	assert.Equal(t, 7.8, terms.terms[0].GPA)
	assert.Equal(t, DefaultAcademicYear, terms.terms[0].Year)

	second, err := im.Import(ctx, path)
	require.NoError(t, err)
	assert.Zero(t, second.TermsCreated)
	assert.Equal(t, 1, second.TermsReused)
	assert.Zero(t, second.SubjectsCreated)
	assert.Equal(t, 2, second.SubjectsSkipped)

	assert.Len(t, terms.terms, 1)
	assert.Len(t, subjects.subjects, 2)
}

func TestParseRecordRow(t *testing.T) {
	valid := map[string]string{
		"student_id":   "S1",
		"semester":     "3",
		"subject_code": "CS101",
		"subject_name": "Programming",
		"credits":      "4",
		"Total_marks":  "82.5",
	}

	row, err := parseRecordRow(2, valid)
	require.NoError(t, err)
	assert.Equal(t, 3, row.semester)
	assert.Equal(t, 4, row.credits)
	assert.Equal(t, 82.5, row.marks)

	t.Run("rejects bad marks", func(t *testing.T) {
		bad := map[string]string{}
		for k, v := range valid {
			bad[k] = v
		}
		bad["Total_marks"] = "105"
		_, err := parseRecordRow(2, bad)
		assert.Error(t, err)
	})

	t.Run("missing credits default to zero", func(t *testing.T) {
		partial := map[string]string{}
		for k, v := range valid {
			partial[k] = v
		}
		partial["credits"] = ""
		row, err := parseRecordRow(2, partial)
		require.NoError(t, err)
		assert.Zero(t, row.credits)
	})
}
