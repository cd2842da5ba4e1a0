package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// Column sets of the two supported CSV exports.
var (
	RosterColumns  = []string{"student_id", "name", "email", "department", "current_semester", "status"}
	RecordsColumns = []string{"student_id", "semester", "subject_code", "subject_name", "credits", "Total_marks", "pass_fail"}
)

// ValidateRoster checks a student roster export before import. Returns one
// message per problem found; an empty slice means the file is importable.
func ValidateRoster(table *Table) []string {
	var issues []string
	if err := table.RequireColumns(RosterColumns...); err != nil {
		return []string{err.Error()}
	}

	seenEmails := make(map[string]int)
	seenStudentIDs := make(map[string]int)

	for i, row := range table.Rows {
		line := i + 2 // 1-based, after the header

		for _, col := range []string{"student_id", "name", "email"} {
			if row[col] == "" {
				issues = append(issues, fmt.Sprintf("row %d: missing %s", line, col))
			}
		}

		if email := strings.ToLower(row["email"]); email != "" {
			if first, ok := seenEmails[email]; ok {
				issues = append(issues, fmt.Sprintf("row %d: duplicate email %q (first seen at row %d)", line, row["email"], first))
			} else {
				seenEmails[email] = line
			}
		}

		if sid := row["student_id"]; sid != "" {
			if first, ok := seenStudentIDs[sid]; ok {
				issues = append(issues, fmt.Sprintf("row %d: duplicate student_id %q (first seen at row %d)", line, sid, first))
			} else {
				seenStudentIDs[sid] = line
			}
		}

		if sem := row["current_semester"]; sem != "" {
			if n, err := strconv.Atoi(sem); err != nil || n < 1 || n > 10 {
				issues = append(issues, fmt.Sprintf("row %d: current_semester %q out of range 1-10", line, sem))
			}
		}
	}

	return issues
}

// ValidateRecords checks an academic-records export before import.
func ValidateRecords(table *Table) []string {
	var issues []string
	if err := table.RequireColumns(RecordsColumns...); err != nil {
		return []string{err.Error()}
	}

	for i, row := range table.Rows {
		line := i + 2

		for _, col := range []string{"student_id", "semester", "subject_code", "subject_name"} {
			if row[col] == "" {
				issues = append(issues, fmt.Sprintf("row %d: missing %s", line, col))
			}
		}

		if sem := row["semester"]; sem != "" {
			if n, err := strconv.Atoi(sem); err != nil || n < 1 || n > 10 {
				issues = append(issues, fmt.Sprintf("row %d: semester %q out of range 1-10", line, sem))
			}
		}

		if marks := row["Total_marks"]; marks != "" {
			if m, err := strconv.ParseFloat(marks, 64); err != nil || m < 0 || m > 100 {
				issues = append(issues, fmt.Sprintf("row %d: Total_marks %q out of range 0-100", line, marks))
			}
		}

		if credits := row["credits"]; credits != "" {
			if n, err := strconv.Atoi(credits); err != nil || n < 0 {
				issues = append(issues, fmt.Sprintf("row %d: credits %q is not a non-negative integer", line, credits))
			}
		}
	}

	return issues
}
