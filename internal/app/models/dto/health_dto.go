package dto

import "time"

// HealthStatus is the basic health check response.
type HealthStatus struct {
	Status    string    `json:"status" example:"healthy"`
	Database  string    `json:"database" example:"connected"`
	Timestamp time.Time `json:"timestamp"`
}

// TableCounts reports row counts of the core tables.
type TableCounts struct {
	Users         int64 `json:"usersCount"`
	Profiles      int64 `json:"profilesCount"`
	AcademicTerms int64 `json:"academicTermsCount"`
	Subjects      int64 `json:"subjectsCount"`
}

// DetailedHealthStatus is the extended health check response.
type DetailedHealthStatus struct {
	Status    string       `json:"status"`
	Database  string       `json:"database"`
	Timestamp time.Time    `json:"timestamp"`
	Tables    *TableCounts `json:"tables,omitempty"`
}
