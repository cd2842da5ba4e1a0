// Package repositories contains the data access layer over pgx.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repository instances for dependency wiring.
type Repositories struct {
	UserRepository    *UserRepository
	StudentRepository *StudentRepository
	TermRepository    *TermRepository
	SubjectRepository *SubjectRepository
	BackupRepository  *BackupRepository
	SystemRepository  *SystemRepository
}

// NewRepositories creates all repositories sharing one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		StudentRepository: NewStudentRepository(db),
		TermRepository:    NewTermRepository(db),
		SubjectRepository: NewSubjectRepository(db),
		BackupRepository:  NewBackupRepository(db),
		SystemRepository:  NewSystemRepository(db),
	}
}
