package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pr17-lab/sata-backend/internal/pkg/logger"
)

// BackupTimestampFormat names shadow tables, e.g. users_backup_20240115_103000.
const BackupTimestampFormat = "20060102_150405"

// CoreTables lists the tracked tables in parent-before-child order. Restore
// deletes in reverse and reinserts in this order so foreign keys hold.
var CoreTables = []string{"users", "student_profiles", "academic_terms", "subjects"}

// BackupRepository copies full table contents into timestamped shadow tables
// and restores from them. Used by the satactl backup/restore commands.
type BackupRepository struct {
	db *pgxpool.Pool
}

// NewBackupRepository creates a new BackupRepository
func NewBackupRepository(db *pgxpool.Pool) *BackupRepository {
	return &BackupRepository{db: db}
}

func shadowName(table, timestamp string) string {
	return fmt.Sprintf("%s_backup_%s", table, timestamp)
}

// BackupTables copies each table into a shadow table stamped with now.
// Returns the timestamp identifying the backup set.
func (r *BackupRepository) BackupTables(ctx context.Context, tables []string) (string, error) {
	timestamp := time.Now().Format(BackupTimestampFormat)

	for _, table := range tables {
		shadow := shadowName(table, timestamp)
		// Table names come from the fixed CoreTables list, not user input.
		query := fmt.Sprintf(`CREATE TABLE %s AS TABLE %s`, shadow, table)
		if _, err := r.db.Exec(ctx, query); err != nil {
			return "", fmt.Errorf("error backing up table %s: %w", table, err)
		}

		var count int64
		if err := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, shadow)).Scan(&count); err != nil {
			return "", fmt.Errorf("error counting backup table %s: %w", shadow, err)
		}
		logger.Info().Str("table", table).Str("shadow", shadow).Int64("rows", count).Msg("Table backed up")
	}

	return timestamp, nil
}

// ShadowTableExists checks whether a backup table exists for the timestamp.
func (r *BackupRepository) ShadowTableExists(ctx context.Context, table, timestamp string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
		shadowName(table, timestamp)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking shadow table: %w", err)
	}
	return exists, nil
}

// RestoreTables truncates the live tables and reinserts every row from the
// shadow copies, all within one transaction. Children are cleared first and
// repopulated last.
func (r *BackupRepository) RestoreTables(ctx context.Context, tables []string, timestamp string) error {
	// Verify the whole backup set exists before touching live data.
	for _, table := range tables {
		exists, err := r.ShadowTableExists(ctx, table, timestamp)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("backup table %s not found", shadowName(table, timestamp))
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin restore transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Delete child tables first.
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, tables[i])); err != nil {
			return fmt.Errorf("error clearing table %s: %w", tables[i], err)
		}
	}

	// Reinsert parents first.
	for _, table := range tables {
		shadow := shadowName(table, timestamp)
		tag, err := tx.Exec(ctx, fmt.Sprintf(`INSERT INTO %s SELECT * FROM %s`, table, shadow))
		if err != nil {
			return fmt.Errorf("error restoring table %s: %w", table, err)
		}
		logger.Info().Str("table", table).Int64("rows", tag.RowsAffected()).Msg("Table restored")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit restore transaction: %w", err)
	}

	return nil
}

// ListBackupTimestamps returns the distinct backup-set timestamps present in
// the database, newest first.
func (r *BackupRepository) ListBackupTimestamps(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT right(table_name, 15)
		FROM information_schema.tables
		WHERE table_name LIKE '%\_backup\_%' ESCAPE '\'
		ORDER BY 1 DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("error listing backups: %w", err)
	}
	defer rows.Close()

	var timestamps []string
	for rows.Next() {
		var ts string
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("error scanning backup timestamp: %w", err)
		}
		timestamps = append(timestamps, ts)
	}

	return timestamps, rows.Err()
}
