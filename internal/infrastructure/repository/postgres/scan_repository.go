package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/avolkov/dirscope/internal/core/domain"
)

type ScanRepository struct {
	db *sql.DB
}

func NewScanRepository(db *sql.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ScanRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082901)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS scan_history (
	id TEXT PRIMARY KEY,
	directory_path TEXT NOT NULL,
	scan_date TIMESTAMPTZ NOT NULL,
	file_count BIGINT NOT NULL,
	total_size BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS file_metadata (
	id BIGSERIAL PRIMARY KEY,
	scan_id TEXT NOT NULL REFERENCES scan_history(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	path TEXT NOT NULL,
	relative_path TEXT NOT NULL,
	directory TEXT NOT NULL,
	extension TEXT NOT NULL,
	size_bytes BIGINT NOT NULL,
	size_display TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	modified_at TIMESTAMPTZ NOT NULL,
	accessed_at TIMESTAMPTZ NOT NULL,
	mime_type TEXT NOT NULL,
	depth INT NOT NULL,
	is_executable BOOLEAN NOT NULL,
	is_readable BOOLEAN NOT NULL,
	is_writable BOOLEAN NOT NULL,
	category TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scan_history_scan_date ON scan_history(scan_date DESC);
CREATE INDEX IF NOT EXISTS idx_file_metadata_scan_id ON file_metadata(scan_id);
CREATE INDEX IF NOT EXISTS idx_file_metadata_category ON file_metadata(category);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// SaveScan writes the summary row and all file rows in one transaction, so a
// scan is either fully recorded or absent.
func (r *ScanRepository) SaveScan(ctx context.Context, summary *domain.ScanSummary, files []*domain.FileRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin scan tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
INSERT INTO scan_history (id, directory_path, scan_date, file_count, total_size)
VALUES ($1,$2,$3,$4,$5)
`, summary.ID, summary.DirectoryPath, summary.ScanDate, summary.FileCount, summary.TotalSize)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}

	for _, file := range files {
		_, err = tx.ExecContext(ctx, `
INSERT INTO file_metadata (
	scan_id, name, path, relative_path, directory, extension, size_bytes, size_display,
	created_at, modified_at, accessed_at, mime_type, depth, is_executable, is_readable, is_writable, category
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
`,
			summary.ID, file.Name, file.Path, file.RelativePath, file.Directory, file.Extension,
			file.SizeBytes, file.SizeDisplay, file.Created, file.Modified, file.Accessed,
			file.MimeType, file.Depth, file.IsExecutable, file.IsReadable, file.IsWritable, file.Category,
		)
		if err != nil {
			return fmt.Errorf("insert file metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scan tx: %w", err)
	}
	return nil
}

func (r *ScanRepository) LatestScan(ctx context.Context) (*domain.ScanSummary, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, directory_path, scan_date, file_count, total_size
FROM scan_history
ORDER BY scan_date DESC
LIMIT 1
`)

	var summary domain.ScanSummary
	err := row.Scan(&summary.ID, &summary.DirectoryPath, &summary.ScanDate, &summary.FileCount, &summary.TotalSize)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrScanNotFound, "latest scan", err)
		}
		return nil, fmt.Errorf("scan summary row: %w", err)
	}
	return &summary, nil
}

func (r *ScanRepository) ListFilesByScan(ctx context.Context, scanID string) ([]*domain.FileRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT name, path, relative_path, directory, extension, size_bytes, size_display,
	created_at, modified_at, accessed_at, mime_type, depth, is_executable, is_readable, is_writable, category
FROM file_metadata
WHERE scan_id = $1
ORDER BY id
`, scanID)
	if err != nil {
		return nil, fmt.Errorf("query file metadata: %w", err)
	}
	defer rows.Close()

	files := make([]*domain.FileRecord, 0)
	for rows.Next() {
		var file domain.FileRecord
		err := rows.Scan(
			&file.Name, &file.Path, &file.RelativePath, &file.Directory, &file.Extension,
			&file.SizeBytes, &file.SizeDisplay, &file.Created, &file.Modified, &file.Accessed,
			&file.MimeType, &file.Depth, &file.IsExecutable, &file.IsReadable, &file.IsWritable, &file.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("scan file metadata row: %w", err)
		}
		files = append(files, &file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file metadata rows: %w", err)
	}
	return files, nil
}
