package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/avolkov/dirscope/internal/core/domain"
)

func TestScanRepositorySaveScanWritesSummaryAndFiles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewScanRepository(db)
	now := time.Now().UTC()
	summary := &domain.ScanSummary{
		ID:            "scan-1",
		DirectoryPath: "/data/docs",
		ScanDate:      now,
		FileCount:     1,
		TotalSize:     42,
	}
	file := &domain.FileRecord{
		Name:         "notes.txt",
		Path:         "/data/docs/notes.txt",
		RelativePath: "notes.txt",
		Directory:    "/data/docs",
		Extension:    "txt",
		SizeBytes:    42,
		SizeDisplay:  "42.00 B",
		Created:      now,
		Modified:     now,
		Accessed:     now,
		MimeType:     "text/plain",
		Category:     domain.CategoryDocuments,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO scan_history").
		WithArgs("scan-1", "/data/docs", now, 1, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO file_metadata").
		WithArgs(
			"scan-1", "notes.txt", "/data/docs/notes.txt", "notes.txt", "/data/docs", "txt",
			int64(42), "42.00 B", now, now, now, "text/plain", 0, false, false, false,
			domain.CategoryDocuments,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.SaveScan(context.Background(), summary, []*domain.FileRecord{file}); err != nil {
		t.Fatalf("SaveScan() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestScanRepositoryLatestScanMapsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewScanRepository(db)
	mock.ExpectQuery("FROM scan_history").
		WillReturnRows(sqlmock.NewRows([]string{"id", "directory_path", "scan_date", "file_count", "total_size"}))

	_, err = repo.LatestScan(context.Background())
	if !errors.Is(err, domain.ErrScanNotFound) {
		t.Fatalf("LatestScan() error = %v, want ErrScanNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestScanRepositoryListFilesByScan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewScanRepository(db)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"name", "path", "relative_path", "directory", "extension", "size_bytes", "size_display",
		"created_at", "modified_at", "accessed_at", "mime_type", "depth",
		"is_executable", "is_readable", "is_writable", "category",
	}).AddRow(
		"report.pdf", "/data/report.pdf", "report.pdf", "/data", "pdf", int64(1024), "1.00 KB",
		now, now, now, "application/pdf", 0, false, true, true, domain.CategoryDocuments,
	)

	mock.ExpectQuery("FROM file_metadata").
		WithArgs("scan-1").
		WillReturnRows(rows)

	files, err := repo.ListFilesByScan(context.Background(), "scan-1")
	if err != nil {
		t.Fatalf("ListFilesByScan() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Name != "report.pdf" || files[0].Category != domain.CategoryDocuments {
		t.Fatalf("unexpected file row: %+v", files[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
