package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/avolkov/dirscope/internal/core/domain"
)

type fakeDirectoryScanner struct {
	records []*domain.FileRecord
	err     error
}

func (f *fakeDirectoryScanner) Scan(context.Context, string) ([]*domain.FileRecord, error) {
	return f.records, f.err
}

func (f *fakeDirectoryScanner) Describe(context.Context, string) (*domain.FileRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records[0], nil
}

type passthroughClassifier struct{}

func (passthroughClassifier) Classify(_ context.Context, records []*domain.FileRecord) []*domain.FileRecord {
	for _, rec := range records {
		if rec.Category == "" {
			rec.Category = domain.CategoryOther
		}
	}
	return records
}

type fakeScanRepo struct {
	savedSummary *domain.ScanSummary
	savedFiles   []*domain.FileRecord
	latest       *domain.ScanSummary
	files        []*domain.FileRecord
	latestErr    error
}

func (f *fakeScanRepo) SaveScan(_ context.Context, summary *domain.ScanSummary, files []*domain.FileRecord) error {
	f.savedSummary = summary
	f.savedFiles = files
	return nil
}

func (f *fakeScanRepo) LatestScan(context.Context) (*domain.ScanSummary, error) {
	return f.latest, f.latestErr
}

func (f *fakeScanRepo) ListFilesByScan(context.Context, string) ([]*domain.FileRecord, error) {
	return f.files, nil
}

type fakeQueue struct {
	published []string
	err       error
}

func (f *fakeQueue) PublishScanRequested(_ context.Context, directoryPath string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, directoryPath)
	return nil
}

func (f *fakeQueue) SubscribeScanRequested(context.Context, func(context.Context, string) error) error {
	return nil
}

func TestScanDirectoryPersistsSummaryWithTotals(t *testing.T) {
	repo := &fakeScanRepo{}
	scanner := &fakeDirectoryScanner{records: []*domain.FileRecord{
		{Name: "a.txt", SizeBytes: 10},
		{Name: "b.txt", SizeBytes: 32},
	}}
	uc := NewScanFilesUseCase(scanner, passthroughClassifier{}, repo, &fakeQueue{}, nil)

	summary, files, err := uc.ScanDirectory(context.Background(), "/data/docs")
	if err != nil {
		t.Fatalf("ScanDirectory() error = %v", err)
	}
	if summary.FileCount != 2 || summary.TotalSize != 42 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.ID == "" {
		t.Fatal("summary ID is empty")
	}
	if repo.savedSummary != summary || len(repo.savedFiles) != 2 {
		t.Fatal("scan was not persisted")
	}
	for _, rec := range files {
		if rec.Category == "" {
			t.Fatalf("%s not classified", rec.Name)
		}
	}
}

func TestScanDirectoryRejectsEmptyPath(t *testing.T) {
	uc := NewScanFilesUseCase(&fakeDirectoryScanner{}, passthroughClassifier{}, &fakeScanRepo{}, &fakeQueue{}, nil)

	_, _, err := uc.ScanDirectory(context.Background(), "  ")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestScanDirectoryPropagatesScannerError(t *testing.T) {
	scanner := &fakeDirectoryScanner{err: errors.New("permission denied")}
	uc := NewScanFilesUseCase(scanner, passthroughClassifier{}, &fakeScanRepo{}, &fakeQueue{}, nil)

	if _, _, err := uc.ScanDirectory(context.Background(), "/root/secret"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRequestScanPublishes(t *testing.T) {
	queue := &fakeQueue{}
	uc := NewScanFilesUseCase(&fakeDirectoryScanner{}, passthroughClassifier{}, &fakeScanRepo{}, queue, nil)

	if err := uc.RequestScan(context.Background(), "/data/docs"); err != nil {
		t.Fatalf("RequestScan() error = %v", err)
	}
	if len(queue.published) != 1 || queue.published[0] != "/data/docs" {
		t.Fatalf("published = %v", queue.published)
	}
}

func TestLatestResultsPropagatesNotFound(t *testing.T) {
	repo := &fakeScanRepo{latestErr: domain.WrapError(domain.ErrScanNotFound, "latest scan", errors.New("no rows"))}
	uc := NewScanFilesUseCase(&fakeDirectoryScanner{}, passthroughClassifier{}, repo, &fakeQueue{}, nil)

	_, _, err := uc.LatestResults(context.Background())
	if !errors.Is(err, domain.ErrScanNotFound) {
		t.Fatalf("error = %v, want ErrScanNotFound", err)
	}
}
