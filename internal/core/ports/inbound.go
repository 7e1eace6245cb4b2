package ports

import (
	"context"
	"io"

	"github.com/avolkov/dirscope/internal/core/domain"
)

// FileClassifier is the inbound contract for the categorization pipeline.
// It mutates the given records in place and returns the same slice; every
// returned record has a non-empty category.
type FileClassifier interface {
	Classify(ctx context.Context, records []*domain.FileRecord) []*domain.FileRecord
}

// ScanService orchestrates scan, classification and persistence.
type ScanService interface {
	ScanDirectory(ctx context.Context, root string) (*domain.ScanSummary, []*domain.FileRecord, error)
	RequestScan(ctx context.Context, root string) error
	LatestResults(ctx context.Context) (*domain.ScanSummary, []*domain.FileRecord, error)
}

// FileSearcher resolves a free-text query plus structured filters against a
// categorized record set. It never fails; query-time errors degrade
// internally to substring matching.
type FileSearcher interface {
	Search(records []*domain.FileRecord, query string, filter domain.SearchFilter) []*domain.FileRecord
}

// FileUploader stores a single uploaded file and classifies it.
type FileUploader interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.FileRecord, error)
}

// InsightService derives statistical and narrative insights from a scan.
type InsightService interface {
	Analyze(ctx context.Context, records []*domain.FileRecord) (*domain.FileInsights, error)
}

// StatsService aggregates a record set for visualization.
type StatsService interface {
	Aggregate(records []*domain.FileRecord) (*domain.DirectoryStats, error)
}
