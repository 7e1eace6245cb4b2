package ports

import (
	"context"
	"io"

	"github.com/avolkov/dirscope/internal/core/domain"
)

// DirectoryScanner walks a directory tree and describes every reachable file.
// Scanning fails only for an invalid or inaccessible root; individual
// unreadable files are skipped.
type DirectoryScanner interface {
	Scan(ctx context.Context, root string) ([]*domain.FileRecord, error)
	Describe(ctx context.Context, path string) (*domain.FileRecord, error)
}

// ScanRepository persists scan history and per-file metadata.
type ScanRepository interface {
	SaveScan(ctx context.Context, summary *domain.ScanSummary, files []*domain.FileRecord) error
	LatestScan(ctx context.Context) (*domain.ScanSummary, error)
	ListFilesByScan(ctx context.Context, scanID string) ([]*domain.FileRecord, error)
}

// ObjectStorage stores uploaded files.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes asynchronous scan requests.
type MessageQueue interface {
	PublishScanRequested(ctx context.Context, directoryPath string) error
	SubscribeScanRequested(ctx context.Context, handler func(context.Context, string) error) error
}

// ClusterGrouper fits an unsupervised grouping model on the whole corpus of
// filenames and assigns a cluster id to each target name. A fresh model is
// fit on every call; cluster ids have no meaning across calls.
type ClusterGrouper interface {
	Group(corpus []string, targets []string) ([]int, error)
}

// SimilarityRanker fits a per-batch text model over the given documents and
// scores each against the query. Scores align with docs by index.
type SimilarityRanker interface {
	Rank(query string, docs []string) ([]float64, error)
}

// SearchObserver receives the resolution tier and result count of every
// search call. Implementations must be cheap; the resolver calls it inline.
type SearchObserver interface {
	ObserveSearch(tier string, results int)
}

// InsightGenerator produces a natural-language summary of scan statistics.
type InsightGenerator interface {
	Summarize(ctx context.Context, dataSummary string) (*domain.InsightSummary, error)
}

// ReportWriter renders a scan into a downloadable report.
type ReportWriter interface {
	Write(w io.Writer, summary *domain.ScanSummary, files []*domain.FileRecord) error
}
