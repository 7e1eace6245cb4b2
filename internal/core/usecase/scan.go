package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/dirscope/internal/core/domain"
	"github.com/avolkov/dirscope/internal/core/ports"
)

type ScanFilesUseCase struct {
	scanner    ports.DirectoryScanner
	classifier ports.FileClassifier
	repo       ports.ScanRepository
	queue      ports.MessageQueue
	logger     *slog.Logger
}

func NewScanFilesUseCase(
	scanner ports.DirectoryScanner,
	classifier ports.FileClassifier,
	repo ports.ScanRepository,
	queue ports.MessageQueue,
	logger *slog.Logger,
) *ScanFilesUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScanFilesUseCase{
		scanner:    scanner,
		classifier: classifier,
		repo:       repo,
		queue:      queue,
		logger:     logger,
	}
}

// ScanDirectory walks root, classifies every discovered file and persists the
// scan with its file metadata.
func (uc *ScanFilesUseCase) ScanDirectory(ctx context.Context, root string) (*domain.ScanSummary, []*domain.FileRecord, error) {
	if strings.TrimSpace(root) == "" {
		return nil, nil, domain.WrapError(domain.ErrInvalidInput, "scan directory", errors.New("empty directory path"))
	}

	records, err := uc.scanner.Scan(ctx, root)
	if err != nil {
		return nil, nil, fmt.Errorf("scan directory: %w", err)
	}

	records = uc.classifier.Classify(ctx, records)

	var totalSize int64
	for _, rec := range records {
		totalSize += rec.SizeBytes
	}
	summary := &domain.ScanSummary{
		ID:            uuid.NewString(),
		DirectoryPath: root,
		ScanDate:      time.Now().UTC(),
		FileCount:     len(records),
		TotalSize:     totalSize,
	}

	if err := uc.repo.SaveScan(ctx, summary, records); err != nil {
		return nil, nil, fmt.Errorf("save scan: %w", err)
	}

	uc.logger.Info("scan complete", "scan_id", summary.ID, "path", root, "files", len(records))
	return summary, records, nil
}

// RequestScan queues a directory for asynchronous scanning by the worker.
func (uc *ScanFilesUseCase) RequestScan(ctx context.Context, root string) error {
	if strings.TrimSpace(root) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "request scan", errors.New("empty directory path"))
	}
	if err := uc.queue.PublishScanRequested(ctx, root); err != nil {
		return fmt.Errorf("publish scan request: %w", err)
	}
	return nil
}

// LatestResults loads the most recent persisted scan and its files.
func (uc *ScanFilesUseCase) LatestResults(ctx context.Context) (*domain.ScanSummary, []*domain.FileRecord, error) {
	summary, err := uc.repo.LatestScan(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load latest scan: %w", err)
	}
	files, err := uc.repo.ListFilesByScan(ctx, summary.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load scan files: %w", err)
	}
	return summary, files, nil
}
