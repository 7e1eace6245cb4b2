package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/avolkov/dirscope/internal/core/domain"
	"github.com/avolkov/dirscope/internal/core/ports"
)

type UploadFileUseCase struct {
	storage    ports.ObjectStorage
	scanner    ports.DirectoryScanner
	classifier ports.FileClassifier
	logger     *slog.Logger
}

func NewUploadFileUseCase(
	storage ports.ObjectStorage,
	scanner ports.DirectoryScanner,
	classifier ports.FileClassifier,
	logger *slog.Logger,
) *UploadFileUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadFileUseCase{
		storage:    storage,
		scanner:    scanner,
		classifier: classifier,
		logger:     logger,
	}
}

// Upload stores the file under a unique key, describes it from disk and runs
// the classification pipeline over the single-record corpus.
func (uc *UploadFileUseCase) Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.FileRecord, error) {
	key := fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFilename(filename))

	storedPath, err := uc.storage.Save(ctx, key, body)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	rec, err := uc.scanner.Describe(ctx, storedPath)
	if err != nil {
		return nil, fmt.Errorf("describe upload: %w", err)
	}
	rec.Name = filename
	if mimeType != "" {
		rec.MimeType = mimeType
	}

	uc.classifier.Classify(ctx, []*domain.FileRecord{rec})
	uc.logger.Info("upload classified", "name", filename, "category", rec.Category)
	return rec, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." || base == ".." {
		return "upload.bin"
	}
	return base
}
