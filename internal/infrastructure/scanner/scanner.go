package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/avolkov/dirscope/internal/core/domain"
)

const defaultMimeType = "application/octet-stream"

// Scanner walks directory trees and produces file metadata records. Hidden
// entries (dot-prefixed names) are skipped, directories included; unreadable
// files are logged and skipped rather than failing the scan.
type Scanner struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger}
}

func (s *Scanner) Scan(ctx context.Context, root string) ([]*domain.FileRecord, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}

	records := make([]*domain.FileRecord, 0, 64)
	err = filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			s.logger.Warn("scan entry inaccessible", "path", path, "error", walkErr)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") && path != absRoot {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		rec, err := s.record(path, absRoot)
		if err != nil {
			s.logger.Warn("skip unreadable file", "path", path, "error", err)
			return nil
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", absRoot, err)
	}
	return records, nil
}

// Describe builds a record for a single file outside a tree walk, e.g. an
// uploaded file sitting in object storage.
func (s *Scanner) Describe(_ context.Context, path string) (*domain.FileRecord, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	return s.record(abs, filepath.Dir(abs))
}

func (s *Scanner) record(path, root string) (*domain.FileRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}

	// Records carry the extension lowercase without the dot; the mime table
	// wants the dotted form.
	dotExt := strings.ToLower(filepath.Ext(path))
	mimeType := mime.TypeByExtension(dotExt)
	if mimeType == "" {
		mimeType = defaultMimeType
	}

	depth := 0
	if dir := filepath.Dir(rel); dir != "." {
		depth = len(strings.Split(dir, string(filepath.Separator)))
	}

	mode := info.Mode()
	created, accessed := statTimes(info)

	return &domain.FileRecord{
		Name:         info.Name(),
		Path:         path,
		RelativePath: rel,
		Directory:    filepath.Dir(path),
		Extension:    strings.TrimPrefix(dotExt, "."),
		SizeBytes:    info.Size(),
		SizeDisplay:  domain.FormatSize(info.Size()),
		Created:      created,
		Modified:     info.ModTime(),
		Accessed:     accessed,
		MimeType:     mimeType,
		Depth:        depth,
		IsExecutable: mode.Perm()&0o111 != 0,
		IsReadable:   mode.Perm()&0o400 != 0,
		IsWritable:   mode.Perm()&0o200 != 0,
	}, nil
}
