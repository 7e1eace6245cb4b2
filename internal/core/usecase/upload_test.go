package usecase

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/avolkov/dirscope/internal/core/domain"
)

type fakeStorage struct {
	savedKey  string
	savedData string
	path      string
}

func (f *fakeStorage) Save(_ context.Context, key string, data io.Reader) (string, error) {
	f.savedKey = key
	raw, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	f.savedData = string(raw)
	return f.path, nil
}

func (f *fakeStorage) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.savedData)), nil
}

func TestUploadStoresDescribesAndClassifies(t *testing.T) {
	storage := &fakeStorage{path: "/storage/abc_notes.txt"}
	scanner := &fakeDirectoryScanner{records: []*domain.FileRecord{
		{Name: "abc_notes.txt", Path: "/storage/abc_notes.txt", Extension: "txt", SizeBytes: 5},
	}}
	uc := NewUploadFileUseCase(storage, scanner, passthroughClassifier{}, nil)

	rec, err := uc.Upload(context.Background(), "notes.txt", "text/plain", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if storage.savedData != "hello" {
		t.Fatalf("stored data = %q", storage.savedData)
	}
	if !strings.HasSuffix(storage.savedKey, "_notes.txt") {
		t.Fatalf("storage key = %q", storage.savedKey)
	}
	if rec.Name != "notes.txt" {
		t.Fatalf("record name = %q, want original filename", rec.Name)
	}
	if rec.MimeType != "text/plain" {
		t.Fatalf("mime type = %q", rec.MimeType)
	}
	if rec.Category == "" {
		t.Fatal("record not classified")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"my report.pdf", "my_report.pdf"},
		{"../../etc/passwd", "passwd"},
		{"résumé.doc", "r_sum_.doc"},
		{"", "upload.bin"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
