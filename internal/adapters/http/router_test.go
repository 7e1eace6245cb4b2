package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avolkov/dirscope/internal/core/domain"
)

type fakeScanService struct {
	summary   *domain.ScanSummary
	files     []*domain.FileRecord
	err       error
	requested []string
}

func (f *fakeScanService) ScanDirectory(_ context.Context, root string) (*domain.ScanSummary, []*domain.FileRecord, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.summary, f.files, nil
}

func (f *fakeScanService) RequestScan(_ context.Context, root string) error {
	if f.err != nil {
		return f.err
	}
	f.requested = append(f.requested, root)
	return nil
}

func (f *fakeScanService) LatestResults(context.Context) (*domain.ScanSummary, []*domain.FileRecord, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.summary, f.files, nil
}

type fakeSearcher struct {
	lastQuery string
	results   []*domain.FileRecord
}

func (f *fakeSearcher) Search(_ []*domain.FileRecord, query string, _ domain.SearchFilter) []*domain.FileRecord {
	f.lastQuery = query
	return f.results
}

type fakeUploader struct {
	rec *domain.FileRecord
	err error
}

func (f *fakeUploader) Upload(_ context.Context, filename, mimeType string, _ io.Reader) (*domain.FileRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rec, nil
}

type fakeInsights struct {
	insights *domain.FileInsights
	err      error
}

func (f *fakeInsights) Analyze(context.Context, []*domain.FileRecord) (*domain.FileInsights, error) {
	return f.insights, f.err
}

type fakeStats struct {
	stats *domain.DirectoryStats
	err   error
}

func (f *fakeStats) Aggregate([]*domain.FileRecord) (*domain.DirectoryStats, error) {
	return f.stats, f.err
}

type fakeReport struct{}

func (fakeReport) Write(w io.Writer, _ *domain.ScanSummary, _ []*domain.FileRecord) error {
	_, err := w.Write([]byte("xlsx-bytes"))
	return err
}

func testSummary() *domain.ScanSummary {
	return &domain.ScanSummary{
		ID:            "scan-1",
		DirectoryPath: "/data/docs",
		ScanDate:      time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		FileCount:     1,
		TotalSize:     42,
	}
}

func newTestRouter(scans *fakeScanService, searcher *fakeSearcher) *Router {
	return NewRouter(
		scans,
		searcher,
		&fakeUploader{rec: &domain.FileRecord{Name: "up.txt", Category: domain.CategoryDocuments}},
		&fakeInsights{insights: &domain.FileInsights{}},
		&fakeStats{stats: &domain.DirectoryStats{}},
		fakeReport{},
		RouterOptions{},
	)
}

func TestHealthz(t *testing.T) {
	handler := newTestRouter(&fakeScanService{}, &fakeSearcher{}).Handler()

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", res.Code)
	}
}

func TestScanDirectoryReturnsSummaryAndFiles(t *testing.T) {
	scans := &fakeScanService{
		summary: testSummary(),
		files:   []*domain.FileRecord{{Name: "a.txt", Category: domain.CategoryDocuments}},
	}
	handler := newTestRouter(scans, &fakeSearcher{}).Handler()

	body := strings.NewReader(`{"directory_path":"/data/docs"}`)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/v1/scans", body))
	if res.Code != http.StatusOK {
		t.Fatalf("scan status = %d, body %s", res.Code, res.Body.String())
	}

	var resp scanResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Scan.ID != "scan-1" || len(resp.Files) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestScanDirectoryRequiresPath(t *testing.T) {
	handler := newTestRouter(&fakeScanService{}, &fakeSearcher{}).Handler()

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/v1/scans", strings.NewReader(`{}`)))
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestRequestScanQueues(t *testing.T) {
	scans := &fakeScanService{}
	handler := newTestRouter(scans, &fakeSearcher{}).Handler()

	body := strings.NewReader(`{"directory_path":"/data/docs"}`)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/v1/scans/async", body))
	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", res.Code)
	}
	if len(scans.requested) != 1 || scans.requested[0] != "/data/docs" {
		t.Fatalf("requested = %v", scans.requested)
	}
}

func TestLatestScanNotFoundMapsTo404(t *testing.T) {
	scans := &fakeScanService{
		err: domain.WrapError(domain.ErrScanNotFound, "latest scan", errors.New("no rows")),
	}
	handler := newTestRouter(scans, &fakeSearcher{}).Handler()

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/v1/scans/latest", nil))
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestSearchPassesQueryAndReturnsResults(t *testing.T) {
	searcher := &fakeSearcher{results: []*domain.FileRecord{{Name: "budget.xlsx"}}}
	scans := &fakeScanService{summary: testSummary(), files: []*domain.FileRecord{{Name: "budget.xlsx"}}}
	handler := newTestRouter(scans, searcher).Handler()

	body := strings.NewReader(`{"query":"budget report","filters":{"extensions":["xlsx"]}}`)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/v1/search", body))
	if res.Code != http.StatusOK {
		t.Fatalf("search status = %d", res.Code)
	}
	if searcher.lastQuery != "budget report" {
		t.Fatalf("query = %q", searcher.lastQuery)
	}

	var resp searchResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 || resp.Results[0].Name != "budget.xlsx" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUploadFile(t *testing.T) {
	handler := newTestRouter(&fakeScanService{}, &fakeSearcher{}).Handler()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "up.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("hello")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", res.Code, res.Body.String())
	}

	var rec domain.FileRecord
	if err := json.NewDecoder(res.Body).Decode(&rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rec.Name != "up.txt" {
		t.Fatalf("uploaded record = %+v", rec)
	}
}

func TestDownloadReportSetsHeaders(t *testing.T) {
	scans := &fakeScanService{summary: testSummary()}
	handler := newTestRouter(scans, &fakeSearcher{}).Handler()

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/v1/report.xlsx", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("report status = %d", res.Code)
	}
	if got := res.Header().Get("Content-Disposition"); !strings.Contains(got, "scan-report-2026-03-14.xlsx") {
		t.Fatalf("Content-Disposition = %q", got)
	}
	if res.Body.String() != "xlsx-bytes" {
		t.Fatalf("body = %q", res.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestRouter(&fakeScanService{}, &fakeSearcher{}).Handler()

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/v1/scans", nil))
	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}

func TestAccessLogWritesToInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := accessLogMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), logger)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	line := buf.String()
	if !strings.Contains(line, `"msg":"http_request"`) || !strings.Contains(line, `"status":204`) {
		t.Fatalf("access log line = %q", line)
	}
}
