package httpadapter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avolkov/dirscope/internal/core/domain"
	"github.com/avolkov/dirscope/internal/core/ports"
)

type Router struct {
	scans    ports.ScanService
	searcher ports.FileSearcher
	uploads  ports.FileUploader
	insights ports.InsightService
	stats    ports.StatsService
	report   ports.ReportWriter

	options RouterOptions
}

type RouterOptions struct {
	MaxUploadBytes   int64
	RateLimitRPS     float64
	RateLimitBurst   int
	MaxInFlight      int
	BackpressureWait time.Duration
	Logger           *slog.Logger
}

func NewRouter(
	scans ports.ScanService,
	searcher ports.FileSearcher,
	uploads ports.FileUploader,
	insights ports.InsightService,
	stats ports.StatsService,
	report ports.ReportWriter,
	options RouterOptions,
) *Router {
	if options.MaxUploadBytes <= 0 {
		options.MaxUploadBytes = 64 << 20
	}
	if options.BackpressureWait <= 0 {
		options.BackpressureWait = 2 * time.Second
	}
	return &Router{
		scans:    scans,
		searcher: searcher,
		uploads:  uploads,
		insights: insights,
		stats:    stats,
		report:   report,
		options:  options,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/scans", rt.scanDirectory)
	mux.HandleFunc("/v1/scans/async", rt.requestScan)
	mux.HandleFunc("/v1/scans/latest", rt.latestScan)
	mux.HandleFunc("/v1/search", rt.search)
	mux.HandleFunc("/v1/files", rt.uploadFile)
	mux.HandleFunc("/v1/insights", rt.insightReport)
	mux.HandleFunc("/v1/stats", rt.statsReport)
	mux.HandleFunc("/v1/report.xlsx", rt.downloadReport)

	var handler http.Handler = mux
	if rt.options.MaxInFlight > 0 {
		handler = backpressureMiddleware(handler, rt.options.MaxInFlight, rt.options.BackpressureWait)
	}
	if rt.options.RateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.options.RateLimitRPS, rt.options.RateLimitBurst)
	}
	return requestIDMiddleware(accessLogMiddleware(handler, rt.options.Logger))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type scanRequest struct {
	DirectoryPath string `json:"directory_path"`
}

type scanResponse struct {
	Scan  *domain.ScanSummary  `json:"scan"`
	Files []*domain.FileRecord `json:"files"`
}

func (rt *Router) scanDirectory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.DirectoryPath) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "directory_path is required"})
		return
	}

	summary, files, err := rt.scans.ScanDirectory(r.Context(), req.DirectoryPath)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scanResponse{Scan: summary, Files: files})
}

func (rt *Router) requestScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.DirectoryPath) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "directory_path is required"})
		return
	}

	if err := rt.scans.RequestScan(r.Context(), req.DirectoryPath); err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued", "directory_path": req.DirectoryPath})
}

func (rt *Router) latestScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	summary, files, err := rt.scans.LatestResults(r.Context())
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scanResponse{Scan: summary, Files: files})
}

type searchRequest struct {
	Query   string              `json:"query"`
	Filters domain.SearchFilter `json:"filters"`
}

type searchResponse struct {
	Results []*domain.FileRecord `json:"results"`
	Count   int                  `json:"count"`
}

func (rt *Router) search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	_, files, err := rt.scans.LatestResults(r.Context())
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	results := rt.searcher.Search(files, req.Query, req.Filters)
	writeJSON(w, http.StatusOK, searchResponse{Results: results, Count: len(results)})
}

func (rt *Router) uploadFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, rt.options.MaxUploadBytes)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	rec, err := rt.uploads.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (rt *Router) insightReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	_, files, err := rt.scans.LatestResults(r.Context())
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	insights, err := rt.insights.Analyze(r.Context(), files)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (rt *Router) statsReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	_, files, err := rt.scans.LatestResults(r.Context())
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	stats, err := rt.stats.Aggregate(files)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (rt *Router) downloadReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	summary, files, err := rt.scans.LatestResults(r.Context())
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	// Render to a buffer first so failures still produce a JSON error instead
	// of a truncated download.
	var buf bytes.Buffer
	if err := rt.report.Write(&buf, summary, files); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="scan-report-`+summary.ScanDate.Format("2006-01-02")+`.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
