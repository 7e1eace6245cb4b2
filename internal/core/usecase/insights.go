package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/avolkov/dirscope/internal/core/domain"
	"github.com/avolkov/dirscope/internal/core/ports"
)

var (
	datePattern   = regexp.MustCompile(`\d{4}[-_/]\d{1,2}[-_/]\d{1,2}|\d{1,2}[-_/]\d{1,2}[-_/]\d{4}|\d{1,2}[-_/]\d{1,2}[-_/]\d{2}`)
	numberPattern = regexp.MustCompile(`\d+`)
	seriesSuffix  = regexp.MustCompile(`[_\-\s]\d+.*$`)
)

// Aging thresholds in days.
const (
	ageOld     = 365
	ageVeryOld = 730
	ageAncient = 1095
)

type InsightsUseCase struct {
	generator ports.InsightGenerator
	logger    *slog.Logger
	now       func() time.Time
}

func NewInsightsUseCase(generator ports.InsightGenerator, logger *slog.Logger) *InsightsUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightsUseCase{
		generator: generator,
		logger:    logger,
		now:       time.Now,
	}
}

// Analyze derives statistical insights from the categorized record set. The
// narrative summary comes from the configured language model; when none is
// configured or the call fails, a degraded canned summary is returned and the
// statistical sections are unaffected.
func (uc *InsightsUseCase) Analyze(ctx context.Context, records []*domain.FileRecord) (*domain.FileInsights, error) {
	if len(records) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "analyze files", errors.New("no file data available"))
	}

	insights := &domain.FileInsights{
		Patterns:      namingPatterns(records),
		RelatedGroups: relatedGroups(records),
		Organization:  organizationReport(records),
		Aging:         uc.agingReport(records),
		Duplicates:    duplicateCandidates(records),
	}
	insights.Summary = uc.summarize(ctx, records)
	return insights, nil
}

// namingPatterns collapses dates and numbers in filenames into DATE/NUMBER
// templates and reports the five most common templates.
func namingPatterns(records []*domain.FileRecord) []domain.NamingPattern {
	order := make([]string, 0, len(records))
	byPattern := make(map[string][]string)

	for _, rec := range records {
		pattern := rec.Name
		switch {
		case datePattern.MatchString(rec.Name):
			pattern = datePattern.ReplaceAllString(rec.Name, "DATE")
		case numberPattern.MatchString(rec.Name):
			pattern = numberPattern.ReplaceAllString(rec.Name, "NUMBER")
		}
		if _, seen := byPattern[pattern]; !seen {
			order = append(order, pattern)
		}
		byPattern[pattern] = append(byPattern[pattern], rec.Path)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return len(byPattern[order[i]]) > len(byPattern[order[j]])
	})
	if len(order) > 5 {
		order = order[:5]
	}

	out := make([]domain.NamingPattern, 0, len(order))
	for _, pattern := range order {
		paths := byPattern[pattern]
		out = append(out, domain.NamingPattern{
			Pattern:  pattern,
			Count:    len(paths),
			Examples: firstN(paths, 3),
		})
	}
	return out
}

// relatedGroups finds file series: same extension and same base name once a
// trailing separator+number suffix is stripped.
func relatedGroups(records []*domain.FileRecord) []domain.RelatedGroup {
	extOrder := make([]string, 0)
	byExt := make(map[string][]*domain.FileRecord)
	for _, rec := range records {
		ext := strings.ToLower(rec.Extension)
		if ext == "" {
			continue
		}
		if _, seen := byExt[ext]; !seen {
			extOrder = append(extOrder, ext)
		}
		byExt[ext] = append(byExt[ext], rec)
	}

	groups := make([]domain.RelatedGroup, 0)
	for _, ext := range extOrder {
		files := byExt[ext]
		if len(files) < 2 {
			continue
		}
		baseOrder := make([]string, 0, len(files))
		byBase := make(map[string][]string)
		for _, rec := range files {
			stem := strings.TrimSuffix(rec.Name, "."+rec.Extension)
			base := seriesSuffix.ReplaceAllString(stem, "")
			if _, seen := byBase[base]; !seen {
				baseOrder = append(baseOrder, base)
			}
			byBase[base] = append(byBase[base], rec.Path)
		}
		for _, base := range baseOrder {
			paths := byBase[base]
			if len(paths) < 2 {
				continue
			}
			groups = append(groups, domain.RelatedGroup{
				BaseName:  base,
				Extension: ext,
				Files:     firstN(paths, 5),
			})
		}
	}
	return firstNGroups(groups, 5)
}

func organizationReport(records []*domain.FileRecord) domain.OrganizationReport {
	catOrder := make([]string, 0)
	byCategory := make(map[string][]*domain.FileRecord)
	deepPaths := make([]string, 0)

	for _, rec := range records {
		if _, seen := byCategory[rec.Category]; !seen {
			catOrder = append(catOrder, rec.Category)
		}
		byCategory[rec.Category] = append(byCategory[rec.Category], rec)
		if rec.Depth > 5 {
			deepPaths = append(deepPaths, rec.Path)
		}
	}

	large := make([]domain.LargeCategory, 0)
	for _, category := range catOrder {
		files := byCategory[category]
		if len(files) <= 10 {
			continue
		}
		large = append(large, domain.LargeCategory{
			Category:  category,
			FileCount: len(files),
			Hints:     subcategoryHints(files),
		})
	}

	return domain.OrganizationReport{
		LargeCategories:  large,
		DeepPathsCount:   len(deepPaths),
		DeepPathExamples: firstN(deepPaths, 3),
	}
}

// subcategoryHints looks for underscore-delimited filename prefixes that
// repeat at least three times within one category.
func subcategoryHints(files []*domain.FileRecord) []domain.SubcategoryHint {
	prefixOrder := make([]string, 0)
	counts := make(map[string]int)
	for _, rec := range files {
		if !strings.Contains(rec.Name, "_") {
			continue
		}
		prefix := strings.SplitN(rec.Name, "_", 2)[0]
		if prefix == "" {
			continue
		}
		if _, seen := counts[prefix]; !seen {
			prefixOrder = append(prefixOrder, prefix)
		}
		counts[prefix]++
	}

	sort.SliceStable(prefixOrder, func(i, j int) bool {
		return counts[prefixOrder[i]] > counts[prefixOrder[j]]
	})

	hints := make([]domain.SubcategoryHint, 0, 3)
	for _, prefix := range prefixOrder {
		if counts[prefix] < 3 {
			continue
		}
		hints = append(hints, domain.SubcategoryHint{Name: prefix, Count: counts[prefix]})
		if len(hints) == 3 {
			break
		}
	}
	return hints
}

func (uc *InsightsUseCase) agingReport(records []*domain.FileRecord) domain.AgingReport {
	now := uc.now()
	var report domain.AgingReport

	for _, rec := range records {
		ageDays := int(now.Sub(rec.Modified).Hours() / 24)
		if ageDays < 0 {
			continue
		}
		switch {
		case ageDays >= ageAncient:
			report.AncientCount++
			if len(report.AncientExamples) < 3 {
				report.AncientExamples = append(report.AncientExamples, rec.Path)
			}
		case ageDays >= ageVeryOld:
			report.VeryOldCount++
			if len(report.VeryOldExamples) < 3 {
				report.VeryOldExamples = append(report.VeryOldExamples, rec.Path)
			}
		case ageDays >= ageOld:
			report.OldCount++
			if len(report.OldExamples) < 3 {
				report.OldExamples = append(report.OldExamples, rec.Path)
			}
		}
	}
	return report
}

// duplicateCandidates groups files sharing size and extension. Identical size
// is only a hint; byte-level comparison is deliberately out of scope.
func duplicateCandidates(records []*domain.FileRecord) domain.DuplicateReport {
	type sizeExt struct {
		size int64
		ext  string
	}
	keyOrder := make([]sizeExt, 0)
	byKey := make(map[sizeExt][]string)

	for _, rec := range records {
		if rec.SizeBytes == 0 {
			continue
		}
		key := sizeExt{size: rec.SizeBytes, ext: strings.ToLower(rec.Extension)}
		if _, seen := byKey[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		byKey[key] = append(byKey[key], rec.Path)
	}

	groups := make([]domain.DuplicateGroup, 0)
	for _, key := range keyOrder {
		paths := byKey[key]
		if len(paths) < 2 {
			continue
		}
		groups = append(groups, domain.DuplicateGroup{
			SizeBytes:   key.size,
			SizeDisplay: domain.FormatSize(key.size),
			Extension:   key.ext,
			FileCount:   len(paths),
			Examples:    firstN(paths, 3),
		})
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].SizeBytes > groups[j].SizeBytes })
	report := domain.DuplicateReport{Count: len(groups)}
	if len(groups) > 5 {
		groups = groups[:5]
	}
	report.Groups = groups
	return report
}

type scanDataSummary struct {
	TotalFiles            int            `json:"total_files"`
	TotalSizeBytes        int64          `json:"total_size_bytes"`
	TotalSizeReadable     string         `json:"total_size_readable"`
	ExtensionDistribution map[string]int `json:"extension_distribution"`
	CategoryDistribution  map[string]int `json:"category_distribution"`
	OldestFile            string         `json:"oldest_file"`
	OldestFileDate        string         `json:"oldest_file_date"`
	NewestFile            string         `json:"newest_file"`
	NewestFileDate        string         `json:"newest_file_date"`
}

func (uc *InsightsUseCase) summarize(ctx context.Context, records []*domain.FileRecord) domain.InsightSummary {
	if uc.generator == nil {
		return degradedSummary()
	}

	summary := scanDataSummary{
		TotalFiles:            len(records),
		ExtensionDistribution: make(map[string]int),
		CategoryDistribution:  make(map[string]int),
		OldestFile:            "None",
		OldestFileDate:        "None",
		NewestFile:            "None",
		NewestFileDate:        "None",
	}

	var oldest, newest *domain.FileRecord
	for _, rec := range records {
		summary.TotalSizeBytes += rec.SizeBytes
		summary.ExtensionDistribution[strings.ToLower(rec.Extension)]++
		summary.CategoryDistribution[rec.Category]++
		if oldest == nil || rec.Modified.Before(oldest.Modified) {
			oldest = rec
		}
		if newest == nil || rec.Modified.After(newest.Modified) {
			newest = rec
		}
	}
	summary.TotalSizeReadable = domain.FormatSize(summary.TotalSizeBytes)
	if oldest != nil {
		summary.OldestFile = oldest.Path
		summary.OldestFileDate = oldest.Modified.Format("2006-01-02")
	}
	if newest != nil {
		summary.NewestFile = newest.Path
		summary.NewestFileDate = newest.Modified.Format("2006-01-02")
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		uc.logger.Error("marshal scan summary for insight generation", "error", err)
		return degradedSummary()
	}

	generated, err := uc.generator.Summarize(ctx, string(payload))
	if err != nil {
		uc.logger.Warn("insight generation failed, returning degraded summary", "error", err)
		return domain.InsightSummary{
			Insights:       []string{"AI insights are temporarily unavailable."},
			Recommendation: "Our analysis engine is experiencing issues. Please try again later.",
		}
	}
	return *generated
}

func degradedSummary() domain.InsightSummary {
	return domain.InsightSummary{
		Insights: []string{
			"To unlock AI-powered insights, please provide a valid API key.",
			"This feature analyzes file patterns and provides intelligent recommendations.",
		},
		Recommendation: "Set up an API key in your environment variables to enable this feature.",
	}
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}

func firstNGroups(groups []domain.RelatedGroup, n int) []domain.RelatedGroup {
	if len(groups) <= n {
		return groups
	}
	return groups[:n]
}
