package usecase

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/avolkov/dirscope/internal/core/domain"
	"github.com/avolkov/dirscope/internal/core/ports"
)

// minSimilarity is the cosine score below which a vector match is discarded.
const minSimilarity = 0.01

// Search resolution tiers, reported to the observer.
const (
	tierFilterOnly  = "filter_only"
	tierSingleToken = "single_token"
	tierVector      = "vector"
	tierSubstring   = "substring_fallback"
)

type SearchFilesUseCase struct {
	ranker   ports.SimilarityRanker
	observer ports.SearchObserver
	logger   *slog.Logger
}

func NewSearchFilesUseCase(ranker ports.SimilarityRanker, observer ports.SearchObserver, logger *slog.Logger) *SearchFilesUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchFilesUseCase{
		ranker:   ranker,
		observer: observer,
		logger:   logger,
	}
}

// Search applies the structured filters and then resolves the free-text query
// through the tiered chain: no query returns the filtered set as-is, a single
// token is matched exact-then-partial against filenames, and a multi-token
// query is ranked by TF-IDF cosine similarity with a substring fallback when
// ranking yields nothing or errors. Search never fails.
func (uc *SearchFilesUseCase) Search(records []*domain.FileRecord, query string, filter domain.SearchFilter) []*domain.FileRecord {
	filtered := make([]*domain.FileRecord, 0, len(records))
	for _, rec := range records {
		if filter.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}

	q := strings.TrimSpace(query)
	if q == "" {
		uc.observe(tierFilterOnly, len(filtered))
		return filtered
	}

	if len(strings.Fields(q)) == 1 {
		out := resolveSingleToken(filtered, q)
		uc.observe(tierSingleToken, len(out))
		return out
	}

	return uc.resolveMultiToken(filtered, q)
}

// resolveSingleToken splits the candidates into exact matches (full filename
// equality or starts-with) and partial matches (substring of name or path),
// exact group first, original relative order preserved inside each group.
// Zero matches means an empty result; single tokens never reach the vector
// ranker.
func resolveSingleToken(filtered []*domain.FileRecord, query string) []*domain.FileRecord {
	q := strings.ToLower(query)

	exact := make([]*domain.FileRecord, 0, len(filtered))
	partial := make([]*domain.FileRecord, 0, len(filtered))
	for _, rec := range filtered {
		name := strings.ToLower(rec.Name)
		switch {
		case name == q || strings.HasPrefix(name, q):
			exact = append(exact, rec)
		case strings.Contains(name, q) || strings.Contains(strings.ToLower(rec.Path), q):
			partial = append(partial, rec)
		}
	}
	return append(exact, partial...)
}

func (uc *SearchFilesUseCase) resolveMultiToken(filtered []*domain.FileRecord, query string) []*domain.FileRecord {
	docs := make([]string, len(filtered))
	for i, rec := range filtered {
		docs[i] = buildSearchDocument(rec)
	}

	scores, err := uc.ranker.Rank(query, docs)
	if err != nil || len(scores) != len(docs) {
		uc.logger.Warn("similarity ranking unavailable, degrading to substring match",
			"error", err, "candidates", len(docs))
		out := substringMatch(filtered, query)
		uc.observe(tierSubstring, len(out))
		return out
	}

	type scoredRecord struct {
		rec   *domain.FileRecord
		score float64
	}
	kept := make([]scoredRecord, 0, len(filtered))
	for i, score := range scores {
		if score >= minSimilarity {
			kept = append(kept, scoredRecord{rec: filtered[i], score: score})
		}
	}
	if len(kept) == 0 {
		out := substringMatch(filtered, query)
		uc.observe(tierSubstring, len(out))
		return out
	}

	// Stable sort keeps original relative order for equal scores.
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].score > kept[j].score })

	out := make([]*domain.FileRecord, len(kept))
	for i, s := range kept {
		out[i] = s.rec
	}
	uc.observe(tierVector, len(out))
	return out
}

// buildSearchDocument assembles the ephemeral synthetic text scored by the
// ranker. It is never persisted.
func buildSearchDocument(rec *domain.FileRecord) string {
	var b strings.Builder
	b.WriteString(rec.Name)
	b.WriteByte(' ')
	b.WriteString(rec.Path)
	b.WriteByte(' ')
	b.WriteString(rec.Category)
	if rec.Extension != "" {
		b.WriteString(" extension:")
		b.WriteString(rec.Extension)
	}
	return b.String()
}

// substringMatch is the degraded tier: a record qualifies when any query
// token appears as a case-insensitive substring of its name or path. Original
// order is preserved.
func substringMatch(filtered []*domain.FileRecord, query string) []*domain.FileRecord {
	tokens := strings.Fields(strings.ToLower(query))
	out := make([]*domain.FileRecord, 0, len(filtered))
	for _, rec := range filtered {
		name := strings.ToLower(rec.Name)
		path := strings.ToLower(rec.Path)
		for _, token := range tokens {
			if strings.Contains(name, token) || strings.Contains(path, token) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

func (uc *SearchFilesUseCase) observe(tier string, results int) {
	if uc.observer != nil {
		uc.observer.ObserveSearch(tier, results)
	}
}
