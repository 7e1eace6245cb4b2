package textrank

import (
	"errors"
	"math"
	"strings"
	"unicode"
)

// Ranker scores documents against a query with TF-IDF weighted cosine
// similarity. The model is fit on the given batch only and discarded; nothing
// survives between calls, so concurrent Rank calls are safe.
type Ranker struct {
	MinDF      int
	MaxDFRatio float64
}

func NewRanker() *Ranker {
	return &Ranker{
		MinDF:      1,
		MaxDFRatio: 0.9,
	}
}

var ErrEmptyVocabulary = errors.New("textrank: empty vocabulary after pruning")

// Rank fits a vocabulary of unigrams and bigrams over docs (stop-words
// removed, document-frequency bounds applied), weights terms with smoothed
// IDF, L2-normalizes, and returns the cosine similarity of each document to
// the query. Scores align with docs by index.
func (r *Ranker) Rank(query string, docs []string) ([]float64, error) {
	if len(docs) == 0 {
		return []float64{}, nil
	}

	termLists := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		terms := extractTerms(doc)
		termLists[i] = terms
		for _, term := range uniqueTerms(terms) {
			df[term]++
		}
	}

	n := len(docs)
	maxDF := int(r.MaxDFRatio * float64(n))
	if maxDF < r.MinDF {
		maxDF = r.MinDF
	}
	idf := make(map[string]float64, len(df))
	for term, freq := range df {
		if freq < r.MinDF || freq > maxDF {
			continue
		}
		idf[term] = math.Log(float64(1+n)/float64(1+freq)) + 1
	}
	if len(idf) == 0 {
		return nil, ErrEmptyVocabulary
	}

	queryVec := vectorize(extractTerms(query), idf)

	scores := make([]float64, len(docs))
	if len(queryVec) == 0 {
		return scores, nil
	}
	for i, terms := range termLists {
		scores[i] = cosine(queryVec, vectorize(terms, idf))
	}
	return scores, nil
}

// vectorize builds an L2-normalized TF-IDF vector restricted to the fitted
// vocabulary. Terms outside the vocabulary are dropped, mirroring a
// transform with a frozen vocabulary.
func vectorize(terms []string, idf map[string]float64) map[string]float64 {
	vec := make(map[string]float64)
	for _, term := range terms {
		weight, ok := idf[term]
		if !ok {
			continue
		}
		vec[term] += weight
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}

func cosine(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}
	return dot
}

// extractTerms lowercases, splits on non-alphanumeric runes, drops English
// stop-words and single characters, and emits unigrams plus adjacent bigrams.
func extractTerms(text string) []string {
	words := splitAlphaNumLower(text)
	kept := words[:0]
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		kept = append(kept, w)
	}

	terms := make([]string, 0, len(kept)*2)
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+" "+kept[i+1])
	}
	return terms
}

func uniqueTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

func splitAlphaNumLower(s string) []string {
	if s == "" {
		return nil
	}
	tokens := make([]string, 0, 16)
	var b strings.Builder
	for _, r := range s {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}
