package textrank

import (
	"errors"
	"testing"
)

func TestRankScoresRelevantDocumentsHigher(t *testing.T) {
	docs := []string{
		"budget report 2024 spreadsheet finance",
		"vacation photos album summer",
		"quarterly budget planning document",
	}

	scores, err := NewRanker().Rank("budget planning", docs)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("got %d scores, want 3", len(scores))
	}
	if scores[2] <= scores[1] {
		t.Fatalf("planning doc %.4f not above photos doc %.4f", scores[2], scores[1])
	}
	if scores[0] <= scores[1] {
		t.Fatalf("budget doc %.4f not above photos doc %.4f", scores[0], scores[1])
	}
	if scores[1] != 0 {
		t.Fatalf("unrelated doc scored %.4f, want 0", scores[1])
	}
}

func TestRankEmptyDocsReturnsEmptyScores(t *testing.T) {
	scores, err := NewRanker().Rank("anything", nil)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("got %d scores, want 0", len(scores))
	}
}

func TestRankStopWordsOnlyYieldsEmptyVocabulary(t *testing.T) {
	_, err := NewRanker().Rank("query", []string{"the and of", "a an the"})
	if !errors.Is(err, ErrEmptyVocabulary) {
		t.Fatalf("error = %v, want ErrEmptyVocabulary", err)
	}
}

func TestRankQueryOutsideVocabularyScoresZero(t *testing.T) {
	scores, err := NewRanker().Rank("zebra", []string{"budget report", "annual summary"})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	for i, score := range scores {
		if score != 0 {
			t.Fatalf("score[%d] = %.4f, want 0", i, score)
		}
	}
}

func TestExtractTermsEmitsUnigramsAndBigrams(t *testing.T) {
	terms := extractTerms("Budget_Report 2024")
	want := map[string]bool{
		"budget":        true,
		"report":        true,
		"2024":          true,
		"budget report": true,
		"report 2024":   true,
	}
	if len(terms) != len(want) {
		t.Fatalf("terms = %v", terms)
	}
	for _, term := range terms {
		if !want[term] {
			t.Fatalf("unexpected term %q", term)
		}
	}
}

func TestExtractTermsDropsStopWordsAndShortTokens(t *testing.T) {
	terms := extractTerms("the report of a year x")
	for _, term := range terms {
		if term == "the" || term == "of" || term == "a" || term == "x" {
			t.Fatalf("term %q should have been dropped", term)
		}
	}
}
