package textcluster

import (
	"fmt"
	"testing"
)

func buildCorpus() []string {
	corpus := make([]string, 0, 30)
	for i := 1; i <= 10; i++ {
		corpus = append(corpus, fmt.Sprintf("invoice_%d.pdf", i))
	}
	for i := 1; i <= 10; i++ {
		corpus = append(corpus, fmt.Sprintf("photo_%d.raw", i))
	}
	for i := 1; i <= 10; i++ {
		corpus = append(corpus, fmt.Sprintf("lecture_notes_%d.unknown", i))
	}
	return corpus
}

func TestGroupAssignsSimilarNamesTogether(t *testing.T) {
	grouper := NewGrouper()
	corpus := buildCorpus()

	groups, err := grouper.Group(corpus, corpus)
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}
	if len(groups) != len(corpus) {
		t.Fatalf("Group() returned %d assignments, want %d", len(groups), len(corpus))
	}

	for _, g := range groups {
		if g < 0 || g >= defaultClusters {
			t.Fatalf("cluster id %d out of range", g)
		}
	}

	// Name families sit far apart in n-gram space, so no cluster should mix
	// invoices with photos even when a family spans several clusters.
	invoiceClusters := make(map[int]bool)
	for i := 0; i < 10; i++ {
		invoiceClusters[groups[i]] = true
	}
	for i := 10; i < 20; i++ {
		if invoiceClusters[groups[i]] {
			t.Errorf("photo file %d shares cluster %d with invoices", i-9, groups[i])
		}
	}
}

func TestGroupIsDeterministic(t *testing.T) {
	corpus := buildCorpus()

	first, err := NewGrouper().Group(corpus, corpus)
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}
	second, err := NewGrouper().Group(corpus, corpus)
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("assignment %d differs between runs: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestGroupRejectsSmallCorpus(t *testing.T) {
	if _, err := NewGrouper().Group([]string{"a.txt", "b.txt"}, []string{"a.txt"}); err == nil {
		t.Fatal("Group() with tiny corpus, want error")
	}
}

func TestVectorizerKeepsGramsInsideWords(t *testing.T) {
	v := newNgramVectorizer(2, 3, 1000)
	v.fit([]string{"tax_2021"})

	if _, ok := v.vocab["ta"]; !ok {
		t.Error("vocab missing gram \"ta\"")
	}
	if _, ok := v.vocab["x2"]; ok {
		t.Error("vocab contains gram crossing the word separator")
	}
}
