package textcluster

import (
	"sort"
	"strings"
)

// ngramVectorizer turns filenames into dense character n-gram count vectors.
// N-grams are taken inside word boundaries with space padding, so "tax_2021"
// yields grams from " tax " and " 2021 " but never across the separator. The
// vocabulary is fit once per model and capped at maxFeatures, keeping the
// grams with the highest corpus frequency (ties broken lexicographically for
// reproducibility).
type ngramVectorizer struct {
	minN, maxN  int
	maxFeatures int

	vocab map[string]int
}

func newNgramVectorizer(minN, maxN, maxFeatures int) *ngramVectorizer {
	return &ngramVectorizer{
		minN:        minN,
		maxN:        maxN,
		maxFeatures: maxFeatures,
	}
}

func (v *ngramVectorizer) fit(corpus []string) {
	counts := make(map[string]int)
	for _, text := range corpus {
		for _, gram := range v.grams(text) {
			counts[gram]++
		}
	}

	grams := make([]string, 0, len(counts))
	for gram := range counts {
		grams = append(grams, gram)
	}
	sort.Slice(grams, func(i, j int) bool {
		if counts[grams[i]] != counts[grams[j]] {
			return counts[grams[i]] > counts[grams[j]]
		}
		return grams[i] < grams[j]
	})
	if len(grams) > v.maxFeatures {
		grams = grams[:v.maxFeatures]
	}

	v.vocab = make(map[string]int, len(grams))
	for i, gram := range grams {
		v.vocab[gram] = i
	}
}

func (v *ngramVectorizer) transform(texts []string) [][]float64 {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		vec := make([]float64, len(v.vocab))
		for _, gram := range v.grams(text) {
			if idx, ok := v.vocab[gram]; ok {
				vec[idx]++
			}
		}
		out[i] = vec
	}
	return out
}

func (v *ngramVectorizer) grams(text string) []string {
	out := make([]string, 0, 32)
	for _, word := range splitWordsLower(text) {
		padded := " " + word + " "
		runes := []rune(padded)
		for n := v.minN; n <= v.maxN; n++ {
			if n > len(runes) {
				break
			}
			for i := 0; i+n <= len(runes); i++ {
				out = append(out, string(runes[i:i+n]))
			}
		}
	}
	return out
}

func splitWordsLower(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
}
