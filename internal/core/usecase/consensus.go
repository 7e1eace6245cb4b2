package usecase

import (
	"strings"
	"unicode"

	"github.com/avolkov/dirscope/internal/core/domain"
)

// regroupByConsensus merges files that belong to the same series (same base
// filename once digits and separators are stripped). A group of two or more
// takes the majority category of its members, but only when that majority is
// an academic subject; mixed system/media groups are left alone.
func regroupByConsensus(records []*domain.FileRecord) {
	groups := make(map[string][]*domain.FileRecord)
	for _, rec := range records {
		base := normalizeBaseName(rec.Name)
		if len(base) > 3 {
			groups[base] = append(groups[base], rec)
		}
	}

	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		majority := majorityCategory(group)
		if !domain.IsSubject(majority) {
			continue
		}
		for _, rec := range group {
			rec.Category = majority
		}
	}
}

// normalizeBaseName lowercases the filename and strips digits, whitespace and
// the separators "_", "-" and ".".
func normalizeBaseName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		if r == '_' || r == '-' || r == '.' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// majorityCategory counts categories in member order and, on a tied maximum,
// keeps the category seen first. The explicit ordered tally keeps results
// reproducible.
func majorityCategory(group []*domain.FileRecord) string {
	type tally struct {
		category string
		count    int
	}
	counts := make([]tally, 0, len(group))

	for _, rec := range group {
		found := false
		for i := range counts {
			if counts[i].category == rec.Category {
				counts[i].count++
				found = true
				break
			}
		}
		if !found {
			counts = append(counts, tally{category: rec.Category, count: 1})
		}
	}

	best := counts[0]
	for _, t := range counts[1:] {
		if t.count > best.count {
			best = t
		}
	}
	return best.category
}
