package usecase

import (
	"path/filepath"
	"strings"

	"github.com/avolkov/dirscope/internal/core/domain"
)

func lower(s string) string { return strings.ToLower(s) }

// applySubjectRules refines Documents/Other records into academic subjects.
// Subjects are scanned in declared order and every subject gets a chance even
// after an earlier one matched, so the last matching subject wins. Within one
// subject the first keyword hit decides.
func applySubjectRules(subjects []domain.SubjectRule, rec *domain.FileRecord) {
	if rec.Category != domain.CategoryDocuments && rec.Category != domain.CategoryOther {
		return
	}
	name := lower(rec.Name)
	path := lower(rec.Path)

	for _, rule := range subjects {
		for _, keyword := range rule.Keywords {
			if strings.Contains(name, keyword) || strings.Contains(path, keyword) {
				rec.Category = rule.Subject
				break
			}
		}
	}
}

type genericRule struct {
	category string
	match    func(name, path string) bool
}

// genericRules are evaluated in order against every record regardless of its
// current category; each match overwrites the category outright, so within
// one pass a later rule beats an earlier one.
var genericRules = []genericRule{
	{domain.CategoryConfiguration, func(name, _ string) bool {
		// The config affix test runs on the stem so app_config.txt matches.
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		return strings.HasPrefix(stem, "config") ||
			strings.HasSuffix(stem, "config") ||
			strings.HasSuffix(name, "config") ||
			strings.HasSuffix(name, ".cfg") ||
			strings.HasSuffix(name, ".ini") ||
			strings.HasSuffix(name, ".conf")
	}},
	{domain.CategoryDatabase, func(name, _ string) bool {
		return strings.HasSuffix(name, ".db") ||
			strings.HasSuffix(name, ".sqlite") ||
			strings.HasSuffix(name, ".sqlite3") ||
			strings.HasSuffix(name, ".mdb")
	}},
	{domain.CategoryBackup, func(name, _ string) bool {
		return strings.HasSuffix(name, ".bak") ||
			strings.HasSuffix(name, ".backup") ||
			strings.HasSuffix(name, "~") ||
			strings.Contains(name, ".backup")
	}},
	{domain.CategoryTemporary, func(name, _ string) bool {
		return strings.HasPrefix(name, "tmp") ||
			strings.HasSuffix(name, ".tmp") ||
			strings.Contains(name, "temp") ||
			strings.Contains(name, "cache")
	}},
	{domain.CategoryProject, func(_, path string) bool {
		return strings.Contains(path, "project") ||
			strings.Contains(path, "workspace") ||
			strings.Contains(path, ".git")
	}},
	{domain.CategoryFonts, func(name, _ string) bool {
		return strings.HasSuffix(name, ".ttf") ||
			strings.HasSuffix(name, ".otf") ||
			strings.HasSuffix(name, ".woff") ||
			strings.HasSuffix(name, ".woff2")
	}},
}

func applyGenericRules(rec *domain.FileRecord) {
	name := lower(rec.Name)
	path := lower(rec.Path)
	for _, rule := range genericRules {
		if rule.match(name, path) {
			rec.Category = rule.category
		}
	}
}
