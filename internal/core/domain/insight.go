package domain

// InsightSummary is the narrative part of a scan analysis. When no language
// model is configured the fields hold a canned degraded message instead of
// failing the request.
type InsightSummary struct {
	Insights       []string `json:"insights"`
	Recommendation string   `json:"recommendation"`
}

type NamingPattern struct {
	Pattern  string   `json:"pattern"`
	Count    int      `json:"count"`
	Examples []string `json:"examples"`
}

type RelatedGroup struct {
	BaseName  string   `json:"base_name"`
	Extension string   `json:"extension"`
	Files     []string `json:"files"`
}

type SubcategoryHint struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type LargeCategory struct {
	Category  string            `json:"category"`
	FileCount int               `json:"file_count"`
	Hints     []SubcategoryHint `json:"potential_subcategories"`
}

type OrganizationReport struct {
	LargeCategories  []LargeCategory `json:"large_categories"`
	DeepPathsCount   int             `json:"deep_paths_count"`
	DeepPathExamples []string        `json:"deep_paths_examples"`
}

type AgingReport struct {
	OldCount        int      `json:"old_count"`
	VeryOldCount    int      `json:"very_old_count"`
	AncientCount    int      `json:"ancient_count"`
	OldExamples     []string `json:"old_examples"`
	VeryOldExamples []string `json:"very_old_examples"`
	AncientExamples []string `json:"ancient_examples"`
}

type DuplicateGroup struct {
	SizeBytes   int64    `json:"size_bytes"`
	SizeDisplay string   `json:"size_readable"`
	Extension   string   `json:"extension"`
	FileCount   int      `json:"file_count"`
	Examples    []string `json:"examples"`
}

type DuplicateReport struct {
	Count  int              `json:"count"`
	Groups []DuplicateGroup `json:"groups"`
}

type FileInsights struct {
	Patterns      []NamingPattern    `json:"pattern_insights"`
	RelatedGroups []RelatedGroup     `json:"content_clusters"`
	Organization  OrganizationReport `json:"organization_recommendations"`
	Aging         AgingReport        `json:"aging_files_analysis"`
	Duplicates    DuplicateReport    `json:"duplicate_candidates"`
	Summary       InsightSummary     `json:"summary_insights"`
}
