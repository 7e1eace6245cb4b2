package domain

import "time"

// SearchFilter carries the structured constraints of a search request. Nil or
// empty fields impose no constraint; supplied filters are AND-combined and
// size/time bounds are inclusive.
type SearchFilter struct {
	Extensions     []string   `json:"extensions,omitempty"`
	Categories     []string   `json:"categories,omitempty"`
	MinSize        *int64     `json:"min_size,omitempty"`
	MaxSize        *int64     `json:"max_size,omitempty"`
	ModifiedAfter  *time.Time `json:"modified_after,omitempty"`
	ModifiedBefore *time.Time `json:"modified_before,omitempty"`
}

// Matches reports whether the record satisfies every supplied constraint.
func (f SearchFilter) Matches(rec *FileRecord) bool {
	if len(f.Extensions) > 0 && !containsString(f.Extensions, rec.Extension) {
		return false
	}
	if len(f.Categories) > 0 && !containsString(f.Categories, rec.Category) {
		return false
	}
	if f.MinSize != nil && rec.SizeBytes < *f.MinSize {
		return false
	}
	if f.MaxSize != nil && rec.SizeBytes > *f.MaxSize {
		return false
	}
	if f.ModifiedAfter != nil && rec.Modified.Before(*f.ModifiedAfter) {
		return false
	}
	if f.ModifiedBefore != nil && rec.Modified.After(*f.ModifiedBefore) {
		return false
	}
	return true
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
