package domain

import (
	"fmt"
	"time"
)

// FileRecord is the structured metadata for one discovered file. Category is
// unset after scanning and populated in place by the classification pipeline;
// later stages overwrite earlier ones, so the final value belongs to whichever
// stage wrote it last.
type FileRecord struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	RelativePath string    `json:"relative_path"`
	Directory    string    `json:"directory"`
	Extension    string    `json:"extension"`
	SizeBytes    int64     `json:"size_bytes"`
	SizeDisplay  string    `json:"size_display"`
	Created      time.Time `json:"created"`
	Modified     time.Time `json:"modified"`
	Accessed     time.Time `json:"accessed"`
	MimeType     string    `json:"mime_type"`
	Depth        int       `json:"depth"`
	IsExecutable bool      `json:"is_executable"`
	IsReadable   bool      `json:"is_readable"`
	IsWritable   bool      `json:"is_writable"`
	Category     string    `json:"category"`
}

const (
	CategoryOther         = "Other"
	CategoryDocuments     = "Documents"
	CategorySpreadsheets  = "Spreadsheets"
	CategoryPresentations = "Presentations"
	CategoryImages        = "Images"
	CategoryAudio         = "Audio"
	CategoryVideo         = "Video"
	CategoryArchives      = "Archives"
	CategoryCode          = "Code"
	CategoryExecutables   = "Executables"
	CategorySystem        = "System"

	CategoryConfiguration = "Configuration"
	CategoryDatabase      = "Database"
	CategoryBackup        = "Backup"
	CategoryTemporary     = "Temporary"
	CategoryProject       = "Project"
	CategoryFonts         = "Fonts"

	SubjectEngineeringDrawing = "Engineering_Drawing"
	SubjectMathematics        = "Mathematics"
	SubjectPhysics            = "Physics"
	SubjectChemistry          = "Chemistry"
	SubjectComputerScience    = "Computer_Science"
)

// Subjects lists the academic subject categories in rule-evaluation order.
// The order is part of the refiner contract: when several subjects match the
// same record, the last one in this list wins.
func Subjects() []string {
	return []string{
		SubjectEngineeringDrawing,
		SubjectMathematics,
		SubjectPhysics,
		SubjectChemistry,
		SubjectComputerScience,
	}
}

// FormatSize renders a byte count in human-readable form, e.g. "1.23 MB".
func FormatSize(sizeBytes int64) string {
	size := float64(sizeBytes)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.2f PB", size)
}

// IsSubject reports whether category is one of the academic subjects.
func IsSubject(category string) bool {
	for _, s := range Subjects() {
		if category == s {
			return true
		}
	}
	return false
}
