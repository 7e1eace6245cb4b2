package domain

import "time"

type ScanSummary struct {
	ID            string    `json:"id"`
	DirectoryPath string    `json:"directory_path"`
	ScanDate      time.Time `json:"scan_date"`
	FileCount     int       `json:"file_count"`
	TotalSize     int64     `json:"total_size"`
}
