// Package report renders scan results as an Excel workbook.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/avolkov/dirscope/internal/core/domain"
)

const (
	summarySheet   = "Summary"
	inventorySheet = "Files"
)

type XLSXWriter struct{}

func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// Write renders a two-sheet workbook: a scan summary with per-category totals
// and the full file inventory.
func (w *XLSXWriter) Write(out io.Writer, summary *domain.ScanSummary, files []*domain.FileRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), summarySheet)
	if err := w.writeSummary(f, summary, files); err != nil {
		return err
	}
	if err := w.writeInventory(f, files); err != nil {
		return err
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) writeSummary(f *excelize.File, summary *domain.ScanSummary, files []*domain.FileRecord) error {
	rows := [][]any{
		{"Scan ID", summary.ID},
		{"Directory", summary.DirectoryPath},
		{"Scan date", summary.ScanDate.Format("2006-01-02 15:04:05")},
		{"Files", summary.FileCount},
		{"Total size", domain.FormatSize(summary.TotalSize)},
		{},
		{"Category", "Files", "Size"},
	}

	order := make([]string, 0)
	counts := make(map[string]int)
	sizes := make(map[string]int64)
	for _, file := range files {
		if _, seen := counts[file.Category]; !seen {
			order = append(order, file.Category)
		}
		counts[file.Category]++
		sizes[file.Category] += file.SizeBytes
	}
	for _, category := range order {
		rows = append(rows, []any{category, counts[category], domain.FormatSize(sizes[category])})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("summary cell name: %w", err)
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	return nil
}

func (w *XLSXWriter) writeInventory(f *excelize.File, files []*domain.FileRecord) error {
	if _, err := f.NewSheet(inventorySheet); err != nil {
		return fmt.Errorf("create inventory sheet: %w", err)
	}

	header := []any{"Name", "Relative path", "Category", "Extension", "Size", "Modified", "MIME type"}
	if err := f.SetSheetRow(inventorySheet, "A1", &header); err != nil {
		return fmt.Errorf("write inventory header: %w", err)
	}

	for i, file := range files {
		row := []any{
			file.Name,
			file.RelativePath,
			file.Category,
			strings.ToLower(file.Extension),
			file.SizeDisplay,
			file.Modified.Format("2006-01-02 15:04:05"),
			file.MimeType,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("inventory cell name: %w", err)
		}
		if err := f.SetSheetRow(inventorySheet, cell, &row); err != nil {
			return fmt.Errorf("write inventory row: %w", err)
		}
	}
	return nil
}
