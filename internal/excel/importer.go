package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/reviewtool/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath  string // Path to the Excel or CSV file
	SheetName string // Name of the sheet to import
	StartRow  int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration: three
// columns (subject, title, content) with a header row.
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:  path,
		SheetName: "Sheet1",
		StartRow:  2,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ItemCreator is the slice of the review service the importer needs.
type ItemCreator interface {
	CreateItem(ctx context.Context, subject, title, content string) (*models.LearningItem, error)
}

// ImportItems bulk-loads learning items from an Excel or CSV file. Each
// row is subject | title | content; rows that fail validation are skipped
// and reported in the result.
func ImportItems(ctx context.Context, svc ItemCreator, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(ctx, svc, config)
	}
	return importFromExcel(ctx, svc, config)
}

// importFromExcel imports items from an Excel file
func importFromExcel(ctx context.Context, svc ItemCreator, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		processRow(ctx, svc, row, result, i+1)
	}
	return result, nil
}

// importFromCSV imports items from a CSV file
func importFromCSV(ctx context.Context, svc ItemCreator, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		processRow(ctx, svc, row, result, rowNum)
	}
	return result, nil
}

func processRow(ctx context.Context, svc ItemCreator, row []string, result *ImportResult, rowNum int) {
	result.TotalProcessed++

	var subject, title, content string
	if len(row) > 0 {
		subject = row[0]
	}
	if len(row) > 1 {
		title = row[1]
	}
	if len(row) > 2 {
		content = strings.Join(row[2:], " ")
	}

	if _, err := svc.CreateItem(ctx, subject, title, content); err != nil {
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		return
	}
	result.Created++
}
