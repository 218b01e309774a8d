// Package excel reads seed vocabulary from a spreadsheet or CSV file.
package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/hindicards/internal/vocabulary"
	"github.com/example/hindicards/pkg/models"
)

// SeedConfig defines where the seed vocabulary is read from
type SeedConfig struct {
	FilePath    string // Path to the Excel or CSV file
	FrontColumn string // Column with the Hindi word
	BackColumn  string // Column with the English meaning
	SheetName   string // Name of the sheet to read, the active one when empty
	StartRow    int    // The row to start reading from (1-based index)
}

// DefaultSeedConfig returns the default seed configuration
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		FrontColumn: "A",
		BackColumn:  "B",
		SheetName:   "", // Empty means the active sheet
		StartRow:    2, // By default, start from the second row (skip header)
	}
}

// SeedResult holds the cards read from the file and the rows that were left out
type SeedResult struct {
	Cards          []models.Flashcard
	TotalProcessed int
	Skipped        int
	Errors         []string
}

// LoadSeed reads front/back pairs from an Excel or CSV file
func LoadSeed(config SeedConfig) (*SeedResult, error) {
	var (
		rows [][]string
		err  error
	)

	// Check the file extension
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	return buildSeed(rows, config), nil
}

// readExcel returns all rows of a sheet
func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// readCSV returns all records of a CSV file
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// buildSeed turns raw rows into cards, skipping blank and repeated entries
func buildSeed(rows [][]string, config SeedConfig) *SeedResult {
	result := &SeedResult{Errors: make([]string, 0)}

	frontIdx := columnToIndex(config.FrontColumn)
	backIdx := columnToIndex(config.BackColumn)
	startRow := config.StartRow
	if startRow < 1 {
		startRow = 1
	}

	var pairs []vocabulary.Pair
	seen := make(map[string]int)

	for i, row := range rows {
		rowNum := i + 1
		if rowNum < startRow {
			continue
		}
		if isBlank(row) {
			continue
		}

		result.TotalProcessed++

		front := cell(row, frontIdx)
		back := cell(row, backIdx)
		if front == "" || back == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: both columns are required", rowNum))
			continue
		}

		key := strings.ToLower(front)
		if first, ok := seen[key]; ok {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: duplicate of row %d", rowNum, first))
			continue
		}
		seen[key] = rowNum

		pairs = append(pairs, vocabulary.Pair{Front: front, Back: back})
	}

	result.Cards = vocabulary.FromPairs(pairs)
	return result
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
