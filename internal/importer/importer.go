// Package importer provides CSV and Excel import functionality for cargo
// manifests. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cargoplan/loadplanner/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.Item
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Reference int
	Length    int
	Width     int
	Height    int
	Weight    int
	Quantity  int
	Fragile   int
	Stackable int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"reference": {"reference", "ref", "name", "item", "description", "desc", "label", "sku"},
	"length":    {"length", "len", "l", "x"},
	"width":     {"width", "w", "y"},
	"height":    {"height", "h", "depth", "d", "z"},
	"weight":    {"weight", "wt", "mass", "kg"},
	"quantity":  {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"fragile":   {"fragile", "delicate", "handle with care"},
	"stackable": {"stackable", "stack", "stackable?"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row.
		// Only consider delimiters that produce more than 1 column.
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns.
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Reference: -1, Length: -1, Width: -1, Height: -1,
		Weight: -1, Quantity: -1, Fragile: -1, Stackable: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "reference":
					setIfUnset(&mapping.Reference, i)
				case "length":
					setIfUnset(&mapping.Length, i)
				case "width":
					setIfUnset(&mapping.Width, i)
				case "height":
					setIfUnset(&mapping.Height, i)
				case "weight":
					setIfUnset(&mapping.Weight, i)
				case "quantity":
					setIfUnset(&mapping.Quantity, i)
				case "fragile":
					setIfUnset(&mapping.Fragile, i)
				case "stackable":
					setIfUnset(&mapping.Stackable, i)
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: Reference, L, W, H, Weight, Qty, Fragile, Stackable.
		return ColumnMapping{
			Reference: 0, Length: 1, Width: 2, Height: 3,
			Weight: 4, Quantity: 5, Fragile: 6, Stackable: 7,
		}, false
	}

	return mapping, true
}

func setIfUnset(field *int, i int) {
	if *field == -1 {
		*field = i
	}
}

// parseBool interprets common truthy/falsy cell spellings.
func parseBool(s string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	case "false", "no", "n", "0":
		return false
	default:
		return defaultVal
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts an Item from a row using the given column mapping.
// Returns the item, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, itemCount int) (model.Item, string, string) {
	reference := getCell(row, mapping.Reference)
	if reference == "" {
		reference = fmt.Sprintf("ITEM-%d", itemCount+1)
	}

	length, errMsg := parseDim(row, mapping.Length, "length", rowLabel)
	if errMsg != "" {
		return model.Item{}, errMsg, ""
	}
	width, errMsg := parseDim(row, mapping.Width, "width", rowLabel)
	if errMsg != "" {
		return model.Item{}, errMsg, ""
	}
	height, errMsg := parseDim(row, mapping.Height, "height", rowLabel)
	if errMsg != "" {
		return model.Item{}, errMsg, ""
	}

	weightStr := getCell(row, mapping.Weight)
	var weight float64
	if weightStr != "" {
		var err error
		weight, err = strconv.ParseFloat(weightStr, 64)
		if err != nil {
			return model.Item{}, fmt.Sprintf("%s: invalid weight '%s'", rowLabel, weightStr), ""
		}
	}

	qtyStr := getCell(row, mapping.Quantity)
	qty := 1
	if qtyStr != "" {
		parsed, err := strconv.Atoi(qtyStr)
		if err != nil {
			return model.Item{}, fmt.Sprintf("%s: invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		qty = parsed
	}

	if length <= 0 || width <= 0 || height <= 0 || qty <= 0 {
		return model.Item{}, fmt.Sprintf("%s: length, width, height, and quantity must be positive", rowLabel), ""
	}
	if weight < 0 {
		return model.Item{}, fmt.Sprintf("%s: weight must be non-negative", rowLabel), ""
	}

	item := model.NewItem(reference, length, width, height, weight, qty)
	item.Fragile = parseBool(getCell(row, mapping.Fragile), false)
	item.Stackable = parseBool(getCell(row, mapping.Stackable), true)

	return item, "", ""
}

func parseDim(row []string, idx int, name, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: invalid %s '%s'", rowLabel, name, s)
	}
	return v, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a cargo manifest from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "file is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "file is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports a manifest from a CSV reader with a specific
// delimiter. Useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "file is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports a manifest from an Excel (.xlsx, .xls) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into items.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "no data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			// First column after reference is not numeric - likely an
			// unrecognized header; skip it but keep positional mapping.
			startRow = 1
			result.Warnings = append(result.Warnings, "detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		item, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Items))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Items = append(result.Items, item)
	}

	return result
}
