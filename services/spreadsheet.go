package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RowFields is one spreadsheet data row keyed by lowercased header name.
type RowFields map[string]string

// headerRowOffset converts a data row's 0-based index into its 1-based
// spreadsheet row number (row 1 is the header).
const headerRowOffset = 2

// ParseSpreadsheetFile reads an uploaded .csv or .xlsx file into ordered
// data rows.
func ParseSpreadsheetFile(path string) ([]RowFields, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()
	return ParseSpreadsheet(f, path)
}

// ParseSpreadsheet dispatches on the filename extension.
func ParseSpreadsheet(r io.Reader, filename string) ([]RowFields, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return ParseXLSX(r)
	case ".csv", ".txt":
		return ParseCSV(r)
	default:
		return nil, fmt.Errorf("unsupported file type %q, expected .csv or .xlsx", filepath.Ext(filename))
	}
}

// ParseCSV reads a CSV stream using the first row as headers.
func ParseCSV(r io.Reader) ([]RowFields, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("file must include a header row: %w", err)
	}
	normalizeHeaders(headers)

	var rows []RowFields
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading row %d: %w", len(rows)+headerRowOffset, err)
		}
		rows = append(rows, recordToRow(headers, record))
	}
	return rows, nil
}

// ParseXLSX reads the first sheet of an Excel workbook using the first row
// as headers.
func ParseXLSX(r io.Reader) ([]RowFields, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	excelRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) == 0 {
		return nil, fmt.Errorf("file must include a header row")
	}

	headers := excelRows[0]
	normalizeHeaders(headers)

	rows := make([]RowFields, 0, len(excelRows)-1)
	for _, excelRow := range excelRows[1:] {
		rows = append(rows, recordToRow(headers, excelRow))
	}
	return rows, nil
}

func normalizeHeaders(headers []string) {
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.ToLower(headers[i]))
	}
}

func recordToRow(headers, record []string) RowFields {
	row := make(RowFields, len(headers))
	for i, value := range record {
		if i < len(headers) && headers[i] != "" {
			row[headers[i]] = strings.TrimSpace(value)
		}
	}
	return row
}
