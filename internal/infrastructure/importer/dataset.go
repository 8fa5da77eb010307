package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Dataset is one parsed source export: a header row plus raw string rows in
// file order. Rows may be shorter than the header when trailing cells are
// empty.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// ReadFile parses a CSV or XLSX export by extension.
func ReadFile(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVFile(path)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported source file %q: want .csv or .xlsx", path)
	}
}

// ReadCSV parses a CSV export, stripping a leading BOM from the first
// header and the first cell of every row.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("csv source is empty")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(headers) > 0 {
		headers[0] = stripBOM(headers[0])
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(rows)+2, err)
		}
		if len(row) > 0 {
			row[0] = stripBOM(row[0])
		}
		rows = append(rows, row)
	}
	return &Dataset{Headers: headers, Rows: rows}, nil
}

// ReadXLSX parses the first sheet of an XLSX export. The first row is the
// header.
func ReadXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx source has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx source is empty")
	}

	headers := rows[0]
	if len(headers) > 0 {
		headers[0] = stripBOM(headers[0])
	}
	return &Dataset{Headers: headers, Rows: rows[1:]}, nil
}

func readCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadCSV(f)
}
