package annotation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedTable is returned for tables without a usable header.
var ErrMalformedTable = errors.New("malformed annotation table")

// CSVOptions configures ReadCSV.
type CSVOptions struct {
	// IndexColumn drops the first column, which holds a row index
	// written alongside the data.
	IndexColumn bool
	// Comma is the field separator; zero means ','.
	Comma rune
}

// missingMarkers are cell values read as a missing value.
var missingMarkers = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
}

type columnKind int

const (
	kindInt columnKind = iota
	kindFloat
	kindBool
	kindString
)

// LoadCSV reads an annotation table from a file.
func LoadCSV(path string, opts CSVOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation table: %w", err)
	}
	defer f.Close()

	t, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadCSV reads a header row followed by data rows. Each column gets the
// narrowest type all of its present values parse as: int64, float64,
// bool, then string.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedTable)
	}

	skip := 0
	if opts.IndexColumn {
		skip = 1
	}
	header := records[0]
	if len(header) <= skip {
		return nil, fmt.Errorf("%w: no data columns", ErrMalformedTable)
	}
	columns := make([]string, 0, len(header)-skip)
	seen := make(map[string]bool, len(header))
	for _, name := range header[skip:] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrMalformedTable, name)
		}
		seen[name] = true
		columns = append(columns, name)
	}

	data := records[1:]
	kinds := make([]columnKind, len(columns))
	for c := range columns {
		kinds[c] = inferKind(data, c+skip)
	}

	table := &Table{Columns: columns, Rows: make([]Row, 0, len(data))}
	for _, record := range data {
		row := make(Row, len(columns))
		for c, name := range columns {
			row[name] = convertCell(record[c+skip], kinds[c])
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func inferKind(records [][]string, col int) columnKind {
	for kind := kindInt; kind < kindString; kind++ {
		if columnParsesAs(records, col, kind) {
			return kind
		}
	}
	return kindString
}

func columnParsesAs(records [][]string, col int, kind columnKind) bool {
	for _, record := range records {
		cell := record[col]
		if missingMarkers[cell] {
			continue
		}
		if !parsesAs(cell, kind) {
			return false
		}
	}
	return true
}

func parsesAs(cell string, kind columnKind) bool {
	switch kind {
	case kindInt:
		_, err := strconv.ParseInt(cell, 10, 64)
		return err == nil
	case kindFloat:
		_, err := strconv.ParseFloat(cell, 64)
		return err == nil
	case kindBool:
		return strings.EqualFold(cell, "true") || strings.EqualFold(cell, "false")
	}
	return true
}

func convertCell(cell string, kind columnKind) any {
	if missingMarkers[cell] {
		return nil
	}
	switch kind {
	case kindInt:
		v, _ := strconv.ParseInt(cell, 10, 64)
		return v
	case kindFloat:
		v, _ := strconv.ParseFloat(cell, 64)
		return v
	case kindBool:
		return strings.EqualFold(cell, "true")
	}
	return cell
}
