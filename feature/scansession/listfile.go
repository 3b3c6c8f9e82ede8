package scansession

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadListFile reads a potentially multi-column list file into a reference
// table. The delimiter is derived from the file extension: comma for .csv,
// tab for .tsv, otherwise whitespace-separated. With hasHeaders the first row
// provides the column labels; headerless files get 1-based ordinal labels.
func ReadListFile(path string, hasHeaders bool) (*ReferenceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: cannot load file %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open list file %s: %w", path, err)
	}
	defer f.Close()

	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readDelimited(f, ',')
	case ".tsv":
		rows, err = readDelimited(f, '\t')
	default:
		rows, err = readWhitespace(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read list file %s: %w", path, err)
	}

	return tableFromRows(rows, hasHeaders)
}

func readDelimited(r io.Reader, comma rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func readWhitespace(r io.Reader) ([][]string, error) {
	var rows [][]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	return rows, scanner.Err()
}

// tableFromRows builds a reference table from raw rows. Column order follows
// the source file so ambiguous tokens keep resolving to the first column.
func tableFromRows(rows [][]string, hasHeaders bool) (*ReferenceTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: list file is empty", ErrInvalidState)
	}

	var labels []string
	if hasHeaders {
		for i, cell := range rows[0] {
			label := strings.TrimSpace(cell)
			if label == "" {
				label = strconv.Itoa(i + 1)
			}
			labels = append(labels, label)
		}
		rows = rows[1:]
	} else {
		width := 0
		for _, row := range rows {
			if len(row) > width {
				width = len(row)
			}
		}
		for i := 0; i < width; i++ {
			labels = append(labels, strconv.Itoa(i+1))
		}
	}

	table := NewReferenceTable()
	for _, label := range labels {
		table.AddColumn(label)
	}
	for _, row := range rows {
		for i, cell := range row {
			// Cells past the labelled width have no column to belong to.
			if i >= len(labels) {
				break
			}
			table.Append(labels[i], cell)
		}
	}
	return table, nil
}
