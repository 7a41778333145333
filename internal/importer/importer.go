// Package importer reads bill lists from CSV files.
package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/lucasvgarcia/contas/internal/bill"
	enc "github.com/lucasvgarcia/contas/internal/encoding"
)

// Columns recognized in the header row, case-insensitive. Alternate
// names match the headers of the spreadsheet the bills used to live in.
var columns = map[string]string{
	"description": "description",
	"descricao":   "description",
	"descrição":   "description",
	"amount":      "amount",
	"valor":       "amount",
	"due_date":    "due_date",
	"vencimento":  "due_date",
	"status":      "status",
}

// RowError describes a data row that failed validation. The row number
// is 1-based and counts the header.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Parse reads a CSV of bills and returns params ready for creation,
// plus one RowError per rejected row. The input encoding is detected and
// normalized first; the delimiter may be a comma or a semicolon. A file
// without the required header is an error.
func Parse(r io.Reader) ([]bill.Params, []RowError, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = detectDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, nil, err
	}

	var (
		params  []bill.Params
		rejects []RowError
	)

	for i, row := range rows[1:] {
		rowNum := i + 2

		if isBlank(row) {
			continue
		}

		p, err := bill.ParseParams(
			cell(row, cols["description"]),
			cell(row, cols["amount"]),
			cell(row, cols["due_date"]),
			cell(row, cols["status"]),
		)
		if err != nil {
			rejects = append(rejects, RowError{Row: rowNum, Err: err})
			continue
		}

		params = append(params, p)
	}

	return params, rejects, nil
}

// detectDelimiter peeks at the header line: a semicolon with no comma
// means a semicolon-delimited file, the pt-BR spreadsheet default.
func detectDelimiter(br *bufio.Reader) rune {
	prefix, _ := br.Peek(1024)

	line, _, _ := strings.Cut(string(prefix), "\n")
	if strings.ContainsRune(line, ';') && !strings.ContainsRune(line, ',') {
		return ';'
	}

	return ','
}

func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int)

	for i, name := range header {
		key, ok := columns[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}

		cols[key] = i
	}

	for _, want := range []string{"description", "amount", "due_date", "status"} {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("missing %q column in header", want)
		}
	}

	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
