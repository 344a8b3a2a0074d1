package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
)

// ErrColumnMismatch means a row did not have one field per header. It points
// at a header list and row builder that have drifted apart.
var ErrColumnMismatch = errors.New("csv: row length does not match header length")

// ToCSV serializes headers and rows as RFC 4180 text. Fields containing a
// comma, double quote or line break are quoted with inner quotes doubled.
// Every line, the last included, ends with "\n". A record made of a single
// empty field is written as "" so it does not read back as a blank line.
func ToCSV(headers []string, rows [][]string) (string, error) {
	for i, row := range rows {
		if len(row) != len(headers) {
			return "", fmt.Errorf("row %d has %d fields, want %d: %w", i, len(row), len(headers), ErrColumnMismatch)
		}
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := writeRecord(w, &sb, headers); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range rows {
		if err := writeRecord(w, &sb, row); err != nil {
			return "", fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write csv rows: %w", err)
	}
	return sb.String(), nil
}

func writeRecord(w *csv.Writer, sb *strings.Builder, record []string) error {
	if len(record) == 1 && record[0] == "" {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		sb.WriteString("\"\"\n")
		return nil
	}
	return w.Write(record)
}

// column binds a header to the accessor that produces its cell, so the header
// list and every row are derived from the same ordered table.
type column[T any] struct {
	Header string
	Value  func(T) string
}

func columnHeaders[T any](cols []column[T]) []string {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	return headers
}

func columnRow[T any](cols []column[T], rec T) []string {
	row := make([]string, len(cols))
	for i, c := range cols {
		row[i] = c.Value(rec)
	}
	return row
}
