package services

import (
	"encoding/csv"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestToCSV(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		rows    [][]string
		want    string
	}{
		{"plain", []string{"a", "b"}, [][]string{{"1", "2"}}, "a,b\n1,2\n"},
		{"no rows", []string{"a", "b"}, nil, "a,b\n"},
		{"comma is quoted", []string{"Company"}, [][]string{{"Acme, Inc."}}, "Company\n\"Acme, Inc.\"\n"},
		{"quotes are doubled", []string{"Note"}, [][]string{{`Say "hi"`}}, "Note\n\"Say \"\"hi\"\"\"\n"},
		{"newline is quoted", []string{"Note"}, [][]string{{"line1\nline2"}}, "Note\n\"line1\nline2\"\n"},
		{"empty fields", []string{"a", "b", "c"}, [][]string{{"", "x", ""}}, "a,b,c\n,x,\n"},
		{"single empty field is quoted", []string{"Notes"}, [][]string{{""}, {"x"}}, "Notes\n\"\"\nx\n"},
		{"single empty header is quoted", []string{""}, [][]string{{"x"}}, "\"\"\nx\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToCSV(tt.headers, tt.rows)
			if err != nil {
				t.Fatalf("ToCSV() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ToCSV() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToCSV_RoundTrip(t *testing.T) {
	headers := []string{"Company", "Note", "Value"}
	rows := [][]string{
		{"Acme, Inc.", `Say "hi"`, "1000.00"},
		{"Tavistock", "multi\nline", ""},
		{"  padded", "=SUM(A1)", "-5"},
	}
	out, err := ToCSV(headers, rows)
	if err != nil {
		t.Fatalf("ToCSV() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse produced csv: %v", err)
	}
	want := append([][]string{headers}, rows...)
	if !reflect.DeepEqual(records, want) {
		t.Errorf("round trip mismatch:\n got %q\nwant %q", records, want)
	}

	t.Run("single column with empty rows", func(t *testing.T) {
		headers := []string{"Notes"}
		rows := [][]string{{""}, {"x"}, {""}}
		out, err := ToCSV(headers, rows)
		if err != nil {
			t.Fatalf("ToCSV() error = %v", err)
		}
		records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
		if err != nil {
			t.Fatalf("parse produced csv: %v", err)
		}
		want := append([][]string{headers}, rows...)
		if !reflect.DeepEqual(records, want) {
			t.Errorf("round trip mismatch:\n got %q\nwant %q", records, want)
		}
		if got := strings.Count(out, "\n"); got != len(want) {
			t.Errorf("expected %d lines, got %d in %q", len(want), got, out)
		}
	})
}

func TestToCSV_ColumnMismatch(t *testing.T) {
	_, err := ToCSV([]string{"a", "b"}, [][]string{{"1", "2"}, {"only one"}})
	if !errors.Is(err, ErrColumnMismatch) {
		t.Fatalf("expected ErrColumnMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 1") {
		t.Errorf("error should name the row: %v", err)
	}
}

func TestColumnTables_HeadersMatchRows(t *testing.T) {
	if got, want := len(LeadToCSVRow(CRMLead{})), len(CRMCSVHeaders()); got != want {
		t.Errorf("lead row has %d fields, headers %d", got, want)
	}
	if got, want := len(InvoiceToCSVRow(Invoice{})), len(BillingCSVHeaders()); got != want {
		t.Errorf("invoice row has %d fields, headers %d", got, want)
	}
}
