package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// LeadImportResult is returned after parsing and validating an uploaded lead
// file. Leads holds only the rows without errors, in file order.
type LeadImportResult struct {
	TotalRows    int               `json:"total_rows"`
	ValidRows    int               `json:"valid_rows"`
	ErrorRows    int               `json:"error_rows"`
	Errors       []ValidationError `json:"errors"`
	Unrecognized []string          `json:"unrecognized_columns,omitempty"`
	Leads        []CRMLead         `json:"leads"`
	FileName     string            `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 || len(rows)-headerIdx < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	// The table ends at the first blank row; summary lines may follow.
	data := rows[headerIdx+1:]
	for i, r := range data {
		if blankRow(r) {
			data = data[:i]
			break
		}
	}
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[headerIdx], data, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// findHeaderRow skips the title rows our own workbook export writes above the
// table. It returns the first row containing the Company header.
func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		for _, cell := range row {
			if normalizeHeader(cell) == "company" {
				return i
			}
		}
	}
	if len(rows) > 0 {
		return 0
	}
	return -1
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	// Strip trailing " *" marking required columns
	h = strings.TrimSpace(strings.TrimSuffix(h, "*"))
	return h
}

// leadImportRequired are the columns that must be non-empty on every row.
var leadImportRequired = []string{"Company", "Project Name"}

// mapHeaders maps uploaded column headers to lead export headers. Returns one
// entry per column ("" when not recognized) and the unrecognized headers.
func mapHeaders(headers []string) ([]string, []string) {
	known := make(map[string]string, len(leadColumns))
	for _, c := range leadColumns {
		known[normalizeHeader(c.Header)] = c.Header
	}

	mapped := make([]string, len(headers))
	var unrecognized []string
	for i, h := range headers {
		if header, ok := known[normalizeHeader(h)]; ok {
			mapped[i] = header
		} else if strings.TrimSpace(h) != "" {
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ValidateLeadFile parses and validates an uploaded lead file (.csv or .xlsx).
// Headers are matched to the lead export columns case-insensitively, so a
// file produced by the lead export imports unchanged. Imported leads get a
// provisional uuid; ID, Created and Updated columns are ignored.
func ValidateLeadFile(file io.Reader, fileName string) (*LeadImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys, unrecognized := mapHeaders(headers)
	result := &LeadImportResult{
		FileName:     fileName,
		Unrecognized: unrecognized,
		Errors:       []ValidationError{},
		Leads:        []CRMLead{},
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		blank := true
		for colIdx, key := range columnKeys {
			if key == "" || colIdx >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[colIdx])
			rowData[key] = v
			if v != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		result.TotalRows++

		lead, rowErrors := parseLeadRow(rowNum, rowData)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.ErrorRows++
			continue
		}
		result.Leads = append(result.Leads, lead)
	}
	result.ValidRows = result.TotalRows - result.ErrorRows
	return result, nil
}

func parseLeadRow(rowNum int, data map[string]string) (CRMLead, []ValidationError) {
	var errs []ValidationError
	fail := func(field, msg string) {
		errs = append(errs, ValidationError{Row: rowNum, Field: field, Message: msg})
	}

	for _, field := range leadImportRequired {
		if data[field] == "" {
			fail(field, field+" is required")
		}
	}

	lead := CRMLead{
		ID:             uuid.NewString(),
		Company:        data["Company"],
		ContactName:    data["Contact"],
		Title:          data["Title"],
		Email:          data["Email"],
		Phone:          data["Phone"],
		ProjectName:    data["Project Name"],
		ProjectType:    data["Project Type"],
		ProjectAddress: data["Project Address"],
		Source:         data["Source"],
		AssignedTo:     data["Assigned To"],
		FollowUpDate:   data["Follow-Up Date"],
		Notes:          data["Notes"],
		Status:         LeadNew,
		Tags:           splitTags(data["Tags"]),
	}

	if v := data["Project Value"]; v != "" {
		value, err := cast.ToFloat64E(normalizeAmount(v))
		switch {
		case err != nil:
			fail("Project Value", fmt.Sprintf("Project Value %q is not a number", v))
		case value < 0:
			fail("Project Value", "Project Value must not be negative")
		default:
			lead.ProjectValue = value
		}
	}

	if v := data["Status"]; v != "" {
		st, err := ParseLeadStatus(v)
		if err != nil {
			fail("Status", fmt.Sprintf("Status %q is not a pipeline stage", v))
		} else {
			lead.Status = st
		}
	}

	if v := data["Score"]; v != "" {
		score, err := cast.ToFloat64E(v)
		switch {
		case err != nil || score != math.Trunc(score):
			fail("Score", fmt.Sprintf("Score %q must be a whole number", v))
		case score < 0 || score > 100:
			fail("Score", "Score must be between 0 and 100")
		default:
			lead.Score = int(score)
		}
	}

	if v := data["Email"]; v != "" {
		if err := validation.Validate(v, is.EmailFormat); err != nil {
			fail("Email", "Invalid email format")
		}
	}
	if v := data["Follow-Up Date"]; v != "" {
		if err := validation.Validate(v, validation.Date(DateLayout)); err != nil {
			fail("Follow-Up Date", "Follow-Up Date must be YYYY-MM-DD")
		}
	}
	return lead, errs
}

// splitTags splits a "; "-joined tag cell, dropping blanks and duplicates.
func splitTags(cell string) []string {
	tags := []string{}
	seen := make(map[string]bool)
	for _, t := range strings.Split(cell, ";") {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, sanitizeExcelCell(e.Message))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
