package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

const (
	excelHeaderRow = 4
	excelFirstData = excelHeaderRow + 1
)

// GenerateExcel creates an Excel file from the given ExportData and returns
// the file contents as a byte slice. Layout: title, date, blank, header row
// (frozen), data rows, blank, summary lines.
func GenerateExcel(data ExportData) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("generate excel: no columns")
	}
	for i, r := range data.Rows {
		if len(r) != len(data.Headers) {
			return nil, fmt.Errorf("generate excel: row %d: %w", i, ErrColumnMismatch)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are capped at 31 chars.
	sheetName := data.SheetName
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Export"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(data.Headers))
	if err != nil {
		return nil, fmt.Errorf("last column: %w", err)
	}
	for i, w := range data.Widths {
		if i >= len(data.Headers) {
			break
		}
		col := colName(i)
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	// Column header style: bold, white text, charcoal background, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Title rows ──────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Date: "+data.CreatedDate)
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	// ── Column headers ──────────────────────────────────────────────────

	for i, h := range data.Headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s%d", colName(i), excelHeaderRow), h)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", excelHeaderRow), fmt.Sprintf("%s%d", lastCol, excelHeaderRow), headerStyle)
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      excelHeaderRow,
		TopLeftCell: fmt.Sprintf("A%d", excelFirstData),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	// ── Data rows ───────────────────────────────────────────────────────

	row := excelFirstData
	for _, r := range data.Rows {
		for i, v := range r {
			cell := fmt.Sprintf("%s%d", colName(i), row)
			if data.NumericCols[i] {
				if n, err := cast.ToFloat64E(v); err == nil {
					f.SetCellValue(sheetName, cell, n)
					continue
				}
			}
			f.SetCellValue(sheetName, cell, sanitizeExcelCell(v))
		}
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), cellStyle)
		row++
	}

	// ── Summary rows ────────────────────────────────────────────────────

	row++
	for _, s := range data.Summary {
		label := fmt.Sprintf("A%d", row)
		value := fmt.Sprintf("B%d", row)
		f.SetCellValue(sheetName, label, s.Label)
		f.SetCellStyle(sheetName, label, label, summaryLabelStyle)
		f.SetCellValue(sheetName, value, s.Value)
		f.SetCellStyle(sheetName, value, value, summaryValueStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateLeadsExcel exports the lead table as an xlsx workbook.
func GenerateLeadsExcel(leads []CRMLead, now time.Time) ([]byte, error) {
	return GenerateExcel(LeadsExportData(leads, now))
}

// GenerateInvoicesExcel exports the invoice register as an xlsx workbook.
func GenerateInvoicesExcel(invoices []Invoice, now time.Time) ([]byte, error) {
	return GenerateExcel(InvoicesExportData(invoices, now))
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}

// colName converts a 0-based column index to an Excel column name.
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}
