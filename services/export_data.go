package services

import (
	"strconv"
	"time"
)

// SummaryLine is one label/value pair printed below an exported table.
type SummaryLine struct {
	Label string
	Value string
}

// ExportData holds all data needed for a tabular workbook export. Headers and
// every row come from the same column table, so they always line up.
type ExportData struct {
	Title       string
	SheetName   string
	CreatedDate string
	Headers     []string
	Rows        [][]string
	// NumericCols are column indexes written as numbers instead of text.
	NumericCols map[int]bool
	Widths      []float64
	Summary     []SummaryLine
}

// LeadsExportData builds the workbook model for the lead table.
func LeadsExportData(leads []CRMLead, now time.Time) ExportData {
	rows := make([][]string, len(leads))
	for i, l := range leads {
		rows[i] = LeadToCSVRow(l)
	}
	m := GetPipelineMetrics(leads)
	return ExportData{
		Title:       "CRM Lead Pipeline",
		SheetName:   "Leads",
		CreatedDate: now.Format(DateLayout),
		Headers:     CRMCSVHeaders(),
		Rows:        rows,
		NumericCols: numericColumns(leadColumns, "Project Value", "Score"),
		Widths:      []float64{18, 28, 20, 18, 26, 16, 30, 18, 16, 30, 14, 8, 14, 16, 14, 26, 40, 22, 22},
		Summary: []SummaryLine{
			{"Total Leads:", strconv.Itoa(m.Total)},
			{"Active Leads:", strconv.Itoa(m.ActiveLeads)},
			{"Hot Leads:", strconv.Itoa(m.HotLeads)},
			{"Pipeline Value:", FormatCurrency(m.TotalValue)},
		},
	}
}

// InvoicesExportData builds the workbook model for the invoice register.
func InvoicesExportData(invoices []Invoice, now time.Time) ExportData {
	rows := make([][]string, len(invoices))
	for i, inv := range invoices {
		rows[i] = InvoiceToCSVRow(inv)
	}
	m := GetBillingMetrics(invoices)
	return ExportData{
		Title:       "Invoice Register",
		SheetName:   "Invoices",
		CreatedDate: now.Format(DateLayout),
		Headers:     BillingCSVHeaders(),
		Rows:        rows,
		NumericCols: numericColumns(invoiceColumns,
			"Line Items", "Subtotal", "Retainage %", "Retainage", "Tax %", "Tax", "Previous Payments", "Total Due"),
		Widths: []float64{16, 30, 26, 26, 14, 14, 10, 10, 14, 12, 14, 8, 14, 16, 14, 16, 40},
		Summary: []SummaryLine{
			{"Total Billed:", FormatCurrency(m.TotalBilled)},
			{"Paid:", FormatCurrency(m.Paid)},
			{"Outstanding A/R:", FormatCurrency(m.OutstandingAR)},
			{"Draft:", FormatCurrency(m.Draft)},
		},
	}
}

func numericColumns[T any](cols []column[T], headers ...string) map[int]bool {
	want := make(map[string]bool, len(headers))
	for _, h := range headers {
		want[h] = true
	}
	out := make(map[int]bool, len(headers))
	for i, c := range cols {
		if want[c.Header] {
			out[i] = true
		}
	}
	return out
}
